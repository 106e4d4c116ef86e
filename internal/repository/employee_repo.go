package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/NetindoGit/netindo_api/internal/models"
)

// EmployeeRepository provides data access methods for the employees table.
type EmployeeRepository struct {
	db *sqlx.DB
}

// NewEmployeeRepository creates a new EmployeeRepository.
func NewEmployeeRepository(db *sqlx.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

const employeeColumns = `id, name, email, role, phone, is_active, created_at, updated_at`

// GetByID finds an employee by id.
func (r *EmployeeRepository) GetByID(id int) (*models.Employee, error) {
	var e models.Employee
	err := r.db.Get(&e, `SELECT `+employeeColumns+` FROM employees WHERE id = $1 LIMIT 1`, id)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// List retrieves all employees ordered by name.
func (r *EmployeeRepository) List() ([]models.Employee, error) {
	var employees []models.Employee
	err := r.db.Select(&employees, `SELECT `+employeeColumns+` FROM employees ORDER BY name`)
	if err != nil {
		return nil, err
	}
	return employees, nil
}

// Create inserts a new employee.
func (r *EmployeeRepository) Create(e *models.Employee) error {
	query := `INSERT INTO employees (name, email, role, phone, is_active)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id, created_at, updated_at`

	return r.db.QueryRowx(query, e.Name, e.Email, e.Role, e.Phone, e.IsActive).
		Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
}

// Update updates an existing employee.
func (r *EmployeeRepository) Update(e *models.Employee) error {
	query := `UPDATE employees
	          SET name = $1, email = $2, role = $3, phone = $4, is_active = $5, updated_at = NOW()
	          WHERE id = $6
	          RETURNING updated_at`

	return r.db.QueryRowx(query, e.Name, e.Email, e.Role, e.Phone, e.IsActive, e.ID).
		Scan(&e.UpdatedAt)
}

// Delete removes an employee permanently.
func (r *EmployeeRepository) Delete(id int) error {
	_, err := r.db.Exec(`DELETE FROM employees WHERE id = $1`, id)
	return err
}
