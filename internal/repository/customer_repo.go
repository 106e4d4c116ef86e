package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/NetindoGit/netindo_api/internal/models"
)

// CustomerRepository provides data access methods for the customers table.
type CustomerRepository struct {
	db *sqlx.DB
}

// NewCustomerRepository creates a new CustomerRepository.
func NewCustomerRepository(db *sqlx.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

const customerColumns = `id, name, email, phone, type, account_status, installation_status,
	plan_id, address, odp_port, coordinates, survey_notes, created_at, updated_at`

// GetByID finds a customer by id.
func (r *CustomerRepository) GetByID(id int) (*models.Customer, error) {
	var c models.Customer
	err := r.db.Get(&c, `SELECT `+customerColumns+` FROM customers WHERE id = $1 LIMIT 1`, id)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List retrieves all customers, newest first.
func (r *CustomerRepository) List() ([]models.Customer, error) {
	var customers []models.Customer
	err := r.db.Select(&customers, `SELECT `+customerColumns+` FROM customers ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	return customers, nil
}

// Create inserts a new customer.
func (r *CustomerRepository) Create(c *models.Customer) error {
	query := `INSERT INTO customers (name, email, phone, type, account_status, installation_status,
	              plan_id, address, odp_port, coordinates, survey_notes)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	          RETURNING id, created_at, updated_at`

	return r.db.QueryRowx(query,
		c.Name,
		c.Email,
		c.Phone,
		c.Type,
		c.AccountStatus,
		c.InstallationStatus,
		c.PlanID,
		c.Address,
		c.ODPPort,
		c.Coordinates,
		c.SurveyNotes,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

// Update updates an existing customer.
func (r *CustomerRepository) Update(c *models.Customer) error {
	query := `UPDATE customers
	          SET name = $1, email = $2, phone = $3, type = $4, account_status = $5,
	              installation_status = $6, plan_id = $7, address = $8, odp_port = $9,
	              coordinates = $10, survey_notes = $11, updated_at = NOW()
	          WHERE id = $12
	          RETURNING updated_at`

	return r.db.QueryRowx(query,
		c.Name,
		c.Email,
		c.Phone,
		c.Type,
		c.AccountStatus,
		c.InstallationStatus,
		c.PlanID,
		c.Address,
		c.ODPPort,
		c.Coordinates,
		c.SurveyNotes,
		c.ID,
	).Scan(&c.UpdatedAt)
}

// Delete removes a customer permanently.
func (r *CustomerRepository) Delete(id int) error {
	_, err := r.db.Exec(`DELETE FROM customers WHERE id = $1`, id)
	return err
}
