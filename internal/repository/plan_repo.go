package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/NetindoGit/netindo_api/internal/models"
)

// PlanRepository provides data access methods for the plans table.
type PlanRepository struct {
	db *sqlx.DB
}

// NewPlanRepository creates a new PlanRepository.
func NewPlanRepository(db *sqlx.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

const planColumns = `id, name, price, speed_mbps, description, is_active, created_at, updated_at`

// GetByID finds a plan by id.
func (r *PlanRepository) GetByID(id int) (*models.Plan, error) {
	var p models.Plan
	err := r.db.Get(&p, `SELECT `+planColumns+` FROM plans WHERE id = $1 LIMIT 1`, id)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List retrieves all plans ordered by price.
func (r *PlanRepository) List() ([]models.Plan, error) {
	var plans []models.Plan
	err := r.db.Select(&plans, `SELECT `+planColumns+` FROM plans ORDER BY price`)
	if err != nil {
		return nil, err
	}
	return plans, nil
}

// Create inserts a new plan.
func (r *PlanRepository) Create(p *models.Plan) error {
	query := `INSERT INTO plans (name, price, speed_mbps, description, is_active)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id, created_at, updated_at`

	return r.db.QueryRowx(query, p.Name, p.Price, p.SpeedMbps, p.Description, p.IsActive).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

// Update updates an existing plan.
func (r *PlanRepository) Update(p *models.Plan) error {
	query := `UPDATE plans
	          SET name = $1, price = $2, speed_mbps = $3, description = $4, is_active = $5, updated_at = NOW()
	          WHERE id = $6
	          RETURNING updated_at`

	return r.db.QueryRowx(query, p.Name, p.Price, p.SpeedMbps, p.Description, p.IsActive, p.ID).
		Scan(&p.UpdatedAt)
}

// Delete removes a plan permanently.
func (r *PlanRepository) Delete(id int) error {
	_, err := r.db.Exec(`DELETE FROM plans WHERE id = $1`, id)
	return err
}
