package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/NetindoGit/netindo_api/internal/models"
)

// PaymentMethodRepository handles data access for the payment_methods table.
type PaymentMethodRepository struct {
	db *sqlx.DB
}

// NewPaymentMethodRepository creates a new PaymentMethodRepository.
func NewPaymentMethodRepository(db *sqlx.DB) *PaymentMethodRepository {
	return &PaymentMethodRepository{db: db}
}

// ListByCustomer retrieves a customer's payment methods, default first.
func (r *PaymentMethodRepository) ListByCustomer(customerID int) ([]models.PaymentMethod, error) {
	var methods []models.PaymentMethod
	err := r.db.Select(&methods, `SELECT id, customer_id, method, details, is_default, created_at
		FROM payment_methods WHERE customer_id = $1
		ORDER BY is_default DESC, created_at`, customerID)
	if err != nil {
		return nil, err
	}
	return methods, nil
}

// CountByCustomer returns how many payment methods a customer has.
func (r *PaymentMethodRepository) CountByCustomer(customerID int) (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM payment_methods WHERE customer_id = $1`, customerID)
	return n, err
}

// UnsetDefaults clears is_default on all of a customer's methods.
func (r *PaymentMethodRepository) UnsetDefaults(customerID int) error {
	_, err := r.db.Exec(`UPDATE payment_methods SET is_default = FALSE WHERE customer_id = $1`, customerID)
	return err
}

// Insert adds a payment method row.
func (r *PaymentMethodRepository) Insert(m *models.PaymentMethod) error {
	query := `INSERT INTO payment_methods (customer_id, method, details, is_default)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id, created_at`

	return r.db.QueryRowx(query,
		m.CustomerID,
		m.Method,
		m.Details,
		m.IsDefault,
	).Scan(&m.ID, &m.CreatedAt)
}

// Delete removes a payment method.
func (r *PaymentMethodRepository) Delete(id int) error {
	_, err := r.db.Exec(`DELETE FROM payment_methods WHERE id = $1`, id)
	return err
}
