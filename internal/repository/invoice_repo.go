package repository

import (
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/NetindoGit/netindo_api/internal/models"
)

// InvoiceRepository handles data access for the invoices table.
type InvoiceRepository struct {
	db *sqlx.DB
}

// NewInvoiceRepository creates a new InvoiceRepository.
func NewInvoiceRepository(db *sqlx.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

const invoiceColumns = `id, customer_id, invoice_number, amount, status, description,
	issued_date, due_date, created_at, updated_at`

// GetByID finds an invoice by id.
func (r *InvoiceRepository) GetByID(id int) (*models.Invoice, error) {
	var inv models.Invoice
	err := r.db.Get(&inv, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1 LIMIT 1`, id)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// List retrieves all invoices, newest issued first.
func (r *InvoiceRepository) List() ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := r.db.Select(&invoices, `SELECT `+invoiceColumns+` FROM invoices ORDER BY issued_date DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

// ListByCustomer retrieves a customer's invoices, newest issued first.
func (r *InvoiceRepository) ListByCustomer(customerID int) ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := r.db.Select(&invoices, `SELECT `+invoiceColumns+`
		FROM invoices WHERE customer_id = $1
		ORDER BY issued_date DESC, id DESC`, customerID)
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

// ListPendingPastDue retrieves pending invoices whose due date has passed.
func (r *InvoiceRepository) ListPendingPastDue(now time.Time) ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := r.db.Select(&invoices, `SELECT `+invoiceColumns+`
		FROM invoices WHERE status = $1 AND due_date < $2
		ORDER BY due_date`, models.InvoicePending, now)
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

// Create inserts a new invoice row.
func (r *InvoiceRepository) Create(inv *models.Invoice) error {
	query := `INSERT INTO invoices (customer_id, invoice_number, amount, status, description, issued_date, due_date)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING id, created_at, updated_at`

	return r.db.QueryRowx(query,
		inv.CustomerID,
		inv.InvoiceNumber,
		inv.Amount,
		inv.Status,
		inv.Description,
		inv.IssuedDate,
		inv.DueDate,
	).Scan(&inv.ID, &inv.CreatedAt, &inv.UpdatedAt)
}

// UpdateStatus overwrites an invoice's status and returns the updated row.
func (r *InvoiceRepository) UpdateStatus(id int, status models.InvoiceStatus) (*models.Invoice, error) {
	var inv models.Invoice
	err := r.db.Get(&inv, `UPDATE invoices SET status = $1, updated_at = NOW() WHERE id = $2
	          RETURNING `+invoiceColumns, status, id)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}
