package models

import "time"

type InvoiceStatus string

const (
	InvoicePending   InvoiceStatus = "pending"
	InvoicePaid      InvoiceStatus = "paid"
	InvoiceOverdue   InvoiceStatus = "overdue"
	InvoiceCancelled InvoiceStatus = "cancelled"
)

// Invoice is a billing invoice. Overdue is a stored state, not derived: a
// pending invoice past its due date stays pending until something (a caller
// or the overdue sweep worker) transitions it.
type Invoice struct {
	ID            int           `db:"id" json:"id"`
	CustomerID    int           `db:"customer_id" json:"customerId"`
	InvoiceNumber string        `db:"invoice_number" json:"invoiceNumber"`
	Amount        float64       `db:"amount" json:"amount"`
	Status        InvoiceStatus `db:"status" json:"status"`
	Description   *string       `db:"description" json:"description,omitempty"`
	IssuedDate    time.Time     `db:"issued_date" json:"issuedDate"`
	DueDate       time.Time     `db:"due_date" json:"dueDate"`
	CreatedAt     time.Time     `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time     `db:"updated_at" json:"updatedAt"`
}

// PaymentMethod belongs to one customer. At most one method per customer has
// IsDefault set; the invariant is enforced at write time by the billing
// service, not by a database constraint.
type PaymentMethod struct {
	ID         int       `db:"id" json:"id"`
	CustomerID int       `db:"customer_id" json:"customerId"`
	Method     string    `db:"method" json:"method"`
	Details    *string   `db:"details" json:"details,omitempty"`
	IsDefault  bool      `db:"is_default" json:"isDefault"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}
