package models

import "time"

type TicketStatus string
type TicketPriority string

const (
	TicketOpen       TicketStatus = "open"
	TicketAssigned   TicketStatus = "assigned"
	TicketInProgress TicketStatus = "in_progress"
	TicketResolved   TicketStatus = "resolved"
	TicketVerified   TicketStatus = "verified"
	TicketClosed     TicketStatus = "closed"
)

const (
	PriorityLow    TicketPriority = "low"
	PriorityMedium TicketPriority = "medium"
	PriorityHigh   TicketPriority = "high"
)

// Ticket is a support ticket. Customer is denormalized from the customers
// table when the relationship is available; it is omitted when the join
// fallback kicks in.
type Ticket struct {
	ID          int             `db:"id" json:"id"`
	Title       string          `db:"title" json:"title"`
	Description string          `db:"description" json:"description"`
	Status      TicketStatus    `db:"status" json:"status"`
	Priority    TicketPriority  `db:"priority" json:"priority"`
	Category    string          `db:"category" json:"category"`
	CustomerID  *int            `db:"customer_id" json:"customerId,omitempty"`
	Customer    *TicketCustomer `db:"-" json:"customer,omitempty"`
	AssignedTo  *string         `db:"assigned_to" json:"assignedTo,omitempty"`
	DueDate     *time.Time      `db:"due_date" json:"dueDate,omitempty"`
	CreatedAt   time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updatedAt"`
}

// TicketCustomer carries the subset of customer fields shown on ticket lists.
type TicketCustomer struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// TicketUpdate is a partial update: only non-nil fields are applied.
type TicketUpdate struct {
	Title       *string         `json:"title"`
	Description *string         `json:"description"`
	Status      *TicketStatus   `json:"status"`
	Priority    *TicketPriority `json:"priority"`
	Category    *string         `json:"category"`
	CustomerID  *int            `json:"customerId"`
	AssignedTo  *string         `json:"assignedTo"`
	DueDate     *time.Time      `json:"dueDate"`
}
