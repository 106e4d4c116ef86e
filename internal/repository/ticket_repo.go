package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/NetindoGit/netindo_api/internal/models"
)

// TicketRepository handles data access for the tickets table. Read methods
// come in two variants: the customer-joined one and a bare one the service
// falls back to when the customers relationship is not configured.
type TicketRepository struct {
	db *sqlx.DB
}

// NewTicketRepository creates a new TicketRepository.
func NewTicketRepository(db *sqlx.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

const ticketColumns = `t.id, t.title, t.description, t.status, t.priority, t.category,
	t.customer_id, t.assigned_to, t.due_date, t.created_at, t.updated_at`

// ticketJoinedRow scans the ticket plus the nullable customer columns from
// the LEFT JOIN. Customer fields are null for unlinked tickets.
type ticketJoinedRow struct {
	models.Ticket
	CustomerName  *string `db:"customer_name"`
	CustomerEmail *string `db:"customer_email"`
	CustomerPhone *string `db:"customer_phone"`
}

func (row *ticketJoinedRow) toTicket() models.Ticket {
	t := row.Ticket
	if t.CustomerID != nil && row.CustomerName != nil {
		t.Customer = &models.TicketCustomer{
			ID:   *t.CustomerID,
			Name: *row.CustomerName,
		}
		if row.CustomerEmail != nil {
			t.Customer.Email = *row.CustomerEmail
		}
		if row.CustomerPhone != nil {
			t.Customer.Phone = *row.CustomerPhone
		}
	}
	return t
}

// ListWithCustomer retrieves all tickets with the customer relation
// denormalized, newest first.
func (r *TicketRepository) ListWithCustomer() ([]models.Ticket, error) {
	query := `SELECT ` + ticketColumns + `,
	              c.name AS customer_name, c.email AS customer_email, c.phone AS customer_phone
	          FROM tickets t
	          LEFT JOIN customers c ON c.id = t.customer_id
	          ORDER BY t.created_at DESC`

	var rows []ticketJoinedRow
	if err := r.db.Select(&rows, query); err != nil {
		return nil, err
	}
	tickets := make([]models.Ticket, 0, len(rows))
	for i := range rows {
		tickets = append(tickets, rows[i].toTicket())
	}
	return tickets, nil
}

// List retrieves all tickets without the customer join.
func (r *TicketRepository) List() ([]models.Ticket, error) {
	var tickets []models.Ticket
	err := r.db.Select(&tickets, `SELECT `+ticketColumns+` FROM tickets t ORDER BY t.created_at DESC`)
	if err != nil {
		return nil, err
	}
	return tickets, nil
}

// GetWithCustomer finds a ticket by id with the customer relation.
func (r *TicketRepository) GetWithCustomer(id int) (*models.Ticket, error) {
	query := `SELECT ` + ticketColumns + `,
	              c.name AS customer_name, c.email AS customer_email, c.phone AS customer_phone
	          FROM tickets t
	          LEFT JOIN customers c ON c.id = t.customer_id
	          WHERE t.id = $1 LIMIT 1`

	var row ticketJoinedRow
	if err := r.db.Get(&row, query, id); err != nil {
		return nil, err
	}
	t := row.toTicket()
	return &t, nil
}

// Get finds a ticket by id without the customer join.
func (r *TicketRepository) Get(id int) (*models.Ticket, error) {
	var t models.Ticket
	err := r.db.Get(&t, `SELECT `+ticketColumns+` FROM tickets t WHERE t.id = $1 LIMIT 1`, id)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create inserts a new ticket row.
func (r *TicketRepository) Create(t *models.Ticket) error {
	query := `INSERT INTO tickets (title, description, status, priority, category, customer_id, assigned_to, due_date)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id, created_at, updated_at`

	return r.db.QueryRowx(query,
		t.Title,
		t.Description,
		t.Status,
		t.Priority,
		t.Category,
		t.CustomerID,
		t.AssignedTo,
		t.DueDate,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

// Update applies only the provided fields and returns the updated row
// without the customer join.
func (r *TicketRepository) Update(id int, patch *models.TicketUpdate) (*models.Ticket, error) {
	sets := []string{"updated_at = $1"}
	args := []interface{}{time.Now()}

	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.Status != nil {
		add("status", *patch.Status)
	}
	if patch.Priority != nil {
		add("priority", *patch.Priority)
	}
	if patch.Category != nil {
		add("category", *patch.Category)
	}
	if patch.CustomerID != nil {
		add("customer_id", *patch.CustomerID)
	}
	if patch.AssignedTo != nil {
		add("assigned_to", *patch.AssignedTo)
	}
	if patch.DueDate != nil {
		add("due_date", *patch.DueDate)
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE tickets SET %s WHERE id = $%d
	          RETURNING id, title, description, status, priority, category,
	                    customer_id, assigned_to, due_date, created_at, updated_at`,
		strings.Join(sets, ", "), len(args))

	var t models.Ticket
	if err := r.db.Get(&t, query, args...); err != nil {
		return nil, err
	}
	return &t, nil
}

// Delete removes a ticket permanently.
func (r *TicketRepository) Delete(id int) error {
	res, err := r.db.Exec(`DELETE FROM tickets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
