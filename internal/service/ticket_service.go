package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/NetindoGit/netindo_api/internal/audit"
	"github.com/NetindoGit/netindo_api/internal/database"
	"github.com/NetindoGit/netindo_api/internal/feed"
	"github.com/NetindoGit/netindo_api/internal/lifecycle"
	"github.com/NetindoGit/netindo_api/internal/models"
	"github.com/NetindoGit/netindo_api/internal/utils"
)

// ticketStore is the subset of the ticket repository the service needs.
type ticketStore interface {
	ListWithCustomer() ([]models.Ticket, error)
	List() ([]models.Ticket, error)
	GetWithCustomer(id int) (*models.Ticket, error)
	Get(id int) (*models.Ticket, error)
	Create(t *models.Ticket) error
	Update(id int, patch *models.TicketUpdate) (*models.Ticket, error)
	Delete(id int) error
}

// eventPublisher is satisfied by *feed.Hub.
type eventPublisher interface {
	Publish(feed.Event)
}

// TicketService handles support-ticket business logic.
type TicketService struct {
	store   ticketStore
	auditor audit.Logger
	events  eventPublisher
	guard   lifecycle.Guard
}

// NewTicketService constructs a TicketService.
func NewTicketService(store ticketStore, auditor audit.Logger, events eventPublisher, guard lifecycle.Guard) *TicketService {
	return &TicketService{
		store:   store,
		auditor: auditor,
		events:  events,
		guard:   guard,
	}
}

// CreateTicketRequest represents the request to create a new ticket.
type CreateTicketRequest struct {
	Title       string                `json:"title" binding:"required"`
	Description string                `json:"description" binding:"required"`
	Priority    models.TicketPriority `json:"priority" binding:"required"`
	Category    string                `json:"category" binding:"required"`
	CustomerID  *int                  `json:"customerId"`
	AssignedTo  *string               `json:"assignedTo"`
}

// ListTickets retrieves all tickets with the customer relation when the
// backend has it configured. Two independent fallbacks apply: a missing
// customers relationship downgrades to the bare list (customer omitted), and
// a missing tickets table yields an empty list instead of an error.
func (s *TicketService) ListTickets() ([]models.Ticket, error) {
	tickets, err := s.store.ListWithCustomer()
	if err == nil {
		return tickets, nil
	}
	if !database.IsMissingResource(err) {
		return nil, fmt.Errorf("list tickets: %w", err)
	}

	tickets, err = s.store.List()
	if err != nil {
		if database.IsMissingTable(err) {
			return []models.Ticket{}, nil
		}
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	return tickets, nil
}

// GetTicket retrieves one ticket with the same two-tier fallback as
// ListTickets. A missing tickets table yields (nil, nil).
func (s *TicketService) GetTicket(id int) (*models.Ticket, error) {
	ticket, err := s.store.GetWithCustomer(id)
	if err == nil {
		return ticket, nil
	}
	if database.IsNotFound(err) {
		return nil, utils.ErrTicketNotFound
	}
	if !database.IsMissingResource(err) {
		return nil, fmt.Errorf("get ticket: %w", err)
	}

	ticket, err = s.store.Get(id)
	if err != nil {
		if database.IsMissingTable(err) {
			return nil, nil
		}
		if database.IsNotFound(err) {
			return nil, utils.ErrTicketNotFound
		}
		return nil, fmt.Errorf("get ticket: %w", err)
	}
	return ticket, nil
}

// CreateTicket creates a ticket with status open and writes the audit record.
func (s *TicketService) CreateTicket(req *CreateTicketRequest, actor string) (*models.Ticket, error) {
	ticket := &models.Ticket{
		Title:       req.Title,
		Description: req.Description,
		Status:      models.TicketOpen,
		Priority:    req.Priority,
		Category:    req.Category,
		CustomerID:  req.CustomerID,
		AssignedTo:  req.AssignedTo,
	}

	if err := s.store.Create(ticket); err != nil {
		return nil, fmt.Errorf("create ticket: %w", err)
	}

	s.auditor.Record(models.AuditCreate, "Ticket", strconv.Itoa(ticket.ID),
		fmt.Sprintf("Created ticket: %s", ticket.Title), actor)
	s.events.Publish(feed.Event{Table: "tickets", Type: feed.EventInsert, Row: *ticket})

	return ticket, nil
}

// UpdateTicket merges the provided fields into the ticket. Exactly one audit
// line is written per call; a status change message wins over an assignment
// message when both fields are present.
func (s *TicketService) UpdateTicket(id int, patch *models.TicketUpdate, actor string) (*models.Ticket, error) {
	if patch.Status != nil {
		current, err := s.store.Get(id)
		if err != nil {
			if database.IsNotFound(err) {
				return nil, utils.ErrTicketNotFound
			}
			return nil, fmt.Errorf("update ticket: %w", err)
		}
		if err := s.guard.Ticket(current.Status, *patch.Status); err != nil {
			return nil, err
		}
	}

	ticket, err := s.store.Update(id, patch)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, utils.ErrTicketNotFound
		}
		return nil, fmt.Errorf("update ticket: %w", err)
	}

	details := "Updated ticket details"
	switch {
	case patch.Status != nil:
		details = fmt.Sprintf("Changed status to %s", strings.ToUpper(string(*patch.Status)))
	case patch.AssignedTo != nil:
		details = fmt.Sprintf("Assigned to %s", *patch.AssignedTo)
	}
	s.auditor.Record(models.AuditUpdate, "Ticket", strconv.Itoa(id), details, actor)
	s.events.Publish(feed.Event{Table: "tickets", Type: feed.EventUpdate, Row: *ticket})

	return ticket, nil
}

// DeleteTicket removes a ticket permanently. This is a destructive terminal
// operation, not a status transition.
func (s *TicketService) DeleteTicket(id int, actor string) error {
	if err := s.store.Delete(id); err != nil {
		if database.IsNotFound(err) {
			return utils.ErrTicketNotFound
		}
		return fmt.Errorf("delete ticket: %w", err)
	}

	s.auditor.Record(models.AuditDelete, "Ticket", strconv.Itoa(id), "", actor)
	s.events.Publish(feed.Event{Table: "tickets", Type: feed.EventDelete, Row: models.Ticket{ID: id}})

	return nil
}
