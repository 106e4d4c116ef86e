package service

import (
	"database/sql"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NetindoGit/netindo_api/internal/feed"
	"github.com/NetindoGit/netindo_api/internal/lifecycle"
	"github.com/NetindoGit/netindo_api/internal/models"
	"github.com/NetindoGit/netindo_api/internal/utils"
)

var (
	errNoTable  = &pq.Error{Code: "42P01"}
	errNoColumn = &pq.Error{Code: "42703"}
)

func errNoRows() error { return sql.ErrNoRows }

// recordedAudit captures one auditor call.
type recordedAudit struct {
	Action   models.AuditAction
	Entity   string
	EntityID string
	Details  string
	Actor    string
}

type fakeAuditor struct {
	records []recordedAudit
}

func (f *fakeAuditor) Record(action models.AuditAction, entity, entityID, details, performedBy string) {
	f.records = append(f.records, recordedAudit{action, entity, entityID, details, performedBy})
}

type fakeEvents struct {
	published []feed.Event
}

func (f *fakeEvents) Publish(e feed.Event) {
	f.published = append(f.published, e)
}

type fakeTicketStore struct {
	tickets map[int]*models.Ticket
	nextID  int

	joinedErr error
	bareErr   error
}

func newFakeTicketStore(tickets ...*models.Ticket) *fakeTicketStore {
	s := &fakeTicketStore{tickets: make(map[int]*models.Ticket), nextID: 1}
	for _, t := range tickets {
		s.tickets[t.ID] = t
		if t.ID >= s.nextID {
			s.nextID = t.ID + 1
		}
	}
	return s
}

func (s *fakeTicketStore) ListWithCustomer() ([]models.Ticket, error) {
	if s.joinedErr != nil {
		return nil, s.joinedErr
	}
	return s.list(), nil
}

func (s *fakeTicketStore) List() ([]models.Ticket, error) {
	if s.bareErr != nil {
		return nil, s.bareErr
	}
	return s.list(), nil
}

func (s *fakeTicketStore) list() []models.Ticket {
	out := make([]models.Ticket, 0, len(s.tickets))
	for _, t := range s.tickets {
		out = append(out, *t)
	}
	return out
}

func (s *fakeTicketStore) GetWithCustomer(id int) (*models.Ticket, error) {
	if s.joinedErr != nil {
		return nil, s.joinedErr
	}
	return s.Get(id)
}

func (s *fakeTicketStore) Get(id int) (*models.Ticket, error) {
	if s.bareErr != nil {
		return nil, s.bareErr
	}
	t, ok := s.tickets[id]
	if !ok {
		return nil, errNoRows()
	}
	cp := *t
	return &cp, nil
}

func (s *fakeTicketStore) Create(t *models.Ticket) error {
	t.ID = s.nextID
	s.nextID++
	cp := *t
	s.tickets[t.ID] = &cp
	return nil
}

func (s *fakeTicketStore) Update(id int, patch *models.TicketUpdate) (*models.Ticket, error) {
	t, ok := s.tickets[id]
	if !ok {
		return nil, errNoRows()
	}
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Status != nil {
		t.Status = *patch.Status
	}
	if patch.Priority != nil {
		t.Priority = *patch.Priority
	}
	if patch.AssignedTo != nil {
		t.AssignedTo = patch.AssignedTo
	}
	cp := *t
	return &cp, nil
}

func (s *fakeTicketStore) Delete(id int) error {
	if _, ok := s.tickets[id]; !ok {
		return errNoRows()
	}
	delete(s.tickets, id)
	return nil
}

func newTicketService(store *fakeTicketStore, strict bool) (*TicketService, *fakeAuditor, *fakeEvents) {
	auditor := &fakeAuditor{}
	events := &fakeEvents{}
	svc := NewTicketService(store, auditor, events, lifecycle.Guard{Strict: strict})
	return svc, auditor, events
}

func TestListTicketsJoined(t *testing.T) {
	store := newFakeTicketStore(&models.Ticket{ID: 1, Title: "No internet"})
	svc, _, _ := newTicketService(store, false)

	tickets, err := svc.ListTickets()
	require.NoError(t, err)
	assert.Len(t, tickets, 1)
}

func TestListTicketsFallsBackWhenRelationshipMissing(t *testing.T) {
	store := newFakeTicketStore(&models.Ticket{ID: 1, Title: "No internet"})
	store.joinedErr = errNoColumn

	svc, _, _ := newTicketService(store, false)

	tickets, err := svc.ListTickets()
	require.NoError(t, err)
	assert.Len(t, tickets, 1, "bare list serves when the join fails")
}

func TestListTicketsEmptyWhenTableMissing(t *testing.T) {
	store := newFakeTicketStore()
	store.joinedErr = errNoTable
	store.bareErr = errNoTable

	svc, _, _ := newTicketService(store, false)

	tickets, err := svc.ListTickets()
	require.NoError(t, err)
	assert.Empty(t, tickets)
	assert.NotNil(t, tickets)
}

func TestListTicketsPropagatesOtherErrors(t *testing.T) {
	store := newFakeTicketStore()
	store.joinedErr = &pq.Error{Code: "53300"}

	svc, _, _ := newTicketService(store, false)

	_, err := svc.ListTickets()
	assert.Error(t, err)
}

func TestGetTicketNilWhenTableMissing(t *testing.T) {
	store := newFakeTicketStore()
	store.joinedErr = errNoTable
	store.bareErr = errNoTable

	svc, _, _ := newTicketService(store, false)

	ticket, err := svc.GetTicket(1)
	require.NoError(t, err)
	assert.Nil(t, ticket)
}

func TestGetTicketNotFound(t *testing.T) {
	store := newFakeTicketStore()
	svc, _, _ := newTicketService(store, false)

	_, err := svc.GetTicket(42)
	assert.ErrorIs(t, err, utils.ErrTicketNotFound)
}

func TestCreateTicket(t *testing.T) {
	store := newFakeTicketStore()
	svc, auditor, events := newTicketService(store, false)

	ticket, err := svc.CreateTicket(&CreateTicketRequest{
		Title:       "No internet since morning",
		Description: "Customer reports total outage",
		Priority:    models.PriorityHigh,
		Category:    "connectivity",
	}, "agent@netindo.co.id")
	require.NoError(t, err)

	assert.Equal(t, models.TicketOpen, ticket.Status, "new tickets always start open")

	require.Len(t, auditor.records, 1)
	rec := auditor.records[0]
	assert.Equal(t, models.AuditCreate, rec.Action)
	assert.Equal(t, "Ticket", rec.Entity)
	assert.Equal(t, "Created ticket: No internet since morning", rec.Details)
	assert.Equal(t, "agent@netindo.co.id", rec.Actor)

	require.Len(t, events.published, 1)
	assert.Equal(t, "tickets", events.published[0].Table)
	assert.Equal(t, feed.EventInsert, events.published[0].Type)
}

func TestUpdateTicketStatusAuditMessage(t *testing.T) {
	store := newFakeTicketStore(&models.Ticket{ID: 1, Status: models.TicketOpen})
	svc, auditor, _ := newTicketService(store, false)

	status := models.TicketAssigned
	assignee := "Budi"
	_, err := svc.UpdateTicket(1, &models.TicketUpdate{Status: &status, AssignedTo: &assignee}, "agent")
	require.NoError(t, err)

	// Status change wins over assignment when both are in the same patch,
	// and exactly one line is written.
	require.Len(t, auditor.records, 1)
	assert.Equal(t, "Changed status to ASSIGNED", auditor.records[0].Details)
}

func TestUpdateTicketAssignmentAuditMessage(t *testing.T) {
	store := newFakeTicketStore(&models.Ticket{ID: 1, Status: models.TicketOpen})
	svc, auditor, _ := newTicketService(store, false)

	assignee := "Budi"
	_, err := svc.UpdateTicket(1, &models.TicketUpdate{AssignedTo: &assignee}, "agent")
	require.NoError(t, err)

	require.Len(t, auditor.records, 1)
	assert.Equal(t, "Assigned to Budi", auditor.records[0].Details)
}

func TestUpdateTicketGenericAuditMessage(t *testing.T) {
	store := newFakeTicketStore(&models.Ticket{ID: 1, Status: models.TicketOpen})
	svc, auditor, _ := newTicketService(store, false)

	title := "Updated title"
	_, err := svc.UpdateTicket(1, &models.TicketUpdate{Title: &title}, "agent")
	require.NoError(t, err)

	require.Len(t, auditor.records, 1)
	assert.Equal(t, "Updated ticket details", auditor.records[0].Details)
}

func TestUpdateTicketPermissiveAllowsBackwardMove(t *testing.T) {
	store := newFakeTicketStore(&models.Ticket{ID: 1, Status: models.TicketClosed})
	svc, _, _ := newTicketService(store, false)

	status := models.TicketOpen
	ticket, err := svc.UpdateTicket(1, &models.TicketUpdate{Status: &status}, "agent")
	require.NoError(t, err)
	assert.Equal(t, models.TicketOpen, ticket.Status)
}

func TestUpdateTicketStrictRejectsBadTransition(t *testing.T) {
	store := newFakeTicketStore(&models.Ticket{ID: 1, Status: models.TicketClosed})
	svc, auditor, events := newTicketService(store, true)

	status := models.TicketOpen
	_, err := svc.UpdateTicket(1, &models.TicketUpdate{Status: &status}, "agent")
	assert.ErrorIs(t, err, lifecycle.ErrInvalidTransition)

	assert.Empty(t, auditor.records, "rejected updates write no audit line")
	assert.Empty(t, events.published)
	assert.Equal(t, models.TicketClosed, store.tickets[1].Status)
}

func TestDeleteTicket(t *testing.T) {
	store := newFakeTicketStore(&models.Ticket{ID: 1})
	svc, auditor, events := newTicketService(store, false)

	require.NoError(t, svc.DeleteTicket(1, "agent"))

	require.Len(t, auditor.records, 1)
	assert.Equal(t, models.AuditDelete, auditor.records[0].Action)
	assert.Equal(t, "", auditor.records[0].Details)

	require.Len(t, events.published, 1)
	assert.Equal(t, feed.EventDelete, events.published[0].Type)
}

func TestDeleteTicketNotFound(t *testing.T) {
	store := newFakeTicketStore()
	svc, _, _ := newTicketService(store, false)

	err := svc.DeleteTicket(9, "agent")
	assert.ErrorIs(t, err, utils.ErrTicketNotFound)
}
