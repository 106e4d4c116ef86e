// Package lifecycle holds the transition tables for the status enums that
// the back-office mutates: tickets, invoices and customer installation.
//
// Historically every status write was permissive: the panel wrote whatever
// enum value the form sent, including backward moves. The tables below make
// the intended edges explicit; Guard enforces them only when strict mode is
// enabled so existing workflows (e.g. reopening a closed ticket) keep
// working by default.
package lifecycle

import (
	"errors"
	"fmt"

	"github.com/NetindoGit/netindo_api/internal/models"
)

// ErrInvalidTransition is returned by Guard checks for disallowed edges.
var ErrInvalidTransition = errors.New("INVALID_TRANSITION")

var ticketEdges = map[models.TicketStatus][]models.TicketStatus{
	models.TicketOpen:       {models.TicketAssigned},
	models.TicketAssigned:   {models.TicketInProgress},
	models.TicketInProgress: {models.TicketResolved},
	models.TicketResolved:   {models.TicketVerified},
	models.TicketVerified:   {models.TicketClosed},
	models.TicketClosed:     {},
}

// Invoice edges: pending settles or is cancelled; pending decays to overdue;
// an overdue invoice can still be settled or cancelled.
var invoiceEdges = map[models.InvoiceStatus][]models.InvoiceStatus{
	models.InvoicePending:   {models.InvoicePaid, models.InvoiceOverdue, models.InvoiceCancelled},
	models.InvoiceOverdue:   {models.InvoicePaid, models.InvoiceCancelled},
	models.InvoicePaid:      {},
	models.InvoiceCancelled: {},
}

// Installation edges: a failed survey goes back to the queue.
var installationEdges = map[models.InstallationStatus][]models.InstallationStatus{
	models.InstallPendingSurvey:   {models.InstallSurveyCompleted, models.InstallSurveyFailed},
	models.InstallSurveyFailed:    {models.InstallPendingSurvey},
	models.InstallSurveyCompleted: {models.InstallScheduled},
	models.InstallScheduled:       {models.InstallInstalled},
	models.InstallInstalled:       {},
}

// CanTransitionTicket reports whether the ticket edge current -> next is in
// the transition table. A no-op transition (same status) is always allowed.
func CanTransitionTicket(current, next models.TicketStatus) bool {
	return canTransition(ticketEdges[current], current, next)
}

// CanTransitionInvoice reports whether the invoice edge current -> next is
// in the transition table.
func CanTransitionInvoice(current, next models.InvoiceStatus) bool {
	return canTransition(invoiceEdges[current], current, next)
}

// CanTransitionInstallation reports whether the installation edge
// current -> next is in the transition table.
func CanTransitionInstallation(current, next models.InstallationStatus) bool {
	return canTransition(installationEdges[current], current, next)
}

func canTransition[S comparable](allowed []S, current, next S) bool {
	if current == next {
		return true
	}
	for _, s := range allowed {
		if s == next {
			return true
		}
	}
	return false
}

// Guard validates status transitions. With Strict false every transition
// passes, preserving the permissive write-any-value behavior.
type Guard struct {
	Strict bool
}

// Ticket validates a ticket status transition.
func (g Guard) Ticket(current, next models.TicketStatus) error {
	if !g.Strict || CanTransitionTicket(current, next) {
		return nil
	}
	return fmt.Errorf("%w: ticket %s -> %s", ErrInvalidTransition, current, next)
}

// Invoice validates an invoice status transition.
func (g Guard) Invoice(current, next models.InvoiceStatus) error {
	if !g.Strict || CanTransitionInvoice(current, next) {
		return nil
	}
	return fmt.Errorf("%w: invoice %s -> %s", ErrInvalidTransition, current, next)
}

// Installation validates a customer installation status transition.
func (g Guard) Installation(current, next models.InstallationStatus) error {
	if !g.Strict || CanTransitionInstallation(current, next) {
		return nil
	}
	return fmt.Errorf("%w: installation %s -> %s", ErrInvalidTransition, current, next)
}
