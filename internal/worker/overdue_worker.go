package worker

import (
	"context"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/NetindoGit/netindo_api/internal/audit"
	"github.com/NetindoGit/netindo_api/internal/database"
	"github.com/NetindoGit/netindo_api/internal/models"
)

type overdueInvoiceStore interface {
	ListPendingPastDue(now time.Time) ([]models.Invoice, error)
	UpdateStatus(id int, status models.InvoiceStatus) (*models.Invoice, error)
}

// OverdueWorker transitions pending invoices past their due date to overdue.
// The panel historically never derived overdue from due_date, so the sweep
// ships disabled and only runs when an interval is configured.
type OverdueWorker struct {
	invoices overdueInvoiceStore
	auditor  audit.Logger
	interval time.Duration
}

// NewOverdueWorker constructs an OverdueWorker.
func NewOverdueWorker(invoices overdueInvoiceStore, auditor audit.Logger, interval time.Duration) *OverdueWorker {
	return &OverdueWorker{
		invoices: invoices,
		auditor:  auditor,
		interval: interval,
	}
}

// Enabled reports whether the sweep has a configured interval.
func (w *OverdueWorker) Enabled() bool {
	return w.interval > 0
}

// Start begins the sweep loop and listens for context cancellation.
func (w *OverdueWorker) Start(ctx context.Context) {
	log.Info().Dur("interval", w.interval).Msg("Starting overdue invoice worker")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.run()
		case <-ctx.Done():
			log.Info().Msg("Overdue invoice worker stopped")
			return
		}
	}
}

func (w *OverdueWorker) run() {
	pastDue, err := w.invoices.ListPendingPastDue(time.Now())
	if err != nil {
		if !database.IsMissingTable(err) {
			log.Error().Err(err).Msg("Overdue sweep: listing past-due invoices failed")
		}
		return
	}

	for _, inv := range pastDue {
		if _, err := w.invoices.UpdateStatus(inv.ID, models.InvoiceOverdue); err != nil {
			log.Error().Err(err).Int("invoice_id", inv.ID).Msg("Overdue sweep: transition failed")
			continue
		}
		w.auditor.Record(models.AuditSystem, "Invoice", strconv.Itoa(inv.ID),
			"Changed status to OVERDUE", "system")
	}

	if len(pastDue) > 0 {
		log.Info().Int("count", len(pastDue)).Msg("Overdue sweep completed")
	}
}
