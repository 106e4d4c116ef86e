package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/NetindoGit/netindo_api/internal/cache"
	"github.com/NetindoGit/netindo_api/internal/database"
	"github.com/NetindoGit/netindo_api/internal/livecache"
	"github.com/NetindoGit/netindo_api/internal/models"
)

type reportCustomerStore interface {
	List() ([]models.Customer, error)
}

type reportInvoiceStore interface {
	List() ([]models.Invoice, error)
}

type summaryCache interface {
	Get(ctx context.Context) (*cache.DashboardData, error)
	Set(ctx context.Context, data *cache.DashboardData) error
	Invalidate(ctx context.Context) error
}

// ReportService assembles the dashboard summary. Ticket and device counts
// come from the live mirror; customer and invoice counts are read from the
// database and the whole summary is cached in Redis for a short window.
type ReportService struct {
	customers reportCustomerStore
	invoices  reportInvoiceStore
	mirror    *livecache.Mirror
	cache     summaryCache
}

// NewReportService constructs a ReportService. cache may be nil, in which
// case every call recomputes the summary.
func NewReportService(customers reportCustomerStore, invoices reportInvoiceStore, mirror *livecache.Mirror, c summaryCache) *ReportService {
	return &ReportService{customers: customers, invoices: invoices, mirror: mirror, cache: c}
}

// Refresh drops the cached summary and recomputes it.
func (s *ReportService) Refresh(ctx context.Context) (*cache.DashboardData, error) {
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			log.Warn().Err(err).Msg("Dashboard cache invalidate failed")
		}
	}
	return s.Dashboard(ctx)
}

// Dashboard returns the dashboard summary, served from cache when fresh.
func (s *ReportService) Dashboard(ctx context.Context) (*cache.DashboardData, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx); err != nil {
			log.Warn().Err(err).Msg("Dashboard cache read failed, recomputing")
		} else if cached != nil {
			return cached, nil
		}
	}

	data, err := s.compute()
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, data); err != nil {
			log.Warn().Err(err).Msg("Dashboard cache write failed")
		}
	}
	return data, nil
}

func (s *ReportService) compute() (*cache.DashboardData, error) {
	data := &cache.DashboardData{}

	customers, err := s.customers.List()
	if err != nil && !database.IsMissingTable(err) {
		return nil, fmt.Errorf("dashboard customers: %w", err)
	}
	data.TotalCustomers = len(customers)
	for _, c := range customers {
		if c.AccountStatus == models.AccountActive {
			data.ActiveCustomers++
		}
	}

	invoices, err := s.invoices.List()
	if err != nil && !database.IsMissingTable(err) {
		return nil, fmt.Errorf("dashboard invoices: %w", err)
	}
	for _, inv := range invoices {
		switch inv.Status {
		case models.InvoicePending:
			data.PendingInvoices++
		case models.InvoiceOverdue:
			data.OverdueInvoices++
		}
	}

	if s.mirror != nil {
		data.OpenTickets = s.mirror.Tickets.Count(func(t models.Ticket) bool {
			return t.Status != models.TicketResolved && t.Status != models.TicketVerified && t.Status != models.TicketClosed
		})
		data.DevicesOnline = s.mirror.Devices.Count(func(d models.NetworkDevice) bool {
			return d.Status == models.DeviceOnline
		})
		data.DevicesOffline = s.mirror.Devices.Count(func(d models.NetworkDevice) bool {
			return d.Status == models.DeviceOffline
		})
	}

	return data, nil
}
