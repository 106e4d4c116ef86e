package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NetindoGit/netindo_api/internal/livecache"
	"github.com/NetindoGit/netindo_api/internal/models"
)

type listInvoices []models.Invoice

func (l listInvoices) List() ([]models.Invoice, error) { return l, nil }

func TestDashboardCountersFromWarmedMirror(t *testing.T) {
	mirror := livecache.NewMirror()
	mirror.Warm(
		[]models.Ticket{
			{ID: 1, Status: models.TicketOpen},
			{ID: 2, Status: models.TicketInProgress},
			{ID: 3, Status: models.TicketClosed},
		},
		[]models.NetworkDevice{
			{ID: 1, Status: models.DeviceOnline},
			{ID: 2, Status: models.DeviceOffline},
			{ID: 3, Status: models.DeviceWarning},
		},
	)

	customers := listCustomers{
		{ID: 1, AccountStatus: models.AccountActive},
		{ID: 2, AccountStatus: models.AccountLead},
	}
	invoices := listInvoices{
		{ID: 1, Status: models.InvoicePending},
		{ID: 2, Status: models.InvoiceOverdue},
		{ID: 3, Status: models.InvoicePaid},
	}

	svc := NewReportService(customers, invoices, mirror, nil)
	data, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, data.TotalCustomers)
	assert.Equal(t, 1, data.ActiveCustomers)
	assert.Equal(t, 2, data.OpenTickets, "closed tickets stay out of the open count")
	assert.Equal(t, 1, data.PendingInvoices)
	assert.Equal(t, 1, data.OverdueInvoices)
	assert.Equal(t, 1, data.DevicesOnline)
	assert.Equal(t, 1, data.DevicesOffline)
}

func TestDashboardEmptyMirror(t *testing.T) {
	svc := NewReportService(listCustomers{{ID: 1, AccountStatus: models.AccountActive}}, listInvoices{}, livecache.NewMirror(), nil)

	data, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, data.TotalCustomers)
	assert.Equal(t, 0, data.OpenTickets)
}

func TestDashboardMissingTables(t *testing.T) {
	svc := NewReportService(erroringCustomers{}, erroringInvoices{}, livecache.NewMirror(), nil)

	data, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, data.TotalCustomers)
	assert.Equal(t, 0, data.PendingInvoices)
}

type erroringCustomers struct{}

func (erroringCustomers) List() ([]models.Customer, error) { return nil, errNoTable }

type erroringInvoices struct{}

func (erroringInvoices) List() ([]models.Invoice, error) { return nil, errNoTable }
