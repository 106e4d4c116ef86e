package service

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NetindoGit/netindo_api/internal/lifecycle"
	"github.com/NetindoGit/netindo_api/internal/models"
)

type fakeInvoiceStore struct {
	invoices  map[int]*models.Invoice
	nextID    int
	createErr map[int]error // keyed by customer id
}

func newFakeInvoiceStore() *fakeInvoiceStore {
	return &fakeInvoiceStore{invoices: make(map[int]*models.Invoice), nextID: 1}
}

func (s *fakeInvoiceStore) GetByID(id int) (*models.Invoice, error) {
	inv, ok := s.invoices[id]
	if !ok {
		return nil, errNoRows()
	}
	cp := *inv
	return &cp, nil
}

func (s *fakeInvoiceStore) List() ([]models.Invoice, error) {
	out := make([]models.Invoice, 0, len(s.invoices))
	for _, inv := range s.invoices {
		out = append(out, *inv)
	}
	return out, nil
}

// ListByCustomer sorts newest first, like the repository query.
func (s *fakeInvoiceStore) ListByCustomer(customerID int) ([]models.Invoice, error) {
	var out []models.Invoice
	for _, inv := range s.invoices {
		if inv.CustomerID == customerID {
			out = append(out, *inv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].IssuedDate.After(out[j].IssuedDate) })
	return out, nil
}

func (s *fakeInvoiceStore) Create(inv *models.Invoice) error {
	if err := s.createErr[inv.CustomerID]; err != nil {
		return err
	}
	inv.ID = s.nextID
	s.nextID++
	cp := *inv
	s.invoices[inv.ID] = &cp
	return nil
}

func (s *fakeInvoiceStore) UpdateStatus(id int, status models.InvoiceStatus) (*models.Invoice, error) {
	inv, ok := s.invoices[id]
	if !ok {
		return nil, errNoRows()
	}
	inv.Status = status
	cp := *inv
	return &cp, nil
}

type fakeMethodStore struct {
	methods []*models.PaymentMethod
	nextID  int
}

func (s *fakeMethodStore) ListByCustomer(customerID int) ([]models.PaymentMethod, error) {
	var out []models.PaymentMethod
	for _, m := range s.methods {
		if m.CustomerID == customerID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (s *fakeMethodStore) CountByCustomer(customerID int) (int, error) {
	n := 0
	for _, m := range s.methods {
		if m.CustomerID == customerID {
			n++
		}
	}
	return n, nil
}

func (s *fakeMethodStore) UnsetDefaults(customerID int) error {
	for _, m := range s.methods {
		if m.CustomerID == customerID {
			m.IsDefault = false
		}
	}
	return nil
}

func (s *fakeMethodStore) Insert(m *models.PaymentMethod) error {
	s.nextID++
	m.ID = s.nextID
	cp := *m
	s.methods = append(s.methods, &cp)
	return nil
}

func (s *fakeMethodStore) Delete(id int) error {
	for i, m := range s.methods {
		if m.ID == id {
			s.methods = append(s.methods[:i], s.methods[i+1:]...)
			return nil
		}
	}
	return nil
}

type listCustomers []models.Customer

func (l listCustomers) List() ([]models.Customer, error) { return l, nil }

type listPlans []models.Plan

func (l listPlans) List() ([]models.Plan, error) { return l, nil }

func intp(v int) *int { return &v }

func TestGenerateInvoiceNumberFormat(t *testing.T) {
	invoices := newFakeInvoiceStore()
	svc := NewBillingService(invoices, &fakeMethodStore{}, listCustomers{}, listPlans{}, lifecycle.Guard{}, 14)

	due := time.Now().AddDate(0, 0, 7)
	inv, err := svc.GenerateInvoice(3, 250000, due, "Setup fee")
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^INV-\d{6}$`), inv.InvoiceNumber)
	assert.Equal(t, models.InvoicePending, inv.Status)
	assert.Equal(t, 3, inv.CustomerID)
	require.NotNil(t, inv.Description)
	assert.Equal(t, "Setup fee", *inv.Description)
	assert.WithinDuration(t, time.Now(), inv.IssuedDate, time.Minute)
}

func TestGenerateInvoiceHeadsCustomerList(t *testing.T) {
	invoices := newFakeInvoiceStore()
	older := &models.Invoice{
		CustomerID:    3,
		InvoiceNumber: "INV-202507-0001-1",
		Amount:        300000,
		Status:        models.InvoicePaid,
		IssuedDate:    time.Now().AddDate(0, -1, 0),
		DueDate:       time.Now().AddDate(0, -1, 14),
	}
	require.NoError(t, invoices.Create(older))

	svc := NewBillingService(invoices, &fakeMethodStore{}, listCustomers{}, listPlans{}, lifecycle.Guard{}, 14)

	inv, err := svc.GenerateInvoice(3, 250000, time.Now().AddDate(0, 0, 7), "Setup fee")
	require.NoError(t, err)

	list, err := svc.ListCustomerInvoices(3)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, inv.InvoiceNumber, list[0].InvoiceNumber, "newest invoice leads the customer's list")
	assert.Equal(t, "INV-202507-0001-1", list[1].InvoiceNumber)
}

func TestRunBillingCycleInvoicesEligibleCustomersOnly(t *testing.T) {
	customers := listCustomers{
		{ID: 1, Name: "Active with plan", AccountStatus: models.AccountActive, PlanID: intp(10)},
		{ID: 2, Name: "Active without plan", AccountStatus: models.AccountActive},
		{ID: 3, Name: "Suspended with plan", AccountStatus: models.AccountSuspended, PlanID: intp(10)},
		{ID: 4, Name: "Lead", AccountStatus: models.AccountLead, PlanID: intp(10)},
	}
	plans := listPlans{{ID: 10, Name: "Home 50", Price: 300000}}
	invoices := newFakeInvoiceStore()

	svc := NewBillingService(invoices, &fakeMethodStore{}, customers, plans, lifecycle.Guard{}, 14)

	result, err := svc.RunBillingCycle()
	require.NoError(t, err)

	assert.Equal(t, 1, result.Created)
	assert.Empty(t, result.Failed)

	all, _ := invoices.List()
	require.Len(t, all, 1)
	inv := all[0]
	assert.Equal(t, 1, inv.CustomerID)
	assert.Equal(t, 300000.0, inv.Amount)
	assert.Equal(t, models.InvoicePending, inv.Status)
}

func TestRunBillingCycleNumberAndDueDate(t *testing.T) {
	customers := listCustomers{
		{ID: 1, AccountStatus: models.AccountActive, PlanID: intp(10)},
		{ID: 2, AccountStatus: models.AccountActive, PlanID: intp(10)},
	}
	plans := listPlans{{ID: 10, Price: 150000}}
	invoices := newFakeInvoiceStore()

	svc := NewBillingService(invoices, &fakeMethodStore{}, customers, plans, lifecycle.Guard{}, 21)

	result, err := svc.RunBillingCycle()
	require.NoError(t, err)
	require.Equal(t, 2, result.Created)

	month := time.Now().Format("200601")
	pattern := regexp.MustCompile(fmt.Sprintf(`^INV-%s-\d{4}-\d+$`, month))

	all, _ := invoices.List()
	var batches []string
	for _, inv := range all {
		assert.Regexp(t, pattern, inv.InvoiceNumber)
		assert.WithinDuration(t, time.Now().AddDate(0, 0, 21), inv.DueDate, time.Minute)
		require.NotNil(t, inv.Description)
		assert.Equal(t, "Monthly subscription "+time.Now().Format("2006-01"), *inv.Description)
		batches = append(batches, inv.InvoiceNumber[:len("INV-200601-0000")])
	}
	assert.Equal(t, batches[0], batches[1], "one run shares a single batch number")
}

func TestRunBillingCycleNoEligibleCustomersWritesNothing(t *testing.T) {
	customers := listCustomers{
		{ID: 1, AccountStatus: models.AccountLead, PlanID: intp(10)},
		{ID: 2, AccountStatus: models.AccountActive}, // no plan
	}
	invoices := newFakeInvoiceStore()

	svc := NewBillingService(invoices, &fakeMethodStore{}, customers, listPlans{}, lifecycle.Guard{}, 14)

	result, err := svc.RunBillingCycle()
	require.NoError(t, err)
	assert.Equal(t, 0, result.Created)

	all, _ := invoices.List()
	assert.Empty(t, all)
}

func TestRunBillingCycleReportsPerRowFailures(t *testing.T) {
	customers := listCustomers{
		{ID: 1, AccountStatus: models.AccountActive, PlanID: intp(10)},
		{ID: 2, AccountStatus: models.AccountActive, PlanID: intp(10)},
		{ID: 3, AccountStatus: models.AccountActive, PlanID: intp(10)},
	}
	invoices := newFakeInvoiceStore()
	invoices.createErr = map[int]error{2: errors.New("deadlock detected")}

	svc := NewBillingService(invoices, &fakeMethodStore{}, customers, listPlans{{ID: 10, Price: 100000}}, lifecycle.Guard{}, 14)

	result, err := svc.RunBillingCycle()
	require.NoError(t, err, "partial failure is reported, not returned")

	assert.Equal(t, 2, result.Created)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, 2, result.Failed[0].CustomerID)
	assert.Contains(t, result.Failed[0].Error, "deadlock")
}

func TestRunBillingCycleUnknownPlanBillsZero(t *testing.T) {
	customers := listCustomers{{ID: 1, AccountStatus: models.AccountActive, PlanID: intp(99)}}
	invoices := newFakeInvoiceStore()

	svc := NewBillingService(invoices, &fakeMethodStore{}, customers, listPlans{{ID: 10, Price: 100000}}, lifecycle.Guard{}, 14)

	result, err := svc.RunBillingCycle()
	require.NoError(t, err)
	require.Equal(t, 1, result.Created)

	all, _ := invoices.List()
	assert.Equal(t, 0.0, all[0].Amount)
}

func TestUpdateInvoiceStatusStrictGuard(t *testing.T) {
	invoices := newFakeInvoiceStore()
	invoices.invoices[1] = &models.Invoice{ID: 1, Status: models.InvoicePaid}

	svc := NewBillingService(invoices, &fakeMethodStore{}, listCustomers{}, listPlans{}, lifecycle.Guard{Strict: true}, 14)

	_, err := svc.UpdateInvoiceStatus(1, models.InvoicePending)
	assert.ErrorIs(t, err, lifecycle.ErrInvalidTransition)
	assert.Equal(t, models.InvoicePaid, invoices.invoices[1].Status)

	inv, err := svc.UpdateInvoiceStatus(1, models.InvoicePaid)
	require.NoError(t, err, "same-status write is a no-op, not a violation")
	assert.Equal(t, models.InvoicePaid, inv.Status)
}

func TestUpdateInvoiceStatusPermissive(t *testing.T) {
	invoices := newFakeInvoiceStore()
	invoices.invoices[1] = &models.Invoice{ID: 1, Status: models.InvoicePaid}

	svc := NewBillingService(invoices, &fakeMethodStore{}, listCustomers{}, listPlans{}, lifecycle.Guard{}, 14)

	inv, err := svc.UpdateInvoiceStatus(1, models.InvoicePending)
	require.NoError(t, err)
	assert.Equal(t, models.InvoicePending, inv.Status)
}

func TestAddPaymentMethodFirstIsForcedDefault(t *testing.T) {
	methods := &fakeMethodStore{}
	svc := NewBillingService(newFakeInvoiceStore(), methods, listCustomers{}, listPlans{}, lifecycle.Guard{}, 14)

	m, err := svc.AddPaymentMethod(1, &AddPaymentMethodRequest{Method: "bank_transfer", IsDefault: false})
	require.NoError(t, err)
	assert.True(t, m.IsDefault, "first method becomes default regardless of the flag")
}

func TestAddPaymentMethodNewDefaultUnsetsOthers(t *testing.T) {
	methods := &fakeMethodStore{}
	svc := NewBillingService(newFakeInvoiceStore(), methods, listCustomers{}, listPlans{}, lifecycle.Guard{}, 14)

	_, err := svc.AddPaymentMethod(1, &AddPaymentMethodRequest{Method: "bank_transfer"})
	require.NoError(t, err)
	_, err = svc.AddPaymentMethod(1, &AddPaymentMethodRequest{Method: "virtual_account", IsDefault: true})
	require.NoError(t, err)

	stored, _ := methods.ListByCustomer(1)
	require.Len(t, stored, 2)

	defaults := 0
	for _, m := range stored {
		if m.IsDefault {
			defaults++
			assert.Equal(t, "virtual_account", m.Method)
		}
	}
	assert.Equal(t, 1, defaults, "at most one default per customer")
}

func TestAddPaymentMethodNonDefaultKeepsExistingDefault(t *testing.T) {
	methods := &fakeMethodStore{}
	svc := NewBillingService(newFakeInvoiceStore(), methods, listCustomers{}, listPlans{}, lifecycle.Guard{}, 14)

	_, err := svc.AddPaymentMethod(1, &AddPaymentMethodRequest{Method: "bank_transfer"})
	require.NoError(t, err)
	m, err := svc.AddPaymentMethod(1, &AddPaymentMethodRequest{Method: "cash"})
	require.NoError(t, err)
	assert.False(t, m.IsDefault)

	stored, _ := methods.ListByCustomer(1)
	assert.True(t, stored[0].IsDefault)
}
