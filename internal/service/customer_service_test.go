package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NetindoGit/netindo_api/internal/lifecycle"
	"github.com/NetindoGit/netindo_api/internal/models"
	"github.com/NetindoGit/netindo_api/internal/utils"
)

type fakeCustomerStore struct {
	customers map[int]*models.Customer
	nextID    int
	listErr   error
	getErr    error
}

func newFakeCustomerStore(customers ...*models.Customer) *fakeCustomerStore {
	s := &fakeCustomerStore{customers: make(map[int]*models.Customer), nextID: 1}
	for _, c := range customers {
		s.customers[c.ID] = c
		if c.ID >= s.nextID {
			s.nextID = c.ID + 1
		}
	}
	return s
}

func (s *fakeCustomerStore) GetByID(id int) (*models.Customer, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	c, ok := s.customers[id]
	if !ok {
		return nil, errNoRows()
	}
	cp := *c
	return &cp, nil
}

func (s *fakeCustomerStore) List() ([]models.Customer, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := make([]models.Customer, 0, len(s.customers))
	for _, c := range s.customers {
		out = append(out, *c)
	}
	return out, nil
}

func (s *fakeCustomerStore) Create(c *models.Customer) error {
	c.ID = s.nextID
	s.nextID++
	cp := *c
	s.customers[c.ID] = &cp
	return nil
}

func (s *fakeCustomerStore) Update(c *models.Customer) error {
	if _, ok := s.customers[c.ID]; !ok {
		return errNoRows()
	}
	cp := *c
	s.customers[c.ID] = &cp
	return nil
}

func (s *fakeCustomerStore) Delete(id int) error {
	delete(s.customers, id)
	return nil
}

func newCustomerService(store *fakeCustomerStore, strict bool) (*CustomerService, *fakeAuditor) {
	auditor := &fakeAuditor{}
	svc := NewCustomerService(store, auditor, lifecycle.Guard{Strict: strict})
	return svc, auditor
}

func TestCreateCustomerDefaults(t *testing.T) {
	store := newFakeCustomerStore()
	svc, auditor := newCustomerService(store, false)

	c, err := svc.CreateCustomer(&CreateCustomerRequest{
		Name:  "PT Maju Jaya",
		Email: "it@majujaya.co.id",
		Phone: "0218880000",
		Type:  models.CustomerCorporate,
	}, "admin@netindo.co.id")
	require.NoError(t, err)

	assert.Equal(t, models.AccountLead, c.AccountStatus)
	assert.Equal(t, models.InstallPendingSurvey, c.InstallationStatus)

	require.Len(t, auditor.records, 1)
	assert.Equal(t, "Created customer: PT Maju Jaya", auditor.records[0].Details)
	assert.Equal(t, "Customer", auditor.records[0].Entity)
}

func TestListCustomersEmptyWhenTableMissing(t *testing.T) {
	store := newFakeCustomerStore()
	store.listErr = errNoTable
	svc, _ := newCustomerService(store, false)

	customers, err := svc.ListCustomers()
	require.NoError(t, err)
	assert.NotNil(t, customers)
	assert.Empty(t, customers)
}

func TestGetCustomerNilWhenTableMissing(t *testing.T) {
	store := newFakeCustomerStore()
	store.getErr = errNoTable
	svc, _ := newCustomerService(store, false)

	c, err := svc.GetCustomer(1)
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestGetCustomerNotFound(t *testing.T) {
	store := newFakeCustomerStore()
	svc, _ := newCustomerService(store, false)

	_, err := svc.GetCustomer(77)
	assert.ErrorIs(t, err, utils.ErrCustomerNotFound)
}

func TestUpdateCustomerMergesFields(t *testing.T) {
	store := newFakeCustomerStore(&models.Customer{
		ID: 1, Name: "Old Name", Email: "old@x.id", Phone: "0811",
		AccountStatus: models.AccountLead, InstallationStatus: models.InstallPendingSurvey,
	})
	svc, auditor := newCustomerService(store, false)

	name := "New Name"
	c, err := svc.UpdateCustomer(1, &UpdateCustomerRequest{Name: &name}, "admin")
	require.NoError(t, err)

	assert.Equal(t, "New Name", c.Name)
	assert.Equal(t, "old@x.id", c.Email, "unset fields stay untouched")

	require.Len(t, auditor.records, 1)
	assert.Equal(t, "Updated customer details", auditor.records[0].Details)
}

func TestUpdateCustomerAccountStatusAuditMessage(t *testing.T) {
	store := newFakeCustomerStore(&models.Customer{ID: 1, AccountStatus: models.AccountLead})
	svc, auditor := newCustomerService(store, false)

	status := models.AccountActive
	_, err := svc.UpdateCustomer(1, &UpdateCustomerRequest{AccountStatus: &status}, "admin")
	require.NoError(t, err)

	require.Len(t, auditor.records, 1)
	assert.Equal(t, "Changed account status to active", auditor.records[0].Details)
}

func TestUpdateCustomerStrictInstallationGuard(t *testing.T) {
	store := newFakeCustomerStore(&models.Customer{ID: 1, InstallationStatus: models.InstallInstalled})
	svc, auditor := newCustomerService(store, true)

	next := models.InstallPendingSurvey
	_, err := svc.UpdateCustomer(1, &UpdateCustomerRequest{InstallationStatus: &next}, "admin")
	assert.ErrorIs(t, err, lifecycle.ErrInvalidTransition)
	assert.Empty(t, auditor.records)
	assert.Equal(t, models.InstallInstalled, store.customers[1].InstallationStatus)
}

func TestUpdateCustomerPermissiveInstallationMove(t *testing.T) {
	store := newFakeCustomerStore(&models.Customer{ID: 1, InstallationStatus: models.InstallInstalled})
	svc, _ := newCustomerService(store, false)

	next := models.InstallPendingSurvey
	c, err := svc.UpdateCustomer(1, &UpdateCustomerRequest{InstallationStatus: &next}, "admin")
	require.NoError(t, err)
	assert.Equal(t, models.InstallPendingSurvey, c.InstallationStatus)
}

func TestDeleteCustomerAudits(t *testing.T) {
	store := newFakeCustomerStore(&models.Customer{ID: 1})
	svc, auditor := newCustomerService(store, false)

	require.NoError(t, svc.DeleteCustomer(1, "admin"))

	require.Len(t, auditor.records, 1)
	assert.Equal(t, models.AuditDelete, auditor.records[0].Action)
	assert.Equal(t, "", auditor.records[0].Details)
}
