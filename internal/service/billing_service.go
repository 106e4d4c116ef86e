package service

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/NetindoGit/netindo_api/internal/database"
	"github.com/NetindoGit/netindo_api/internal/lifecycle"
	"github.com/NetindoGit/netindo_api/internal/models"
	"github.com/NetindoGit/netindo_api/internal/utils"
)

type invoiceStore interface {
	GetByID(id int) (*models.Invoice, error)
	List() ([]models.Invoice, error)
	ListByCustomer(customerID int) ([]models.Invoice, error)
	Create(inv *models.Invoice) error
	UpdateStatus(id int, status models.InvoiceStatus) (*models.Invoice, error)
}

type paymentMethodStore interface {
	ListByCustomer(customerID int) ([]models.PaymentMethod, error)
	CountByCustomer(customerID int) (int, error)
	UnsetDefaults(customerID int) error
	Insert(m *models.PaymentMethod) error
	Delete(id int) error
}

type billingCustomerStore interface {
	List() ([]models.Customer, error)
}

type planStore interface {
	List() ([]models.Plan, error)
}

// BillingService handles invoicing and payment methods.
type BillingService struct {
	invoices  invoiceStore
	methods   paymentMethodStore
	customers billingCustomerStore
	plans     planStore
	guard     lifecycle.Guard
	dueDays   int
}

// NewBillingService constructs a BillingService.
func NewBillingService(
	invoices invoiceStore,
	methods paymentMethodStore,
	customers billingCustomerStore,
	plans planStore,
	guard lifecycle.Guard,
	dueDays int,
) *BillingService {
	if dueDays <= 0 {
		dueDays = 14
	}
	return &BillingService{
		invoices:  invoices,
		methods:   methods,
		customers: customers,
		plans:     plans,
		guard:     guard,
		dueDays:   dueDays,
	}
}

// GenerateInvoice creates a single ad-hoc invoice with status pending. The
// invoice number is the last six digits of the current epoch millis — a
// timestamp-suffix convention, not a global uniqueness guarantee.
func (s *BillingService) GenerateInvoice(customerID int, amount float64, dueDate time.Time, description string) (*models.Invoice, error) {
	now := time.Now()
	inv := &models.Invoice{
		CustomerID:    customerID,
		InvoiceNumber: fmt.Sprintf("INV-%06d", now.UnixMilli()%1000000),
		Amount:        amount,
		Status:        models.InvoicePending,
		IssuedDate:    now,
		DueDate:       dueDate,
	}
	if description != "" {
		inv.Description = &description
	}

	if err := s.invoices.Create(inv); err != nil {
		return nil, fmt.Errorf("generate invoice: %w", err)
	}
	return inv, nil
}

// BillingFailure reports one customer whose cycle invoice could not be
// written.
type BillingFailure struct {
	CustomerID int    `json:"customerId"`
	Error      string `json:"error"`
}

// BillingCycleResult summarizes a billing run. The batch insert is not
// atomic: rows are written one by one and partial failure is reported per
// customer rather than assumed away.
type BillingCycleResult struct {
	Created int              `json:"created"`
	Failed  []BillingFailure `json:"failed,omitempty"`
}

// RunBillingCycle creates one invoice per eligible customer: account_status
// active and a plan assigned. The amount is the matched plan's price, 0 when
// the plan lookup fails. With no eligible customers nothing is written.
func (s *BillingService) RunBillingCycle() (*BillingCycleResult, error) {
	customers, err := s.customers.List()
	if err != nil {
		if database.IsMissingTable(err) {
			return &BillingCycleResult{}, nil
		}
		return nil, fmt.Errorf("billing cycle: %w", err)
	}

	plans, err := s.plans.List()
	if err != nil && !database.IsMissingTable(err) {
		return nil, fmt.Errorf("billing cycle: %w", err)
	}
	priceByPlan := make(map[int]float64, len(plans))
	for _, p := range plans {
		priceByPlan[p.ID] = p.Price
	}

	var eligible []models.Customer
	for _, c := range customers {
		if c.AccountStatus == models.AccountActive && c.PlanID != nil {
			eligible = append(eligible, c)
		}
	}
	if len(eligible) == 0 {
		return &BillingCycleResult{}, nil
	}

	now := time.Now()
	batch := rand.Intn(10000)
	due := now.AddDate(0, 0, s.dueDays)
	result := &BillingCycleResult{}

	for i, c := range eligible {
		amount := 0.0
		if price, ok := priceByPlan[*c.PlanID]; ok {
			amount = price
		}
		desc := fmt.Sprintf("Monthly subscription %s", now.Format("2006-01"))
		inv := &models.Invoice{
			CustomerID:    c.ID,
			InvoiceNumber: fmt.Sprintf("INV-%s-%04d-%d", now.Format("200601"), batch, i+1),
			Amount:        amount,
			Status:        models.InvoicePending,
			Description:   &desc,
			IssuedDate:    now,
			DueDate:       due,
		}
		if err := s.invoices.Create(inv); err != nil {
			log.Error().Err(err).Int("customer_id", c.ID).Msg("Billing cycle invoice failed")
			result.Failed = append(result.Failed, BillingFailure{CustomerID: c.ID, Error: err.Error()})
			continue
		}
		result.Created++
	}

	log.Info().Int("created", result.Created).Int("failed", len(result.Failed)).Msg("Billing cycle completed")
	return result, nil
}

// UpdateInvoiceStatus overwrites an invoice's status. In permissive mode any
// value goes through — the panel treats this as a user-correction escape
// hatch; strict mode validates against the lifecycle table.
func (s *BillingService) UpdateInvoiceStatus(id int, status models.InvoiceStatus) (*models.Invoice, error) {
	current, err := s.invoices.GetByID(id)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, utils.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("update invoice status: %w", err)
	}
	if err := s.guard.Invoice(current.Status, status); err != nil {
		return nil, err
	}

	inv, err := s.invoices.UpdateStatus(id, status)
	if err != nil {
		return nil, fmt.Errorf("update invoice status: %w", err)
	}
	return inv, nil
}

// ListInvoices retrieves all invoices; a missing table yields an empty list.
func (s *BillingService) ListInvoices() ([]models.Invoice, error) {
	invoices, err := s.invoices.List()
	if err != nil {
		if database.IsMissingTable(err) {
			return []models.Invoice{}, nil
		}
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return invoices, nil
}

// ListCustomerInvoices retrieves one customer's invoices, newest first.
func (s *BillingService) ListCustomerInvoices(customerID int) ([]models.Invoice, error) {
	invoices, err := s.invoices.ListByCustomer(customerID)
	if err != nil {
		if database.IsMissingTable(err) {
			return []models.Invoice{}, nil
		}
		return nil, fmt.Errorf("list customer invoices: %w", err)
	}
	return invoices, nil
}

// GetInvoice retrieves an invoice by id.
func (s *BillingService) GetInvoice(id int) (*models.Invoice, error) {
	inv, err := s.invoices.GetByID(id)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, utils.ErrInvoiceNotFound
		}
		if database.IsMissingTable(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

// AddPaymentMethodRequest represents the request to add a payment method.
type AddPaymentMethodRequest struct {
	Method    string  `json:"method" binding:"required"`
	Details   *string `json:"details"`
	IsDefault bool    `json:"isDefault"`
}

// AddPaymentMethod inserts a payment method for a customer while keeping the
// default flag exclusive: a new default unsets all others first, and the
// first method a customer ever adds is forced default regardless of the
// requested flag.
func (s *BillingService) AddPaymentMethod(customerID int, req *AddPaymentMethodRequest) (*models.PaymentMethod, error) {
	count, err := s.methods.CountByCustomer(customerID)
	if err != nil {
		return nil, fmt.Errorf("add payment method: %w", err)
	}

	isDefault := req.IsDefault
	if count == 0 {
		isDefault = true
	} else if isDefault {
		if err := s.methods.UnsetDefaults(customerID); err != nil {
			return nil, fmt.Errorf("add payment method: %w", err)
		}
	}

	m := &models.PaymentMethod{
		CustomerID: customerID,
		Method:     req.Method,
		Details:    req.Details,
		IsDefault:  isDefault,
	}
	if err := s.methods.Insert(m); err != nil {
		return nil, fmt.Errorf("add payment method: %w", err)
	}
	return m, nil
}

// RemovePaymentMethod deletes a payment method. No default reassignment
// happens: a customer whose default method is removed simply has none until
// the next add.
func (s *BillingService) RemovePaymentMethod(id int) error {
	if err := s.methods.Delete(id); err != nil {
		return fmt.Errorf("remove payment method: %w", err)
	}
	return nil
}

// ListPaymentMethods retrieves a customer's payment methods.
func (s *BillingService) ListPaymentMethods(customerID int) ([]models.PaymentMethod, error) {
	methods, err := s.methods.ListByCustomer(customerID)
	if err != nil {
		if database.IsMissingTable(err) {
			return []models.PaymentMethod{}, nil
		}
		return nil, fmt.Errorf("list payment methods: %w", err)
	}
	return methods, nil
}
