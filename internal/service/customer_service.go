package service

import (
	"fmt"
	"strconv"

	"github.com/NetindoGit/netindo_api/internal/audit"
	"github.com/NetindoGit/netindo_api/internal/database"
	"github.com/NetindoGit/netindo_api/internal/lifecycle"
	"github.com/NetindoGit/netindo_api/internal/models"
	"github.com/NetindoGit/netindo_api/internal/utils"
)

type customerStore interface {
	GetByID(id int) (*models.Customer, error)
	List() ([]models.Customer, error)
	Create(c *models.Customer) error
	Update(c *models.Customer) error
	Delete(id int) error
}

// CustomerService handles subscriber business logic.
type CustomerService struct {
	store   customerStore
	auditor audit.Logger
	guard   lifecycle.Guard
}

// NewCustomerService constructs a CustomerService.
func NewCustomerService(store customerStore, auditor audit.Logger, guard lifecycle.Guard) *CustomerService {
	return &CustomerService{store: store, auditor: auditor, guard: guard}
}

// CreateCustomerRequest represents the request to create a customer.
type CreateCustomerRequest struct {
	Name               string                    `json:"name" binding:"required"`
	Email              string                    `json:"email" binding:"required"`
	Phone              string                    `json:"phone" binding:"required"`
	Type               models.CustomerType       `json:"type" binding:"required"`
	AccountStatus      models.AccountStatus      `json:"accountStatus"`
	InstallationStatus models.InstallationStatus `json:"installationStatus"`
	PlanID             *int                      `json:"planId"`
	Address            *string                   `json:"address"`
	ODPPort            *string                   `json:"odpPort"`
	Coordinates        *string                   `json:"coordinates"`
	SurveyNotes        *string                   `json:"surveyNotes"`
}

// UpdateCustomerRequest represents a partial customer update.
type UpdateCustomerRequest struct {
	Name               *string                    `json:"name"`
	Email              *string                    `json:"email"`
	Phone              *string                    `json:"phone"`
	Type               *models.CustomerType       `json:"type"`
	AccountStatus      *models.AccountStatus      `json:"accountStatus"`
	InstallationStatus *models.InstallationStatus `json:"installationStatus"`
	PlanID             *int                       `json:"planId"`
	Address            *string                    `json:"address"`
	ODPPort            *string                    `json:"odpPort"`
	Coordinates        *string                    `json:"coordinates"`
	SurveyNotes        *string                    `json:"surveyNotes"`
}

// ListCustomers retrieves all customers; a missing table yields an empty list.
func (s *CustomerService) ListCustomers() ([]models.Customer, error) {
	customers, err := s.store.List()
	if err != nil {
		if database.IsMissingTable(err) {
			return []models.Customer{}, nil
		}
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return customers, nil
}

// GetCustomer retrieves a customer by id; a missing table yields (nil, nil).
func (s *CustomerService) GetCustomer(id int) (*models.Customer, error) {
	c, err := s.store.GetByID(id)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, utils.ErrCustomerNotFound
		}
		if database.IsMissingTable(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

// CreateCustomer creates a customer and writes the audit record.
func (s *CustomerService) CreateCustomer(req *CreateCustomerRequest, actor string) (*models.Customer, error) {
	c := &models.Customer{
		Name:               req.Name,
		Email:              req.Email,
		Phone:              req.Phone,
		Type:               req.Type,
		AccountStatus:      req.AccountStatus,
		InstallationStatus: req.InstallationStatus,
		PlanID:             req.PlanID,
		Address:            req.Address,
		ODPPort:            req.ODPPort,
		Coordinates:        req.Coordinates,
		SurveyNotes:        req.SurveyNotes,
	}
	if c.AccountStatus == "" {
		c.AccountStatus = models.AccountLead
	}
	if c.InstallationStatus == "" {
		c.InstallationStatus = models.InstallPendingSurvey
	}

	if err := s.store.Create(c); err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}

	s.auditor.Record(models.AuditCreate, "Customer", strconv.Itoa(c.ID),
		fmt.Sprintf("Created customer: %s", c.Name), actor)

	return c, nil
}

// UpdateCustomer merges provided fields into the customer. The installation
// status transition is validated in strict mode; account_status stays an
// independent axis and is written as given.
func (s *CustomerService) UpdateCustomer(id int, req *UpdateCustomerRequest, actor string) (*models.Customer, error) {
	c, err := s.store.GetByID(id)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, utils.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("update customer: %w", err)
	}

	if req.InstallationStatus != nil {
		if err := s.guard.Installation(c.InstallationStatus, *req.InstallationStatus); err != nil {
			return nil, err
		}
		c.InstallationStatus = *req.InstallationStatus
	}
	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Email != nil {
		c.Email = *req.Email
	}
	if req.Phone != nil {
		c.Phone = *req.Phone
	}
	if req.Type != nil {
		c.Type = *req.Type
	}
	if req.AccountStatus != nil {
		c.AccountStatus = *req.AccountStatus
	}
	if req.PlanID != nil {
		c.PlanID = req.PlanID
	}
	if req.Address != nil {
		c.Address = req.Address
	}
	if req.ODPPort != nil {
		c.ODPPort = req.ODPPort
	}
	if req.Coordinates != nil {
		c.Coordinates = req.Coordinates
	}
	if req.SurveyNotes != nil {
		c.SurveyNotes = req.SurveyNotes
	}

	if err := s.store.Update(c); err != nil {
		return nil, fmt.Errorf("update customer: %w", err)
	}

	details := "Updated customer details"
	if req.AccountStatus != nil {
		details = fmt.Sprintf("Changed account status to %s", *req.AccountStatus)
	}
	s.auditor.Record(models.AuditUpdate, "Customer", strconv.Itoa(id), details, actor)

	return c, nil
}

// DeleteCustomer removes a customer permanently and writes the audit record.
func (s *CustomerService) DeleteCustomer(id int, actor string) error {
	if err := s.store.Delete(id); err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	s.auditor.Record(models.AuditDelete, "Customer", strconv.Itoa(id), "", actor)
	return nil
}
