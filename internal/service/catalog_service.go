package service

import (
	"fmt"
	"strconv"

	"github.com/NetindoGit/netindo_api/internal/audit"
	"github.com/NetindoGit/netindo_api/internal/database"
	"github.com/NetindoGit/netindo_api/internal/models"
	"github.com/NetindoGit/netindo_api/internal/utils"
)

type planCatalogStore interface {
	GetByID(id int) (*models.Plan, error)
	List() ([]models.Plan, error)
	Create(p *models.Plan) error
	Update(p *models.Plan) error
	Delete(id int) error
}

type employeeStore interface {
	GetByID(id int) (*models.Employee, error)
	List() ([]models.Employee, error)
	Create(e *models.Employee) error
	Update(e *models.Employee) error
	Delete(id int) error
}

// CatalogService manages plans and employees, the reference data the rest of
// the panel points at.
type CatalogService struct {
	plans     planCatalogStore
	employees employeeStore
	auditor   audit.Logger
}

// NewCatalogService constructs a CatalogService.
func NewCatalogService(plans planCatalogStore, employees employeeStore, auditor audit.Logger) *CatalogService {
	return &CatalogService{plans: plans, employees: employees, auditor: auditor}
}

// ListPlans retrieves all plans; a missing table yields an empty list.
func (s *CatalogService) ListPlans() ([]models.Plan, error) {
	plans, err := s.plans.List()
	if err != nil {
		if database.IsMissingTable(err) {
			return []models.Plan{}, nil
		}
		return nil, fmt.Errorf("list plans: %w", err)
	}
	return plans, nil
}

// GetPlan retrieves a plan by id.
func (s *CatalogService) GetPlan(id int) (*models.Plan, error) {
	p, err := s.plans.GetByID(id)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, utils.ErrPlanNotFound
		}
		if database.IsMissingTable(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get plan: %w", err)
	}
	return p, nil
}

// CreatePlan adds a plan to the catalog.
func (s *CatalogService) CreatePlan(p *models.Plan, actor string) (*models.Plan, error) {
	if err := s.plans.Create(p); err != nil {
		return nil, fmt.Errorf("create plan: %w", err)
	}
	s.auditor.Record(models.AuditCreate, "Plan", strconv.Itoa(p.ID),
		fmt.Sprintf("Created plan: %s", p.Name), actor)
	return p, nil
}

// UpdatePlan overwrites a plan.
func (s *CatalogService) UpdatePlan(p *models.Plan, actor string) (*models.Plan, error) {
	if err := s.plans.Update(p); err != nil {
		if database.IsNotFound(err) {
			return nil, utils.ErrPlanNotFound
		}
		return nil, fmt.Errorf("update plan: %w", err)
	}
	s.auditor.Record(models.AuditUpdate, "Plan", strconv.Itoa(p.ID), "Updated plan details", actor)
	return p, nil
}

// DeletePlan removes a plan from the catalog.
func (s *CatalogService) DeletePlan(id int, actor string) error {
	if err := s.plans.Delete(id); err != nil {
		return fmt.Errorf("delete plan: %w", err)
	}
	s.auditor.Record(models.AuditDelete, "Plan", strconv.Itoa(id), "", actor)
	return nil
}

// ListEmployees retrieves all employees; a missing table yields an empty list.
func (s *CatalogService) ListEmployees() ([]models.Employee, error) {
	employees, err := s.employees.List()
	if err != nil {
		if database.IsMissingTable(err) {
			return []models.Employee{}, nil
		}
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return employees, nil
}

// GetEmployee retrieves an employee by id.
func (s *CatalogService) GetEmployee(id int) (*models.Employee, error) {
	e, err := s.employees.GetByID(id)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, utils.ErrEmployeeNotFound
		}
		if database.IsMissingTable(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return e, nil
}

// CreateEmployee adds a staff member.
func (s *CatalogService) CreateEmployee(e *models.Employee, actor string) (*models.Employee, error) {
	if err := s.employees.Create(e); err != nil {
		return nil, fmt.Errorf("create employee: %w", err)
	}
	s.auditor.Record(models.AuditCreate, "Employee", strconv.Itoa(e.ID),
		fmt.Sprintf("Created employee: %s", e.Name), actor)
	return e, nil
}

// UpdateEmployee overwrites a staff member.
func (s *CatalogService) UpdateEmployee(e *models.Employee, actor string) (*models.Employee, error) {
	if err := s.employees.Update(e); err != nil {
		if database.IsNotFound(err) {
			return nil, utils.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("update employee: %w", err)
	}
	s.auditor.Record(models.AuditUpdate, "Employee", strconv.Itoa(e.ID), "Updated employee details", actor)
	return e, nil
}

// DeleteEmployee removes a staff member.
func (s *CatalogService) DeleteEmployee(id int, actor string) error {
	if err := s.employees.Delete(id); err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	s.auditor.Record(models.AuditDelete, "Employee", strconv.Itoa(id), "", actor)
	return nil
}
