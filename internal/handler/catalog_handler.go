package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/NetindoGit/netindo_api/internal/models"
	"github.com/NetindoGit/netindo_api/internal/service"
	"github.com/NetindoGit/netindo_api/internal/utils"
)

// CatalogHandler handles plan and employee HTTP endpoints.
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler constructs a CatalogHandler.
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ListPlans handles GET /v1/plans
func (h *CatalogHandler) ListPlans(c *gin.Context) {
	plans, err := h.catalogService.ListPlans()
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve plans")
		return
	}

	utils.Success(c, 200, "Plans retrieved", gin.H{
		"plans": plans,
		"total": len(plans),
	})
}

// GetPlan handles GET /v1/plans/:id
func (h *CatalogHandler) GetPlan(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid plan ID")
		return
	}

	plan, err := h.catalogService.GetPlan(id)
	if err != nil {
		if errors.Is(err, utils.ErrPlanNotFound) {
			utils.Error(c, 404, "PLAN_NOT_FOUND", "Plan not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve plan")
		return
	}
	if plan == nil {
		utils.Error(c, 404, "PLAN_NOT_FOUND", "Plan not found")
		return
	}

	utils.Success(c, 200, "Plan retrieved", plan)
}

// CreatePlan handles POST /v1/plans
func (h *CatalogHandler) CreatePlan(c *gin.Context) {
	var plan models.Plan
	if err := c.ShouldBindJSON(&plan); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}
	if plan.Name == "" {
		utils.Error(c, 400, "MISSING_REQUIRED_FIELD", "Plan name is required")
		return
	}

	created, err := h.catalogService.CreatePlan(&plan, actorFrom(c))
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to create plan")
		return
	}

	utils.Success(c, 201, "Plan created successfully", created)
}

// UpdatePlan handles PUT /v1/plans/:id
func (h *CatalogHandler) UpdatePlan(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid plan ID")
		return
	}

	var plan models.Plan
	if err := c.ShouldBindJSON(&plan); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}
	plan.ID = id

	updated, err := h.catalogService.UpdatePlan(&plan, actorFrom(c))
	if err != nil {
		if errors.Is(err, utils.ErrPlanNotFound) {
			utils.Error(c, 404, "PLAN_NOT_FOUND", "Plan not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to update plan")
		return
	}

	utils.Success(c, 200, "Plan updated successfully", updated)
}

// DeletePlan handles DELETE /v1/plans/:id
func (h *CatalogHandler) DeletePlan(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid plan ID")
		return
	}

	if err := h.catalogService.DeletePlan(id, actorFrom(c)); err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to delete plan")
		return
	}

	utils.Success(c, 200, "Plan deleted successfully", nil)
}

// ListEmployees handles GET /v1/employees
func (h *CatalogHandler) ListEmployees(c *gin.Context) {
	employees, err := h.catalogService.ListEmployees()
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve employees")
		return
	}

	utils.Success(c, 200, "Employees retrieved", gin.H{
		"employees": employees,
		"total":     len(employees),
	})
}

// GetEmployee handles GET /v1/employees/:id
func (h *CatalogHandler) GetEmployee(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid employee ID")
		return
	}

	employee, err := h.catalogService.GetEmployee(id)
	if err != nil {
		if errors.Is(err, utils.ErrEmployeeNotFound) {
			utils.Error(c, 404, "EMPLOYEE_NOT_FOUND", "Employee not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve employee")
		return
	}
	if employee == nil {
		utils.Error(c, 404, "EMPLOYEE_NOT_FOUND", "Employee not found")
		return
	}

	utils.Success(c, 200, "Employee retrieved", employee)
}

// CreateEmployee handles POST /v1/employees
func (h *CatalogHandler) CreateEmployee(c *gin.Context) {
	var employee models.Employee
	if err := c.ShouldBindJSON(&employee); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}
	if employee.Name == "" || employee.Email == "" {
		utils.Error(c, 400, "MISSING_REQUIRED_FIELD", "Employee name and email are required")
		return
	}

	created, err := h.catalogService.CreateEmployee(&employee, actorFrom(c))
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to create employee")
		return
	}

	utils.Success(c, 201, "Employee created successfully", created)
}

// UpdateEmployee handles PUT /v1/employees/:id
func (h *CatalogHandler) UpdateEmployee(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid employee ID")
		return
	}

	var employee models.Employee
	if err := c.ShouldBindJSON(&employee); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}
	employee.ID = id

	updated, err := h.catalogService.UpdateEmployee(&employee, actorFrom(c))
	if err != nil {
		if errors.Is(err, utils.ErrEmployeeNotFound) {
			utils.Error(c, 404, "EMPLOYEE_NOT_FOUND", "Employee not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to update employee")
		return
	}

	utils.Success(c, 200, "Employee updated successfully", updated)
}

// DeleteEmployee handles DELETE /v1/employees/:id
func (h *CatalogHandler) DeleteEmployee(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid employee ID")
		return
	}

	if err := h.catalogService.DeleteEmployee(id, actorFrom(c)); err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to delete employee")
		return
	}

	utils.Success(c, 200, "Employee deleted successfully", nil)
}
