package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/NetindoGit/netindo_api/internal/lifecycle"
	"github.com/NetindoGit/netindo_api/internal/service"
	"github.com/NetindoGit/netindo_api/internal/utils"
)

// CustomerHandler handles customer management HTTP endpoints.
type CustomerHandler struct {
	customerService *service.CustomerService
}

// NewCustomerHandler constructs a CustomerHandler.
func NewCustomerHandler(customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// ListCustomers handles GET /v1/customers
func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	customers, err := h.customerService.ListCustomers()
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve customers")
		return
	}

	utils.Success(c, 200, "Customers retrieved", gin.H{
		"customers": customers,
		"total":     len(customers),
	})
}

// GetCustomer handles GET /v1/customers/:id
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid customer ID")
		return
	}

	customer, err := h.customerService.GetCustomer(id)
	if err != nil {
		if errors.Is(err, utils.ErrCustomerNotFound) {
			utils.Error(c, 404, "CUSTOMER_NOT_FOUND", "Customer not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve customer")
		return
	}
	if customer == nil {
		utils.Error(c, 404, "CUSTOMER_NOT_FOUND", "Customer not found")
		return
	}

	utils.Success(c, 200, "Customer retrieved", customer)
}

// CreateCustomer handles POST /v1/customers
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req service.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	customer, err := h.customerService.CreateCustomer(&req, actorFrom(c))
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to create customer")
		return
	}

	utils.Success(c, 201, "Customer created successfully", customer)
}

// UpdateCustomer handles PUT /v1/customers/:id
func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid customer ID")
		return
	}

	var req service.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	customer, err := h.customerService.UpdateCustomer(id, &req, actorFrom(c))
	if err != nil {
		if errors.Is(err, utils.ErrCustomerNotFound) {
			utils.Error(c, 404, "CUSTOMER_NOT_FOUND", "Customer not found")
			return
		}
		if errors.Is(err, lifecycle.ErrInvalidTransition) {
			utils.Error(c, 422, "INVALID_TRANSITION", err.Error())
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to update customer")
		return
	}

	utils.Success(c, 200, "Customer updated successfully", customer)
}

// DeleteCustomer handles DELETE /v1/customers/:id
func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid customer ID")
		return
	}

	if err := h.customerService.DeleteCustomer(id, actorFrom(c)); err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to delete customer")
		return
	}

	utils.Success(c, 200, "Customer deleted successfully", nil)
}

// actorFrom resolves the acting admin from the JWT claims set by the auth
// middleware. Unauthenticated contexts (workers, tests) fall back to system.
func actorFrom(c *gin.Context) string {
	if email := c.GetString("email"); email != "" {
		return email
	}
	return "system"
}
