package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/NetindoGit/netindo_api/internal/lifecycle"
	"github.com/NetindoGit/netindo_api/internal/models"
	"github.com/NetindoGit/netindo_api/internal/service"
	"github.com/NetindoGit/netindo_api/internal/utils"
)

// InvoiceHandler handles billing HTTP endpoints.
type InvoiceHandler struct {
	billingService  *service.BillingService
	customerService *service.CustomerService
	catalogService  *service.CatalogService
	exporter        *service.InvoiceExporter
	archive         *service.ArchiveService
}

// NewInvoiceHandler constructs an InvoiceHandler. archive may be nil when no
// archive bucket is configured.
func NewInvoiceHandler(
	billingService *service.BillingService,
	customerService *service.CustomerService,
	catalogService *service.CatalogService,
	exporter *service.InvoiceExporter,
	archive *service.ArchiveService,
) *InvoiceHandler {
	return &InvoiceHandler{
		billingService:  billingService,
		customerService: customerService,
		catalogService:  catalogService,
		exporter:        exporter,
		archive:         archive,
	}
}

// ListInvoices handles GET /v1/invoices
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	invoices, err := h.billingService.ListInvoices()
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve invoices")
		return
	}

	utils.Success(c, 200, "Invoices retrieved", gin.H{
		"invoices": invoices,
		"total":    len(invoices),
	})
}

// GetInvoice handles GET /v1/invoices/:id
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid invoice ID")
		return
	}

	invoice, err := h.billingService.GetInvoice(id)
	if err != nil {
		if errors.Is(err, utils.ErrInvoiceNotFound) {
			utils.Error(c, 404, "INVOICE_NOT_FOUND", "Invoice not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve invoice")
		return
	}
	if invoice == nil {
		utils.Error(c, 404, "INVOICE_NOT_FOUND", "Invoice not found")
		return
	}

	utils.Success(c, 200, "Invoice retrieved", invoice)
}

// GenerateInvoiceRequest represents the request to create an ad-hoc invoice.
type GenerateInvoiceRequest struct {
	CustomerID  int     `json:"customerId" binding:"required"`
	Amount      float64 `json:"amount" binding:"required"`
	DueDate     string  `json:"dueDate" binding:"required"`
	Description string  `json:"description"`
}

// GenerateInvoice handles POST /v1/invoices
func (h *InvoiceHandler) GenerateInvoice(c *gin.Context) {
	var req GenerateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "dueDate must be YYYY-MM-DD")
		return
	}

	invoice, err := h.billingService.GenerateInvoice(req.CustomerID, req.Amount, dueDate, req.Description)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to generate invoice")
		return
	}

	utils.Success(c, 201, "Invoice generated successfully", invoice)
}

// UpdateInvoiceStatusRequest represents the request to transition an invoice.
type UpdateInvoiceStatusRequest struct {
	Status models.InvoiceStatus `json:"status" binding:"required"`
}

// UpdateInvoiceStatus handles PATCH /v1/invoices/:id/status
func (h *InvoiceHandler) UpdateInvoiceStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid invoice ID")
		return
	}

	var req UpdateInvoiceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	invoice, err := h.billingService.UpdateInvoiceStatus(id, req.Status)
	if err != nil {
		if errors.Is(err, utils.ErrInvoiceNotFound) {
			utils.Error(c, 404, "INVOICE_NOT_FOUND", "Invoice not found")
			return
		}
		if errors.Is(err, lifecycle.ErrInvalidTransition) {
			utils.Error(c, 422, "INVALID_TRANSITION", err.Error())
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to update invoice")
		return
	}

	utils.Success(c, 200, "Invoice updated successfully", invoice)
}

// RunBillingCycle handles POST /v1/billing/run
func (h *InvoiceHandler) RunBillingCycle(c *gin.Context) {
	result, err := h.billingService.RunBillingCycle()
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Billing cycle failed")
		return
	}

	utils.Success(c, 200, "Billing cycle completed", result)
}

// ExportInvoice handles GET /v1/invoices/:id/export. It responds with a
// printable HTML document and, when an archive bucket is configured, uploads
// a copy in the background.
func (h *InvoiceHandler) ExportInvoice(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid invoice ID")
		return
	}

	invoice, err := h.billingService.GetInvoice(id)
	if err != nil || invoice == nil {
		utils.Error(c, 404, "INVOICE_NOT_FOUND", "Invoice not found")
		return
	}

	// Customer and plan enrich the document but are not required for it.
	customer, err := h.customerService.GetCustomer(invoice.CustomerID)
	if err != nil {
		customer = nil
	}
	var plan *models.Plan
	if customer != nil && customer.PlanID != nil {
		if p, err := h.catalogService.GetPlan(*customer.PlanID); err == nil {
			plan = p
		}
	}

	doc, err := h.exporter.Render(invoice, customer, plan)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to render invoice")
		return
	}

	if h.archive != nil {
		go func(inv models.Invoice, html []byte) {
			ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
			defer cancel()
			if _, err := h.archive.ArchiveInvoice(ctx, &inv, html); err != nil {
				log.Warn().Err(err).Str("invoice", inv.InvoiceNumber).Msg("Invoice archive failed")
			}
		}(*invoice, doc)
	}

	c.Header("Content-Disposition", `inline; filename="`+invoice.InvoiceNumber+`.html"`)
	c.Data(http.StatusOK, "text/html; charset=utf-8", doc)
}

// ListCustomerInvoices handles GET /v1/customers/:id/invoices
func (h *InvoiceHandler) ListCustomerInvoices(c *gin.Context) {
	customerID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid customer ID")
		return
	}

	invoices, err := h.billingService.ListCustomerInvoices(customerID)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve invoices")
		return
	}

	utils.Success(c, 200, "Invoices retrieved", gin.H{
		"invoices": invoices,
		"total":    len(invoices),
	})
}

// ListPaymentMethods handles GET /v1/customers/:id/payment-methods
func (h *InvoiceHandler) ListPaymentMethods(c *gin.Context) {
	customerID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid customer ID")
		return
	}

	methods, err := h.billingService.ListPaymentMethods(customerID)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve payment methods")
		return
	}

	utils.Success(c, 200, "Payment methods retrieved", gin.H{
		"paymentMethods": methods,
		"total":          len(methods),
	})
}

// AddPaymentMethod handles POST /v1/customers/:id/payment-methods
func (h *InvoiceHandler) AddPaymentMethod(c *gin.Context) {
	customerID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid customer ID")
		return
	}

	var req service.AddPaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	method, err := h.billingService.AddPaymentMethod(customerID, &req)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to add payment method")
		return
	}

	utils.Success(c, 201, "Payment method added successfully", method)
}

// RemovePaymentMethod handles DELETE /v1/customers/:id/payment-methods/:methodId
func (h *InvoiceHandler) RemovePaymentMethod(c *gin.Context) {
	methodID, err := strconv.Atoi(c.Param("methodId"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid payment method ID")
		return
	}

	if err := h.billingService.RemovePaymentMethod(methodID); err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to remove payment method")
		return
	}

	utils.Success(c, 200, "Payment method removed successfully", nil)
}
