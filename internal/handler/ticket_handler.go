package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/NetindoGit/netindo_api/internal/lifecycle"
	"github.com/NetindoGit/netindo_api/internal/models"
	"github.com/NetindoGit/netindo_api/internal/service"
	"github.com/NetindoGit/netindo_api/internal/utils"
)

// TicketHandler handles support ticket HTTP endpoints.
type TicketHandler struct {
	ticketService *service.TicketService
}

// NewTicketHandler constructs a TicketHandler.
func NewTicketHandler(ticketService *service.TicketService) *TicketHandler {
	return &TicketHandler{ticketService: ticketService}
}

// ListTickets handles GET /v1/tickets
func (h *TicketHandler) ListTickets(c *gin.Context) {
	tickets, err := h.ticketService.ListTickets()
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve tickets")
		return
	}

	utils.Success(c, 200, "Tickets retrieved", gin.H{
		"tickets": tickets,
		"total":   len(tickets),
	})
}

// GetTicket handles GET /v1/tickets/:id
func (h *TicketHandler) GetTicket(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid ticket ID")
		return
	}

	ticket, err := h.ticketService.GetTicket(id)
	if err != nil {
		if errors.Is(err, utils.ErrTicketNotFound) {
			utils.Error(c, 404, "TICKET_NOT_FOUND", "Ticket not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve ticket")
		return
	}
	if ticket == nil {
		utils.Error(c, 404, "TICKET_NOT_FOUND", "Ticket not found")
		return
	}

	utils.Success(c, 200, "Ticket retrieved", ticket)
}

// CreateTicket handles POST /v1/tickets
func (h *TicketHandler) CreateTicket(c *gin.Context) {
	var req service.CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	ticket, err := h.ticketService.CreateTicket(&req, actorFrom(c))
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to create ticket")
		return
	}

	utils.Success(c, 201, "Ticket created successfully", ticket)
}

// UpdateTicket handles PUT /v1/tickets/:id
func (h *TicketHandler) UpdateTicket(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid ticket ID")
		return
	}

	var patch models.TicketUpdate
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	ticket, err := h.ticketService.UpdateTicket(id, &patch, actorFrom(c))
	if err != nil {
		if errors.Is(err, utils.ErrTicketNotFound) {
			utils.Error(c, 404, "TICKET_NOT_FOUND", "Ticket not found")
			return
		}
		if errors.Is(err, lifecycle.ErrInvalidTransition) {
			utils.Error(c, 422, "INVALID_TRANSITION", err.Error())
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to update ticket")
		return
	}

	utils.Success(c, 200, "Ticket updated successfully", ticket)
}

// DeleteTicket handles DELETE /v1/tickets/:id
func (h *TicketHandler) DeleteTicket(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid ticket ID")
		return
	}

	if err := h.ticketService.DeleteTicket(id, actorFrom(c)); err != nil {
		if errors.Is(err, utils.ErrTicketNotFound) {
			utils.Error(c, 404, "TICKET_NOT_FOUND", "Ticket not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to delete ticket")
		return
	}

	utils.Success(c, 200, "Ticket deleted successfully", nil)
}
