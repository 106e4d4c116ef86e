package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/NetindoGit/netindo_api/internal/service"
	"github.com/NetindoGit/netindo_api/internal/utils"
)

// AuditHandler serves the activity history panel.
type AuditHandler struct {
	auditService *service.AuditService
}

// NewAuditHandler constructs an AuditHandler.
func NewAuditHandler(auditService *service.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// RecentActivity handles GET /v1/audit
func (h *AuditHandler) RecentActivity(c *gin.Context) {
	limit := 100
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	entries, err := h.auditService.RecentActivity(limit)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve activity")
		return
	}

	utils.Success(c, 200, "Activity retrieved", gin.H{
		"entries": entries,
		"total":   len(entries),
	})
}

// EntityHistory handles GET /v1/audit/:entity/:id
func (h *AuditHandler) EntityHistory(c *gin.Context) {
	entity := c.Param("entity")
	entityID := c.Param("id")
	if entity == "" || entityID == "" {
		utils.Error(c, 400, "INVALID_REQUEST", "Entity and id are required")
		return
	}

	entries, err := h.auditService.EntityHistory(entity, entityID)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve history")
		return
	}

	utils.Success(c, 200, "History retrieved", gin.H{
		"entries": entries,
		"total":   len(entries),
	})
}
