package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/NetindoGit/netindo_api/internal/cache"
	"github.com/NetindoGit/netindo_api/internal/service"
	"github.com/NetindoGit/netindo_api/internal/utils"
)

// ReportHandler serves dashboard summaries.
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler constructs a ReportHandler.
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Dashboard handles GET /v1/reports/dashboard. Passing refresh=true drops
// the cached summary before recomputing.
func (h *ReportHandler) Dashboard(c *gin.Context) {
	var (
		data *cache.DashboardData
		err  error
	)
	if c.Query("refresh") == "true" {
		data, err = h.reportService.Refresh(c.Request.Context())
	} else {
		data, err = h.reportService.Dashboard(c.Request.Context())
	}
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to build dashboard")
		return
	}

	utils.Success(c, 200, "Dashboard retrieved", data)
}
