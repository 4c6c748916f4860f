package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/minervahq/minerva/internal/application/dto"
	"github.com/minervahq/minerva/internal/application/service"
)

// DashboardHandler serves the dashboard reference data.
type DashboardHandler struct {
	analysisService service.AnalysisAppService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(analysisService service.AnalysisAppService) *DashboardHandler {
	return &DashboardHandler{analysisService: analysisService}
}

// Dashboard handles GET /api/v1/dashboard.
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	result, err := h.analysisService.Dashboard(c.Request.Context())
	if err != nil {
		dto.SendError(c, err)
		return
	}
	dto.SendSuccess(c, http.StatusOK, result)
}
