// Package handlers contains the gin HTTP handlers of the analysis API.
package handlers

import (
	goerrors "errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/minervahq/minerva/internal/application/dto"
	"github.com/minervahq/minerva/internal/application/service"
	"github.com/minervahq/minerva/pkg/errors"
)

// AnalysisHandler handles analysis requests.
type AnalysisHandler struct {
	analysisService service.AnalysisAppService
	metrics         MetricsRecorder
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(analysisService service.AnalysisAppService, metrics MetricsRecorder) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService: analysisService,
		metrics:         metrics,
	}
}

// Analyze handles POST /api/v1/analyses. An empty body is valid and resolves
// to demo mode.
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	startTime := time.Now()

	// A missing body is valid: all inputs are optional.
	var req dto.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil && !goerrors.Is(err, io.EOF) {
		dto.SendError(c, errors.ErrInvalidRequest.WithError(err))
		return
	}

	mode := "seeded"
	if req.ToScoreInput().IsDemo() {
		mode = "demo"
	}

	result, err := h.analysisService.Analyze(c.Request.Context(), &req)
	if err != nil {
		h.metrics.RecordAnalysis(mode, "failure", "", time.Since(startTime))
		dto.SendError(c, err)
		return
	}

	h.metrics.RecordAnalysis(mode, "success", result.RiskLevel, time.Since(startTime))
	dto.SendSuccess(c, http.StatusOK, result)
}

// Current handles GET /api/v1/analyses/current.
func (h *AnalysisHandler) Current(c *gin.Context) {
	result, err := h.analysisService.CurrentReport(c.Request.Context())
	if err != nil {
		dto.SendError(c, err)
		return
	}
	dto.SendSuccess(c, http.StatusOK, result)
}

// Discard handles DELETE /api/v1/analyses/current.
func (h *AnalysisHandler) Discard(c *gin.Context) {
	if err := h.analysisService.DiscardReport(c.Request.Context()); err != nil {
		dto.SendError(c, err)
		return
	}
	dto.SendSuccess(c, http.StatusOK, gin.H{"status": "discarded"})
}
