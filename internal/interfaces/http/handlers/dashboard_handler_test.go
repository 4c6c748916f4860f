package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/minervahq/minerva/internal/application/dto"
)

func TestDashboardHandler_Dashboard(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := new(MockAnalysisAppService)
	handler := NewDashboardHandler(mockSvc)
	router := gin.New()
	router.GET("/api/v1/dashboard", handler.Dashboard)

	mockSvc.On("Dashboard", mock.Anything).Return(&dto.DashboardResponse{
		Distribution: []dto.DistributionBucketDTO{
			{RiskLevel: "Very Low Risk", Patients: 120, Color: "#36B37E"},
		},
		QuickStats: dto.QuickStatsDTO{DatasetSize: 482, ADPatients: 241, Controls: 241, Accuracy: 94.2},
		Disclaimer: "for research purposes only",
	}, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp dto.APIResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, data, "distribution")
	assert.Contains(t, data, "quick_stats")
	mockSvc.AssertExpectations(t)
}
