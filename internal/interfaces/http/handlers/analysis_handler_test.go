package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/minervahq/minerva/internal/application/dto"
	"github.com/minervahq/minerva/pkg/errors"
)

// MockAnalysisAppService is a mock for the AnalysisAppService.
type MockAnalysisAppService struct {
	mock.Mock
}

func (m *MockAnalysisAppService) Analyze(ctx context.Context, req *dto.AnalyzeRequest) (*dto.AnalysisResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AnalysisResponse), args.Error(1)
}

func (m *MockAnalysisAppService) CurrentReport(ctx context.Context) (*dto.AnalysisResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AnalysisResponse), args.Error(1)
}

func (m *MockAnalysisAppService) DiscardReport(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAnalysisAppService) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DashboardResponse), args.Error(1)
}

// MockMetricsRecorder is a mock for MetricsRecorder.
type MockMetricsRecorder struct {
	mock.Mock
}

func (m *MockMetricsRecorder) RecordAnalysis(mode, result, riskLevel string, duration time.Duration) {
	m.Called(mode, result, riskLevel, duration)
}

func (m *MockMetricsRecorder) RecordRateLimitHit() {
	m.Called()
}

func sampleResponse() *dto.AnalysisResponse {
	return &dto.AnalysisResponse{
		AnalysisID:     "MIN-20260824-4242",
		Probability:    36.4,
		RiskLevel:      "Low Risk",
		Recommendation: "Annual cognitive screening recommended",
		Color:          "#4C9AFF",
		Icon:           "✅",
		DemoMode:       true,
		CreatedAt:      time.Now().UTC(),
	}
}

func setupAnalysisRouter(svc *MockAnalysisAppService, metrics *MockMetricsRecorder) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewAnalysisHandler(svc, metrics)
	router := gin.New()
	router.POST("/api/v1/analyses", handler.Analyze)
	router.GET("/api/v1/analyses/current", handler.Current)
	router.DELETE("/api/v1/analyses/current", handler.Discard)
	return router
}

func TestAnalysisHandler_Analyze(t *testing.T) {
	t.Run("successful demo analysis", func(t *testing.T) {
		mockSvc := new(MockAnalysisAppService)
		mockMetrics := new(MockMetricsRecorder)
		router := setupAnalysisRouter(mockSvc, mockMetrics)

		mockSvc.On("Analyze", mock.Anything, mock.MatchedBy(func(r *dto.AnalyzeRequest) bool {
			return r.DemoMode
		})).Return(sampleResponse(), nil).Once()
		mockMetrics.On("RecordAnalysis", "demo", "success", "Low Risk", mock.Anything).Return().Once()

		body, _ := json.Marshal(&dto.AnalyzeRequest{DemoMode: true})
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/analyses", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp dto.APIResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.True(t, resp.Success)

		mockSvc.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("empty body resolves to demo mode", func(t *testing.T) {
		mockSvc := new(MockAnalysisAppService)
		mockMetrics := new(MockMetricsRecorder)
		router := setupAnalysisRouter(mockSvc, mockMetrics)

		mockSvc.On("Analyze", mock.Anything, mock.Anything).Return(sampleResponse(), nil).Once()
		mockMetrics.On("RecordAnalysis", "demo", "success", "Low Risk", mock.Anything).Return().Once()

		req, _ := http.NewRequest(http.MethodPost, "/api/v1/analyses", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("seeded mode label for real inputs", func(t *testing.T) {
		mockSvc := new(MockAnalysisAppService)
		mockMetrics := new(MockMetricsRecorder)
		router := setupAnalysisRouter(mockSvc, mockMetrics)

		resp := sampleResponse()
		resp.DemoMode = false
		mockSvc.On("Analyze", mock.Anything, mock.Anything).Return(resp, nil).Once()
		mockMetrics.On("RecordAnalysis", "seeded", "success", "Low Risk", mock.Anything).Return().Once()

		body, _ := json.Marshal(&dto.AnalyzeRequest{AudioRef: "sample.wav"})
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/analyses", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("demo flag wins over real inputs in the mode label", func(t *testing.T) {
		mockSvc := new(MockAnalysisAppService)
		mockMetrics := new(MockMetricsRecorder)
		router := setupAnalysisRouter(mockSvc, mockMetrics)

		mockSvc.On("Analyze", mock.Anything, mock.Anything).Return(sampleResponse(), nil).Once()
		mockMetrics.On("RecordAnalysis", "demo", "success", "Low Risk", mock.Anything).Return().Once()

		body, _ := json.Marshal(&dto.AnalyzeRequest{AudioRef: "sample.wav", DemoMode: true})
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/analyses", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("malformed JSON is rejected", func(t *testing.T) {
		mockSvc := new(MockAnalysisAppService)
		mockMetrics := new(MockMetricsRecorder)
		router := setupAnalysisRouter(mockSvc, mockMetrics)

		req, _ := http.NewRequest(http.MethodPost, "/api/v1/analyses",
			bytes.NewBufferString("{not json"))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)

		var resp dto.APIResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		require.NotNil(t, resp.Error)
		assert.Equal(t, errors.ErrCodeInvalidRequest, resp.Error.Code)
		mockSvc.AssertNotCalled(t, "Analyze")
	})

	t.Run("service failure records failure metric", func(t *testing.T) {
		mockSvc := new(MockAnalysisAppService)
		mockMetrics := new(MockMetricsRecorder)
		router := setupAnalysisRouter(mockSvc, mockMetrics)

		mockSvc.On("Analyze", mock.Anything, mock.Anything).
			Return(nil, errors.ErrInvalidRequest).Once()
		mockMetrics.On("RecordAnalysis", "demo", "failure", "", mock.Anything).Return().Once()

		body, _ := json.Marshal(&dto.AnalyzeRequest{DemoMode: true})
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/analyses", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockMetrics.AssertExpectations(t)
	})
}

func TestAnalysisHandler_Current(t *testing.T) {
	t.Run("returns held report", func(t *testing.T) {
		mockSvc := new(MockAnalysisAppService)
		router := setupAnalysisRouter(mockSvc, new(MockMetricsRecorder))

		mockSvc.On("CurrentReport", mock.Anything).Return(sampleResponse(), nil).Once()

		req, _ := http.NewRequest(http.MethodGet, "/api/v1/analyses/current", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("404 when nothing is held", func(t *testing.T) {
		mockSvc := new(MockAnalysisAppService)
		router := setupAnalysisRouter(mockSvc, new(MockMetricsRecorder))

		mockSvc.On("CurrentReport", mock.Anything).Return(nil, errors.ErrNotFound).Once()

		req, _ := http.NewRequest(http.MethodGet, "/api/v1/analyses/current", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)

		var resp dto.APIResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		require.NotNil(t, resp.Error)
		assert.Equal(t, errors.ErrCodeNotFound, resp.Error.Code)
	})
}

func TestAnalysisHandler_Discard(t *testing.T) {
	mockSvc := new(MockAnalysisAppService)
	router := setupAnalysisRouter(mockSvc, new(MockMetricsRecorder))

	mockSvc.On("DiscardReport", mock.Anything).Return(nil).Once()

	req, _ := http.NewRequest(http.MethodDelete, "/api/v1/analyses/current", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	mockSvc.AssertExpectations(t)
}
