package http

import (
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appservice "github.com/minervahq/minerva/internal/application/service"
	"github.com/minervahq/minerva/internal/config"
	domainservice "github.com/minervahq/minerva/internal/domain/service"
	"github.com/minervahq/minerva/internal/infrastructure/monitoring"
	"github.com/minervahq/minerva/internal/infrastructure/persistence/memory"
	"github.com/minervahq/minerva/internal/interfaces/http/handlers"
	"github.com/minervahq/minerva/pkg/logger"
)

// One metrics instance per test binary; promauto registers globally.
var testMetrics = monitoring.NewMetrics()

func newTestRouter(t *testing.T) *Router {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := logger.NewNoopLogger()

	scorer := domainservice.NewRiskScorer(
		domainservice.NewPCGSourceFactory(), time.Now, log)
	store := memory.NewCacheReportStore(time.Minute)
	analysisSvc := appservice.NewAnalysisAppService(scorer, store, log)

	return NewRouter(RouterDependencies{
		Config: &config.Config{
			Server: config.ServerConfig{Host: "127.0.0.1", Port: 0},
		},
		Logger:           log,
		AnalysisHandler:  handlers.NewAnalysisHandler(analysisSvc, testMetrics),
		DashboardHandler: handlers.NewDashboardHandler(analysisSvc),
		HealthHandler:    handlers.NewHealthHandler(nil, log),
	})
}

func TestRouter_ServesDashboardPage(t *testing.T) {
	router := newTestRouter(t)

	req, _ := nethttp.NewRequest(nethttp.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	router.Engine().ServeHTTP(rr, req)

	assert.Equal(t, nethttp.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rr.Body.String(), "MINERVA")
}

func TestRouter_HealthEndpoints(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/health/live", "/health/ready"} {
		req, _ := nethttp.NewRequest(nethttp.MethodGet, path, nil)
		rr := httptest.NewRecorder()
		router.Engine().ServeHTTP(rr, req)
		assert.Equal(t, nethttp.StatusOK, rr.Code, path)
	}
}

func TestRouter_NotFound(t *testing.T) {
	router := newTestRouter(t)

	req, _ := nethttp.NewRequest(nethttp.MethodGet, "/api/v1/nope", nil)
	rr := httptest.NewRecorder()
	router.Engine().ServeHTTP(rr, req)

	assert.Equal(t, nethttp.StatusNotFound, rr.Code)
}

func TestRouter_AnalyzeRoundTrip(t *testing.T) {
	router := newTestRouter(t)

	req, _ := nethttp.NewRequest(nethttp.MethodPost, "/api/v1/analyses",
		strings.NewReader(`{"demo_mode": true}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.Engine().ServeHTTP(rr, req)

	require.Equal(t, nethttp.StatusOK, rr.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			AnalysisID  string  `json:"analysis_id"`
			Probability float64 `json:"probability"`
			RiskLevel   string  `json:"risk_level"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Regexp(t, `^MIN-\d{8}-\d{4}$`, resp.Data.AnalysisID)
	assert.GreaterOrEqual(t, resp.Data.Probability, 5.0)
	assert.LessOrEqual(t, resp.Data.Probability, 95.0)
	assert.NotEmpty(t, resp.Data.RiskLevel)

	// The analysis becomes the current report.
	req, _ = nethttp.NewRequest(nethttp.MethodGet, "/api/v1/analyses/current", nil)
	rr = httptest.NewRecorder()
	router.Engine().ServeHTTP(rr, req)
	assert.Equal(t, nethttp.StatusOK, rr.Code)
}
