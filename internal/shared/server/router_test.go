package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"

	"qa-report/internal/shared/config"
)

func TestRouterWithoutDatabase(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(config.Config{}, nil)

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), `"database":false`) {
		t.Fatalf("unexpected health response %d %s", resp.Code, resp.Body.String())
	}

	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/agents", nil))
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected report routes to be absent, got %d", resp.Code)
	}

	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(resp.Body.String(), "report_rendered_total") {
		t.Fatalf("expected metrics exposition")
	}
}

func TestRouterRateLimitsDownloads(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	mock.ExpectQuery("FROM CombinedAnalyses c").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"AgentName", "NumberOfReportsSuccessfullyAnalyzed", "AnalysisPeriodNote", "AnalysisDateTime"}))

	r := NewRouter(config.Config{RenderRate: 0.001, RenderBurst: 1, DefaultFormat: "docx"}, db)

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/analyses/5/report", nil))
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected first request to reach the handler, got %d", resp.Code)
	}
	if resp.Header().Get("X-Request-Id") == "" {
		t.Fatalf("expected request id header")
	}

	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/analyses/5/report", nil))
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", resp.Code)
	}
}

func TestAddr(t *testing.T) {
	if Addr("") != ":8080" || Addr("9000") != ":9000" || Addr(":7000") != ":7000" {
		t.Fatalf("unexpected addr normalization")
	}
}
