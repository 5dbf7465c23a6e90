package reports

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"

	"qa-report/report/model"
	"qa-report/report/render"
)

func setupRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, mock := newMock(t)

	r := gin.New()
	api := r.Group("/api/v1")
	NewHandler(NewService(db, t.TempDir(), render.FormatDOCX)).RegisterRoutes(api)
	return r, mock
}

func TestGetReportJSON(t *testing.T) {
	router, mock := setupRouter(t)
	expectScenario(mock, false)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/analyses/42", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var got model.Report
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Header.AgentName != "J. Smith" || *got.Header.ReportsAnalyzed != 12 {
		t.Fatalf("unexpected header %+v", got.Header)
	}
	if len(got.Summary.CoachingFocus) != 1 || len(got.QualityPoints) != 1 {
		t.Fatalf("unexpected body %+v", got)
	}
}

func TestDownloadReportAttachment(t *testing.T) {
	router, mock := setupRouter(t)
	expectScenario(mock, false)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/analyses/42/report?format=pdf", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if ct := resp.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("unexpected content type %q", ct)
	}
	if cd := resp.Header().Get("Content-Disposition"); cd != `attachment; filename="QA_Report_J._Smith_2024-04-02.pdf"` {
		t.Fatalf("unexpected content disposition %q", cd)
	}
}

func TestDownloadReportNonASCIIFileName(t *testing.T) {
	router, mock := setupRouter(t)
	expectAgentHeader(mock, 42, "Zoë Müller")
	expectScenarioBody(mock, false)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/analyses/42/report", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	want := `attachment; filename="QA_Report_Zo__M_ller_2024-04-02.docx"; filename*=UTF-8''QA_Report_Zo%C3%AB_M%C3%BCller_2024-04-02.docx`
	if cd := resp.Header().Get("Content-Disposition"); cd != want {
		t.Fatalf("unexpected content disposition %q", cd)
	}
}

func TestReportErrorStatuses(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		router, mock := setupRouter(t)
		expectNotFound(mock, 999)
		assertErrorResponse(t, router, "/api/v1/analyses/999/report", http.StatusNotFound, ErrorCodeNotFound)
	})

	t.Run("data error", func(t *testing.T) {
		router, mock := setupRouter(t)
		mock.ExpectQuery(q("FROM CombinedAnalyses c")).WithArgs(int64(42)).WillReturnError(errors.New("db down"))
		assertErrorResponse(t, router, "/api/v1/analyses/42", http.StatusBadGateway, ErrorCodeData)
	})

	t.Run("bad id", func(t *testing.T) {
		router, _ := setupRouter(t)
		assertErrorResponse(t, router, "/api/v1/analyses/abc", http.StatusBadRequest, ErrorCodeValidation)
	})

	t.Run("bad format", func(t *testing.T) {
		router, _ := setupRouter(t)
		assertErrorResponse(t, router, "/api/v1/analyses/42/report?format=odt", http.StatusBadRequest, ErrorCodeValidation)
	})
}

func TestListRoutes(t *testing.T) {
	router, mock := setupRouter(t)
	mock.ExpectQuery(q("FROM Agents")).
		WillReturnRows(sqlmock.NewRows([]string{"AgentID", "AgentName"}).AddRow(int64(1), "J. Smith"))
	mock.ExpectQuery(q("ORDER BY AnalysisDateTime DESC")).WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"CombinedAnalysisID", "AgentID", "AnalysisDateTime"}).AddRow(int64(42), int64(1), scenarioTime))

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/agents", nil))
	var agents struct {
		Items []model.Agent `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&agents); err != nil || len(agents.Items) != 1 || agents.Items[0].ID != 1 {
		t.Fatalf("unexpected agents response %d %v %+v", resp.Code, err, agents)
	}

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/agents/1/analyses", nil))
	var analyses struct {
		Items []model.AnalysisRef `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&analyses); err != nil || len(analyses.Items) != 1 || analyses.Items[0].ID != 42 {
		t.Fatalf("unexpected analyses response %d %v %+v", resp.Code, err, analyses)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func assertErrorResponse(t *testing.T, router *gin.Engine, path string, status int, code string) {
	t.Helper()
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, path, nil))
	if resp.Code != status {
		t.Fatalf("%s: expected %d, got %d", path, status, resp.Code)
	}
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body.Error.Code != code {
		t.Fatalf("%s: expected code %q, got %q", path, code, body.Error.Code)
	}
}
