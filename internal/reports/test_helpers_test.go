package reports

import (
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

var scenarioTime = time.Date(2024, time.April, 2, 15, 4, 0, 0, time.UTC)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func q(fragment string) string {
	return regexp.QuoteMeta(fragment)
}

func expectHeader(mock sqlmock.Sqlmock, id int64) {
	expectAgentHeader(mock, id, "J. Smith")
}

func expectAgentHeader(mock sqlmock.Sqlmock, id int64, agentName string) {
	mock.ExpectQuery(q("FROM CombinedAnalyses c")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"AgentName", "NumberOfReportsSuccessfullyAnalyzed", "AnalysisPeriodNote", "AnalysisDateTime"}).
			AddRow(agentName, int64(12), "Q1 2024", scenarioTime))
}

// expectScenario queues the rows of analysis 42: one strength, no development
// areas, one focus with one action, one quality point with no recommendation.
func expectScenario(mock sqlmock.Sqlmock, batched bool) {
	expectHeader(mock, 42)
	expectScenarioBody(mock, batched)
}

func expectScenarioBody(mock sqlmock.Sqlmock, batched bool) {
	mock.ExpectQuery(q("FROM CombinedAnalysisStrengths")).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"StrengthText"}).AddRow("Clear tone"))
	mock.ExpectQuery(q("FROM CombinedAnalysisDevelopmentAreas")).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"DevelopmentAreaText"}))
	mock.ExpectQuery(q("FROM CombinedAnalysisCoachingFocus")).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"CoachingFocusID", "AreaText"}).AddRow(int64(7), "Hold Procedure"))
	if batched {
		mock.ExpectQuery(q("JOIN CombinedAnalysisCoachingFocus cf")).
			WithArgs(int64(42)).
			WillReturnRows(sqlmock.NewRows([]string{"CoachingFocusID", "ActionText"}).AddRow(int64(7), "Confirm before hold"))
	} else {
		mock.ExpectQuery(q("FROM CombinedAnalysisCoachingActions")).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"ActionText"}).AddRow("Confirm before hold"))
	}
	mock.ExpectQuery(q("FROM CombinedAnalysisQualityPointDetails d")).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"QualityPointText", "TrendObservation"}).AddRow("Greeting", "Consistent"))
}

func expectNotFound(mock sqlmock.Sqlmock, id int64) {
	mock.ExpectQuery(q("FROM CombinedAnalyses c")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"AgentName", "NumberOfReportsSuccessfullyAnalyzed", "AnalysisPeriodNote", "AnalysisDateTime"}))
}
