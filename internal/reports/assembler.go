package reports

import (
	"context"
	"database/sql"
	"errors"

	"qa-report/report/model"
)

// Querier is the read subset of *sql.DB the assembler needs.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const (
	headerQuery = `
SELECT a.AgentName, c.NumberOfReportsSuccessfullyAnalyzed, c.AnalysisPeriodNote, c.AnalysisDateTime
FROM CombinedAnalyses c
JOIN Agents a ON c.AgentID = a.AgentID
WHERE c.CombinedAnalysisID = $1`

	strengthsQuery = `
SELECT StrengthText
FROM CombinedAnalysisStrengths
WHERE CombinedAnalysisID = $1`

	developmentAreasQuery = `
SELECT DevelopmentAreaText
FROM CombinedAnalysisDevelopmentAreas
WHERE CombinedAnalysisID = $1`

	coachingFocusQuery = `
SELECT CoachingFocusID, AreaText
FROM CombinedAnalysisCoachingFocus
WHERE CombinedAnalysisID = $1`

	coachingActionsQuery = `
SELECT ActionText
FROM CombinedAnalysisCoachingActions
WHERE CoachingFocusID = $1`

	coachingActionsBatchQuery = `
SELECT ca.CoachingFocusID, ca.ActionText
FROM CombinedAnalysisCoachingActions ca
JOIN CombinedAnalysisCoachingFocus cf ON ca.CoachingFocusID = cf.CoachingFocusID
WHERE cf.CombinedAnalysisID = $1`

	qualityPointsQuery = `
SELECT qp.QualityPointText, d.TrendObservation
FROM CombinedAnalysisQualityPointDetails d
JOIN QualityPointsMaster qp ON d.QualityPointID = qp.QualityPointID
WHERE d.CombinedAnalysisID = $1`
)

// Assembler rebuilds a nested Report from the normalized analysis tables.
// It only reads; the handle is shared across requests.
type Assembler struct {
	db             Querier
	batchedActions bool
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithBatchedActions loads every coaching action of an analysis in one query
// and groups them per focus, instead of one query per focus.
func WithBatchedActions() Option {
	return func(a *Assembler) {
		a.batchedActions = true
	}
}

// NewAssembler constructs an Assembler over db.
func NewAssembler(db Querier, opts ...Option) *Assembler {
	a := &Assembler{db: db}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

type focusRow struct {
	id   int64
	area string
}

// Assemble returns the report for analysisID, ErrNotFound when the analysis
// or its agent is missing, or an *AssemblyError for any data-store fault.
func (a *Assembler) Assemble(ctx context.Context, analysisID int64) (model.Report, error) {
	header, err := a.header(ctx, analysisID)
	if err != nil {
		return model.Report{}, err
	}

	strengths, err := a.strings(ctx, strengthsQuery, analysisID)
	if err != nil {
		return model.Report{}, assemblyErr(analysisID, "strengths", err)
	}
	areas, err := a.strings(ctx, developmentAreasQuery, analysisID)
	if err != nil {
		return model.Report{}, assemblyErr(analysisID, "development_areas", err)
	}
	focus, err := a.coachingFocus(ctx, analysisID)
	if err != nil {
		return model.Report{}, err
	}
	details, err := a.qualityPoints(ctx, analysisID)
	if err != nil {
		return model.Report{}, assemblyErr(analysisID, "quality_points", err)
	}

	return model.Report{
		Header: header,
		Summary: model.Summary{
			Strengths:        strengths,
			DevelopmentAreas: areas,
			CoachingFocus:    focus,
		},
		QualityPoints: details,
	}, nil
}

func (a *Assembler) header(ctx context.Context, analysisID int64) (model.Header, error) {
	var agentName sql.NullString
	var analyzed sql.NullInt64
	var periodNote sql.NullString
	var analyzedAt sql.NullTime
	err := a.db.QueryRowContext(ctx, headerQuery, analysisID).Scan(&agentName, &analyzed, &periodNote, &analyzedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Header{}, ErrNotFound
		}
		return model.Header{}, assemblyErr(analysisID, "header", err)
	}

	h := model.Header{
		AgentName:  agentName.String,
		PeriodNote: periodNote.String,
	}
	if analyzed.Valid {
		h.ReportsAnalyzed = model.IntPtr(int(analyzed.Int64))
	}
	if analyzedAt.Valid {
		h.AnalyzedAt = analyzedAt.Time
	}
	return h, nil
}

func (a *Assembler) coachingFocus(ctx context.Context, analysisID int64) ([]model.CoachingFocus, error) {
	rows, err := a.focusRows(ctx, analysisID)
	if err != nil {
		return nil, assemblyErr(analysisID, "coaching_focus", err)
	}

	out := make([]model.CoachingFocus, 0, len(rows))
	if a.batchedActions {
		grouped, err := a.actionsByFocus(ctx, analysisID)
		if err != nil {
			return nil, assemblyErr(analysisID, "coaching_actions", err)
		}
		for _, row := range rows {
			actions := grouped[row.id]
			if actions == nil {
				actions = []string{}
			}
			out = append(out, model.CoachingFocus{Area: row.area, Actions: actions})
		}
		return out, nil
	}

	// Focus rows are fully read before the per-focus queries so a single
	// connection is never asked to hold two open result sets.
	for _, row := range rows {
		actions, err := a.strings(ctx, coachingActionsQuery, row.id)
		if err != nil {
			return nil, assemblyErr(analysisID, "coaching_actions", err)
		}
		out = append(out, model.CoachingFocus{Area: row.area, Actions: actions})
	}
	return out, nil
}

func (a *Assembler) focusRows(ctx context.Context, analysisID int64) ([]focusRow, error) {
	rows, err := a.db.QueryContext(ctx, coachingFocusQuery, analysisID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []focusRow
	for rows.Next() {
		var row focusRow
		var area sql.NullString
		if err := rows.Scan(&row.id, &area); err != nil {
			return nil, err
		}
		row.area = area.String
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *Assembler) actionsByFocus(ctx context.Context, analysisID int64) (map[int64][]string, error) {
	rows, err := a.db.QueryContext(ctx, coachingActionsBatchQuery, analysisID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int64][]string)
	for rows.Next() {
		var focusID int64
		var text sql.NullString
		if err := rows.Scan(&focusID, &text); err != nil {
			return nil, err
		}
		out[focusID] = append(out[focusID], text.String)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *Assembler) qualityPoints(ctx context.Context, analysisID int64) ([]model.QualityPointDetail, error) {
	rows, err := a.db.QueryContext(ctx, qualityPointsQuery, analysisID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.QualityPointDetail, 0)
	for rows.Next() {
		var point sql.NullString
		var trend sql.NullString
		if err := rows.Scan(&point, &trend); err != nil {
			return nil, err
		}
		out = append(out, model.QualityPointDetail{
			QualityPoint:     point.String,
			TrendObservation: trend.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// strings runs a single-column text query and returns the values in row order.
func (a *Assembler) strings(ctx context.Context, query string, arg int64) ([]string, error) {
	rows, err := a.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var text sql.NullString
		if err := rows.Scan(&text); err != nil {
			return nil, err
		}
		out = append(out, text.String)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
