package reports

import (
	"context"
	"database/sql"

	"qa-report/report/model"
)

const (
	listAgentsQuery = `
SELECT AgentID, AgentName
FROM Agents
ORDER BY AgentName`

	listAnalysesQuery = `
SELECT CombinedAnalysisID, AgentID, AnalysisDateTime
FROM CombinedAnalyses
WHERE AgentID = $1
ORDER BY AnalysisDateTime DESC`
)

// Catalog lists what can be reported on: agents and their analyses.
type Catalog struct {
	db Querier
}

// NewCatalog constructs a Catalog over db.
func NewCatalog(db Querier) *Catalog {
	return &Catalog{db: db}
}

// ListAgents returns every agent ordered by name.
func (c *Catalog) ListAgents(ctx context.Context) ([]model.Agent, error) {
	rows, err := c.db.QueryContext(ctx, listAgentsQuery)
	if err != nil {
		return nil, assemblyErr(0, "agents", err)
	}
	defer rows.Close()

	out := make([]model.Agent, 0)
	for rows.Next() {
		var agent model.Agent
		var name sql.NullString
		if err := rows.Scan(&agent.ID, &name); err != nil {
			return nil, assemblyErr(0, "agents", err)
		}
		agent.Name = name.String
		out = append(out, agent)
	}
	if err := rows.Err(); err != nil {
		return nil, assemblyErr(0, "agents", err)
	}
	return out, nil
}

// ListAnalyses returns the agent's analyses, newest first.
func (c *Catalog) ListAnalyses(ctx context.Context, agentID int64) ([]model.AnalysisRef, error) {
	rows, err := c.db.QueryContext(ctx, listAnalysesQuery, agentID)
	if err != nil {
		return nil, assemblyErr(0, "analyses", err)
	}
	defer rows.Close()

	out := make([]model.AnalysisRef, 0)
	for rows.Next() {
		var ref model.AnalysisRef
		var analyzedAt sql.NullTime
		if err := rows.Scan(&ref.ID, &ref.AgentID, &analyzedAt); err != nil {
			return nil, assemblyErr(0, "analyses", err)
		}
		if analyzedAt.Valid {
			ref.AnalyzedAt = analyzedAt.Time
		}
		out = append(out, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, assemblyErr(0, "analyses", err)
	}
	return out, nil
}
