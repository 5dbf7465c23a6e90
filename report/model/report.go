package model

import "time"

// Report is one agent's combined trend analysis, reconstructed from the
// normalized CombinedAnalysis* tables.
type Report struct {
	Header        Header               `json:"report_header" yaml:"report_header"`
	Summary       Summary              `json:"qualitative_summary_and_coaching_plan" yaml:"qualitative_summary_and_coaching_plan"`
	QualityPoints []QualityPointDetail `json:"detailed_quality_point_analysis" yaml:"detailed_quality_point_analysis"`
}

// Header carries the fields joined from the analysis row and its agent.
// A nil ReportsAnalyzed or an empty PeriodNote means the column was NULL.
type Header struct {
	AgentName       string    `json:"agent_name" yaml:"agent_name"`
	ReportsAnalyzed *int      `json:"number_of_reports_successfully_analyzed" yaml:"number_of_reports_successfully_analyzed"`
	PeriodNote      string    `json:"analysis_period_note" yaml:"analysis_period_note"`
	AnalyzedAt      time.Time `json:"analysis_date_time,omitzero" yaml:"analysis_date_time,omitempty"`
}

// Summary holds the qualitative lists, each in query return order.
type Summary struct {
	Strengths        []string        `json:"overall_strengths_observed" yaml:"overall_strengths_observed"`
	DevelopmentAreas []string        `json:"overall_areas_for_development" yaml:"overall_areas_for_development"`
	CoachingFocus    []CoachingFocus `json:"consolidated_coaching_focus" yaml:"consolidated_coaching_focus"`
}

// CoachingFocus owns its ordered action list.
type CoachingFocus struct {
	Area    string   `json:"area" yaml:"area"`
	Actions []string `json:"specific_actions" yaml:"specific_actions"`
}

// QualityPointDetail is one row of the quality point table. The schema has no
// source for CoachingRecommendation yet, so it is always empty when assembled.
type QualityPointDetail struct {
	QualityPoint           string `json:"quality_point" yaml:"quality_point"`
	TrendObservation       string `json:"trend_observation" yaml:"trend_observation"`
	CoachingRecommendation string `json:"coaching_recommendation_for_point" yaml:"coaching_recommendation_for_point"`
}

// Agent is a row of the Agents table.
type Agent struct {
	ID   int64  `json:"agentId" yaml:"agent_id"`
	Name string `json:"agentName" yaml:"agent_name"`
}

// AnalysisRef identifies one combined analysis of an agent.
type AnalysisRef struct {
	ID         int64     `json:"analysisId" yaml:"analysis_id"`
	AgentID    int64     `json:"agentId" yaml:"agent_id"`
	AnalyzedAt time.Time `json:"analyzedAt,omitzero" yaml:"analyzed_at,omitempty"`
}

// IntPtr is a convenience for building headers with a known count.
func IntPtr(v int) *int {
	return &v
}
