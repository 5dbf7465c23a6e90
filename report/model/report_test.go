package model

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestHeaderOmitsMissingAnalysisDate(t *testing.T) {
	header := Header{AgentName: "J. Smith"}

	raw, err := json.Marshal(header)
	if err != nil {
		t.Fatalf("marshal json: %v", err)
	}
	if strings.Contains(string(raw), "analysis_date_time") {
		t.Fatalf("expected no analysis date for NULL column, got %s", raw)
	}

	out, err := yaml.Marshal(header)
	if err != nil {
		t.Fatalf("marshal yaml: %v", err)
	}
	if strings.Contains(string(out), "analysis_date_time") {
		t.Fatalf("expected no analysis date in yaml, got %s", out)
	}
}

func TestHeaderKeepsAnalysisDate(t *testing.T) {
	header := Header{AnalyzedAt: time.Date(2024, time.April, 2, 15, 4, 0, 0, time.UTC)}

	raw, err := json.Marshal(header)
	if err != nil {
		t.Fatalf("marshal json: %v", err)
	}
	if !strings.Contains(string(raw), `"analysis_date_time":"2024-04-02T15:04:00Z"`) {
		t.Fatalf("expected analysis date, got %s", raw)
	}
}

func TestAnalysisRefOmitsMissingDate(t *testing.T) {
	raw, err := json.Marshal(AnalysisRef{ID: 42, AgentID: 3})
	if err != nil {
		t.Fatalf("marshal json: %v", err)
	}
	if got := string(raw); got != `{"analysisId":42,"agentId":3}` {
		t.Fatalf("unexpected json %s", got)
	}
}
