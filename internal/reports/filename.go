package reports

import (
	"strings"
	"time"

	"qa-report/internal/shared/util"
	"qa-report/report/render"
)

const fileNamePrefix = "QA_Report"

// SuggestedFileName builds QA_Report_<agent>_<YYYY-MM-DD><ext>. Unusable
// agent names are dropped; a zero time drops the date.
func SuggestedFileName(agentName string, analyzedAt time.Time, format render.Format) string {
	parts := []string{fileNamePrefix}
	if agent := strings.Join(strings.Fields(agentName), "_"); agent != "" {
		if safe, err := util.SanitizeFileName(agent); err == nil {
			parts = append(parts, safe)
		}
	}
	if !analyzedAt.IsZero() {
		parts = append(parts, analyzedAt.Format("2006-01-02"))
	}
	if format == "" {
		format = render.FormatDOCX
	}
	return strings.Join(parts, "_") + format.Ext()
}
