package reports

import (
	"testing"
	"time"

	"qa-report/report/render"
)

func TestSuggestedFileName(t *testing.T) {
	date := time.Date(2024, time.April, 2, 15, 4, 0, 0, time.UTC)
	cases := []struct {
		agent  string
		at     time.Time
		format render.Format
		want   string
	}{
		{agent: "J. Smith", at: date, format: render.FormatDOCX, want: "QA_Report_J._Smith_2024-04-02.docx"},
		{agent: "J. Smith", at: date, format: render.FormatPDF, want: "QA_Report_J._Smith_2024-04-02.pdf"},
		{agent: "  Ana   María ", at: date, want: "QA_Report_Ana_María_2024-04-02.docx"},
		{agent: "a/b:c", want: "QA_Report_a_b_c.docx"},
		{agent: "..", at: date, want: "QA_Report_2024-04-02.docx"},
		{agent: "", want: "QA_Report.docx"},
	}
	for _, tc := range cases {
		if got := SuggestedFileName(tc.agent, tc.at, tc.format); got != tc.want {
			t.Fatalf("SuggestedFileName(%q) = %q, want %q", tc.agent, got, tc.want)
		}
	}
}
