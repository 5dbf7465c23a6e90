package reports

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"qa-report/report/render"
)

func TestNotifyDistinguishesOutcomes(t *testing.T) {
	cases := []struct {
		err   error
		title string
	}{
		{err: nil, title: TitleSuccess},
		{err: ErrNotFound, title: TitleNoData},
		{err: fmt.Errorf("download: %w", ErrNotFound), title: TitleNoData},
		{err: &AssemblyError{AnalysisID: 1, Stage: "header", Err: errors.New("db down")}, title: TitleDataError},
		{err: &render.RenderError{Path: "/x.docx", Err: errors.New("disk full")}, title: TitleFileError},
	}
	seen := map[string]bool{}
	for _, tc := range cases {
		n := Notify(tc.err, "/tmp/out.docx")
		if n.Title != tc.title {
			t.Fatalf("Notify(%v) title = %q, want %q", tc.err, n.Title, tc.title)
		}
		seen[n.Title] = true
	}
	if len(seen) != 4 {
		t.Fatalf("expected four distinct notices, got %v", seen)
	}

	if msg := Notify(nil, "/tmp/out.docx").Message; !strings.HasSuffix(msg, "/tmp/out.docx") {
		t.Fatalf("success message should name the path, got %q", msg)
	}
	if msg := Notify(&render.RenderError{Err: errors.New("disk full")}, "").Message; !strings.Contains(msg, "disk full") {
		t.Fatalf("file error should carry the cause, got %q", msg)
	}
}
