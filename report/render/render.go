package render

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"qa-report/report/model"
)

// ErrRender marks every failure to build or write a report document.
var ErrRender = errors.New("render failed")

// RenderError carries the destination and the underlying cause.
type RenderError struct {
	Path string
	Err  error
}

func (e *RenderError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("render report: %v", e.Err)
	}
	return fmt.Sprintf("render report to %s: %v", e.Path, e.Err)
}

func (e *RenderError) Unwrap() []error {
	return []error{ErrRender, e.Err}
}

// Format is an output document format.
type Format string

const (
	FormatDOCX Format = "docx"
	FormatPDF  Format = "pdf"
)

// ParseFormat validates a user supplied format name. Empty means DOCX.
func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(raw), ".")) {
	case "", "docx":
		return FormatDOCX, nil
	case "pdf":
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("unsupported format %q", raw)
	}
}

// FormatFromPath picks the format from the destination extension, defaulting to DOCX.
func FormatFromPath(path string) Format {
	if f, err := ParseFormat(filepath.Ext(path)); err == nil {
		return f
	}
	return FormatDOCX
}

// Ext returns the file extension including the dot.
func (f Format) Ext() string {
	return "." + string(f)
}

// ContentType returns the MIME type served for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	default:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	}
}

// Render writes the report to destinationPath in the format implied by its
// extension. A partially written file is left in place on failure.
func Render(report model.Report, destinationPath string) error {
	return RenderFile(report, destinationPath, FormatFromPath(destinationPath))
}

// RenderFile writes the report to path in the given format.
func RenderFile(report model.Report, path string, format Format) error {
	if strings.TrimSpace(path) == "" {
		return &RenderError{Err: errors.New("destination path is empty")}
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &RenderError{Path: path, Err: err}
		}
	}

	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return &RenderError{Path: path, Err: err}
	}
	w := bufio.NewWriter(f)
	if err := RenderTo(w, report, format); err != nil {
		_ = f.Close()
		var re *RenderError
		if errors.As(err, &re) {
			re.Path = path
			return re
		}
		return &RenderError{Path: path, Err: err}
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return &RenderError{Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &RenderError{Path: path, Err: err}
	}
	return nil
}

// RenderTo streams the report document to w.
func RenderTo(w io.Writer, report model.Report, format Format) error {
	doc := Layout(report)
	var err error
	switch format {
	case FormatDOCX, "":
		err = writeDOCX(w, doc)
	case FormatPDF:
		err = writePDF(w, doc)
	default:
		err = fmt.Errorf("unsupported format %q", format)
	}
	if err != nil {
		return &RenderError{Err: err}
	}
	return nil
}
