package reports

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"qa-report/internal/shared/metrics"
	"qa-report/internal/shared/telemetry"
	"qa-report/report/model"
	"qa-report/report/render"
)

// Service runs the assemble-then-render pipeline for one analysis at a time.
type Service struct {
	Assembler     *Assembler
	Catalog       *Catalog
	OutputDir     string
	DefaultFormat render.Format
}

// NewService wires an Assembler and Catalog over the same handle.
func NewService(db Querier, outputDir string, defaultFormat render.Format, opts ...Option) *Service {
	if defaultFormat == "" {
		defaultFormat = render.FormatDOCX
	}
	return &Service{
		Assembler:     NewAssembler(db, opts...),
		Catalog:       NewCatalog(db),
		OutputDir:     outputDir,
		DefaultFormat: defaultFormat,
	}
}

// Artifact is a rendered report held in memory.
type Artifact struct {
	Report      model.Report
	FileName    string
	ContentType string
	Body        []byte
}

// Assemble loads the report and records the outcome.
func (s *Service) Assemble(ctx context.Context, analysisID int64) (model.Report, error) {
	report, err := s.Assembler.Assemble(ctx, analysisID)
	switch {
	case err == nil:
		metrics.IncReportAssembled()
		telemetry.Debug("report.assembled", map[string]any{
			"analysis_id":    analysisID,
			"strengths":      len(report.Summary.Strengths),
			"coaching_focus": len(report.Summary.CoachingFocus),
			"quality_points": len(report.QualityPoints),
		})
	case errors.Is(err, ErrNotFound):
		metrics.IncReportNotFound()
		telemetry.Info("report.not_found", map[string]any{"analysis_id": analysisID})
	default:
		metrics.IncReportAssemblyFailed()
		telemetry.Error("report.assembly_failed", map[string]any{"analysis_id": analysisID, "error": err})
	}
	return report, err
}

// Download renders the analysis to destPath and returns the path written.
// An empty destPath uses SuggestedFileName inside OutputDir; an empty format
// follows the destination extension, then DefaultFormat.
func (s *Service) Download(ctx context.Context, analysisID int64, destPath string, format render.Format) (string, error) {
	start := time.Now()
	report, err := s.Assemble(ctx, analysisID)
	if err != nil {
		return "", err
	}

	destPath = strings.TrimSpace(destPath)
	if format == "" {
		if destPath != "" {
			format = render.FormatFromPath(destPath)
		} else {
			format = s.DefaultFormat
		}
	}
	if destPath == "" {
		destPath = filepath.Join(s.OutputDir, SuggestedFileName(report.Header.AgentName, report.Header.AnalyzedAt, format))
	}

	if err := render.RenderFile(report, destPath, format); err != nil {
		s.renderFailed(analysisID, format, err)
		return "", err
	}
	s.rendered(analysisID, format, start, map[string]any{"path": destPath})
	return destPath, nil
}

// Build renders the analysis into memory.
func (s *Service) Build(ctx context.Context, analysisID int64, format render.Format) (Artifact, error) {
	start := time.Now()
	if format == "" {
		format = s.DefaultFormat
	}
	report, err := s.Assemble(ctx, analysisID)
	if err != nil {
		return Artifact{}, err
	}

	var buf bytes.Buffer
	if err := render.RenderTo(&buf, report, format); err != nil {
		s.renderFailed(analysisID, format, err)
		return Artifact{}, err
	}
	s.rendered(analysisID, format, start, map[string]any{"bytes": buf.Len()})
	return Artifact{
		Report:      report,
		FileName:    SuggestedFileName(report.Header.AgentName, report.Header.AnalyzedAt, format),
		ContentType: format.ContentType(),
		Body:        buf.Bytes(),
	}, nil
}

// Stream renders the analysis and copies the complete document to w.
// Nothing is written when assembly or rendering fails.
func (s *Service) Stream(ctx context.Context, analysisID int64, w io.Writer, format render.Format) (Artifact, error) {
	artifact, err := s.Build(ctx, analysisID, format)
	if err != nil {
		return Artifact{}, err
	}
	if _, err := w.Write(artifact.Body); err != nil {
		return Artifact{}, &render.RenderError{Err: fmt.Errorf("write document: %w", err)}
	}
	return artifact, nil
}

func (s *Service) rendered(analysisID int64, format render.Format, start time.Time, extra map[string]any) {
	metrics.IncReportRendered()
	elapsed := metrics.Since(start)
	metrics.ObserveGenerationDurationMs(elapsed)
	fields := map[string]any{
		"analysis_id": analysisID,
		"format":      string(format),
		"duration_ms": elapsed,
	}
	for k, v := range extra {
		fields[k] = v
	}
	telemetry.Info("report.rendered", fields)
}

func (s *Service) renderFailed(analysisID int64, format render.Format, err error) {
	metrics.IncReportRenderFailed()
	telemetry.Error("report.render_failed", map[string]any{
		"analysis_id": analysisID,
		"format":      string(format),
		"error":       err,
	})
}
