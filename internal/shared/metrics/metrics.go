package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

var (
	reportAssembledTotal      atomic.Uint64
	reportNotFoundTotal       atomic.Uint64
	reportAssemblyFailedTotal atomic.Uint64
	reportRenderedTotal       atomic.Uint64
	reportRenderFailedTotal   atomic.Uint64

	generationDuration = newHistogram([]float64{10, 25, 50, 100, 250, 500, 1000, 2500, 5000})
)

// IncReportAssembled counts reports built from the database.
func IncReportAssembled() {
	reportAssembledTotal.Add(1)
}

// IncReportNotFound counts lookups for analyses that do not exist.
func IncReportNotFound() {
	reportNotFoundTotal.Add(1)
}

func IncReportAssemblyFailed() {
	reportAssemblyFailedTotal.Add(1)
}

// IncReportRendered counts documents written successfully.
func IncReportRendered() {
	reportRenderedTotal.Add(1)
}

func IncReportRenderFailed() {
	reportRenderFailedTotal.Add(1)
}

// ObserveGenerationDurationMs records assemble+render time in milliseconds.
func ObserveGenerationDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	generationDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "report_assembled_total", "Total reports assembled", reportAssembledTotal.Load())
	writeCounter(&buf, "report_not_found_total", "Total report requests for unknown analyses", reportNotFoundTotal.Load())
	writeCounter(&buf, "report_assembly_failed_total", "Total report assemblies that hit a data error", reportAssemblyFailedTotal.Load())
	writeCounter(&buf, "report_rendered_total", "Total report documents rendered", reportRenderedTotal.Load())
	writeCounter(&buf, "report_render_failed_total", "Total report renders that failed", reportRenderFailedTotal.Load())
	writeHistogram(&buf, "report_generation_duration_ms", "Report generation duration in milliseconds", generationDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			break
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
	return out
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// Since returns the elapsed milliseconds since start.
func Since(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}
