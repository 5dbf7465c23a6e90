package reports

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"qa-report/internal/shared/server/respond"
	"qa-report/report/render"
)

// Handler wires HTTP handlers to the report service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches report routes. renderMW runs only on document downloads.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, renderMW ...gin.HandlerFunc) {
	rg.GET("/agents", h.listAgents)
	rg.GET("/agents/:id/analyses", h.listAnalyses)
	rg.GET("/analyses/:id", h.getReport)
	rg.GET("/analyses/:id/report", append(renderMW, h.downloadReport)...)
}

func (h *Handler) listAgents(c *gin.Context) {
	agents, err := h.Svc.Catalog.ListAgents(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, gin.H{"items": agents})
}

func (h *Handler) listAnalyses(c *gin.Context) {
	agentID, ok := parseID(c, "agent id")
	if !ok {
		return
	}
	c.Set("agentId", agentID)

	analyses, err := h.Svc.Catalog.ListAnalyses(c.Request.Context(), agentID)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, gin.H{"items": analyses})
}

func (h *Handler) getReport(c *gin.Context) {
	analysisID, ok := parseID(c, "analysis id")
	if !ok {
		return
	}
	c.Set("analysisId", analysisID)

	report, err := h.Svc.Assemble(c.Request.Context(), analysisID)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, report)
}

func (h *Handler) downloadReport(c *gin.Context) {
	analysisID, ok := parseID(c, "analysis id")
	if !ok {
		return
	}
	c.Set("analysisId", analysisID)

	format := h.Svc.DefaultFormat
	if raw := c.Query("format"); raw != "" {
		parsed, err := render.ParseFormat(raw)
		if err != nil {
			respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "format must be docx or pdf", []map[string]string{
				{"field": "format", "issue": "unsupported"},
			})
			return
		}
		format = parsed
	}
	c.Set("format", string(format))

	artifact, err := h.Svc.Build(c.Request.Context(), analysisID, format)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.Attachment(c, artifact.FileName, artifact.ContentType, artifact.Body)
}

func parseID(c *gin.Context, label string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, label+" must be a positive integer", nil)
		return 0, false
	}
	return id, true
}

func writeError(c *gin.Context, err error) {
	notice := Notify(err, "")
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, ErrorCodeNotFound, notice.Message, nil)
	case errors.Is(err, render.ErrRender):
		respond.Error(c, http.StatusInternalServerError, ErrorCodeFile, "Failed to generate the report file.", nil)
	case errors.Is(err, ErrAssembly):
		respond.Error(c, http.StatusBadGateway, ErrorCodeData, "Could not retrieve the report data from the database.", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "unexpected error", nil)
	}
}
