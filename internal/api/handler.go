package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mr1hm/go-disaster-reports/internal/auth"
	"github.com/mr1hm/go-disaster-reports/internal/models"
	"github.com/mr1hm/go-disaster-reports/internal/reports"
	"github.com/mr1hm/go-disaster-reports/internal/repository"
)

// Pinger reports whether storage is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	svc    *reports.Service
	db     Pinger
	tokens *auth.Tokens // nil leaves admin routes open
}

func NewHandler(svc *reports.Service, db Pinger, tokens *auth.Tokens) *Handler {
	return &Handler{
		svc:    svc,
		db:     db,
		tokens: tokens,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.health)

	api := r.Group("/api")
	api.GET("/reports", h.listReports)
	api.POST("/reports", h.createReport)
	api.GET("/reports/:id", h.getReport)
	api.GET("/reports/:id/details", h.getReportDetails)
	api.GET("/map/reports", h.getReportsGeoJSON)
	api.GET("/stats", h.getStats)
	api.GET("/evacuation-centers", h.listEvacuationCenters)
	api.GET("/infrastructure", h.listInfrastructure)
	api.GET("/sentiments", h.listSentiments)
	api.POST("/sentiments", h.createSentiment)

	admin := api.Group("", RequireAdmin(h.tokens))
	admin.PUT("/reports/:id", h.updateReport)
	admin.DELETE("/reports/:id", h.deleteReport)
	admin.PUT("/reports/:id/verify", h.verifyReport)
}

func (h *Handler) health(c *gin.Context) {
	if h.db != nil {
		if err := h.db.Ping(c.Request.Context()); err != nil {
			slog.Error("health check failed", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func filterFromQuery(c *gin.Context) repository.Filter {
	return repository.Filter{
		Category:   c.Query("category"),
		Severity:   c.Query("severity"),
		Status:     c.Query("status"),
		ReportType: c.Query("reportType"),
		Region:     c.Query("region"),
	}
}

func (h *Handler) listReports(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), filterFromQuery(c))
	if err != nil {
		respondError(c, err, "fetch reports")
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) getReportsGeoJSON(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), filterFromQuery(c))
	if err != nil {
		respondError(c, err, "fetch reports")
		return
	}

	fc := toGeoJSON(list)
	c.Header("Content-Type", "application/geo+json")
	c.JSON(http.StatusOK, fc)
}

func (h *Handler) getReport(c *gin.Context) {
	id, ok := reportID(c)
	if !ok {
		return
	}

	r, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "fetch report")
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *Handler) getReportDetails(c *gin.Context) {
	id, ok := reportID(c)
	if !ok {
		return
	}

	d, err := h.svc.Details(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "fetch report details")
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *Handler) createReport(c *gin.Context) {
	var in models.ReportInput
	if !bindJSON(c, &in) {
		return
	}

	r, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err, "create report")
		return
	}

	slog.Info("report created", "id", r.ID, "category", r.Category, "severity", r.Severity)
	c.JSON(http.StatusCreated, r)
}

func (h *Handler) updateReport(c *gin.Context) {
	id, ok := reportID(c)
	if !ok {
		return
	}

	var p models.ReportPatch
	if !bindJSON(c, &p) {
		return
	}

	r, err := h.svc.Update(c.Request.Context(), id, p)
	if err != nil {
		respondError(c, err, "update report")
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *Handler) deleteReport(c *gin.Context) {
	id, ok := reportID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "delete report")
		return
	}

	slog.Info("report deleted", "id", id)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type verifyRequest struct {
	Status     models.Status `json:"status"`
	VerifiedBy string        `json:"verifiedBy"`
}

func (h *Handler) verifyReport(c *gin.Context) {
	id, ok := reportID(c)
	if !ok {
		return
	}

	var req verifyRequest
	if !bindJSON(c, &req) {
		return
	}
	// An authenticated decision is always recorded under the token's name.
	if claims, ok := adminClaims(c); ok {
		if by := strings.TrimSpace(req.VerifiedBy); by != "" && by != claims.Name {
			c.JSON(http.StatusForbidden, gin.H{"error": "verifiedBy must match the authenticated admin"})
			return
		}
		req.VerifiedBy = claims.Name
	}

	r, err := h.svc.Verify(c.Request.Context(), id, req.Status, req.VerifiedBy)
	if err != nil {
		respondError(c, err, "verify report")
		return
	}

	slog.Info("report verified", "id", r.ID, "status", r.Status, "verified_by", req.VerifiedBy)
	c.JSON(http.StatusOK, r)
}

func (h *Handler) getStats(c *gin.Context) {
	st, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err, "fetch statistics")
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *Handler) listEvacuationCenters(c *gin.Context) {
	id, ok := optionalReportID(c)
	if !ok {
		return
	}

	centers, err := h.svc.ListEvacuationCenters(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "fetch evacuation centers")
		return
	}
	c.JSON(http.StatusOK, centers)
}

func (h *Handler) listInfrastructure(c *gin.Context) {
	id, ok := optionalReportID(c)
	if !ok {
		return
	}

	statuses, err := h.svc.ListInfrastructure(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "fetch infrastructure status")
		return
	}
	c.JSON(http.StatusOK, statuses)
}

func (h *Handler) listSentiments(c *gin.Context) {
	id, ok := optionalReportID(c)
	if !ok {
		return
	}

	sentiments, err := h.svc.ListSentiments(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "fetch community sentiments")
		return
	}
	c.JSON(http.StatusOK, sentiments)
}

func (h *Handler) createSentiment(c *gin.Context) {
	var in models.SentimentInput
	if !bindJSON(c, &in) {
		return
	}

	cs, err := h.svc.CreateSentiment(c.Request.Context(), in)
	if err != nil {
		respondError(c, err, "create sentiment")
		return
	}
	c.JSON(http.StatusCreated, cs)
}

func reportID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report id"})
		return 0, false
	}
	return id, true
}

// optionalReportID reads the disasterReportId query parameter. A missing
// parameter yields nil.
func optionalReportID(c *gin.Context) (*int64, bool) {
	raw := c.Query("disasterReportId")
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid disasterReportId"})
		return nil, false
	}
	return &id, true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}
	return true
}

// respondError maps service errors onto status codes. Storage failures are
// logged and answered with a generic message.
func respondError(c *gin.Context, err error, action string) {
	var ve *reports.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "validation failed",
			"fields": ve.Fields,
		})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
	default:
		slog.Error("request failed", "action", action, "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to " + action})
	}
}
