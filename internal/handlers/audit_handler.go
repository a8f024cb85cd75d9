package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/xhrissun/rhrmpsb-system-sub000/internal/models"
	"github.com/xhrissun/rhrmpsb-system-sub000/internal/service"
)

// AuditOperations is the part of service.RatingAuditService used by AuditHandler
type AuditOperations interface {
	List(ctx context.Context, filter models.RatingLogFilter, limit, skip int) (*service.LogPage, error)
	Stats(ctx context.Context, filter models.RatingLogFilter) (*models.RatingLogStats, error)
	Batch(ctx context.Context, batchID string) ([]models.RatingLog, error)
}

// AuditHandler handles rating log requests
type AuditHandler struct {
	audit AuditOperations
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(audit AuditOperations) *AuditHandler {
	return &AuditHandler{audit: audit}
}

func parseLogFilter(r *http.Request) (models.RatingLogFilter, string) {
	q := r.URL.Query()
	filter := models.RatingLogFilter{
		ItemNumber: q.Get("itemNumber"),
		Action:     models.RatingAction(q.Get("action")),
		BatchID:    q.Get("batchId"),
	}

	var ok bool
	if filter.CandidateID, ok = parseOptionalUint(q.Get("candidateId")); !ok {
		return filter, ErrMsgInvalidCandidateID
	}
	if filter.RaterID, ok = parseOptionalUint(q.Get("raterId")); !ok {
		return filter, ErrMsgInvalidRaterID
	}
	return filter, ""
}

// ListRatingLogs lists rating log entries, newest first (admin only)
// @Summary List rating logs
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param candidateId query int false "Filter by candidate ID"
// @Param raterId query int false "Filter by rater ID"
// @Param itemNumber query string false "Filter by item number"
// @Param action query string false "Filter by action (created, updated, deleted)"
// @Param limit query int false "Page size" default(50)
// @Param skip query int false "Entries to skip" default(0)
// @Success 200 {object} service.LogPage
// @Failure 400 {object} map[string]string "Invalid parameters"
// @Failure 403 {object} map[string]string "Forbidden - admin only"
// @Router /admin/rating-logs [get]
func (h *AuditHandler) ListRatingLogs(w http.ResponseWriter, r *http.Request) {
	filter, msg := parseLogFilter(r)
	if msg != "" {
		respondWithError(w, http.StatusBadRequest, msg)
		return
	}

	limit, skip := 0, 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		l, err := strconv.Atoi(raw)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = l
	}
	if raw := r.URL.Query().Get("skip"); raw != "" {
		s, err := strconv.Atoi(raw)
		if err != nil || s < 0 {
			respondWithError(w, http.StatusBadRequest, "Invalid skip")
			return
		}
		skip = s
	}

	page, err := h.audit.List(r.Context(), filter, limit, skip)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, page)
}

// GetRatingLogStats aggregates rating log entries (admin only)
// @Summary Rating log statistics
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param candidateId query int false "Filter by candidate ID"
// @Param raterId query int false "Filter by rater ID"
// @Param itemNumber query string false "Filter by item number"
// @Param action query string false "Filter by action"
// @Success 200 {object} models.RatingLogStats
// @Failure 400 {object} map[string]string "Invalid parameters"
// @Router /admin/rating-logs/stats [get]
func (h *AuditHandler) GetRatingLogStats(w http.ResponseWriter, r *http.Request) {
	filter, msg := parseLogFilter(r)
	if msg != "" {
		respondWithError(w, http.StatusBadRequest, msg)
		return
	}

	stats, err := h.audit.Stats(r.Context(), filter)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, stats)
}

// GetBatch returns every log entry written by one submission (admin only)
// @Summary Rating log batch
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param batchId path string true "Batch UUID"
// @Success 200 {array} models.RatingLog
// @Failure 400 {object} map[string]string "Invalid batch ID"
// @Failure 404 {object} map[string]string "Batch not found"
// @Router /admin/rating-logs/batches/{batchId} [get]
func (h *AuditHandler) GetBatch(w http.ResponseWriter, r *http.Request) {
	logs, err := h.audit.Batch(r.Context(), r.PathValue("batchId"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, logs)
}
