package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/xhrissun/rhrmpsb-system-sub000/internal/middleware"
	"github.com/xhrissun/rhrmpsb-system-sub000/internal/models"
	"github.com/xhrissun/rhrmpsb-system-sub000/internal/service"
)

// RatingOperations is the part of service.RatingService used by RatingHandler
type RatingOperations interface {
	SubmitBatch(ctx context.Context, actor service.Actor, items []models.RatingInput, isUpdate bool) (*service.SubmitResult, error)
	CheckExisting(ctx context.Context, candidateID, raterID uint, itemNumber, raterType string) (*service.ExistingCheck, error)
	ResetRatings(ctx context.Context, actor service.Actor, candidateID, raterID uint, itemNumber string) (*service.ResetResult, error)
	ListByCandidate(ctx context.Context, candidateID uint, itemNumber string) ([]models.RatingDetail, error)
	ListByRater(ctx context.Context, raterID uint) ([]models.RatingDetail, error)
}

// RatingHandler handles rating submission, lookup and reset
type RatingHandler struct {
	ratings RatingOperations
}

// NewRatingHandler creates a new rating handler
func NewRatingHandler(ratings RatingOperations) *RatingHandler {
	return &RatingHandler{ratings: ratings}
}

// SubmitRatingsRequest is the body of a batch submission
type SubmitRatingsRequest struct {
	Ratings  []models.RatingInput `json:"ratings"`
	IsUpdate bool                 `json:"isUpdate"`
}

// SubmitRatingsResponse reports the outcome of a batch submission
type SubmitRatingsResponse struct {
	Success bool `json:"success"`
	*service.SubmitResult
}

// actorFromRequest builds the acting user from the context populated by the
// auth and RBAC middleware
func actorFromRequest(r *http.Request) (service.Actor, bool) {
	user, ok := middleware.GetUser(r)
	if !ok {
		return service.Actor{}, false
	}
	return service.Actor{
		UserID:    user.ID,
		UserType:  user.UserType,
		IPAddress: middleware.ClientIP(r),
		UserAgent: r.UserAgent(),
	}, true
}

// SubmitRatings stores a batch of competency scores
// @Summary Submit ratings
// @Description Create or update the caller's scores for one or more competencies. Resubmitting over existing ratings requires isUpdate=true.
// @Tags Ratings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SubmitRatingsRequest true "Rating batch"
// @Success 200 {object} SubmitRatingsResponse
// @Failure 400 {object} ValidationErrorResponse "Invalid batch"
// @Failure 404 {object} map[string]string "Unknown candidate, competency or vacancy"
// @Failure 409 {object} ConflictResponse "Existing ratings require confirmation"
// @Failure 500 {object} map[string]string "Persistence failure"
// @Router /ratings [post]
func (h *RatingHandler) SubmitRatings(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, ErrMsgUnauthorized)
		return
	}

	var req SubmitRatingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidRequestBody)
		return
	}

	result, err := h.ratings.SubmitBatch(r.Context(), actor, req.Ratings, req.IsUpdate)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, SubmitRatingsResponse{Success: true, SubmitResult: result})
}

// CheckExisting reports whether ratings already exist for a candidate
// @Summary Check existing ratings
// @Description Without raterType, counts the caller's (or raterId's) ratings. With raterType, reports another rater of that type who already rated the candidate.
// @Tags Ratings
// @Produce json
// @Security BearerAuth
// @Param candidateId query int true "Candidate ID"
// @Param itemNumber query string true "Vacancy item number"
// @Param raterType query string false "Rater type slot to check"
// @Param raterId query int false "Rater ID, defaults to the caller"
// @Success 200 {object} service.ExistingCheck
// @Failure 400 {object} map[string]string "Invalid parameters"
// @Router /ratings/check [get]
func (h *RatingHandler) CheckExisting(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, ErrMsgUnauthorized)
		return
	}

	q := r.URL.Query()
	candidateID, ok := parseUintParam(q.Get("candidateId"))
	if !ok {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidCandidateID)
		return
	}

	raterID := actor.UserID
	if raw := q.Get("raterId"); raw != "" {
		if raterID, ok = parseUintParam(raw); !ok {
			respondWithError(w, http.StatusBadRequest, ErrMsgInvalidRaterID)
			return
		}
	}

	check, err := h.ratings.CheckExisting(r.Context(), candidateID, raterID, q.Get("itemNumber"), q.Get("raterType"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, check)
}

// ResetRatings deletes a rater's ratings for a candidate
// @Summary Reset ratings
// @Description Delete raterId's ratings for a candidate, optionally limited to one item number. Admins may reset any rater, raters only themselves.
// @Tags Ratings
// @Produce json
// @Security BearerAuth
// @Param candidateId query int true "Candidate ID"
// @Param raterId query int true "Rater ID"
// @Param itemNumber query string false "Limit the reset to one item number"
// @Success 200 {object} service.ResetResult
// @Failure 400 {object} map[string]string "Invalid parameters"
// @Failure 403 {object} map[string]string "Not allowed to reset another rater"
// @Router /ratings/reset [delete]
func (h *RatingHandler) ResetRatings(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, ErrMsgUnauthorized)
		return
	}

	q := r.URL.Query()
	candidateID, ok := parseUintParam(q.Get("candidateId"))
	if !ok {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidCandidateID)
		return
	}
	raterID, ok := parseUintParam(q.Get("raterId"))
	if !ok {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidRaterID)
		return
	}

	result, err := h.ratings.ResetRatings(r.Context(), actor, candidateID, raterID, q.Get("itemNumber"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// ListByCandidate lists the ratings of a candidate
// @Summary List ratings of a candidate
// @Tags Ratings
// @Produce json
// @Security BearerAuth
// @Param candidateId path int true "Candidate ID"
// @Param itemNumber query string false "Filter by item number"
// @Success 200 {array} models.RatingDetail
// @Failure 404 {object} map[string]string "Candidate not found"
// @Router /ratings/candidate/{candidateId} [get]
func (h *RatingHandler) ListByCandidate(w http.ResponseWriter, r *http.Request) {
	candidateID, ok := parseUintParam(r.PathValue("candidateId"))
	if !ok {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidCandidateID)
		return
	}

	details, err := h.ratings.ListByCandidate(r.Context(), candidateID, r.URL.Query().Get("itemNumber"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, details)
}

// ListByRater lists every rating submitted by a rater
// @Summary List ratings of a rater
// @Tags Ratings
// @Produce json
// @Security BearerAuth
// @Param raterId path int true "Rater ID"
// @Success 200 {array} models.RatingDetail
// @Failure 404 {object} map[string]string "Rater not found"
// @Router /ratings/rater/{raterId} [get]
func (h *RatingHandler) ListByRater(w http.ResponseWriter, r *http.Request) {
	raterID, ok := parseUintParam(r.PathValue("raterId"))
	if !ok {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidRaterID)
		return
	}

	details, err := h.ratings.ListByRater(r.Context(), raterID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, details)
}
