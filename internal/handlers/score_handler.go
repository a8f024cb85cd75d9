package handlers

import (
	"context"
	"net/http"

	"github.com/xhrissun/rhrmpsb-system-sub000/internal/models"
	"github.com/xhrissun/rhrmpsb-system-sub000/internal/service"
)

// ScoringOperations is the part of service.ScoringService used by ScoreHandler
type ScoringOperations interface {
	ComputeCandidateScores(ctx context.Context, candidateID uint, itemNumber string) (*service.CandidateScores, error)
	RankCandidates(ctx context.Context, itemNumber string) (*service.Ranking, error)
	ResolveApplicableCompetencies(ctx context.Context, vacancyID uint) ([]models.Competency, error)
}

// ScoreHandler serves computed indices and rankings
type ScoreHandler struct {
	scoring ScoringOperations
}

// NewScoreHandler creates a new score handler
func NewScoreHandler(scoring ScoringOperations) *ScoreHandler {
	return &ScoreHandler{scoring: scoring}
}

// GetCandidateScores computes the indices of one candidate
// @Summary Candidate scores
// @Description Psycho-Social and Potential indices with per-type breakdown for a candidate under an item number (defaults to the candidate's current one)
// @Tags Scores
// @Produce json
// @Security BearerAuth
// @Param candidateId path int true "Candidate ID"
// @Param itemNumber query string false "Vacancy item number"
// @Success 200 {object} service.CandidateScores
// @Failure 400 {object} map[string]string "Invalid candidate ID"
// @Failure 404 {object} map[string]string "Candidate or vacancy not found"
// @Router /scores/{candidateId} [get]
func (h *ScoreHandler) GetCandidateScores(w http.ResponseWriter, r *http.Request) {
	candidateID, ok := parseUintParam(r.PathValue("candidateId"))
	if !ok {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidCandidateID)
		return
	}

	scores, err := h.scoring.ComputeCandidateScores(r.Context(), candidateID, r.URL.Query().Get("itemNumber"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, scores)
}

// GetRanking ranks the long-listed candidates of a vacancy
// @Summary Vacancy ranking
// @Tags Scores
// @Produce json
// @Security BearerAuth
// @Param itemNumber path string true "Vacancy item number"
// @Success 200 {object} service.Ranking
// @Failure 404 {object} map[string]string "Vacancy not found"
// @Router /rankings/{itemNumber} [get]
func (h *ScoreHandler) GetRanking(w http.ResponseWriter, r *http.Request) {
	ranking, err := h.scoring.RankCandidates(r.Context(), r.PathValue("itemNumber"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, ranking)
}

// GetApplicableCompetencies lists the competencies that apply to a vacancy
// @Summary Applicable competencies
// @Description Fixed competencies plus those linked to the vacancy
// @Tags Scores
// @Produce json
// @Security BearerAuth
// @Param vacancyId path int true "Vacancy ID"
// @Success 200 {array} models.Competency
// @Failure 404 {object} map[string]string "Vacancy not found"
// @Router /competencies/applicable/{vacancyId} [get]
func (h *ScoreHandler) GetApplicableCompetencies(w http.ResponseWriter, r *http.Request) {
	vacancyID, ok := parseUintParam(r.PathValue("vacancyId"))
	if !ok {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidVacancyID)
		return
	}

	competencies, err := h.scoring.ResolveApplicableCompetencies(r.Context(), vacancyID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, competencies)
}
