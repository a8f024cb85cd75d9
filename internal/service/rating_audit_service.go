package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/xhrissun/rhrmpsb-system-sub000/internal/models"
	"github.com/xhrissun/rhrmpsb-system-sub000/internal/repository"
)

// Pagination bounds for rating log queries
const (
	DefaultLogLimit = 50
	MaxLogLimit     = 200
)

// Actor is the authenticated user performing a write, with request provenance
type Actor struct {
	UserID    uint
	UserType  string
	IPAddress string
	UserAgent string
}

// IsAdmin reports whether the actor is an administrator
func (a Actor) IsAdmin() bool {
	return a.UserType == models.UserTypeAdmin
}

// ratingChange builds the log entry for one change. oldScore is nil for a
// creation, newScore is nil for a deletion.
func ratingChange(batchID string, actor Actor, action models.RatingAction, rating models.Rating, oldScore, newScore *float64) *models.RatingLog {
	ratingID := rating.ID
	return &models.RatingLog{
		BatchID:        batchID,
		Action:         action,
		RatingID:       &ratingID,
		CandidateID:    rating.CandidateID,
		RaterID:        rating.RaterID,
		CompetencyID:   rating.CompetencyID,
		CompetencyType: rating.CompetencyType,
		ItemNumber:     rating.ItemNumber,
		OldScore:       oldScore,
		NewScore:       newScore,
		ActorID:        actor.UserID,
		IPAddress:      actor.IPAddress,
		UserAgent:      actor.UserAgent,
	}
}

// LogPage is one page of rating log entries
type LogPage struct {
	Logs  []models.RatingLog `json:"logs"`
	Total int                `json:"total"`
	Limit int                `json:"limit"`
	Skip  int                `json:"skip"`
}

// RatingAuditService serves the read side of the rating log
type RatingAuditService struct {
	logs repository.RatingLogStore
}

// NewRatingAuditService creates a new rating audit service
func NewRatingAuditService(logs repository.RatingLogStore) *RatingAuditService {
	return &RatingAuditService{logs: logs}
}

// List returns a page of log entries matching filter, newest first.
// limit is clamped to [1, MaxLogLimit] and defaults to DefaultLogLimit.
func (s *RatingAuditService) List(ctx context.Context, filter models.RatingLogFilter, limit, skip int) (*LogPage, error) {
	if filter.Action != "" && !filter.Action.Valid() {
		return nil, &ValidationError{Index: -1, Field: "action", Message: "must be one of created, updated, deleted"}
	}
	if limit <= 0 {
		limit = DefaultLogLimit
	}
	if limit > MaxLogLimit {
		limit = MaxLogLimit
	}
	if skip < 0 {
		skip = 0
	}

	total, err := s.logs.Count(ctx, filter)
	if err != nil {
		return nil, persistence("count rating logs", err)
	}
	logs, err := s.logs.List(ctx, filter, limit, skip)
	if err != nil {
		return nil, persistence("list rating logs", err)
	}

	return &LogPage{Logs: logs, Total: total, Limit: limit, Skip: skip}, nil
}

// Stats returns per-action counts and per-rater activity for the matching entries
func (s *RatingAuditService) Stats(ctx context.Context, filter models.RatingLogFilter) (*models.RatingLogStats, error) {
	if filter.Action != "" && !filter.Action.Valid() {
		return nil, &ValidationError{Index: -1, Field: "action", Message: "must be one of created, updated, deleted"}
	}
	stats, err := s.logs.Stats(ctx, filter)
	if err != nil {
		return nil, persistence("rating log stats", err)
	}
	return stats, nil
}

// Batch returns every entry of one submission or reset batch
func (s *RatingAuditService) Batch(ctx context.Context, batchID string) ([]models.RatingLog, error) {
	if _, err := uuid.Parse(batchID); err != nil {
		return nil, &ValidationError{Index: -1, Field: "batchId", Message: "must be a UUID"}
	}
	logs, err := s.logs.ListByBatch(ctx, batchID)
	if err != nil {
		return nil, persistence("list rating log batch", err)
	}
	if len(logs) == 0 {
		return nil, &NotFoundError{Resource: "rating log batch", ID: batchID}
	}
	return logs, nil
}
