package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/xhrissun/rhrmpsb-system-sub000/internal/models"
	"github.com/xhrissun/rhrmpsb-system-sub000/internal/repository"
)

// SubmitResult summarizes one submitted batch. RowsTouched and ChangesLogged
// are lower than the batch size when items were unchanged.
type SubmitResult struct {
	BatchID       string          `json:"batchId"`
	Ratings       []models.Rating `json:"ratings"`
	RowsTouched   int             `json:"rowsTouched"`
	ChangesLogged int             `json:"changesLogged"`
	Unchanged     int             `json:"unchanged"`
}

// ExistingRater identifies the rater already holding a rater-type slot
type ExistingRater struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	RaterType string `json:"raterType"`
}

// ExistingCheck is the outcome of CheckExisting
type ExistingCheck struct {
	HasExisting   bool           `json:"hasExisting"`
	ExistingRater *ExistingRater `json:"existingRater,omitempty"`
	RatingCount   int            `json:"ratingCount,omitempty"`
}

// ResetResult summarizes a reset
type ResetResult struct {
	BatchID       string `json:"batchId,omitempty"`
	Deleted       int    `json:"deleted"`
	ChangesLogged int    `json:"changesLogged"`
}

// RatingService records scores idempotently and keeps the rating log in step
type RatingService struct {
	ratings      repository.RatingStore
	tx           repository.Transactor
	candidates   repository.CandidateStore
	competencies repository.CompetencyStore
	vacancies    repository.VacancyStore
	users        repository.UserStore
	validate     *validator.Validate
	newBatchID   func() string
}

// NewRatingService creates a new rating service
func NewRatingService(
	ratings repository.RatingStore,
	tx repository.Transactor,
	candidates repository.CandidateStore,
	competencies repository.CompetencyStore,
	vacancies repository.VacancyStore,
	users repository.UserStore,
) *RatingService {
	return &RatingService{
		ratings:      ratings,
		tx:           tx,
		candidates:   candidates,
		competencies: competencies,
		vacancies:    vacancies,
		users:        users,
		validate:     newValidator(),
		newBatchID:   uuid.NewString,
	}
}

// newValidator reports field errors under their JSON names
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// SubmitBatch validates every item, refuses unconfirmed resubmissions and then
// upserts the items one transaction per row. Items whose stored score already
// equals the submitted one are skipped without a log entry.
//
// A failure after the first committed row leaves the earlier rows and their
// log entries in place.
func (s *RatingService) SubmitBatch(ctx context.Context, actor Actor, items []models.RatingInput, isUpdate bool) (*SubmitResult, error) {
	items, err := s.validateBatch(actor, items)
	if err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, items); err != nil {
		return nil, err
	}

	existing, err := s.ratings.CountByRaterForPairs(ctx, actor.UserID, distinctPairs(items))
	if err != nil {
		return nil, persistence("count existing ratings", err)
	}
	if existing > 0 && !isUpdate {
		return nil, &ConflictError{ExistingCount: existing}
	}

	result := &SubmitResult{
		BatchID: s.newBatchID(),
		Ratings: make([]models.Rating, 0, len(items)),
	}

	for i, item := range items {
		rating, changed, err := s.applyItem(ctx, actor, result.BatchID, item)
		if err != nil {
			slog.Error("Rating batch aborted",
				"batch_id", result.BatchID,
				"item", i,
				"rows_touched", result.RowsTouched,
				"error", err,
			)
			return nil, persistence("submit rating", err)
		}
		result.Ratings = append(result.Ratings, *rating)
		if changed {
			result.RowsTouched++
			result.ChangesLogged++
		} else {
			result.Unchanged++
		}
	}

	slog.Info("Rating batch submitted",
		"batch_id", result.BatchID,
		"actor_id", actor.UserID,
		"items", len(items),
		"rows_touched", result.RowsTouched,
		"unchanged", result.Unchanged,
	)
	return result, nil
}

// applyItem locks the row for the item's key, classifies the change and
// writes the row and its log entry in one transaction
func (s *RatingService) applyItem(ctx context.Context, actor Actor, batchID string, item models.RatingInput) (*models.Rating, bool, error) {
	rating := &models.Rating{
		CandidateID:    item.CandidateID,
		RaterID:        actor.UserID,
		CompetencyID:   item.CompetencyID,
		CompetencyType: item.CompetencyType,
		ItemNumber:     item.ItemNumber,
		Score:          item.Score,
	}
	changed := false

	err := s.tx.WithinTx(ctx, func(st repository.TxStores) error {
		current, err := st.Ratings.FindByKey(ctx, rating.Key(), true)
		if err != nil {
			return err
		}
		if current != nil && current.Score == item.Score {
			*rating = *current
			return nil
		}

		action := models.RatingActionCreated
		var oldScore *float64
		if current != nil {
			action = models.RatingActionUpdated
			old := current.Score
			oldScore = &old
		}

		if err := st.Ratings.Upsert(ctx, rating); err != nil {
			return err
		}
		newScore := rating.Score
		if err := st.Logs.Append(ctx, ratingChange(batchID, actor, action, *rating, oldScore, &newScore)); err != nil {
			return err
		}
		changed = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return rating, changed, nil
}

// validateBatch normalizes the items and checks all of them before anything is written
func (s *RatingService) validateBatch(actor Actor, items []models.RatingInput) ([]models.RatingInput, error) {
	if len(items) == 0 {
		return nil, &ValidationError{Index: -1, Field: "ratings", Message: "must not be empty"}
	}
	if actor.UserID == 0 {
		return nil, &ValidationError{Index: -1, Field: "raterId", Message: "acting user is required"}
	}

	normalized := make([]models.RatingInput, len(items))
	for i, item := range items {
		item.ItemNumber = strings.TrimSpace(item.ItemNumber)
		if item.RaterID != 0 && item.RaterID != actor.UserID {
			return nil, &ValidationError{Index: i, Field: "raterId", Message: "must match the acting user"}
		}
		if err := s.validate.Struct(item); err != nil {
			return nil, fieldError(i, err)
		}
		item.RaterID = actor.UserID
		normalized[i] = item
	}
	return normalized, nil
}

func fieldError(index int, err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ValidationError{Index: index, Message: err.Error()}
	}

	fe := fieldErrs[0]
	var msg string
	switch fe.Tag() {
	case "required":
		msg = "is required"
	case "oneof":
		msg = "must be one of " + fe.Param()
	case "gte":
		msg = "must be at least " + fe.Param()
	case "lte":
		msg = "must be at most " + fe.Param()
	default:
		msg = "failed " + fe.Tag() + " validation"
	}
	return &ValidationError{Index: index, Field: fe.Field(), Message: msg}
}

// checkReferences resolves every candidate, competency and item number once
func (s *RatingService) checkReferences(ctx context.Context, items []models.RatingInput) error {
	candidates := make(map[uint]bool)
	competencies := make(map[uint]models.CompetencyType)
	itemNumbers := make(map[string]bool)

	for i, item := range items {
		if !candidates[item.CandidateID] {
			if _, err := s.candidates.GetByID(ctx, item.CandidateID); err != nil {
				return lookupError(err, "candidate", strconv.FormatUint(uint64(item.CandidateID), 10))
			}
			candidates[item.CandidateID] = true
		}

		typ, ok := competencies[item.CompetencyID]
		if !ok {
			c, err := s.competencies.GetByID(ctx, item.CompetencyID)
			if err != nil {
				return lookupError(err, "competency", strconv.FormatUint(uint64(item.CompetencyID), 10))
			}
			typ = c.Type
			competencies[item.CompetencyID] = typ
		}
		if typ != item.CompetencyType {
			return &ValidationError{
				Index:   i,
				Field:   "competencyType",
				Message: fmt.Sprintf("competency %d is of type %s", item.CompetencyID, typ),
			}
		}

		if !itemNumbers[item.ItemNumber] {
			if _, err := s.vacancies.GetByItemNumber(ctx, item.ItemNumber); err != nil {
				return lookupError(err, "vacancy", item.ItemNumber)
			}
			itemNumbers[item.ItemNumber] = true
		}
	}
	return nil
}

func lookupError(err error, resource, id string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return &NotFoundError{Resource: resource, ID: id}
	}
	return persistence("get "+resource, err)
}

func distinctPairs(items []models.RatingInput) []models.CandidateItem {
	seen := make(map[models.CandidateItem]bool)
	var pairs []models.CandidateItem
	for _, item := range items {
		p := models.CandidateItem{CandidateID: item.CandidateID, ItemNumber: item.ItemNumber}
		if !seen[p] {
			seen[p] = true
			pairs = append(pairs, p)
		}
	}
	return pairs
}

// CheckExisting reports whether a candidate already has ratings under an item number.
// Without raterType it counts raterID's own ratings. With raterType it looks for
// another rater of that type who already holds the slot.
func (s *RatingService) CheckExisting(ctx context.Context, candidateID, raterID uint, itemNumber, raterType string) (*ExistingCheck, error) {
	itemNumber = strings.TrimSpace(itemNumber)
	raterType = strings.TrimSpace(raterType)
	if candidateID == 0 {
		return nil, &ValidationError{Index: -1, Field: "candidateId", Message: "is required"}
	}
	if itemNumber == "" {
		return nil, &ValidationError{Index: -1, Field: "itemNumber", Message: "is required"}
	}

	if raterType == "" {
		if raterID == 0 {
			return nil, &ValidationError{Index: -1, Field: "raterId", Message: "is required without raterType"}
		}
		count, err := s.ratings.CountByRater(ctx, candidateID, raterID, itemNumber)
		if err != nil {
			return nil, persistence("count ratings", err)
		}
		return &ExistingCheck{HasExisting: count > 0, RatingCount: count}, nil
	}

	users, err := s.users.ListByRaterType(ctx, raterType)
	if err != nil {
		return nil, persistence("list raters by type", err)
	}

	byID := make(map[uint]models.User, len(users))
	ids := make([]uint, 0, len(users))
	for _, u := range users {
		if u.ID == raterID {
			continue
		}
		byID[u.ID] = u
		ids = append(ids, u.ID)
	}

	holder, err := s.ratings.FindSlotHolder(ctx, candidateID, itemNumber, ids)
	if err != nil {
		return nil, persistence("find slot holder", err)
	}
	if holder == nil {
		return &ExistingCheck{HasExisting: false}, nil
	}

	u := byID[holder.RaterID]
	return &ExistingCheck{
		HasExisting: true,
		ExistingRater: &ExistingRater{
			ID:        holder.RaterID,
			Name:      u.Name,
			RaterType: u.RaterTypeName(),
		},
		RatingCount: holder.RatingCount,
	}, nil
}

// ResetRatings deletes raterID's ratings for a candidate, limited to itemNumber
// when given, and logs one deletion per removed row. Raters may only reset
// their own ratings.
func (s *RatingService) ResetRatings(ctx context.Context, actor Actor, candidateID, raterID uint, itemNumber string) (*ResetResult, error) {
	itemNumber = strings.TrimSpace(itemNumber)
	if candidateID == 0 {
		return nil, &ValidationError{Index: -1, Field: "candidateId", Message: "is required"}
	}
	if raterID == 0 {
		return nil, &ValidationError{Index: -1, Field: "raterId", Message: "is required"}
	}
	if !actor.IsAdmin() && actor.UserID != raterID {
		return nil, &ForbiddenError{Message: "raters may only reset their own ratings"}
	}

	batchID := s.newBatchID()
	result := &ResetResult{}

	err := s.tx.WithinTx(ctx, func(st repository.TxStores) error {
		deleted, err := st.Ratings.DeleteScoped(ctx, candidateID, raterID, itemNumber)
		if err != nil {
			return err
		}
		for _, rating := range deleted {
			old := rating.Score
			if err := st.Logs.Append(ctx, ratingChange(batchID, actor, models.RatingActionDeleted, rating, &old, nil)); err != nil {
				return err
			}
		}
		result.Deleted = len(deleted)
		result.ChangesLogged = len(deleted)
		return nil
	})
	if err != nil {
		return nil, persistence("reset ratings", err)
	}

	if result.Deleted > 0 {
		result.BatchID = batchID
	}
	slog.Info("Ratings reset",
		"actor_id", actor.UserID,
		"candidate_id", candidateID,
		"rater_id", raterID,
		"item_number", itemNumber,
		"deleted", result.Deleted,
	)
	return result, nil
}

// ListByCandidate returns a candidate's ratings with display names
func (s *RatingService) ListByCandidate(ctx context.Context, candidateID uint, itemNumber string) ([]models.RatingDetail, error) {
	if _, err := s.candidates.GetByID(ctx, candidateID); err != nil {
		return nil, lookupError(err, "candidate", strconv.FormatUint(uint64(candidateID), 10))
	}
	details, err := s.ratings.ListByCandidate(ctx, candidateID, strings.TrimSpace(itemNumber))
	if err != nil {
		return nil, persistence("list ratings by candidate", err)
	}
	return details, nil
}

// ListByRater returns every rating submitted by a rater
func (s *RatingService) ListByRater(ctx context.Context, raterID uint) ([]models.RatingDetail, error) {
	if _, err := s.users.GetByID(ctx, raterID); err != nil {
		return nil, lookupError(err, "rater", strconv.FormatUint(uint64(raterID), 10))
	}
	details, err := s.ratings.ListByRater(ctx, raterID)
	if err != nil {
		return nil, persistence("list ratings by rater", err)
	}
	return details, nil
}
