package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/xhrissun/rhrmpsb-system-sub000/internal/models"
)

// SlotHolder is the rater already holding ratings for a candidate and item number
type SlotHolder struct {
	RaterID     uint
	RatingCount int
}

// RatingRepository handles database operations for ratings
type RatingRepository struct {
	db DBTX
}

// NewRatingRepository creates a new rating repository
func NewRatingRepository(db DBTX) *RatingRepository {
	return &RatingRepository{db: db}
}

const ratingColumns = `id, candidate_id, rater_id, competency_id, competency_type, item_number, score, submitted_at, created_at`

func scanRating(row interface{ Scan(...any) error }, r *models.Rating) error {
	return row.Scan(
		&r.ID,
		&r.CandidateID,
		&r.RaterID,
		&r.CompetencyID,
		&r.CompetencyType,
		&r.ItemNumber,
		&r.Score,
		&r.SubmittedAt,
		&r.CreatedAt,
	)
}

// CountByRaterForPairs counts the rater's ratings across the given (candidate, item number) pairs
func (r *RatingRepository) CountByRaterForPairs(ctx context.Context, raterID uint, pairs []models.CandidateItem) (int, error) {
	if len(pairs) == 0 {
		return 0, nil
	}

	candidateIDs := make([]int64, len(pairs))
	itemNumbers := make([]string, len(pairs))
	for i, p := range pairs {
		candidateIDs[i] = int64(p.CandidateID)
		itemNumbers[i] = p.ItemNumber
	}

	query := `
		SELECT COUNT(*)
		FROM ratings
		WHERE rater_id = $1
		  AND (candidate_id, item_number) IN (
			SELECT * FROM unnest($2::int[], $3::text[])
		  )
	`

	var count int
	err := r.db.QueryRowContext(ctx, query, raterID, pq.Array(candidateIDs), pq.Array(itemNumbers)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count existing ratings: %w", err)
	}
	return count, nil
}

// CountByRater counts the rater's ratings for one candidate and item number
func (r *RatingRepository) CountByRater(ctx context.Context, candidateID, raterID uint, itemNumber string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM ratings
		WHERE candidate_id = $1 AND rater_id = $2 AND item_number = $3
	`

	var count int
	if err := r.db.QueryRowContext(ctx, query, candidateID, raterID, itemNumber).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count ratings: %w", err)
	}
	return count, nil
}

// FindByKey returns the rating with the given composite key, or nil when none exists.
// With forUpdate the row stays locked until the surrounding transaction ends.
func (r *RatingRepository) FindByKey(ctx context.Context, key models.RatingKey, forUpdate bool) (*models.Rating, error) {
	query := `
		SELECT ` + ratingColumns + `
		FROM ratings
		WHERE candidate_id = $1 AND rater_id = $2 AND competency_id = $3
		  AND competency_type = $4 AND item_number = $5
	`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var rating models.Rating
	err := scanRating(r.db.QueryRowContext(ctx, query,
		key.CandidateID,
		key.RaterID,
		key.CompetencyID,
		key.CompetencyType,
		key.ItemNumber,
	), &rating)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find rating: %w", err)
	}
	return &rating, nil
}

// Upsert inserts the rating or overwrites the score of the row with the same composite key
func (r *RatingRepository) Upsert(ctx context.Context, rating *models.Rating) error {
	query := `
		INSERT INTO ratings (
			candidate_id, rater_id, competency_id, competency_type, item_number, score, submitted_at
		) VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (candidate_id, rater_id, competency_id, competency_type, item_number)
		DO UPDATE SET
			score = EXCLUDED.score,
			submitted_at = NOW()
		RETURNING id, submitted_at, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		rating.CandidateID,
		rating.RaterID,
		rating.CompetencyID,
		rating.CompetencyType,
		rating.ItemNumber,
		rating.Score,
	).Scan(&rating.ID, &rating.SubmittedAt, &rating.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert rating: %w", err)
	}
	return nil
}

// DeleteScoped removes the rater's ratings for a candidate and returns the removed rows.
// An empty itemNumber removes them across all item numbers.
func (r *RatingRepository) DeleteScoped(ctx context.Context, candidateID, raterID uint, itemNumber string) ([]models.Rating, error) {
	query := `
		DELETE FROM ratings
		WHERE candidate_id = $1 AND rater_id = $2
		  AND ($3 = '' OR item_number = $3)
		RETURNING ` + ratingColumns

	rows, err := r.db.QueryContext(ctx, query, candidateID, raterID, itemNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to delete ratings: %w", err)
	}
	defer rows.Close()

	deleted := []models.Rating{}
	for rows.Next() {
		var rating models.Rating
		if err := scanRating(rows, &rating); err != nil {
			return nil, fmt.Errorf("failed to scan deleted rating: %w", err)
		}
		deleted = append(deleted, rating)
	}
	return deleted, rows.Err()
}

const ratingDetailQuery = `
	SELECT r.id, r.candidate_id, r.rater_id, r.competency_id, r.competency_type, r.item_number,
	       r.score, r.submitted_at, r.created_at,
	       COALESCE(u.name, ''), u.rater_type, COALESCE(c.name, '')
	FROM ratings r
	LEFT JOIN users u ON u.id = r.rater_id
	LEFT JOIN competencies c ON c.id = r.competency_id
`

// ListByCandidate returns a candidate's ratings joined with rater and competency names.
// An empty itemNumber returns ratings under every item number.
func (r *RatingRepository) ListByCandidate(ctx context.Context, candidateID uint, itemNumber string) ([]models.RatingDetail, error) {
	query := ratingDetailQuery + `
		WHERE r.candidate_id = $1 AND ($2 = '' OR r.item_number = $2)
		ORDER BY r.item_number, r.competency_type, r.competency_id, r.rater_id
	`
	return r.listDetails(ctx, query, candidateID, itemNumber)
}

// ListByRater returns every rating submitted by a rater
func (r *RatingRepository) ListByRater(ctx context.Context, raterID uint) ([]models.RatingDetail, error) {
	query := ratingDetailQuery + `
		WHERE r.rater_id = $1
		ORDER BY r.submitted_at DESC, r.id
	`
	return r.listDetails(ctx, query, raterID)
}

func (r *RatingRepository) listDetails(ctx context.Context, query string, args ...any) ([]models.RatingDetail, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list ratings: %w", err)
	}
	defer rows.Close()

	// Initialize with empty slice instead of nil to avoid JSON null
	details := []models.RatingDetail{}
	for rows.Next() {
		var d models.RatingDetail
		err := rows.Scan(
			&d.ID,
			&d.CandidateID,
			&d.RaterID,
			&d.CompetencyID,
			&d.CompetencyType,
			&d.ItemNumber,
			&d.Score,
			&d.SubmittedAt,
			&d.CreatedAt,
			&d.RaterName,
			&d.RaterType,
			&d.CompetencyName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rating: %w", err)
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

// FindSlotHolder returns the earliest of raterIDs with ratings for the candidate
// and item number, or nil when none of them has rated
func (r *RatingRepository) FindSlotHolder(ctx context.Context, candidateID uint, itemNumber string, raterIDs []uint) (*SlotHolder, error) {
	if len(raterIDs) == 0 {
		return nil, nil
	}

	ids := make([]int64, len(raterIDs))
	for i, id := range raterIDs {
		ids[i] = int64(id)
	}

	query := `
		SELECT rater_id, COUNT(*)
		FROM ratings
		WHERE candidate_id = $1 AND item_number = $2 AND rater_id = ANY($3)
		GROUP BY rater_id
		ORDER BY MIN(submitted_at), rater_id
		LIMIT 1
	`

	var holder SlotHolder
	err := r.db.QueryRowContext(ctx, query, candidateID, itemNumber, pq.Array(ids)).
		Scan(&holder.RaterID, &holder.RatingCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find slot holder: %w", err)
	}
	return &holder, nil
}
