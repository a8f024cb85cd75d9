package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/xhrissun/rhrmpsb-system-sub000/internal/models"
)

// CandidateRepository reads candidates
type CandidateRepository struct {
	db DBTX
}

// NewCandidateRepository creates a new candidate repository
func NewCandidateRepository(db DBTX) *CandidateRepository {
	return &CandidateRepository{db: db}
}

// GetByID retrieves a candidate by ID
func (r *CandidateRepository) GetByID(ctx context.Context, id uint) (*models.Candidate, error) {
	query := `
		SELECT id, full_name, item_number, status, is_archived, created_at, updated_at
		FROM candidates
		WHERE id = $1
	`

	c := &models.Candidate{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.FullName, &c.ItemNumber, &c.Status, &c.IsArchived, &c.CreatedAt, &c.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}
	return c, nil
}

// ListByItemNumber returns the non-archived candidates of an item number with the given status
func (r *CandidateRepository) ListByItemNumber(ctx context.Context, itemNumber string, status models.CandidateStatus) ([]models.Candidate, error) {
	query := `
		SELECT id, full_name, item_number, status, is_archived, created_at, updated_at
		FROM candidates
		WHERE item_number = $1 AND status = $2 AND NOT is_archived
		ORDER BY full_name, id
	`

	rows, err := r.db.QueryContext(ctx, query, itemNumber, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer rows.Close()

	candidates := []models.Candidate{}
	for rows.Next() {
		var c models.Candidate
		if err := rows.Scan(&c.ID, &c.FullName, &c.ItemNumber, &c.Status, &c.IsArchived, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}
