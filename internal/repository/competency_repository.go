package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/xhrissun/rhrmpsb-system-sub000/internal/models"
)

// CompetencyRepository reads competencies together with the vacancies they are scoped to
type CompetencyRepository struct {
	db DBTX
}

// NewCompetencyRepository creates a new competency repository
func NewCompetencyRepository(db DBTX) *CompetencyRepository {
	return &CompetencyRepository{db: db}
}

const competencyQuery = `
	SELECT c.id, c.name, c.type, c.is_fixed,
	       COALESCE(array_agg(cv.vacancy_id ORDER BY cv.vacancy_id) FILTER (WHERE cv.vacancy_id IS NOT NULL), '{}'),
	       c.created_at, c.updated_at
	FROM competencies c
	LEFT JOIN competency_vacancies cv ON cv.competency_id = c.id
`

func scanCompetency(row interface{ Scan(...any) error }) (models.Competency, error) {
	var c models.Competency
	var vacancyIDs pq.Int64Array
	if err := row.Scan(&c.ID, &c.Name, &c.Type, &c.IsFixed, &vacancyIDs, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return c, err
	}
	c.VacancyIDs = make([]uint, len(vacancyIDs))
	for i, id := range vacancyIDs {
		c.VacancyIDs[i] = uint(id)
	}
	return c, nil
}

// GetByID retrieves a competency by ID
func (r *CompetencyRepository) GetByID(ctx context.Context, id uint) (*models.Competency, error) {
	query := competencyQuery + ` WHERE c.id = $1 GROUP BY c.id`

	c, err := scanCompetency(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get competency: %w", err)
	}
	return &c, nil
}

// ListAll returns every competency ordered by ID
func (r *CompetencyRepository) ListAll(ctx context.Context) ([]models.Competency, error) {
	query := competencyQuery + ` GROUP BY c.id ORDER BY c.id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list competencies: %w", err)
	}
	defer rows.Close()

	competencies := []models.Competency{}
	for rows.Next() {
		c, err := scanCompetency(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan competency: %w", err)
		}
		competencies = append(competencies, c)
	}
	return competencies, rows.Err()
}
