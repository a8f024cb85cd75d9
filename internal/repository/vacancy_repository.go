package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/xhrissun/rhrmpsb-system-sub000/internal/models"
)

// VacancyRepository reads vacancies
type VacancyRepository struct {
	db DBTX
}

// NewVacancyRepository creates a new vacancy repository
func NewVacancyRepository(db DBTX) *VacancyRepository {
	return &VacancyRepository{db: db}
}

const vacancyColumns = `id, item_number, position_title, salary_grade, publication_range_id, is_archived, created_at, updated_at`

// GetByID retrieves a vacancy by ID
func (r *VacancyRepository) GetByID(ctx context.Context, id uint) (*models.Vacancy, error) {
	return r.get(ctx, `SELECT `+vacancyColumns+` FROM vacancies WHERE id = $1`, id)
}

// GetByItemNumber retrieves a vacancy by its item number
func (r *VacancyRepository) GetByItemNumber(ctx context.Context, itemNumber string) (*models.Vacancy, error) {
	return r.get(ctx, `SELECT `+vacancyColumns+` FROM vacancies WHERE item_number = $1`, itemNumber)
}

func (r *VacancyRepository) get(ctx context.Context, query string, arg any) (*models.Vacancy, error) {
	v := &models.Vacancy{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&v.ID,
		&v.ItemNumber,
		&v.PositionTitle,
		&v.SalaryGrade,
		&v.PublicationRangeID,
		&v.IsArchived,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get vacancy: %w", err)
	}
	return v, nil
}
