package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/xhrissun/rhrmpsb-system-sub000/internal/models"
)

// ErrNotFound is returned by lookups of a single reference record
var ErrNotFound = errors.New("record not found")

// DBTX is satisfied by *sql.DB and *sql.Tx
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// RatingStore defines the rating persistence operations
type RatingStore interface {
	CountByRaterForPairs(ctx context.Context, raterID uint, pairs []models.CandidateItem) (int, error)
	CountByRater(ctx context.Context, candidateID, raterID uint, itemNumber string) (int, error)
	FindByKey(ctx context.Context, key models.RatingKey, forUpdate bool) (*models.Rating, error)
	Upsert(ctx context.Context, rating *models.Rating) error
	DeleteScoped(ctx context.Context, candidateID, raterID uint, itemNumber string) ([]models.Rating, error)
	ListByCandidate(ctx context.Context, candidateID uint, itemNumber string) ([]models.RatingDetail, error)
	ListByRater(ctx context.Context, raterID uint) ([]models.RatingDetail, error)
	FindSlotHolder(ctx context.Context, candidateID uint, itemNumber string, raterIDs []uint) (*SlotHolder, error)
}

// RatingLogStore defines the append-only rating log operations
type RatingLogStore interface {
	Append(ctx context.Context, log *models.RatingLog) error
	List(ctx context.Context, filter models.RatingLogFilter, limit, skip int) ([]models.RatingLog, error)
	Count(ctx context.Context, filter models.RatingLogFilter) (int, error)
	Stats(ctx context.Context, filter models.RatingLogFilter) (*models.RatingLogStats, error)
	ListByBatch(ctx context.Context, batchID string) ([]models.RatingLog, error)
}

// VacancyStore reads vacancies
type VacancyStore interface {
	GetByID(ctx context.Context, id uint) (*models.Vacancy, error)
	GetByItemNumber(ctx context.Context, itemNumber string) (*models.Vacancy, error)
}

// CompetencyStore reads competencies with their vacancy lists
type CompetencyStore interface {
	GetByID(ctx context.Context, id uint) (*models.Competency, error)
	ListAll(ctx context.Context) ([]models.Competency, error)
}

// CandidateStore reads candidates
type CandidateStore interface {
	GetByID(ctx context.Context, id uint) (*models.Candidate, error)
	ListByItemNumber(ctx context.Context, itemNumber string, status models.CandidateStatus) ([]models.Candidate, error)
}

// UserStore reads users
type UserStore interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	ListByRaterType(ctx context.Context, raterType string) ([]models.User, error)
}

// TxStores are the stores bound to one transaction
type TxStores struct {
	Ratings RatingStore
	Logs    RatingLogStore
}

// Transactor runs fn inside a database transaction. The transaction commits
// when fn returns nil and rolls back otherwise.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(stores TxStores) error) error
}
