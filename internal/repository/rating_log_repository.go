package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/xhrissun/rhrmpsb-system-sub000/internal/models"
)

// RatingLogRepository handles the append-only rating log
type RatingLogRepository struct {
	db DBTX
}

// NewRatingLogRepository creates a new rating log repository
func NewRatingLogRepository(db DBTX) *RatingLogRepository {
	return &RatingLogRepository{db: db}
}

const ratingLogColumns = `id, batch_id, action, rating_id, candidate_id, rater_id, competency_id,
	competency_type, item_number, old_score, new_score, actor_id, ip_address, user_agent, created_at`

func scanRatingLog(row interface{ Scan(...any) error }, l *models.RatingLog) error {
	return row.Scan(
		&l.ID,
		&l.BatchID,
		&l.Action,
		&l.RatingID,
		&l.CandidateID,
		&l.RaterID,
		&l.CompetencyID,
		&l.CompetencyType,
		&l.ItemNumber,
		&l.OldScore,
		&l.NewScore,
		&l.ActorID,
		&l.IPAddress,
		&l.UserAgent,
		&l.CreatedAt,
	)
}

// Append writes a new log entry
func (r *RatingLogRepository) Append(ctx context.Context, log *models.RatingLog) error {
	query := `
		INSERT INTO rating_logs (
			batch_id, action, rating_id, candidate_id, rater_id, competency_id, competency_type,
			item_number, old_score, new_score, actor_id, ip_address, user_agent
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		log.BatchID,
		log.Action,
		log.RatingID,
		log.CandidateID,
		log.RaterID,
		log.CompetencyID,
		log.CompetencyType,
		log.ItemNumber,
		log.OldScore,
		log.NewScore,
		log.ActorID,
		log.IPAddress,
		log.UserAgent,
	).Scan(&log.ID, &log.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to append rating log: %w", err)
	}
	return nil
}

// whereClause builds the WHERE clause for a filter. Columns are qualified with alias when given.
func whereClause(filter models.RatingLogFilter, alias string) (string, []any) {
	col := func(name string) string {
		if alias == "" {
			return name
		}
		return alias + "." + name
	}

	var conditions []string
	var args []any
	add := func(column string, value any) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", col(column), len(args)))
	}

	if filter.CandidateID != nil {
		add("candidate_id", *filter.CandidateID)
	}
	if filter.RaterID != nil {
		add("rater_id", *filter.RaterID)
	}
	if filter.ItemNumber != "" {
		add("item_number", filter.ItemNumber)
	}
	if filter.Action != "" {
		add("action", filter.Action)
	}
	if filter.BatchID != "" {
		add("batch_id", filter.BatchID)
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// List returns log entries matching filter, newest first
func (r *RatingLogRepository) List(ctx context.Context, filter models.RatingLogFilter, limit, skip int) ([]models.RatingLog, error) {
	where, args := whereClause(filter, "")
	args = append(args, limit, skip)
	query := fmt.Sprintf(`SELECT %s FROM rating_logs%s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		ratingLogColumns, where, len(args)-1, len(args))

	return r.query(ctx, query, args...)
}

// Count returns the number of log entries matching filter
func (r *RatingLogRepository) Count(ctx context.Context, filter models.RatingLogFilter) (int, error) {
	where, args := whereClause(filter, "")

	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM rating_logs`+where, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count rating logs: %w", err)
	}
	return count, nil
}

// ListByBatch returns every entry written by one submission batch in write order
func (r *RatingLogRepository) ListByBatch(ctx context.Context, batchID string) ([]models.RatingLog, error) {
	query := `SELECT ` + ratingLogColumns + ` FROM rating_logs WHERE batch_id = $1 ORDER BY id`
	return r.query(ctx, query, batchID)
}

func (r *RatingLogRepository) query(ctx context.Context, query string, args ...any) ([]models.RatingLog, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get rating logs: %w", err)
	}
	defer rows.Close()

	logs := []models.RatingLog{}
	for rows.Next() {
		var l models.RatingLog
		if err := scanRatingLog(rows, &l); err != nil {
			return nil, fmt.Errorf("failed to scan rating log: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// Stats aggregates the entries matching filter per action and per rater
func (r *RatingLogRepository) Stats(ctx context.Context, filter models.RatingLogFilter) (*models.RatingLogStats, error) {
	where, args := whereClause(filter, "l")
	stats := &models.RatingLogStats{
		ByAction: []models.RatingLogActionCount{},
		ByRater:  []models.RaterActivity{},
	}

	actionRows, err := r.db.QueryContext(ctx,
		`SELECT l.action, COUNT(*) FROM rating_logs l`+where+` GROUP BY l.action ORDER BY l.action`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to count rating log actions: %w", err)
	}
	defer actionRows.Close()

	for actionRows.Next() {
		var c models.RatingLogActionCount
		if err := actionRows.Scan(&c.Action, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan action count: %w", err)
		}
		stats.Total += c.Count
		stats.ByAction = append(stats.ByAction, c)
	}
	if err := actionRows.Err(); err != nil {
		return nil, err
	}

	raterQuery := `
		SELECT l.rater_id, COALESCE(u.name, ''),
		       COUNT(*) FILTER (WHERE l.action = 'created'),
		       COUNT(*) FILTER (WHERE l.action = 'updated'),
		       COUNT(*) FILTER (WHERE l.action = 'deleted'),
		       COUNT(*),
		       MAX(l.created_at)
		FROM rating_logs l
		LEFT JOIN users u ON u.id = l.rater_id` + where + `
		GROUP BY l.rater_id, u.name
		ORDER BY COUNT(*) DESC, l.rater_id
	`
	raterRows, err := r.db.QueryContext(ctx, raterQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate rater activity: %w", err)
	}
	defer raterRows.Close()

	for raterRows.Next() {
		var a models.RaterActivity
		if err := raterRows.Scan(&a.RaterID, &a.RaterName, &a.Created, &a.Updated, &a.Deleted, &a.Total, &a.LastActivity); err != nil {
			return nil, fmt.Errorf("failed to scan rater activity: %w", err)
		}
		stats.ByRater = append(stats.ByRater, a)
	}
	return stats, raterRows.Err()
}
