package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/xhrissun/rhrmpsb-system-sub000/internal/models"
)

// UserRepository reads users and their rater types
type UserRepository struct {
	db DBTX
}

// NewUserRepository creates a new user repository
func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	query := `
		SELECT id, name, email, user_type, rater_type, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.UserType,
		&user.RaterType,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// ListByRaterType returns all raters whose rater type matches exactly after trimming
func (r *UserRepository) ListByRaterType(ctx context.Context, raterType string) ([]models.User, error) {
	query := `
		SELECT id, name, email, user_type, rater_type, created_at, updated_at
		FROM users
		WHERE user_type = $1 AND TRIM(rater_type) = TRIM($2)
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, models.UserTypeRater, raterType)
	if err != nil {
		return nil, fmt.Errorf("failed to list users by rater type: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.UserType, &u.RaterType, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
