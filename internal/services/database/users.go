// Package database provides database operations for the Connectly Calendly bridge.
package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/NaimTheDev/connectly-app/internal/models"
)

// UserRepository handles user database operations.
type UserRepository struct {
	db *DB
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByEmail retrieves a user by email address. The caller is expected to
// normalize the email first. Returns models.ErrUserNotFound when no user
// matches.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, email, name, first_name, last_name, timezone, created_at, updated_at
		FROM users
		WHERE email = $1
		LIMIT 1`

	var user models.User
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.FirstName,
		&user.LastName,
		&user.Timezone,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return &user, nil
}

// FindByID retrieves a user by their ID. Returns models.ErrUserNotFound when
// no user matches.
func (r *UserRepository) FindByID(ctx context.Context, userID string) (*models.User, error) {
	query := `
		SELECT id, email, name, first_name, last_name, timezone, created_at, updated_at
		FROM users
		WHERE id = $1`

	var user models.User
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.FirstName,
		&user.LastName,
		&user.Timezone,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return &user, nil
}
