// Package database provides database operations for the Connectly Calendly bridge.
package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/NaimTheDev/connectly-app/internal/models"
)

// CalendlyInfoRepository handles mentor Calendly credential lookups.
type CalendlyInfoRepository struct {
	db *DB
}

// NewCalendlyInfoRepository creates a new Calendly info repository.
func NewCalendlyInfoRepository(db *DB) *CalendlyInfoRepository {
	return &CalendlyInfoRepository{db: db}
}

// GetByMentorID retrieves the first Calendly credential row stored for a
// mentor, so callers don't need to know which row is current. Returns
// models.ErrCalendlyInfoNotFound when none exists.
func (r *CalendlyInfoRepository) GetByMentorID(ctx context.Context, mentorID string) (*models.CalendlyInfo, error) {
	query := `
		SELECT mentor_id, access_token, event_type_uri
		FROM calendly_info
		WHERE mentor_id = $1
		ORDER BY created_at
		LIMIT 1`

	var info models.CalendlyInfo
	err := r.db.QueryRowContext(ctx, query, mentorID).Scan(
		&info.MentorID,
		&info.AccessToken,
		&info.EventTypeURI,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrCalendlyInfoNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get calendly info: %w", err)
	}

	return &info, nil
}
