// Package database provides database operations for the Connectly Calendly bridge.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/NaimTheDev/connectly-app/internal/models"
)

// ScheduledCallRepository handles scheduled call database operations.
type ScheduledCallRepository struct {
	db *DB
}

// NewScheduledCallRepository creates a new scheduled call repository.
func NewScheduledCallRepository(db *DB) *ScheduledCallRepository {
	return &ScheduledCallRepository{db: db}
}

// Exists checks whether a scheduled call already exists for the given user
// and Calendly event URI.
func (r *ScheduledCallRepository) Exists(ctx context.Context, userID, eventURI string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM scheduled_calls
			WHERE user_id = $1 AND calendly_event_uri = $2
			LIMIT 1
		)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, userID, eventURI).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check scheduled call existence: %w", err)
	}

	return exists, nil
}

// Create inserts a new scheduled call into the user's records and returns the
// record ID. Duplicate prevention is the caller's responsibility via Exists;
// there is deliberately no unique constraint, so concurrent webhook
// deliveries may race.
func (r *ScheduledCallRepository) Create(ctx context.Context, userID string, call *models.ScheduledCall) (int64, error) {
	query := `
		INSERT INTO scheduled_calls (
			user_id, calendly_event_uri, status, event_type,
			invitee_email, invitee_name, mentor_uri, mentor_name,
			start_time, end_time, timezone, join_url,
			reschedule_url, cancel_url, rescheduled,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id`

	createdAt := call.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		userID,
		call.CalendlyEventURI,
		string(call.Status),
		call.EventType,
		call.InviteeEmail,
		call.InviteeName,
		call.MentorURI,
		call.MentorName,
		call.StartTime,
		call.EndTime,
		call.Timezone,
		call.JoinURL,
		call.RescheduleURL,
		call.CancelURL,
		call.Rescheduled,
		createdAt,
		time.Now().UTC(),
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("failed to create scheduled call: %w", err)
	}

	return id, nil
}

// UpdateByEventURI applies a patch to the user's scheduled call matching the
// given Calendly event URI and stamps updated_at. Returns false (not an
// error) when no matching record exists.
func (r *ScheduledCallRepository) UpdateByEventURI(ctx context.Context, userID, eventURI string, patch *models.ScheduledCallPatch) (bool, error) {
	query := `
		UPDATE scheduled_calls SET
			status = COALESCE($3, status),
			canceled_at = COALESCE($4, canceled_at),
			canceled_by = COALESCE($5, canceled_by),
			cancellation_reason = COALESCE($6, cancellation_reason),
			updated_at = $7
		WHERE id = (
			SELECT id FROM scheduled_calls
			WHERE user_id = $1 AND calendly_event_uri = $2
			ORDER BY id
			LIMIT 1
		)`

	var status *string
	if patch.Status != nil {
		s := string(*patch.Status)
		status = &s
	}

	affected, err := r.db.ExecContext(ctx, query,
		userID,
		eventURI,
		status,
		patch.CanceledAt,
		patch.CanceledBy,
		patch.CancellationReason,
		time.Now().UTC(),
	)
	if err != nil {
		return false, fmt.Errorf("failed to update scheduled call: %w", err)
	}

	return affected > 0, nil
}
