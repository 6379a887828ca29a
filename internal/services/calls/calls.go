// Package calls maps Calendly webhook events onto scheduled call records.
package calls

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/NaimTheDev/connectly-app/internal/models"
	"github.com/NaimTheDev/connectly-app/internal/services/users"
	"github.com/NaimTheDev/connectly-app/internal/utils"
)

// CallStore persists scheduled call records scoped per user.
type CallStore interface {
	Exists(ctx context.Context, userID, eventURI string) (bool, error)
	Create(ctx context.Context, userID string, call *models.ScheduledCall) (int64, error)
	UpdateByEventURI(ctx context.Context, userID, eventURI string, patch *models.ScheduledCallPatch) (bool, error)
}

// UserResolver resolves mentor identities for host-side writes and name
// denormalization.
type UserResolver interface {
	GetUserIDByEmail(ctx context.Context, email string) (string, error)
	FindByID(ctx context.Context, userID string) (*models.User, error)
}

// Service handles scheduled call creation and cancellation.
type Service struct {
	store CallStore
	users UserResolver
}

// NewService creates a new calls service.
func NewService(store CallStore, users UserResolver) *Service {
	return &Service{store: store, users: users}
}

// Exists reports whether a call record already exists for the user and
// Calendly event URI.
func (s *Service) Exists(ctx context.Context, userID, eventURI string) (bool, error) {
	return s.store.Exists(ctx, userID, eventURI)
}

// HandleInviteeCreated creates scheduled call records for an invitee.created
// event. The record is written to the invitee's records and, when the first
// event membership resolves to a known user, duplicated into the mentor's
// records. The two writes are independent; a failed mentor write is logged
// but does not fail the event.
func (s *Service) HandleInviteeCreated(ctx context.Context, userID string, payload *models.CalendlyWebhookPayload, eventType models.CalendlyEventType) (int64, error) {
	logger := utils.GetLogger()

	mentorID := s.resolveMentorID(ctx, payload.ScheduledEvent)

	call, err := s.mapToScheduledCall(ctx, payload, eventType, mentorID)
	if err != nil {
		return 0, err
	}

	recordID, err := s.store.Create(ctx, userID, call)
	if err != nil {
		return 0, err
	}

	logger.Info("Created scheduled call for invitee",
		utils.String("userId", userID),
		utils.Int64("recordId", recordID))

	if mentorID != "" && mentorID != userID {
		mentorRecordID, err := s.store.Create(ctx, mentorID, call)
		if err != nil {
			// Partial failure is accepted: the invitee record exists and
			// there is no rollback.
			logger.Error("Failed to create scheduled call for mentor",
				utils.String("mentorId", mentorID),
				utils.Error(err))
		} else {
			logger.Info("Created scheduled call for mentor",
				utils.String("mentorId", mentorID),
				utils.Int64("recordId", mentorRecordID))
		}
	}

	return recordID, nil
}

// HandleInviteeCanceled marks the user's call record for the payload's event
// URI as canceled, copying cancellation details when present. Returns false
// when no matching record exists.
func (s *Service) HandleInviteeCanceled(ctx context.Context, userID string, payload *models.CalendlyWebhookPayload) (bool, error) {
	if payload.ScheduledEvent == nil {
		return false, models.ErrMissingScheduledEvent
	}

	status := models.CallStatusCanceled
	patch := &models.ScheduledCallPatch{Status: &status}

	if c := payload.Cancellation; c != nil {
		canceledAt := parseTimestamp(c.CreatedAt)
		patch.CanceledAt = &canceledAt
		patch.CanceledBy = &c.CanceledBy
		if c.Reason != "" {
			patch.CancellationReason = &c.Reason
		}
	}

	return s.store.UpdateByEventURI(ctx, userID, payload.ScheduledEvent.URI, patch)
}

// resolveMentorID maps the first event membership's email to an internal
// user ID. Resolution failures are swallowed: the host-side write is simply
// skipped when the mentor is not a known user.
func (s *Service) resolveMentorID(ctx context.Context, event *models.CalendlyScheduledEvent) string {
	if event == nil || len(event.EventMemberships) == 0 {
		return ""
	}

	email := event.EventMemberships[0].UserEmail
	if email == "" {
		return ""
	}

	mentorID, err := s.users.GetUserIDByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, models.ErrUserNotFound) {
			utils.GetLogger().Warn("Mentor lookup failed",
				utils.String("email", email),
				utils.Error(err))
		}
		return ""
	}

	return mentorID
}

// mapToScheduledCall transforms a webhook payload into a scheduled call
// record. When a mentor ID is supplied, the mentor's display name is fetched
// for denormalized storage.
func (s *Service) mapToScheduledCall(ctx context.Context, payload *models.CalendlyWebhookPayload, eventType models.CalendlyEventType, mentorID string) (*models.ScheduledCall, error) {
	event := payload.ScheduledEvent
	if event == nil {
		return nil, models.ErrMissingScheduledEvent
	}

	mentorName := ""
	if strings.TrimSpace(mentorID) != "" {
		mentor, err := s.users.FindByID(ctx, mentorID)
		if err != nil {
			if !errors.Is(err, models.ErrUserNotFound) {
				return nil, fmt.Errorf("failed to fetch mentor: %w", err)
			}
		} else {
			mentorName = mentor.DisplayName()
		}
	}

	call := &models.ScheduledCall{
		CalendlyEventURI: event.URI,
		Status:           deriveCallStatus(eventType, payload.Status),
		EventType:        event.EventType,
		InviteeEmail:     payload.Email,
		InviteeName:      payload.Name,
		MentorURI:        users.ExtractMentorURI(event.EventMemberships),
		MentorName:       mentorName,
		StartTime:        event.StartTime,
		EndTime:          event.EndTime,
		Timezone:         payload.Timezone,
		RescheduleURL:    payload.RescheduleURL,
		CancelURL:        payload.CancelURL,
		Rescheduled:      payload.Rescheduled,
		CreatedAt:        parseTimestamp(payload.CreatedAt),
	}

	if event.Location != nil {
		call.JoinURL = event.Location.JoinURL
	}

	return call, nil
}

// deriveCallStatus normalizes the record status from the event type, falling
// back to the payload's own status field for unhandled event types.
func deriveCallStatus(eventType models.CalendlyEventType, payloadStatus string) models.CallStatus {
	switch eventType {
	case models.EventTypeInviteeCreated:
		return models.CallStatusActive
	case models.EventTypeInviteeCanceled:
		return models.CallStatusCanceled
	case models.EventTypeInviteeRescheduled:
		return models.CallStatusRescheduled
	case models.EventTypeInviteePaymentCreated,
		models.EventTypeInviteeNoShowCreated,
		models.EventTypeInviteeNoShowDeleted:
		// These never reach record creation today, but the payload status
		// is still the best answer if they ever do.
	}

	if status := models.CallStatus(payloadStatus); status.IsValid() {
		return status
	}
	return models.CallStatusActive
}

// parseTimestamp parses a Calendly RFC 3339 timestamp, falling back to now
// for missing or malformed values.
func parseTimestamp(value string) time.Time {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC()
	}
	return time.Now().UTC()
}
