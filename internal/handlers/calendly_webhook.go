// Package handlers provides Lambda request handlers for the Connectly Calendly bridge.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"

	"github.com/NaimTheDev/connectly-app/internal/models"
	"github.com/NaimTheDev/connectly-app/internal/utils"
)

// UserLookup resolves invitee emails to internal user IDs.
type UserLookup interface {
	GetUserIDByEmail(ctx context.Context, email string) (string, error)
}

// CallService creates and cancels scheduled call records.
type CallService interface {
	Exists(ctx context.Context, userID, eventURI string) (bool, error)
	HandleInviteeCreated(ctx context.Context, userID string, payload *models.CalendlyWebhookPayload, eventType models.CalendlyEventType) (int64, error)
	HandleInviteeCanceled(ctx context.Context, userID string, payload *models.CalendlyWebhookPayload) (bool, error)
}

// PayloadArchiver stores raw webhook bodies for audit.
type PayloadArchiver interface {
	StoreWebhookPayload(ctx context.Context, correlationID string, body []byte) error
}

// CalendlyWebhookHandler processes Calendly invitee webhook events.
type CalendlyWebhookHandler struct {
	users   UserLookup
	calls   CallService
	archive PayloadArchiver

	signingKey       string
	verifySignatures bool
}

// NewCalendlyWebhookHandler creates a new webhook handler. The archiver may
// be nil when payload archival is not configured.
func NewCalendlyWebhookHandler(users UserLookup, calls CallService, archive PayloadArchiver, signingKey string, verifySignatures bool) *CalendlyWebhookHandler {
	return &CalendlyWebhookHandler{
		users:            users,
		calls:            calls,
		archive:          archive,
		signingKey:       signingKey,
		verifySignatures: verifySignatures,
	}
}

// WebhookResponse is the body returned for handled webhook deliveries.
type WebhookResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message,omitempty"`
	DocumentID    string `json:"documentId,omitempty"`
	CorrelationID string `json:"correlationId"`
}

// processResult is the outcome of dispatching a webhook event.
type processResult struct {
	success    bool
	reason     string
	documentID string
}

// webhookEnvelope probes the request body for the wrapped webhook format.
// The bare payload format has no "payload" key, so its presence is what
// distinguishes the two.
type webhookEnvelope struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// Handle processes a Calendly webhook delivery. Business-rule failures are
// returned as 200 with success:false so Calendly does not retry them; 4xx is
// reserved for malformed requests and 500 for unexpected failures.
func (h *CalendlyWebhookHandler) Handle(ctx context.Context, request events.APIGatewayProxyRequest) (resp events.APIGatewayProxyResponse, err error) {
	logger := utils.GetLogger()
	correlationID := uuid.New().String()
	headers := defaultHeaders("POST,OPTIONS")

	defer func() {
		if r := recover(); r != nil {
			logger.Error("Unexpected error processing webhook",
				utils.String("correlationId", correlationID),
				utils.Any("panic", r))
			resp, err = jsonResponse(headers, http.StatusInternalServerError, map[string]string{
				"error":         "Internal server error",
				"correlationId": correlationID,
			})
		}
	}()

	logger.Info("Calendly webhook received",
		utils.String("correlationId", correlationID),
		utils.String("method", request.HTTPMethod))

	// Only accept POST requests
	if request.HTTPMethod != http.MethodPost {
		logger.Warn("Invalid HTTP method",
			utils.String("correlationId", correlationID),
			utils.String("method", request.HTTPMethod))
		return errorResponse(headers, http.StatusMethodNotAllowed, "Method not allowed")
	}

	body := []byte(request.Body)

	// Signature verification is present but disabled by default.
	if h.verifySignatures {
		signature := ExtractSignature(request.Headers)
		if !ValidateSignature(body, signature, h.signingKey) {
			logger.Warn("Invalid webhook signature",
				utils.String("correlationId", correlationID))
			return errorResponse(headers, http.StatusUnauthorized, "Invalid signature")
		}
	} else {
		logger.Info("Skipping webhook signature validation",
			utils.String("correlationId", correlationID))
	}

	// Archive the raw body; a failed archive never affects the response.
	if h.archive != nil {
		if archiveErr := h.archive.StoreWebhookPayload(ctx, correlationID, body); archiveErr != nil {
			logger.Warn("Failed to archive webhook payload",
				utils.String("correlationId", correlationID),
				utils.Error(archiveErr))
		}
	}

	rawPayload, eventType, parseErr := unwrapWebhookBody(body)
	if parseErr != nil {
		logger.Error("Failed to parse webhook payload",
			utils.String("correlationId", correlationID),
			utils.Error(parseErr))
		return errorResponse(headers, http.StatusBadRequest, "Invalid JSON payload")
	}

	if !ValidatePayloadShape(rawPayload) {
		logger.Warn("Invalid webhook payload structure",
			utils.String("correlationId", correlationID))
		return errorResponse(headers, http.StatusBadRequest, "Invalid payload structure")
	}

	var payload models.CalendlyWebhookPayload
	if err := json.Unmarshal(rawPayload, &payload); err != nil {
		logger.Error("Failed to decode webhook payload",
			utils.String("correlationId", correlationID),
			utils.Error(err))
		return errorResponse(headers, http.StatusBadRequest, "Invalid payload structure")
	}

	logger.Info("Processing Calendly webhook event",
		utils.String("correlationId", correlationID),
		utils.String("eventType", string(eventType)),
		utils.String("inviteeEmail", payload.Email))

	result := h.processWebhookEvent(ctx, &payload, eventType, correlationID)

	if result.success {
		logger.Info("Webhook processed successfully",
			utils.String("correlationId", correlationID),
			utils.String("eventType", string(eventType)),
			utils.String("documentId", result.documentID))
		return jsonResponse(headers, http.StatusOK, WebhookResponse{
			Success:       true,
			Message:       "Webhook processed successfully",
			DocumentID:    result.documentID,
			CorrelationID: correlationID,
		})
	}

	logger.Warn("Webhook processing failed",
		utils.String("correlationId", correlationID),
		utils.String("eventType", string(eventType)),
		utils.String("reason", result.reason))
	return jsonResponse(headers, http.StatusOK, WebhookResponse{
		Success:       false,
		Message:       result.reason,
		CorrelationID: correlationID,
	})
}

// unwrapWebhookBody parses the request body and detects the envelope shape.
// Wrapped deliveries carry {event, payload}; bare payloads infer the event
// type from their status field.
func unwrapWebhookBody(body []byte) (json.RawMessage, models.CalendlyEventType, error) {
	var envelope webhookEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, "", err
	}

	if envelope.Event != "" && len(envelope.Payload) > 0 {
		return envelope.Payload, models.CalendlyEventType(envelope.Event), nil
	}

	var bare struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(body, &bare); err != nil {
		return nil, "", err
	}

	eventType := models.EventTypeInviteeCreated
	if bare.Status == "canceled" {
		eventType = models.EventTypeInviteeCanceled
	}

	return json.RawMessage(body), eventType, nil
}

// processWebhookEvent dispatches on the event type.
func (h *CalendlyWebhookHandler) processWebhookEvent(ctx context.Context, payload *models.CalendlyWebhookPayload, eventType models.CalendlyEventType, correlationID string) processResult {
	logger := utils.GetLogger()

	// Validate email format
	if !models.IsValidEmail(payload.Email) {
		return processResult{reason: "Invalid email format"}
	}

	// Find the user by email
	userID, err := h.users.GetUserIDByEmail(ctx, payload.Email)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			logger.Info("User not found for email, skipping webhook",
				utils.String("correlationId", correlationID),
				utils.String("email", payload.Email))
		} else {
			// A backend failure is logged distinctly but still soft-fails
			// the delivery so Calendly does not retry into an outage.
			logger.Error("User lookup failed",
				utils.String("correlationId", correlationID),
				utils.String("email", payload.Email),
				utils.Error(err))
		}
		return processResult{reason: "User not found"}
	}

	switch eventType {
	case models.EventTypeInviteeCreated:
		return h.handleInviteeCreatedEvent(ctx, userID, payload, eventType, correlationID)

	case models.EventTypeInviteeCanceled:
		return h.handleInviteeCanceledEvent(ctx, userID, payload, correlationID)

	case models.EventTypeInviteeRescheduled,
		models.EventTypeInviteePaymentCreated,
		models.EventTypeInviteeNoShowCreated,
		models.EventTypeInviteeNoShowDeleted:
		fallthrough
	default:
		logger.Info("Unsupported event type, ignoring",
			utils.String("correlationId", correlationID),
			utils.String("eventType", string(eventType)))
		return processResult{reason: "Unsupported event type"}
	}
}

// handleInviteeCreatedEvent creates the call record unless one already
// exists for this event URI.
func (h *CalendlyWebhookHandler) handleInviteeCreatedEvent(ctx context.Context, userID string, payload *models.CalendlyWebhookPayload, eventType models.CalendlyEventType, correlationID string) processResult {
	logger := utils.GetLogger()
	eventURI := payload.ScheduledEvent.URI

	// Check if this call already exists to prevent duplicates. A failed
	// check is treated as not-exists; creation is the safer default.
	exists, err := h.calls.Exists(ctx, userID, eventURI)
	if err != nil {
		logger.Error("Duplicate check failed",
			utils.String("correlationId", correlationID),
			utils.String("userId", userID),
			utils.Error(err))
	}
	if exists {
		logger.Info("Scheduled call already exists, skipping creation",
			utils.String("correlationId", correlationID),
			utils.String("userId", userID),
			utils.String("calendlyEventUri", eventURI))
		return processResult{reason: "Call already exists"}
	}

	recordID, err := h.calls.HandleInviteeCreated(ctx, userID, payload, eventType)
	if err != nil {
		logger.Error("Error handling invitee.created event",
			utils.String("correlationId", correlationID),
			utils.String("userId", userID),
			utils.Error(err))
		return processResult{reason: "Failed to create scheduled call"}
	}

	return processResult{success: true, documentID: strconv.FormatInt(recordID, 10)}
}

// handleInviteeCanceledEvent patches the call record for the event URI.
func (h *CalendlyWebhookHandler) handleInviteeCanceledEvent(ctx context.Context, userID string, payload *models.CalendlyWebhookPayload, correlationID string) processResult {
	logger := utils.GetLogger()

	updated, err := h.calls.HandleInviteeCanceled(ctx, userID, payload)
	if err != nil {
		logger.Error("Error handling invitee.canceled event",
			utils.String("correlationId", correlationID),
			utils.String("userId", userID),
			utils.Error(err))
		return processResult{reason: "Failed to cancel scheduled call"}
	}
	if !updated {
		return processResult{reason: "Failed to update scheduled call"}
	}

	return processResult{success: true}
}
