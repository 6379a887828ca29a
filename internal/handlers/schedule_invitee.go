// Package handlers provides Lambda request handlers for the Connectly Calendly bridge.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/aws/aws-lambda-go/events"
	"golang.org/x/sync/errgroup"

	"github.com/NaimTheDev/connectly-app/internal/models"
	"github.com/NaimTheDev/connectly-app/internal/services/calendly"
	"github.com/NaimTheDev/connectly-app/internal/services/ses"
	"github.com/NaimTheDev/connectly-app/internal/utils"
)

// UserFinder retrieves a user profile by ID.
type UserFinder interface {
	FindByID(ctx context.Context, userID string) (*models.User, error)
}

// BookingClient creates bookings via the Calendly API.
type BookingClient interface {
	CreateInvitee(ctx context.Context, accessToken string, req *models.CalendlyInviteeRequest) (*models.CalendlyInviteeResponse, error)
}

// ConfirmationSender emails the invitee after a successful booking.
type ConfirmationSender interface {
	SendBookingConfirmation(ctx context.Context, params ses.BookingConfirmationParams) error
}

// ScheduleInviteeHandler serves the scheduleCalendlyInvitee callable.
type ScheduleInviteeHandler struct {
	creds    CredentialStore
	users    UserFinder
	client   BookingClient
	notifier ConfirmationSender
}

// NewScheduleInviteeHandler creates a new booking handler. The notifier may
// be nil when confirmation emails are not configured.
func NewScheduleInviteeHandler(creds CredentialStore, users UserFinder, client BookingClient, notifier ConfirmationSender) *ScheduleInviteeHandler {
	return &ScheduleInviteeHandler{
		creds:    creds,
		users:    users,
		client:   client,
		notifier: notifier,
	}
}

// ScheduleInviteeRequest is the callable input.
type ScheduleInviteeRequest struct {
	MentorID  string `json:"mentorId"`
	UserID    string `json:"userId"`
	StartTime string `json:"startTime"`
}

// ScheduleInviteeResponse is the callable output on success.
type ScheduleInviteeResponse struct {
	Message  string         `json:"message"`
	Resource map[string]any `json:"resource"`
}

// Handle processes a scheduleCalendlyInvitee request. Business failures are
// returned as a structured {error} body with a 200 status, matching the
// callable contract.
func (h *ScheduleInviteeHandler) Handle(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	logger := utils.GetLogger()
	headers := defaultHeaders("POST,OPTIONS")

	// Handle CORS preflight
	if request.HTTPMethod == "OPTIONS" {
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusOK,
			Headers:    headers,
		}, nil
	}

	var req ScheduleInviteeRequest
	if err := json.Unmarshal([]byte(request.Body), &req); err != nil {
		return errorResponse(headers, http.StatusBadRequest, "Invalid JSON in request body")
	}

	if req.MentorID == "" {
		return jsonResponse(headers, http.StatusOK, map[string]string{"error": "mentorId is required"})
	}
	if req.UserID == "" {
		return jsonResponse(headers, http.StatusOK, map[string]string{"error": "userId is required"})
	}
	if req.StartTime == "" {
		return jsonResponse(headers, http.StatusOK, map[string]string{"error": "startTime is required"})
	}

	// Load mentor credentials and the user profile concurrently. The two
	// fetches are independent.
	var (
		info *models.CalendlyInfo
		user *models.User
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		info, err = h.creds.GetByMentorID(gctx, req.MentorID)
		return err
	})
	g.Go(func() error {
		var err error
		user, err = h.users.FindByID(gctx, req.UserID)
		return err
	})

	if err := g.Wait(); err != nil {
		if errors.Is(err, models.ErrCalendlyInfoNotFound) {
			return jsonResponse(headers, http.StatusOK, map[string]string{
				"error": "No calendlyInfo found for mentorId: " + req.MentorID,
			})
		}
		if errors.Is(err, models.ErrUserNotFound) {
			return jsonResponse(headers, http.StatusOK, map[string]string{
				"error": "No user found for userId: " + req.UserID,
			})
		}
		logger.Error("Error loading booking prerequisites",
			utils.String("mentorId", req.MentorID),
			utils.String("userId", req.UserID),
			utils.Error(err))
		return jsonResponse(headers, http.StatusOK, map[string]string{
			"error": "Failed to schedule Calendly invitee",
		})
	}

	if info.AccessToken == "" || info.EventTypeURI == "" {
		return jsonResponse(headers, http.StatusOK, map[string]string{
			"error": "Missing access_token or event_type_uri in calendlyInfo",
		})
	}

	if user.Email == "" {
		return jsonResponse(headers, http.StatusOK, map[string]string{
			"error": "User " + req.UserID + " does not have an email on file",
		})
	}

	inviteeReq := &models.CalendlyInviteeRequest{
		EventType: info.EventTypeURI,
		StartTime: req.StartTime,
		Invitee: models.CalendlyInviteeDetails{
			Name:      user.DisplayName(),
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Email:     user.Email,
			Timezone:  user.TimezoneOrDefault(),
		},
		Location: models.CalendlyInviteeLocation{
			Kind:      "zoom_conference",
			Connected: true,
		},
	}

	logger.Info("Scheduling Calendly invitee",
		utils.String("mentorId", req.MentorID),
		utils.String("userId", req.UserID),
		utils.String("startTime", req.StartTime))

	resp, err := h.client.CreateInvitee(ctx, info.AccessToken, inviteeReq)
	if err != nil {
		var apiErr *calendly.APIError
		if errors.As(err, &apiErr) {
			logger.Error("Calendly invitee API returned non-OK",
				utils.Int("status", apiErr.StatusCode))
			return jsonResponse(headers, http.StatusOK, map[string]interface{}{
				"error":   "Calendly invitee API error: " + strconv.Itoa(apiErr.StatusCode),
				"details": apiErr.Body,
			})
		}
		logger.Error("Error scheduling Calendly invitee", utils.Error(err))
		return jsonResponse(headers, http.StatusOK, map[string]string{
			"error": "Failed to schedule Calendly invitee",
		})
	}

	logger.Info("Calendly invitee scheduled successfully",
		utils.String("mentorId", req.MentorID),
		utils.String("userId", req.UserID))

	// Confirmation email is best-effort; the booking already exists.
	if h.notifier != nil {
		if sendErr := h.notifier.SendBookingConfirmation(ctx, ses.BookingConfirmationParams{
			To:        user.Email,
			UserName:  user.DisplayName(),
			StartTime: req.StartTime,
			Timezone:  user.TimezoneOrDefault(),
		}); sendErr != nil {
			logger.Warn("Failed to send booking confirmation",
				utils.String("userId", req.UserID),
				utils.Error(sendErr))
		}
	}

	return jsonResponse(headers, http.StatusOK, ScheduleInviteeResponse{
		Message:  "Invitee scheduled successfully",
		Resource: resp.Resource,
	})
}
