// Package handlers provides Lambda request handlers for the Connectly Calendly bridge.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"

	"github.com/NaimTheDev/connectly-app/internal/models"
	"github.com/NaimTheDev/connectly-app/internal/services/calendly"
	"github.com/NaimTheDev/connectly-app/internal/utils"
)

// CredentialStore retrieves a mentor's stored Calendly credentials.
type CredentialStore interface {
	GetByMentorID(ctx context.Context, mentorID string) (*models.CalendlyInfo, error)
}

// AvailabilityClient lists bookable timeslots from the Calendly API.
type AvailabilityClient interface {
	AvailableTimes(ctx context.Context, accessToken, eventTypeURI string, start, end time.Time) (*calendly.AvailableTimesResult, error)
}

// AvailableTimesHandler serves the availableTimes callable.
type AvailableTimesHandler struct {
	creds  CredentialStore
	client AvailabilityClient
	now    func() time.Time
}

// NewAvailableTimesHandler creates a new availability handler.
func NewAvailableTimesHandler(creds CredentialStore, client AvailabilityClient) *AvailableTimesHandler {
	return &AvailableTimesHandler{
		creds:  creds,
		client: client,
		now:    time.Now,
	}
}

// AvailableTimesRequest is the callable input.
type AvailableTimesRequest struct {
	MentorID  string `json:"mentorId"`
	StartDate string `json:"startDate,omitempty"`
}

// AvailableTimesResponse is the callable output.
type AvailableTimesResponse struct {
	Message            string                     `json:"message"`
	AvailableTimeSlots []models.AvailableTimeSlot `json:"availableTimeSlots"`
	Raw                json.RawMessage            `json:"raw"`
}

// Handle processes an availableTimes request. Failures are returned as a
// structured {error} body rather than an error status; callers check for
// the error field.
func (h *AvailableTimesHandler) Handle(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	logger := utils.GetLogger()
	headers := defaultHeaders("POST,OPTIONS")

	// Handle CORS preflight
	if request.HTTPMethod == "OPTIONS" {
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusOK,
			Headers:    headers,
		}, nil
	}

	var req AvailableTimesRequest
	if err := json.Unmarshal([]byte(request.Body), &req); err != nil {
		return errorResponse(headers, http.StatusBadRequest, "Invalid JSON in request body")
	}

	if req.MentorID == "" {
		return jsonResponse(headers, http.StatusOK, map[string]string{"error": "mentorId is required"})
	}

	info, err := h.creds.GetByMentorID(ctx, req.MentorID)
	if err != nil {
		if errors.Is(err, models.ErrCalendlyInfoNotFound) {
			return jsonResponse(headers, http.StatusOK, map[string]string{
				"error": "No calendlyInfo document found for mentorId: " + req.MentorID,
			})
		}
		logger.Error("Failed to load calendly info",
			utils.String("mentorId", req.MentorID),
			utils.Error(err))
		return jsonResponse(headers, http.StatusOK, map[string]string{
			"error": "Internal error fetching available times",
		})
	}

	if info.AccessToken == "" || info.EventTypeURI == "" {
		return jsonResponse(headers, http.StatusOK, map[string]string{
			"error": "Missing access_token or event_type_uri in calendlyInfo",
		})
	}

	start, end := calendly.AvailabilityWindow(h.now(), req.StartDate)

	logger.Info("Fetching Calendly available times",
		utils.String("mentorId", req.MentorID),
		utils.String("startTime", calendly.FormatTimestamp(start)),
		utils.String("endTime", calendly.FormatTimestamp(end)))

	result, err := h.client.AvailableTimes(ctx, info.AccessToken, info.EventTypeURI, start, end)
	if err != nil {
		var apiErr *calendly.APIError
		if errors.As(err, &apiErr) {
			logger.Error("Calendly API returned non-OK",
				utils.Int("status", apiErr.StatusCode))
			return jsonResponse(headers, http.StatusOK, map[string]interface{}{
				"error":   apiErr.Error(),
				"details": apiErr.Body,
			})
		}
		logger.Error("Error fetching available times", utils.Error(err))
		return jsonResponse(headers, http.StatusOK, map[string]string{
			"error": "Internal error fetching available times",
		})
	}

	logger.Info("Fetched available time slots",
		utils.String("mentorId", req.MentorID),
		utils.Int("count", len(result.Slots)))

	return jsonResponse(headers, http.StatusOK, AvailableTimesResponse{
		Message:            "Available times for mentorId: " + req.MentorID,
		AvailableTimeSlots: result.Slots,
		Raw:                result.Raw,
	})
}
