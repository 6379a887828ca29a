// Package calendly provides the outbound client for the Calendly API.
package calendly

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/NaimTheDev/connectly-app/internal/models"
)

const (
	// DefaultBaseURL is the production Calendly API endpoint.
	DefaultBaseURL = "https://api.calendly.com"

	// requestTimeout bounds every outbound call. There are no retries; a
	// failed call is a single terminal failure for the request.
	requestTimeout = 15 * time.Second

	// maxSlots caps how many availability items are mapped for clients.
	maxSlots = 1000

	// minLeadTime is how far in the future a bookable window may start.
	minLeadTime = 2 * time.Hour

	// windowLength is the length of the availability window.
	windowLength = 7 * 24 * time.Hour
)

// APIError is returned when Calendly responds with a non-2xx status.
type APIError struct {
	StatusCode int
	Body       json.RawMessage
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("Calendly API error: %d", e.StatusCode)
}

// Client calls the Calendly API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Calendly API client. An empty baseURL selects the
// production endpoint.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// AvailableTimesResult holds the mapped slots plus the raw response body for
// clients that want the untouched payload.
type AvailableTimesResult struct {
	Slots []models.AvailableTimeSlot
	Raw   json.RawMessage
}

// availableTimesResponse is the wire shape of the availability listing.
type availableTimesResponse struct {
	Collection []struct {
		Status            string  `json:"status"`
		InviteesRemaining *int    `json:"invitees_remaining"`
		StartTime         string  `json:"start_time"`
		SchedulingURL     *string `json:"scheduling_url"`
	} `json:"collection"`
}

// AvailableTimes lists bookable slots for an event type within the window.
func (c *Client) AvailableTimes(ctx context.Context, accessToken, eventTypeURI string, start, end time.Time) (*AvailableTimesResult, error) {
	params := url.Values{}
	params.Set("event_type", eventTypeURI)
	params.Set("start_time", FormatTimestamp(start))
	params.Set("end_time", FormatTimestamp(end))

	body, err := c.do(ctx, http.MethodGet, "/event_type_available_times?"+params.Encode(), accessToken, nil)
	if err != nil {
		return nil, err
	}

	var parsed availableTimesResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode availability response: %w", err)
	}

	collection := parsed.Collection
	if len(collection) > maxSlots {
		collection = collection[:maxSlots]
	}

	slots := make([]models.AvailableTimeSlot, 0, len(collection))
	for _, item := range collection {
		slots = append(slots, models.AvailableTimeSlot{
			Status:            item.Status,
			InviteesRemaining: item.InviteesRemaining,
			StartTime:         item.StartTime,
			SchedulingURL:     item.SchedulingURL,
		})
	}

	return &AvailableTimesResult{Slots: slots, Raw: body}, nil
}

// CreateInvitee books a new invitee via the Calendly API and returns the
// created resource.
func (c *Client) CreateInvitee(ctx context.Context, accessToken string, req *models.CalendlyInviteeRequest) (*models.CalendlyInviteeResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal invitee request: %w", err)
	}

	body, err := c.do(ctx, http.MethodPost, "/invitees", accessToken, payload)
	if err != nil {
		return nil, err
	}

	var resp models.CalendlyInviteeResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode invitee response: %w", err)
	}
	if resp.Resource == nil {
		return nil, fmt.Errorf("invitee response missing resource field")
	}

	return &resp, nil
}

// do performs an authenticated request and returns the response body.
// Non-2xx responses become *APIError.
func (c *Client) do(ctx context.Context, method, path, accessToken string, payload []byte) (json.RawMessage, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: body}
	}

	return body, nil
}

// AvailabilityWindow computes the 7-day UTC booking window. The window
// starts at UTC midnight of the requested date (or of now when no date is
// given), pushed forward to now+2h when midnight is already too close.
func AvailabilityWindow(now time.Time, startDate string) (time.Time, time.Time) {
	base := now
	if startDate != "" {
		if parsed, err := time.Parse(time.RFC3339, startDate); err == nil {
			base = parsed
		} else if parsed, err := time.Parse("2006-01-02", startDate); err == nil {
			base = parsed
		}
	}

	base = base.UTC()
	start := time.Date(base.Year(), base.Month(), base.Day(), 0, 0, 0, 0, time.UTC)

	minStart := now.UTC().Add(minLeadTime)
	if start.Before(minStart) {
		start = minStart
	}

	return start, start.Add(windowLength)
}

// FormatTimestamp renders a timestamp the way the availability endpoint
// expects: ISO-8601 UTC with microsecond precision.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000000Z")
}
