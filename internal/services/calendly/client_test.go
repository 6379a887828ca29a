package calendly

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NaimTheDev/connectly-app/internal/models"
)

func TestAvailabilityWindow_NoStartDate(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)

	start, end := AvailabilityWindow(now, "")

	// Midnight of today is already in the past, so the start is pushed to
	// now plus the lead time.
	assert.Equal(t, now.Add(2*time.Hour), start)
	assert.Equal(t, start.Add(7*24*time.Hour), end)
}

func TestAvailabilityWindow_FutureStartDate(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)

	start, end := AvailabilityWindow(now, "2026-09-10")

	assert.Equal(t, time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 9, 17, 0, 0, 0, 0, time.UTC), end)
}

func TestAvailabilityWindow_FutureRFC3339StartDate(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)

	start, _ := AvailabilityWindow(now, "2026-09-10T18:45:00Z")

	// Time-of-day is discarded; the window starts at UTC midnight.
	assert.Equal(t, time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC), start)
}

func TestAvailabilityWindow_PastStartDateClampedToLeadTime(t *testing.T) {
	now := time.Date(2026, 8, 31, 23, 30, 0, 0, time.UTC)

	start, end := AvailabilityWindow(now, "2026-08-31")

	assert.Equal(t, now.Add(2*time.Hour), start)
	assert.Equal(t, start.Add(7*24*time.Hour), end)
}

func TestAvailabilityWindow_MalformedStartDateIgnored(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)

	start, _ := AvailabilityWindow(now, "next tuesday")

	assert.Equal(t, now.Add(2*time.Hour), start)
}

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-09-10T00:00:00.000000Z", FormatTimestamp(ts))

	ts = time.Date(2026, 9, 10, 15, 4, 5, 123456000, time.FixedZone("EST", -5*3600))
	assert.Equal(t, "2026-09-10T20:04:05.123456Z", FormatTimestamp(ts))
}

func TestAvailableTimes(t *testing.T) {
	remaining := 3
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/event_type_available_times", r.URL.Path)
		assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))

		query := r.URL.Query()
		assert.Equal(t, "https://api.calendly.com/event_types/ET1", query.Get("event_type"))
		assert.Equal(t, "2026-09-10T00:00:00.000000Z", query.Get("start_time"))
		assert.Equal(t, "2026-09-17T00:00:00.000000Z", query.Get("end_time"))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"collection": []map[string]any{
				{
					"status":             "available",
					"invitees_remaining": remaining,
					"start_time":         "2026-09-10T15:00:00.000000Z",
					"scheduling_url":     "https://calendly.com/d/abc",
				},
				{
					"status":     "available",
					"start_time": "2026-09-10T15:30:00.000000Z",
				},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	start := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	end := start.Add(7 * 24 * time.Hour)

	result, err := client.AvailableTimes(context.Background(), "token-1", "https://api.calendly.com/event_types/ET1", start, end)

	require.NoError(t, err)
	require.Len(t, result.Slots, 2)
	assert.Equal(t, "available", result.Slots[0].Status)
	require.NotNil(t, result.Slots[0].InviteesRemaining)
	assert.Equal(t, 3, *result.Slots[0].InviteesRemaining)
	require.NotNil(t, result.Slots[0].SchedulingURL)
	assert.Equal(t, "https://calendly.com/d/abc", *result.Slots[0].SchedulingURL)
	assert.Nil(t, result.Slots[1].InviteesRemaining)
	assert.Nil(t, result.Slots[1].SchedulingURL)
	assert.NotEmpty(t, result.Raw)
}

func TestAvailableTimes_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"title":"Unauthenticated"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	_, err := client.AvailableTimes(context.Background(), "bad-token", "uri", time.Now(), time.Now())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.JSONEq(t, `{"title":"Unauthenticated"}`, string(apiErr.Body))
	assert.Equal(t, "Calendly API error: 401", apiErr.Error())
}

func TestCreateInvitee(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/invitees", r.URL.Path)
		assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req models.CalendlyInviteeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "https://api.calendly.com/event_types/ET1", req.EventType)
		assert.Equal(t, "ivy@example.com", req.Invitee.Email)

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"resource":{"uri":"https://api.calendly.com/invitees/INV1"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	resp, err := client.CreateInvitee(context.Background(), "token-1", &models.CalendlyInviteeRequest{
		EventType: "https://api.calendly.com/event_types/ET1",
		StartTime: "2026-09-10T15:00:00.000000Z",
		Invitee: models.CalendlyInviteeDetails{
			Name:     "Ivy Invitee",
			Email:    "ivy@example.com",
			Timezone: "UTC",
		},
		Location: models.CalendlyInviteeLocation{Kind: "zoom_conference", Connected: true},
	})

	require.NoError(t, err)
	assert.Equal(t, "https://api.calendly.com/invitees/INV1", resp.Resource["uri"])
}

func TestCreateInvitee_MissingResource(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	_, err := client.CreateInvitee(context.Background(), "token-1", &models.CalendlyInviteeRequest{})

	require.Error(t, err)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestNewClient_DefaultBaseURL(t *testing.T) {
	client := NewClient("")
	assert.Equal(t, DefaultBaseURL, client.baseURL)
}
