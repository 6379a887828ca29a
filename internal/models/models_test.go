package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email    string
		expected bool
	}{
		{"a@b.com", true},
		{"test@example.com", true},
		{"first.last@sub.domain.org", true},
		{"not-an-email", false},
		{"", false},
		{"a@b", false},
		{"@b.com", false},
		{"a@.com", false},
		{"a@b.", false},
		{"a@", false},
		{"a b@c.com", false},
		{"a@b@c.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsValidEmail(tt.email))
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "a@b.com", NormalizeEmail("  A@B.Com "))
	assert.Equal(t, "user@example.com", NormalizeEmail("USER@EXAMPLE.COM"))
}

func TestCallStatus_IsValid(t *testing.T) {
	tests := []struct {
		status   CallStatus
		expected bool
	}{
		{CallStatusActive, true},
		{CallStatusCanceled, true},
		{CallStatusRescheduled, true},
		{CallStatus("invalid"), false},
		{CallStatus(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.status.IsValid())
		})
	}
}

func TestCalendlyEventType_IsValid(t *testing.T) {
	assert.True(t, EventTypeInviteeCreated.IsValid())
	assert.True(t, EventTypeInviteeCanceled.IsValid())
	assert.True(t, EventTypeInviteeRescheduled.IsValid())
	assert.True(t, EventTypeInviteeNoShowCreated.IsValid())
	assert.False(t, CalendlyEventType("invitee.unknown").IsValid())
}

func TestUser_DisplayName(t *testing.T) {
	tests := []struct {
		name     string
		user     User
		expected string
	}{
		{"full name wins", User{Name: "Jane Mentor", FirstName: "Jane", Email: "j@m.com"}, "Jane Mentor"},
		{"first and last", User{FirstName: "Jane", LastName: "Mentor", Email: "j@m.com"}, "Jane Mentor"},
		{"first only", User{FirstName: "Jane", Email: "j@m.com"}, "Jane"},
		{"email fallback", User{Email: "j@m.com"}, "j@m.com"},
		{"blank name ignored", User{Name: "  ", FirstName: "Jane", Email: "j@m.com"}, "Jane"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.user.DisplayName())
		})
	}
}

func TestUser_TimezoneOrDefault(t *testing.T) {
	assert.Equal(t, "America/Chicago", (&User{Timezone: "America/Chicago"}).TimezoneOrDefault())
	assert.Equal(t, "UTC", (&User{}).TimezoneOrDefault())
	assert.Equal(t, "UTC", (&User{Timezone: "  "}).TimezoneOrDefault())
}
