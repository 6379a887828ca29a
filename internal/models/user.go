// Package models defines the data structures for the Connectly Calendly bridge.
package models

import (
	"strings"
	"time"
)

// User represents a user in the system. The ID is the auth provider's uid;
// email is the join key between Calendly invitees and internal users.
type User struct {
	ID        string    `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Name      string    `json:"name,omitempty" db:"name"`
	FirstName string    `json:"first_name,omitempty" db:"first_name"`
	LastName  string    `json:"last_name,omitempty" db:"last_name"`
	Timezone  string    `json:"timezone,omitempty" db:"timezone"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// DisplayName returns the user's display name, falling back to first/last
// name and then to the email address.
func (u *User) DisplayName() string {
	if strings.TrimSpace(u.Name) != "" {
		return u.Name
	}

	parts := make([]string, 0, 2)
	if strings.TrimSpace(u.FirstName) != "" {
		parts = append(parts, u.FirstName)
	}
	if strings.TrimSpace(u.LastName) != "" {
		parts = append(parts, u.LastName)
	}
	if len(parts) > 0 {
		return strings.Join(parts, " ")
	}

	return u.Email
}

// TimezoneOrDefault returns the user's timezone, defaulting to UTC.
func (u *User) TimezoneOrDefault() string {
	if strings.TrimSpace(u.Timezone) != "" {
		return u.Timezone
	}
	return "UTC"
}

// NormalizeEmail lowercases and trims an email address before lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
