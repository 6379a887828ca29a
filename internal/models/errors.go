// Package models defines the data structures for the Connectly Calendly bridge.
package models

import (
	"errors"
	"strings"
)

// Common errors
var (
	ErrUserNotFound          = errors.New("user not found")
	ErrCalendlyInfoNotFound  = errors.New("calendly info not found")
	ErrMissingScheduledEvent = errors.New("missing scheduled_event in webhook payload")
)

// IsValidEmail performs a cheap local@domain.tld shape check. This is a
// heuristic gate, not RFC validation.
func IsValidEmail(email string) bool {
	if email == "" || strings.ContainsAny(email, " \t\n") {
		return false
	}

	atIndex := strings.Index(email, "@")
	if atIndex <= 0 || atIndex == len(email)-1 {
		return false
	}
	if strings.Contains(email[atIndex+1:], "@") {
		return false
	}

	// Must have a dot after @, with content on both sides
	dotIndex := strings.LastIndex(email, ".")
	if dotIndex <= atIndex+1 || dotIndex == len(email)-1 {
		return false
	}

	return true
}
