// Package users maps Calendly invitee emails to internal user IDs.
package users

import (
	"context"
	"errors"

	"github.com/NaimTheDev/connectly-app/internal/models"
	"github.com/NaimTheDev/connectly-app/internal/utils"
)

// UserFinder retrieves users from the primary store.
type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, userID string) (*models.User, error)
}

// IdentityProvider is the fallback lookup for users that exist only in the
// auth provider.
type IdentityProvider interface {
	LookupUserIDByEmail(ctx context.Context, email string) (string, error)
}

// Lookup resolves emails to user IDs, trying the primary store first and
// the identity provider second.
type Lookup struct {
	store    UserFinder
	identity IdentityProvider
}

// NewLookup creates a new lookup service. The identity provider may be nil,
// in which case only the primary store is consulted.
func NewLookup(store UserFinder, identity IdentityProvider) *Lookup {
	return &Lookup{store: store, identity: identity}
}

// GetUserIDByEmail returns the user ID for an email address. The email is
// normalized (lowercased, trimmed) before lookup. Returns
// models.ErrUserNotFound when neither the store nor the identity provider
// knows the email; any other error means a lookup backend failed.
func (l *Lookup) GetUserIDByEmail(ctx context.Context, email string) (string, error) {
	normalized := models.NormalizeEmail(email)

	user, err := l.store.FindByEmail(ctx, normalized)
	if err == nil {
		return user.ID, nil
	}
	if !errors.Is(err, models.ErrUserNotFound) {
		return "", err
	}

	if l.identity == nil {
		return "", models.ErrUserNotFound
	}

	userID, err := l.identity.LookupUserIDByEmail(ctx, normalized)
	if err != nil {
		return "", err
	}

	utils.GetLogger().Info("Resolved user via identity provider fallback",
		utils.String("email", normalized))

	return userID, nil
}

// FindByID returns the full user record for an ID.
func (l *Lookup) FindByID(ctx context.Context, userID string) (*models.User, error) {
	return l.store.FindByID(ctx, userID)
}

// ExtractMentorURI returns the Calendly user URI of the first event
// membership, or empty string when no memberships are present. Only the
// first listed host is treated as the mentor.
func ExtractMentorURI(memberships []models.CalendlyEventMembership) string {
	if len(memberships) == 0 {
		return ""
	}
	return memberships[0].User
}
