package users

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NaimTheDev/connectly-app/internal/models"
)

type fakeStore struct {
	usersByEmail map[string]*models.User
	usersByID    map[string]*models.User
	findErr      error
	lastEmail    string
}

func (f *fakeStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	f.lastEmail = email
	if f.findErr != nil {
		return nil, f.findErr
	}
	if user, ok := f.usersByEmail[email]; ok {
		return user, nil
	}
	return nil, models.ErrUserNotFound
}

func (f *fakeStore) FindByID(ctx context.Context, userID string) (*models.User, error) {
	if user, ok := f.usersByID[userID]; ok {
		return user, nil
	}
	return nil, models.ErrUserNotFound
}

type fakeIdentity struct {
	idsByEmail map[string]string
	err        error
	called     bool
}

func (f *fakeIdentity) LookupUserIDByEmail(ctx context.Context, email string) (string, error) {
	f.called = true
	if f.err != nil {
		return "", f.err
	}
	if id, ok := f.idsByEmail[email]; ok {
		return id, nil
	}
	return "", models.ErrUserNotFound
}

func TestLookup_GetUserIDByEmail_StoreHit(t *testing.T) {
	store := &fakeStore{usersByEmail: map[string]*models.User{
		"jane@example.com": {ID: "user-1", Email: "jane@example.com"},
	}}
	identity := &fakeIdentity{}
	lookup := NewLookup(store, identity)

	userID, err := lookup.GetUserIDByEmail(context.Background(), "jane@example.com")

	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.False(t, identity.called, "identity provider should not be consulted on a store hit")
}

func TestLookup_GetUserIDByEmail_NormalizesEmail(t *testing.T) {
	store := &fakeStore{usersByEmail: map[string]*models.User{
		"jane@example.com": {ID: "user-1"},
	}}
	lookup := NewLookup(store, nil)

	userID, err := lookup.GetUserIDByEmail(context.Background(), "  Jane@Example.COM ")

	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, "jane@example.com", store.lastEmail)
}

func TestLookup_GetUserIDByEmail_IdentityFallback(t *testing.T) {
	store := &fakeStore{}
	identity := &fakeIdentity{idsByEmail: map[string]string{
		"jane@example.com": "cognito-user-1",
	}}
	lookup := NewLookup(store, identity)

	userID, err := lookup.GetUserIDByEmail(context.Background(), "jane@example.com")

	require.NoError(t, err)
	assert.Equal(t, "cognito-user-1", userID)
	assert.True(t, identity.called)
}

func TestLookup_GetUserIDByEmail_NotFoundAnywhere(t *testing.T) {
	lookup := NewLookup(&fakeStore{}, &fakeIdentity{})

	_, err := lookup.GetUserIDByEmail(context.Background(), "nobody@example.com")

	assert.ErrorIs(t, err, models.ErrUserNotFound)
}

func TestLookup_GetUserIDByEmail_NilIdentityProvider(t *testing.T) {
	lookup := NewLookup(&fakeStore{}, nil)

	_, err := lookup.GetUserIDByEmail(context.Background(), "nobody@example.com")

	assert.ErrorIs(t, err, models.ErrUserNotFound)
}

func TestLookup_GetUserIDByEmail_StoreErrorPropagates(t *testing.T) {
	backendErr := errors.New("connection refused")
	store := &fakeStore{findErr: backendErr}
	identity := &fakeIdentity{idsByEmail: map[string]string{
		"jane@example.com": "cognito-user-1",
	}}
	lookup := NewLookup(store, identity)

	_, err := lookup.GetUserIDByEmail(context.Background(), "jane@example.com")

	assert.ErrorIs(t, err, backendErr)
	assert.False(t, identity.called, "backend errors must not trigger the fallback")
}

func TestLookup_FindByID(t *testing.T) {
	store := &fakeStore{usersByID: map[string]*models.User{
		"user-1": {ID: "user-1", Name: "Jane Mentor"},
	}}
	lookup := NewLookup(store, nil)

	user, err := lookup.FindByID(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Equal(t, "Jane Mentor", user.Name)

	_, err = lookup.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, models.ErrUserNotFound)
}

func TestExtractMentorURI(t *testing.T) {
	assert.Equal(t, "", ExtractMentorURI(nil))
	assert.Equal(t, "", ExtractMentorURI([]models.CalendlyEventMembership{}))
	assert.Equal(t, "https://api.calendly.com/users/AAAA", ExtractMentorURI([]models.CalendlyEventMembership{
		{User: "https://api.calendly.com/users/AAAA"},
		{User: "https://api.calendly.com/users/BBBB"},
	}))
}
