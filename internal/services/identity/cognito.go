// Package identity provides the identity-provider fallback for user lookups.
package identity

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"

	appConfig "github.com/NaimTheDev/connectly-app/internal/config"
	"github.com/NaimTheDev/connectly-app/internal/models"
)

// Service looks up users in the Cognito user pool. It backs the fallback
// path for invitee emails that have no row in the users table yet.
type Service struct {
	client     *cognitoidentityprovider.Client
	userPoolID string
}

// NewService creates a new identity service.
func NewService(ctx context.Context, appCfg *appConfig.Config) (*Service, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &Service{
		client:     cognitoidentityprovider.NewFromConfig(cfg),
		userPoolID: appCfg.CognitoUserPoolID,
	}, nil
}

// LookupUserIDByEmail finds a user pool account by email and returns its
// username (the auth uid). Returns models.ErrUserNotFound when no account
// matches.
func (s *Service) LookupUserIDByEmail(ctx context.Context, email string) (string, error) {
	if s.userPoolID == "" {
		return "", models.ErrUserNotFound
	}

	out, err := s.client.ListUsers(ctx, &cognitoidentityprovider.ListUsersInput{
		UserPoolId: aws.String(s.userPoolID),
		Filter:     aws.String(fmt.Sprintf("email = %q", email)),
		Limit:      aws.Int32(1),
	})
	if err != nil {
		return "", fmt.Errorf("failed to list users: %w", err)
	}

	if len(out.Users) == 0 || out.Users[0].Username == nil {
		return "", models.ErrUserNotFound
	}

	return *out.Users[0].Username, nil
}
