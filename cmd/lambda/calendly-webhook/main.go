// Calendly Webhook Lambda entry point
package main

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/NaimTheDev/connectly-app/internal/config"
	"github.com/NaimTheDev/connectly-app/internal/handlers"
	"github.com/NaimTheDev/connectly-app/internal/services/archive"
	"github.com/NaimTheDev/connectly-app/internal/services/calls"
	"github.com/NaimTheDev/connectly-app/internal/services/database"
	"github.com/NaimTheDev/connectly-app/internal/services/identity"
	"github.com/NaimTheDev/connectly-app/internal/services/users"
	"github.com/NaimTheDev/connectly-app/internal/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	// Initialize logger
	_ = utils.InitLogger(cfg.LogLevel)
	defer utils.Sync()

	ctx := context.Background()

	db, err := database.New(cfg)
	if err != nil {
		panic("Failed to connect to database: " + err.Error())
	}

	userRepo := database.NewUserRepository(db)
	callRepo := database.NewScheduledCallRepository(db)

	// Identity fallback is only wired when a user pool is configured.
	var provider users.IdentityProvider
	if cfg.CognitoUserPoolID != "" {
		idSvc, err := identity.NewService(ctx, cfg)
		if err != nil {
			panic("Failed to create identity service: " + err.Error())
		}
		provider = idSvc
	}

	lookup := users.NewLookup(userRepo, provider)
	callSvc := calls.NewService(callRepo, lookup)

	var archiver handlers.PayloadArchiver
	if cfg.ArchiveBucket != "" {
		archiveSvc, err := archive.NewService(ctx, cfg)
		if err != nil {
			panic("Failed to create archive service: " + err.Error())
		}
		archiver = archiveSvc
	}

	handler := handlers.NewCalendlyWebhookHandler(lookup, callSvc, archiver, cfg.WebhookSigningKey, cfg.VerifySignatures)

	// Start Lambda
	lambda.Start(handler.Handle)
}
