// Schedule Invitee Lambda entry point
package main

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/NaimTheDev/connectly-app/internal/config"
	"github.com/NaimTheDev/connectly-app/internal/handlers"
	"github.com/NaimTheDev/connectly-app/internal/services/calendly"
	"github.com/NaimTheDev/connectly-app/internal/services/database"
	"github.com/NaimTheDev/connectly-app/internal/services/ses"
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

	db, err := database.New(cfg)
	if err != nil {
		panic("Failed to connect to database: " + err.Error())
	}

	credRepo := database.NewCalendlyInfoRepository(db)
	userRepo := database.NewUserRepository(db)
	client := calendly.NewClient(cfg.CalendlyBaseURL)

	var notifier handlers.ConfirmationSender
	if cfg.SESSenderEmail != "" {
		sesSvc, err := ses.NewService(context.Background(), cfg)
		if err != nil {
			panic("Failed to create SES service: " + err.Error())
		}
		notifier = sesSvc
	}

	handler := handlers.NewScheduleInviteeHandler(credRepo, userRepo, client, notifier)

	// Start Lambda
	lambda.Start(handler.Handle)
}
