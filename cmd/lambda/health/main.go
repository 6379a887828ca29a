// Health Check Lambda entry point
package main

import (
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/NaimTheDev/connectly-app/internal/config"
	"github.com/NaimTheDev/connectly-app/internal/handlers"
	"github.com/NaimTheDev/connectly-app/internal/services/database"
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

	// The health endpoint still answers when the database is unreachable.
	var pinger handlers.Pinger
	if db, err := database.New(cfg); err == nil {
		pinger = db
	}

	handler := handlers.NewHealthHandler(pinger, cfg.ServiceVersion, cfg.Stage)

	// Start Lambda
	lambda.Start(handler.Handle)
}
