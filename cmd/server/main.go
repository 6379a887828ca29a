// Package main provides a local HTTP server for development and testing.
// It exposes the same endpoints as the deployed Lambda functions so the
// frontend and webhook deliveries can be exercised without AWS.
package main

import (
	"context"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/rs/cors"

	"github.com/NaimTheDev/connectly-app/internal/config"
	"github.com/NaimTheDev/connectly-app/internal/handlers"
	"github.com/NaimTheDev/connectly-app/internal/services/calendly"
	"github.com/NaimTheDev/connectly-app/internal/services/calls"
	"github.com/NaimTheDev/connectly-app/internal/services/database"
	"github.com/NaimTheDev/connectly-app/internal/services/users"
	"github.com/NaimTheDev/connectly-app/internal/utils"
)

// proxyHandler is the Lambda handler signature shared by all endpoints.
type proxyHandler func(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

// adapt converts a Lambda proxy handler into a net/http handler.
func adapt(handler proxyHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "failed to read request body", http.StatusBadRequest)
			return
		}

		headers := make(map[string]string, len(r.Header))
		for name := range r.Header {
			headers[name] = r.Header.Get(name)
		}

		resp, err := handler(r.Context(), events.APIGatewayProxyRequest{
			HTTPMethod: r.Method,
			Path:       r.URL.Path,
			Headers:    headers,
			Body:       string(body),
		})
		if err != nil {
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		for name, value := range resp.Headers {
			w.Header().Set(name, value)
		}
		w.WriteHeader(resp.StatusCode)
		_, _ = w.Write([]byte(resp.Body))
	}
}

func main() {
	// Initialize logger first
	if err := utils.InitLogger("info"); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer utils.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Printf("Warning: Could not connect to database: %v", err)
		log.Println("Server will run without database; webhook and booking endpoints will fail")
	}

	var (
		webhookHandler  *handlers.CalendlyWebhookHandler
		timesHandler    *handlers.AvailableTimesHandler
		scheduleHandler *handlers.ScheduleInviteeHandler
		pinger          handlers.Pinger
	)

	if db != nil {
		pinger = db

		userRepo := database.NewUserRepository(db)
		callRepo := database.NewScheduledCallRepository(db)
		credRepo := database.NewCalendlyInfoRepository(db)

		lookup := users.NewLookup(userRepo, nil)
		callSvc := calls.NewService(callRepo, lookup)
		client := calendly.NewClient(cfg.CalendlyBaseURL)

		webhookHandler = handlers.NewCalendlyWebhookHandler(lookup, callSvc, nil, cfg.WebhookSigningKey, cfg.VerifySignatures)
		timesHandler = handlers.NewAvailableTimesHandler(credRepo, client)
		scheduleHandler = handlers.NewScheduleInviteeHandler(credRepo, userRepo, client, nil)
	}

	healthHandler := handlers.NewHealthHandler(pinger, cfg.ServiceVersion, cfg.Stage)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthCheck", adapt(healthHandler.Handle))
	if db != nil {
		mux.HandleFunc("/calendlyWebhook", adapt(webhookHandler.Handle))
		mux.HandleFunc("/availableTimes", adapt(timesHandler.Handle))
		mux.HandleFunc("/scheduleCalendlyInvitee", adapt(scheduleHandler.Handle))
	}

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization", "Calendly-Webhook-Signature"},
	}).Handler(mux)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Local server listening on :%s", port)
	if err := http.ListenAndServe(":"+port, corsHandler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
