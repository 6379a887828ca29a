package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
)

func main() {
	fmt.Println("=== Database Initialization Script ===")
	fmt.Println()

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Could not load .env file: %v\n", err)
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		fmt.Println("DATABASE_URL environment variable not set")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	conn, err := pgx.Connect(ctx, databaseURL)
	if err != nil {
		fmt.Printf("Failed to connect to PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(ctx)

	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			email TEXT NOT NULL DEFAULT '',
			name TEXT NOT NULL DEFAULT '',
			first_name TEXT NOT NULL DEFAULT '',
			last_name TEXT NOT NULL DEFAULT '',
			timezone TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_users_email ON users (email)`,

		// Duplicate prevention for scheduled calls is a lookup-before-create
		// check in the application, not a unique constraint.
		`CREATE TABLE IF NOT EXISTS scheduled_calls (
			id BIGSERIAL PRIMARY KEY,
			user_id TEXT NOT NULL,
			calendly_event_uri TEXT NOT NULL,
			status TEXT NOT NULL,
			event_type TEXT NOT NULL DEFAULT '',
			invitee_email TEXT NOT NULL DEFAULT '',
			invitee_name TEXT NOT NULL DEFAULT '',
			mentor_uri TEXT NOT NULL DEFAULT '',
			mentor_name TEXT NOT NULL DEFAULT '',
			start_time TEXT NOT NULL DEFAULT '',
			end_time TEXT NOT NULL DEFAULT '',
			timezone TEXT NOT NULL DEFAULT '',
			join_url TEXT NOT NULL DEFAULT '',
			reschedule_url TEXT NOT NULL DEFAULT '',
			cancel_url TEXT NOT NULL DEFAULT '',
			rescheduled BOOLEAN NOT NULL DEFAULT false,
			canceled_at TIMESTAMPTZ,
			canceled_by TEXT NOT NULL DEFAULT '',
			cancellation_reason TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_scheduled_calls_user_event
			ON scheduled_calls (user_id, calendly_event_uri)`,

		`CREATE TABLE IF NOT EXISTS calendly_info (
			id BIGSERIAL PRIMARY KEY,
			mentor_id TEXT NOT NULL,
			access_token TEXT NOT NULL DEFAULT '',
			event_type_uri TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_calendly_info_mentor ON calendly_info (mentor_id)`,
	}

	for _, stmt := range statements {
		if _, err := conn.Exec(ctx, stmt); err != nil {
			fmt.Printf("Failed to execute statement: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Println("Database initialized!")
}
