// Package config provides configuration management for the application.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration values for the application.
type Config struct {
	// AWS
	AWSRegion     string
	ArchiveBucket string

	// Database
	DBHost     string
	DBPort     int
	DBName     string
	DBUser     string
	DBPassword string

	// Calendly
	CalendlyBaseURL   string
	WebhookSigningKey string
	VerifySignatures  bool

	// Identity provider fallback
	CognitoUserPoolID string

	// SES
	SESSenderEmail string

	// Application
	Stage          string
	LogLevel       string
	ServiceVersion string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (for local development)
	_ = godotenv.Load()

	cfg := &Config{
		// AWS
		AWSRegion:     getEnv("AWS_REGION", "us-east-1"),
		ArchiveBucket: getEnv("WEBHOOK_ARCHIVE_BUCKET", ""),

		// Database
		DBHost:     getEnv("DB_HOST", getEnv("CONNECTLY_DB_HOST", "localhost")),
		DBPort:     getEnvInt("DB_PORT", getEnvInt("CONNECTLY_DB_PORT", 5432)),
		DBName:     getEnv("DB_NAME", getEnv("CONNECTLY_DB_NAME", "connectly")),
		DBUser:     getEnv("DB_USER", getEnv("CONNECTLY_DB_USER", "postgres")),
		DBPassword: getEnv("DB_PASSWORD", getEnv("CONNECTLY_DB_PASSWORD", "")),

		// Calendly
		CalendlyBaseURL:   getEnv("CALENDLY_BASE_URL", "https://api.calendly.com"),
		WebhookSigningKey: getEnv("CALENDLY_WEBHOOK_SIGNING_KEY", ""),
		VerifySignatures:  getEnvBool("CALENDLY_VERIFY_SIGNATURES", false),

		// Identity provider fallback
		CognitoUserPoolID: getEnv("COGNITO_USER_POOL_ID", ""),

		// SES
		SESSenderEmail: getEnv("SES_SENDER_EMAIL", ""),

		// Application
		Stage:          getEnv("STAGE", "dev"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		ServiceVersion: getEnv("SERVICE_VERSION", "1.0.0"),
	}

	return cfg, nil
}

// DatabaseURL returns the PostgreSQL connection string.
func (c *Config) DatabaseURL() string {
	sslMode := "require" // Use SSL for RDS
	if c.DBHost == "localhost" || c.DBHost == "127.0.0.1" {
		sslMode = "disable" // Disable SSL for local development
	}
	return "postgres://" + c.DBUser + ":" + c.DBPassword + "@" + c.DBHost + ":" + strconv.Itoa(c.DBPort) + "/" + c.DBName + "?sslmode=" + sslMode
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an environment variable as int or returns a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvBool retrieves an environment variable as bool or returns a default value.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
