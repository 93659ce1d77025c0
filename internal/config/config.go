package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Clerk (identity provider)
	ClerkSecretKey         string
	ClerkWebhookSecret     string
	ClerkJWKSURL           string
	ClerkIssuer            string
	ClerkAuthorizedParties []string
	ClerkAPIURL            string
	ClerkTimeout           time.Duration

	// Server
	Port        string
	CORSOrigins string
}

func Load() *Config {
	// Optional .env for local development; real deployments inject env vars.
	_ = godotenv.Load()

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "vendorhub_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		ClerkSecretKey:         getEnv("CLERK_SECRET_KEY", ""),
		ClerkWebhookSecret:     getEnv("CLERK_WEBHOOK_SECRET", ""),
		ClerkJWKSURL:           getEnv("CLERK_JWKS_URL", ""),
		ClerkIssuer:            getEnv("CLERK_ISSUER", ""),
		ClerkAuthorizedParties: parseCSV(getEnv("CLERK_AUTHORIZED_PARTIES", "http://localhost:3000")),
		ClerkAPIURL:            getEnv("CLERK_API_URL", "https://api.clerk.com/v1"),
		ClerkTimeout:           parseDuration(getEnv("CLERK_TIMEOUT", "10s")),

		Port:        getEnv("PORT", "3001"),
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

func parseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
