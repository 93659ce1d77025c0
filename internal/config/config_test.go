package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "3001", cfg.Port)
	assert.Equal(t, "https://api.clerk.com/v1", cfg.ClerkAPIURL)
	assert.Equal(t, 10*time.Second, cfg.ClerkTimeout)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.ClerkAuthorizedParties)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("CLERK_AUTHORIZED_PARTIES", "https://app.example.com, https://staging.example.com")
	t.Setenv("CLERK_TIMEOUT", "3s")

	cfg := Load()

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, []string{"https://app.example.com", "https://staging.example.com"}, cfg.ClerkAuthorizedParties)
	assert.Equal(t, 3*time.Second, cfg.ClerkTimeout)
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		DBHost:     "db.internal",
		DBPort:     "5433",
		DBUser:     "app",
		DBPassword: "secret",
		DBName:     "vendorhub",
		DBSSLMode:  "require",
	}

	assert.Equal(t,
		"host=db.internal user=app password=secret dbname=vendorhub port=5433 sslmode=require TimeZone=UTC",
		cfg.DSN())
}

func TestParseDurationFallback(t *testing.T) {
	assert.Equal(t, 10*time.Second, parseDuration("not-a-duration"))
	assert.Equal(t, time.Minute, parseDuration("1m"))
}
