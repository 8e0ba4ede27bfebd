package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	for _, key := range []string{"APP_NAME", "PORT", "ACTING_USER_ID", "WRITE_RATE_LIMIT", "WRITE_RATE_WINDOW", "CORS_ALLOWED_ORIGINS", "SENTRY_DSN", "SEED_DATA"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "Goalpost", cfg.AppName)
	assert.Equal(t, "8090", cfg.Port)
	assert.Equal(t, "1", cfg.ActingUserID)
	assert.True(t, cfg.SeedData)
	assert.Equal(t, 60, cfg.WriteRateLimit)
	assert.Equal(t, time.Minute, cfg.WriteRateWindow)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("PORT", "9000")
	t.Setenv("ACTING_USER_ID", "3")
	t.Setenv("SEED_DATA", "false")
	t.Setenv("WRITE_RATE_LIMIT", "5")
	t.Setenv("WRITE_RATE_WINDOW", "30s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")

	cfg := Load()

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "3", cfg.ActingUserID)
	assert.False(t, cfg.SeedData)
	assert.Equal(t, 5, cfg.WriteRateLimit)
	assert.Equal(t, 30*time.Second, cfg.WriteRateWindow)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.IsProduction())
}

func TestEnvHelpers_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("X_INT", "lots")
	t.Setenv("X_NEG", "-4")
	t.Setenv("X_DUR", "soon")
	t.Setenv("X_BOOL", "maybe")
	t.Setenv("X_LIST", " , ")

	assert.Equal(t, 7, envInt("X_INT", 7))
	assert.Equal(t, 7, envInt("X_NEG", 7))
	assert.Equal(t, time.Second, envDuration("X_DUR", time.Second))
	assert.True(t, envBool("X_BOOL", true))
	assert.Equal(t, []string{"d"}, envList("X_LIST", []string{"d"}))
}

func TestSanitized(t *testing.T) {
	cfg := &Config{
		AppName:            "Goalpost",
		AppEnv:             "production",
		ActingUserID:       "2",
		SentryDSN:          "https://key@sentry.example/1",
		CORSAllowedOrigins: []string{"https://a.example"},
	}

	safe := cfg.Sanitized()
	require.NotNil(t, safe)
	assert.Equal(t, "Goalpost", safe.AppName)
	assert.Equal(t, "2", safe.ActingUserID)
	assert.Empty(t, safe.SentryDSN)
	assert.Nil(t, safe.CORSAllowedOrigins)
}
