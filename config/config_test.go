package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "CACHE_TTL", "SESSION_TTL", "ALLOWED_ORIGINS", "API_BASE_URL", "PUBLIC_ORIGIN", "API_TIMEOUT"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, time.Duration(0), cfg.APITimeout)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Equal(t, "http://localhost:8080", cfg.BackendURL())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SESSION_TTL", "3600")
	t.Setenv("CACHE_TTL", "90s")
	t.Setenv("API_TIMEOUT", "not-a-duration")
	t.Setenv("ALLOWED_ORIGINS", "https://optimas.co.ke, https://admin.optimas.co.ke ,")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, time.Hour, cfg.SessionTTL)
	assert.Equal(t, 90*time.Second, cfg.CacheTTL)
	assert.Equal(t, time.Duration(0), cfg.APITimeout)
	assert.Equal(t, []string{"https://optimas.co.ke", "https://admin.optimas.co.ke"}, cfg.AllowedOrigins)
}

func TestBackendURL(t *testing.T) {
	assert.Equal(t, "https://api.optimas.co.ke", Config{APIBaseURL: "https://api.optimas.co.ke/", PublicOrigin: "https://optimas.co.ke"}.BackendURL())
	assert.Equal(t, "https://optimas.co.ke", Config{PublicOrigin: "https://optimas.co.ke/"}.BackendURL())
}
