package config_test

import (
	"testing"
	"time"

	"github.com/dom/members-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "a-long-enough-test-secret")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 10, cfg.DBMaxOpenConns)
	assert.Equal(t, 10*time.Second, cfg.DBConnMaxIdleTime)
	assert.Equal(t, 30*time.Second, cfg.DBAcquireTimeout)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiration)
	assert.Equal(t, int64(100*1024), cfg.MaxBodyBytes)
	assert.False(t, cfg.ThrottleEnabled())
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "a-long-enough-test-secret")
	t.Setenv("JWT_EXPIRATION", "2h")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", "file:members.db")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("LOGIN_RATE_LIMIT", "3")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com,https://admin.example.com")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 2*time.Hour, cfg.JWTExpiration)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "file:members.db", cfg.DatabaseURL)
	assert.True(t, cfg.ThrottleEnabled())
	assert.Equal(t, 3, cfg.LoginRateLimit)
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORSAllowedOrigins)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing secret", env: map[string]string{"JWT_SECRET": ""}},
		{name: "short secret", env: map[string]string{"JWT_SECRET": "short"}},
		{name: "unknown driver", env: map[string]string{"JWT_SECRET": "a-long-enough-test-secret", "DB_DRIVER": "mysql"}},
		{name: "negative expiry", env: map[string]string{"JWT_SECRET": "a-long-enough-test-secret", "JWT_EXPIRATION": "-1h"}},
		{name: "empty pool", env: map[string]string{"JWT_SECRET": "a-long-enough-test-secret", "DB_MAX_OPEN_CONNS": "0"}},
		{name: "bad duration", env: map[string]string{"JWT_SECRET": "a-long-enough-test-secret", "DB_ACQUIRE_TIMEOUT": "soon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}
