package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "0.0.0.0", cfg.ServerHost)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 25, cfg.DBMaxOpenConnections)
	assert.Equal(t, 5, cfg.DBMaxIdleConnections)
	assert.Equal(t, 5*time.Minute, cfg.DBConnMaxLifetime)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 2000, cfg.SyncPageLimit)
	assert.True(t, cfg.RateLimitEnabled)
	assert.False(t, cfg.CORSEnabled)
	assert.True(t, cfg.MetricsEnabled)
	assert.Equal(t, "agrosync", cfg.MetricsNamespace)
	assert.Equal(t, 8081, cfg.MetricsPort)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("SYNC_PAGE_LIMIT", "500")
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	cfg := Load()

	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, 500, cfg.SyncPageLimit)
	assert.False(t, cfg.RateLimitEnabled)
}

func TestGetGinMode(t *testing.T) {
	tests := []struct {
		logLevel string
		want     string
	}{
		{"debug", "debug"},
		{"info", "release"},
		{"warn", "release"},
		{"error", "release"},
		{"unknown", "release"},
	}

	for _, tt := range tests {
		cfg := &Config{LogLevel: tt.logLevel}
		assert.Equal(t, tt.want, cfg.GetGinMode())
	}
}
