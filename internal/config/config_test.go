package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, 5*time.Minute, cfg.Database.ConnMaxLifetime)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, time.UTC, cfg.App.Location)
	assert.Equal(t, 3, cfg.Order.MaxRetryAttempts)
	assert.Equal(t, 5, cfg.Order.CodeAttempts)
	assert.Equal(t, 5*time.Second, cfg.Order.TxTimeout)
	assert.Empty(t, cfg.RabbitMQ.URL)
	assert.Equal(t, "guisado.availability", cfg.RabbitMQ.Exchange)
	assert.False(t, cfg.Auth.RequireAdminToken)
	assert.Equal(t, 12*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 10, cfg.RateLimit.Burst)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server_port: 9000\ndb_name: from_file\napp_timezone: America/Mexico_City\n"), 0o600))

	t.Setenv("DB_NAME", "from_env")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "from_env", cfg.Database.Name)
	assert.Equal(t, "America/Mexico_City", cfg.App.Location.String())
}

func TestLoad_MissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("ORDER_TX_TIMEOUT", "soon")

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_InvalidTimezone(t *testing.T) {
	t.Setenv("APP_TIMEZONE", "Mars/Olympus")

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_RetryAttemptsClampedToOne(t *testing.T) {
	t.Setenv("ORDER_MAX_RETRY_ATTEMPTS", "0")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Order.MaxRetryAttempts)
}
