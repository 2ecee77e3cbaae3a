package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "signalforge")
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoadConfig_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, 10, cfg.DB.MaxSize)
	assert.Equal(t, 15*time.Minute, cfg.Auth.AccessTokenDuration)
	assert.Equal(t, 168*time.Hour, cfg.Auth.RefreshTokenDuration)
	assert.Equal(t, "google", cfg.OAuth.Provider)
	assert.Equal(t, 5*time.Minute, cfg.OAuth.CodeTTL)
	assert.Equal(t, "8080", cfg.Server.Port)
}

func TestLoadConfig_CollectsAllErrors(t *testing.T) {
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_PORT", "not-a-number")
	// force the required keys absent regardless of the ambient environment
	for _, key := range []string{"DB_PASSWORD", "DB_NAME", "JWT_SECRET"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PASSWORD")
	assert.Contains(t, err.Error(), "DB_NAME")
	assert.Contains(t, err.Error(), "JWT_SECRET")
	assert.Contains(t, err.Error(), "DB_PORT")
}

func TestLoadConfig_ClampsPoolSize(t *testing.T) {
	setRequired(t)
	t.Setenv("DB_POOL_SIZE", "1")

	// clamping is reported as an error so the operator notices the typo
	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_POOL_SIZE")
}

func TestPoolConfig_DSN(t *testing.T) {
	cfg := PoolConfig{Host: "db", Port: 5433, User: "app", Password: "pw", DBName: "forge"}
	assert.Equal(t, "postgres://app:pw@db:5433/forge?sslmode=disable", cfg.DSN())
}
