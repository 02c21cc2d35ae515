package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-jwt-secret")
	t.Setenv("REFRESH_SECRET", "test-refresh-secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, DefaultPort, cfg.Port)
	require.Equal(t, DefaultAccessExpiryMin, cfg.AccessExpiryMin)
	require.Equal(t, DefaultRefreshExpiryMin, cfg.RefreshExpiryMin)
	require.Equal(t, DefaultTransactionsIndex, cfg.ESIndex)
	require.Equal(t, DefaultUploadDir, cfg.UploadDir)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, "test-jwt-secret", cfg.JWTSecret)
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("ACCESS_TOKEN_EXPIRY", "5")
	t.Setenv("ES_INDEX", "ledger")
	t.Setenv("KAFKA_ADDRESS", "localhost:9092")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, 5, cfg.AccessExpiryMin)
	require.Equal(t, "ledger", cfg.ESIndex)
	require.Equal(t, "localhost:9092", cfg.KafkaAddress)
	require.Equal(t, "debug", cfg.LogLevel)
}

func TestGetEnvAsIntRejectsGarbage(t *testing.T) {
	t.Setenv("SOME_INT", "not-a-number")
	require.Equal(t, 42, getEnvAsInt("SOME_INT", 42))

	t.Setenv("SOME_INT", "7")
	require.Equal(t, 7, getEnvAsInt("SOME_INT", 42))
}
