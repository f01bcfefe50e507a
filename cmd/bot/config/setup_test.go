package config

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestParse_Defaults(t *testing.T) {
	t.Setenv(EnvBotToken, "token")
	t.Setenv(EnvApplicationId, "123")

	cfg, err := Parse(testLogger(), nil)
	require.NoError(t, err)
	require.Equal(t, "token", cfg.BotToken)
	require.Equal(t, "123", cfg.ApplicationId)
	require.Equal(t, "8080", cfg.MonitoringPort)
	require.Equal(t, ".", cfg.DataDir)
	require.Equal(t, "Credits", cfg.CurrencyName)
	require.Equal(t, "private-assets", cfg.AssetChannel)
	require.False(t, cfg.Debug)
	require.False(t, cfg.UseMongo())
}

func TestParse_FlagsOverrideEnvironment(t *testing.T) {
	t.Setenv(EnvBotToken, "token")
	t.Setenv(EnvApplicationId, "123")
	t.Setenv(EnvDataDir, "/env")
	t.Setenv(EnvMonitoringPort, "9000")
	t.Setenv(EnvMongoUri, "mongodb://localhost")

	cfg, err := Parse(testLogger(), []string{"--data-dir", "/flag", "--debug"})
	require.NoError(t, err)
	require.Equal(t, "/flag", cfg.DataDir)
	require.Equal(t, "9000", cfg.MonitoringPort)
	require.True(t, cfg.Debug)
	require.True(t, cfg.UseMongo())
}

func TestParse_MissingToken(t *testing.T) {
	t.Setenv(EnvBotToken, "")
	t.Setenv(EnvApplicationId, "123")

	_, err := Parse(testLogger(), nil)
	require.Error(t, err)
}

func TestParse_UnknownFlag(t *testing.T) {
	t.Setenv(EnvBotToken, "token")
	t.Setenv(EnvApplicationId, "123")

	_, err := Parse(testLogger(), []string{"--nope"})
	require.Error(t, err)
}
