package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APP_ENV", "test")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("TELEGRAM_ALERT_CHAT_ID", "")
	t.Setenv("METRICS_ADDR", "")
}

func TestScenarioCommand(t *testing.T) {
	quietEnv(t)
	rootCmd.SetArgs([]string{"scenario"})
	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "test", cfg.AppEnv)
}

func TestSimulateCommand(t *testing.T) {
	quietEnv(t)
	rootCmd.SetArgs([]string{"simulate", "--events", "25", "--seed", "9"})
	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, 25, cfg.Simulation.Events)
	assert.Equal(t, uint64(9), cfg.Simulation.Seed)
}

func TestMissingConfigFile(t *testing.T) {
	quietEnv(t)
	rootCmd.SetArgs([]string{"scenario", "--config", filepath.Join(t.TempDir(), "absent.yaml")})
	require.Error(t, rootCmd.Execute())
	cfgFile = ""
}
