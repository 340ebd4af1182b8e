package config

import (
	"VendingBus/internal/core/domain"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every bound variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	for _, env := range envBindings {
		t.Setenv(env, "")
		os.Unsetenv(env)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.AppEnv)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 5, cfg.Simulation.Events)
	assert.False(t, cfg.Telegram.Enabled())

	fleet, err := cfg.LoadFleet(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Machine{
		{ID: "001", StockLevel: 5},
		{ID: "002", StockLevel: 5},
		{ID: "003", StockLevel: 2, LowStock: true},
	}, fleet)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "prod")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SIMULATION_EVENTS", "12")
	t.Setenv("SIMULATION_SEED", "42")
	t.Setenv("TELEGRAM_BOT_TOKEN", "token")
	t.Setenv("TELEGRAM_ALERT_CHAT_ID", "-100123")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.AppEnv)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 12, cfg.Simulation.Events)
	assert.Equal(t, uint64(42), cfg.Simulation.Seed)
	assert.True(t, cfg.Telegram.Enabled())
	assert.Equal(t, int64(-100123), cfg.Telegram.ChatID)
}

func TestLoad_ConfigFileFleet(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "vending.yaml")
	content := `
metrics:
  addr: ":9100"
machines:
  - id: "A1"
    stock: 7
  - id: "B2"
    stock: 1
    low_stock: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9100", cfg.MetricsAddr)
	assert.Equal(t, []MachineConfig{
		{ID: "A1", Stock: 7},
		{ID: "B2", Stock: 1, LowStock: true},
	}, cfg.Machines)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("Load should fail when the config file does not exist")
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		return Config{Machines: []MachineConfig{{ID: "001", Stock: 5}}}
	}

	testCases := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"negative events", func(c *Config) { c.Simulation.Events = -1 }, true},
		{"token without chat", func(c *Config) { c.Telegram.Token = "x" }, true},
		{"chat without token", func(c *Config) { c.Telegram.ChatID = 1 }, true},
		{"no fleet", func(c *Config) { c.Machines = nil }, true},
		{"no fleet but database", func(c *Config) { c.Machines = nil; c.DatabaseURL = "postgres://x" }, false},
		{"missing id", func(c *Config) { c.Machines = append(c.Machines, MachineConfig{Stock: 1}) }, true},
		{"negative stock", func(c *Config) { c.Machines[0].Stock = -3 }, true},
		{"duplicate id", func(c *Config) { c.Machines = append(c.Machines, MachineConfig{ID: "001"}) }, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr && err == nil {
				t.Fatal("expected a validation error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected validation error: %v", err)
			}
		})
	}
}
