package config

import (
	"VendingBus/internal/core/domain"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// MachineConfig is one entry of the `machines` list in the config file.
type MachineConfig struct {
	ID       string `mapstructure:"id"`
	Stock    int    `mapstructure:"stock"`
	LowStock bool   `mapstructure:"low_stock"`
}

// TelegramConfig enables stock alerts in a Telegram chat.
type TelegramConfig struct {
	Token  string
	ChatID int64
}

// Enabled reports whether both the token and the chat are set.
func (t TelegramConfig) Enabled() bool {
	return t.Token != "" && t.ChatID != 0
}

// SimulationConfig controls the random event run.
type SimulationConfig struct {
	Events int
	Seed   uint64
}

// Config holds all configuration for the application.
type Config struct {
	AppEnv      string
	LogLevel    string
	DatabaseURL string // Optional fleet source
	MetricsAddr string // Empty disables the metrics server
	Telegram    TelegramConfig
	Simulation  SimulationConfig
	Machines    []MachineConfig
}

// defaultFleet mirrors the demo fleet: two healthy machines and one
// that starts below the threshold.
var defaultFleet = []map[string]any{
	{"id": "001", "stock": 5, "low_stock": false},
	{"id": "002", "stock": 5, "low_stock": false},
	{"id": "003", "stock": 2, "low_stock": true},
}

var envBindings = map[string]string{
	"app.env":           "APP_ENV",
	"log.level":         "LOG_LEVEL",
	"database.url":      "DATABASE_URL",
	"metrics.addr":      "METRICS_ADDR",
	"telegram.token":    "TELEGRAM_BOT_TOKEN",
	"telegram.chat_id":  "TELEGRAM_ALERT_CHAT_ID",
	"simulation.events": "SIMULATION_EVENTS",
	"simulation.seed":   "SIMULATION_SEED",
}

// SetDefaults registers default values on the global viper instance.
func SetDefaults() {
	viper.SetDefault("app.env", "dev")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("simulation.events", 5)
	viper.SetDefault("simulation.seed", 0)
	viper.SetDefault("machines", defaultFleet)
}

// Load loads configuration from the environment, an optional .env file
// and an optional config file.
func Load(configFile string) (*Config, error) {
	// 1. Load .env file into the process environment
	if err := godotenv.Load(); err != nil {
		// A missing .env is fine; anything else is not.
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	// 2. Explicitly bind viper keys to env var names
	for key, env := range envBindings {
		if err := viper.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("could not bind %s: %w", key, err)
		}
	}

	// 3. Set defaults
	SetDefaults()

	// 4. Read the config file if one was given
	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("could not read config file %s: %w", configFile, err)
		}
	}

	cfg := Config{
		AppEnv:      viper.GetString("app.env"),
		LogLevel:    viper.GetString("log.level"),
		DatabaseURL: viper.GetString("database.url"),
		MetricsAddr: viper.GetString("metrics.addr"),
		Telegram: TelegramConfig{
			Token:  viper.GetString("telegram.token"),
			ChatID: viper.GetInt64("telegram.chat_id"),
		},
		Simulation: SimulationConfig{
			Events: viper.GetInt("simulation.events"),
			Seed:   viper.GetUint64("simulation.seed"),
		},
	}
	if err := viper.UnmarshalKey("machines", &cfg.Machines); err != nil {
		return nil, fmt.Errorf("could not decode machines: %w", err)
	}

	// 5. Validation
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the loaded values.
func (c *Config) Validate() error {
	if c.Simulation.Events < 0 {
		return fmt.Errorf("simulation.events must not be negative, got %d", c.Simulation.Events)
	}
	if (c.Telegram.Token == "") != (c.Telegram.ChatID == 0) {
		return errors.New("TELEGRAM_BOT_TOKEN and TELEGRAM_ALERT_CHAT_ID must be set together")
	}
	if c.DatabaseURL == "" && len(c.Machines) == 0 {
		return errors.New("no machines configured and no DATABASE_URL set")
	}

	seen := make(map[string]bool, len(c.Machines))
	for i, m := range c.Machines {
		if m.ID == "" {
			return fmt.Errorf("machines[%d]: id is required", i)
		}
		if m.Stock < 0 {
			return fmt.Errorf("machine %s: stock must not be negative, got %d", m.ID, m.Stock)
		}
		if seen[m.ID] {
			return fmt.Errorf("machine %s is listed twice", m.ID)
		}
		seen[m.ID] = true
	}
	return nil
}

// LoadFleet implements ports.FleetSource over the configured machine list.
func (c *Config) LoadFleet(ctx context.Context) ([]domain.Machine, error) {
	fleet := make([]domain.Machine, 0, len(c.Machines))
	for _, m := range c.Machines {
		fleet = append(fleet, domain.Machine{ID: m.ID, StockLevel: m.Stock, LowStock: m.LowStock})
	}
	return fleet, nil
}
