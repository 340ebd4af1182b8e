package main

import (
	"VendingBus/internal/app"
	"VendingBus/internal/shared/config"
	"VendingBus/internal/shared/logger"
	"context"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile    string
	cfg        *config.Config
	baseLogger zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "vending",
	Short: "Vending machine stock simulator on an in-process event bus",
	Long: `vending replays sale and refill events against a fleet of vending
machines. Stock changes flow through a synchronous event bus, and low-stock
warnings are raised once per excursion below the threshold.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// 1. Load Configuration
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}

		// 2. Initialize Logger
		baseLogger = logger.New(cfg.AppEnv == "dev", cfg.LogLevel)
		baseLogger.Info().
			Str("app_env", cfg.AppEnv).
			Int("machines", len(cfg.Machines)).
			Bool("database", cfg.DatabaseURL != "").
			Bool("telegram", cfg.Telegram.Enabled()).
			Str("metrics_addr", cfg.MetricsAddr).
			Msg("Configuration loaded")
		return nil
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (yaml, optional)")
	rootCmd.PersistentFlags().String("metrics-addr", "", "serve Prometheus metrics on this address during the run")
	_ = viper.BindPFlag("metrics.addr", rootCmd.PersistentFlags().Lookup("metrics-addr"))

	rootCmd.AddCommand(simulateCmd, scenarioCmd)
}

// runEvents builds the app, publishes events and logs the final stock.
func runEvents(cmd *cobra.Command, build func(ctx context.Context, a *app.App) error) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, app.Options{}, &baseLogger)
	if err != nil {
		return err
	}
	runErr := build(ctx, a)

	if _, err := a.Report(context.WithoutCancel(ctx)); err != nil {
		return err
	}
	return runErr
}
