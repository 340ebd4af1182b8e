// Package app wires configuration, storage, the event bus and the stock
// subscribers into a runnable simulation.
package app

import (
	"VendingBus/internal/adapters/eventbus"
	"VendingBus/internal/adapters/memory"
	"VendingBus/internal/adapters/metrics"
	"VendingBus/internal/adapters/postgres"
	"VendingBus/internal/adapters/telegram"
	"VendingBus/internal/core/domain"
	"VendingBus/internal/core/ports"
	"VendingBus/internal/shared/config"
	"VendingBus/internal/stock"
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// App holds the wired components of one run.
type App struct {
	Bus     ports.EventBus
	Repo    ports.MachineRepository
	Metrics *metrics.Registry

	metricsServer *metrics.Server
	notifier      *telegram.AlertNotifier
	log           zerolog.Logger
}

// Options overrides parts of the wiring, mainly for tests.
type Options struct {
	Fleet    ports.FleetSource       // defaults to postgres or the config file
	Notifier *telegram.AlertNotifier // defaults to Telegram when configured
}

// New builds an App from configuration.
func New(ctx context.Context, cfg *config.Config, opts Options, baseLogger *zerolog.Logger) (*App, error) {
	log := baseLogger.With().Str("component", "app").Logger()

	fleet, err := loadFleet(ctx, cfg, opts.Fleet, baseLogger)
	if err != nil {
		return nil, err
	}
	if len(fleet) == 0 {
		return nil, fmt.Errorf("load fleet: %w", domain.ErrEmptyFleet)
	}

	repo := memory.NewMachineRepository(baseLogger)
	if err := memory.Seed(ctx, repo, fleet); err != nil {
		return nil, fmt.Errorf("seed fleet: %w", err)
	}
	log.Info().Int("machines", len(fleet)).Msg("Fleet seeded")

	notifier := opts.Notifier
	if notifier == nil && cfg.Telegram.Enabled() {
		api, err := telegram.NewBotAPI(cfg.Telegram.Token)
		if err != nil {
			return nil, err
		}
		notifier = telegram.NewAlertNotifier(api, cfg.Telegram.ChatID, 64, baseLogger)
		log.Info().Int64("chat_id", cfg.Telegram.ChatID).Msg("Telegram stock alerts enabled")
	}

	a := &App{
		Bus:      eventbus.NewInMemoryEventBus(baseLogger),
		Repo:     repo,
		Metrics:  metrics.NewRegistry(),
		notifier: notifier,
		log:      log,
	}
	if cfg.MetricsAddr != "" {
		a.metricsServer = metrics.NewServer(cfg.MetricsAddr, a.Metrics, baseLogger)
	}

	// A nil *AlertNotifier must not become a non-nil interface.
	var alerts ports.AlertNotifier
	if notifier != nil {
		alerts = notifier
	}

	stock.RegisterAll(a.Bus,
		stock.NewSaleHandler(repo, baseLogger),
		stock.NewRefillHandler(repo, baseLogger),
		stock.NewWarningHandler(alerts, baseLogger),
		metrics.NewRecorder(a.Metrics, repo),
	)

	machines, err := repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, m := range machines {
		a.Metrics.SetMachine(*m)
	}
	return a, nil
}

func loadFleet(ctx context.Context, cfg *config.Config, src ports.FleetSource, baseLogger *zerolog.Logger) ([]domain.Machine, error) {
	if src != nil {
		return src.LoadFleet(ctx)
	}
	if cfg.DatabaseURL == "" {
		return cfg.LoadFleet(ctx)
	}

	db, err := postgres.NewDB(ctx, cfg.DatabaseURL, baseLogger)
	if err != nil {
		return nil, fmt.Errorf("connect fleet database: %w", err)
	}
	defer db.Close()
	return postgres.NewFleetSource(db, baseLogger).LoadFleet(ctx)
}

// Run publishes events one by one on the calling goroutine, while the
// metrics server and alert sender run in the background. A failed
// publish is logged and counted and the run moves on to the next event.
func (a *App) Run(ctx context.Context, events []domain.Event) error {
	g, gctx := errgroup.WithContext(ctx)
	serverCtx, stopServer := context.WithCancel(gctx)
	defer stopServer()

	if a.metricsServer != nil {
		g.Go(func() error { return a.metricsServer.Start(serverCtx) })
	}
	if a.notifier != nil {
		g.Go(func() error { return a.notifier.Run(gctx) })
	}

	failures := a.publishAll(gctx, events)

	if a.notifier != nil {
		a.notifier.Close()
	}
	stopServer()

	if err := g.Wait(); err != nil {
		return err
	}
	if failures > 0 {
		return fmt.Errorf("%d of %d publishes failed, %d events left queued", failures, len(events), a.Bus.Pending())
	}
	return ctx.Err()
}

func (a *App) publishAll(ctx context.Context, events []domain.Event) int {
	failures := 0
	for _, e := range events {
		if ctx.Err() != nil {
			a.log.Warn().Msg("Run cancelled, remaining events not published")
			break
		}
		qty, _ := e.Quantity()
		a.log.Debug().Stringer("topic", e.Topic()).Str("machine_id", e.MachineID()).Int("qty", qty).Msg("Publishing event")

		if err := a.Bus.Publish(ctx, e); err != nil {
			failures++
			var hErr *eventbus.HandlerError
			if errors.As(err, &hErr) {
				a.Metrics.RecordHandlerFailure(hErr.Subscriber)
			}
			a.log.Error().Err(err).Int("pending", a.Bus.Pending()).Msg("Publish failed")
		}
	}
	return failures
}

// Report logs the event totals and the final state of every machine,
// and returns the machines.
func (a *App) Report(ctx context.Context) ([]domain.Machine, error) {
	machines, err := a.Repo.List(ctx)
	if err != nil {
		return nil, err
	}

	totals := zerolog.Dict()
	for _, topic := range domain.Topics() {
		totals.Float64(topic.String(), a.Metrics.EventTotal(topic))
	}
	a.log.Info().Dict("events", totals).Msg("Run summary")

	out := make([]domain.Machine, 0, len(machines))
	for _, m := range machines {
		a.Metrics.SetMachine(*m)
		a.log.Info().
			Str("machine_id", m.ID).
			Int("stock", m.StockLevel).
			Bool("low_stock", m.LowStock).
			Msg("Final stock")
		out = append(out, *m)
	}
	return out, nil
}
