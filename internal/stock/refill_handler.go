package stock

import (
	"VendingBus/internal/core/domain"
	"VendingBus/internal/core/ports"
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// RefillHandler increments stock on Refilled events and raises StockOk on
// the LOW->OK transition.
type RefillHandler struct {
	log  zerolog.Logger
	repo ports.MachineRepository
}

var _ ports.Subscriber = (*RefillHandler)(nil)

func NewRefillHandler(repo ports.MachineRepository, baseLogger *zerolog.Logger) *RefillHandler {
	return &RefillHandler{
		log:  baseLogger.With().Str("component", "refill_handler").Logger(),
		repo: repo,
	}
}

func (h *RefillHandler) Name() string { return "refill_handler" }

func (h *RefillHandler) Topics() []domain.Topic {
	return []domain.Topic{domain.TopicRefilled}
}

func (h *RefillHandler) Handle(ctx context.Context, event domain.Event, publish ports.PublishFunc) error {
	if event.Topic() != domain.TopicRefilled {
		return fmt.Errorf("%s got %s: %w", h.Name(), event.Topic(), domain.ErrUnexpectedTopic)
	}
	qty, _ := event.Quantity()
	log := h.log.With().
		Str("machine_id", event.MachineID()).
		Str("event_id", event.ID().String()).
		Int("qty", qty).
		Logger()

	machine, err := h.repo.GetByID(ctx, event.MachineID())
	if err != nil {
		log.Error().Err(err).Msg("Failed to load machine")
		return err
	}
	if machine == nil {
		log.Error().Err(domain.ErrUnknownMachine).Msg("Refill for unknown machine, dropping event")
		return nil
	}

	recovered, err := machine.Refill(qty)
	if errors.Is(err, domain.ErrInvalidQuantity) {
		log.Warn().Err(err).Msg("Invalid refill quantity, dropping event")
		return nil
	}
	if err := h.repo.Update(ctx, machine); err != nil {
		log.Error().Err(err).Msg("Failed to update machine after refill")
		return err
	}
	log.Info().Int("stock", machine.StockLevel).Msg("Refill recorded")

	if recovered {
		return publish(ctx, domain.NewStockOkEvent(machine.ID))
	}
	return nil
}
