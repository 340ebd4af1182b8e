package stock

import (
	"VendingBus/internal/core/domain"
	"VendingBus/internal/core/ports"
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// SaleHandler decrements stock on Sold events and raises StockLow on the
// OK->LOW transition.
type SaleHandler struct {
	log  zerolog.Logger
	repo ports.MachineRepository
}

var _ ports.Subscriber = (*SaleHandler)(nil)

// NewSaleHandler creates the subscriber for Sold events.
func NewSaleHandler(repo ports.MachineRepository, baseLogger *zerolog.Logger) *SaleHandler {
	return &SaleHandler{
		log:  baseLogger.With().Str("component", "sale_handler").Logger(),
		repo: repo,
	}
}

func (h *SaleHandler) Name() string { return "sale_handler" }

func (h *SaleHandler) Topics() []domain.Topic {
	return []domain.Topic{domain.TopicSold}
}

// Handle applies a sale. Unknown machines, invalid quantities and
// insufficient stock are reported and the event is dropped; repository errors abort the drain.
func (h *SaleHandler) Handle(ctx context.Context, event domain.Event, publish ports.PublishFunc) error {
	if event.Topic() != domain.TopicSold {
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
		log.Error().Err(domain.ErrUnknownMachine).Msg("Sale for unknown machine, dropping event")
		return nil
	}

	crossedLow, err := machine.Sell(qty)
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		log.Warn().Int("stock", machine.StockLevel).Msg("Insufficient stock, sale rejected")
		return nil
	case errors.Is(err, domain.ErrInvalidQuantity):
		log.Warn().Err(err).Msg("Invalid sale quantity, dropping event")
		return nil
	case err != nil:
		return err
	}

	if err := h.repo.Update(ctx, machine); err != nil {
		log.Error().Err(err).Msg("Failed to update machine after sale")
		return err
	}
	log.Info().Int("stock", machine.StockLevel).Msg("Sale recorded")

	if crossedLow {
		return publish(ctx, domain.NewStockLowEvent(machine.ID))
	}
	return nil
}
