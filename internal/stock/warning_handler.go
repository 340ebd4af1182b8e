package stock

import (
	"VendingBus/internal/core/domain"
	"VendingBus/internal/core/ports"
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// WarningHandler reports stock state transitions. It never mutates
// machine state.
type WarningHandler struct {
	log      zerolog.Logger
	notifier ports.AlertNotifier // optional
	now      func() time.Time
}

var _ ports.Subscriber = (*WarningHandler)(nil)

// NewWarningHandler creates the observer for StockLow and StockOk.
// notifier may be nil, in which case transitions are only logged.
func NewWarningHandler(notifier ports.AlertNotifier, baseLogger *zerolog.Logger) *WarningHandler {
	return &WarningHandler{
		log:      baseLogger.With().Str("component", "warning_handler").Logger(),
		notifier: notifier,
		now:      time.Now,
	}
}

func (h *WarningHandler) Name() string { return "warning_handler" }

func (h *WarningHandler) Topics() []domain.Topic {
	return []domain.Topic{domain.TopicStockLow, domain.TopicStockOk}
}

func (h *WarningHandler) Handle(ctx context.Context, event domain.Event, _ ports.PublishFunc) error {
	var kind domain.AlertKind
	switch event.Topic() {
	case domain.TopicStockLow:
		kind = domain.AlertLow
		h.log.Warn().Str("machine_id", event.MachineID()).Msg("Low stock")
	case domain.TopicStockOk:
		kind = domain.AlertOk
		h.log.Info().Str("machine_id", event.MachineID()).Msg("Stock sufficient again")
	default:
		return fmt.Errorf("%s got %s: %w", h.Name(), event.Topic(), domain.ErrUnexpectedTopic)
	}

	if h.notifier == nil {
		return nil
	}
	alert := domain.StockAlert{
		Kind:      kind,
		MachineID: event.MachineID(),
		EventID:   event.ID().String(),
		At:        h.now(),
	}
	if err := h.notifier.Notify(ctx, alert); err != nil {
		// Alert delivery is best effort.
		h.log.Warn().Err(err).Str("machine_id", event.MachineID()).Msg("Failed to queue stock alert")
	}
	return nil
}
