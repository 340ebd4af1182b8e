package telegram

import (
	"VendingBus/internal/core/domain"
	"VendingBus/internal/core/ports"
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// ErrAlertQueueFull is returned by Notify when the send buffer is full.
var ErrAlertQueueFull = errors.New("alert queue full")

// ErrNotifierClosed is returned by Notify after Close.
var ErrNotifierClosed = errors.New("alert notifier closed")

// Sender is the part of *tgbotapi.BotAPI the notifier uses.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// AlertNotifier implements ports.AlertNotifier by queueing alerts and
// sending them from a separate goroutine, so Notify never waits on the
// network. Notify and Close must be called from the same goroutine.
type AlertNotifier struct {
	api    Sender
	chatID int64
	alerts chan domain.StockAlert
	closed bool
	log    zerolog.Logger
}

var _ ports.AlertNotifier = (*AlertNotifier)(nil) // Ensure compliance

// NewAlertNotifier creates a notifier posting to chatID.
func NewAlertNotifier(api Sender, chatID int64, bufferSize int, baseLogger *zerolog.Logger) *AlertNotifier {
	if bufferSize <= 0 {
		bufferSize = 64
	}
	return &AlertNotifier{
		api:    api,
		chatID: chatID,
		alerts: make(chan domain.StockAlert, bufferSize),
		log:    baseLogger.With().Str("component", "tg_alerts").Int64("chat_id", chatID).Logger(),
	}
}

// NewBotAPI connects to Telegram with the given token.
func NewBotAPI(token string) (*tgbotapi.BotAPI, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("could not create telegram bot: %w", err)
	}
	return api, nil
}

// Notify queues an alert without blocking.
func (n *AlertNotifier) Notify(ctx context.Context, alert domain.StockAlert) error {
	if n.closed {
		return ErrNotifierClosed
	}
	select {
	case n.alerts <- alert:
		return nil
	default:
		n.log.Warn().Str("machine_id", alert.MachineID).Msg("Alert queue full, dropping alert")
		return ErrAlertQueueFull
	}
}

// Close stops accepting alerts. Run returns once the queue is flushed.
func (n *AlertNotifier) Close() {
	if n.closed {
		return
	}
	n.closed = true
	close(n.alerts)
}

// Run sends queued alerts until Close is called and the queue is empty,
// or until ctx is cancelled.
func (n *AlertNotifier) Run(ctx context.Context) error {
	n.log.Info().Msg("Alert sender started")
	for {
		select {
		case <-ctx.Done():
			n.log.Warn().Int("unsent", len(n.alerts)).Msg("Alert sender cancelled")
			return ctx.Err()
		case alert, ok := <-n.alerts:
			if !ok {
				n.log.Info().Msg("Alert sender stopped")
				return nil
			}
			n.send(alert)
		}
	}
}

// send posts one alert. Failures are logged and the alert is dropped.
func (n *AlertNotifier) send(alert domain.StockAlert) {
	b := NewMessageBuilder(n.chatID).WithText(FormatAlert(alert))
	if alert.Kind == domain.AlertOk {
		b.Silent()
	}
	if _, err := n.api.Send(b.Build()); err != nil {
		n.log.Error().Err(err).Str("machine_id", alert.MachineID).Msg("Failed to send alert")
		return
	}
	n.log.Debug().Str("machine_id", alert.MachineID).Str("kind", string(alert.Kind)).Msg("Alert sent")
}

// FormatAlert renders the chat message for an alert.
func FormatAlert(alert domain.StockAlert) string {
	switch alert.Kind {
	case domain.AlertLow:
		return fmt.Sprintf("[WARNING] Machine %s: low stock (%s)", alert.MachineID, alert.At.Format("15:04:05"))
	case domain.AlertOk:
		return fmt.Sprintf("[OK] Machine %s: stock sufficient (%s)", alert.MachineID, alert.At.Format("15:04:05"))
	default:
		return fmt.Sprintf("Machine %s: %s", alert.MachineID, alert.Kind)
	}
}
