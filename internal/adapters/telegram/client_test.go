package telegram

import (
	"VendingBus/internal/core/domain"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSender records the messages it is asked to send.
type fakeSender struct {
	mu   sync.Mutex
	sent []tgbotapi.MessageConfig
	err  error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, msg)
	}
	return tgbotapi.Message{}, f.err
}

func (f *fakeSender) messages() []tgbotapi.MessageConfig {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]tgbotapi.MessageConfig(nil), f.sent...)
}

var at = time.Date(2026, 3, 1, 14, 5, 9, 0, time.UTC)

func TestAlertNotifier_SendsQueuedAlertsInOrder(t *testing.T) {
	nopLogger := zerolog.Nop()
	sender := &fakeSender{}
	n := NewAlertNotifier(sender, -100, 4, &nopLogger)
	ctx := context.Background()

	require.NoError(t, n.Notify(ctx, domain.StockAlert{Kind: domain.AlertLow, MachineID: "001", At: at}))
	require.NoError(t, n.Notify(ctx, domain.StockAlert{Kind: domain.AlertOk, MachineID: "001", At: at}))
	n.Close()

	require.NoError(t, n.Run(ctx))

	sent := sender.messages()
	require.Len(t, sent, 2)
	assert.Equal(t, int64(-100), sent[0].ChatID)
	assert.Equal(t, "[WARNING] Machine 001: low stock (14:05:09)", sent[0].Text)
	assert.Equal(t, "[OK] Machine 001: stock sufficient (14:05:09)", sent[1].Text)
	assert.False(t, sent[0].DisableNotification)
	assert.True(t, sent[1].DisableNotification)
}

func TestAlertNotifier_NotifyNeverBlocks(t *testing.T) {
	nopLogger := zerolog.Nop()
	n := NewAlertNotifier(&fakeSender{}, 1, 1, &nopLogger)
	ctx := context.Background()

	require.NoError(t, n.Notify(ctx, domain.StockAlert{Kind: domain.AlertLow, MachineID: "001"}))
	err := n.Notify(ctx, domain.StockAlert{Kind: domain.AlertLow, MachineID: "002"})
	assert.ErrorIs(t, err, ErrAlertQueueFull)

	n.Close()
	n.Close() // second close is harmless
	assert.ErrorIs(t, n.Notify(ctx, domain.StockAlert{}), ErrNotifierClosed)
}

func TestAlertNotifier_SendFailureIsDropped(t *testing.T) {
	nopLogger := zerolog.Nop()
	sender := &fakeSender{err: errors.New("telegram down")}
	n := NewAlertNotifier(sender, 1, 2, &nopLogger)
	ctx := context.Background()

	require.NoError(t, n.Notify(ctx, domain.StockAlert{Kind: domain.AlertLow, MachineID: "001"}))
	n.Close()

	assert.NoError(t, n.Run(ctx))
	assert.Len(t, sender.messages(), 1)
}

func TestAlertNotifier_RunStopsOnCancel(t *testing.T) {
	nopLogger := zerolog.Nop()
	n := NewAlertNotifier(&fakeSender{}, 1, 2, &nopLogger)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, n.Run(ctx), context.Canceled)
}

func TestMessageBuilder(t *testing.T) {
	msg := NewMessageBuilder(42).
		WithText("[WARNING] low").
		Silent().
		Build()

	assert.Equal(t, int64(42), msg.ChatID)
	assert.Equal(t, "[WARNING] low", msg.Text)
	assert.Empty(t, msg.ParseMode)
	assert.True(t, msg.DisableNotification)
}
