package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// MessageBuilder helps construct outgoing alert messages.
type MessageBuilder struct {
	msg tgbotapi.MessageConfig
}

// NewMessageBuilder creates a plain-text message for chatID.
func NewMessageBuilder(chatID int64) *MessageBuilder {
	return &MessageBuilder{msg: tgbotapi.NewMessage(chatID, "")}
}

// WithText sets the message text.
func (b *MessageBuilder) WithText(text string) *MessageBuilder {
	b.msg.Text = text
	return b
}

// Silent delivers the message without a notification sound.
func (b *MessageBuilder) Silent() *MessageBuilder {
	b.msg.DisableNotification = true
	return b
}

// Build returns the final message config.
func (b *MessageBuilder) Build() tgbotapi.MessageConfig {
	return b.msg
}
