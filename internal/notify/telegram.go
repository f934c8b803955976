// Package notify implements the outbound delivery channel for finished
// alert payloads.
package notify

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"marketalert/internal/alert"
)

// Telegram delivers alert payloads to a Telegram chat.
type Telegram struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegram creates a Telegram notifier for the given bot token and chat.
func NewTelegram(botToken string, chatID int64) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, err
	}
	return &Telegram{bot: bot, chatID: chatID}, nil
}

// Send delivers a formatted alert message to the configured chat.
func (t *Telegram) Send(_ context.Context, payload *alert.Payload) error {
	msg := tgbotapi.NewMessage(t.chatID, FormatAlert(payload))
	msg.ParseMode = tgbotapi.ModeMarkdown
	_, err := t.bot.Send(msg)
	return err
}

// Noop is a delivery channel that acknowledges everything without sending.
// Used when no channel is configured.
type Noop struct{}

// Send implements alert.Notifier.
func (Noop) Send(context.Context, *alert.Payload) error { return nil }
