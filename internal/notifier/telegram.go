package notifier

import (
	"fmt"

	"gopkg.in/telebot.v4"
)

// TelegramSender mirrors notifications to a fixed Telegram chat. It is
// the secondary delivery channel: the in-app queue never depends on it.
type TelegramSender struct {
	bot    *telebot.Bot
	chatID int64
}

// NewTelegramSender creates a sender for the given chat.
func NewTelegramSender(bot *telebot.Bot, chatID int64) *TelegramSender {
	return &TelegramSender{bot: bot, chatID: chatID}
}

// Send delivers one notification as a single Markdown message.
func (s *TelegramSender) Send(title, body string) error {
	message := fmt.Sprintf("*%s*\n\n%s", title, body)
	if _, err := s.bot.Send(telebot.ChatID(s.chatID), message, telebot.ModeMarkdown); err != nil {
		return fmt.Errorf("failed to send telegram alert: %w", err)
	}
	return nil
}
