package telegramimpl

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Send sends a text message to the configured chat
func (tg *TelegramImpl) Send(message string) {
	tg.Logger.Info("Notify", "message", message)
	if tg.TgBot == nil || tg.ChatID == 0 {
		return
	}

	msg := tgbotapi.NewMessage(tg.ChatID, tg.format(message))
	msg.DisableWebPagePreview = true
	if _, err := tg.TgBot.Send(msg); err != nil {
		tg.Logger.Error("Error sending message to chat",
			"chatID", tg.ChatID,
			"error", err)
	}
}
