package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"
)

// Telegram caps messages at 4096 characters; chunk a little below that.
const maxMessageLen = 4000

func (b *Bot) sendChattable(c tgbotapi.Chattable) {
	if _, err := b.send.Send(c); err != nil {
		log.WithError(err).Error("Failed to send Telegram message")
	}
}

func (b *Bot) reply(chatID int64, text string) {
	b.sendChattable(tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) replyWithKeyboard(chatID int64, text string, keyboard tgbotapi.ReplyKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboard
	b.sendChattable(msg)
}

// replyRemoveKeyboard sends text and takes the reply keyboard away, for the
// states that expect free-text input.
func (b *Bot) replyRemoveKeyboard(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(false)
	b.sendChattable(msg)
}

// sendLongMessage splits text into chunks of at most maxMessageLen runes,
// sent in order.
func (b *Bot) sendLongMessage(chatID int64, text string) {
	runes := []rune(text)
	for start := 0; start < len(runes); start += maxMessageLen {
		end := start + maxMessageLen
		if end > len(runes) {
			end = len(runes)
		}
		b.reply(chatID, string(runes[start:end]))
	}
}
