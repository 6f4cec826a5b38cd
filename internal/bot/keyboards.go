package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// mainMenuKeyboard is the five-action menu shown after the welcome prompt.
func (b *Bot) mainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	t := b.texts
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(t.Buttons.CreateGuest),
			tgbotapi.NewKeyboardButton(t.Buttons.DeleteGuest),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(t.Buttons.EditGuest),
			tgbotapi.NewKeyboardButton(t.Buttons.Recipe),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(t.Buttons.Quit),
		),
	)
}

// detailKeyboard offers the actions on a selected product.
func (b *Bot) detailKeyboard() tgbotapi.ReplyKeyboardMarkup {
	t := b.texts
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(t.Buttons.Add),
			tgbotapi.NewKeyboardButton(t.Buttons.Remove),
			tgbotapi.NewKeyboardButton(t.Buttons.List),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(t.Buttons.QuitDetail),
		),
	)
}

// guestKeyboard lists the remaining guest pool, one per row, plus the
// none/done row.
func (b *Bot) guestKeyboard(names []string) tgbotapi.ReplyKeyboardMarkup {
	t := b.texts

	rows := make([][]tgbotapi.KeyboardButton, 0, len(names)+1)
	for _, name := range names {
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(name)))
	}
	rows = append(rows, tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(t.Buttons.None),
		tgbotapi.NewKeyboardButton(t.Buttons.Done),
	))
	return tgbotapi.NewReplyKeyboard(rows...)
}
