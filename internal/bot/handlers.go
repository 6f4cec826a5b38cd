package bot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/mkl159/StockToPlate/internal/grocy"
	"github.com/mkl159/StockToPlate/internal/guests"
	"github.com/mkl159/StockToPlate/internal/metrics"
	"github.com/mkl159/StockToPlate/internal/search"
	"github.com/mkl159/StockToPlate/pkg/models"
)

const (
	actionAdd    = "add"
	actionRemove = "remove"
)

// handleSearchEntry runs the free-text product search for a chat with no
// active session. A stock fetch failure is reported as unavailability, not
// as an empty inventory.
func (b *Bot) handleSearchEntry(chatID int64, query string) {
	t := b.texts

	stock, err := b.inventory.FetchStock()
	if err != nil {
		b.reply(chatID, t.NoStockFound)
		return
	}

	found := search.Filter(stock, query)
	if len(found) == 0 {
		b.reply(chatID, fmt.Sprintf(t.NoMatch, query)+"\n"+t.StartMenuLabel)
		return
	}

	s := b.sessions.Start(chatID, models.StateSearchResults)
	s.SearchResults = found

	var sb strings.Builder
	for i, p := range found {
		sb.WriteString(fmt.Sprintf(t.SearchLine, i+1, p.ProductName, p.Amount, strings.Join(p.Barcodes, ", ")))
	}
	sb.WriteString("\n")
	sb.WriteString(t.SearchFooter)
	b.reply(chatID, sb.String())
}

func (b *Bot) handleMainMenu(s *models.Session, chatID int64, text string) {
	t := b.texts

	switch text {
	case t.Buttons.CreateGuest:
		b.replyRemoveKeyboard(chatID, t.AskGuestName)
		s.State = models.StateCreateGuest

	case t.Buttons.DeleteGuest:
		b.replyRemoveKeyboard(chatID, t.AskGuestDelete)
		s.State = models.StateDeleteGuest

	case t.Buttons.EditGuest:
		list, err := b.guests.List()
		if err != nil {
			log.WithError(err).Error("Failed to read guest store")
			b.replyWithKeyboard(chatID, t.GuestStoreError, b.mainMenuKeyboard())
			return
		}
		if len(list) == 0 {
			b.replyWithKeyboard(chatID, t.NoGuests, b.mainMenuKeyboard())
			return
		}
		var sb strings.Builder
		sb.WriteString(t.GuestListHeader)
		sb.WriteString("\n")
		for _, g := range list {
			sb.WriteString(fmt.Sprintf(t.GuestListLine, g.Name, g.UnsupportedFoods))
		}
		sb.WriteString("\n")
		sb.WriteString(t.GuestEditHint)
		b.replyRemoveKeyboard(chatID, sb.String())
		s.State = models.StateEditGuest

	case t.Buttons.Recipe:
		b.replyRemoveKeyboard(chatID, t.AskNbGuests)
		s.State = models.StateRecipeGuestCount

	case t.Buttons.Quit:
		b.replyRemoveKeyboard(chatID, t.Goodbye)
		b.sessions.End(chatID)

	default:
		b.replyWithKeyboard(chatID, t.InvalidChoice, b.mainMenuKeyboard())
	}
}

func (b *Bot) handleCreateGuest(s *models.Session, chatID int64, text string) {
	t := b.texts

	var msg string
	switch err := b.guests.Add(text); {
	case errors.Is(err, guests.ErrAlreadyExists):
		msg = fmt.Sprintf(t.GuestExists, text)
	case err != nil:
		log.WithError(err).Error("Failed to add guest")
		msg = t.GuestStoreError
	default:
		msg = fmt.Sprintf(t.GuestAdded, text)
	}

	b.replyWithKeyboard(chatID, msg, b.mainMenuKeyboard())
	s.State = models.StateMainMenu
}

func (b *Bot) handleDeleteGuest(s *models.Session, chatID int64, text string) {
	t := b.texts

	var msg string
	switch err := b.guests.Remove(text); {
	case errors.Is(err, guests.ErrNotFound):
		msg = fmt.Sprintf(t.GuestNotFound, text)
	case err != nil:
		log.WithError(err).Error("Failed to remove guest")
		msg = t.GuestStoreError
	default:
		msg = fmt.Sprintf(t.GuestRemoved, text)
	}

	b.replyWithKeyboard(chatID, msg, b.mainMenuKeyboard())
	s.State = models.StateMainMenu
}

// handleEditGuest expects "<name> <foods>"; the first whitespace splits the
// guest name from the free-text food list.
func (b *Bot) handleEditGuest(s *models.Session, chatID int64, text string) {
	t := b.texts

	if !strings.Contains(text, " ") {
		b.reply(chatID, t.GuestEditFormat)
		return
	}
	parts := strings.SplitN(text, " ", 2)
	name := parts[0]
	foods := strings.TrimSpace(parts[1])

	var msg string
	switch err := b.guests.SetUnsupportedFoods(name, foods); {
	case errors.Is(err, guests.ErrNotFound):
		msg = fmt.Sprintf(t.GuestNotFound, name)
	case err != nil:
		log.WithError(err).Error("Failed to update guest")
		msg = t.GuestStoreError
	default:
		msg = fmt.Sprintf(t.GuestModified, name)
	}

	b.replyWithKeyboard(chatID, msg, b.mainMenuKeyboard())
	s.State = models.StateMainMenu
}

func (b *Bot) handleRecipeGuestCount(s *models.Session, chatID int64, text string) {
	t := b.texts

	if !isDigits(text) {
		b.replyWithKeyboard(chatID, t.InvalidCount, b.mainMenuKeyboard())
		s.State = models.StateMainMenu
		return
	}
	nb, _ := strconv.Atoi(text)
	s.NbGuests = nb

	list, err := b.guests.List()
	if err != nil {
		log.WithError(err).Error("Failed to read guest store")
	}
	if len(list) == 0 {
		b.replyRemoveKeyboard(chatID, t.AskNoteNoGuests)
		s.State = models.StateRecipeNote
		return
	}

	names := make([]string, len(list))
	for i, g := range list {
		names[i] = g.Name
	}
	s.GuestPool = names
	s.SelectedGuests = nil

	b.replyWithKeyboard(chatID, fmt.Sprintf(t.SelectGuests, nb), b.guestKeyboard(names))
	s.State = models.StateRecipeGuestSelect
}

// handleRecipeGuestSelect moves guests from the pool to the selection until
// the requested count is reached or the user types done/none.
func (b *Bot) handleRecipeGuestSelect(s *models.Session, chatID int64, text string) {
	t := b.texts
	lower := strings.ToLower(text)

	switch lower {
	case strings.ToLower(t.Buttons.Done):
		b.replyRemoveKeyboard(chatID, t.AskNote)
		s.State = models.StateRecipeNote

	case strings.ToLower(t.Buttons.None):
		if len(s.SelectedGuests) == 0 {
			b.replyRemoveKeyboard(chatID, t.AskNoteNoSelection)
		} else {
			b.replyRemoveKeyboard(chatID, fmt.Sprintf(t.GuestsChosen, strings.Join(s.SelectedGuests, ", ")))
		}
		s.State = models.StateRecipeNote

	default:
		idx := -1
		for i, name := range s.GuestPool {
			if strings.ToLower(name) == lower {
				idx = i
				break
			}
		}
		if idx < 0 {
			b.reply(chatID, t.GuestUnknown)
			return
		}

		name := s.GuestPool[idx]
		s.GuestPool = append(s.GuestPool[:idx], s.GuestPool[idx+1:]...)
		s.SelectedGuests = append(s.SelectedGuests, name)

		if len(s.SelectedGuests) >= s.NbGuests {
			b.replyRemoveKeyboard(chatID, t.SelectionFull)
			s.State = models.StateRecipeNote
			return
		}
		b.reply(chatID, fmt.Sprintf(t.GuestSelected, name))
	}
}

// handleRecipeNote closes the recipe flow: preview the stock, call the
// generator with the full context, send the result in chunks.
func (b *Bot) handleRecipeNote(s *models.Session, chatID int64, text string) {
	t := b.texts
	s.Note = text

	stock, err := b.inventory.FetchStock()
	if err != nil {
		b.reply(chatID, t.NoStockFound)
	} else {
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf(t.StockPreviewHeader, len(stock)))
		sb.WriteString("\n")
		for _, p := range stock[:min(5, len(stock))] {
			sb.WriteString(fmt.Sprintf(t.StockPreviewLine, p.ProductName, p.Amount, strings.Join(p.Barcodes, ", ")))
		}
		b.reply(chatID, sb.String())
	}

	b.reply(chatID, t.RecipeGeneration)

	recipe, err := b.recipes.Generate(stock, b.selectedGuests(s), s.Note, s.NbGuests)
	if err != nil {
		metrics.RecipeGenerations.WithLabelValues("error").Inc()
		log.WithError(err).Error("Recipe generation failed")
		b.reply(chatID, t.RecipeError)
	} else {
		metrics.RecipeGenerations.WithLabelValues("ok").Inc()
		b.sendLongMessage(chatID, recipe)
	}

	b.replyWithKeyboard(chatID, t.StartMenuLabel, b.mainMenuKeyboard())
	s.State = models.StateMainMenu
}

// selectedGuests resolves the selected names back to full guest records so
// the generator sees their unsupported foods.
func (b *Bot) selectedGuests(s *models.Session) []models.Guest {
	if len(s.SelectedGuests) == 0 {
		return nil
	}

	list, err := b.guests.List()
	if err != nil {
		log.WithError(err).Error("Failed to read guest store")
	}

	selected := make([]models.Guest, 0, len(s.SelectedGuests))
	for _, name := range s.SelectedGuests {
		found := models.Guest{Name: name}
		for _, g := range list {
			if strings.ToLower(g.Name) == strings.ToLower(name) {
				found = g
				break
			}
		}
		selected = append(selected, found)
	}
	return selected
}

func (b *Bot) handleSearchResults(s *models.Session, chatID int64, text string) {
	t := b.texts

	if !isDigits(text) {
		b.reply(chatID, t.InvalidNumber)
		return
	}
	idx, _ := strconv.Atoi(text)
	idx--
	if idx < 0 || idx >= len(s.SearchResults) {
		b.reply(chatID, t.InvalidIndex)
		return
	}

	sel := s.SearchResults[idx]
	s.SelectedProduct = &sel

	detail := fmt.Sprintf(t.ProductDetail,
		sel.ProductName, sel.Amount, sel.BestBeforeDate, strings.Join(sel.Barcodes, ", "))
	b.replyWithKeyboard(chatID, detail, b.detailKeyboard())
	s.State = models.StateSearchDetail
}

func (b *Bot) handleSearchDetail(s *models.Session, chatID int64, text string) {
	t := b.texts

	switch strings.ToLower(text) {
	case strings.ToLower(t.Buttons.QuitDetail):
		b.replyRemoveKeyboard(chatID, t.StartMenuLabel)
		b.sessions.End(chatID)

	case strings.ToLower(t.Buttons.List):
		log.WithField("product", s.SelectedProduct.ProductName).Info("Fictitious shopping-list addition")
		b.replyRemoveKeyboard(chatID, t.ProductToList)
		b.sessions.End(chatID)

	case strings.ToLower(t.Buttons.Add):
		s.PendingAction = actionAdd
		b.replyRemoveKeyboard(chatID, t.ChooseQuantity)
		s.State = models.StateSearchQuantity

	case strings.ToLower(t.Buttons.Remove):
		s.PendingAction = actionRemove
		b.replyRemoveKeyboard(chatID, t.ChooseQuantity)
		s.State = models.StateSearchQuantity

	default:
		b.reply(chatID, t.InvalidChoice)
	}
}

// handleSearchQuantity applies the pending add/remove to the selected
// product. Removal clamps at zero; addition has no upper bound.
func (b *Bot) handleSearchQuantity(s *models.Session, chatID int64, text string) {
	t := b.texts

	if !isDigits(text) {
		b.reply(chatID, t.InvalidNumber)
		return
	}
	qty, _ := strconv.Atoi(text)

	sel := s.SelectedProduct
	newAmount := sel.Amount + float64(qty)
	if s.PendingAction == actionRemove {
		newAmount = sel.Amount - float64(qty)
		if newAmount < 0 {
			newAmount = 0
		}
	}

	switch err := b.inventory.SetQuantity(sel.ProductID, newAmount); {
	case errors.Is(err, grocy.ErrRejected):
		b.reply(chatID, t.UpdateRejected)
	case err != nil:
		b.reply(chatID, t.NoStockFound)
	default:
		sel.Amount = newAmount
		b.reply(chatID, t.ProductUpdated)
	}

	b.sessions.End(chatID)
}

// isDigits accepts ASCII digits only: no signs, no spaces.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
