// Package bot drives the conversation state machine over Telegram.
package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"github.com/mkl159/StockToPlate/internal/metrics"
	"github.com/mkl159/StockToPlate/pkg/locales"
	"github.com/mkl159/StockToPlate/pkg/models"
)

// Inventory is the slice of the Grocy client the conversation needs.
type Inventory interface {
	FetchStock() ([]models.StockItem, error)
	SetQuantity(productID string, newAmount float64) error
}

// RecipeGenerator produces a recipe text from the stock and guest context.
type RecipeGenerator interface {
	Generate(stock []models.StockItem, guests []models.Guest, note string, nbGuests int) (string, error)
}

// GuestStore persists the guest list.
type GuestStore interface {
	List() ([]models.Guest, error)
	Add(name string) error
	Remove(name string) error
	SetUnsupportedFoods(name, foods string) error
}

// sender is the part of the Telegram API the handlers use.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type handlerFunc func(s *models.Session, chatID int64, text string)

// Bot wires the Telegram transport to the conversation state machine.
type Bot struct {
	api       *tgbotapi.BotAPI
	send      sender
	texts     *locales.Texts
	guests    GuestStore
	inventory Inventory
	recipes   RecipeGenerator
	sessions  *Registry
	handlers  map[models.State]handlerFunc
}

// New connects to Telegram and builds the bot.
func New(token string, texts *locales.Texts, guests GuestStore, inventory Inventory, recipes RecipeGenerator) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	log.WithField("username", api.Self.UserName).Info("Authorized on Telegram")

	b := newBot(api, texts, guests, inventory, recipes)
	b.api = api
	return b, nil
}

// newBot builds the bot around an arbitrary sender; tests use it with a fake.
func newBot(send sender, texts *locales.Texts, guests GuestStore, inventory Inventory, recipes RecipeGenerator) *Bot {
	b := &Bot{
		send:      send,
		texts:     texts,
		guests:    guests,
		inventory: inventory,
		recipes:   recipes,
		sessions:  NewRegistry(),
	}

	// One handler per state; adding a state without a handler is caught at
	// dispatch, not silently fallen through.
	b.handlers = map[models.State]handlerFunc{
		models.StateMainMenu:          b.handleMainMenu,
		models.StateCreateGuest:       b.handleCreateGuest,
		models.StateDeleteGuest:       b.handleDeleteGuest,
		models.StateEditGuest:         b.handleEditGuest,
		models.StateRecipeGuestCount:  b.handleRecipeGuestCount,
		models.StateRecipeGuestSelect: b.handleRecipeGuestSelect,
		models.StateRecipeNote:        b.handleRecipeNote,
		models.StateSearchResults:     b.handleSearchResults,
		models.StateSearchDetail:      b.handleSearchDetail,
		models.StateSearchQuantity:    b.handleSearchQuantity,
	}
	return b
}

// Start consumes updates until ctx is cancelled. The backlog accumulated
// while the process was offline is discarded before handling anything.
func (b *Bot) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	updates.Clear()

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case update := <-updates:
			if update.Message != nil {
				b.handleMessage(update.Message)
			}
		}
	}
}

// handleMessage routes one inbound text message: /start restarts from any
// state, free text without a session enters the search flow, everything
// else goes to the handler of the session's current state.
func (b *Bot) handleMessage(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	text := strings.TrimSpace(msg.Text)

	if msg.IsCommand() {
		if msg.Command() == "start" {
			b.showWelcome(chatID)
		}
		return
	}
	if text == "" {
		b.showWelcome(chatID)
		return
	}

	s := b.sessions.Get(chatID)
	if s == nil {
		metrics.MessagesTotal.WithLabelValues("search_entry").Inc()
		b.handleSearchEntry(chatID, text)
		return
	}

	metrics.MessagesTotal.WithLabelValues(s.State.String()).Inc()

	handler, ok := b.handlers[s.State]
	if !ok {
		log.WithFields(log.Fields{
			"chat_id": chatID,
			"state":   s.State.String(),
		}).Error("No handler for state, dropping session")
		b.sessions.End(chatID)
		return
	}
	handler(s, chatID, text)
}

// showWelcome resets the chat to a fresh session at the main menu.
func (b *Bot) showWelcome(chatID int64) {
	b.sessions.Start(chatID, models.StateMainMenu)
	b.replyWithKeyboard(chatID, b.texts.Welcome, b.mainMenuKeyboard())
}
