package handlers

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	name := "there"
	if update.Message.From != nil && update.Message.From.FirstName != "" {
		name = update.Message.From.FirstName
	}

	welcomeText := fmt.Sprintf(
		"👋 Hi, %s!\n\n"+
			"I can book a consultation with our team for you.\n"+
			"Pick a consultation type, a weekday and a time, leave your contact details and you're done.\n\n"+
			"Commands:\n"+
			"/book - Book a consultation\n"+
			"/cancel - Cancel the current booking\n"+
			"/help - Help",
		name,
	)

	h.sendMessage(ctx, b, update.Message.Chat.ID, welcomeText)
	h.HandleBook(ctx, b, update)
}

// HandleBook открывает новый мастер записи
func (h *Handlers) HandleBook(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID
	h.stateManager.Open(chatID)

	h.logger.Info("Booking wizard opened", zap.Int64("chat_id", chatID))

	h.sendScreen(ctx, b, chatID)
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	helpText := "📚 How booking works:\n\n" +
		"1. Choose a consultation type: Discovery Call (30 min), Strategy Session (60 min) or Technical Review (45 min).\n" +
		"2. Pick a weekday from today on and a time slot.\n" +
		"3. Send your name, email and company, optionally a message, and confirm.\n\n" +
		"/book - Start a new booking\n" +
		"/cancel - Cancel the current booking\n" +
		"/help - Show this help"

	h.sendMessage(ctx, b, update.Message.Chat.ID, helpText)
}

// HandleCancel обрабатывает команду /cancel - закрывает текущий мастер
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID
	if !h.stateManager.Close(chatID) {
		h.sendMessage(ctx, b, chatID, "❌ There is no booking in progress.")
		return
	}

	h.logger.Info("Booking wizard cancelled", zap.Int64("chat_id", chatID))
	h.sendMessage(ctx, b, chatID, "✅ Booking cancelled.\n\nUse /book to start again.")
}
