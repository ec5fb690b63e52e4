package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/consultation_bot/internal/booking"
	"github.com/Freeeeeet/consultation_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/consultation_bot/internal/controller/state"
)

// HandleTextMessage принимает контактные данные, которые бот запросил на шаге EnterDetails
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	// Игнорируем команды (они обрабатываются другими handlers)
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	chatID := update.Message.Chat.ID

	var awaiting state.UserState
	err := h.stateManager.Do(chatID, func(d *state.UserData) error {
		awaiting = d.State
		return d.Accept(update.Message.Text)
	})

	switch {
	case errors.Is(err, state.ErrNoSession), errors.Is(err, state.ErrNotAwaiting):
		h.logger.Debug("No input expected, ignoring message",
			zap.Int64("chat_id", chatID),
			zap.String("state", string(awaiting)))
		h.sendMessage(ctx, b, chatID, "Use /book to book a consultation.")
		return
	case errors.Is(err, booking.ErrInvalidEmail), errors.Is(err, booking.ErrMissingFields):
		field, _ := awaiting.Field()
		h.sendError(ctx, b, chatID, common.ErrorMessage(err)+"\n\n"+common.FieldPrompt(field))
		return
	case err != nil:
		h.logger.Warn("Failed to accept contact input",
			zap.Int64("chat_id", chatID),
			zap.String("state", string(awaiting)),
			zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	h.logger.Info("Contact field received",
		zap.Int64("chat_id", chatID),
		zap.String("state", string(awaiting)))

	h.sendScreen(ctx, b, chatID)
}
