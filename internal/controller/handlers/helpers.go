package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/consultation_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/consultation_bot/internal/controller/state"
)

// sendScreen отправляет экран мастера новым сообщением и запоминает его ID.
// Предыдущее сообщение мастера удаляется, чтобы в чате оставалась одна актуальная клавиатура.
func (h *Handlers) sendScreen(ctx context.Context, b *bot.Bot, chatID int64) {
	var (
		text     string
		kb       *models.InlineKeyboardMarkup
		previous int
	)
	err := h.stateManager.Do(chatID, func(d *state.UserData) error {
		d.Sync()
		previous = d.MessageID
		text, kb = common.BuildScreen(*d)
		return nil
	})
	if err != nil {
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	if previous != 0 {
		if _, err := b.DeleteMessage(ctx, &bot.DeleteMessageParams{ChatID: chatID, MessageID: previous}); err != nil {
			h.logger.Debug("Failed to delete previous wizard message",
				zap.Int64("chat_id", chatID),
				zap.Error(err))
		}
	}

	msg, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: kb,
	})
	if err != nil {
		h.logger.Error("Failed to send wizard screen",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		return
	}

	_ = h.stateManager.Do(chatID, func(d *state.UserData) error {
		d.MessageID = msg.ID
		return nil
	})
}
