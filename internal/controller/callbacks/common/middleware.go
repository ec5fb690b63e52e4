package common

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/consultation_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/consultation_bot/internal/controller/state"
)

// WithSession создаёт HandlerContext и проверяет, что у чата открыт мастер записи
// При ошибке автоматически отвечает пользователю
func WithSession(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	handler func(*HandlerContext),
) {
	hc := NewHandlerContext(ctx, b, callback, h)

	if hc.Message == nil {
		h.Logger.Error("Callback without message",
			zap.Int64("telegram_id", hc.TelegramID))
		hc.AnswerAlert(ErrorMessage(ErrNoMessage))
		return
	}

	if !h.StateManager.Exists(hc.ChatID) {
		h.Logger.Info("Callback for an expired session",
			zap.Int64("chat_id", hc.ChatID),
			zap.String("data", callback.Data))
		hc.AnswerAlert(ErrorMessage(state.ErrNoSession))
		return
	}

	handler(hc)
}

// HandleError обрабатывает ошибку и отправляет ответ пользователю
func HandleError(hc *HandlerContext, err error, operation string) {
	hc.Handler.Logger.Warn("Operation failed",
		zap.String("operation", operation),
		zap.Int64("chat_id", hc.ChatID),
		zap.Error(err))
	hc.AnswerAlert(ErrorMessage(err))
}
