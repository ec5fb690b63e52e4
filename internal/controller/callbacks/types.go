package callbacks

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/consultation_bot/internal/controller/callbacks/callbacktypes"
)

// Handler обертка для callbacktypes.Handler с методами
type Handler struct {
	*callbacktypes.Handler
}

// StateManager интерфейс для управления мастерами записи
type StateManager = callbacktypes.StateManager

// NewHandler создаёт новый обработчик callbacks с зависимостями
func NewHandler(
	stateManager StateManager,
	submitter callbacktypes.Submitter,
	logger *zap.Logger,
) *Handler {
	inner := &callbacktypes.Handler{
		StateManager: stateManager,
		Submitter:    submitter,
		Logger:       logger,
	}
	return &Handler{Handler: inner}
}

// HandleCallbackQuery - главный обработчик callback queries
func (h *Handler) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}

	callback := update.CallbackQuery

	h.Logger.Info("Callback received",
		zap.String("data", callback.Data),
		zap.Int64("user_id", callback.From.ID),
	)

	// Вызываем роутер
	Route(ctx, b, callback, h.Handler)
}
