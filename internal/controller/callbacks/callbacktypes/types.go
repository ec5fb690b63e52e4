package callbacktypes

import (
	"context"

	"go.uber.org/zap"

	"github.com/Freeeeeet/consultation_bot/internal/booking"
	"github.com/Freeeeeet/consultation_bot/internal/controller/state"
)

// StateManager интерфейс для управления мастерами записи
type StateManager interface {
	Open(chatID int64)
	Close(chatID int64) bool
	Exists(chatID int64) bool
	Do(chatID int64, fn func(*state.UserData) error) error
	Submit(ctx context.Context, chatID int64, submit state.SubmitFunc, started, done func(state.UserData)) error
}

// Submitter отправка заявки на бронирование
type Submitter interface {
	Submit(ctx context.Context, req *booking.Request) (*booking.Response, error)
}

// Handler содержит общие зависимости для всех callback handlers
type Handler struct {
	StateManager StateManager
	Submitter    Submitter
	Logger       *zap.Logger
}
