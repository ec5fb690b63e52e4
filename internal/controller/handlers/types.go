package handlers

import (
	"github.com/Freeeeeet/consultation_bot/internal/controller/state"
	"go.uber.org/zap"
)

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	stateManager *state.Manager
	logger       *zap.Logger
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(stateManager *state.Manager, logger *zap.Logger) *Handlers {
	return &Handlers{
		stateManager: stateManager,
		logger:       logger,
	}
}
