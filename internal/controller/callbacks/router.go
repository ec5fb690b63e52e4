package callbacks

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/consultation_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/consultation_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/consultation_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/consultation_bot/internal/controller/callbacks/wizard"
)

// ========================
// Main Callback Router
// ========================

// Route распределяет callback query по соответствующим обработчикам
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	data := callback.Data

	h.Logger.Debug("Routing callback",
		zap.String("data", data),
		zap.Int64("user_id", callback.From.ID),
		zap.String("user_name", callback.From.FirstName))

	switch {
	case data == keyboard.NoopData:
		// No operation - просто подтверждаем callback
		common.AnswerCallback(ctx, b, callback.ID, "")

	// ===== Step 1: consultation type =====
	case strings.HasPrefix(data, common.WizardType):
		wizard.HandleSelectType(ctx, b, callback, h)

	// ===== Step 2: date and time =====
	case data == common.WizardPrevMonth:
		wizard.HandlePrevMonth(ctx, b, callback, h)
	case data == common.WizardNextMonth:
		wizard.HandleNextMonth(ctx, b, callback, h)
	case strings.HasPrefix(data, common.WizardDate):
		wizard.HandleSelectDate(ctx, b, callback, h)
	case strings.HasPrefix(data, common.WizardSlot):
		wizard.HandleSelectSlot(ctx, b, callback, h)

	// ===== Step 3: details =====
	case strings.HasPrefix(data, common.WizardEdit):
		wizard.HandleEditField(ctx, b, callback, h)
	case data == common.WizardSkip:
		wizard.HandleSkip(ctx, b, callback, h)
	case data == common.WizardSubmit:
		wizard.HandleSubmit(ctx, b, callback, h)

	// ===== Navigation =====
	case data == common.WizardContinue:
		wizard.HandleContinue(ctx, b, callback, h)
	case data == common.WizardBack:
		wizard.HandleBack(ctx, b, callback, h)
	case data == common.WizardRestart:
		wizard.HandleRestart(ctx, b, callback, h)
	case data == common.WizardClose:
		wizard.HandleClose(ctx, b, callback, h)

	default:
		h.Logger.Warn("Unknown callback data",
			zap.String("data", data),
			zap.Int64("user_id", callback.From.ID))
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Unknown action")
	}
}
