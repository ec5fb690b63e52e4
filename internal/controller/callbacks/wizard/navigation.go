package wizard

import (
	"context"
	"strconv"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/consultation_bot/internal/booking"
	"github.com/Freeeeeet/consultation_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/consultation_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/consultation_bot/internal/controller/state"
)

// ========================
// Wizard Step Handlers
// ========================

// HandleSelectType выбор типа консультации: wz_type:discovery
func HandleSelectType(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		arg, err := common.ParseArgFromCallback(callback.Data)
		if err != nil {
			common.HandleError(hc, err, "select_type")
			return
		}
		applyAndRender(hc, booking.SelectConsultation{Kind: booking.ConsultationKind(arg)}, "select_type")
	})
}

// HandlePrevMonth листает календарь назад
func HandlePrevMonth(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		applyAndRender(hc, booking.ShowPreviousMonth{}, "prev_month")
	})
}

// HandleNextMonth листает календарь вперёд
func HandleNextMonth(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		applyAndRender(hc, booking.ShowNextMonth{}, "next_month")
	})
}

// HandleSelectDate выбор дня: wz_date:2026-11-10
func HandleSelectDate(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		arg, err := common.ParseArgFromCallback(callback.Data)
		if err != nil {
			common.HandleError(hc, err, "select_date")
			return
		}
		date, err := booking.ParseDate(arg)
		if err != nil {
			common.HandleError(hc, common.ErrInvalidFormat, "select_date")
			return
		}
		applyAndRender(hc, booking.SelectDate{Date: date}, "select_date")
	})
}

// HandleSelectSlot выбор времени: wz_slot:2
func HandleSelectSlot(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		arg, err := common.ParseArgFromCallback(callback.Data)
		if err != nil {
			common.HandleError(hc, err, "select_slot")
			return
		}
		idx, err := strconv.Atoi(arg)
		slots := booking.Slots()
		if err != nil || idx < 0 || idx >= len(slots) {
			common.HandleError(hc, booking.ErrUnknownSlot, "select_slot")
			return
		}
		applyAndRender(hc, booking.SelectSlot{Slot: slots[idx]}, "select_slot")
	})
}

// HandleContinue переход к следующему шагу
func HandleContinue(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		applyAndRender(hc, booking.Continue{}, "continue")
	})
}

// HandleBack возврат на предыдущий шаг
func HandleBack(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		applyAndRender(hc, booking.Back{}, "back")
	})
}

// HandleRestart начинает запись заново в том же сообщении
func HandleRestart(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		update(hc, "restart", func(d *state.UserData) error {
			d.Session.Reset()
			return nil
		})
	})
}

// HandleClose закрывает мастер
func HandleClose(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := common.NewHandlerContext(ctx, b, callback, h)
	hc.CloseSession()

	h.Logger.Info("Booking wizard closed", zap.Int64("chat_id", hc.ChatID))

	if err := hc.EditMessage("👋 Booking closed. Use /book whenever you want to schedule a consultation.", nil); err != nil {
		h.Logger.Warn("Failed to edit message", zap.Error(err))
	}
	hc.Answer("")
}

// applyAndRender применяет событие и перерисовывает экран
func applyAndRender(hc *common.HandlerContext, e booking.Event, operation string) {
	update(hc, operation, func(d *state.UserData) error {
		return d.Session.Apply(e)
	})
}

// update изменяет мастер под блокировкой и редактирует сообщение с экраном
func update(hc *common.HandlerContext, operation string, fn func(*state.UserData) error) {
	text, kb, err := render(hc, fn)
	if err != nil {
		common.HandleError(hc, err, operation)
		return
	}

	if err := hc.EditMessage(text, kb); err != nil {
		hc.Handler.Logger.Error("Failed to render wizard screen",
			zap.String("operation", operation),
			zap.Int64("chat_id", hc.ChatID),
			zap.Error(err))
	}
	hc.Answer("")
}

func render(hc *common.HandlerContext, fn func(*state.UserData) error) (string, *models.InlineKeyboardMarkup, error) {
	var (
		text string
		kb   *models.InlineKeyboardMarkup
	)
	err := hc.Do(func(d *state.UserData) error {
		if err := fn(d); err != nil {
			return err
		}
		d.Sync()
		d.MessageID = hc.Message.ID
		text, kb = common.BuildScreen(*d)
		return nil
	})
	return text, kb, err
}
