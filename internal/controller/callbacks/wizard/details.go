package wizard

import (
	"context"
	"errors"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/consultation_bot/internal/booking"
	"github.com/Freeeeeet/consultation_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/consultation_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/consultation_bot/internal/controller/state"
)

const resultRenderTimeout = 10 * time.Second

// HandleEditField просит заново ввести поле контактов: wz_edit:email
func HandleEditField(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		arg, err := common.ParseArgFromCallback(callback.Data)
		if err != nil {
			common.HandleError(hc, err, "edit_field")
			return
		}
		field, err := booking.ParseContactField(arg)
		if err != nil {
			common.HandleError(hc, common.ErrInvalidFormat, "edit_field")
			return
		}
		update(hc, "edit_field", func(d *state.UserData) error {
			return d.Await(field)
		})
	})
}

// HandleSkip пропускает необязательное сообщение
func HandleSkip(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		update(hc, "skip_message", func(d *state.UserData) error {
			if err := d.Skip(); err != nil {
				return booking.ErrWrongStep
			}
			return nil
		})
	})
}

// HandleSubmit отправляет заявку. Сама отправка идёт в фоне, экран обновится по её завершении.
func HandleSubmit(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		started := func(d state.UserData) {
			h.Logger.Info("Booking submission started", zap.Int64("chat_id", hc.ChatID))
			text, kb := common.BuildScreen(d)
			if err := hc.EditMessage(text, kb); err != nil {
				h.Logger.Warn("Failed to render submitting screen", zap.Error(err))
			}
		}
		done := func(d state.UserData) {
			// результат показываем и во время остановки бота
			renderCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), resultRenderTimeout)
			defer cancel()

			text, kb := common.BuildScreen(d)
			if err := common.EditScreen(renderCtx, b, hc.ChatID, d.MessageID, text, kb); err != nil {
				h.Logger.Error("Failed to render submission result",
					zap.Int64("chat_id", hc.ChatID),
					zap.Error(err))
			}
			h.Logger.Info("Booking submission finished",
				zap.Int64("chat_id", hc.ChatID),
				zap.String("status", d.Session.Submission().Status.String()))
		}

		err := h.StateManager.Submit(ctx, hc.ChatID, h.Submitter.Submit, started, done)
		switch {
		case errors.Is(err, booking.ErrSubmitInFlight), errors.Is(err, booking.ErrAlreadyConfirmed):
			// повторное нажатие: второй запрос не отправляется
			hc.Answer(common.ErrorMessage(err))
		case errors.Is(err, booking.ErrMissingFields), errors.Is(err, booking.ErrInvalidEmail):
			// ошибка уже записана в сессию, показываем её на экране
			update(hc, "submit", func(*state.UserData) error { return nil })
		case err != nil:
			common.HandleError(hc, err, "submit")
		default:
			hc.Answer("⏳ Booking...")
		}
	})
}
