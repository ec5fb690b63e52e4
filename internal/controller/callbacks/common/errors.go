package common

import (
	"errors"

	"github.com/Freeeeeet/consultation_bot/internal/booking"
	"github.com/Freeeeeet/consultation_bot/internal/controller/state"
)

// Общие ошибки для обработчиков
var (
	ErrNoMessage     = errors.New("no message in callback")
	ErrInvalidFormat = errors.New("invalid callback format")
)

// ErrorMessage возвращает пользовательское сообщение для ошибки
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, state.ErrNoSession):
		return "⌛ This booking session has expired. Use /book to start again."
	case errors.Is(err, booking.ErrDateUnavailable):
		return "⛔ This date is not available. Please pick a weekday from today on."
	case errors.Is(err, booking.ErrConsultationRequired):
		return "☝️ Please select a consultation type first"
	case errors.Is(err, booking.ErrDateTimeRequired):
		return "☝️ Please select a date and a time"
	case errors.Is(err, booking.ErrDateRequired):
		return "☝️ Please pick a date first"
	case errors.Is(err, booking.ErrUnknownSlot):
		return "❌ Unknown time slot"
	case errors.Is(err, booking.ErrUnknownConsultation):
		return "❌ Unknown consultation type"
	case errors.Is(err, booking.ErrSubmitInFlight):
		return "⏳ Your booking is already being submitted"
	case errors.Is(err, booking.ErrAlreadyConfirmed):
		return "✅ This booking is already confirmed"
	case errors.Is(err, booking.ErrWrongStep):
		return "This button is no longer active"
	case errors.Is(err, booking.ErrMissingFields), errors.Is(err, booking.ErrInvalidEmail):
		return "❌ " + booking.FailureMessage(err)
	case errors.Is(err, ErrNoMessage):
		return "❌ Could not process the message"
	case errors.Is(err, ErrInvalidFormat):
		return "❌ Invalid data format"
	default:
		return "❌ Something went wrong"
	}
}
