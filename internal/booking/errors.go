package booking

import "errors"

var (
	ErrUnknownConsultation  = errors.New("unknown consultation type")
	ErrConsultationRequired = errors.New("select a consultation type first")
	ErrDateRequired         = errors.New("select a date first")
	ErrDateTimeRequired     = errors.New("select a date and time first")
	ErrDateUnavailable      = errors.New("date is not available")
	ErrUnknownSlot          = errors.New("unknown time slot")
	ErrWrongStep            = errors.New("action is not available at this step")
	ErrSubmitInFlight       = errors.New("booking is already being submitted")
	ErrAlreadyConfirmed     = errors.New("booking is already confirmed")
	ErrNotSubmitting        = errors.New("no submission in progress")
	ErrMissingFields        = errors.New("missing required fields")
	ErrInvalidEmail         = errors.New("invalid email format")
)

// Тексты, которые видит пользователь
const (
	MissingFieldsMessage = "Please fill in your name, email and company"
	InvalidEmailMessage  = "Invalid email format"
)

// GenericSubmitError сообщение для сетевых и серверных сбоев
const GenericSubmitError = "We couldn't complete your booking right now. Please try again."

// UserMessager ошибка, текст которой можно показать пользователю
type UserMessager interface {
	UserMessage() string
}

// FailureMessage превращает ошибку отправки в текст для пользователя
func FailureMessage(err error) string {
	if err == nil {
		return ""
	}
	var um UserMessager
	if errors.As(err, &um) && um.UserMessage() != "" {
		return um.UserMessage()
	}
	switch {
	case errors.Is(err, ErrMissingFields):
		return MissingFieldsMessage
	case errors.Is(err, ErrInvalidEmail):
		return InvalidEmailMessage
	}
	return GenericSubmitError
}
