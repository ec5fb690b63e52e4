package service

import "errors"

// ValidationError ошибка входных данных; Message отдаётся клиенту как есть
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var (
	ErrMissingFields       = &ValidationError{Message: "Missing required fields"}
	ErrInvalidEmail        = &ValidationError{Message: "Invalid email format"}
	ErrInvalidDate         = &ValidationError{Message: "Invalid date format"}
	ErrDateInPast          = &ValidationError{Message: "Booking date must be in the future"}
	ErrInvalidConsultation = &ValidationError{Message: "Invalid consultation type"}
	ErrInvalidTimeSlot     = &ValidationError{Message: "Invalid time slot"}
	ErrWeekend             = &ValidationError{Message: "Bookings are only available on weekdays"}
)

// IsValidation сообщает, что err вызвана входными данными
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
