package formatting

import (
	"fmt"

	"github.com/Freeeeeet/consultation_bot/internal/booking"
)

// StatusDisplay содержит emoji и текст для отображения статуса
type StatusDisplay struct {
	Emoji string
	Text  string
}

// GetSubmissionStatusDisplay возвращает emoji и текст для статуса отправки
func GetSubmissionStatusDisplay(s booking.SubmissionState) StatusDisplay {
	switch s.Status {
	case booking.SubmissionSubmitting:
		return StatusDisplay{Emoji: "⏳", Text: "Booking..."}
	case booking.SubmissionFailed:
		return StatusDisplay{Emoji: "❌", Text: s.Error}
	case booking.SubmissionSucceeded:
		return StatusDisplay{Emoji: "✅", Text: "Booked"}
	default:
		return StatusDisplay{}
	}
}

// StepIndicator "Step 2 of 3"
func StepIndicator(step booking.Step) string {
	if step == booking.StepConfirmed {
		return "Booking confirmed"
	}
	return fmt.Sprintf("Step %d of 3", step.Number())
}
