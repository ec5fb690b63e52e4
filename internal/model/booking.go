package model

import (
	"time"

	"github.com/google/uuid"
)

// ConsultationBooking запись на консультацию, принятая API
type ConsultationBooking struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Company          string    `json:"company"`
	Message          string    `json:"message"`
	ConsultationType string    `json:"consultation_type"`
	Date             time.Time `json:"date"` // только дата, DATE в БД
	TimeSlot         string    `json:"time_slot"`
	CreatedAt        time.Time `json:"created_at"`
}
