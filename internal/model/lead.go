package model

import (
	"time"

	"github.com/google/uuid"
)

// ContactMessage сообщение из контактной формы
type ContactMessage struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Company   string    `json:"company"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// GrowthPlanRequest заявка на план роста
type GrowthPlanRequest struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Company   string    `json:"company"`
	Budget    string    `json:"budget"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
