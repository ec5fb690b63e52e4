package state

import (
	"time"

	"github.com/Freeeeeet/consultation_bot/internal/booking"
)

// UserState что бот ждёт от пользователя текстом
type UserState string

const (
	StateNone UserState = "" // Нет активного ввода

	// Ввод контактов на шаге EnterDetails
	StateEnterName    UserState = "enter_name"
	StateEnterEmail   UserState = "enter_email"
	StateEnterCompany UserState = "enter_company"
	StateEnterMessage UserState = "enter_message"
)

// StateForField состояние ввода для поля контактов
func StateForField(f booking.ContactField) UserState {
	switch f {
	case booking.FieldName:
		return StateEnterName
	case booking.FieldEmail:
		return StateEnterEmail
	case booking.FieldCompany:
		return StateEnterCompany
	case booking.FieldMessage:
		return StateEnterMessage
	}
	return StateNone
}

// Field поле контактов, которое ожидается в этом состоянии
func (s UserState) Field() (booking.ContactField, bool) {
	switch s {
	case StateEnterName:
		return booking.FieldName, true
	case StateEnterEmail:
		return booking.FieldEmail, true
	case StateEnterCompany:
		return booking.FieldCompany, true
	case StateEnterMessage:
		return booking.FieldMessage, true
	}
	return 0, false
}

// UserData мастер записи одного чата
type UserData struct {
	Session   *booking.Session
	State     UserState
	MessageID int // сообщение с экраном мастера, которое редактируем
	UpdatedAt time.Time
}

// Snapshot копия данных, которую можно читать без блокировки
func (d *UserData) Snapshot() UserData {
	out := *d
	if d.Session != nil {
		session := *d.Session
		out.Session = &session
	}
	return out
}
