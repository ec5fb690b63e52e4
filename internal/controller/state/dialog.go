package state

import (
	"errors"
	"strings"

	"github.com/Freeeeeet/consultation_bot/internal/booking"
)

// ErrNotAwaiting бот сейчас не ждёт текстового ввода
var ErrNotAwaiting = errors.New("no input expected")

// Sync приводит ожидаемый ввод в соответствие с шагом мастера.
// На шаге контактов бот сам спрашивает первое незаполненное обязательное поле.
func (d *UserData) Sync() {
	s := d.Session
	if s.Step() != booking.StepEnterDetails || s.Submitting() {
		d.State = StateNone
		return
	}
	if d.State != StateNone {
		return
	}
	if missing := s.Contact().Missing(); len(missing) > 0 {
		d.State = StateForField(missing[0])
	}
}

// Await просит ввести конкретное поле (кнопка "изменить")
func (d *UserData) Await(f booking.ContactField) error {
	s := d.Session
	switch {
	case s.Confirmed():
		return booking.ErrAlreadyConfirmed
	case s.Submitting():
		return booking.ErrSubmitInFlight
	case s.Step() != booking.StepEnterDetails:
		return booking.ErrWrongStep
	}
	d.State = StateForField(f)
	return nil
}

// Accept применяет текст пользователя к ожидаемому полю и выбирает следующее.
// Пустое обязательное поле и неверный email отклоняются сразу, ввод остаётся ожидаемым.
func (d *UserData) Accept(text string) error {
	field, ok := d.State.Field()
	if !ok {
		return ErrNotAwaiting
	}

	value := strings.TrimSpace(text)
	if field.Required() && value == "" {
		return booking.ErrMissingFields
	}
	if field == booking.FieldEmail && !booking.ValidEmail(value) {
		return booking.ErrInvalidEmail
	}

	if err := d.Session.Apply(booking.EditContact{Field: field, Value: value}); err != nil {
		return err
	}

	d.State = StateNone
	contact := d.Session.Contact()
	if missing := contact.Missing(); len(missing) > 0 {
		d.State = StateForField(missing[0])
	} else if field == booking.FieldCompany && contact.Message == "" {
		// после обязательных полей один раз предлагаем оставить сообщение
		d.State = StateEnterMessage
	}
	return nil
}

// Skip пропускает необязательное сообщение
func (d *UserData) Skip() error {
	if d.State != StateEnterMessage {
		return ErrNotAwaiting
	}
	d.State = StateNone
	return nil
}
