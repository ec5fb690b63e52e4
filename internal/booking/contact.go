package booking

import (
	"fmt"
	"regexp"
	"strings"
)

// ContactField поле формы контактов
type ContactField int

const (
	FieldName ContactField = iota + 1
	FieldEmail
	FieldCompany
	FieldMessage
)

// ContactFields поля в порядке заполнения
func ContactFields() []ContactField {
	return []ContactField{FieldName, FieldEmail, FieldCompany, FieldMessage}
}

func (f ContactField) String() string {
	switch f {
	case FieldName:
		return "name"
	case FieldEmail:
		return "email"
	case FieldCompany:
		return "company"
	case FieldMessage:
		return "message"
	default:
		return fmt.Sprintf("field(%d)", int(f))
	}
}

// ParseContactField обратное к String
func ParseContactField(s string) (ContactField, error) {
	for _, f := range ContactFields() {
		if f.String() == s {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown contact field %q", s)
}

// Required сообщает, обязательно ли поле
func (f ContactField) Required() bool {
	return f != FieldMessage
}

// Contact контактные данные клиента; Message необязательно
type Contact struct {
	Name    string
	Email   string
	Company string
	Message string
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail проверяет адрес по стандартному шаблону
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// Get значение поля
func (c Contact) Get(f ContactField) string {
	switch f {
	case FieldName:
		return c.Name
	case FieldEmail:
		return c.Email
	case FieldCompany:
		return c.Company
	case FieldMessage:
		return c.Message
	}
	return ""
}

// With возвращает копию с изменённым полем
func (c Contact) With(f ContactField, value string) Contact {
	value = strings.TrimSpace(value)
	switch f {
	case FieldName:
		c.Name = value
	case FieldEmail:
		c.Email = value
	case FieldCompany:
		c.Company = value
	case FieldMessage:
		c.Message = value
	}
	return c
}

// Missing возвращает незаполненные обязательные поля
func (c Contact) Missing() []ContactField {
	var missing []ContactField
	for _, f := range ContactFields() {
		if f.Required() && strings.TrimSpace(c.Get(f)) == "" {
			missing = append(missing, f)
		}
	}
	return missing
}

// Validate проверяет обязательные поля и формат email
func (c Contact) Validate() error {
	if len(c.Missing()) > 0 {
		return ErrMissingFields
	}
	if !ValidEmail(c.Email) {
		return ErrInvalidEmail
	}
	return nil
}
