package booking

import (
	"fmt"
	"time"
)

// Request тело запроса к эндпоинту бронирования
type Request struct {
	Name             string           `json:"name"`
	Email            string           `json:"email"`
	Company          string           `json:"company"`
	Message          string           `json:"message,omitempty"`
	ConsultationType ConsultationKind `json:"consultationType"`
	Date             string           `json:"date"` // RFC 3339, полночь выбранного дня
	Time             string           `json:"time"` // метка слота
}

// BookingSummary подтверждённые параметры записи
type BookingSummary struct {
	ConsultationType ConsultationKind `json:"consultationType"`
	Date             string           `json:"date"`
	Time             string           `json:"time"`
}

// Response ответ эндпоинта: success+booking при 200, error при 4xx/5xx
type Response struct {
	Success bool            `json:"success,omitempty"`
	Message string          `json:"message,omitempty"`
	Booking *BookingSummary `json:"booking,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// FormatRequestDate кодирует дату как полночь в локации loc (RFC 3339 со смещением)
func FormatRequestDate(d Date, loc *time.Location) string {
	return d.Midnight(loc).Format(time.RFC3339)
}

// ParseRequestDate читает дату из поля date. Берётся календарная дата в том
// смещении, в котором её прислал клиент. Допускается и просто 2006-01-02.
func ParseRequestDate(s string) (Date, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return DateOf(t), nil
	}
	if d, err := ParseDate(s); err == nil {
		return d, nil
	}
	return Date{}, fmt.Errorf("invalid booking date %q", s)
}
