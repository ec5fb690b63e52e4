package notify

import (
	"fmt"
	"strings"
)

// BookingDetails данные записи для писем
type BookingDetails struct {
	Name             string
	Email            string
	Company          string
	Message          string
	ConsultationType string
	Date             string
	Time             string
}

// BookingConfirmation письмо клиенту
func BookingConfirmation(b BookingDetails) EmailMessage {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Hi %s,\n\n", b.Name)
	fmt.Fprintf(&sb, "Your %s is booked for %s at %s.\n", b.ConsultationType, b.Date, b.Time)
	sb.WriteString("We will send a calendar invite shortly.\n")

	return EmailMessage{
		To:      b.Email,
		ToName:  b.Name,
		Subject: "Your consultation is booked",
		Body:    sb.String(),
	}
}

// BookingNotification письмо команде о новой записи
func BookingNotification(to string, b BookingDetails) EmailMessage {
	return EmailMessage{
		To:      to,
		Subject: fmt.Sprintf("New %s booking: %s (%s)", b.ConsultationType, b.Name, b.Company),
		Body: fmt.Sprintf(
			"Name: %s\nEmail: %s\nCompany: %s\nType: %s\nDate: %s\nTime: %s\nMessage: %s\n",
			b.Name, b.Email, b.Company, b.ConsultationType, b.Date, b.Time, b.Message,
		),
	}
}

// LeadNotification письмо команде о заявке из формы (contact, growth plan)
func LeadNotification(to, form string, fields [][2]string) EmailMessage {
	var sb strings.Builder
	for _, f := range fields {
		fmt.Fprintf(&sb, "%s: %s\n", f[0], f[1])
	}
	return EmailMessage{
		To:      to,
		Subject: "New " + form + " request",
		Body:    sb.String(),
	}
}
