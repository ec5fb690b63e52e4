package notify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestNewSendGridSender_NilWithoutAPIKey(t *testing.T) {
	assert.Nil(t, NewSendGridSender(SendGridConfig{FromEmail: "team@example.com"}, nil))
}

func TestNewSendGridSender_DefaultFromName(t *testing.T) {
	sender := NewSendGridSender(SendGridConfig{APIKey: "key", FromEmail: "team@example.com"}, nil)
	require.NotNil(t, sender)
	assert.Equal(t, "Consultations", sender.fromName)
}

func TestNewEmailSender_FallsBackToStub(t *testing.T) {
	sender := NewEmailSender(SendGridConfig{}, zaptest.NewLogger(t))
	_, ok := sender.(*StubEmailSender)
	assert.True(t, ok)

	sender = NewEmailSender(SendGridConfig{APIKey: "key"}, zaptest.NewLogger(t))
	_, ok = sender.(*SendGridSender)
	assert.True(t, ok)
}

func TestSendGridSender_Send_NilClient(t *testing.T) {
	err := (&SendGridSender{}).Send(context.Background(), EmailMessage{To: "ada@example.com"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestStubEmailSender_Send(t *testing.T) {
	assert.NoError(t, NewStubEmailSender(nil).Send(context.Background(), EmailMessage{To: "ada@example.com"}))
}

func TestBookingTemplates(t *testing.T) {
	b := BookingDetails{
		Name:             "Ada",
		Email:            "ada@example.com",
		Company:          "Acme",
		ConsultationType: "Discovery Call",
		Date:             "Tuesday, November 10, 2026",
		Time:             "10:00 AM",
	}

	msg := BookingConfirmation(b)
	assert.Equal(t, "ada@example.com", msg.To)
	assert.Contains(t, msg.Body, "Discovery Call is booked for Tuesday, November 10, 2026 at 10:00 AM")

	msg = BookingNotification("team@example.com", b)
	assert.Equal(t, "team@example.com", msg.To)
	assert.Equal(t, "New Discovery Call booking: Ada (Acme)", msg.Subject)

	msg = LeadNotification("team@example.com", "contact", [][2]string{{"Name", "Ada"}, {"Message", "Hi"}})
	assert.Equal(t, "New contact request", msg.Subject)
	assert.Equal(t, "Name: Ada\nMessage: Hi\n", msg.Body)
}

type failingSender struct{}

func (failingSender) Send(context.Context, EmailMessage) error { return ErrNotConfigured }

func TestObserved(t *testing.T) {
	var results []error
	sender := Observed(failingSender{}, func(err error) { results = append(results, err) })

	err := sender.Send(context.Background(), EmailMessage{To: "ada@example.com"})
	assert.ErrorIs(t, err, ErrNotConfigured)
	require.Len(t, results, 1)
	assert.ErrorIs(t, results[0], ErrNotConfigured)

	stub := NewStubEmailSender(nil)
	assert.Same(t, stub, Observed(stub, nil))
}
