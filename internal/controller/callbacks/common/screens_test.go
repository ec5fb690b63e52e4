package common

import (
	"strings"
	"testing"
	"time"

	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/consultation_bot/internal/booking"
	"github.com/Freeeeeet/consultation_bot/internal/controller/state"
)

func clock() time.Time {
	return time.Date(2026, time.October, 19, 14, 0, 0, 0, time.UTC)
}

func newSession(t *testing.T, events ...booking.Event) *booking.Session {
	t.Helper()
	s := booking.NewSession(booking.WithClock(clock))
	for _, e := range events {
		require.NoError(t, s.Apply(e))
	}
	return s
}

func findButton(kb *models.InlineKeyboardMarkup, data string) (models.InlineKeyboardButton, bool) {
	for _, row := range kb.InlineKeyboard {
		for _, btn := range row {
			if btn.CallbackData == data {
				return btn, true
			}
		}
	}
	return models.InlineKeyboardButton{}, false
}

func TestBuildSelectTypeScreen(t *testing.T) {
	text, kb := BuildSelectTypeScreen(newSession(t))

	assert.Contains(t, text, "Step 1 of 3")
	assert.Contains(t, text, "Discovery Call")
	assert.Contains(t, text, "Evaluate your current tech stack")

	_, ok := findButton(kb, WizardType+"strategy")
	assert.True(t, ok)
	_, ok = findButton(kb, WizardContinue)
	assert.False(t, ok, "continue is hidden until a type is selected")

	_, kb = BuildSelectTypeScreen(newSession(t, booking.SelectConsultation{Kind: booking.KindStrategy}))
	btn, ok := findButton(kb, WizardType+"strategy")
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(btn.Text, "✅"))
	_, ok = findButton(kb, WizardContinue)
	assert.True(t, ok)
}

func TestBuildDateTimeScreen_Calendar(t *testing.T) {
	s := newSession(t,
		booking.SelectConsultation{Kind: booking.KindDiscovery},
		booking.Continue{},
		booking.ShowNextMonth{},
	)
	text, kb := BuildDateTimeScreen(s)
	assert.Contains(t, text, "Step 2 of 3")

	// будни ноября доступны, выходные нет
	_, ok := findButton(kb, WizardDate+"2026-11-10")
	assert.True(t, ok)
	_, ok = findButton(kb, WizardDate+"2026-11-08")
	assert.False(t, ok)

	// до выбора даты слотов нет
	_, ok = findButton(kb, WizardSlot+"0")
	assert.False(t, ok)

	header := kb.InlineKeyboard[0]
	require.Len(t, header, 3)
	assert.Contains(t, header[1].Text, "November 2026")
}

func TestBuildDateTimeScreen_PastDaysDisabled(t *testing.T) {
	s := newSession(t, booking.SelectConsultation{Kind: booking.KindDiscovery}, booking.Continue{})
	_, kb := BuildDateTimeScreen(s)

	_, ok := findButton(kb, WizardDate+"2026-10-16")
	assert.False(t, ok, "past friday")
	_, ok = findButton(kb, WizardDate+"2026-10-19")
	assert.True(t, ok, "today")
}

func TestBuildDateTimeScreen_Slots(t *testing.T) {
	s := newSession(t,
		booking.SelectConsultation{Kind: booking.KindDiscovery},
		booking.Continue{},
		booking.ShowNextMonth{},
		booking.SelectDate{Date: booking.NewDate(2026, time.November, 10)},
		booking.SelectSlot{Slot: "10:00 AM"},
	)
	text, kb := BuildDateTimeScreen(s)

	assert.Contains(t, text, "Tuesday, November 10, 2026")
	assert.Contains(t, text, "10:00 AM - 10:30 AM")

	btn, ok := findButton(kb, WizardDate+"2026-11-10")
	require.True(t, ok)
	assert.Equal(t, "[10]", btn.Text)

	btn, ok = findButton(kb, WizardSlot+"2")
	require.True(t, ok)
	assert.Equal(t, "✅ 10:00 AM", btn.Text)
	_, ok = findButton(kb, WizardSlot+"13")
	assert.True(t, ok)
	_, ok = findButton(kb, WizardContinue)
	assert.True(t, ok)
}

func detailsSession(t *testing.T) *booking.Session {
	return newSession(t,
		booking.SelectConsultation{Kind: booking.KindStrategy},
		booking.Continue{},
		booking.SelectDate{Date: booking.NewDate(2026, time.October, 20)},
		booking.SelectSlot{Slot: "1:30 PM"},
		booking.Continue{},
	)
}

func TestBuildDetailsScreen(t *testing.T) {
	s := detailsSession(t)

	text, kb := BuildDetailsScreen(s, state.StateEnterName)
	assert.Contains(t, text, "Strategy Session · 1 h")
	assert.Contains(t, text, "1:30 PM - 2:30 PM")
	assert.Contains(t, text, FieldPrompt(booking.FieldName))
	_, ok := findButton(kb, WizardSubmit)
	assert.False(t, ok, "no confirm while waiting for input")

	require.NoError(t, s.Apply(booking.EditContact{Field: booking.FieldName, Value: "<Ada>"}))
	_, kb = BuildDetailsScreen(s, state.StateEnterMessage)
	_, ok = findButton(kb, WizardSkip)
	assert.True(t, ok)

	text, kb = BuildDetailsScreen(s, state.StateNone)
	assert.Contains(t, text, "&lt;Ada&gt;")
	_, ok = findButton(kb, WizardSubmit)
	assert.True(t, ok)
	_, ok = findButton(kb, WizardEdit+"email")
	assert.True(t, ok)
}

func TestBuildDetailsScreen_FailureAndSubmitting(t *testing.T) {
	s := detailsSession(t)
	for _, e := range []booking.Event{
		booking.EditContact{Field: booking.FieldName, Value: "Ada"},
		booking.EditContact{Field: booking.FieldEmail, Value: "ada@example.com"},
		booking.EditContact{Field: booking.FieldCompany, Value: "Acme"},
	} {
		require.NoError(t, s.Apply(e))
	}

	_, err := s.BeginSubmit()
	require.NoError(t, err)

	_, kb := BuildDetailsScreen(s, state.StateNone)
	_, ok := findButton(kb, WizardSubmit)
	assert.False(t, ok, "no second submit while in flight")
	_, ok = findButton(kb, WizardBack)
	assert.False(t, ok)

	require.NoError(t, s.FinishSubmit(&booking.Response{Error: "Booking date must be in the future"}, nil))
	text, kb := BuildDetailsScreen(s, state.StateNone)
	assert.Contains(t, text, "❌ Booking date must be in the future")
	_, ok = findButton(kb, WizardSubmit)
	assert.True(t, ok)
}

func TestBuildScreen_Confirmed(t *testing.T) {
	s := detailsSession(t)
	for _, e := range []booking.Event{
		booking.EditContact{Field: booking.FieldName, Value: "Ada"},
		booking.EditContact{Field: booking.FieldEmail, Value: "ada@example.com"},
		booking.EditContact{Field: booking.FieldCompany, Value: "Acme"},
	} {
		require.NoError(t, s.Apply(e))
	}
	_, err := s.BeginSubmit()
	require.NoError(t, err)
	require.NoError(t, s.FinishSubmit(&booking.Response{Success: true}, nil))

	text, kb := BuildScreen(state.UserData{Session: s})
	assert.Contains(t, text, "Booking confirmed")
	assert.Contains(t, text, "ada@example.com")
	assert.Contains(t, text, "Tuesday, October 20, 2026")
	_, ok := findButton(kb, WizardRestart)
	assert.True(t, ok)
}

func TestErrorMessage(t *testing.T) {
	assert.Contains(t, ErrorMessage(state.ErrNoSession), "/book")
	assert.Contains(t, ErrorMessage(booking.ErrSubmitInFlight), "already being submitted")
	assert.Equal(t, "❌ Invalid email format", ErrorMessage(booking.ErrInvalidEmail))
	assert.Equal(t, "❌ Something went wrong", ErrorMessage(assert.AnError))
}

func TestParseArgFromCallback(t *testing.T) {
	arg, err := ParseArgFromCallback("wz_date:2026-11-10")
	require.NoError(t, err)
	assert.Equal(t, "2026-11-10", arg)

	_, err = ParseArgFromCallback("wz_date:")
	assert.ErrorIs(t, err, ErrInvalidFormat)
	_, err = ParseArgFromCallback("wz_next")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestCallbackDataFitsTelegramLimit(t *testing.T) {
	longest := WizardDate + "2026-11-10"
	for _, f := range booking.ContactFields() {
		if d := WizardEdit + f.String(); len(d) > len(longest) {
			longest = d
		}
	}
	assert.LessOrEqual(t, len(longest), 64)
}
