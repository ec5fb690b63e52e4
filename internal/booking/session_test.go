package booking

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 19 октября 2026, понедельник, середина дня
func fixedClock() func() time.Time {
	return func() time.Time {
		return time.Date(2026, time.October, 19, 14, 0, 0, 0, time.UTC)
	}
}

func newTestSession(t *testing.T) *Session {
	t.Helper()
	return NewSession(WithClock(fixedClock()))
}

func apply(t *testing.T, s *Session, events ...Event) {
	t.Helper()
	for _, e := range events {
		require.NoError(t, s.Apply(e), "%T", e)
	}
}

// sessionAtDetails проводит мастер до шага контактов
func sessionAtDetails(t *testing.T) *Session {
	t.Helper()
	s := newTestSession(t)
	apply(t, s,
		SelectConsultation{Kind: KindDiscovery},
		Continue{},
		ShowNextMonth{},
		SelectDate{Date: NewDate(2026, time.November, 10)},
		SelectSlot{Slot: "10:00 AM"},
		Continue{},
	)
	require.Equal(t, StepEnterDetails, s.Step())
	return s
}

func fillContact(t *testing.T, s *Session, email string) {
	t.Helper()
	apply(t, s,
		EditContact{Field: FieldName, Value: "Ada"},
		EditContact{Field: FieldEmail, Value: email},
		EditContact{Field: FieldCompany, Value: "Acme"},
	)
}

func TestNewSession_InitialState(t *testing.T) {
	s := newTestSession(t)

	assert.Equal(t, StepSelectType, s.Step())
	assert.Equal(t, Month{Year: 2026, Month: time.October}, s.ViewMonth())
	assert.Equal(t, SubmissionIdle, s.Submission().Status)
	assert.False(t, s.CanContinue())
	assert.Nil(t, s.Confirmation())
	_, ok := s.Consultation()
	assert.False(t, ok)
}

func TestSession_StepGating(t *testing.T) {
	s := newTestSession(t)

	require.ErrorIs(t, s.Apply(Continue{}), ErrConsultationRequired)
	assert.Equal(t, StepSelectType, s.Step())

	require.ErrorIs(t, s.Apply(SelectConsultation{Kind: "workshop"}), ErrUnknownConsultation)
	require.ErrorIs(t, s.Apply(SelectDate{Date: NewDate(2026, time.November, 10)}), ErrWrongStep)

	apply(t, s, SelectConsultation{Kind: KindStrategy}, Continue{})
	assert.Equal(t, StepSelectDateTime, s.Step())

	require.ErrorIs(t, s.Apply(Continue{}), ErrDateTimeRequired)
	require.ErrorIs(t, s.Apply(SelectSlot{Slot: "10:00 AM"}), ErrDateRequired)

	apply(t, s, SelectDate{Date: NewDate(2026, time.October, 20)})
	require.ErrorIs(t, s.Apply(Continue{}), ErrDateTimeRequired)
	require.ErrorIs(t, s.Apply(SelectSlot{Slot: "12:00 PM"}), ErrUnknownSlot)

	apply(t, s, SelectSlot{Slot: "4:30 PM"}, Continue{})
	assert.Equal(t, StepEnterDetails, s.Step())

	_, err := s.BeginSubmit()
	require.ErrorIs(t, err, ErrMissingFields)
	assert.Equal(t, SubmissionFailed, s.Submission().Status)
	assert.Equal(t, MissingFieldsMessage, s.Submission().Error)
}

func TestSession_SelectDateRejectsUnavailable(t *testing.T) {
	s := newTestSession(t)
	apply(t, s, SelectConsultation{Kind: KindDiscovery}, Continue{})

	// воскресенье
	err := s.Apply(SelectDate{Date: NewDate(2026, time.November, 8)})
	require.ErrorIs(t, err, ErrDateUnavailable)
	_, ok := s.SelectedDate()
	assert.False(t, ok)
	assert.Equal(t, StepSelectDateTime, s.Step())
	assert.False(t, s.CanContinue())

	// вчера
	err = s.Apply(SelectDate{Date: NewDate(2026, time.October, 16)})
	require.ErrorIs(t, err, ErrDateUnavailable)

	apply(t, s, SelectDate{Date: NewDate(2026, time.October, 19)})
	d, ok := s.SelectedDate()
	require.True(t, ok)
	assert.Equal(t, NewDate(2026, time.October, 19), d)

	// неудачный выбор не сбрасывает предыдущий
	require.Error(t, s.Apply(SelectDate{Date: NewDate(2026, time.October, 24)}))
	d, _ = s.SelectedDate()
	assert.Equal(t, NewDate(2026, time.October, 19), d)

	// 31 ноября нет в календаре, хотя 1 декабря был бы вторником
	err = s.Apply(SelectDate{Date: Date{Year: 2026, Month: time.November, Day: 31}})
	require.ErrorIs(t, err, ErrDateUnavailable)
	d, _ = s.SelectedDate()
	assert.Equal(t, NewDate(2026, time.October, 19), d)
}

func TestSession_MonthNavigation(t *testing.T) {
	s := newTestSession(t)
	require.ErrorIs(t, s.Apply(ShowNextMonth{}), ErrWrongStep)

	apply(t, s, SelectConsultation{Kind: KindDiscovery}, Continue{})
	for i := 0; i < 3; i++ {
		apply(t, s, ShowNextMonth{})
	}
	assert.Equal(t, Month{Year: 2027, Month: time.January}, s.ViewMonth())

	for i := 0; i < 24; i++ {
		apply(t, s, ShowPreviousMonth{})
	}
	assert.Equal(t, Month{Year: 2025, Month: time.January}, s.ViewMonth())
}

func TestSession_BackKeepsSelections(t *testing.T) {
	s := sessionAtDetails(t)
	apply(t, s, EditContact{Field: FieldName, Value: "Ada"})

	apply(t, s, Back{})
	assert.Equal(t, StepSelectDateTime, s.Step())
	slot, ok := s.SelectedSlot()
	require.True(t, ok)
	assert.Equal(t, Slot("10:00 AM"), slot)

	apply(t, s, Back{})
	assert.Equal(t, StepSelectType, s.Step())
	c, ok := s.Consultation()
	require.True(t, ok)
	assert.Equal(t, KindDiscovery, c.Kind)

	require.ErrorIs(t, s.Apply(Back{}), ErrWrongStep)

	apply(t, s, Continue{}, Continue{})
	assert.Equal(t, StepEnterDetails, s.Step())
	assert.Equal(t, "Ada", s.Contact().Name)
}

func TestSession_SuccessfulBooking(t *testing.T) {
	s := sessionAtDetails(t)
	fillContact(t, s, "ada@example.com")

	req, err := s.BeginSubmit()
	require.NoError(t, err)
	assert.Equal(t, &Request{
		Name:             "Ada",
		Email:            "ada@example.com",
		Company:          "Acme",
		ConsultationType: KindDiscovery,
		Date:             "2026-11-10T00:00:00Z",
		Time:             "10:00 AM",
	}, req)
	assert.True(t, s.Submitting())

	resp := &Response{
		Success: true,
		Message: "Your consultation has been booked successfully. A confirmation email has been sent.",
		Booking: &BookingSummary{ConsultationType: KindDiscovery, Date: req.Date, Time: req.Time},
	}
	require.NoError(t, s.FinishSubmit(resp, nil))

	assert.Equal(t, StepConfirmed, s.Step())
	assert.Equal(t, SubmissionSucceeded, s.Submission().Status)
	conf := s.Confirmation()
	require.NotNil(t, conf)
	assert.Equal(t, "Discovery Call", conf.Consultation.Label)
	assert.Equal(t, NewDate(2026, time.November, 10), conf.Date)
	assert.Equal(t, Slot("10:00 AM"), conf.Slot)
	assert.Equal(t, "ada@example.com", conf.Email)
}

func TestSession_ConfirmedIsTerminal(t *testing.T) {
	s := sessionAtDetails(t)
	fillContact(t, s, "ada@example.com")
	_, err := s.BeginSubmit()
	require.NoError(t, err)
	require.NoError(t, s.FinishSubmit(&Response{Success: true}, nil))

	events := []Event{
		SelectConsultation{Kind: KindStrategy},
		ShowNextMonth{},
		SelectDate{Date: NewDate(2026, time.November, 11)},
		EditContact{Field: FieldName, Value: "Bob"},
		Continue{},
		Back{},
	}
	for _, e := range events {
		assert.ErrorIs(t, s.Apply(e), ErrAlreadyConfirmed, "%T", e)
	}
	_, err = s.BeginSubmit()
	assert.ErrorIs(t, err, ErrAlreadyConfirmed)
	assert.Equal(t, StepConfirmed, s.Step())

	oldID := s.ID()
	s.Reset()
	assert.Equal(t, StepSelectType, s.Step())
	assert.NotEqual(t, oldID, s.ID())
	assert.Nil(t, s.Confirmation())
	assert.Equal(t, Contact{}, s.Contact())
}

func TestSession_DoubleSubmit(t *testing.T) {
	s := sessionAtDetails(t)
	fillContact(t, s, "ada@example.com")

	_, err := s.BeginSubmit()
	require.NoError(t, err)

	_, err = s.BeginSubmit()
	require.ErrorIs(t, err, ErrSubmitInFlight)
	assert.ErrorIs(t, s.Apply(Back{}), ErrSubmitInFlight)
	assert.ErrorIs(t, s.Apply(EditContact{Field: FieldName, Value: "Bob"}), ErrSubmitInFlight)
	assert.Equal(t, "Ada", s.Contact().Name)
}

func TestSession_ServerRejectsEmail(t *testing.T) {
	s := sessionAtDetails(t)
	// проходит локальную проверку, сервер отвечает 400
	fillContact(t, s, "ada@example.com")
	_, err := s.BeginSubmit()
	require.NoError(t, err)

	require.NoError(t, s.FinishSubmit(&Response{Error: "Invalid email format"}, nil))
	assert.Equal(t, StepEnterDetails, s.Step())
	assert.Equal(t, SubmissionState{Status: SubmissionFailed, Error: "Invalid email format"}, s.Submission())

	// правка поля снимает ошибку, повторная отправка разрешена
	apply(t, s, EditContact{Field: FieldEmail, Value: "ada@example.org"})
	assert.Equal(t, SubmissionIdle, s.Submission().Status)
	_, err = s.BeginSubmit()
	require.NoError(t, err)
}

type userError struct{ msg string }

func (e userError) Error() string       { return "status 400: " + e.msg }
func (e userError) UserMessage() string { return e.msg }

func TestSession_SubmitFailures(t *testing.T) {
	tests := []struct {
		name string
		resp *Response
		err  error
		want string
	}{
		{"network", nil, errors.New("dial tcp: connection refused"), GenericSubmitError},
		{"user message", nil, userError{msg: "Booking date must be in the future"}, "Booking date must be in the future"},
		{"empty response", nil, nil, GenericSubmitError},
		{"unsuccessful without text", &Response{}, nil, GenericSubmitError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := sessionAtDetails(t)
			fillContact(t, s, "ada@example.com")
			_, err := s.BeginSubmit()
			require.NoError(t, err)

			require.NoError(t, s.FinishSubmit(tt.resp, tt.err))
			assert.Equal(t, StepEnterDetails, s.Step())
			assert.Equal(t, SubmissionFailed, s.Submission().Status)
			assert.Equal(t, tt.want, s.Submission().Error)
		})
	}
}

func TestSession_FinishWithoutBegin(t *testing.T) {
	s := sessionAtDetails(t)
	assert.ErrorIs(t, s.FinishSubmit(&Response{Success: true}, nil), ErrNotSubmitting)
	assert.Equal(t, StepEnterDetails, s.Step())
}

func TestSession_InvalidEmailLocally(t *testing.T) {
	s := sessionAtDetails(t)
	fillContact(t, s, "not-an-email")

	_, err := s.BeginSubmit()
	require.ErrorIs(t, err, ErrInvalidEmail)
	assert.Equal(t, InvalidEmailMessage, s.Submission().Error)
	assert.False(t, s.Submitting())
}

func TestSession_StaleDateOnContinue(t *testing.T) {
	now := time.Date(2026, time.October, 19, 23, 59, 0, 0, time.UTC)
	s := NewSession(WithClock(func() time.Time { return now }))
	apply(t, s,
		SelectConsultation{Kind: KindDiscovery},
		Continue{},
		SelectDate{Date: NewDate(2026, time.October, 19)},
		SelectSlot{Slot: "4:30 PM"},
	)

	now = now.Add(2 * time.Minute)
	require.ErrorIs(t, s.Apply(Continue{}), ErrDateUnavailable)
	assert.Equal(t, StepSelectDateTime, s.Step())
	_, ok := s.SelectedDate()
	assert.False(t, ok)
}
