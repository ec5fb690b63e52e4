package booking

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Step шаг мастера записи
type Step int

const (
	StepSelectType Step = iota + 1
	StepSelectDateTime
	StepEnterDetails
	StepConfirmed
)

func (s Step) String() string {
	switch s {
	case StepSelectType:
		return "select_type"
	case StepSelectDateTime:
		return "select_date_time"
	case StepEnterDetails:
		return "enter_details"
	case StepConfirmed:
		return "confirmed"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

// Number номер шага для индикатора прогресса (1..3, подтверждение считается третьим)
func (s Step) Number() int {
	if s == StepConfirmed {
		return 3
	}
	return int(s)
}

// SubmissionStatus состояние отправки
type SubmissionStatus int

const (
	SubmissionIdle SubmissionStatus = iota
	SubmissionSubmitting
	SubmissionFailed
	SubmissionSucceeded
)

func (s SubmissionStatus) String() string {
	switch s {
	case SubmissionIdle:
		return "idle"
	case SubmissionSubmitting:
		return "submitting"
	case SubmissionFailed:
		return "failed"
	case SubmissionSucceeded:
		return "succeeded"
	default:
		return fmt.Sprintf("submission(%d)", int(s))
	}
}

// SubmissionState статус отправки; Error заполнен только при SubmissionFailed
type SubmissionState struct {
	Status SubmissionStatus
	Error  string
}

// Confirmation то, что показываем после успешной записи
type Confirmation struct {
	Consultation Consultation
	Date         Date
	Slot         Slot
	Email        string
	Message      string
}

// Event пользовательское действие; обрабатывается Session.Apply
type Event interface {
	event()
}

type (
	// SelectConsultation выбор типа консультации (шаг 1)
	SelectConsultation struct{ Kind ConsultationKind }
	// ShowPreviousMonth листание календаря назад
	ShowPreviousMonth struct{}
	// ShowNextMonth листание календаря вперёд
	ShowNextMonth struct{}
	// SelectDate выбор дня (шаг 2)
	SelectDate struct{ Date Date }
	// SelectSlot выбор времени (шаг 2)
	SelectSlot struct{ Slot Slot }
	// EditContact ввод поля контактов (шаг 3)
	EditContact struct {
		Field ContactField
		Value string
	}
	// Continue переход к следующему шагу
	Continue struct{}
	// Back возврат на предыдущий шаг без потери выбора
	Back struct{}
)

func (SelectConsultation) event() {}
func (ShowPreviousMonth) event()  {}
func (ShowNextMonth) event()      {}
func (SelectDate) event()         {}
func (SelectSlot) event()         {}
func (EditContact) event()        {}
func (Continue) event()           {}
func (Back) event()               {}

// Session состояние одного прохода мастера записи.
// Все изменения идут через Apply, Reset, BeginSubmit и FinishSubmit,
// поэтому недопустимые комбинации (шаг 3 без типа, подтверждение без ответа сервера) не возникают.
// Session не потокобезопасна: владелец сериализует вызовы сам.
type Session struct {
	id           uuid.UUID
	step         Step
	consultation ConsultationKind
	viewMonth    Month
	date         Date
	slot         Slot
	contact      Contact
	submission   SubmissionState
	confirmation *Confirmation

	now func() time.Time
}

// Option настройка сессии
type Option func(*Session)

// WithClock подменяет источник текущего времени (день "сегодня" и локация дат в запросе)
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// NewSession открывает мастер в начальном состоянии
func NewSession(opts ...Option) *Session {
	s := &Session{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	s.Reset()
	return s
}

// Reset возвращает мастер в начальное состояние и выдаёт новый ID.
// Ответ на отправку, начатую до Reset, будет отброшен по несовпадению ID.
func (s *Session) Reset() {
	s.id = uuid.New()
	s.step = StepSelectType
	s.consultation = ""
	s.viewMonth = MonthOf(s.Today())
	s.date = Date{}
	s.slot = ""
	s.contact = Contact{}
	s.submission = SubmissionState{}
	s.confirmation = nil
}

func (s *Session) ID() uuid.UUID               { return s.id }
func (s *Session) Step() Step                  { return s.step }
func (s *Session) ViewMonth() Month            { return s.viewMonth }
func (s *Session) Contact() Contact            { return s.contact }
func (s *Session) Submission() SubmissionState { return s.submission }
func (s *Session) Confirmation() *Confirmation { return s.confirmation }
func (s *Session) Location() *time.Location    { return s.now().Location() }
func (s *Session) Submitting() bool            { return s.submission.Status == SubmissionSubmitting }
func (s *Session) Confirmed() bool             { return s.step == StepConfirmed }
func (s *Session) Today() Date                 { return Today(s.now()) }
func (s *Session) Selectable(d Date) bool      { return Available(d, s.Today()) }
func (s *Session) SelectedSlot() (Slot, bool)  { return s.slot, s.slot != "" }
func (s *Session) SelectedDate() (Date, bool)  { return s.date, !s.date.IsZero() }

// Consultation выбранный тип консультации
func (s *Session) Consultation() (Consultation, bool) {
	if s.consultation == "" {
		return Consultation{}, false
	}
	return LookupConsultation(s.consultation)
}

// CanContinue можно ли нажать "Continue" на текущем шаге
func (s *Session) CanContinue() bool {
	switch s.step {
	case StepSelectType:
		return s.consultation != ""
	case StepSelectDateTime:
		return !s.date.IsZero() && s.slot != ""
	default:
		return false
	}
}

// Apply единая функция переходов мастера
func (s *Session) Apply(e Event) error {
	if s.step == StepConfirmed {
		return ErrAlreadyConfirmed
	}
	if s.Submitting() {
		return ErrSubmitInFlight
	}

	switch ev := e.(type) {
	case SelectConsultation:
		if s.step != StepSelectType {
			return ErrWrongStep
		}
		if _, ok := LookupConsultation(ev.Kind); !ok {
			return fmt.Errorf("%w: %q", ErrUnknownConsultation, ev.Kind)
		}
		s.consultation = ev.Kind
		return nil

	case ShowPreviousMonth:
		if s.step != StepSelectDateTime {
			return ErrWrongStep
		}
		s.viewMonth = s.viewMonth.Prev()
		return nil

	case ShowNextMonth:
		if s.step != StepSelectDateTime {
			return ErrWrongStep
		}
		s.viewMonth = s.viewMonth.Next()
		return nil

	case SelectDate:
		if s.step != StepSelectDateTime {
			return ErrWrongStep
		}
		// недоступная дата никогда не попадает в выбранную, даже если интерфейс её показал
		if err := CheckAvailability(ev.Date, s.Today()); err != nil {
			return err
		}
		s.date = ev.Date
		return nil

	case SelectSlot:
		if s.step != StepSelectDateTime {
			return ErrWrongStep
		}
		if s.date.IsZero() {
			return ErrDateRequired
		}
		slot, err := ParseSlot(string(ev.Slot))
		if err != nil {
			return err
		}
		s.slot = slot
		return nil

	case EditContact:
		if s.step != StepEnterDetails {
			return ErrWrongStep
		}
		s.contact = s.contact.With(ev.Field, ev.Value)
		if s.submission.Status == SubmissionFailed {
			s.submission = SubmissionState{}
		}
		return nil

	case Continue:
		return s.advance()

	case Back:
		switch s.step {
		case StepSelectDateTime:
			s.step = StepSelectType
		case StepEnterDetails:
			s.step = StepSelectDateTime
			s.submission = SubmissionState{}
		default:
			return ErrWrongStep
		}
		return nil
	}

	return fmt.Errorf("unsupported event %T", e)
}

func (s *Session) advance() error {
	switch s.step {
	case StepSelectType:
		if s.consultation == "" {
			return ErrConsultationRequired
		}
		s.step = StepSelectDateTime
		return nil
	case StepSelectDateTime:
		if s.date.IsZero() || s.slot == "" {
			return ErrDateTimeRequired
		}
		// дата могла "устареть", если мастер висел открытым через полночь
		if err := CheckAvailability(s.date, s.Today()); err != nil {
			s.date = Date{}
			s.slot = ""
			return err
		}
		s.step = StepEnterDetails
		return nil
	default:
		return ErrWrongStep
	}
}

// BeginSubmit проверяет контакты и переводит отправку в Submitting.
// Возвращает тело запроса, которое владелец должен отправить ровно один раз.
func (s *Session) BeginSubmit() (*Request, error) {
	switch {
	case s.step == StepConfirmed:
		return nil, ErrAlreadyConfirmed
	case s.Submitting():
		return nil, ErrSubmitInFlight
	case s.step != StepEnterDetails:
		return nil, ErrWrongStep
	}

	if err := s.contact.Validate(); err != nil {
		s.submission = SubmissionState{Status: SubmissionFailed, Error: FailureMessage(err)}
		return nil, err
	}

	s.submission = SubmissionState{Status: SubmissionSubmitting}
	return &Request{
		Name:             s.contact.Name,
		Email:            s.contact.Email,
		Company:          s.contact.Company,
		Message:          s.contact.Message,
		ConsultationType: s.consultation,
		Date:             FormatRequestDate(s.date, s.Location()),
		Time:             string(s.slot),
	}, nil
}

// FinishSubmit применяет результат отправки. При успехе мастер переходит в
// StepConfirmed, при ошибке остаётся на шаге контактов с текстом ошибки.
func (s *Session) FinishSubmit(resp *Response, err error) error {
	if !s.Submitting() {
		return ErrNotSubmitting
	}

	if err == nil && (resp == nil || !resp.Success) {
		msg := GenericSubmitError
		if resp != nil && resp.Error != "" {
			msg = resp.Error
		}
		s.submission = SubmissionState{Status: SubmissionFailed, Error: msg}
		return nil
	}
	if err != nil {
		s.submission = SubmissionState{Status: SubmissionFailed, Error: FailureMessage(err)}
		return nil
	}

	consultation, _ := s.Consultation()
	s.submission = SubmissionState{Status: SubmissionSucceeded}
	s.step = StepConfirmed
	s.confirmation = &Confirmation{
		Consultation: consultation,
		Date:         s.date,
		Slot:         s.slot,
		Email:        s.contact.Email,
		Message:      resp.Message,
	}
	return nil
}
