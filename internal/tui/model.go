// Package tui терминальная версия мастера записи на консультацию
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/Freeeeeet/consultation_bot/internal/booking"
)

// Submitter отправляет запись (bookingclient.Client)
type Submitter interface {
	Submit(ctx context.Context, req *booking.Request) (*booking.Response, error)
}

// submitResultMsg результат отправки; sessionID сверяется с текущей сессией
type submitResultMsg struct {
	sessionID uuid.UUID
	resp      *booking.Response
	err       error
}

type dateFocus int

const (
	focusCalendar dateFocus = iota
	focusSlots
)

// Model модель bubbletea поверх booking.Session
type Model struct {
	session   *booking.Session
	submitter Submitter

	typeCursor int
	cursor     booking.Date
	focus      dateFocus
	slotCursor int
	inputs     []textinput.Model
	field      int

	notice   string
	quitting bool
}

// New создаёт модель с новой сессией
func New(submitter Submitter, opts ...booking.Option) Model {
	m := Model{
		session:   booking.NewSession(opts...),
		submitter: submitter,
	}
	m.inputs = newInputs()
	m.resetCursors()
	return m
}

func newInputs() []textinput.Model {
	fields := booking.ContactFields()
	inputs := make([]textinput.Model, len(fields))
	for i, f := range fields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 200
		ti.Placeholder = placeholder(f)
		inputs[i] = ti
	}
	return inputs
}

func placeholder(f booking.ContactField) string {
	switch f {
	case booking.FieldName:
		return "Jane Doe"
	case booking.FieldEmail:
		return "jane@company.com"
	case booking.FieldCompany:
		return "Company Inc."
	default:
		return "optional"
	}
}

func (m *Model) resetCursors() {
	m.typeCursor = 0
	m.cursor = m.session.Today()
	m.focus = focusCalendar
	m.slotCursor = 0
	m.field = 0
	m.notice = ""
	for i := range m.inputs {
		m.inputs[i].Reset()
		m.inputs[i].Blur()
	}
}

// Session текущая сессия (только чтение)
func (m Model) Session() *booking.Session {
	return m.session
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case submitResultMsg:
		return m.handleResult(msg), nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.ForceQuit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, keys.Reset):
			m.session.Reset()
			m.resetCursors()
			return m, nil
		}

		switch m.session.Step() {
		case booking.StepSelectType:
			return m.updateSelectType(msg)
		case booking.StepSelectDateTime:
			return m.updateDateTime(msg)
		case booking.StepEnterDetails:
			return m.updateDetails(msg)
		default:
			return m.updateConfirmed(msg)
		}
	}
	return m, nil
}

func (m Model) updateSelectType(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := len(booking.Consultations())
	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, keys.Up):
		m.typeCursor = (m.typeCursor - 1 + count) % count
	case key.Matches(msg, keys.Down):
		m.typeCursor = (m.typeCursor + 1) % count
	case key.Matches(msg, keys.Enter):
		kind := booking.Consultations()[m.typeCursor].Kind
		m.apply(booking.SelectConsultation{Kind: kind})
		m.apply(booking.Continue{})
	}
	return m, nil
}

func (m Model) updateDateTime(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, keys.Back):
		m.apply(booking.Back{})
		return m, nil
	case key.Matches(msg, keys.PrevMonth):
		m.apply(booking.ShowPreviousMonth{})
		m.cursor = clampToMonth(m.cursor, m.session.ViewMonth())
		return m, nil
	case key.Matches(msg, keys.NextMonth):
		m.apply(booking.ShowNextMonth{})
		m.cursor = clampToMonth(m.cursor, m.session.ViewMonth())
		return m, nil
	case key.Matches(msg, keys.Tab), key.Matches(msg, keys.ShiftTab):
		if _, ok := m.session.SelectedDate(); ok && m.focus == focusCalendar {
			m.focus = focusSlots
		} else {
			m.focus = focusCalendar
		}
		return m, nil
	}

	if m.focus == focusSlots {
		return m.updateSlots(msg)
	}

	switch {
	case key.Matches(msg, keys.Left):
		m.moveCursor(-1)
	case key.Matches(msg, keys.Right):
		m.moveCursor(1)
	case key.Matches(msg, keys.Up):
		m.moveCursor(-booking.DaysPerWeek)
	case key.Matches(msg, keys.Down):
		m.moveCursor(booking.DaysPerWeek)
	case key.Matches(msg, keys.Enter):
		if m.apply(booking.SelectDate{Date: m.cursor}) {
			m.focus = focusSlots
		}
	}
	return m, nil
}

const slotColumns = 4

func (m Model) updateSlots(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := len(booking.Slots())
	switch {
	case key.Matches(msg, keys.Left):
		m.slotCursor = max(m.slotCursor-1, 0)
	case key.Matches(msg, keys.Right):
		m.slotCursor = min(m.slotCursor+1, count-1)
	case key.Matches(msg, keys.Up):
		if m.slotCursor-slotColumns >= 0 {
			m.slotCursor -= slotColumns
		} else {
			m.focus = focusCalendar
		}
	case key.Matches(msg, keys.Down):
		m.slotCursor = min(m.slotCursor+slotColumns, count-1)
	case key.Matches(msg, keys.Enter):
		if m.apply(booking.SelectSlot{Slot: booking.Slots()[m.slotCursor]}) && m.apply(booking.Continue{}) {
			return m, m.focusField(0)
		}
	}
	return m, nil
}

// moveCursor двигает курсор календаря; при выходе за месяц календарь листается следом
func (m *Model) moveCursor(days int) {
	next := m.cursor.AddDays(days)
	view := m.session.ViewMonth()
	for !view.Contains(next) {
		if next.Before(view.FirstDay()) {
			m.apply(booking.ShowPreviousMonth{})
		} else {
			m.apply(booking.ShowNextMonth{})
		}
		view = m.session.ViewMonth()
	}
	m.cursor = next
	m.notice = ""
}

func clampToMonth(d booking.Date, month booking.Month) booking.Date {
	return booking.NewDate(month.Year, month.Month, min(d.Day, month.Days()))
}

func (m Model) updateDetails(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEsc:
		m.blurFields()
		m.apply(booking.Back{})
		return m, nil
	// j/k здесь обычные буквы, поэтому только стрелки
	case key.Matches(msg, keys.Tab), msg.Type == tea.KeyDown:
		return m, m.focusField((m.field + 1) % len(m.inputs))
	case key.Matches(msg, keys.ShiftTab), msg.Type == tea.KeyUp:
		return m, m.focusField((m.field - 1 + len(m.inputs)) % len(m.inputs))
	case key.Matches(msg, keys.Enter):
		if m.field < len(m.inputs)-1 {
			return m, m.focusField(m.field + 1)
		}
		return m, m.submit()
	}

	if m.session.Submitting() {
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.field], cmd = m.inputs[m.field].Update(msg)
	field := booking.ContactFields()[m.field]
	m.apply(booking.EditContact{Field: field, Value: m.inputs[m.field].Value()})
	return m, cmd
}

func (m Model) updateConfirmed(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, keys.Enter):
		m.session.Reset()
		m.resetCursors()
	}
	return m, nil
}

func (m *Model) focusField(i int) tea.Cmd {
	m.blurFields()
	m.field = i
	return m.inputs[i].Focus()
}

func (m *Model) blurFields() {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
}

// submit запускает отправку; повторный вызов во время отправки ничего не делает
func (m *Model) submit() tea.Cmd {
	// ошибки валидации BeginSubmit сохраняет в сессии, View их покажет
	req, err := m.session.BeginSubmit()
	if err != nil {
		return nil
	}

	id := m.session.ID()
	submitter := m.submitter
	return func() tea.Msg {
		resp, err := submitter.Submit(context.Background(), req)
		return submitResultMsg{sessionID: id, resp: resp, err: err}
	}
}

func (m Model) handleResult(msg submitResultMsg) Model {
	// сессию сбросили, пока запрос был в полёте
	if msg.sessionID != m.session.ID() {
		return m
	}
	if err := m.session.FinishSubmit(msg.resp, msg.err); err != nil {
		m.notice = err.Error()
		return m
	}
	if m.session.Confirmed() {
		m.blurFields()
	}
	return m
}

// apply применяет событие и показывает ошибку внизу экрана
func (m *Model) apply(e booking.Event) bool {
	if err := m.session.Apply(e); err != nil {
		m.notice = noticeFor(err)
		return false
	}
	m.notice = ""
	return true
}
