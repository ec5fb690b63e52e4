package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Freeeeeet/consultation_bot/internal/booking"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch m.session.Step() {
	case booking.StepSelectType:
		body = m.viewSelectType()
	case booking.StepSelectDateTime:
		body = m.viewDateTime()
	case booking.StepEnterDetails:
		body = m.viewDetails()
	default:
		body = m.viewConfirmed()
	}

	if m.notice != "" {
		body += "\n" + errorStyle.Render(m.notice)
	}
	return frameStyle.Render(body) + "\n"
}

func header(title string, step booking.Step) string {
	indicator := fmt.Sprintf("Step %d of 3", step.Number())
	return titleStyle.Render(title) + "  " + stepStyle.Render(indicator) + "\n\n"
}

func (m Model) viewSelectType() string {
	var sb strings.Builder
	sb.WriteString(header("Book a consultation", m.session.Step()))

	selected, hasSelected := m.session.Consultation()
	for i, c := range booking.Consultations() {
		line := fmt.Sprintf("%-18s %s", c.Label, c.DurationLabel())
		if hasSelected && selected.Kind == c.Kind {
			line = selectedStyle.Render(line + " ✓")
		}
		if i == m.typeCursor {
			line = cursorStyle.Render("> "+line) + "\n  " + helpStyle.Render(c.Description)
		} else {
			line = "  " + line
		}
		sb.WriteString(line + "\n")
	}

	sb.WriteString("\n" + helpStyle.Render(helpFor(keys.Up, keys.Down, keys.Enter, keys.Quit)))
	return sb.String()
}

func (m Model) viewDateTime() string {
	var sb strings.Builder
	consultation, _ := m.session.Consultation()
	sb.WriteString(header("Pick a date and time", m.session.Step()))
	sb.WriteString(consultation.Label + " · " + consultation.DurationLabel() + "\n\n")

	sb.WriteString(m.viewCalendar())

	date, hasDate := m.session.SelectedDate()
	if hasDate {
		sb.WriteString("\n" + labelStyle.Render("Date") + date.Long() + "\n\n")
		sb.WriteString(m.viewSlots())
	}

	sb.WriteString("\n" + helpStyle.Render(helpFor(keys.Left, keys.Right, keys.PrevMonth, keys.NextMonth, keys.Tab, keys.Enter, keys.Back)))
	return sb.String()
}

func (m Model) viewCalendar() string {
	month := m.session.ViewMonth()
	selected, _ := m.session.SelectedDate()

	var sb strings.Builder
	sb.WriteString(lipgloss.PlaceHorizontal(7*4, lipgloss.Center, "◀ "+month.String()+" ▶") + "\n")
	for _, h := range booking.WeekdayHeaders() {
		sb.WriteString(fmt.Sprintf("%-4s", h[:2]))
	}
	sb.WriteString("\n")

	for _, week := range booking.Weeks(month) {
		for _, cell := range week {
			sb.WriteString(m.viewDay(cell, selected))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m Model) viewDay(cell booking.Cell, selected booking.Date) string {
	if cell.IsEmpty() {
		return "    "
	}
	text := fmt.Sprintf("%2d", cell.Date.Day)
	style := lipgloss.NewStyle()
	switch {
	case cell.Date == selected:
		style = selectedStyle
	case !m.session.Selectable(cell.Date):
		style = disabledStyle
	}
	if cell.Date == m.cursor && m.focus == focusCalendar {
		style = style.Inherit(cursorStyle)
	}
	return style.Render(text) + "  "
}

func (m Model) viewSlots() string {
	slot, hasSlot := m.session.SelectedSlot()

	var sb strings.Builder
	for i, s := range booking.Slots() {
		text := fmt.Sprintf("%-9s", s)
		style := lipgloss.NewStyle()
		if hasSlot && s == slot {
			style = selectedStyle
		}
		if i == m.slotCursor && m.focus == focusSlots {
			style = style.Inherit(cursorStyle)
		}
		sb.WriteString(style.Render(text) + " ")
		if (i+1)%slotColumns == 0 {
			sb.WriteString("\n")
		}
	}
	if len(booking.Slots())%slotColumns != 0 {
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m Model) viewDetails() string {
	var sb strings.Builder
	consultation, _ := m.session.Consultation()
	date, _ := m.session.SelectedDate()
	slot, _ := m.session.SelectedSlot()

	sb.WriteString(header("Your details", m.session.Step()))
	sb.WriteString(fmt.Sprintf("%s · %s\n%s at %s\n\n", consultation.Label, consultation.DurationLabel(), date.Long(), slot))

	for i, f := range booking.ContactFields() {
		label := fieldLabel(f)
		if f.Required() {
			label += "*"
		}
		marker := "  "
		if i == m.field && m.inputs[i].Focused() {
			marker = "> "
		}
		sb.WriteString(marker + labelStyle.Render(label) + m.inputs[i].View() + "\n")
	}

	sub := m.session.Submission()
	switch sub.Status {
	case booking.SubmissionSubmitting:
		sb.WriteString("\n" + stepStyle.Render("Booking..."))
	case booking.SubmissionFailed:
		sb.WriteString("\n" + errorStyle.Render(sub.Error))
	}

	sb.WriteString("\n" + helpStyle.Render("tab next field • enter on message submits • esc back • ctrl+r start over"))
	return sb.String()
}

func (m Model) viewConfirmed() string {
	conf := m.session.Confirmation()
	var sb strings.Builder
	sb.WriteString(successStyle.Render("Booking confirmed!") + "\n\n")
	if conf != nil {
		sb.WriteString(fmt.Sprintf("%s · %s\n", conf.Consultation.Label, conf.Consultation.DurationLabel()))
		sb.WriteString(fmt.Sprintf("%s at %s\n\n", conf.Date.Long(), conf.Slot))
		sb.WriteString("A confirmation email has been sent to " + conf.Email + ".\n")
	}
	sb.WriteString("\n" + helpStyle.Render("enter book another • q quit"))
	return sb.String()
}

func fieldLabel(f booking.ContactField) string {
	s := f.String()
	return strings.ToUpper(s[:1]) + s[1:]
}

// noticeFor текст ошибки перехода для строки состояния
func noticeFor(err error) string {
	switch {
	case errors.Is(err, booking.ErrDateUnavailable):
		return "This date is not available. Pick a weekday from today on."
	case errors.Is(err, booking.ErrSubmitInFlight):
		return "Your booking is already being submitted."
	case errors.Is(err, booking.ErrDateRequired):
		return "Pick a date first."
	case errors.Is(err, booking.ErrDateTimeRequired):
		return "Pick a date and a time."
	default:
		return err.Error()
	}
}

