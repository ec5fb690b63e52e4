package common

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/go-telegram/bot/models"

	"github.com/Freeeeeet/consultation_bot/internal/booking"
	"github.com/Freeeeeet/consultation_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/consultation_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/consultation_bot/internal/controller/state"
)

// BuildScreen формирует экран текущего шага мастера
func BuildScreen(data state.UserData) (string, *models.InlineKeyboardMarkup) {
	s := data.Session
	switch s.Step() {
	case booking.StepSelectType:
		return BuildSelectTypeScreen(s)
	case booking.StepSelectDateTime:
		return BuildDateTimeScreen(s)
	case booking.StepEnterDetails:
		return BuildDetailsScreen(s, data.State)
	default:
		return BuildConfirmedScreen(s)
	}
}

// BuildSelectTypeScreen формирует экран выбора типа консультации
func BuildSelectTypeScreen(s *booking.Session) (string, *models.InlineKeyboardMarkup) {
	selected, hasSelected := s.Consultation()

	var sb strings.Builder
	fmt.Fprintf(&sb, "📋 <b>Book a consultation</b>\n<i>%s</i>\n\n", formatting.StepIndicator(s.Step()))
	sb.WriteString("Choose the type of consultation:\n")

	kb := keyboard.NewBuilder()
	for _, c := range booking.Consultations() {
		fmt.Fprintf(&sb, "\n<b>%s</b> (%s)\n%s\n", c.Label, c.DurationLabel(), c.Description)

		label := fmt.Sprintf("%s · %s", c.Label, c.DurationLabel())
		if hasSelected && selected.Kind == c.Kind {
			label = "✅ " + label
		}
		kb.Row(keyboard.Button(label, WizardType+string(c.Kind)))
	}

	kb.Row(keyboard.BackContinueRow("", WizardContinue, s.CanContinue())...)
	kb.Row(keyboard.CancelButton(WizardClose))

	return sb.String(), kb.Build()
}

// BuildDateTimeScreen формирует экран выбора даты и времени
func BuildDateTimeScreen(s *booking.Session) (string, *models.InlineKeyboardMarkup) {
	consultation, _ := s.Consultation()
	date, hasDate := s.SelectedDate()
	slot, hasSlot := s.SelectedSlot()

	var sb strings.Builder
	fmt.Fprintf(&sb, "📅 <b>Pick a date and time</b>\n<i>%s</i>\n\n", formatting.StepIndicator(s.Step()))
	fmt.Fprintf(&sb, "%s · %s\n\n", consultation.Label, formatting.FormatDuration(consultation.Duration))
	sb.WriteString("Available on weekdays from today on.\n")
	if hasDate {
		fmt.Fprintf(&sb, "\n📅 %s", formatting.FormatDate(date))
		if hasSlot {
			fmt.Fprintf(&sb, "\n🕐 %s", formatting.FormatSlot(slot, consultation.Duration))
		} else {
			sb.WriteString("\n\nNow choose a time:")
		}
	}

	kb := keyboard.NewBuilder()
	kb.Row(keyboard.CalendarPagination(WizardPrevMonth, WizardNextMonth, s.ViewMonth())...)
	kb.Row(keyboard.WeekdayHeaderRow()...)
	kb.AddRows(keyboard.CalendarDays(s.ViewMonth(), s.Selectable, date, func(d booking.Date) string {
		return WizardDate + d.String()
	}))

	// слоты показываем только после выбора даты
	if hasDate {
		var buttons []models.InlineKeyboardButton
		for i, candidate := range booking.Slots() {
			label := candidate.String()
			if hasSlot && candidate == slot {
				label = "✅ " + label
			}
			buttons = append(buttons, keyboard.Button(label, WizardSlot+strconv.Itoa(i)))
		}
		kb.AddRows(keyboard.Chunk(buttons, 3))
	}

	kb.Row(keyboard.BackContinueRow(WizardBack, WizardContinue, s.CanContinue())...)
	kb.Row(keyboard.CancelButton(WizardClose))

	return sb.String(), kb.Build()
}

// BuildDetailsScreen формирует экран контактов; awaiting указывает поле, которое ждём текстом
func BuildDetailsScreen(s *booking.Session, awaiting state.UserState) (string, *models.InlineKeyboardMarkup) {
	consultation, _ := s.Consultation()
	date, _ := s.SelectedDate()
	slot, _ := s.SelectedSlot()
	contact := s.Contact()
	submission := s.Submission()

	var sb strings.Builder
	fmt.Fprintf(&sb, "📝 <b>Your details</b>\n<i>%s</i>\n\n", formatting.StepIndicator(s.Step()))
	fmt.Fprintf(&sb, "%s · %s\n", consultation.Label, formatting.FormatDuration(consultation.Duration))
	fmt.Fprintf(&sb, "📅 %s\n🕐 %s\n\n", formatting.FormatDate(date), formatting.FormatSlot(slot, consultation.Duration))

	for _, f := range booking.ContactFields() {
		fmt.Fprintf(&sb, "%s %s: %s\n", fieldEmoji(f), FieldTitle(f), displayValue(contact.Get(f), f.Required()))
	}

	if status := formatting.GetSubmissionStatusDisplay(submission); status.Text != "" {
		fmt.Fprintf(&sb, "\n%s %s\n", status.Emoji, html.EscapeString(status.Text))
	}

	field, waiting := awaiting.Field()
	if waiting {
		fmt.Fprintf(&sb, "\n✍️ %s", FieldPrompt(field))
	}

	kb := keyboard.NewBuilder()
	if waiting && !field.Required() {
		kb.Row(keyboard.Button("⏭ Skip", WizardSkip))
	}

	if submission.Status == booking.SubmissionSubmitting {
		kb.Row(keyboard.Label("⏳ Booking..."))
		return sb.String(), kb.Build()
	}

	var edits []models.InlineKeyboardButton
	for _, f := range booking.ContactFields() {
		edits = append(edits, keyboard.EditButton(FieldTitle(f), WizardEdit+f.String()))
	}
	kb.AddRows(keyboard.Chunk(edits, 2))

	row := []models.InlineKeyboardButton{keyboard.BackButton(WizardBack)}
	if !waiting {
		row = append(row, keyboard.ConfirmButton("Confirm booking", WizardSubmit))
	}
	kb.Row(row...)
	kb.Row(keyboard.CancelButton(WizardClose))

	return sb.String(), kb.Build()
}

// BuildConfirmedScreen формирует экран подтверждения записи
func BuildConfirmedScreen(s *booking.Session) (string, *models.InlineKeyboardMarkup) {
	conf := s.Confirmation()
	if conf == nil {
		return "✅ <b>Booking confirmed</b>", keyboard.NewBuilder().
			Row(keyboard.Button("📅 Book another", WizardRestart)).
			Build()
	}

	text := fmt.Sprintf(
		"✅ <b>Booking confirmed!</b>\n\n"+
			"%s · %s\n"+
			"📅 %s\n"+
			"🕐 %s\n\n"+
			"A confirmation email has been sent to <b>%s</b>.",
		conf.Consultation.Label,
		formatting.FormatDuration(conf.Consultation.Duration),
		formatting.FormatDate(conf.Date),
		formatting.FormatSlot(conf.Slot, conf.Consultation.Duration),
		html.EscapeString(conf.Email),
	)

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("📅 Book another", WizardRestart)).
		Row(keyboard.Button("Done", WizardClose))

	return text, kb.Build()
}

// FieldTitle подпись поля контактов
func FieldTitle(f booking.ContactField) string {
	switch f {
	case booking.FieldName:
		return "Name"
	case booking.FieldEmail:
		return "Email"
	case booking.FieldCompany:
		return "Company"
	case booking.FieldMessage:
		return "Message"
	}
	return f.String()
}

// FieldPrompt просьба ввести поле
func FieldPrompt(f booking.ContactField) string {
	switch f {
	case booking.FieldName:
		return "Please send your full name."
	case booking.FieldEmail:
		return "Please send your email address."
	case booking.FieldCompany:
		return "Please send your company name."
	case booking.FieldMessage:
		return "Anything you'd like us to know beforehand? Send a message or tap Skip."
	}
	return "Please send a value."
}

func fieldEmoji(f booking.ContactField) string {
	switch f {
	case booking.FieldName:
		return "👤"
	case booking.FieldEmail:
		return "📧"
	case booking.FieldCompany:
		return "🏢"
	default:
		return "💬"
	}
}

func displayValue(v string, required bool) string {
	switch {
	case v != "":
		return html.EscapeString(v)
	case required:
		return "<i>required</i>"
	default:
		return "<i>optional</i>"
	}
}
