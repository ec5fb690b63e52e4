package common

// ========================
// Callback Data Patterns
// ========================
// Форматы callback data мастера записи (лимит Telegram 64 байта)

const (
	WizardType      = "wz_type:" // wz_type:discovery
	WizardPrevMonth = "wz_month:prev"
	WizardNextMonth = "wz_month:next"
	WizardDate      = "wz_date:" // wz_date:2026-11-10
	WizardSlot      = "wz_slot:" // wz_slot:2 (индекс в booking.Slots)
	WizardContinue  = "wz_next"
	WizardBack      = "wz_back"
	WizardEdit      = "wz_edit:" // wz_edit:email
	WizardSkip      = "wz_skip"  // пропустить необязательное сообщение
	WizardSubmit    = "wz_submit"
	WizardRestart   = "wz_restart"
	WizardClose     = "wz_close"
)
