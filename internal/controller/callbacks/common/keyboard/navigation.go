package keyboard

import (
	"github.com/go-telegram/bot/models"
)

// NoopData callback для кнопок, которые ничего не делают (подписи, недоступные дни)
const NoopData = "noop"

// Label создаёт кнопку-подпись без действия
func Label(text string) models.InlineKeyboardButton {
	return Button(text, NoopData)
}

// BackButton создаёт кнопку "Назад"
func BackButton(callbackData string) models.InlineKeyboardButton {
	return Button("⬅️ Back", callbackData)
}

// ContinueButton создаёт кнопку "Далее"
func ContinueButton(callbackData string) models.InlineKeyboardButton {
	return Button("Continue ➡️", callbackData)
}

// CancelButton создаёт кнопку "Отмена"
func CancelButton(callbackData string) models.InlineKeyboardButton {
	return Button("❌ Cancel", callbackData)
}

// ConfirmButton создаёт кнопку "Подтвердить"
func ConfirmButton(text, callbackData string) models.InlineKeyboardButton {
	return Button("✅ "+text, callbackData)
}

// EditButton создаёт кнопку "Изменить"
func EditButton(text, callbackData string) models.InlineKeyboardButton {
	return Button("✏️ "+text, callbackData)
}

// BackContinueRow ряд навигации мастера; Continue показывается только когда шаг завершён
func BackContinueRow(backData, continueData string, canContinue bool) []models.InlineKeyboardButton {
	var row []models.InlineKeyboardButton
	if backData != "" {
		row = append(row, BackButton(backData))
	}
	if canContinue {
		row = append(row, ContinueButton(continueData))
	}
	return row
}
