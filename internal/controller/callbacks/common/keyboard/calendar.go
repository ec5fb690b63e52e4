package keyboard

import (
	"fmt"
	"strconv"

	"github.com/go-telegram/bot/models"

	"github.com/Freeeeeet/consultation_bot/internal/booking"
)

// CalendarPagination создаёт ряд переключения месяцев
func CalendarPagination(prevData, nextData string, month booking.Month) []models.InlineKeyboardButton {
	return []models.InlineKeyboardButton{
		Button("◀️", prevData),
		Label("📅 " + month.String()),
		Button("▶️", nextData),
	}
}

// WeekdayHeaderRow ряд подписей дней недели
func WeekdayHeaderRow() []models.InlineKeyboardButton {
	headers := booking.WeekdayHeaders()
	row := make([]models.InlineKeyboardButton, 0, len(headers))
	for _, h := range headers {
		row = append(row, Label(h[:2]))
	}
	return row
}

// CalendarDays сетка дней месяца по 7 кнопок в ряд.
// Недоступные дни и пустые ячейки получают NoopData, выбранный день помечается.
func CalendarDays(
	month booking.Month,
	selectable func(booking.Date) bool,
	selected booking.Date,
	dayData func(booking.Date) string,
) [][]models.InlineKeyboardButton {
	weeks := booking.Weeks(month)
	rows := make([][]models.InlineKeyboardButton, 0, len(weeks))

	for _, week := range weeks {
		row := make([]models.InlineKeyboardButton, 0, booking.DaysPerWeek)
		for _, cell := range week {
			row = append(row, dayButton(cell, selectable, selected, dayData))
		}
		rows = append(rows, row)
	}
	return rows
}

func dayButton(
	cell booking.Cell,
	selectable func(booking.Date) bool,
	selected booking.Date,
	dayData func(booking.Date) string,
) models.InlineKeyboardButton {
	if cell.IsEmpty() {
		return Label(" ")
	}

	day := strconv.Itoa(cell.Date.Day)
	switch {
	case cell.Date == selected:
		return Button(fmt.Sprintf("[%s]", day), dayData(cell.Date))
	case !selectable(cell.Date):
		return Label("·")
	default:
		return Button(day, dayData(cell.Date))
	}
}
