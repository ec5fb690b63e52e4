package booking

import (
	"iter"
	"time"
)

// DaysPerWeek число колонок сетки календаря
const DaysPerWeek = 7

// Cell ячейка сетки календаря: либо пустая (отступ до 1-го числа), либо конкретная дата
type Cell struct {
	Date Date
}

// IsEmpty сообщает, что ячейка является отступом
func (c Cell) IsEmpty() bool {
	return c.Date.IsZero()
}

// LeadingBlanks количество пустых ячеек перед первым числом (0 = воскресенье)
func LeadingBlanks(m Month) int {
	return int(m.FirstDay().Weekday() - time.Sunday)
}

// Grid возвращает ячейки месяца по порядку, недели начинаются с воскресенья.
// Последовательность ленивая и перезапускаемая: LeadingBlanks(m) пустых ячеек,
// затем по одной ячейке на каждый день месяца.
func Grid(m Month) iter.Seq[Cell] {
	m = m.normalize()
	return func(yield func(Cell) bool) {
		for i := 0; i < LeadingBlanks(m); i++ {
			if !yield(Cell{}) {
				return
			}
		}
		for day := 1; day <= m.Days(); day++ {
			if !yield(Cell{Date: Date{Year: m.Year, Month: m.Month, Day: day}}) {
				return
			}
		}
	}
}

// Weeks раскладывает Grid по строкам из 7 ячеек; последняя строка добивается пустыми ячейками
func Weeks(m Month) [][]Cell {
	var (
		weeks [][]Cell
		row   []Cell
	)
	for cell := range Grid(m) {
		row = append(row, cell)
		if len(row) == DaysPerWeek {
			weeks = append(weeks, row)
			row = nil
		}
	}
	if len(row) > 0 {
		for len(row) < DaysPerWeek {
			row = append(row, Cell{})
		}
		weeks = append(weeks, row)
	}
	return weeks
}

// WeekdayHeaders подписи колонок сетки
func WeekdayHeaders() []string {
	return []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
}
