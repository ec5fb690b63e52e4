package booking

import (
	"fmt"
	"time"
)

// Today возвращает текущую календарную дату; время суток отбрасывается
func Today(now time.Time) Date {
	return DateOf(now)
}

// Available решает, можно ли выбрать дату: не раньше сегодняшней и не в выходной
func Available(d, today Date) bool {
	return CheckAvailability(d, today) == nil
}

// CheckAvailability как Available, но возвращает причину отказа
func CheckAvailability(d, today Date) error {
	if d.IsZero() {
		return ErrDateRequired
	}
	if !d.Valid() {
		return fmt.Errorf("%w: %d-%02d-%02d is not a calendar date", ErrDateUnavailable, d.Year, int(d.Month), d.Day)
	}
	if d.Before(today) {
		return fmt.Errorf("%w: %s is in the past", ErrDateUnavailable, d)
	}
	switch d.Weekday() {
	case time.Saturday, time.Sunday:
		return fmt.Errorf("%w: %s is a weekend", ErrDateUnavailable, d)
	}
	return nil
}

// IsWeekend проверяет, что дата приходится на субботу или воскресенье
func IsWeekend(d Date) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
