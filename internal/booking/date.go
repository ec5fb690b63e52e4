package booking

import (
	"fmt"
	"time"
)

// Date календарная дата без времени суток
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate создаёт дату с нормализацией (32 октября -> 1 ноября)
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 12, 0, 0, 0, time.UTC))
}

// DateOf возвращает дату по настенным часам t (в её собственной локации)
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate разбирает дату в формате 2006-01-02
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// IsZero сообщает, что дата не задана
func (d Date) IsZero() bool {
	return d == Date{}
}

// Valid сообщает, что такой день есть в календаре (31 ноября нет)
func (d Date) Valid() bool {
	return !d.IsZero() && NewDate(d.Year, d.Month, d.Day) == d
}

// Midnight возвращает начало дня в указанной локации
func (d Date) Midnight(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

func (d Date) Weekday() time.Weekday {
	return d.Midnight(time.UTC).Weekday()
}

// Before сравнивает только календарные даты
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// AddDays сдвигает дату на n дней
func (d Date) AddDays(n int) Date {
	return NewDate(d.Year, d.Month, d.Day+n)
}

// String возвращает дату в формате 2006-01-02
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Long форматирует дату для показа пользователю: "Tuesday, November 10, 2026"
func (d Date) Long() string {
	return d.Midnight(time.UTC).Format("Monday, January 2, 2006")
}

// Month месяц календаря (год + месяц)
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf возвращает месяц, в который попадает дата
func MonthOf(d Date) Month {
	return Month{Year: d.Year, Month: d.Month}
}

// normalize приводит месяц к диапазону 1..12 с переносом года
func (m Month) normalize() Month {
	t := time.Date(m.Year, m.Month, 1, 12, 0, 0, 0, time.UTC)
	return Month{Year: t.Year(), Month: t.Month()}
}

// Next следующий месяц
func (m Month) Next() Month {
	return Month{Year: m.Year, Month: m.Month + 1}.normalize()
}

// Prev предыдущий месяц
func (m Month) Prev() Month {
	return Month{Year: m.Year, Month: m.Month - 1}.normalize()
}

// FirstDay первое число месяца
func (m Month) FirstDay() Date {
	return Date{Year: m.Year, Month: m.Month, Day: 1}
}

// Days количество дней в месяце (с учётом високосных лет)
func (m Month) Days() int {
	// нулевой день следующего месяца = последний день текущего
	return time.Date(m.Year, m.Month+1, 0, 12, 0, 0, 0, time.UTC).Day()
}

// Contains проверяет, что дата относится к месяцу
func (m Month) Contains(d Date) bool {
	return d.Year == m.Year && d.Month == m.Month
}

// String возвращает "November 2026"
func (m Month) String() string {
	return fmt.Sprintf("%s %d", m.Month, m.Year)
}
