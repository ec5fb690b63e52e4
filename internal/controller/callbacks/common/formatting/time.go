package formatting

import (
	"fmt"
	"time"

	"github.com/Freeeeeet/consultation_bot/internal/booking"
)

// FormatDate форматирует дату для экранов мастера
func FormatDate(d booking.Date) string {
	if d.IsZero() {
		return "not selected"
	}
	return d.Long()
}

// FormatSlot форматирует время начала и конца консультации
func FormatSlot(slot booking.Slot, duration time.Duration) string {
	start, err := slot.Start(booking.Date{Year: 2000, Month: time.January, Day: 1}, time.UTC)
	if err != nil || duration <= 0 {
		return slot.String()
	}
	return fmt.Sprintf("%s - %s", slot, start.Add(duration).Format("3:04 PM"))
}

// FormatDuration форматирует длительность
func FormatDuration(d time.Duration) string {
	minutes := int(d / time.Minute)
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}
	hours := minutes / 60
	mins := minutes % 60
	if mins == 0 {
		return fmt.Sprintf("%d h", hours)
	}
	return fmt.Sprintf("%d h %d min", hours, mins)
}
