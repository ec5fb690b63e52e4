package booking

import (
	"fmt"
	"time"
)

// Slot метка получасового слота, например "10:00 AM"
type Slot string

// SlotLength длина одного слота
const SlotLength = 30 * time.Minute

const slotLayout = "3:04 PM"

// businessWindow рабочее окно [start, end) в минутах от полуночи
type businessWindow struct {
	start, end int
}

// Утро и после обеда, между ними обеденный перерыв
var businessWindows = []businessWindow{
	{start: 9 * 60, end: 12 * 60},
	{start: 13 * 60, end: 17 * 60},
}

var slots = buildSlots()

func buildSlots() []Slot {
	var out []Slot
	step := int(SlotLength / time.Minute)
	for _, w := range businessWindows {
		for m := w.start; m < w.end; m += step {
			t := time.Date(2000, time.January, 1, m/60, m%60, 0, 0, time.UTC)
			out = append(out, Slot(t.Format(slotLayout)))
		}
	}
	return out
}

// Slots возвращает упорядоченный список слотов (копию)
func Slots() []Slot {
	out := make([]Slot, len(slots))
	copy(out, slots)
	return out
}

// ParseSlot проверяет, что метка входит в список слотов
func ParseSlot(label string) (Slot, error) {
	for _, s := range slots {
		if string(s) == label {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSlot, label)
}

// Index позиция слота в списке, -1 если слот неизвестен
func (s Slot) Index() int {
	for i, candidate := range slots {
		if candidate == s {
			return i
		}
	}
	return -1
}

// Start время начала слота в указанный день
func (s Slot) Start(d Date, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(slotLayout, string(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse slot %q: %w", s, err)
	}
	return d.Midnight(loc).Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute), nil
}

func (s Slot) String() string {
	return string(s)
}
