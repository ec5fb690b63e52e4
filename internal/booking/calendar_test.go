package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrid_CellCountMatchesMonth(t *testing.T) {
	for year := 1999; year <= 2032; year++ {
		for month := time.January; month <= time.December; month++ {
			m := Month{Year: year, Month: month}

			var (
				total, blanks int
				seenDate      bool
				days          []int
			)
			for cell := range Grid(m) {
				total++
				if cell.IsEmpty() {
					require.False(t, seenDate, "%s: blank cell after a date", m)
					blanks++
					continue
				}
				seenDate = true
				days = append(days, cell.Date.Day)
			}

			first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
			last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)

			require.Equal(t, int(first.Weekday()), blanks, m.String())
			require.Equal(t, blanks+last.Day(), total, m.String())
			require.Len(t, days, last.Day(), m.String())
			for i, d := range days {
				require.Equal(t, i+1, d, m.String())
			}
		}
	}
}

func TestGrid_LeapFebruary(t *testing.T) {
	assert.Equal(t, 29, Month{Year: 2028, Month: time.February}.Days())
	assert.Equal(t, 28, Month{Year: 2026, Month: time.February}.Days())
	assert.Equal(t, 28, Month{Year: 2100, Month: time.February}.Days())
	assert.Equal(t, 29, Month{Year: 2000, Month: time.February}.Days())
}

func TestGrid_Restartable(t *testing.T) {
	seq := Grid(Month{Year: 2026, Month: time.November})

	count := func() int {
		n := 0
		for range seq {
			n++
		}
		return n
	}
	assert.Equal(t, count(), count())

	// ранний выход
	n := 0
	for range seq {
		n++
		if n == 3 {
			break
		}
	}
	assert.Equal(t, 3, n)
}

func TestWeeks_November2026(t *testing.T) {
	// 1 ноября 2026 воскресенье: отступов нет, 30 дней -> 5 строк
	weeks := Weeks(Month{Year: 2026, Month: time.November})
	require.Len(t, weeks, 5)
	for _, w := range weeks {
		require.Len(t, w, DaysPerWeek)
	}
	assert.Equal(t, NewDate(2026, time.November, 1), weeks[0][0].Date)
	assert.Equal(t, NewDate(2026, time.November, 10), weeks[1][2].Date)
	assert.True(t, weeks[4][2].IsEmpty())
	assert.Equal(t, 0, LeadingBlanks(Month{Year: 2026, Month: time.November}))
}

func TestWeeks_SixRows(t *testing.T) {
	// август 2026 начинается в субботу
	weeks := Weeks(Month{Year: 2026, Month: time.August})
	require.Len(t, weeks, 6)
	assert.Equal(t, 6, LeadingBlanks(Month{Year: 2026, Month: time.August}))
	assert.Equal(t, NewDate(2026, time.August, 1), weeks[0][6].Date)
}

func TestMonth_Navigation(t *testing.T) {
	dec := Month{Year: 2026, Month: time.December}
	assert.Equal(t, Month{Year: 2027, Month: time.January}, dec.Next())
	assert.Equal(t, dec, dec.Next().Prev())
	assert.Equal(t, Month{Year: 2025, Month: time.December}, Month{Year: 2026, Month: time.January}.Prev())
	assert.Equal(t, "November 2026", Month{Year: 2026, Month: time.November}.String())
}

func TestDate_Helpers(t *testing.T) {
	d := NewDate(2026, time.October, 32)
	assert.Equal(t, NewDate(2026, time.November, 1), d)
	assert.Equal(t, "2026-11-01", d.String())
	assert.Equal(t, "Tuesday, November 10, 2026", NewDate(2026, time.November, 10).Long())
	assert.True(t, NewDate(2026, time.October, 31).Before(d))
	assert.False(t, d.Before(d))
	assert.Equal(t, NewDate(2027, time.January, 1), NewDate(2026, time.December, 31).AddDays(1))

	parsed, err := ParseDate("2026-11-10")
	require.NoError(t, err)
	assert.Equal(t, NewDate(2026, time.November, 10), parsed)

	_, err = ParseDate("10/11/2026")
	assert.Error(t, err)
}
