// Package calendar holds the month/year value objects and the month arithmetic used by schedules.
package calendar

import (
	"fmt"
	"time"

	"github.com/MrJamesThe3rd/cuotas/internal/validation"
)

// Month is a calendar month, 1 through 12.
type Month int

func NewMonth(m int) (Month, error) {
	if m < 1 || m > 12 {
		return 0, validation.New("month", fmt.Sprintf("must be between 1 and 12, got %d", m))
	}

	return Month(m), nil
}

// Next wraps December to January.
func (m Month) Next() Month {
	if m == 12 {
		return 1
	}

	return m + 1
}

// Previous wraps January to December.
func (m Month) Previous() Month {
	if m == 1 {
		return 12
	}

	return m - 1
}

func (m Month) Time() time.Month {
	return time.Month(m)
}

// String renders the month zero padded, e.g. "03".
func (m Month) String() string {
	return fmt.Sprintf("%02d", int(m))
}

// Year is a non-negative calendar year.
type Year int

func NewYear(y int) (Year, error) {
	if y < 0 {
		return 0, validation.New("year", "cannot be negative")
	}

	return Year(y), nil
}

func (y Year) IsLeap() bool {
	v := int(y)
	return (v%4 == 0 && v%100 != 0) || v%400 == 0
}

func (y Year) String() string {
	return fmt.Sprintf("%d", int(y))
}

// DaysIn returns the number of days of month m in year y.
func DaysIn(m Month, y Year) int {
	return time.Date(int(y), m.Time()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// AddMonths moves t by n calendar months keeping the day of month, clamped to the last day of the
// target month: Jan 31 + 1 month is Feb 28 (or 29), never Mar 3.
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()

	first := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, t.Location())

	last := DaysIn(Month(first.Month()), Year(first.Year()))
	if d > last {
		d = last
	}

	return time.Date(first.Year(), first.Month(), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// MonthOf returns the month/year bucket a date falls in.
func MonthOf(t time.Time) (Month, Year) {
	return Month(t.Month()), Year(t.Year())
}

// Bounds returns the first instant of the bucket and the first instant of the next one.
func Bounds(m Month, y Year) (time.Time, time.Time) {
	start := time.Date(int(y), m.Time(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}
