// Package calendar lays out a month as a 7-column grid and buckets
// appointments into its days.
package calendar

import (
	"fmt"
	"sort"
	"time"

	"instala_control/internal/domain/entities"
)

// DateLayout is the ISO calendar date used by every record.
const DateLayout = "2006-01-02"

// Cursor addresses a displayed month.
type Cursor struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// CursorOf returns the month containing t.
func CursorOf(t time.Time) Cursor {
	return Cursor{Year: t.Year(), Month: t.Month()}
}

// Shift moves the cursor by a signed number of months, rolling the year over
// in both directions (January - 1 is the previous December).
func (c Cursor) Shift(offset int) Cursor {
	t := time.Date(c.Year, c.Month+time.Month(offset), 1, 0, 0, 0, 0, time.UTC)
	return Cursor{Year: t.Year(), Month: t.Month()}
}

// Cell is one square of the grid. Leading placeholder cells have Empty set
// and nothing else.
type Cell struct {
	Empty        bool                   `json:"empty"`
	Day          int                    `json:"day,omitempty"`
	Date         string                 `json:"date,omitempty"`
	Appointments []entities.Appointment `json:"appointments,omitempty"`
	Selected     bool                   `json:"selected,omitempty"`
	Today        bool                   `json:"today,omitempty"`
}

type Grid struct {
	Year         int        `json:"year"`
	Month        time.Month `json:"month"`
	LeadingEmpty int        `json:"leading_empty"`
	DaysInMonth  int        `json:"days_in_month"`
	Cells        []Cell     `json:"cells"`
}

// DaysInMonth uses day 0 of the following month, which normalizes to the
// last day of the requested one (leap years included).
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstWeekday is the weekday of day 1 (0 = Sunday).
func FirstWeekday(year int, month time.Month) int {
	return int(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday())
}

// ISODate formats a day of the month as YYYY-MM-DD.
func ISODate(year int, month time.Month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
}

// Build computes the month layout. selected and today are compared by
// calendar date only; their location is respected as given.
func Build(year int, month time.Month, appointments []entities.Appointment, selected, today time.Time) Grid {
	leading := FirstWeekday(year, month)
	days := DaysInMonth(year, month)

	byDate := make(map[string][]entities.Appointment)
	for _, a := range appointments {
		byDate[a.Date] = append(byDate[a.Date], a)
	}

	selectedDate := selected.Format(DateLayout)
	todayDate := today.Format(DateLayout)

	cells := make([]Cell, 0, leading+days)
	for i := 0; i < leading; i++ {
		cells = append(cells, Cell{Empty: true})
	}
	for d := 1; d <= days; d++ {
		date := ISODate(year, month, d)
		cells = append(cells, Cell{
			Day:          d,
			Date:         date,
			Appointments: byDate[date],
			Selected:     !selected.IsZero() && date == selectedDate,
			Today:        date == todayDate,
		})
	}

	return Grid{
		Year:         year,
		Month:        month,
		LeadingEmpty: leading,
		DaysInMonth:  days,
		Cells:        cells,
	}
}

// DayAgenda returns the appointments of one date ordered by time.
func DayAgenda(appointments []entities.Appointment, date string) []entities.Appointment {
	out := make([]entities.Appointment, 0)
	for _, a := range appointments {
		if a.Date == date {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out
}
