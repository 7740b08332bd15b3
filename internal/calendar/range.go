package calendar

import (
	"fmt"
	"strings"
	"time"
)

// View is the calendar presentation mode.
type View int

const (
	ViewMonth View = iota
	ViewWeek
	ViewDay
	ViewList
)

// Views lists every view in tab order.
var Views = []View{ViewMonth, ViewWeek, ViewDay, ViewList}

// String returns the lowercase view name used in config files and flags.
func (v View) String() string {
	switch v {
	case ViewMonth:
		return "month"
	case ViewWeek:
		return "week"
	case ViewDay:
		return "day"
	case ViewList:
		return "list"
	default:
		return fmt.Sprintf("view(%d)", int(v))
	}
}

// Title returns the view name for display.
func (v View) Title() string {
	s := v.String()
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// ParseView parses a view name (case-insensitive).
func ParseView(s string) (View, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "month", "m":
		return ViewMonth, nil
	case "week", "w":
		return ViewWeek, nil
	case "day", "d":
		return ViewDay, nil
	case "list", "l", "agenda":
		return ViewList, nil
	default:
		return ViewMonth, fmt.Errorf("unknown calendar view %q", s)
	}
}

const (
	// GridDays is the fixed size of the month grid: six full weeks.
	GridDays = 42
	// DaysPerWeek is the number of columns in week and month grids.
	DaysPerWeek = 7
)

// DateRange is an inclusive span of whole local days.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t lies within the range, bounds included.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// Days returns the number of calendar days the range covers.
func (r DateRange) Days() int {
	return DaysBetween(r.Start, r.End) + 1
}

// ComputeRange returns the visible date range for pivot in view.
func ComputeRange(pivot time.Time, view View) DateRange {
	switch view {
	case ViewWeek:
		start := StartOfWeek(pivot)
		return DateRange{Start: start, End: EndOfDay(start.AddDate(0, 0, DaysPerWeek-1))}
	case ViewDay:
		return DateRange{Start: StartOfDay(pivot), End: EndOfDay(pivot)}
	case ViewList:
		return DateRange{
			Start: StartOfMonth(AddMonthsClamped(StartOfMonth(pivot), -1)),
			End:   EndOfMonth(AddMonthsClamped(StartOfMonth(pivot), 2)),
		}
	default:
		first := StartOfMonth(pivot)
		last := EndOfMonth(pivot)
		start := first.AddDate(0, 0, -int(first.Weekday()))
		end := last.AddDate(0, 0, int(time.Saturday-last.Weekday()))
		return DateRange{Start: start, End: EndOfDay(end)}
	}
}

// MonthGridDays returns the 42 days of the month grid for pivot, starting on the Sunday on or
// before the first of the month. The grid is always six weeks regardless of the month's shape.
func MonthGridDays(pivot time.Time) []time.Time {
	first := StartOfMonth(pivot)
	start := first.AddDate(0, 0, -int(first.Weekday()))

	days := make([]time.Time, GridDays)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

// GridRange returns the span of days view draws around pivot. Month draws all six grid
// weeks, which can run past ComputeRange; every other view draws exactly ComputeRange.
func GridRange(pivot time.Time, view View) DateRange {
	if view != ViewMonth {
		return ComputeRange(pivot, view)
	}
	days := MonthGridDays(pivot)
	return DateRange{Start: days[0], End: EndOfDay(days[len(days)-1])}
}

// WeekDays returns the seven days (Sunday first) of the week containing pivot.
func WeekDays(pivot time.Time) []time.Time {
	start := StartOfWeek(pivot)
	days := make([]time.Time, DaysPerWeek)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

// StepPivot moves pivot by delta units of view. List steps by month, since its window is
// re-centred on the pivot month.
func StepPivot(pivot time.Time, view View, delta int) time.Time {
	switch view {
	case ViewWeek:
		return pivot.AddDate(0, 0, 7*delta)
	case ViewDay:
		return pivot.AddDate(0, 0, delta)
	default:
		return AddMonthsClamped(pivot, delta)
	}
}

// FormatHeaderLabel returns the human label for the range shown around pivot.
func FormatHeaderLabel(pivot time.Time, view View) string {
	pivot = pivot.In(time.Local)
	switch view {
	case ViewWeek:
		r := ComputeRange(pivot, ViewWeek)
		return monthSpanLabel(r.Start, r.End)
	case ViewDay:
		return pivot.Format("Monday, January 2, 2006")
	case ViewList:
		r := ComputeRange(pivot, ViewList)
		return monthSpanLabel(r.Start, r.End)
	default:
		return pivot.Format("January 2006")
	}
}

// monthSpanLabel collapses to one month when start and end share it, and otherwise names
// both months, repeating the year only when it changes.
func monthSpanLabel(start, end time.Time) string {
	start = start.In(time.Local)
	end = end.In(time.Local)
	switch {
	case start.Year() != end.Year():
		return start.Format("January 2006") + " - " + end.Format("January 2006")
	case start.Month() != end.Month():
		return start.Format("January") + " - " + end.Format("January 2006")
	default:
		return start.Format("January 2006")
	}
}
