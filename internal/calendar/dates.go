// Package calendar holds the date arithmetic behind the calendar views:
// date keys, visible ranges, grid days, overdue policies and labels.
//
// Everything here is a pure function of its arguments. "Local" always means time.Local.
package calendar

import (
	"fmt"
	"strings"
	"time"
)

const (
	dateKeyLayout = "2006-01-02"
	timeLayout    = "15:04"
)

// DateKey is the canonical local-day key (YYYY-MM-DD) used to bucket tasks.
type DateKey string

// FormatDateKey returns the local calendar day of t.
func FormatDateKey(t time.Time) DateKey {
	return DateKey(t.In(time.Local).Format(dateKeyLayout))
}

// ParseDateKey returns local midnight of the day named by key.
func ParseDateKey(key string) (time.Time, error) {
	t, err := time.ParseInLocation(dateKeyLayout, strings.TrimSpace(key), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date key %q: %w", key, err)
	}
	return t, nil
}

// FormatTimeHHMM returns the local wall-clock time of t as HH:MM.
func FormatTimeHHMM(t time.Time) string {
	return t.In(time.Local).Format(timeLayout)
}

// CombineDateAndTime builds a local timestamp from a YYYY-MM-DD date and an optional HH:MM time.
// An empty time means local midnight.
func CombineDateAndTime(dateStr, timeStr string) (time.Time, error) {
	day, err := ParseDateKey(dateStr)
	if err != nil {
		return time.Time{}, err
	}

	timeStr = strings.TrimSpace(timeStr)
	if timeStr == "" {
		return day, nil
	}

	clock, err := time.Parse(timeLayout, timeStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: %w", timeStr, err)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, time.Local), nil
}

// StartOfDay returns 00:00:00.000 local on the day of t.
func StartOfDay(t time.Time) time.Time {
	t = t.In(time.Local)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}

// EndOfDay returns 23:59:59.999 local on the day of t.
func EndOfDay(t time.Time) time.Time {
	t = t.In(time.Local)
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), time.Local)
}

// StartOfWeek returns local midnight of the Sunday on or before t.
func StartOfWeek(t time.Time) time.Time {
	day := StartOfDay(t)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// StartOfMonth returns local midnight of the first day of t's month.
func StartOfMonth(t time.Time) time.Time {
	t = t.In(time.Local)
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.Local)
}

// EndOfMonth returns 23:59:59.999 local on the last day of t's month.
func EndOfMonth(t time.Time) time.Time {
	return EndOfDay(StartOfMonth(t).AddDate(0, 1, -1))
}

// SameDay reports whether a and b fall on the same local calendar day.
func SameDay(a, b time.Time) bool {
	return FormatDateKey(a) == FormatDateKey(b)
}

// DaysBetween returns the number of calendar days from a to b (negative if b is earlier).
// Counted on civil dates, so DST transitions do not skew it.
func DaysBetween(a, b time.Time) int {
	a = a.In(time.Local)
	b = b.In(time.Local)
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}

// AddMonthsClamped moves t by n calendar months, clamping the day to the target month's length
// (Jan 31 + 1 month is the last day of February, not early March).
func AddMonthsClamped(t time.Time, n int) time.Time {
	t = t.In(time.Local)
	first := time.Date(t.Year(), t.Month(), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.Local)
	target := first.AddDate(0, n, 0)
	lastDay := target.AddDate(0, 1, -1).Day()
	day := t.Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(target.Year(), target.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.Local)
}

// NowIndicatorOffset returns the line offset of the "now" marker in an hour grid where
// each hour is rowHeight lines tall.
func NowIndicatorOffset(now time.Time, rowHeight int) int {
	now = now.In(time.Local)
	return now.Hour()*rowHeight + now.Minute()*rowHeight/60
}
