package calendar

import (
	"testing"
	"time"
)

func local(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.Local)
}

func TestFormatDateKey_LocalDay(t *testing.T) {
	days := []time.Time{
		local(2024, 3, 15, 0, 0),
		local(2024, 2, 29, 0, 0),
		local(2023, 12, 31, 0, 0),
		local(2024, 11, 3, 0, 0),
	}

	for _, d := range days {
		key := FormatDateKey(d)
		lastMilli := EndOfDay(d)
		if got := FormatDateKey(lastMilli); got != key {
			t.Errorf("%v: expected %s just before midnight, got %s", d, key, got)
		}
		nextDay := StartOfDay(d).AddDate(0, 0, 1)
		if got := FormatDateKey(nextDay); got == key {
			t.Errorf("%v: key did not change across local midnight (%s)", d, got)
		}
	}

	lateEvening := local(2024, 3, 15, 23, 30)
	if got := FormatDateKey(lateEvening); got != "2024-03-15" {
		t.Errorf("expected 23:30 local to key to its own day, got %s", got)
	}
	if got := FormatDateKey(lateEvening.UTC()); got != "2024-03-15" {
		t.Errorf("expected UTC representation to key to the local day, got %s", got)
	}
}

func TestCombineDateAndTime(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		clock   string
		want    time.Time
		wantErr bool
	}{
		{"date only is midnight", "2024-03-15", "", local(2024, 3, 15, 0, 0), false},
		{"with time", "2024-03-15", "09:45", local(2024, 3, 15, 9, 45), false},
		{"surrounding space", " 2024-03-15 ", " 18:05 ", local(2024, 3, 15, 18, 5), false},
		{"bad date", "2024-13-01", "", time.Time{}, true},
		{"bad time", "2024-03-15", "25:00", time.Time{}, true},
		{"empty date", "", "10:00", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CombineDateAndTime(tt.date, tt.clock)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestCombineDateAndTime_RoundTrip(t *testing.T) {
	moments := []time.Time{
		time.Date(2024, 3, 15, 9, 41, 27, 123_000_000, time.Local),
		time.Date(2024, 12, 31, 23, 59, 59, 999_000_000, time.Local),
		time.Date(2025, 1, 1, 0, 0, 1, 0, time.Local),
	}

	for _, m := range moments {
		got, err := CombineDateAndTime(string(FormatDateKey(m)), FormatTimeHHMM(m))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := time.Date(m.Year(), m.Month(), m.Day(), m.Hour(), m.Minute(), 0, 0, time.Local)
		if !got.Equal(want) {
			t.Errorf("round trip of %v: expected %v, got %v", m, want, got)
		}
	}
}

func TestEndOfDay(t *testing.T) {
	got := EndOfDay(local(2024, 3, 15, 8, 0))
	if got.Hour() != 23 || got.Minute() != 59 || got.Second() != 59 || got.Nanosecond() != 999_000_000 {
		t.Errorf("unexpected end of day %v", got)
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		a, b time.Time
		want int
	}{
		{local(2024, 3, 15, 23, 0), local(2024, 3, 16, 1, 0), 1},
		{local(2024, 3, 16, 1, 0), local(2024, 3, 15, 23, 0), -1},
		{local(2024, 3, 1, 0, 0), local(2024, 4, 1, 0, 0), 31},
		{local(2024, 3, 15, 0, 0), local(2024, 3, 15, 23, 59), 0},
	}
	for _, tt := range tests {
		if got := DaysBetween(tt.a, tt.b); got != tt.want {
			t.Errorf("DaysBetween(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestAddMonthsClamped(t *testing.T) {
	tests := []struct {
		in   time.Time
		n    int
		want time.Time
	}{
		{local(2024, 1, 31, 0, 0), 1, local(2024, 2, 29, 0, 0)},
		{local(2023, 1, 31, 0, 0), 1, local(2023, 2, 28, 0, 0)},
		{local(2024, 3, 31, 10, 0), -1, local(2024, 2, 29, 10, 0)},
		{local(2024, 12, 15, 0, 0), 1, local(2025, 1, 15, 0, 0)},
		{local(2024, 1, 15, 0, 0), -1, local(2023, 12, 15, 0, 0)},
	}
	for _, tt := range tests {
		if got := AddMonthsClamped(tt.in, tt.n); !got.Equal(tt.want) {
			t.Errorf("AddMonthsClamped(%v, %d) = %v, want %v", tt.in, tt.n, got, tt.want)
		}
	}
}

func TestNowIndicatorOffset(t *testing.T) {
	now := local(2024, 3, 15, 10, 30)
	if got := NowIndicatorOffset(now, 60); got != 630 {
		t.Errorf("expected 630, got %d", got)
	}
	if got := NowIndicatorOffset(now, 2); got != 21 {
		t.Errorf("expected 21, got %d", got)
	}
	if got := NowIndicatorOffset(local(2024, 3, 15, 0, 0), 3); got != 0 {
		t.Errorf("expected 0 at midnight, got %d", got)
	}
}
