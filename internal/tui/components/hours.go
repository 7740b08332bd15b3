package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/hy4ri/taskcal/internal/api"
	"github.com/hy4ri/taskcal/internal/calendar"
	"github.com/hy4ri/taskcal/internal/tui/styles"
)

const (
	hoursPerDay = 24
	gutterWidth = 6 // "09:00 "
)

// WeekView draws seven day columns by 24 hour rows.
type WeekView struct{}

// SlotTasks returns the tasks due in the selected hour.
func (WeekView) SlotTasks(p Props) []api.Task {
	return hourSlotTasks(p.Grouped, p.Cursor)
}

// SlotTime returns the start of the selected hour.
func (WeekView) SlotTime(p Props) time.Time {
	return hourStart(p.Cursor)
}

// Render draws the week grid.
func (WeekView) Render(p Props) string {
	return renderHourGrid(p, calendar.WeekDays(p.Pivot), false)
}

// DayView draws one day as 24 hour rows with a marker at the current time.
type DayView struct{}

// SlotTasks returns the tasks due in the selected hour.
func (DayView) SlotTasks(p Props) []api.Task {
	return hourSlotTasks(p.Grouped, p.Cursor)
}

// SlotTime returns the start of the selected hour.
func (DayView) SlotTime(p Props) time.Time {
	return hourStart(p.Cursor)
}

// Render draws the day grid.
func (DayView) Render(p Props) string {
	return renderHourGrid(p, []time.Time{calendar.StartOfDay(p.Pivot)}, true)
}

// visibleHours returns the [first, last) hours that fit in height, keeping the cursor
// hour in view.
func visibleHours(p Props, rowHeight int) (int, int) {
	if p.Height <= 0 {
		return 0, hoursPerDay
	}
	fit := max((p.Height-1)/rowHeight, 1)
	if fit >= hoursPerDay {
		return 0, hoursPerDay
	}
	cursorHour := p.Cursor.In(time.Local).Hour()
	first := clamp(cursorHour-fit/2, 0, hoursPerDay-fit)
	return first, first + fit
}

func renderHourGrid(p Props, days []time.Time, withNowLine bool) string {
	rowHeight := max(p.RowHeight, 1)
	colWidth := clamp((p.Width-gutterWidth-len(days)-1)/len(days), 6, 120)
	cursorSlot := hourStart(p.Cursor)

	var b strings.Builder

	b.WriteString(blank(gutterWidth))
	b.WriteString("│")
	for _, d := range days {
		style := styles.CalendarWeekday
		switch {
		case calendar.SameDay(d, p.Cursor):
			style = styles.CalendarDaySelected
		case calendar.SameDay(d, p.Now):
			style = styles.CalendarDayToday
		}
		b.WriteString(style.Render(fit(" "+d.Format("Mon 2"), colWidth)))
		b.WriteString("│")
	}

	nowOffset := -1
	if withNowLine && calendar.SameDay(days[0], p.Now) {
		nowOffset = calendar.NowIndicatorOffset(p.Now, rowHeight)
	}

	first, last := visibleHours(p, rowHeight)
	for hour := first; hour < last; hour++ {
		cells := make([][]string, len(days))
		used := make([]int, len(days))
		for i, d := range days {
			slot := time.Date(d.Year(), d.Month(), d.Day(), hour, 0, 0, 0, time.Local)
			opts := cellOpts{
				lines:    rowHeight,
				limit:    rowHeight,
				width:    colWidth,
				selected: -1,
				fill:     lipgloss.NewStyle(),
				now:      p.Now,
				overdue:  calendar.IsOverdueAt,
			}
			if slot.Equal(cursorSlot) {
				opts.selected = p.TaskCursor
				opts.fill = styles.CalendarSlotSelected
			}
			cells[i], used[i] = cellLines(hourSlotTasks(p.Grouped, slot), opts)
		}

		for l := 0; l < rowHeight; l++ {
			b.WriteString("\n")

			gutter := blank(gutterWidth)
			if l == 0 {
				gutter = styles.CalendarHourLabel.Render(fit(fmt.Sprintf("%02d:00", hour), gutterWidth))
			}
			isNow := hour*rowHeight+l == nowOffset
			if isNow {
				gutter = styles.NowLine.Render(fit(calendar.FormatTimeHHMM(p.Now)+"▶", gutterWidth))
			}
			b.WriteString(gutter)
			b.WriteString("│")

			for i := range days {
				cell := cells[i][l]
				if isNow && l >= used[i] {
					cell = styles.NowLine.Render(strings.Repeat("─", colWidth))
				}
				b.WriteString(cell)
				b.WriteString("│")
			}
		}
	}

	return b.String()
}
