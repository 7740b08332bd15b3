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

// MaxTasksPerCell is how many tasks a month cell lists before "+N more".
const MaxTasksPerCell = 2

// MonthView draws the six-week month grid.
type MonthView struct{}

// SlotTasks returns the tasks of the selected day in cell order.
func (MonthView) SlotTasks(p Props) []api.Task {
	return calendar.SortForCell(p.Grouped[calendar.FormatDateKey(p.Cursor)])
}

// SlotTime returns local midnight of the selected day.
func (MonthView) SlotTime(p Props) time.Time {
	return calendar.StartOfDay(p.Cursor)
}

// Render draws the grid. Days outside the pivot month are dimmed but keep their tasks.
func (m MonthView) Render(p Props) string {
	days := calendar.MonthGridDays(p.Pivot)
	month := p.Pivot.In(time.Local).Month()

	// 8 vertical borders
	cellWidth := clamp((p.Width-8)/calendar.DaysPerWeek, 5, 24)

	taskLines := MaxTasksPerCell + 1
	if p.Height > 0 {
		// header + rule, then per week: number line, task lines, separator
		perWeek := (p.Height-2)/6 - 2
		taskLines = clamp(perWeek, 0, MaxTasksPerCell+1)
	}

	var b strings.Builder

	b.WriteString("│")
	for _, wd := range weekdayNames {
		b.WriteString(styles.CalendarWeekday.Render(fit(" "+wd, cellWidth)))
		b.WriteString("│")
	}
	b.WriteString("\n")
	b.WriteString(gridRule("├", "┼", "┤", cellWidth, calendar.DaysPerWeek))

	weeks := calendar.GridDays / calendar.DaysPerWeek
	for week := 0; week < weeks; week++ {
		row := days[week*calendar.DaysPerWeek : (week+1)*calendar.DaysPerWeek]

		b.WriteString("│")
		for _, d := range row {
			b.WriteString(m.dayStyle(p, d, month).Render(fit(fmt.Sprintf(" %2d", d.Day()), cellWidth)))
			b.WriteString("│")
		}
		b.WriteString("\n")

		cells := make([][]string, len(row))
		for i, d := range row {
			selected := -1
			if calendar.SameDay(d, p.Cursor) {
				selected = p.TaskCursor
			}
			cells[i], _ = cellLines(calendar.SortForCell(p.Grouped[calendar.FormatDateKey(d)]), cellOpts{
				lines:    taskLines,
				limit:    MaxTasksPerCell,
				width:    cellWidth,
				selected: selected,
				fill:     lipgloss.NewStyle(),
				now:      p.Now,
				overdue:  calendar.IsOverdue,
			})
		}
		for l := 0; l < taskLines; l++ {
			b.WriteString("│")
			for i := range row {
				b.WriteString(cells[i][l])
				b.WriteString("│")
			}
			b.WriteString("\n")
		}

		if week < weeks-1 {
			b.WriteString(gridRule("├", "┼", "┤", cellWidth, calendar.DaysPerWeek))
		}
	}
	b.WriteString(strings.TrimSuffix(gridRule("└", "┴", "┘", cellWidth, calendar.DaysPerWeek), "\n"))

	return b.String()
}

func (MonthView) dayStyle(p Props, d time.Time, month time.Month) lipgloss.Style {
	switch {
	case calendar.SameDay(d, p.Cursor):
		return styles.CalendarDaySelected
	case calendar.SameDay(d, p.Now):
		return styles.CalendarDayToday
	case d.Month() != month:
		return styles.CalendarDayOtherMonth
	default:
		return styles.CalendarDay
	}
}

func gridRule(left, mid, right string, cellWidth, cells int) string {
	segment := strings.Repeat("─", cellWidth)
	return left + strings.Repeat(segment+mid, cells-1) + segment + right + "\n"
}
