package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/hy4ri/taskcal/internal/api"
	"github.com/hy4ri/taskcal/internal/tui/styles"
)

var weekdayNames = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// cellOpts describes how the task lines of one grid cell are drawn.
type cellOpts struct {
	lines    int // available lines
	limit    int // most tasks to list before collapsing into "+N more"
	width    int
	selected int // index of the highlighted task, -1 for none
	fill     lipgloss.Style
	now      time.Time
	overdue  func(api.Task, time.Time) bool
}

// cellLines lays out tasks in a fixed number of lines and reports how many lines hold
// content. When tasks do not fit, the last used line reads "+N more".
func cellLines(tasks []api.Task, o cellOpts) ([]string, int) {
	lines := make([]string, o.lines)
	for i := range lines {
		lines[i] = o.fill.Render(blank(o.width))
	}
	if o.lines == 0 {
		return lines, 0
	}

	visible := min(len(tasks), o.limit, o.lines)
	if len(tasks) > visible && visible == o.lines {
		visible = o.lines - 1
	}
	hidden := len(tasks) - visible

	for i := 0; i < visible; i++ {
		lines[i] = taskCell(tasks[i], i == o.selected, o)
	}
	if hidden > 0 {
		lines[visible] = styles.CalendarMoreTasks.Render(fit(fmt.Sprintf(" +%d more", hidden), o.width))
		return lines, visible + 1
	}
	return lines, visible
}

func taskCell(t api.Task, selected bool, o cellOpts) string {
	marker := " "
	overdue := o.overdue != nil && o.overdue(t, o.now)
	switch {
	case t.IsDone():
		marker = "✓"
	case overdue:
		marker = "!"
	}
	text := fit(marker+t.Title, o.width)

	switch {
	case selected:
		return styles.TaskSelected.Render(text)
	case t.IsDone():
		return styles.TaskCompleted.Render(text)
	case overdue:
		return styles.TaskOverdue.Render(text)
	default:
		return styles.PriorityStyle(t.Priority).Render(text)
	}
}
