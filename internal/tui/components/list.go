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

const noDueDateHeader = "No due date"

// ListView draws every task in the range grouped by day, with undated tasks last.
type ListView struct{}

// SlotTasks returns all listed tasks in display order. The list is one slot.
func (ListView) SlotTasks(p Props) []api.Task {
	return calendar.SortByDue(p.Tasks)
}

// SlotTime returns local midnight of the cursor day, used when adding from the list.
func (ListView) SlotTime(p Props) time.Time {
	return calendar.StartOfDay(p.Cursor)
}

// Render draws the grouped list, scrolled so the selected row stays visible.
func (l ListView) Render(p Props) string {
	tasks := l.SlotTasks(p)

	var rows []string
	selectedRow := 0
	lastGroup := ""
	for i, t := range tasks {
		group := groupHeader(t, p.Now)
		if group != lastGroup {
			if lastGroup != "" {
				rows = append(rows, "")
			}
			rows = append(rows, styles.DateGroupHeader.Render(group))
			lastGroup = group
		}
		if i == p.TaskCursor {
			selectedRow = len(rows)
		}
		rows = append(rows, l.taskRow(t, i == p.TaskCursor, p))
	}

	if len(tasks) == 0 {
		rows = append(rows, styles.HelpDesc.Render("  No tasks in this range"))
	}

	addRow := "  + add task on " + calendar.StartOfDay(p.Cursor).Format("Mon, Jan 2")
	if p.TaskCursor >= len(tasks) {
		selectedRow = len(rows) + 1
		addRow = styles.TaskSelected.Render(addRow)
	} else {
		addRow = styles.HelpDesc.Render(addRow)
	}
	rows = append(rows, "", addRow)

	if p.Height > 0 && len(rows) > p.Height {
		start := clamp(selectedRow-p.Height/2, 0, len(rows)-p.Height)
		rows = rows[start : start+p.Height]
	}

	out := strings.Join(rows, "\n")
	if p.Width > 0 {
		out = lipgloss.NewStyle().MaxWidth(p.Width).Render(out)
	}
	return out
}

func groupHeader(t api.Task, now time.Time) string {
	if t.DueDate == nil {
		return noDueDateHeader
	}
	day := t.DueDate.In(time.Local)
	return fmt.Sprintf("%s · %s", calendar.DateStatus(day, now), day.Format("Mon, Jan 2"))
}

func (ListView) taskRow(t api.Task, selected bool, p Props) string {
	clock := "     "
	if t.DueDate != nil {
		clock = calendar.FormatTimeHHMM(*t.DueDate)
	}

	check := "○"
	if t.IsDone() {
		check = "✓"
	}

	title := t.Title
	var titleStyle lipgloss.Style
	switch {
	case selected:
		titleStyle = styles.TaskSelected
	case t.IsDone():
		titleStyle = styles.TaskCompleted
	case calendar.IsOverdue(t, p.Now):
		titleStyle = styles.TaskOverdue
	default:
		titleStyle = styles.TaskItem
	}
	if selected {
		title = "▸ " + title
	}

	parts := []string{
		"  " + check + " " + clock,
		titleStyle.Render(title),
		styles.StatusVariant(t.Status).Badge(),
		styles.PriorityVariant(t.Priority).Badge(),
	}
	for _, tag := range t.Tags {
		parts = append(parts, styles.TagBadge(tag))
	}
	return strings.Join(parts, " ")
}
