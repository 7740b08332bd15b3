// Package components renders the calendar views and the overlays drawn on top of them.
//
// Renderers are pure: they turn Props into a string and answer which tasks and which time
// the cursor slot covers. They never navigate, fetch or persist; selection is reported
// through Callbacks.
package components

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hy4ri/taskcal/internal/api"
	"github.com/hy4ri/taskcal/internal/calendar"
)

// Props is everything a calendar renderer needs for one frame.
type Props struct {
	Pivot time.Time
	Now   time.Time

	// Cursor is the selected slot. TaskCursor indexes SlotTasks; len(SlotTasks) selects
	// the empty part of the slot.
	Cursor     time.Time
	TaskCursor int

	// Grouped holds the filtered dated tasks by local day; Tasks is the filtered list
	// including undated tasks.
	Grouped map[calendar.DateKey][]api.Task
	Tasks   []api.Task

	Width     int
	Height    int
	RowHeight int
}

// Callbacks report selection intents back to the view-model.
type Callbacks struct {
	OnTaskSelect func(api.Task) tea.Cmd
	OnSlotSelect func(time.Time) tea.Cmd
}

// CalendarRenderer draws one calendar view.
type CalendarRenderer interface {
	Render(p Props) string
	// SlotTasks returns the tasks in the cursor slot in display order.
	SlotTasks(p Props) []api.Task
	// SlotTime returns the start of the cursor slot.
	SlotTime(p Props) time.Time
}

// ForView returns the renderer for v.
func ForView(v calendar.View) CalendarRenderer {
	switch v {
	case calendar.ViewWeek:
		return WeekView{}
	case calendar.ViewDay:
		return DayView{}
	case calendar.ViewList:
		return ListView{}
	default:
		return MonthView{}
	}
}

// Activate invokes OnTaskSelect for the task under the cursor, or OnSlotSelect with the slot
// time when the cursor is on the empty part of the slot.
func Activate(r CalendarRenderer, p Props, cb Callbacks) tea.Cmd {
	tasks := r.SlotTasks(p)
	if p.TaskCursor >= 0 && p.TaskCursor < len(tasks) {
		if cb.OnTaskSelect == nil {
			return nil
		}
		return cb.OnTaskSelect(tasks[p.TaskCursor])
	}
	if cb.OnSlotSelect == nil {
		return nil
	}
	return cb.OnSlotSelect(r.SlotTime(p))
}

// hourSlotTasks returns the tasks due in the local hour of slot, in cell order.
func hourSlotTasks(grouped map[calendar.DateKey][]api.Task, slot time.Time) []api.Task {
	day := grouped[calendar.FormatDateKey(slot)]
	hour := slot.In(time.Local).Hour()
	var out []api.Task
	for _, t := range day {
		if t.DueDate != nil && t.DueDate.In(time.Local).Hour() == hour {
			out = append(out, t)
		}
	}
	return calendar.SortForCell(out)
}

// hourStart truncates t to the start of its local hour.
func hourStart(t time.Time) time.Time {
	t = t.In(time.Local)
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, time.Local)
}
