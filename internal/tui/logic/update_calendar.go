package logic

import (
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hy4ri/taskcal/internal/calendar"
)

// GoToNext steps the pivot forward one unit of the current view and refetches.
func (h *Handler) GoToNext() tea.Cmd {
	return h.step(1)
}

// GoToPrevious steps the pivot back one unit of the current view and refetches.
func (h *Handler) GoToPrevious() tea.Cmd {
	return h.step(-1)
}

func (h *Handler) step(delta int) tea.Cmd {
	h.Pivot = calendar.StepPivot(h.Pivot, h.View, delta)
	h.Cursor = withClock(h.Pivot, h.Cursor)
	h.TaskCursor = 0
	h.setRange()
	return h.FetchTasks()
}

// GoToToday moves pivot and cursor to now and refetches.
func (h *Handler) GoToToday() tea.Cmd {
	now := h.Now()
	h.Pivot = now
	h.Cursor = withClock(now, now)
	h.TaskCursor = 0
	h.setRange()
	return h.FetchTasks()
}

// SetView switches to v around the selected day, refetches and persists v as the default view.
func (h *Handler) SetView(v calendar.View) tea.Cmd {
	h.View = v
	h.Pivot = h.Cursor
	h.TaskCursor = 0
	h.setRange()
	log.Printf("view %s, range %s to %s", v, calendar.FormatDateKey(h.Range.Start), calendar.FormatDateKey(h.Range.End))

	if h.Config != nil {
		h.Config.UI.DefaultView = v.String()
	}
	return tea.Batch(h.FetchTasks(), h.saveConfig())
}

func (h *Handler) cycleView() tea.Cmd {
	for i, v := range calendar.Views {
		if v == h.View {
			return h.SetView(calendar.Views[(i+1)%len(calendar.Views)])
		}
	}
	return h.SetView(calendar.ViewMonth)
}

func (h *Handler) setRange() {
	h.Range = calendar.ComputeRange(h.Pivot, h.View)
}

// moveCursor moves the selected slot by days and hours. Hours stay within the day. When the
// slot leaves the loaded range, the pivot follows it and the new range is fetched.
func (h *Handler) moveCursor(days, hours int) tea.Cmd {
	c := h.Cursor.In(time.Local)
	hour := min(max(c.Hour()+hours, 0), 23)
	h.Cursor = time.Date(c.Year(), c.Month(), c.Day()+days, hour, 0, 0, 0, time.Local)
	h.TaskCursor = 0

	if !h.Range.Contains(h.Cursor) {
		h.Pivot = h.Cursor
		h.setRange()
		return h.FetchTasks()
	}
	return nil
}

// moveTaskCursor cycles through the tasks of the current slot, with one extra stop on the
// empty part of the slot.
func (h *Handler) moveTaskCursor(delta int) {
	stops := len(h.slotTasks()) + 1
	h.TaskCursor = ((h.TaskCursor+delta)%stops + stops) % stops
}

func (h *Handler) clampTaskCursor() {
	h.TaskCursor = min(max(h.TaskCursor, 0), len(h.slotTasks()))
}

func (h *Handler) handleNavigation(action string) (tea.Cmd, bool) {
	switch action {
	case "left":
		return h.moveCursor(-1, 0), true
	case "right":
		return h.moveCursor(1, 0), true
	case "up":
		switch h.View {
		case calendar.ViewMonth:
			return h.moveCursor(-7, 0), true
		case calendar.ViewList:
			if h.TaskCursor > 0 {
				h.TaskCursor--
			}
			return nil, true
		default:
			return h.moveCursor(0, -1), true
		}
	case "down":
		switch h.View {
		case calendar.ViewMonth:
			return h.moveCursor(7, 0), true
		case calendar.ViewList:
			h.TaskCursor = min(h.TaskCursor+1, len(h.slotTasks()))
			return nil, true
		default:
			return h.moveCursor(0, 1), true
		}
	case "prev":
		return h.GoToPrevious(), true
	case "next":
		return h.GoToNext(), true
	case "today":
		return h.GoToToday(), true
	case "task_next":
		h.moveTaskCursor(1)
		return nil, true
	case "task_prev":
		h.moveTaskCursor(-1)
		return nil, true
	case "view_month":
		return h.SetView(calendar.ViewMonth), true
	case "view_week":
		return h.SetView(calendar.ViewWeek), true
	case "view_day":
		return h.SetView(calendar.ViewDay), true
	case "view_list":
		return h.SetView(calendar.ViewList), true
	case "cycle_view":
		return h.cycleView(), true
	}
	return nil, false
}

// withClock returns the day of day at the hour of clock.
func withClock(day, clock time.Time) time.Time {
	day = day.In(time.Local)
	return time.Date(day.Year(), day.Month(), day.Day(), clock.In(time.Local).Hour(), 0, 0, 0, time.Local)
}
