package logic

import (
	"github.com/hy4ri/taskcal/internal/api"
	"github.com/hy4ri/taskcal/internal/calendar"
	"github.com/hy4ri/taskcal/internal/tui/components"
	"github.com/hy4ri/taskcal/internal/tui/state"
)

// derivedCache memoizes the filtered and grouped task views for one data version and range.
type derivedCache struct {
	valid   bool
	version int64
	rng     calendar.DateRange

	filtered []api.Task
	grouped  map[calendar.DateKey][]api.Task
}

func (c *derivedCache) fresh(version int64, rng calendar.DateRange) bool {
	return c.valid && c.version == version && c.rng == rng
}

// UpdateFilters merges partial into the active filters. Filtering is client-side only.
func (h *Handler) UpdateFilters(partial calendar.Filters) {
	h.Filters = h.Filters.Merge(partial)
	h.BumpDataVersion()
	h.clampTaskCursor()
}

// ClearFilters removes every restriction.
func (h *Handler) ClearFilters() {
	h.Filters = calendar.Filters{}
	h.BumpDataVersion()
	h.clampTaskCursor()
}

// FilteredTasks returns the loaded tasks that pass the filters. Dated tasks must also fall
// inside the drawn days, so a view switch shows the right days before the refetch lands.
func (h *Handler) FilteredTasks() []api.Task {
	h.refreshDerived()
	return h.memo.filtered
}

// TasksByDateKey groups FilteredTasks by local due day.
func (h *Handler) TasksByDateKey() map[calendar.DateKey][]api.Task {
	h.refreshDerived()
	return h.memo.grouped
}

// drawnRange is the span of days the current view draws. It equals Range except in Month
// view, whose six-week grid can extend past the end of Range.
func (h *Handler) drawnRange() calendar.DateRange {
	return calendar.GridRange(h.Pivot, h.View)
}

func (h *Handler) refreshDerived() {
	span := h.drawnRange()
	if h.memo.fresh(h.DataVersion, span) {
		return
	}

	filtered := make([]api.Task, 0, len(h.Tasks))
	for _, t := range h.Tasks {
		if t.DueDate != nil && !span.Contains(*t.DueDate) {
			continue
		}
		if h.Filters.Match(t) {
			filtered = append(filtered, t)
		}
	}

	h.memo = derivedCache{
		valid:    true,
		version:  h.DataVersion,
		rng:      span,
		filtered: filtered,
		grouped:  calendar.GroupByDateKey(filtered),
	}
}

func (h *Handler) toggleStatusFilter(s api.Status) {
	h.UpdateFilters(calendar.Filters{Status: h.Filters.ToggleStatus(s).Status})
}

func (h *Handler) togglePriorityFilter(p api.Priority) {
	h.UpdateFilters(calendar.Filters{Priority: h.Filters.TogglePriority(p).Priority})
}

// Props returns the renderer input for the current frame.
func (h *Handler) Props() components.Props {
	width, height := h.BodySize()
	return components.Props{
		Pivot:      h.Pivot,
		Now:        h.Now(),
		Cursor:     h.Cursor,
		TaskCursor: h.TaskCursor,
		Grouped:    h.TasksByDateKey(),
		Tasks:      h.FilteredTasks(),
		Width:      width,
		Height:     height,
		RowHeight:  h.RowHeight(),
	}
}

// Renderer returns the renderer of the current view.
func (h *Handler) Renderer() components.CalendarRenderer {
	return components.ForView(h.View)
}

func (h *Handler) slotTasks() []api.Task {
	return h.Renderer().SlotTasks(h.Props())
}

// selectedTask returns the task under the cursor, or nil on the empty part of the slot.
func (h *Handler) selectedTask() *api.Task {
	if h.Mode == state.ModeDetail && h.SelectedTask != nil {
		return h.SelectedTask
	}
	tasks := h.slotTasks()
	if h.TaskCursor < 0 || h.TaskCursor >= len(tasks) {
		return nil
	}
	task := tasks[h.TaskCursor]
	return &task
}
