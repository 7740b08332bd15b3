package logic

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hy4ri/taskcal/internal/api"
	"github.com/hy4ri/taskcal/internal/calendar"
	"github.com/hy4ri/taskcal/internal/tui/components"
	"github.com/hy4ri/taskcal/internal/tui/state"
)

func (h *Handler) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}

	switch h.Mode {
	case state.ModeQuickAdd:
		return h.handleQuickAddKey(msg)
	case state.ModeFilter:
		return h.handleFilterKey(msg)
	case state.ModeHelp:
		switch msg.String() {
		case "esc", "?", "q":
			h.Mode = state.ModeNormal
		}
		return nil
	}

	action, ok := h.KeyState.HandleKey(msg, h.Keymap)
	if !ok || action == "" {
		return nil
	}

	if h.Mode == state.ModeDetail {
		return h.handleDetailAction(action)
	}
	return h.handleNormalAction(action)
}

func (h *Handler) handleNormalAction(action string) tea.Cmd {
	if cmd, ok := h.handleNavigation(action); ok {
		return cmd
	}

	switch action {
	case "quit":
		return tea.Quit
	case "back":
		if h.Mode == state.ModeMove {
			h.MovingTask = nil
			h.Mode = state.ModeNormal
			h.StatusMsg = "Move cancelled"
			return nil
		}
		h.StatusMsg = ""
		h.Err = nil
		return nil
	case "help":
		h.Mode = state.ModeHelp
		return nil
	case "refresh":
		h.StatusMsg = ""
		return h.FetchTasks()
	case "select":
		if h.Mode == state.ModeMove {
			slot := h.Renderer().SlotTime(h.Props())
			timed := h.isTimedView()
			return func() tea.Msg {
				return components.SlotSelectedMsg{Time: slot, Timed: timed}
			}
		}
		return components.Activate(h.Renderer(), h.Props(), h.Callbacks())
	case "add":
		slot := h.Renderer().SlotTime(h.Props())
		return h.handleSlotSelected(components.SlotSelectedMsg{Time: slot, Timed: h.isTimedView()})
	case "filter_tag":
		h.FilterLine = state.NewFilterLine(h.Filters.Tags)
		h.Mode = state.ModeFilter
		return textinput.Blink
	case "filter_done":
		h.toggleStatusFilter(api.StatusDone)
		return nil
	case "filter_open":
		h.toggleStatusFilter(api.StatusTodo)
		return nil
	case "filter_urgent":
		h.togglePriorityFilter(api.PriorityUrgent)
		return nil
	case "filter_high":
		h.togglePriorityFilter(api.PriorityHigh)
		return nil
	case "clear_filters":
		h.ClearFilters()
		return nil
	}

	return h.handleTaskAction(action, h.selectedTask())
}

func (h *Handler) handleDetailAction(action string) tea.Cmd {
	switch action {
	case "back", "select":
		h.Mode = state.ModeNormal
		h.SelectedTask = nil
		return nil
	case "quit":
		return tea.Quit
	case "help":
		h.Mode = state.ModeHelp
		h.SelectedTask = nil
		return nil
	}

	task := h.SelectedTask
	if action == "move" || action == "delete" {
		h.Mode = state.ModeNormal
		h.SelectedTask = nil
	}
	return h.handleTaskAction(action, task)
}

// handleTaskAction runs actions that need a task.
func (h *Handler) handleTaskAction(action string, task *api.Task) tea.Cmd {
	if task == nil {
		return nil
	}

	switch action {
	case "move":
		moving := *task
		h.MovingTask = &moving
		h.Mode = state.ModeMove
		h.StatusMsg = "Moving \"" + task.Title + "\": pick a slot and press enter"
		return nil
	case "move_prev_day":
		return h.RescheduleTask(task.ID, shiftDays(*task, h.Cursor, -1))
	case "move_next_day":
		return h.RescheduleTask(task.ID, shiftDays(*task, h.Cursor, 1))
	case "complete":
		status := api.StatusDone
		if task.IsDone() {
			status = api.StatusTodo
		}
		return h.setStatus(task.ID, status)
	case "yank":
		return copyTask(*task)
	case "delete":
		return h.deleteTask(*task)
	}
	return nil
}

// shiftDays moves a dated task by delta days. An undated task is scheduled on the
// cursor day shifted by delta.
func shiftDays(task api.Task, cursor time.Time, delta int) time.Time {
	if task.DueDate == nil {
		return calendar.StartOfDay(cursor).AddDate(0, 0, delta)
	}
	return task.DueDate.In(time.Local).AddDate(0, 0, delta)
}

func (h *Handler) handleQuickAddKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		h.Mode = state.ModeNormal
		h.QuickAdd = nil
		return nil
	case "enter":
		if h.QuickAdd == nil || !h.QuickAdd.IsValid() {
			return nil
		}
		req, err := h.QuickAdd.Request()
		if err != nil {
			h.StatusMsg = err.Error()
			return nil
		}
		h.QuickAdd.Clear()
		return h.createTask(req)
	}
	if h.QuickAdd == nil {
		return nil
	}
	return h.QuickAdd.Update(msg)
}

func (h *Handler) handleFilterKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		h.Mode = state.ModeNormal
		h.FilterLine = nil
		return nil
	case "enter":
		if h.FilterLine != nil {
			h.UpdateFilters(calendar.Filters{Tags: h.FilterLine.Tags()})
		}
		h.Mode = state.ModeNormal
		h.FilterLine = nil
		return nil
	}
	if h.FilterLine == nil {
		return nil
	}
	var cmd tea.Cmd
	h.FilterLine.Input, cmd = h.FilterLine.Input.Update(msg)
	return cmd
}

// Callbacks turns renderer selections into messages for Update.
func (h *Handler) Callbacks() components.Callbacks {
	timed := h.isTimedView()
	return components.Callbacks{
		OnTaskSelect: func(task api.Task) tea.Cmd {
			return func() tea.Msg { return components.TaskSelectedMsg{Task: task} }
		},
		OnSlotSelect: func(slot time.Time) tea.Cmd {
			return func() tea.Msg { return components.SlotSelectedMsg{Time: slot, Timed: timed} }
		},
	}
}
