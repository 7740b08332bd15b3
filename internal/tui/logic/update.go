// Package logic holds the calendar view-model: navigation, fetching, filtering and the
// message handling of the Bubble Tea program.
package logic

import (
	"log"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hy4ri/taskcal/internal/api"
	"github.com/hy4ri/taskcal/internal/calendar"
	"github.com/hy4ri/taskcal/internal/tui/components"
	"github.com/hy4ri/taskcal/internal/tui/state"
)

type Handler struct {
	*state.State
	memo derivedCache
}

func NewHandler(s *state.State) *Handler {
	return &Handler{State: s}
}

func (h *Handler) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return h.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		h.Width = msg.Width
		h.Height = msg.Height
		if h.QuickAdd != nil {
			h.QuickAdd.SetWidth(msg.Width)
		}
		return nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		h.Spinner, cmd = h.Spinner.Update(msg)
		return cmd

	case checkDueMsg:
		return h.handleCheckDue(time.Time(msg))

	case tasksLoadedMsg:
		return h.handleTasksLoaded(msg)

	case taskUpdatedMsg:
		h.StatusMsg = msg.status
		return h.FetchTasks()

	case taskCreatedMsg:
		h.StatusMsg = "Task added: " + msg.task.Title
		if h.QuickAdd != nil {
			h.QuickAdd.IncrementCount()
		}
		return h.FetchTasks()

	case errMsg:
		log.Printf("error: %v", msg.err)
		h.Err = msg.err
		return nil

	case statusMsg:
		h.StatusMsg = msg.msg
		return nil

	case configSavedMsg:
		if msg.err != nil {
			log.Printf("save config: %v", msg.err)
		}
		return nil

	case taskDeletedMsg:
		h.StatusMsg = "Deleted: " + msg.title
		if h.SelectedTask != nil && h.SelectedTask.ID == msg.id {
			h.SelectedTask = nil
			if h.Mode == state.ModeDetail {
				h.Mode = state.ModeNormal
			}
		}
		return h.FetchTasks()

	case taskDetailMsg:
		if msg.err != nil {
			log.Printf("load task %s: %v", msg.id, msg.err)
			return nil
		}
		if msg.task != nil && h.Mode == state.ModeDetail && h.SelectedTask != nil && h.SelectedTask.ID == msg.id {
			h.SelectedTask = msg.task
		}
		return nil

	case components.TaskSelectedMsg:
		task := msg.Task
		h.KeyState.Reset()
		h.SelectedTask = &task
		h.Mode = state.ModeDetail
		return h.loadTaskDetail(task.ID)

	case components.SlotSelectedMsg:
		return h.handleSlotSelected(msg)
	}

	// Forward non-key messages (like blink) to active inputs
	switch {
	case h.Mode == state.ModeQuickAdd && h.QuickAdd != nil:
		return h.QuickAdd.Update(msg)
	case h.Mode == state.ModeFilter && h.FilterLine != nil:
		var cmd tea.Cmd
		h.FilterLine.Input, cmd = h.FilterLine.Input.Update(msg)
		return cmd
	}

	return nil
}

func (h *Handler) handleTasksLoaded(msg tasksLoadedMsg) tea.Cmd {
	if msg.gen != h.FetchGeneration {
		log.Printf("discarding stale fetch generation %d (current %d)", msg.gen, h.FetchGeneration)
		return nil
	}

	h.Loading = false
	if h.CancelFetch != nil {
		h.CancelFetch()
		h.CancelFetch = nil
	}

	if msg.err != nil {
		log.Printf("fetch generation %d failed: %v", msg.gen, msg.err)
		h.Err = msg.err
		return nil
	}

	h.Err = nil
	h.Tasks = msg.tasks
	h.BumpDataVersion()
	h.clampTaskCursor()

	if h.SelectedTask != nil {
		h.SelectedTask = h.findTask(h.SelectedTask.ID, h.SelectedTask)
	}
	return nil
}

// findTask returns the loaded task with id, or fallback when it is no longer in range.
func (h *Handler) findTask(id string, fallback *api.Task) *api.Task {
	for i := range h.Tasks {
		if h.Tasks[i].ID == id {
			task := h.Tasks[i]
			return &task
		}
	}
	return fallback
}

func (h *Handler) handleSlotSelected(msg components.SlotSelectedMsg) tea.Cmd {
	if h.Mode == state.ModeMove && h.MovingTask != nil {
		task := *h.MovingTask
		h.MovingTask = nil
		h.Mode = state.ModeNormal
		return h.RescheduleTask(task.ID, moveTarget(task, msg.Time, msg.Timed))
	}

	h.KeyState.Reset()
	h.QuickAdd = state.NewQuickAddForm(msg.Time, msg.Timed)
	h.QuickAdd.SetWidth(h.Width)
	h.Mode = state.ModeQuickAdd
	return nil
}

// moveTarget places task in slot. Whole-day slots keep the task's time of day; hour slots
// keep its minutes. Undated tasks land at the start of the slot.
func moveTarget(task api.Task, slot time.Time, timed bool) time.Time {
	slot = slot.In(time.Local)
	if task.DueDate == nil {
		return slot
	}
	due := task.DueDate.In(time.Local)
	if timed {
		return time.Date(slot.Year(), slot.Month(), slot.Day(), slot.Hour(), due.Minute(), 0, 0, time.Local)
	}
	return time.Date(slot.Year(), slot.Month(), slot.Day(), due.Hour(), due.Minute(), due.Second(), 0, time.Local)
}

// isTimedView reports whether slots in the current view are hours rather than days.
func (h *Handler) isTimedView() bool {
	return h.View == calendar.ViewWeek || h.View == calendar.ViewDay
}
