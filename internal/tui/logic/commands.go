package logic

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hy4ri/taskcal/internal/api"
	"github.com/hy4ri/taskcal/internal/calendar"
)

// writeClipboard is swapped out in tests.
var writeClipboard = clipboard.WriteAll

var errNoSource = errors.New("no task source configured")

// FetchTasks starts a fetch of the days the current view draws. Any fetch still in flight is cancelled,
// and its response is dropped when it arrives.
func (h *Handler) FetchTasks() tea.Cmd {
	if h.CancelFetch != nil {
		h.CancelFetch()
	}
	h.FetchGeneration++
	gen := h.FetchGeneration

	ctx, cancel := context.WithCancel(context.Background())
	h.CancelFetch = cancel
	h.Loading = true

	span := h.drawnRange()
	start, end := span.Start, span.End
	source := h.Source
	log.Printf("fetch generation %d: %s to %s", gen, calendar.FormatDateKey(start), calendar.FormatDateKey(end))

	return func() tea.Msg {
		if source == nil {
			return tasksLoadedMsg{gen: gen, err: errNoSource}
		}
		tasks, err := source.ListTasks(ctx, api.TaskFilter{DueStart: &start, DueEnd: &end})
		if err != nil {
			return tasksLoadedMsg{gen: gen, err: fmt.Errorf("load tasks: %w", err)}
		}
		return tasksLoadedMsg{gen: gen, tasks: tasks}
	}
}

// RescheduleTask moves task id to newDate. On success the range is refetched; on failure
// Err is set and the loaded tasks are left as they were.
func (h *Handler) RescheduleTask(id string, newDate time.Time) tea.Cmd {
	due := api.FormatDue(newDate)
	source := h.Source
	log.Printf("reschedule %s to %s", id, due)

	return func() tea.Msg {
		if source == nil {
			return errMsg{fmt.Errorf("reschedule task: %w", errNoSource)}
		}
		task, err := source.UpdateTask(context.Background(), id, api.UpdateTaskRequest{DueDate: &due})
		if err != nil {
			return errMsg{fmt.Errorf("reschedule task: %w", err)}
		}
		return taskUpdatedMsg{
			task:   task,
			status: "Moved to " + newDate.In(time.Local).Format("Mon Jan 2 15:04"),
		}
	}
}

// setStatus changes the workflow status of task id.
func (h *Handler) setStatus(id string, status api.Status) tea.Cmd {
	source := h.Source
	return func() tea.Msg {
		if source == nil {
			return errMsg{fmt.Errorf("update task: %w", errNoSource)}
		}
		task, err := source.UpdateTask(context.Background(), id, api.UpdateTaskRequest{Status: &status})
		if err != nil {
			return errMsg{fmt.Errorf("update task: %w", err)}
		}
		return taskUpdatedMsg{task: task, status: "Marked " + string(status)}
	}
}

func (h *Handler) createTask(req api.CreateTaskRequest) tea.Cmd {
	source := h.Source
	return func() tea.Msg {
		if source == nil {
			return errMsg{fmt.Errorf("create task: %w", errNoSource)}
		}
		task, err := source.CreateTask(context.Background(), req)
		if err != nil {
			return errMsg{fmt.Errorf("create task: %w", err)}
		}
		return taskCreatedMsg{task: task}
	}
}

// deleteTask removes task from the source and refetches.
func (h *Handler) deleteTask(task api.Task) tea.Cmd {
	source := h.Source
	log.Printf("delete %s", task.ID)
	return func() tea.Msg {
		if source == nil {
			return errMsg{fmt.Errorf("delete task: %w", errNoSource)}
		}
		if err := source.DeleteTask(context.Background(), task.ID); err != nil {
			return errMsg{fmt.Errorf("delete task: %w", err)}
		}
		return taskDeletedMsg{id: task.ID, title: task.Title}
	}
}

// loadTaskDetail fetches the full task for the detail dialog. List responses may leave out
// fields such as the description.
func (h *Handler) loadTaskDetail(id string) tea.Cmd {
	source := h.Source
	if source == nil {
		return nil
	}
	return func() tea.Msg {
		task, err := source.GetTask(context.Background(), id)
		return taskDetailMsg{id: id, task: task, err: err}
	}
}

// saveConfig persists cfg in the background through the injected saver.
func (h *Handler) saveConfig() tea.Cmd {
	save := h.SaveConfig
	if save == nil || h.Config == nil {
		return nil
	}
	cfg := *h.Config
	return func() tea.Msg {
		return configSavedMsg{err: save(&cfg)}
	}
}

// copyTask copies "<date> <title>" of task to the clipboard.
func copyTask(task api.Task) tea.Cmd {
	content := task.Title
	if task.DueDate != nil {
		content = string(calendar.FormatDateKey(*task.DueDate)) + " " + task.Title
	}
	return func() tea.Msg {
		if err := writeClipboard(content); err != nil {
			return statusMsg{msg: "Failed to copy: " + err.Error()}
		}
		return statusMsg{msg: "Copied: " + content}
	}
}
