package logic

import (
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gen2brain/beeep"

	"github.com/hy4ri/taskcal/internal/calendar"
)

const (
	// timedWindow is how late a timed task may be noticed and still notify.
	timedWindow = 5 * time.Minute
	// dayWindow is the same for whole-day tasks, which notify from dayTaskHour.
	dayWindow   = 60 * time.Minute
	dayTaskHour = 9
)

// notify is swapped out in tests.
var notify = beeep.Notify

type checkDueMsg time.Time

func checkDueCmd() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg {
		return checkDueMsg(t)
	})
}

func (h *Handler) handleCheckDue(t time.Time) tea.Cmd {
	// Always schedule the next check
	cmds := []tea.Cmd{checkDueCmd()}

	if h.Config != nil && !h.Config.UI.Notifications {
		return tea.Batch(cmds...)
	}

	for _, title := range h.collectDue(t) {
		cmds = append(cmds, func() tea.Msg {
			if err := notify("taskcal", "Task due: "+title, ""); err != nil {
				log.Printf("failed to send notification: %v", err)
			}
			return nil
		})
	}

	return tea.Batch(cmds...)
}

// collectDue returns the titles of tasks that became due shortly before t and marks them
// notified. Tasks noticed too late are marked without being returned.
func (h *Handler) collectDue(t time.Time) []string {
	log.Printf("checking notifications at %v, %d tasks", t, len(h.Tasks))

	var titles []string
	for _, task := range h.Tasks {
		if h.NotifiedTasks[task.ID] || task.IsDone() || task.DueDate == nil {
			continue
		}

		// Tasks due at local midnight are whole-day tasks
		dueTime := task.DueDate.In(time.Local)
		threshold := timedWindow
		if dueTime.Equal(calendar.StartOfDay(dueTime)) {
			dueTime = dueTime.Add(dayTaskHour * time.Hour)
			threshold = dayWindow
		}

		if t.Before(dueTime) {
			continue
		}

		// Mark as notified either way so we don't check again
		h.NotifiedTasks[task.ID] = true

		if t.Sub(dueTime) > threshold {
			log.Printf("skipping old task %q (late by %v)", task.Title, t.Sub(dueTime))
			continue
		}

		log.Printf("notifying for task %q", task.Title)
		titles = append(titles, task.Title)
	}
	return titles
}
