package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hy4ri/taskcal/internal/api"
	"github.com/hy4ri/taskcal/internal/calendar"
	"github.com/hy4ri/taskcal/internal/config"
	"github.com/hy4ri/taskcal/internal/tui/state"
	"github.com/hy4ri/taskcal/internal/tui/styles"
)

func (r *Renderer) renderStatusBar() string {
	// Left side: error, move prompt, status message, or the task under the cursor
	left := ""
	switch {
	case r.Err != nil:
		errStr := strings.ReplaceAll(r.Err.Error(), "\n", " ")
		left = styles.StatusBarError.Render("Error: "+errStr) + styles.StatusBarText.Render("  "+errorHint(r.Err))
	case r.Mode == state.ModeMove && r.MovingTask != nil:
		left = styles.StatusBarKey.Render("MOVE ") + styles.StatusBarText.Render(truncateString(r.MovingTask.Title, 40)+": pick a slot, enter to drop, esc to cancel")
	case r.StatusMsg != "":
		left = styles.StatusBarSuccess.Render(strings.ReplaceAll(r.StatusMsg, "\n", " "))
	default:
		left = r.cursorSummary()
	}

	right := styles.StatusBarKey.Render("?") + styles.StatusBarText.Render(":keys ") +
		styles.StatusBarKey.Render("a") + styles.StatusBarText.Render(":add ") +
		styles.StatusBarKey.Render("q") + styles.StatusBarText.Render(":quit")

	leftWidth := lipgloss.Width(left)
	rightWidth := lipgloss.Width(right)
	padding := styles.StatusBar.GetHorizontalFrameSize()

	// Ensure left doesn't overwhelm right
	maxLeftWidth := r.Width - rightWidth - padding - 4
	if leftWidth > maxLeftWidth && maxLeftWidth > 10 {
		left = lipgloss.NewStyle().MaxWidth(maxLeftWidth).Render(left)
		leftWidth = lipgloss.Width(left)
	}

	spacing := max(r.Width-leftWidth-rightWidth-padding, 0)
	return styles.StatusBar.Width(r.Width - padding).Render(left + strings.Repeat(" ", spacing) + right)
}

// cursorSummary describes the selected slot and the task under the cursor.
func (r *Renderer) cursorSummary() string {
	props := r.frame.Props()
	renderer := r.frame.Renderer()
	slot := renderer.SlotTime(props)

	label := slot.Format("Mon Jan 2")
	if r.State.View == calendar.ViewWeek || r.State.View == calendar.ViewDay {
		label = slot.Format("Mon Jan 2 15:04")
	}

	tasks := renderer.SlotTasks(props)
	if props.TaskCursor < 0 || props.TaskCursor >= len(tasks) {
		return styles.StatusBarText.Render(label + ": enter to add a task")
	}
	task := tasks[props.TaskCursor]
	return styles.StatusBarText.Render(label+": ") +
		styles.StatusBarKey.Render(truncateString(task.Title, 40)) +
		styles.StatusBarText.Render(" ("+string(task.Status)+")")
}

// errorHint suggests what to do about err.
func errorHint(err error) string {
	apiErr, ok := api.IsAPIError(err)
	if !ok {
		return "press r to retry"
	}
	switch {
	case apiErr.IsUnauthorized():
		return "check " + config.TokenEnv + " or --token"
	case apiErr.IsForbidden():
		return "access denied for this token"
	case apiErr.IsNotFound():
		return "check api.base_url"
	case apiErr.IsRateLimited():
		return "rate limited, wait and press r"
	case apiErr.IsServerError():
		return "server error, press r to retry"
	}
	return "press r to retry"
}
