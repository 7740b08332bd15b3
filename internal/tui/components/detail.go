package components

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hy4ri/taskcal/internal/api"
	"github.com/hy4ri/taskcal/internal/calendar"
	"github.com/hy4ri/taskcal/internal/tui/styles"
)

// DetailModel displays one task as a dialog.
type DetailModel struct {
	task          *api.Task
	width, height int
}

// NewDetail creates a new DetailModel.
func NewDetail() *DetailModel {
	return &DetailModel{}
}

// SetSize sets the dialog dimensions.
func (d *DetailModel) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// SetTask sets the task to display.
func (d *DetailModel) SetTask(task *api.Task) {
	d.task = task
}

// Task returns the current task.
func (d *DetailModel) Task() *api.Task {
	return d.task
}

// View renders the task details at now.
func (d *DetailModel) View(now time.Time) string {
	if d.task == nil {
		return "No task selected"
	}
	t := d.task

	var b strings.Builder
	b.WriteString(styles.Title.Render("Task Details"))
	b.WriteString("\n\n")

	checkbox := "[ ]"
	if t.IsDone() {
		checkbox = "[x]"
	}
	b.WriteString(fmt.Sprintf("  %s %s\n\n", checkbox, styles.PriorityStyle(t.Priority).Render(t.Title)))
	b.WriteString("  " + strings.Repeat("─", 40))
	b.WriteString("\n\n")

	row := func(label, value string) {
		b.WriteString(styles.DetailLabel.Render("  " + label))
		b.WriteString(value)
		b.WriteString("\n")
	}

	row("Status", styles.StatusVariant(t.Status).Badge())
	row("Priority", styles.PriorityVariant(t.Priority).Badge())

	if t.DueDate != nil {
		due := t.DueDate.In(time.Local)
		style := styles.DetailValue
		switch {
		case calendar.IsOverdueAt(*t, now):
			style = styles.TaskOverdue
		case calendar.SameDay(due, now):
			style = styles.TaskDueToday
		}
		label := fmt.Sprintf("%s (%s)", due.Format("Mon, Jan 2 2006 15:04"), calendar.DateStatus(due, now))
		row("Due", style.Render(label))
	} else {
		row("Due", styles.HelpDesc.Render("none"))
	}

	if t.EstimatedHours != nil {
		row("Estimate", styles.DetailValue.Render(strconv.FormatFloat(*t.EstimatedHours, 'f', -1, 64)+"h"))
	}

	if len(t.Tags) > 0 {
		badges := make([]string, len(t.Tags))
		for i, tag := range t.Tags {
			badges[i] = styles.TagBadge(tag)
		}
		row("Tags", strings.Join(badges, " "))
	}

	if len(t.Assignees) > 0 {
		names := make([]string, len(t.Assignees))
		for i, a := range t.Assignees {
			names[i] = a.Name
			if names[i] == "" {
				names[i] = a.ID
			}
		}
		row("Assignees", styles.DetailValue.Render(strings.Join(names, ", ")))
	}

	if t.Description != "" {
		b.WriteString("\n")
		b.WriteString(styles.DetailLabel.Render("  Description"))
		b.WriteString("\n")
		b.WriteString(styles.DetailDescription.Render(t.Description))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.HelpDesc.Render("  Shortcuts: "))
	b.WriteString(styles.HelpKey.Render("ESC"))
	b.WriteString(styles.HelpDesc.Render(" back  "))
	b.WriteString(styles.HelpKey.Render("x"))
	b.WriteString(styles.HelpDesc.Render(" complete  "))
	b.WriteString(styles.HelpKey.Render("m"))
	b.WriteString(styles.HelpDesc.Render(" move  "))
	b.WriteString(styles.HelpKey.Render("yy"))
	b.WriteString(styles.HelpDesc.Render(" copy  "))
	b.WriteString(styles.HelpKey.Render("dd"))
	b.WriteString(styles.HelpDesc.Render(" delete"))

	width := d.width - 4
	if width < 20 {
		width = 20
	}
	return styles.Dialog.Width(width).Render(b.String())
}
