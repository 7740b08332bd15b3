package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hy4ri/taskcal/internal/calendar"
	"github.com/hy4ri/taskcal/internal/tui/styles"
)

// renderQuickAdd renders the Quick Add overlay dialog.
func (r *Renderer) renderQuickAdd() string {
	form := r.QuickAdd

	dialogWidth := 70
	if r.Width < 80 {
		dialogWidth = r.Width - 10
	}
	if dialogWidth < 50 {
		dialogWidth = 50
	}

	var content strings.Builder
	content.WriteString(styles.DialogTitle.Render("Quick Add") + "\n")

	slot := form.Slot.Format("Monday, January 2")
	if form.HasTime {
		slot = form.Slot.Format("Monday, January 2 at 15:04")
	}
	contextStyle := lipgloss.NewStyle().Foreground(styles.Subtle).Italic(true)
	content.WriteString(contextStyle.Render("Due "+slot) + "\n\n")

	content.WriteString(form.Input.View() + "\n\n")

	content.WriteString(styles.HelpDesc.Render("#tag adds a tag, !urgent|!high|!medium|!low sets priority, @HH:MM sets the time") + "\n")

	if form.TaskCount > 0 {
		status := lipgloss.NewStyle().Foreground(styles.SuccessColor).Render(fmt.Sprintf("✓ %d task(s) added", form.TaskCount))
		content.WriteString(status + "\n")
	}

	footer := lipgloss.NewStyle().Foreground(styles.Subtle).MarginTop(1).Render("Enter: Add task  •  Esc: Close")
	content.WriteString("\n" + footer)

	return styles.Dialog.Width(dialogWidth).Render(content.String())
}

// renderFilterDialog renders the tag filter prompt with the tags of the loaded tasks.
func (r *Renderer) renderFilterDialog() string {
	var content strings.Builder
	content.WriteString(styles.DialogTitle.Render("Filter by tags") + "\n")
	content.WriteString(styles.FilterPrompt.Render("# ") + r.FilterLine.Input.View() + "\n")

	if known := calendar.KnownTags(r.Tasks); len(known) > 0 {
		typed := make(map[string]bool)
		for _, tag := range r.FilterLine.Tags() {
			typed[tag] = true
		}
		badges := make([]string, 0, len(known))
		for _, tag := range known {
			style := styles.FilterSuggestion
			if typed[tag] {
				style = styles.FilterSuggestionActive
			}
			badges = append(badges, style.Render("#"+tag))
		}
		content.WriteString("\n" + strings.Join(badges, " ") + "\n")
	}

	content.WriteString("\n" + styles.HelpDesc.Render("Enter: apply  •  empty clears the tag filter  •  Esc: cancel"))
	return styles.Dialog.Width(min(max(r.Width-10, 40), 70)).Render(content.String())
}
