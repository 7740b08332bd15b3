// Package ui assembles the screen: header, calendar body, status bar and overlays.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hy4ri/taskcal/internal/calendar"
	"github.com/hy4ri/taskcal/internal/tui/components"
	"github.com/hy4ri/taskcal/internal/tui/state"
	"github.com/hy4ri/taskcal/internal/tui/styles"
)

// Frame supplies the per-frame renderer input, derived from the view-model.
type Frame interface {
	Props() components.Props
	Renderer() components.CalendarRenderer
}

type Renderer struct {
	*state.State
	frame Frame

	detail *components.DetailModel
	help   *components.HelpModel
}

func NewRenderer(s *state.State, frame Frame) *Renderer {
	return &Renderer{
		State:  s,
		frame:  frame,
		detail: components.NewDetail(),
		help:   components.NewHelp(),
	}
}

func (r *Renderer) View() string {
	if r.Width == 0 {
		return "Loading..."
	}

	switch r.Mode {
	case state.ModeHelp:
		r.help.SetSize(r.Width, r.Height)
		r.help.SetKeymap(r.Keymap.HelpItems())
		return r.help.View()
	case state.ModeDetail:
		r.detail.SetSize(r.Width, r.Height)
		r.detail.SetTask(r.SelectedTask)
		return r.detail.View(r.Now())
	}

	content := r.renderMainView()

	switch {
	case r.Mode == state.ModeQuickAdd && r.QuickAdd != nil:
		content = r.overlayContent(content, r.renderQuickAdd())
	case r.Mode == state.ModeFilter && r.FilterLine != nil:
		content = r.overlayContent(content, r.renderFilterDialog())
	}

	return content
}

// renderMainView renders the header, calendar body and status bar.
func (r *Renderer) renderMainView() string {
	header := r.renderHeader()
	filters := r.renderFilterSummary()
	body := r.frame.Renderer().Render(r.frame.Props())
	status := r.renderStatusBar()

	_, bodyHeight := r.BodySize()
	body = lipgloss.NewStyle().Height(bodyHeight).MaxHeight(bodyHeight).MaxWidth(r.Width).Render(body)

	return lipgloss.JoinVertical(lipgloss.Left, header, filters, body, status)
}

// renderHeader renders the view tabs and the label of the visible range.
func (r *Renderer) renderHeader() string {
	var tabs []string
	for _, v := range calendar.Views {
		if v == r.State.View {
			tabs = append(tabs, styles.ViewTabActive.Render(v.Title()))
		} else {
			tabs = append(tabs, styles.ViewTab.Render(v.Title()))
		}
	}

	left := styles.Title.Render("taskcal") + "  " + strings.Join(tabs, " ")
	right := styles.Subtitle.Render(calendar.FormatHeaderLabel(r.Pivot, r.State.View))
	if r.Loading {
		right = styles.Spinner.Render(r.Spinner.View()) + " " + right
	}

	padding := styles.Header.GetHorizontalFrameSize()
	spacing := max(r.Width-lipgloss.Width(left)-lipgloss.Width(right)-padding, 1)
	line := left + strings.Repeat(" ", spacing) + right
	line = lipgloss.NewStyle().MaxWidth(r.Width - padding).Render(line)

	return styles.Header.Width(r.Width - padding).Render(line)
}

func (r *Renderer) renderFilterSummary() string {
	if r.Filters.IsEmpty() {
		return styles.HelpDesc.Render(" no filters  (/ tags, D done, O todo, U urgent, I high)")
	}
	return styles.FilterSummary.Render(" filters: " + truncateString(r.Filters.Summary(), r.Width-12) + "  (C to clear)")
}
