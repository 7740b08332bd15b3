package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/hy4ri/taskcal/internal/api"
)

// Variant is the presentation of one status or priority value.
type Variant struct {
	Label string
	Icon  string
	Style lipgloss.Style
}

// Badge renders the variant as a short inline badge.
func (v Variant) Badge() string {
	text := v.Label
	if v.Icon != "" {
		text = v.Icon + " " + v.Label
	}
	return v.Style.Render(text)
}

var fallbackVariant = Variant{Label: "?", Style: lipgloss.NewStyle().Foreground(Subtle)}

var statusVariants = map[api.Status]Variant{
	api.StatusTodo:       {Label: "todo", Icon: "○", Style: lipgloss.NewStyle().Foreground(Subtle)},
	api.StatusInProgress: {Label: "in progress", Icon: "◐", Style: lipgloss.NewStyle().Foreground(InfoColor)},
	api.StatusInReview:   {Label: "in review", Icon: "◑", Style: lipgloss.NewStyle().Foreground(WarningColor)},
	api.StatusDone:       {Label: "done", Icon: "●", Style: lipgloss.NewStyle().Foreground(SuccessColor)},
}

var priorityVariants = map[api.Priority]Variant{
	api.PriorityUrgent: {Label: "urgent", Icon: "!!!", Style: lipgloss.NewStyle().Foreground(lipgloss.Color("#D0473D")).Bold(true)},
	api.PriorityHigh:   {Label: "high", Icon: "!!", Style: lipgloss.NewStyle().Foreground(lipgloss.Color("#EA8811"))},
	api.PriorityMedium: {Label: "medium", Icon: "!", Style: lipgloss.NewStyle().Foreground(lipgloss.Color("#296FDF"))},
	api.PriorityLow:    {Label: "low", Style: lipgloss.NewStyle().Foreground(Subtle)},
}

// tagStyle renders tag badges.
var tagStyle = lipgloss.NewStyle().Foreground(Highlight)

// StatusVariant returns the presentation for s. Unknown values get a neutral variant
// labelled with the raw value.
func StatusVariant(s api.Status) Variant {
	if v, ok := statusVariants[s]; ok {
		return v
	}
	v := fallbackVariant
	if s != "" {
		v.Label = string(s)
	}
	return v
}

// PriorityVariant returns the presentation for p. Unknown values get a neutral variant.
func PriorityVariant(p api.Priority) Variant {
	if v, ok := priorityVariants[p]; ok {
		return v
	}
	v := fallbackVariant
	if p != "" {
		v.Label = string(p)
	}
	return v
}

// PriorityStyle returns the foreground style for a task title of priority p.
func PriorityStyle(p api.Priority) lipgloss.Style {
	if v, ok := priorityVariants[p]; ok {
		return v.Style
	}
	return lipgloss.NewStyle()
}

// TagBadge renders a tag as "#tag".
func TagBadge(tag string) string {
	return tagStyle.Render("#" + tag)
}
