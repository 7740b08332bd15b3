package styles

import "github.com/charmbracelet/lipgloss"

var (
	// FilterPrompt is the style for the "#" prompt of the tag filter.
	FilterPrompt = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFCC00")).
			Bold(true)

	// FilterSuggestion is the style for tags offered by the filter prompt.
	FilterSuggestion = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#888888"))

	// FilterSuggestionActive marks a suggested tag that is already typed.
	FilterSuggestionActive = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(lipgloss.Color("#444444"))
)
