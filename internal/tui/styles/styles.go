// Package styles provides Lip Gloss styles for the TUI.
package styles

import "github.com/charmbracelet/lipgloss"

// Terminal-adaptive colors that work in both light and dark terminals.
var (
	// Subtle is a muted color for secondary text
	Subtle = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"}

	// Highlight is the accent color for selected items
	Highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}

	// Special colors
	ErrorColor   = lipgloss.AdaptiveColor{Light: "#FF0000", Dark: "#FF6666"}
	SuccessColor = lipgloss.AdaptiveColor{Light: "#00AA00", Dark: "#66FF66"}
	WarningColor = lipgloss.AdaptiveColor{Light: "#FFAA00", Dark: "#FFCC66"}
	InfoColor    = lipgloss.AdaptiveColor{Light: "#296FDF", Dark: "#6FA8FF"}

	barBackground = lipgloss.AdaptiveColor{Light: "#E8E8E8", Dark: "#1F1F1F"}
)

// ApplyTheme forces the light or dark palette. "auto" keeps terminal detection.
func ApplyTheme(theme string) {
	switch theme {
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	case "light":
		lipgloss.SetHasDarkBackground(false)
	}
}

// Base styles
var (
	// Title is the style for section titles
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Highlight)

	// Subtitle is for secondary headings
	Subtitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Subtle)
)

// Task styles
var (
	// TaskItem is the base style for a task line
	TaskItem = lipgloss.NewStyle()

	// TaskSelected is the style for the task under the cursor
	TaskSelected = lipgloss.NewStyle().
			Bold(true).
			Background(lipgloss.AdaptiveColor{Light: "#EEEEEE", Dark: "#2A2A2A"})

	// TaskCompleted is the style for done tasks
	TaskCompleted = lipgloss.NewStyle().
			Faint(true).
			Strikethrough(true)

	// TaskOverdue marks overdue tasks
	TaskOverdue = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// TaskDue is for due time display
	TaskDue = lipgloss.NewStyle().
		Foreground(Subtle)

	// TaskDueToday is for tasks due today
	TaskDueToday = lipgloss.NewStyle().
			Foreground(SuccessColor)
)

// StatusBar styles
var (
	// StatusBar is the base style for the status bar
	StatusBar = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#DDDDDD"}).
			Background(barBackground).
			Padding(0, 1)

	// StatusBarKey is for keyboard shortcut hints
	StatusBarKey = lipgloss.NewStyle().
			Bold(true).
			Foreground(Highlight).
			Background(barBackground)

	// StatusBarText is for status bar descriptions
	StatusBarText = lipgloss.NewStyle().
			Foreground(Subtle).
			Background(barBackground)

	// StatusBarError is for error messages
	StatusBarError = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Background(barBackground).
			Bold(true)

	// StatusBarSuccess is for success messages
	StatusBarSuccess = lipgloss.NewStyle().
				Foreground(SuccessColor).
				Background(barBackground).
				Bold(true)
)

// Help styles
var (
	// HelpKey is for key bindings in help
	HelpKey = lipgloss.NewStyle().
		Bold(true).
		Foreground(Highlight)

	// HelpDesc is for key binding descriptions
	HelpDesc = lipgloss.NewStyle().
			Foreground(Subtle)
)

// Dialog styles
var (
	// Dialog is the base style for dialog boxes
	Dialog = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Highlight).
		Padding(1, 2)

	// DialogTitle is for dialog titles
	DialogTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Highlight).
			MarginBottom(1)
)

// Spinner style
var (
	Spinner = lipgloss.NewStyle().
		Foreground(Highlight)
)

// Section header style
var (
	SectionHeader = lipgloss.NewStyle().
		Bold(true).
		Foreground(Subtle).
		Underline(true)
)

// Header bar
var (
	// Header is the container for the top bar
	Header = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(Subtle).
		PaddingLeft(1).
		PaddingRight(1)

	// ViewTab is for inactive view names
	ViewTab = lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(Subtle)

	// ViewTabActive is for the active view
	ViewTabActive = lipgloss.NewStyle().
			Padding(0, 1).
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(Highlight)

	// FilterSummary shows active filters in the header
	FilterSummary = lipgloss.NewStyle().
			Foreground(WarningColor).
			Italic(true)
)

// Calendar styles
// NOTE: Width is NOT set here - cells are sized from the terminal width
var (
	// CalendarWeekday is for day-of-week headers
	CalendarWeekday = lipgloss.NewStyle().
			Foreground(Subtle)

	// CalendarDay is for regular days
	CalendarDay = lipgloss.NewStyle()

	// CalendarDaySelected is for the selected day
	CalendarDaySelected = lipgloss.NewStyle().
				Bold(true).
				Background(Highlight).
				Foreground(lipgloss.Color("#ffffff"))

	// CalendarDayToday is for today's date
	CalendarDayToday = lipgloss.NewStyle().
				Bold(true).
				Foreground(SuccessColor)

	// CalendarDayOtherMonth is for days from other months
	CalendarDayOtherMonth = lipgloss.NewStyle().
				Faint(true)

	// CalendarCellBorder is for grid lines
	CalendarCellBorder = lipgloss.NewStyle().
				Foreground(Subtle)

	// CalendarMoreTasks is for "+N more" indicator in cells
	CalendarMoreTasks = lipgloss.NewStyle().
				Foreground(Subtle).
				Italic(true)

	// CalendarHourLabel is the hour gutter in week and day views
	CalendarHourLabel = lipgloss.NewStyle().
				Foreground(Subtle)

	// CalendarSlotSelected highlights the selected hour slot
	CalendarSlotSelected = lipgloss.NewStyle().
				Background(lipgloss.AdaptiveColor{Light: "#EEEEEE", Dark: "#2A2A2A"})

	// NowLine is the current-time marker in the day view
	NowLine = lipgloss.NewStyle().
		Foreground(ErrorColor).
		Bold(true)
)

// Date group header for the list view
var (
	DateGroupHeader = lipgloss.NewStyle().
		Bold(true).
		Foreground(Highlight).
		Underline(true)
)

// Task Detail styles
var (
	// DetailLabel is for field labels in task detail
	DetailLabel = lipgloss.NewStyle().
			Foreground(Subtle).
			Bold(true).
			Width(12)

	// DetailValue is for field values in task detail
	DetailValue = lipgloss.NewStyle().
			PaddingLeft(1)

	// DetailDescription is for task description
	DetailDescription = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "#444444", Dark: "#CCCCCC"}).
				PaddingLeft(2).
				MarginTop(1)
)
