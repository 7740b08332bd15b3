package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hy4ri/taskcal/internal/tui/styles"
)

// HelpModel renders the keyboard shortcut overlay.
type HelpModel struct {
	width, height int
	keymap        [][]string
}

// NewHelp creates a new HelpModel.
func NewHelp() *HelpModel {
	return &HelpModel{}
}

// leftColumnSections are drawn in the first column; all other sections go to the second.
var leftColumnSections = map[string]bool{
	"Navigation": true,
	"Views":      true,
	"General":    true,
}

// View renders the shortcuts in two columns.
func (h *HelpModel) View() string {
	if len(h.keymap) == 0 {
		return styles.Dialog.Render("No keybindings registered")
	}

	var b strings.Builder
	b.WriteString(styles.Title.Render("Keyboard Shortcuts"))
	b.WriteString("\n")

	var left, right strings.Builder
	current := &left
	keyStyle := styles.HelpKey.Width(12).Align(lipgloss.Right).PaddingRight(2)

	for _, item := range h.keymap {
		if len(item) < 2 {
			continue
		}
		key, desc := item[0], item[1]

		switch {
		case key != "" && desc == "":
			if leftColumnSections[key] {
				current = &left
			} else {
				current = &right
			}
			current.WriteString("\n" + styles.SectionHeader.Render(" "+key+" ") + "\n")
		case key == "" && desc == "":
			current.WriteString("\n")
		default:
			current.WriteString(keyStyle.Render(key) + styles.HelpDesc.Render(desc) + "\n")
		}
	}

	colWidth := min(h.width/2, 50)
	column := lipgloss.NewStyle().Width(colWidth).PaddingLeft(2).PaddingRight(2)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, column.Render(left.String()), column.Render(right.String())))
	b.WriteString("\n\n")

	footer := styles.HelpDesc.Render("Press ESC or ? to close")
	b.WriteString(lipgloss.NewStyle().Width(h.width).Align(lipgloss.Center).Render(footer))

	return b.String()
}

// SetSize sets the overlay dimensions.
func (h *HelpModel) SetSize(width, height int) {
	h.width = width
	h.height = height
}

// SetKeymap sets the items to display, as produced by KeymapData.HelpItems.
func (h *HelpModel) SetKeymap(items [][]string) {
	h.keymap = items
}
