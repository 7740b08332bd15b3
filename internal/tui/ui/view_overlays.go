package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// overlayContent centres dialog over the screen. The header of base stays visible so the
// user keeps the date context while typing.
func (r *Renderer) overlayContent(base, dialog string) string {
	header := ""
	if lines := strings.SplitN(base, "\n", 3); len(lines) >= 2 {
		header = lines[0] + "\n" + lines[1]
	}
	height := max(r.Height-lipgloss.Height(header), lipgloss.Height(dialog))
	placed := lipgloss.Place(r.Width, height, lipgloss.Center, lipgloss.Center, dialog)
	if header == "" {
		return placed
	}
	return header + "\n" + placed
}
