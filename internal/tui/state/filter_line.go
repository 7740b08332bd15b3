package state

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
)

// FilterLine holds the state for the tag filter prompt.
type FilterLine struct {
	Input textinput.Model
}

// NewFilterLine initializes a filter prompt pre-filled with the active tags.
func NewFilterLine(tags []string) *FilterLine {
	input := textinput.New()
	input.Prompt = "" // Prompt is rendered externally
	input.Placeholder = "tags, comma or space separated"
	input.CharLimit = 100
	input.Width = 50
	input.SetValue(strings.Join(tags, ", "))
	input.CursorEnd()
	input.Focus()

	return &FilterLine{Input: input}
}

// Tags returns the entered tags. An empty prompt yields a non-nil empty slice,
// which clears the tag filter.
func (f *FilterLine) Tags() []string {
	fields := strings.FieldsFunc(f.Input.Value(), func(r rune) bool {
		return r == ',' || r == ' '
	})
	tags := make([]string, 0, len(fields))
	for _, field := range fields {
		tags = append(tags, strings.TrimPrefix(field, "#"))
	}
	return tags
}
