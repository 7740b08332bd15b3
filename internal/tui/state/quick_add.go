package state

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hy4ri/taskcal/internal/api"
	"github.com/hy4ri/taskcal/internal/calendar"
)

// QuickAddForm represents a lightweight form for quick task creation in a calendar slot.
// Inline tokens: "#tag" adds a tag, "!high" (or !urgent, !medium, !low, !1-!4) sets
// the priority, and "@HH:MM" sets the time of day.
type QuickAddForm struct {
	Input textinput.Model

	// Slot the task will be due in. HasTime is false for whole-day slots.
	Slot    time.Time
	HasTime bool

	// Status tracking
	TaskCount int
}

// NewQuickAddForm creates a new quick add form for slot.
func NewQuickAddForm(slot time.Time, hasTime bool) *QuickAddForm {
	input := textinput.New()
	input.Placeholder = "e.g. Review PR #work !high @14:30"
	input.Focus()
	input.CharLimit = 500
	input.Width = 60

	return &QuickAddForm{
		Input:   input,
		Slot:    slot,
		HasTime: hasTime,
	}
}

// Update handles input events for the form.
func (f *QuickAddForm) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.Input, cmd = f.Input.Update(msg)
	return cmd
}

// Value returns the current input value.
func (f *QuickAddForm) Value() string {
	return strings.TrimSpace(f.Input.Value())
}

// IsValid returns true if there is content to submit.
func (f *QuickAddForm) IsValid() bool {
	return f.Value() != ""
}

// Clear resets the input field for the next task.
func (f *QuickAddForm) Clear() {
	f.Input.SetValue("")
}

// SetWidth sets the width of the input field.
func (f *QuickAddForm) SetWidth(width int) {
	// Account for dialog borders/padding
	inputWidth := width - 10
	if inputWidth < 40 {
		inputWidth = 40
	}
	if inputWidth > 80 {
		inputWidth = 80
	}
	f.Input.Width = inputWidth
}

// IncrementCount increments the task count.
func (f *QuickAddForm) IncrementCount() {
	f.TaskCount++
}

// Request builds the create request from the current input.
func (f *QuickAddForm) Request() (api.CreateTaskRequest, error) {
	return ParseQuickAdd(f.Value(), f.Slot, f.HasTime)
}

var priorityTokens = map[string]api.Priority{
	"urgent": api.PriorityUrgent, "u": api.PriorityUrgent, "1": api.PriorityUrgent,
	"high": api.PriorityHigh, "h": api.PriorityHigh, "2": api.PriorityHigh,
	"medium": api.PriorityMedium, "m": api.PriorityMedium, "3": api.PriorityMedium,
	"low": api.PriorityLow, "l": api.PriorityLow, "4": api.PriorityLow,
}

// ParseQuickAdd turns quick-add text into a create request due in slot. Without an
// "@HH:MM" token, a timed slot keeps its hour and a whole-day slot is due at local midnight.
func ParseQuickAdd(text string, slot time.Time, hasTime bool) (api.CreateTaskRequest, error) {
	var (
		req   api.CreateTaskRequest
		title []string
		clock string
	)

	for _, word := range strings.Fields(text) {
		switch {
		case len(word) > 1 && word[0] == '#':
			req.Tags = append(req.Tags, word[1:])
		case len(word) > 1 && word[0] == '!':
			p, ok := priorityTokens[strings.ToLower(word[1:])]
			if !ok {
				return req, fmt.Errorf("unknown priority %q", word)
			}
			req.Priority = p
		case len(word) > 1 && word[0] == '@':
			clock = word[1:]
		default:
			title = append(title, word)
		}
	}

	req.Title = strings.Join(title, " ")
	if req.Title == "" {
		return req, fmt.Errorf("title is required")
	}

	if clock == "" && hasTime {
		clock = calendar.FormatTimeHHMM(slot)
	}
	due, err := calendar.CombineDateAndTime(string(calendar.FormatDateKey(slot)), clock)
	if err != nil {
		return req, err
	}
	req.DueDate = api.FormatDue(due)
	req.Status = api.StatusTodo
	return req, nil
}
