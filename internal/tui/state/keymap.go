package state

import tea "github.com/charmbracelet/bubbletea"

// Key represents a key binding.
type Key struct {
	Key  string
	Help string
}

// KeymapData contains all key bindings for the application.
type KeymapData struct {
	// Navigation
	Up    Key
	Down  Key
	Left  Key
	Right Key
	Prev  Key
	Next  Key
	Today Key

	// Slot tasks
	TaskNext Key
	TaskPrev Key

	// Views
	ViewMonth Key
	ViewWeek  Key
	ViewDay   Key
	ViewList  Key
	CycleView Key

	// Actions
	Select  Key
	Back    Key
	Quit    Key
	Help    Key
	Refresh Key
	AddTask Key
	Move    Key
	Yank    Key
	Delete  Key

	// Filters
	FilterTag      Key
	FilterDone     Key
	FilterOpen     Key
	FilterUrgent   Key
	FilterHigh     Key
	ClearFilters   Key
	MoveToPrevDay  Key
	MoveToNextDay  Key
	ToggleComplete Key
}

// DefaultKeymap returns the default Vim-style key bindings.
func DefaultKeymap() KeymapData {
	return KeymapData{
		Up:    Key{Key: "k", Help: "up"},
		Down:  Key{Key: "j", Help: "down"},
		Left:  Key{Key: "h", Help: "left"},
		Right: Key{Key: "l", Help: "right"},
		Prev:  Key{Key: "[", Help: "previous period"},
		Next:  Key{Key: "]", Help: "next period"},
		Today: Key{Key: "t", Help: "today"},

		TaskNext: Key{Key: "tab", Help: "next task in slot"},
		TaskPrev: Key{Key: "shift+tab", Help: "previous task in slot"},

		ViewMonth: Key{Key: "1", Help: "month view"},
		ViewWeek:  Key{Key: "2", Help: "week view"},
		ViewDay:   Key{Key: "3", Help: "day view"},
		ViewList:  Key{Key: "4", Help: "list view"},
		CycleView: Key{Key: "v", Help: "cycle views"},

		Select:  Key{Key: "enter", Help: "open task / add in slot"},
		Back:    Key{Key: "esc", Help: "back"},
		Quit:    Key{Key: "q", Help: "quit"},
		Help:    Key{Key: "?", Help: "help"},
		Refresh: Key{Key: "r", Help: "refresh / retry"},
		AddTask: Key{Key: "a", Help: "quick add"},
		Move:    Key{Key: "m", Help: "move task"},
		Yank:    Key{Key: "y", Help: "copy (yy)"},
		Delete:  Key{Key: "d", Help: "delete (dd)"},

		FilterTag:      Key{Key: "/", Help: "filter by tag"},
		FilterDone:     Key{Key: "D", Help: "toggle done filter"},
		FilterOpen:     Key{Key: "O", Help: "toggle todo filter"},
		FilterUrgent:   Key{Key: "U", Help: "toggle urgent filter"},
		FilterHigh:     Key{Key: "I", Help: "toggle high filter"},
		ClearFilters:   Key{Key: "C", Help: "clear filters"},
		MoveToPrevDay:  Key{Key: "H", Help: "move task -1 day"},
		MoveToNextDay:  Key{Key: "L", Help: "move task +1 day"},
		ToggleComplete: Key{Key: "x", Help: "toggle done"},
	}
}

// KeyState tracks multi-key sequences (like 'gg' or 'yy').
type KeyState struct {
	LastKey  string
	WaitingG bool // Waiting for second 'g' in 'gg'
	WaitingY bool // Waiting for second 'y' in 'yy'
	WaitingD bool // Waiting for second 'd' in 'dd'
}

// HandleKey processes a key press in normal mode and returns the action to take.
// Returns the action name and whether the key was consumed.
func (ks *KeyState) HandleKey(msg tea.KeyMsg, keymap KeymapData) (string, bool) {
	key := msg.String()

	if ks.WaitingG {
		ks.WaitingG = false
		if key == "g" {
			return "today", true
		}
	}

	if ks.WaitingD {
		ks.WaitingD = false
		if key == keymap.Delete.Key {
			return "delete", true
		}
	}

	if ks.WaitingY {
		ks.WaitingY = false
		if key == keymap.Yank.Key {
			return "yank", true
		}
	}

	if key == "g" {
		ks.WaitingG = true
		ks.LastKey = key
		return "", true
	}

	if key == keymap.Yank.Key {
		ks.WaitingY = true
		ks.LastKey = key
		return "", true
	}

	if key == keymap.Delete.Key {
		ks.WaitingD = true
		ks.LastKey = key
		return "", true
	}

	switch key {
	case keymap.Up.Key, "up":
		return "up", true
	case keymap.Down.Key, "down":
		return "down", true
	case keymap.Left.Key, "left":
		return "left", true
	case keymap.Right.Key, "right":
		return "right", true
	case keymap.Prev.Key, "pgup":
		return "prev", true
	case keymap.Next.Key, "pgdown":
		return "next", true
	case keymap.Today.Key:
		return "today", true
	case keymap.TaskNext.Key:
		return "task_next", true
	case keymap.TaskPrev.Key:
		return "task_prev", true
	case keymap.ViewMonth.Key:
		return "view_month", true
	case keymap.ViewWeek.Key:
		return "view_week", true
	case keymap.ViewDay.Key:
		return "view_day", true
	case keymap.ViewList.Key:
		return "view_list", true
	case keymap.CycleView.Key:
		return "cycle_view", true
	case keymap.Select.Key:
		return "select", true
	case keymap.Back.Key:
		return "back", true
	case keymap.Quit.Key, "ctrl+c":
		return "quit", true
	case keymap.Help.Key:
		return "help", true
	case keymap.Refresh.Key:
		return "refresh", true
	case keymap.AddTask.Key:
		return "add", true
	case keymap.Move.Key:
		return "move", true
	case keymap.FilterTag.Key:
		return "filter_tag", true
	case keymap.FilterDone.Key:
		return "filter_done", true
	case keymap.FilterOpen.Key:
		return "filter_open", true
	case keymap.FilterUrgent.Key:
		return "filter_urgent", true
	case keymap.FilterHigh.Key:
		return "filter_high", true
	case keymap.ClearFilters.Key:
		return "clear_filters", true
	case keymap.MoveToPrevDay.Key:
		return "move_prev_day", true
	case keymap.MoveToNextDay.Key:
		return "move_next_day", true
	case keymap.ToggleComplete.Key:
		return "complete", true
	}

	return "", false
}

// Reset clears any pending multi-key sequences. Call it when the mode changes outside of a
// key press, so a half-typed "dd" cannot complete in the next screen.
func (ks *KeyState) Reset() {
	ks.WaitingG = false
	ks.WaitingY = false
	ks.WaitingD = false
	ks.LastKey = ""
}

// HelpItems returns a slice of key-description pairs for the help view.
func (k KeymapData) HelpItems() [][]string {
	return [][]string{
		{"Navigation", ""},
		{k.Left.Key + "/" + k.Right.Key, "Previous/next day"},
		{k.Up.Key + "/" + k.Down.Key, "Up/down (week in month view, hour in week/day view)"},
		{k.Prev.Key + "/" + k.Next.Key, "Previous/next period"},
		{k.Today.Key + " or gg", "Jump to today"},
		{k.TaskNext.Key + "/" + k.TaskPrev.Key, "Cycle tasks in slot"},
		{"", ""},
		{"Views", ""},
		{k.ViewMonth.Key, "Month"},
		{k.ViewWeek.Key, "Week"},
		{k.ViewDay.Key, "Day"},
		{k.ViewList.Key, "List"},
		{k.CycleView.Key, "Cycle views"},
		{"", ""},
		{"Task Actions", ""},
		{k.Select.Key, "Open task / add task in empty slot"},
		{k.AddTask.Key, "Quick add (#tag !priority @HH:MM)"},
		{k.Move.Key, "Move task, then pick a slot and press enter"},
		{k.MoveToPrevDay.Key + "/" + k.MoveToNextDay.Key, "Move task -1/+1 day"},
		{k.ToggleComplete.Key, "Toggle done"},
		{"yy", "Copy task to clipboard"},
		{"dd", "Delete task"},
		{"", ""},
		{"Filters", ""},
		{k.FilterTag.Key, "Filter by tags"},
		{k.FilterDone.Key, "Toggle done"},
		{k.FilterOpen.Key, "Toggle todo"},
		{k.FilterUrgent.Key, "Toggle urgent"},
		{k.FilterHigh.Key, "Toggle high"},
		{k.ClearFilters.Key, "Clear all filters"},
		{"", ""},
		{"General", ""},
		{k.Refresh.Key, "Refresh / retry"},
		{k.Help.Key, "Toggle help"},
		{k.Back.Key, "Go back / Cancel"},
		{k.Quit.Key, "Quit"},
	}
}
