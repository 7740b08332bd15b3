package logic

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hy4ri/taskcal/internal/api"
)

// Init starts the spinner, the first fetch and the due checker.
func (h *Handler) Init() tea.Cmd {
	return tea.Batch(
		h.Spinner.Tick,
		h.FetchTasks(),
		checkDueCmd(),
	)
}

type errMsg struct{ err error }
type statusMsg struct{ msg string }

// tasksLoadedMsg is the result of one fetch. gen identifies the fetch that produced it.
type tasksLoadedMsg struct {
	gen   uint64
	tasks []api.Task
	err   error
}

type taskUpdatedMsg struct {
	task   *api.Task
	status string
}

type taskCreatedMsg struct {
	task *api.Task
}

type taskDeletedMsg struct {
	id    string
	title string
}

// taskDetailMsg carries a freshly fetched task for the detail dialog.
type taskDetailMsg struct {
	id   string
	task *api.Task
	err  error
}

type configSavedMsg struct{ err error }
