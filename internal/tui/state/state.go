package state

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"

	"github.com/hy4ri/taskcal/internal/api"
	"github.com/hy4ri/taskcal/internal/calendar"
	"github.com/hy4ri/taskcal/internal/config"
)

// TaskSource is the task backend the calendar talks to.
// Both the REST client and the local SQLite store implement it.
type TaskSource interface {
	ListTasks(ctx context.Context, filter api.TaskFilter) ([]api.Task, error)
	UpdateTask(ctx context.Context, id string, req api.UpdateTaskRequest) (*api.Task, error)
	CreateTask(ctx context.Context, req api.CreateTaskRequest) (*api.Task, error)
	GetTask(ctx context.Context, id string) (*api.Task, error)
	DeleteTask(ctx context.Context, id string) error
}

// Mode is the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeDetail
	ModeQuickAdd
	ModeMove  // picking a new slot for MovingTask
	ModeFilter // typing a tag filter
	ModeHelp
)

// State holds the application state.
// All fields are exported to allow access from logic and ui packages.
type State struct {
	// Dependencies
	Source     TaskSource
	Config     *config.Config
	SaveConfig func(*config.Config) error
	Now        func() time.Time

	// Calendar position
	Pivot   time.Time
	View    calendar.View
	Range   calendar.DateRange
	Filters calendar.Filters

	// Data for Range as last fetched
	Tasks []api.Task

	// DataVersion changes whenever Tasks or Filters change; derived views key their caches on it.
	DataVersion int64

	// Fetch bookkeeping
	Loading         bool
	Err             error
	FetchGeneration uint64
	CancelFetch     context.CancelFunc

	// Selection: Cursor is the selected slot (a day in month and list views, an hour in
	// week and day views). TaskCursor indexes the tasks inside that slot; in the list view
	// it indexes the whole list.
	Cursor     time.Time
	TaskCursor int

	// Interaction
	Mode         Mode
	SelectedTask *api.Task
	MovingTask   *api.Task
	QuickAdd     *QuickAddForm
	FilterLine   *FilterLine

	// UI state
	StatusMsg string
	Width     int
	Height    int

	// Components
	Spinner  spinner.Model
	Keymap   KeymapData
	KeyState *KeyState

	// Due notifications already sent, by task id
	NotifiedTasks map[string]bool
}

// New returns a State positioned on today in the configured default view.
func New(source TaskSource, cfg *config.Config, now func() time.Time) *State {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if now == nil {
		now = time.Now
	}

	s := spinner.New()
	s.Spinner = spinner.Dot

	today := now()
	st := &State{
		Source:        source,
		Config:        cfg,
		SaveConfig:    config.Save,
		Now:           now,
		Pivot:         today,
		View:          cfg.View(),
		Cursor:        calendar.StartOfDay(today).Add(time.Duration(today.Hour()) * time.Hour),
		Spinner:       s,
		Keymap:        DefaultKeymap(),
		KeyState:      &KeyState{},
		NotifiedTasks: make(map[string]bool),
	}
	st.Range = calendar.ComputeRange(st.Pivot, st.View)
	return st
}

// RowHeight returns the configured lines per hour in week and day views.
func (s *State) RowHeight() int {
	if s.Config == nil || s.Config.UI.RowHeight <= 0 {
		return config.DefaultRowHeight
	}
	return s.Config.UI.RowHeight
}

// BumpDataVersion invalidates derived views.
func (s *State) BumpDataVersion() {
	s.DataVersion++
}

// chromeHeight is the number of lines taken by the header, filter line and status bar.
const chromeHeight = 4

// BodySize returns the space available to the calendar body.
func (s *State) BodySize() (int, int) {
	return s.Width, max(s.Height-chromeHeight, 0)
}
