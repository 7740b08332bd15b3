// Package tui provides the terminal calendar user interface.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hy4ri/taskcal/internal/config"
	"github.com/hy4ri/taskcal/internal/tui/logic"
	"github.com/hy4ri/taskcal/internal/tui/state"
	"github.com/hy4ri/taskcal/internal/tui/styles"
	"github.com/hy4ri/taskcal/internal/tui/ui"
)

// App is the main Bubble Tea model for the application.
type App struct {
	state    *state.State
	handler  *logic.Handler
	renderer *ui.Renderer
}

// NewApp creates a new App reading tasks from source.
func NewApp(source state.TaskSource, cfg *config.Config) *App {
	s := state.New(source, cfg, time.Now)
	s.Spinner.Style = styles.Spinner

	h := logic.NewHandler(s)
	return &App{
		state:    s,
		handler:  h,
		renderer: ui.NewRenderer(s, h),
	}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return a.handler.Init()
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return a, a.handler.Update(msg)
}

// View implements tea.Model.
func (a *App) View() string {
	return a.renderer.View()
}
