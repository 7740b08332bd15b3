// Package main is the entry point for the taskcal terminal calendar.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hy4ri/taskcal/internal/api"
	"github.com/hy4ri/taskcal/internal/calendar"
	"github.com/hy4ri/taskcal/internal/config"
	"github.com/hy4ri/taskcal/internal/storage"
	"github.com/hy4ri/taskcal/internal/tui"
	"github.com/hy4ri/taskcal/internal/tui/state"
	"github.com/hy4ri/taskcal/internal/tui/styles"
)

const version = "0.1.0"

// debugEnv names a log file to write debug output to.
const debugEnv = "TASKCAL_DEBUG"

const helpText = `taskcal - Terminal calendar for your tasks with Vim keybindings

USAGE:
    taskcal [OPTIONS]

OPTIONS:
    -h, --help          Show this help message
    -v, --version       Show version information
    --init              Create a template config file
    --config PATH       Use a config file other than the default (.yaml or .toml)
    --view VIEW         Start in month, week, day or list view
    --backend KIND      Read tasks from "rest" or "sqlite"
    --token TOKEN       Store the REST backend token in the system keyring
    --logout            Remove the stored token

CONFIGURATION:
    Config file: ~/.config/taskcal/config.yaml
    Local database: ~/.local/share/taskcal/tasks.db

    The REST backend token is read from TASKCAL_TOKEN, the system keyring,
    the credentials file or auth.api_token, in that order. --token writes
    the keyring, or the credentials file when no keyring is available.

    Set TASKCAL_DEBUG=<file> to write a debug log.

KEYBINDINGS:
    Navigation:
        h/j/k/l     Move the cursor
        [ / ]       Previous / next period
        t           Jump to today
        Tab         Cycle tasks in the slot
        1-4         Month, week, day, list view
        v           Cycle views

    Task Actions:
        Enter       Open task / add in empty slot
        a           Quick add at the cursor
        m           Move task (Enter to drop)
        H / L       Move task one day back / forward
        x           Toggle done
        yy          Copy task
        dd          Delete task

    Filters:
        /           Filter by tags
        D O U I     Toggle done, todo, urgent, high
        C           Clear filters

    Other:
        r           Refresh
        ?           Show help
        q           Quit
`

const configTemplate = `# taskcal configuration
# Location: ~/.config/taskcal/config.yaml

auth:
  # Bearer token for the REST backend. Prefer TASKCAL_TOKEN or the system keyring.
  api_token: ""

api:
  base_url: "http://localhost:8080/api"
  timeout_seconds: 30

backend:
  # "rest" talks to base_url, "sqlite" keeps tasks in a local database.
  kind: rest
  # db_path: ~/.local/share/taskcal/tasks.db

ui:
  # month, week, day or list
  default_view: month
  # Lines per hour in week and day views
  row_height: 2
  # auto, dark or light
  theme: auto
  # Desktop notifications for tasks coming due
  notifications: true
`

type options struct {
	configPath string
	view       string
	backend    string
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		showHelp    bool
		showVersion bool
		initConfig  bool
		logout      bool
		token       string
		opts        options
	)

	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version")
	flag.BoolVar(&showVersion, "v", false, "Show version (shorthand)")
	flag.BoolVar(&initConfig, "init", false, "Create template config file")
	flag.StringVar(&opts.configPath, "config", "", "Config file path")
	flag.StringVar(&opts.view, "view", "", "Initial calendar view")
	flag.StringVar(&opts.backend, "backend", "", "Task backend (rest or sqlite)")
	flag.StringVar(&token, "token", "", "Store the API token")
	flag.BoolVar(&logout, "logout", false, "Remove the stored API token")

	flag.Usage = func() {
		fmt.Print(helpText)
	}

	flag.Parse()

	if showHelp {
		fmt.Print(helpText)
		return nil
	}

	if showVersion {
		fmt.Printf("taskcal version %s\n", version)
		return nil
	}

	if initConfig {
		return createConfigTemplate(opts.configPath)
	}

	if logout {
		return clearToken()
	}

	if token != "" {
		return saveToken(opts, token)
	}

	return runApp(opts)
}

// createConfigTemplate writes a template configuration file.
func createConfigTemplate(path string) error {
	if path == "" {
		var err error
		if path, err = config.ConfigPath(); err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
	}

	if _, err := os.Stat(path); err == nil {
		fmt.Printf("Config file already exists: %s\n", path)
		fmt.Print("Overwrite? [y/N]: ")

		var response string
		fmt.Scanln(&response)

		if response != "y" && response != "Y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := os.WriteFile(path, []byte(configTemplate), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("Config file created: %s\n\n", path)
	fmt.Println("Next steps:")
	fmt.Println("  1. Point api.base_url at your task service, or set backend.kind to sqlite")
	fmt.Println("  2. Export TASKCAL_TOKEN or add your api_token")
	fmt.Println("  3. Run 'taskcal' to start")

	return nil
}

// saveToken stores token for the REST backend.
func saveToken(opts options, token string) error {
	if err := config.SaveToken(token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	fmt.Println("Token saved.")

	if cfg, err := loadConfig(opts); err == nil && cfg.HasValidAuth() {
		fmt.Println("The stored token takes precedence; auth.api_token can be removed from the config file.")
	}
	return nil
}

func clearToken() error {
	if err := config.ClearToken(); err != nil {
		return fmt.Errorf("failed to remove token: %w", err)
	}
	fmt.Println("Stored token removed.")
	return nil
}

// loadConfig reads the config file and applies command-line overrides.
func loadConfig(opts options) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = config.LoadFrom(opts.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if opts.view != "" {
		v, err := calendar.ParseView(opts.view)
		if err != nil {
			return nil, err
		}
		cfg.UI.DefaultView = v.String()
	}
	if opts.backend != "" {
		cfg.Backend.Kind = opts.backend
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// openSource connects the configured task backend. The returned close func is never nil.
func openSource(cfg *config.Config) (state.TaskSource, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Backend.Kind {
	case config.BackendSQLite:
		path, err := cfg.DBPath()
		if err != nil {
			return nil, noop, err
		}
		store, err := storage.Open(path)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to open database: %w", err)
		}
		log.Printf("using sqlite backend at %s", path)
		return store, store.Close, nil
	default:
		token, err := config.ResolveToken(cfg)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to read token: %w", err)
		}
		if token == "" {
			return nil, noop, nil
		}
		client := api.NewClient(cfg.API.BaseURL, token)
		if d := cfg.Timeout(); d > 0 {
			client.SetTimeout(d)
		}
		log.Printf("using rest backend at %s", cfg.API.BaseURL)
		return client, noop, nil
	}
}

func printAuthHelp(cfg *config.Config) {
	path := cfg.Path()
	if path == "" {
		path, _ = config.ConfigPath()
	}
	fmt.Println("No API token configured.")
	fmt.Println()
	fmt.Println("To get started:")
	fmt.Printf("  1. Run 'taskcal --init' to create a config file at:\n     %s\n", path)
	fmt.Printf("  2. Run 'taskcal --token TOKEN', export %s or add api_token to the config file\n", config.TokenEnv)
	fmt.Println("  3. Run 'taskcal' again")
	fmt.Println()
	fmt.Println("Or run 'taskcal --backend sqlite' to keep tasks locally.")
}

// runApp starts the main TUI application.
func runApp(opts options) error {
	if path := os.Getenv(debugEnv); path != "" {
		f, err := tea.LogToFile(path, "taskcal")
		if err != nil {
			return fmt.Errorf("failed to open debug log: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	styles.ApplyTheme(cfg.UI.Theme)

	source, closeSource, err := openSource(cfg)
	if err != nil {
		return err
	}
	defer closeSource()
	if source == nil {
		printAuthHelp(cfg)
		return nil
	}

	app := tui.NewApp(source, cfg)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	return nil
}
