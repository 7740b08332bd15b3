// Package config handles loading and saving application configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/hy4ri/taskcal/internal/calendar"
)

const (
	appName         = "taskcal"
	defaultFileName = "config.yaml"
	defaultDBName   = "tasks.db"

	BackendREST   = "rest"
	BackendSQLite = "sqlite"

	DefaultBaseURL   = "http://localhost:8080/api"
	DefaultRowHeight = 2
)

// Config represents the application configuration.
type Config struct {
	Auth    AuthConfig    `yaml:"auth" toml:"auth"`
	API     APIConfig     `yaml:"api" toml:"api"`
	Backend BackendConfig `yaml:"backend" toml:"backend"`
	UI      UIConfig      `yaml:"ui" toml:"ui"`

	// path is where the config was loaded from; Save writes back to it.
	path string
}

// AuthConfig holds authentication-related settings.
type AuthConfig struct {
	// APIToken is the bearer token sent to the task API. Prefer the keyring (see SaveToken).
	APIToken string `yaml:"api_token,omitempty" toml:"api_token,omitempty"`
}

// APIConfig holds REST backend settings.
type APIConfig struct {
	BaseURL        string `yaml:"base_url" toml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds" toml:"timeout_seconds"`
}

// BackendConfig selects where tasks come from.
type BackendConfig struct {
	Kind   string `yaml:"kind" toml:"kind"` // "rest" or "sqlite"
	DBPath string `yaml:"db_path,omitempty" toml:"db_path,omitempty"`
}

// UIConfig holds UI-related settings.
type UIConfig struct {
	DefaultView   string `yaml:"default_view" toml:"default_view"` // month, week, day or list
	RowHeight     int    `yaml:"row_height" toml:"row_height"`
	Theme         string `yaml:"theme" toml:"theme"` // auto, dark or light
	Notifications bool   `yaml:"notifications" toml:"notifications"`
}

// DefaultConfig returns a new Config with default values.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:        DefaultBaseURL,
			TimeoutSeconds: 30,
		},
		Backend: BackendConfig{
			Kind: BackendREST,
		},
		UI: UIConfig{
			DefaultView:   calendar.ViewMonth.String(),
			RowHeight:     DefaultRowHeight,
			Theme:         "auto",
			Notifications: true,
		},
	}
}

// ConfigDir returns the path to the configuration directory.
// Creates the directory if it doesn't exist.
func ConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".config", appName)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// ConfigPath returns the full path to the default configuration file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, defaultFileName), nil
}

// Load reads the configuration from the default config file.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the configuration from path. A ".toml" extension selects TOML, anything else YAML.
// If the file doesn't exist, returns a default configuration bound to path.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.path = path

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if isTOML(path) {
		err = toml.Unmarshal(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration back to the file it was loaded from,
// or to the default path for a config that was built in memory.
func Save(cfg *Config) error {
	path := cfg.path
	if path == "" {
		var err error
		if path, err = ConfigPath(); err != nil {
			return err
		}
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the configuration to path in the format its extension selects.
func SaveTo(cfg *Config, path string) error {
	var (
		data []byte
		err  error
	)
	if isTOML(path) {
		data, err = toml.Marshal(cfg)
	} else {
		data, err = yaml.Marshal(cfg)
	}
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	// Write with restricted permissions (owner read/write only)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	cfg.path = path
	return nil
}

// Path returns the file this config is bound to, if any.
func (c *Config) Path() string {
	return c.path
}

// Validate checks enumerated fields and fills zero values with defaults.
func (c *Config) Validate() error {
	switch c.Backend.Kind {
	case "":
		c.Backend.Kind = BackendREST
	case BackendREST, BackendSQLite:
	default:
		return fmt.Errorf("backend.kind must be %q or %q, got %q", BackendREST, BackendSQLite, c.Backend.Kind)
	}

	switch c.UI.Theme {
	case "":
		c.UI.Theme = "auto"
	case "auto", "dark", "light":
	default:
		return fmt.Errorf("ui.theme must be auto, dark or light, got %q", c.UI.Theme)
	}

	if c.UI.DefaultView != "" {
		if _, err := calendar.ParseView(c.UI.DefaultView); err != nil {
			return fmt.Errorf("ui.default_view: %w", err)
		}
	}
	if c.UI.RowHeight <= 0 {
		c.UI.RowHeight = DefaultRowHeight
	}
	if c.API.TimeoutSeconds < 0 {
		return fmt.Errorf("api.timeout_seconds must not be negative")
	}
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultBaseURL
	}
	return nil
}

// View returns the configured default calendar view, falling back to month.
func (c *Config) View() calendar.View {
	v, err := calendar.ParseView(c.UI.DefaultView)
	if err != nil {
		return calendar.ViewMonth
	}
	return v
}

// Timeout returns the HTTP timeout, or zero to keep the client default.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// DBPath returns the SQLite database path, defaulting to the data directory.
func (c *Config) DBPath() (string, error) {
	if c.Backend.DBPath != "" {
		return expandHome(c.Backend.DBPath)
	}
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, defaultDBName), nil
}

// HasValidAuth returns true if the config carries an API token.
func (c *Config) HasValidAuth() bool {
	return c.Auth.APIToken != ""
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
