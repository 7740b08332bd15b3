package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/zalando/go-keyring"

	"github.com/hy4ri/taskcal/internal/calendar"
)

func TestLoadFrom_MissingFileGivesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.View() != calendar.ViewMonth {
		t.Errorf("expected month view, got %v", cfg.View())
	}
	if cfg.Backend.Kind != BackendREST {
		t.Errorf("expected rest backend, got %q", cfg.Backend.Kind)
	}
	if cfg.Path() != path {
		t.Errorf("expected config bound to %s, got %s", path, cfg.Path())
	}
	if cfg.Timeout() != 30*time.Second {
		t.Errorf("expected 30s timeout, got %v", cfg.Timeout())
	}
}

func TestLoadFrom_YAMLAndTOML(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "yaml",
			file: "config.yaml",
			content: `
api:
  base_url: https://tasks.example.com/api
  timeout_seconds: 5
backend:
  kind: sqlite
  db_path: /tmp/tasks.db
ui:
  default_view: week
  row_height: 3
  theme: dark
  notifications: false
`,
		},
		{
			name: "toml",
			file: "config.toml",
			content: `
[api]
base_url = "https://tasks.example.com/api"
timeout_seconds = 5

[backend]
kind = "sqlite"
db_path = "/tmp/tasks.db"

[ui]
default_view = "week"
row_height = 3
theme = "dark"
notifications = false
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}

			cfg, err := LoadFrom(path)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.API.BaseURL != "https://tasks.example.com/api" {
				t.Errorf("unexpected base url %q", cfg.API.BaseURL)
			}
			if cfg.Timeout() != 5*time.Second {
				t.Errorf("expected 5s, got %v", cfg.Timeout())
			}
			if cfg.Backend.Kind != BackendSQLite {
				t.Errorf("expected sqlite, got %q", cfg.Backend.Kind)
			}
			if got, _ := cfg.DBPath(); got != "/tmp/tasks.db" {
				t.Errorf("unexpected db path %q", got)
			}
			if cfg.View() != calendar.ViewWeek {
				t.Errorf("expected week, got %v", cfg.View())
			}
			if cfg.UI.RowHeight != 3 || cfg.UI.Theme != "dark" || cfg.UI.Notifications {
				t.Errorf("unexpected ui config %+v", cfg.UI)
			}
		})
	}
}

func TestLoadFrom_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad yaml", "ui: [", "parse"},
		{"bad backend", "backend:\n  kind: ftp\n", "backend.kind"},
		{"bad view", "ui:\n  default_view: year\n", "default_view"},
		{"bad theme", "ui:\n  theme: neon\n", "ui.theme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}
			_, err := LoadFrom(path)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestSave_RoundTrip(t *testing.T) {
	for _, file := range []string{"config.yaml", "config.toml"} {
		t.Run(file, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "sub", file)
			cfg, err := LoadFrom(path)
			if err != nil {
				t.Fatal(err)
			}
			cfg.UI.DefaultView = calendar.ViewList.String()
			cfg.UI.RowHeight = 4
			if err := Save(cfg); err != nil {
				t.Fatalf("save: %v", err)
			}

			info, err := os.Stat(path)
			if err != nil {
				t.Fatalf("stat: %v", err)
			}
			if info.Mode().Perm() != 0600 {
				t.Errorf("expected 0600, got %v", info.Mode().Perm())
			}

			back, err := LoadFrom(path)
			if err != nil {
				t.Fatalf("reload: %v", err)
			}
			if back.View() != calendar.ViewList || back.UI.RowHeight != 4 {
				t.Errorf("round trip lost values: %+v", back.UI)
			}
		})
	}
}

func TestDBPath_DefaultsToDataDir(t *testing.T) {
	dataHome := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataHome)

	got, err := DefaultConfig().DBPath()
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(dataHome, "taskcal", "tasks.db")
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestResolveToken(t *testing.T) {
	keyring.MockInit()
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.Auth.APIToken = "from-config"

	t.Setenv(TokenEnv, "")
	got, err := ResolveToken(cfg)
	if err != nil || got != "from-config" {
		t.Errorf("expected config token, got %q (%v)", got, err)
	}

	if err := SaveToken("  from-keyring "); err != nil {
		t.Fatalf("save token: %v", err)
	}
	if got, _ := ResolveToken(cfg); got != "from-keyring" {
		t.Errorf("expected keyring token, got %q", got)
	}

	t.Setenv(TokenEnv, "from-env")
	if got, _ := ResolveToken(cfg); got != "from-env" {
		t.Errorf("expected env token, got %q", got)
	}

	t.Setenv(TokenEnv, "")
	if err := ClearToken(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if got, _ := GetToken(); got != "" {
		t.Errorf("expected no stored token after clear, got %q", got)
	}

	if err := SaveToken("   "); err == nil {
		t.Error("expected error for blank token")
	}
}
