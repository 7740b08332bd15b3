package state

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestKeyState_HandleKey(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want string
	}{
		{"dd deletes", []string{"d", "d"}, "delete"},
		{"yy yanks", []string{"y", "y"}, "yank"},
		{"gg jumps to today", []string{"g", "g"}, "today"},
		{"d then j moves down", []string{"d", "j"}, "down"},
		{"y then d waits again", []string{"y", "d"}, ""},
		{"single key", []string{"m"}, "move"},
	}

	keymap := DefaultKeymap()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ks := &KeyState{}
			var action string
			for _, k := range tt.keys {
				action, _ = ks.HandleKey(runes(k), keymap)
			}
			if action != tt.want {
				t.Errorf("expected %q, got %q", tt.want, action)
			}
		})
	}
}

func TestKeyState_Reset(t *testing.T) {
	keymap := DefaultKeymap()
	ks := &KeyState{}
	ks.HandleKey(runes("d"), keymap)
	if !ks.WaitingD {
		t.Fatal("expected a pending d")
	}

	ks.Reset()
	if ks.WaitingD || ks.WaitingG || ks.WaitingY || ks.LastKey != "" {
		t.Errorf("expected no pending sequence, got %+v", ks)
	}
	if action, _ := ks.HandleKey(runes("d"), keymap); action != "" {
		t.Errorf("expected a fresh d to wait, got %q", action)
	}
}
