package state

import (
	"testing"
	"time"

	"github.com/hy4ri/taskcal/internal/api"
)

func TestParseQuickAdd(t *testing.T) {
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.Local)
	hourSlot := time.Date(2024, 3, 15, 14, 0, 0, 0, time.Local)

	tests := []struct {
		name     string
		text     string
		slot     time.Time
		hasTime  bool
		title    string
		priority api.Priority
		tags     []string
		due      time.Time
		wantErr  bool
	}{
		{
			name:  "plain title on a day slot",
			text:  "Buy milk",
			slot:  day,
			title: "Buy milk",
			due:   day,
		},
		{
			name:     "tokens anywhere",
			text:     "#home Fix sink !high #urgent-ish",
			slot:     day,
			title:    "Fix sink",
			priority: api.PriorityHigh,
			tags:     []string{"home", "urgent-ish"},
			due:      day,
		},
		{
			name:    "hour slot keeps its time",
			text:    "Standup",
			slot:    hourSlot,
			hasTime: true,
			title:   "Standup",
			due:     hourSlot,
		},
		{
			name:     "explicit time wins",
			text:     "Call @09:15 !1",
			slot:     hourSlot,
			hasTime:  true,
			title:    "Call",
			priority: api.PriorityUrgent,
			due:      time.Date(2024, 3, 15, 9, 15, 0, 0, time.Local),
		},
		{name: "empty title", text: "#tag !low", slot: day, wantErr: true},
		{name: "bad priority", text: "Thing !soon", slot: day, wantErr: true},
		{name: "bad time", text: "Thing @25:00", slot: day, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := ParseQuickAdd(tt.text, tt.slot, tt.hasTime)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got %+v", req)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if req.Title != tt.title {
				t.Errorf("expected title %q, got %q", tt.title, req.Title)
			}
			if req.Priority != tt.priority {
				t.Errorf("expected priority %q, got %q", tt.priority, req.Priority)
			}
			if len(req.Tags) != len(tt.tags) {
				t.Fatalf("expected tags %v, got %v", tt.tags, req.Tags)
			}
			for i := range tt.tags {
				if req.Tags[i] != tt.tags[i] {
					t.Errorf("expected tags %v, got %v", tt.tags, req.Tags)
				}
			}
			due := api.ParseDue(req.DueDate)
			if due == nil || !due.Equal(tt.due) {
				t.Errorf("expected due %v, got %v (%q)", tt.due, due, req.DueDate)
			}
		})
	}
}

func TestFilterLine_Tags(t *testing.T) {
	f := NewFilterLine([]string{"work"})
	if got := f.Tags(); len(got) != 1 || got[0] != "work" {
		t.Errorf("expected prefilled tag, got %v", got)
	}

	f.Input.SetValue("#home, errands  q1")
	got := f.Tags()
	want := []string{"home", "errands", "q1"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %v, got %v", want, got)
		}
	}

	f.Input.SetValue("  ")
	if got := f.Tags(); got == nil || len(got) != 0 {
		t.Errorf("expected non-nil empty slice, got %#v", got)
	}
}
