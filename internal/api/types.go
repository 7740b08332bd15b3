// Package api provides a client for the task REST API.
package api

import (
	"encoding/json"
	"strings"
	"time"
)

// Status is the workflow state of a task.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "inProgress"
	StatusInReview   Status = "inReview"
	StatusDone       Status = "done"
)

// Statuses lists every status in board order.
var Statuses = []Status{StatusTodo, StatusInProgress, StatusInReview, StatusDone}

// Priority is the urgency of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Priorities lists every priority from most to least urgent.
var Priorities = []Priority{PriorityUrgent, PriorityHigh, PriorityMedium, PriorityLow}

// Rank orders priorities for display: urgent sorts first, unknown values last.
func (p Priority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	default:
		return 4
	}
}

// Assignee is a user a task is assigned to.
type Assignee struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Task represents a task as returned by the API.
type Task struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	Status         Status     `json:"status"`
	Priority       Priority   `json:"priority"`
	DueDate        *time.Time `json:"dueDate"`
	EstimatedHours *float64   `json:"estimatedHours,omitempty"`
	Tags           []string   `json:"tags,omitempty"`
	Assignees      []Assignee `json:"assignees,omitempty"`
}

// dueLayouts are the accepted wire formats for dueDate, tried in order.
var dueLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// UnmarshalJSON decodes a task, treating a missing or malformed dueDate as unscheduled.
func (t *Task) UnmarshalJSON(data []byte) error {
	type alias Task
	var raw struct {
		alias
		ID       json.RawMessage `json:"id"`
		LegacyID json.RawMessage `json:"_id"`
		DueDate  json.RawMessage `json:"dueDate"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*t = Task(raw.alias)
	t.ID = decodeID(raw.ID)
	if t.ID == "" {
		t.ID = decodeID(raw.LegacyID)
	}
	t.DueDate = decodeDue(raw.DueDate)
	return nil
}

// decodeDue accepts a date string or a number of Unix milliseconds. Anything else,
// including null, objects and unparseable strings, means no due date.
func decodeDue(raw json.RawMessage) *time.Time {
	raw = json.RawMessage(strings.TrimSpace(string(raw)))
	if len(raw) == 0 {
		return nil
	}
	switch {
	case raw[0] == '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil
		}
		return ParseDue(s)
	case raw[0] == '-' || (raw[0] >= '0' && raw[0] <= '9'):
		var ms json.Number
		if err := json.Unmarshal(raw, &ms); err != nil {
			return nil
		}
		n, err := ms.Int64()
		if err != nil {
			return nil
		}
		due := time.UnixMilli(n).Local()
		return &due
	default:
		return nil
	}
}

// decodeID accepts ids sent either as JSON strings or numbers.
func decodeID(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}

// ParseDue parses a wire due date. Date-only and zone-less values are read as local time.
// Returns nil when the value cannot be parsed.
func ParseDue(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dueLayouts {
		var (
			parsed time.Time
			err    error
		)
		if layout == time.RFC3339Nano {
			parsed, err = time.Parse(layout, s)
		} else {
			parsed, err = time.ParseInLocation(layout, s, time.Local)
		}
		if err == nil {
			local := parsed.Local()
			return &local
		}
	}
	return nil
}

// FormatDue renders a due date in the wire format used for requests.
func FormatDue(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

// IsDone returns true if the task is completed.
func (t *Task) IsDone() bool {
	return t.Status == StatusDone
}

// HasTag reports whether the task carries the given tag (case-insensitive).
func (t *Task) HasTag(tag string) bool {
	for _, tt := range t.Tags {
		if strings.EqualFold(tt, tag) {
			return true
		}
	}
	return false
}

// TaskFilter contains optional filters for listing tasks.
type TaskFilter struct {
	DueStart *time.Time
	DueEnd   *time.Time
	Status   []Status
	Priority []Priority
	Tags     []string
}

// CreateTaskRequest represents the request body for creating a task.
type CreateTaskRequest struct {
	Title          string   `json:"title"`
	Description    string   `json:"description,omitempty"`
	Status         Status   `json:"status,omitempty"`
	Priority       Priority `json:"priority,omitempty"`
	DueDate        string   `json:"dueDate,omitempty"`
	EstimatedHours *float64 `json:"estimatedHours,omitempty"`
	Tags           []string `json:"tags,omitempty"`
}

// UpdateTaskRequest represents the request body for updating a task.
type UpdateTaskRequest struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Status      *Status   `json:"status,omitempty"`
	Priority    *Priority `json:"priority,omitempty"`
	DueDate     *string   `json:"dueDate,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
}
