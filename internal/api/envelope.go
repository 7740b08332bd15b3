package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// taskPage is the normalized shape of a list response.
type taskPage struct {
	Tasks      []Task
	NextCursor string
}

// decodeTaskPage normalizes the list shapes the backend is known to produce:
//
//	[ ...tasks ]
//	{"data": [ ...tasks ]}
//	{"data": {"data": [ ...tasks ]}}
//	{"data": {"tasks": [ ...tasks ]}}
//
// Any level may carry a "next_cursor" for pagination.
func decodeTaskPage(body []byte) (taskPage, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return taskPage{}, nil
	}

	var page taskPage
	if err := unwrapTasks(body, &page, 0); err != nil {
		return taskPage{}, err
	}
	return page, nil
}

const maxEnvelopeDepth = 3

func unwrapTasks(body []byte, page *taskPage, depth int) error {
	if depth > maxEnvelopeDepth {
		return fmt.Errorf("task list nested too deeply")
	}

	switch body[0] {
	case '[':
		if err := json.Unmarshal(body, &page.Tasks); err != nil {
			return fmt.Errorf("failed to decode task list: %w", err)
		}
		return nil
	case '{':
		var env struct {
			Data       json.RawMessage `json:"data"`
			Tasks      json.RawMessage `json:"tasks"`
			NextCursor *string         `json:"next_cursor"`
		}
		if err := json.Unmarshal(body, &env); err != nil {
			return fmt.Errorf("failed to decode response envelope: %w", err)
		}
		if env.NextCursor != nil && page.NextCursor == "" {
			page.NextCursor = *env.NextCursor
		}

		inner := bytes.TrimSpace(env.Data)
		if len(inner) == 0 || bytes.Equal(inner, []byte("null")) {
			inner = bytes.TrimSpace(env.Tasks)
		}
		if len(inner) == 0 || bytes.Equal(inner, []byte("null")) {
			return nil
		}
		return unwrapTasks(inner, page, depth+1)
	default:
		return fmt.Errorf("unexpected task list payload starting with %q", body[0])
	}
}

// decodeTask normalizes a single-task response: either the task itself or {"data": task}.
func decodeTask(body []byte) (*Task, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, fmt.Errorf("empty task response")
	}

	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &env); err == nil {
		inner := bytes.TrimSpace(env.Data)
		if len(inner) > 0 && inner[0] == '{' {
			body = inner
		}
	}

	var task Task
	if err := json.Unmarshal(body, &task); err != nil {
		return nil, fmt.Errorf("failed to decode task: %w", err)
	}
	return &task, nil
}
