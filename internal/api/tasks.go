package api

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
)

// maxPages bounds pagination so a misbehaving cursor cannot loop forever.
const maxPages = 100

// ListTasks returns the tasks matching filter.
// Handles cursor pagination automatically, fetching all pages. A cursor still set after
// maxPages pages is an error rather than a silently truncated list.
func (c *Client) ListTasks(ctx context.Context, filter TaskFilter) ([]Task, error) {
	allTasks := make([]Task, 0)
	query := buildFilterQuery(filter)

	for page := 0; page < maxPages; page++ {
		body, err := c.Get(ctx, "/tasks", query)
		if err != nil {
			return nil, fmt.Errorf("failed to list tasks: %w", err)
		}

		result, err := decodeTaskPage(body)
		if err != nil {
			return nil, fmt.Errorf("failed to list tasks: %w", err)
		}
		allTasks = append(allTasks, result.Tasks...)

		if result.NextCursor == "" {
			return allTasks, nil
		}
		query.Set("cursor", result.NextCursor)
	}

	return nil, fmt.Errorf("failed to list tasks: more than %d pages", maxPages)
}

// GetTask returns a single task by ID.
func (c *Client) GetTask(ctx context.Context, id string) (*Task, error) {
	body, err := c.Get(ctx, "/tasks/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get task %s: %w", id, err)
	}
	task, err := decodeTask(body)
	if err != nil {
		return nil, fmt.Errorf("failed to get task %s: %w", id, err)
	}
	return task, nil
}

// CreateTask creates a new task.
func (c *Client) CreateTask(ctx context.Context, req CreateTaskRequest) (*Task, error) {
	body, err := c.Post(ctx, "/tasks", req)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	task, err := decodeTask(body)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

// UpdateTask applies a partial update to an existing task.
// A server answering without a body (204) yields a nil task and no error.
func (c *Client) UpdateTask(ctx context.Context, id string, req UpdateTaskRequest) (*Task, error) {
	body, err := c.Patch(ctx, "/tasks/"+url.PathEscape(id), req)
	if err != nil {
		return nil, fmt.Errorf("failed to update task %s: %w", id, err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}
	task, err := decodeTask(body)
	if err != nil {
		return nil, fmt.Errorf("failed to update task %s: %w", id, err)
	}
	return task, nil
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	if err := c.Delete(ctx, "/tasks/"+url.PathEscape(id)); err != nil {
		return fmt.Errorf("failed to delete task %s: %w", id, err)
	}
	return nil
}
