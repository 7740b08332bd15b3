// Package storage is the local SQLite task backend. It serves the same task operations as the
// REST client so the calendar can run without a server.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/hy4ri/taskcal/internal/api"
)

// ErrNotFound is returned when a task id does not exist.
var ErrNotFound = errors.New("task not found")

type Store struct {
	db  *sql.DB
	now func() time.Time
}

func Open(dbPath string) (*Store, error) {
	if dbPath == "" {
		return nil, errors.New("db path is empty")
	}
	if !strings.HasPrefix(dbPath, "file:") {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", sqliteDSN(dbPath))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db, now: time.Now}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS tasks (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'todo',
	priority TEXT NOT NULL DEFAULT 'medium',
	due_ms INTEGER DEFAULT NULL,
	estimated_hours REAL DEFAULT NULL,
	tags TEXT NOT NULL DEFAULT '[]',
	assignees TEXT NOT NULL DEFAULT '[]',
	created_at TEXT NOT NULL
);`
	if _, err := s.db.Exec(ddl); err != nil {
		return err
	}
	_, err := s.db.Exec(`CREATE INDEX IF NOT EXISTS idx_tasks_due ON tasks(due_ms);`)
	return err
}

const taskColumns = `id, title, description, status, priority, due_ms, estimated_hours, tags, assignees`

// ListTasks returns tasks matching filter ordered by due date, undated tasks last.
func (s *Store) ListTasks(ctx context.Context, filter api.TaskFilter) ([]api.Task, error) {
	var (
		where []string
		args  []any
	)
	if filter.DueStart != nil {
		where = append(where, "due_ms >= ?")
		args = append(args, filter.DueStart.UnixMilli())
	}
	if filter.DueEnd != nil {
		where = append(where, "due_ms <= ?")
		args = append(args, filter.DueEnd.UnixMilli())
	}
	if len(filter.Status) > 0 {
		where = append(where, "status IN ("+placeholders(len(filter.Status))+")")
		for _, st := range filter.Status {
			args = append(args, string(st))
		}
	}
	if len(filter.Priority) > 0 {
		where = append(where, "priority IN ("+placeholders(len(filter.Priority))+")")
		for _, p := range filter.Priority {
			args = append(args, string(p))
		}
	}

	query := `SELECT ` + taskColumns + ` FROM tasks`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY due_ms IS NULL, due_ms, created_at;"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []api.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		if !matchesTags(t, filter.Tags) {
			continue
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetTask returns a single task by id.
func (s *Store) GetTask(ctx context.Context, id string) (*api.Task, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?;`, id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateTask inserts a task and returns it with its generated id.
func (s *Store) CreateTask(ctx context.Context, req api.CreateTaskRequest) (*api.Task, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, errors.New("title is required")
	}
	status := req.Status
	if status == "" {
		status = api.StatusTodo
	}
	priority := req.Priority
	if priority == "" {
		priority = api.PriorityMedium
	}
	due, err := dueColumn(req.DueDate)
	if err != nil {
		return nil, err
	}
	tags, err := encodeJSON(req.Tags)
	if err != nil {
		return nil, err
	}
	var hours sql.NullFloat64
	if req.EstimatedHours != nil {
		hours = sql.NullFloat64{Float64: *req.EstimatedHours, Valid: true}
	}

	id := uuid.NewString()
	created := s.now().UTC().Format(time.RFC3339)
	_, err = s.db.ExecContext(ctx, `INSERT INTO tasks (id, title, description, status, priority, due_ms, estimated_hours, tags, assignees, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, '[]', ?);`,
		id, title, req.Description, string(status), string(priority), due, hours, tags, created)
	if err != nil {
		return nil, err
	}
	return s.GetTask(ctx, id)
}

// UpdateTask applies the non-nil fields of req. An empty due date clears it.
func (s *Store) UpdateTask(ctx context.Context, id string, req api.UpdateTaskRequest) (*api.Task, error) {
	var (
		sets []string
		args []any
	)
	if req.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *req.Title)
	}
	if req.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *req.Description)
	}
	if req.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, string(*req.Status))
	}
	if req.Priority != nil {
		sets = append(sets, "priority = ?")
		args = append(args, string(*req.Priority))
	}
	if req.DueDate != nil {
		due, err := dueColumn(*req.DueDate)
		if err != nil {
			return nil, err
		}
		sets = append(sets, "due_ms = ?")
		args = append(args, due)
	}
	if req.Tags != nil {
		tags, err := encodeJSON(req.Tags)
		if err != nil {
			return nil, err
		}
		sets = append(sets, "tags = ?")
		args = append(args, tags)
	}
	if len(sets) == 0 {
		return s.GetTask(ctx, id)
	}

	args = append(args, id)
	res, err := s.db.ExecContext(ctx, `UPDATE tasks SET `+strings.Join(sets, ", ")+` WHERE id = ?;`, args...)
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.GetTask(ctx, id)
}

// DeleteTask removes a task.
func (s *Store) DeleteTask(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?;`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(row scanner) (api.Task, error) {
	var (
		t         api.Task
		status    string
		priority  string
		dueMs     sql.NullInt64
		hours     sql.NullFloat64
		tags      string
		assignees string
	)
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &status, &priority, &dueMs, &hours, &tags, &assignees); err != nil {
		return api.Task{}, err
	}
	t.Status = api.Status(status)
	t.Priority = api.Priority(priority)
	if dueMs.Valid {
		due := time.UnixMilli(dueMs.Int64).Local()
		t.DueDate = &due
	}
	if hours.Valid {
		h := hours.Float64
		t.EstimatedHours = &h
	}
	if err := json.Unmarshal([]byte(tags), &t.Tags); err != nil {
		return api.Task{}, fmt.Errorf("decode tags for %s: %w", t.ID, err)
	}
	if err := json.Unmarshal([]byte(assignees), &t.Assignees); err != nil {
		return api.Task{}, fmt.Errorf("decode assignees for %s: %w", t.ID, err)
	}
	return t, nil
}

func dueColumn(value string) (sql.NullInt64, error) {
	if strings.TrimSpace(value) == "" {
		return sql.NullInt64{}, nil
	}
	due := api.ParseDue(value)
	if due == nil {
		return sql.NullInt64{}, fmt.Errorf("invalid due date %q", value)
	}
	return sql.NullInt64{Int64: due.UnixMilli(), Valid: true}, nil
}

func encodeJSON(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func matchesTags(t api.Task, tags []string) bool {
	if len(tags) == 0 {
		return true
	}
	for _, tag := range tags {
		if t.HasTag(tag) {
			return true
		}
	}
	return false
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func sqliteDSN(path string) string {
	if strings.HasPrefix(path, "file:") {
		return path
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		path = abs
	}
	u := url.URL{
		Scheme: "file",
		Path:   path,
	}
	q := u.Query()
	q.Set("mode", "rwc")
	q.Set("_pragma", "busy_timeout(5000)")
	u.RawQuery = q.Encode()
	return u.String()
}
