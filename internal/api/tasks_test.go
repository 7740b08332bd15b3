package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// mockServer creates a test HTTP server for mocking API responses.
func mockServer(handler http.HandlerFunc) *httptest.Server {
	return httptest.NewServer(handler)
}

func TestNewClient(t *testing.T) {
	client := NewClient("", "test-token")

	if client.accessToken != "test-token" {
		t.Errorf("expected token %q, got %q", "test-token", client.accessToken)
	}
	if client.baseURL != BaseURL {
		t.Errorf("unexpected base URL: %s", client.baseURL)
	}

	client = NewClient("https://tasks.example.com/api/", "x")
	if client.baseURL != "https://tasks.example.com/api" {
		t.Errorf("expected trailing slash trimmed, got %s", client.baseURL)
	}
}

func TestListTasks_ResponseShapes(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantIDs []string
		wantErr bool
	}{
		{
			name:    "raw array",
			body:    `[{"id":"1","title":"a"},{"id":"2","title":"b"}]`,
			wantIDs: []string{"1", "2"},
		},
		{
			name:    "data array",
			body:    `{"data":[{"id":"1","title":"a"}]}`,
			wantIDs: []string{"1"},
		},
		{
			name:    "nested data array",
			body:    `{"success":true,"data":{"data":[{"id":"7","title":"a"}],"total":1}}`,
			wantIDs: []string{"7"},
		},
		{
			name:    "nested tasks array",
			body:    `{"data":{"tasks":[{"_id":"m1","title":"a"}]}}`,
			wantIDs: []string{"m1"},
		},
		{
			name:    "numeric ids",
			body:    `[{"id":42,"title":"a"}]`,
			wantIDs: []string{"42"},
		},
		{
			name:    "empty envelope",
			body:    `{"data":null}`,
			wantIDs: nil,
		},
		{
			name:    "garbage",
			body:    `"nope"`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := mockServer(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodGet {
					t.Errorf("expected GET request, got %s", r.Method)
				}
				if r.URL.Path != "/tasks" {
					t.Errorf("expected path /tasks, got %s", r.URL.Path)
				}
				if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
					t.Errorf("expected Bearer token, got %q", got)
				}
				if r.Header.Get("X-Request-ID") == "" {
					t.Error("expected X-Request-ID header")
				}
				w.WriteHeader(http.StatusOK)
				io.WriteString(w, tt.body)
			})
			defer server.Close()

			client := NewClient(server.URL, "test-token")
			tasks, err := client.ListTasks(context.Background(), TaskFilter{})

			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(tasks) != len(tt.wantIDs) {
				t.Fatalf("expected %d tasks, got %d", len(tt.wantIDs), len(tasks))
			}
			for i, id := range tt.wantIDs {
				if tasks[i].ID != id {
					t.Errorf("task %d: expected id %q, got %q", i, id, tasks[i].ID)
				}
			}
		})
	}
}

func TestListTasks_FilterQuery(t *testing.T) {
	start := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 16, 23, 59, 59, 999_000_000, time.UTC)

	server := mockServer(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if got := q.Get("dueStart"); got != "2024-03-10T00:00:00Z" {
			t.Errorf("unexpected dueStart %q", got)
		}
		if got := q.Get("dueEnd"); got != "2024-03-16T23:59:59.999Z" {
			t.Errorf("unexpected dueEnd %q", got)
		}
		if got := q.Get("status"); got != "todo,done" {
			t.Errorf("unexpected status %q", got)
		}
		if got := q.Get("priority"); got != "urgent" {
			t.Errorf("unexpected priority %q", got)
		}
		if got := q.Get("tags"); got != "home,work" {
			t.Errorf("unexpected tags %q", got)
		}
		io.WriteString(w, `[]`)
	})
	defer server.Close()

	client := NewClient(server.URL, "test-token")
	_, err := client.ListTasks(context.Background(), TaskFilter{
		DueStart: &start,
		DueEnd:   &end,
		Status:   []Status{StatusTodo, StatusDone},
		Priority: []Priority{PriorityUrgent},
		Tags:     []string{"home", "work"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestListTasks_Pagination(t *testing.T) {
	calls := 0
	server := mockServer(func(w http.ResponseWriter, r *http.Request) {
		calls++
		switch r.URL.Query().Get("cursor") {
		case "":
			io.WriteString(w, `{"data":[{"id":"1"}],"next_cursor":"page2"}`)
		case "page2":
			io.WriteString(w, `{"data":[{"id":"2"}],"next_cursor":null}`)
		default:
			t.Errorf("unexpected cursor %q", r.URL.Query().Get("cursor"))
		}
	})
	defer server.Close()

	client := NewClient(server.URL, "test-token")
	tasks, err := client.ListTasks(context.Background(), TaskFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Errorf("expected 2 requests, got %d", calls)
	}
	if len(tasks) != 2 || tasks[1].ID != "2" {
		t.Errorf("unexpected tasks: %+v", tasks)
	}
}

func TestListTasks_PageLimit(t *testing.T) {
	calls := 0
	server := mockServer(func(w http.ResponseWriter, r *http.Request) {
		calls++
		io.WriteString(w, `{"data":[{"id":"1"}],"next_cursor":"again"}`)
	})
	defer server.Close()

	tasks, err := NewClient(server.URL, "test-token").ListTasks(context.Background(), TaskFilter{})
	if err == nil {
		t.Fatalf("expected error for endless pagination, got %d tasks", len(tasks))
	}
	if !strings.Contains(err.Error(), "more than 100 pages") {
		t.Errorf("unexpected error: %v", err)
	}
	if calls != maxPages {
		t.Errorf("expected %d requests, got %d", maxPages, calls)
	}
}

func TestListTasks_Errors(t *testing.T) {
	tests := []struct {
		name         string
		statusCode   int
		body         string
		wantMessage  string
		unauthorized bool
		serverError  bool
	}{
		{
			name:         "unauthorized json message",
			statusCode:   http.StatusUnauthorized,
			body:         `{"message":"token expired"}`,
			wantMessage:  "token expired",
			unauthorized: true,
		},
		{
			name:        "server error plain text",
			statusCode:  http.StatusBadGateway,
			body:        "upstream down\n",
			wantMessage: "upstream down",
			serverError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := mockServer(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				io.WriteString(w, tt.body)
			})
			defer server.Close()

			client := NewClient(server.URL, "test-token")
			_, err := client.ListTasks(context.Background(), TaskFilter{})
			if err == nil {
				t.Fatal("expected error, got nil")
			}

			apiErr, ok := IsAPIError(err)
			if !ok {
				t.Fatalf("expected wrapped APIError, got %T: %v", err, err)
			}
			if apiErr.StatusCode != tt.statusCode {
				t.Errorf("expected status %d, got %d", tt.statusCode, apiErr.StatusCode)
			}
			if apiErr.Message != tt.wantMessage {
				t.Errorf("expected message %q, got %q", tt.wantMessage, apiErr.Message)
			}
			if apiErr.IsUnauthorized() != tt.unauthorized {
				t.Errorf("IsUnauthorized = %v", apiErr.IsUnauthorized())
			}
			if apiErr.IsServerError() != tt.serverError {
				t.Errorf("IsServerError = %v", apiErr.IsServerError())
			}
		})
	}
}

func TestListTasks_ContextCancelled(t *testing.T) {
	server := mockServer(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[]`)
	})
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(server.URL, "test-token")
	if _, err := client.ListTasks(ctx, TaskFilter{}); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestUpdateTask(t *testing.T) {
	due := "2024-03-20T09:00:00Z"

	tests := []struct {
		name       string
		body       string
		statusCode int
		wantNil    bool
		wantErr    bool
	}{
		{
			name:       "wrapped response",
			body:       `{"data":{"id":"5","title":"Moved","dueDate":"2024-03-20T09:00:00Z"}}`,
			statusCode: http.StatusOK,
		},
		{
			name:       "bare response",
			body:       `{"id":"5","title":"Moved","dueDate":"2024-03-20T09:00:00Z"}`,
			statusCode: http.StatusOK,
		},
		{
			name:       "no content",
			statusCode: http.StatusNoContent,
			wantNil:    true,
		},
		{
			name:       "rejected",
			body:       `{"error":"invalid due date"}`,
			statusCode: http.StatusUnprocessableEntity,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := mockServer(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPatch {
					t.Errorf("expected PATCH request, got %s", r.Method)
				}
				if r.URL.Path != "/tasks/5" {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				var payload map[string]interface{}
				if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
					t.Errorf("failed to decode body: %v", err)
				}
				if payload["dueDate"] != due {
					t.Errorf("expected dueDate %q, got %v", due, payload["dueDate"])
				}
				if _, ok := payload["title"]; ok {
					t.Error("unset fields should be omitted")
				}
				w.WriteHeader(tt.statusCode)
				io.WriteString(w, tt.body)
			})
			defer server.Close()

			client := NewClient(server.URL, "test-token")
			task, err := client.UpdateTask(context.Background(), "5", UpdateTaskRequest{DueDate: &due})

			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantNil {
				if task != nil {
					t.Errorf("expected nil task, got %+v", task)
				}
				return
			}
			if task == nil || task.ID != "5" || task.DueDate == nil {
				t.Fatalf("unexpected task: %+v", task)
			}
			if !task.DueDate.Equal(time.Date(2024, 3, 20, 9, 0, 0, 0, time.UTC)) {
				t.Errorf("unexpected due date %v", task.DueDate)
			}
		})
	}
}

func TestCreateTask(t *testing.T) {
	server := mockServer(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST request, got %s", r.Method)
		}
		body, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(body), `"title":"Write report"`) {
			t.Errorf("unexpected body %s", body)
		}
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"data":{"id":"99","title":"Write report","status":"todo","priority":"high"}}`)
	})
	defer server.Close()

	client := NewClient(server.URL, "test-token")
	task, err := client.CreateTask(context.Background(), CreateTaskRequest{
		Title:    "Write report",
		Priority: PriorityHigh,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.ID != "99" || task.Priority != PriorityHigh || task.Status != StatusTodo {
		t.Errorf("unexpected task: %+v", task)
	}
}

func TestTaskUnmarshal_DueDate(t *testing.T) {
	tests := []struct {
		name    string
		json    string
		wantDue bool
		want    time.Time
	}{
		{"rfc3339", `{"id":"1","dueDate":"2024-03-15T09:30:00Z"}`, true, time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)},
		{"date only is local midnight", `{"id":"1","dueDate":"2024-03-15"}`, true, time.Date(2024, 3, 15, 0, 0, 0, 0, time.Local)},
		{"zone-less is local", `{"id":"1","dueDate":"2024-03-15T23:30:00"}`, true, time.Date(2024, 3, 15, 23, 30, 0, 0, time.Local)},
		{"null", `{"id":"1","dueDate":null}`, false, time.Time{}},
		{"missing", `{"id":"1"}`, false, time.Time{}},
		{"malformed", `{"id":"1","dueDate":"next tuesday"}`, false, time.Time{}},
		{"empty", `{"id":"1","dueDate":""}`, false, time.Time{}},
		{"epoch millis", `{"id":"1","dueDate":1710495000000}`, true, time.UnixMilli(1710495000000)},
		{"object", `{"id":"1","dueDate":{"date":"2024-03-15"}}`, false, time.Time{}},
		{"fractional number", `{"id":"1","dueDate":17.5}`, false, time.Time{}},
		{"boolean", `{"id":"1","dueDate":true}`, false, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var task Task
			if err := json.Unmarshal([]byte(tt.json), &task); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if (task.DueDate != nil) != tt.wantDue {
				t.Fatalf("expected due present=%v, got %v", tt.wantDue, task.DueDate)
			}
			if tt.wantDue && !task.DueDate.Equal(tt.want) {
				t.Errorf("expected %v, got %v", tt.want, *task.DueDate)
			}
		})
	}
}

func TestListTasks_OddDueDatesAreUnscheduled(t *testing.T) {
	server := mockServer(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[{"id":"1","dueDate":1710000000000},{"id":"2","dueDate":{"date":"x"}},{"id":"3","title":"b"}]`)
	})
	defer server.Close()

	tasks, err := NewClient(server.URL, "t").ListTasks(context.Background(), TaskFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(tasks))
	}
	if tasks[0].DueDate == nil || !tasks[0].DueDate.Equal(time.UnixMilli(1710000000000)) {
		t.Errorf("expected epoch millis due date, got %v", tasks[0].DueDate)
	}
	if tasks[1].DueDate != nil || tasks[2].DueDate != nil {
		t.Errorf("expected unscheduled tasks, got %v and %v", tasks[1].DueDate, tasks[2].DueDate)
	}
}

func TestPriorityRank(t *testing.T) {
	order := []Priority{PriorityUrgent, PriorityHigh, PriorityMedium, PriorityLow, Priority("bogus")}
	for i := 1; i < len(order); i++ {
		if order[i-1].Rank() >= order[i].Rank() {
			t.Errorf("expected %s to rank before %s", order[i-1], order[i])
		}
	}
}

func TestGetAndDeleteTask(t *testing.T) {
	var deleted []string
	server := mockServer(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/tasks/7":
			io.WriteString(w, `{"data":{"id":"7","title":"Dentist","description":"bring x-rays","dueDate":"2024-03-15"}}`)
		case r.Method == http.MethodDelete && r.URL.Path == "/tasks/7":
			deleted = append(deleted, "7")
			w.WriteHeader(http.StatusNoContent)
		case r.URL.Path == "/tasks/locked":
			w.WriteHeader(http.StatusForbidden)
		case r.URL.Path == "/tasks/busy":
			w.WriteHeader(http.StatusTooManyRequests)
		default:
			w.WriteHeader(http.StatusNotFound)
			io.WriteString(w, `{"message":"task not found"}`)
		}
	})
	defer server.Close()

	client := NewClient(server.URL, "test-token")
	ctx := context.Background()

	task, err := client.GetTask(ctx, "7")
	if err != nil {
		t.Fatalf("GetTask() error = %v", err)
	}
	if task.Description != "bring x-rays" || task.DueDate == nil {
		t.Errorf("unexpected task: %+v", task)
	}

	if err := client.DeleteTask(ctx, "7"); err != nil {
		t.Fatalf("DeleteTask() error = %v", err)
	}
	if len(deleted) != 1 {
		t.Errorf("expected one DELETE, got %v", deleted)
	}

	tests := []struct {
		id    string
		check func(*APIError) bool
	}{
		{"missing", (*APIError).IsNotFound},
		{"locked", (*APIError).IsForbidden},
		{"busy", (*APIError).IsRateLimited},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			err := client.DeleteTask(ctx, tt.id)
			apiErr, ok := IsAPIError(err)
			if !ok {
				t.Fatalf("expected wrapped APIError, got %v", err)
			}
			if !tt.check(apiErr) {
				t.Errorf("unexpected classification for status %d", apiErr.StatusCode)
			}
		})
	}
}
