package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// BaseURL is the default task API base URL.
	BaseURL = "http://localhost:8080/api"

	// DefaultTimeout is the default HTTP client timeout.
	DefaultTimeout = 30 * time.Second
)

// Client is the task API client.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	accessToken string
}

// NewClient creates a new API client for baseURL with the given access token.
// An empty baseURL falls back to BaseURL.
func NewClient(baseURL, accessToken string) *Client {
	if baseURL == "" {
		baseURL = BaseURL
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		baseURL:     strings.TrimRight(baseURL, "/"),
		accessToken: accessToken,
	}
}

// SetHTTPClient allows overriding the default HTTP client (useful for testing).
func (c *Client) SetHTTPClient(httpClient *http.Client) {
	c.httpClient = httpClient
}

// SetTimeout changes the request timeout of the underlying HTTP client.
func (c *Client) SetTimeout(d time.Duration) {
	if d > 0 {
		c.httpClient.Timeout = d
	}
}

// do performs an HTTP request and returns the raw response body.
func (c *Client) do(ctx context.Context, method, path string, body interface{}) ([]byte, error) {
	reqURL := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(respBody),
		}
	}

	return respBody, nil
}

// errorMessage extracts a readable message from an error body.
// Servers answer with {"message": ...}, {"error": ...} or plain text.
func errorMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return strings.TrimSpace(string(body))
}

// Get performs a GET request with optional query parameters.
func (c *Client) Get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if len(query) > 0 {
		path = path + "?" + query.Encode()
	}
	return c.do(ctx, http.MethodGet, path, nil)
}

// Post performs a POST request.
func (c *Client) Post(ctx context.Context, path string, body interface{}) ([]byte, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

// Patch performs a PATCH request.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) ([]byte, error) {
	return c.do(ctx, http.MethodPatch, path, body)
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) error {
	_, err := c.do(ctx, http.MethodDelete, path, nil)
	return err
}

// buildFilterQuery builds query parameters for task filtering.
func buildFilterQuery(filter TaskFilter) url.Values {
	query := url.Values{}

	if filter.DueStart != nil {
		query.Set("dueStart", FormatDue(*filter.DueStart))
	}
	if filter.DueEnd != nil {
		query.Set("dueEnd", FormatDue(*filter.DueEnd))
	}
	if len(filter.Status) > 0 {
		values := make([]string, len(filter.Status))
		for i, s := range filter.Status {
			values[i] = string(s)
		}
		query.Set("status", strings.Join(values, ","))
	}
	if len(filter.Priority) > 0 {
		values := make([]string, len(filter.Priority))
		for i, p := range filter.Priority {
			values[i] = string(p)
		}
		query.Set("priority", strings.Join(values, ","))
	}
	if len(filter.Tags) > 0 {
		query.Set("tags", strings.Join(filter.Tags, ","))
	}

	return query
}
