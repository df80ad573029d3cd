// Package client is a Go client for the progress sync HTTP API.
package client

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

	"github.com/atinyakov/readsync/internal/models"
)

// APIError is an error response returned by the server.
type APIError struct {
	Status  int
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server error %d (code %d): %s", e.Status, e.Code, e.Message)
}

// Client talks to one sync server on behalf of one user.
type Client struct {
	baseURL  string
	http     *http.Client
	user     string
	key      string
	device   string
	deviceID string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithDevice sets the device name and id reported with progress updates.
// An empty id keeps the generated one.
func WithDevice(name, id string) Option {
	return func(c *Client) {
		c.device = name
		if id != "" {
			c.deviceID = id
		}
	}
}

// New returns a client for the server at baseURL acting as user with
// credential key. A random device id is generated unless WithDevice supplies one.
func New(baseURL, user, key string, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: 10 * time.Second},
		user:     user,
		key:      key,
		device:   "readsync-cli",
		deviceID: uuid.NewString(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DeviceID returns the device id sent with progress updates.
func (c *Client) DeviceID() string {
	return c.deviceID
}

// Register creates the client's user on the server.
func (c *Client) Register(ctx context.Context) error {
	payload := map[string]string{"username": c.user, "password": c.key}
	var resp struct {
		Username string `json:"username"`
	}
	if err := c.do(ctx, http.MethodPost, "/users/create", false, payload, &resp); err != nil {
		return fmt.Errorf("register failed: %w", err)
	}
	return nil
}

// Authorize checks the client's credentials against the server.
func (c *Client) Authorize(ctx context.Context) error {
	var resp struct {
		Authorized string `json:"authorized"`
	}
	if err := c.do(ctx, http.MethodGet, "/users/auth", true, nil, &resp); err != nil {
		return fmt.Errorf("authorize failed: %w", err)
	}
	if resp.Authorized != "OK" {
		return fmt.Errorf("authorize failed: unexpected answer %q", resp.Authorized)
	}
	return nil
}

// PushProgress uploads the reading position of document and returns the
// server timestamp of the write.
func (c *Client) PushProgress(ctx context.Context, document string, percentage float64, progress string) (int64, error) {
	payload := map[string]any{
		"document":   document,
		"percentage": percentage,
		"progress":   progress,
		"device":     c.device,
		"device_id":  c.deviceID,
	}
	var resp struct {
		Document  string `json:"document"`
		Timestamp int64  `json:"timestamp"`
	}
	if err := c.do(ctx, http.MethodPut, "/syncs/progress", true, payload, &resp); err != nil {
		return 0, fmt.Errorf("push progress failed: %w", err)
	}
	return resp.Timestamp, nil
}

// PullProgress downloads the reading position of document. It returns nil
// if the server has none.
func (c *Client) PullProgress(ctx context.Context, document string) (*models.ProgressState, error) {
	var resp struct {
		models.ProgressState
		Timestamp *int64 `json:"timestamp"`
	}
	path := "/syncs/progress/" + url.PathEscape(document)
	if err := c.do(ctx, http.MethodGet, path, true, nil, &resp); err != nil {
		return nil, fmt.Errorf("pull progress failed: %w", err)
	}
	// Stored records always carry a timestamp; the empty answer never does.
	if resp.Timestamp == nil {
		return nil, nil
	}
	state := resp.ProgressState
	state.Timestamp = *resp.Timestamp
	return &state, nil
}

func (c *Client) do(ctx context.Context, method, path string, auth bool, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth {
		req.Header.Set("X-Auth-User", c.user)
		req.Header.Set("X-Auth-Key", c.key)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{Status: resp.StatusCode}
		data, _ := io.ReadAll(resp.Body)
		if err := json.Unmarshal(data, apiErr); err != nil {
			apiErr.Message = strings.TrimSpace(string(data))
		}
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
