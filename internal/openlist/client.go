// Package openlist is a client for the OpenList file server API: login,
// directory listing and renames.
package openlist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"
)

const (
	defaultTimeout = 30 * time.Second
	batchTimeout   = 60 * time.Second
)

// Client talks to one OpenList server. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	log        *slog.Logger

	mu    sync.RWMutex
	token string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets a logger for debug output.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log.With("component", "openlist")
		}
	}
}

// WithToken starts the client with a previously issued token.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithTimeout sets the per-request timeout. Batch renames always get at
// least twice as long.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// New creates a client for the server at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		timeout:    defaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the server URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Token returns the current token, empty when not logged in.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// SetToken replaces the current token.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Login authenticates and keeps the returned token for later calls.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var data loginData
	err := c.call(ctx, http.MethodPost, "/api/auth/login", loginRequest{Username: username, Password: password}, &data, false, c.timeout)
	if err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	if data.Token == "" {
		return "", errors.New("login: response missing token")
	}

	c.SetToken(data.Token)
	c.debug("logged in", "username", username)
	return data.Token, nil
}

// Me returns the account the token belongs to.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var u User
	if err := c.call(ctx, http.MethodGet, "/api/me", nil, &u, true, c.timeout); err != nil {
		return nil, fmt.Errorf("current user: %w", err)
	}
	return &u, nil
}

// ValidateUser reports whether the current token is valid and belongs to
// username. When /api/me cannot be reached it falls back to listing the
// root directory, which proves the token works but not whose it is.
func (c *Client) ValidateUser(ctx context.Context, username string) (bool, error) {
	if c.Token() == "" {
		return false, nil
	}

	u, err := c.Me(ctx)
	if err == nil {
		switch {
		case u.Username != "":
			return u.Username == username, nil
		case u.Nick != "":
			return u.Nick == username, nil
		case u.Name != "":
			return u.Name == username, nil
		default:
			return true, nil
		}
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) || errors.Is(err, ErrUnauthorized) {
		return false, nil
	}
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	c.debug("current user lookup failed, checking token with a listing", "error", err)
	if _, err := c.List(ctx, "/"); err != nil {
		return false, nil
	}
	return true, nil
}

// List returns the entries of the directory at path.
func (c *Client) List(ctx context.Context, path string) ([]Object, error) {
	start := time.Now()

	var data listData
	if err := c.call(ctx, http.MethodPost, "/api/fs/list", listRequest{Path: path, Page: 1}, &data, true, c.timeout); err != nil {
		return nil, fmt.Errorf("list %s: %w", path, err)
	}

	c.debug("list complete", "path", path, "entries", len(data.Content), "duration_ms", time.Since(start).Milliseconds())
	return data.Content, nil
}

// BatchRename renames several entries of srcDir in one request.
func (c *Client) BatchRename(ctx context.Context, srcDir string, objs []RenameObject) error {
	timeout := max(batchTimeout, 2*c.timeout)
	req := batchRenameRequest{SrcDir: srcDir, RenameObjects: objs}
	if err := c.call(ctx, http.MethodPost, "/api/fs/batch_rename", req, nil, true, timeout); err != nil {
		return fmt.Errorf("batch rename in %s: %w", srcDir, err)
	}

	c.debug("batch rename complete", "dir", srcDir, "count", len(objs))
	return nil
}

// Rename renames the file or directory at path to name.
func (c *Client) Rename(ctx context.Context, path, name string) error {
	if err := c.call(ctx, http.MethodPost, "/api/fs/rename", renameRequest{Path: path, Name: name}, nil, true, c.timeout); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}

	c.debug("rename complete", "path", path, "name", name)
	return nil
}

// call performs one request and decodes the envelope's data into result.
func (c *Client) call(ctx context.Context, method, endpoint string, body, result any, auth bool, timeout time.Duration) error {
	token := c.Token()
	if auth && token == "" {
		return ErrNotLoggedIn
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth {
		req.Header.Set("Authorization", token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("server error %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if env.Code != http.StatusOK {
		return &APIError{Code: env.Code, Message: env.Message}
	}

	if result != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, result); err != nil {
			return fmt.Errorf("decode data: %w", err)
		}
	}
	return nil
}

func (c *Client) debug(msg string, args ...any) {
	if c.log != nil {
		c.log.Debug(msg, args...)
	}
}
