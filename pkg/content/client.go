// Package content provides the HTTP client for the document store API,
// with retry, auth, and upload progress reporting.
package content

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/RovaFananganana/frontend/internal/logging"
	"github.com/RovaFananganana/frontend/pkg/models"
	"github.com/RovaFananganana/frontend/pkg/protocol"
	"github.com/RovaFananganana/frontend/pkg/retry"
)

// ErrUnauthenticated is returned when the server rejects the bearer token.
// Callers observe it with errors.Is and defer to the session layer.
var ErrUnauthenticated = errors.New("request was not authenticated")

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("server returned %d", e.StatusCode)
}

func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized {
		return ErrUnauthenticated
	}
	return nil
}

// AsAPIError checks if an error is an APIError and returns it.
func AsAPIError(err error) (*APIError, bool) {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// Client talks to the document store API.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	uploadClient *http.Client
	retryConfig  retry.Config

	mu        sync.RWMutex
	online    bool
	lastPing  time.Time
	authToken string
}

// Config holds client configuration.
type Config struct {
	BaseURL       string
	Timeout       time.Duration
	UploadTimeout time.Duration
	RetryConfig   retry.Config
	AuthToken     string
}

// New creates a new client.
func New(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.UploadTimeout == 0 {
		cfg.UploadTimeout = 60 * time.Second
	}
	if cfg.RetryConfig.MaxAttempts == 0 {
		cfg.RetryConfig = retry.DefaultConfig()
	}

	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	return &Client{
		baseURL:      cfg.BaseURL,
		httpClient:   &http.Client{Timeout: cfg.Timeout, Transport: transport},
		uploadClient: &http.Client{Timeout: cfg.UploadTimeout, Transport: transport},
		retryConfig:  cfg.RetryConfig,
		online:       true,
		authToken:    cfg.AuthToken,
	}
}

// SetAuthToken sets the bearer token for requests.
func (c *Client) SetAuthToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.authToken = token
}

// applyAuth adds the auth header to a request if a token is set.
func (c *Client) applyAuth(req *http.Request) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}
}

// IsOnline returns true if the server is reachable.
func (c *Client) IsOnline() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.online
}

func (c *Client) setOnline(online bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.online != online {
		if online {
			logging.Info("server is back online")
		} else {
			logging.Warn("server is offline")
		}
	}
	c.online = online
	c.lastPing = time.Now()
}

// Ping checks if the server is reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/health", nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.setOnline(false)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.setOnline(false)
		return &APIError{StatusCode: resp.StatusCode}
	}

	c.setOnline(true)
	return nil
}

// errorFrom builds an error from a non-2xx response. Server errors are
// marked retryable.
func (c *Client) errorFrom(resp *http.Response) error {
	c.setOnline(resp.StatusCode < 500)

	apiErr := &APIError{StatusCode: resp.StatusCode}
	var er protocol.ErrorResponse
	if json.NewDecoder(resp.Body).Decode(&er) == nil {
		if er.Message != "" {
			apiErr.Message = er.Message
		} else {
			apiErr.Message = er.Error
		}
	}

	if resp.StatusCode >= 500 {
		return retry.Retryable(apiErr)
	}
	return apiErr
}

// decodeEnvelope unwraps the `{success, data}` envelope into out.
func decodeEnvelope(r io.Reader, out any) error {
	var env protocol.Envelope
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if !env.Success {
		if env.Message != "" {
			return fmt.Errorf("request failed: %s", env.Message)
		}
		return errors.New("request failed")
	}
	if out == nil {
		return nil
	}
	if len(env.Data) == 0 {
		return errors.New("response has no data")
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode response data: %w", err)
	}
	return nil
}

// doJSON performs a request with retry and decodes the envelope into out.
// out may be nil when the caller only cares about success.
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}

	return retry.Do(ctx, c.retryConfig, func() error {
		u := c.baseURL + path
		if len(query) > 0 {
			u += "?" + query.Encode()
		}

		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, method, u, reader)
		if err != nil {
			return err
		}
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		req.Header.Set("Accept", "application/json")
		c.applyAuth(req)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			c.setOnline(false)
			return retry.Retryable(err)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 400 {
			return c.errorFrom(resp)
		}

		c.setOnline(true)
		return decodeEnvelope(resp.Body, out)
	})
}

// GetFolder fetches a single folder record.
func (c *Client) GetFolder(ctx context.Context, id int64) (*models.Folder, error) {
	var folder models.Folder
	path := fmt.Sprintf("/api/folders/%d", id)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &folder); err != nil {
		return nil, err
	}
	return &folder, nil
}

// GetFolderContents fetches the files and subfolders of a folder.
func (c *Client) GetFolderContents(ctx context.Context, id int64, q protocol.ContentsQuery) (*models.FolderContents, error) {
	values := url.Values{}
	if q.Search != "" {
		values.Set("search", q.Search)
	}
	if q.Type != "" {
		values.Set("type", q.Type)
	}
	if q.Sort != "" {
		values.Set("sort", q.Sort)
	}
	if q.Order != "" {
		values.Set("order", q.Order)
	}
	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}

	var contents models.FolderContents
	path := fmt.Sprintf("/api/folders/%d/contents", id)
	if err := c.doJSON(ctx, http.MethodGet, path, values, nil, &contents); err != nil {
		return nil, err
	}
	return &contents, nil
}

// CreateFolder creates a new folder.
func (c *Client) CreateFolder(ctx context.Context, req protocol.CreateFolderRequest) (*models.Folder, error) {
	var folder models.Folder
	if err := c.doJSON(ctx, http.MethodPost, "/api/folders", nil, req, &folder); err != nil {
		return nil, err
	}
	return &folder, nil
}

// DeleteFolder deletes a folder. A 404 means it is already gone.
func (c *Client) DeleteFolder(ctx context.Context, id int64) error {
	err := c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/folders/%d", id), nil, nil, nil)
	return ignoreNotFound(err)
}

// GetFile fetches a single file record.
func (c *Client) GetFile(ctx context.Context, id int64) (*models.FileEntry, error) {
	var file models.FileEntry
	path := fmt.Sprintf("/api/files/%d", id)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &file); err != nil {
		return nil, err
	}
	return &file, nil
}

// DeleteFile deletes a file. A 404 means it is already gone.
func (c *Client) DeleteFile(ctx context.Context, id int64) error {
	err := c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/files/%d", id), nil, nil, nil)
	return ignoreNotFound(err)
}

func ignoreNotFound(err error) error {
	if ae, ok := AsAPIError(err); ok && ae.StatusCode == http.StatusNotFound {
		return nil
	}
	return err
}

// DownloadFile fetches the binary payload of a file. The caller must close
// the returned reader. Size is -1 when the server sends no Content-Length.
func (c *Client) DownloadFile(ctx context.Context, id int64) (io.ReadCloser, int64, error) {
	var reader io.ReadCloser
	var size int64 = -1

	err := retry.Do(ctx, c.retryConfig, func() error {
		u := fmt.Sprintf("%s/api/files/%d/download", c.baseURL, id)
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return err
		}
		c.applyAuth(req)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			c.setOnline(false)
			return retry.Retryable(err)
		}

		if resp.StatusCode >= 400 {
			defer resp.Body.Close()
			return c.errorFrom(resp)
		}

		c.setOnline(true)
		if resp.ContentLength >= 0 {
			size = resp.ContentLength
		}
		reader = resp.Body
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return reader, size, nil
}

// SearchFiles searches files and folders matching the query.
func (c *Client) SearchFiles(ctx context.Context, req protocol.SearchRequest) (*models.FolderContents, error) {
	values := url.Values{}
	values.Set("q", req.Query)
	if req.Type != "" {
		values.Set("type", req.Type)
	}
	if req.FolderID > 0 {
		values.Set("folder_id", strconv.FormatInt(req.FolderID, 10))
	}
	if req.Page > 0 {
		values.Set("page", strconv.Itoa(req.Page))
	}
	if req.Limit > 0 {
		values.Set("limit", strconv.Itoa(req.Limit))
	}

	var contents models.FolderContents
	if err := c.doJSON(ctx, http.MethodGet, "/api/search", values, nil, &contents); err != nil {
		return nil, err
	}
	return &contents, nil
}

// GetSystemStats fetches the dashboard summary.
func (c *Client) GetSystemStats(ctx context.Context) (*models.SystemStats, error) {
	var stats models.SystemStats
	if err := c.doJSON(ctx, http.MethodGet, "/api/dashboard", nil, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
