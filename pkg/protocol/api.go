// Package protocol defines the API request/response types.
package protocol

import (
	"encoding/json"
	"time"

	"github.com/RovaFananganana/frontend/pkg/models"
)

// Envelope is the generic `{success, data}` wrapper every endpoint returns.
// Data is decoded in a second pass by the caller.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// ErrorResponse is returned on API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}

// ContentsQuery holds the query parameters for GET /api/folders/{id}/contents.
type ContentsQuery struct {
	Search string
	Type   string
	Sort   string
	Order  string
	Page   int
	Limit  int
}

// DefaultContentsQuery mirrors the server-side defaults.
func DefaultContentsQuery() ContentsQuery {
	return ContentsQuery{Sort: "name", Order: "asc", Page: 1, Limit: 50}
}

// CreateFolderRequest is the body for POST /api/folders.
type CreateFolderRequest struct {
	Name        string `json:"name"`
	ParentID    int64  `json:"parent_id"`
	Description string `json:"description,omitempty"`
}

// SearchRequest holds the query parameters for GET /api/search.
type SearchRequest struct {
	Query    string
	Type     string
	FolderID int64
	Page     int
	Limit    int
}

// UploadResult is the payload returned by POST /api/files/upload.
type UploadResult struct {
	Uploaded []models.FileEntry `json:"uploaded"`
	Skipped  []string           `json:"skipped,omitempty"`
}

// LoginRequest is the body for POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserInfo describes the authenticated user.
type UserInfo struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	IsAdmin  bool   `json:"is_admin,omitempty"`
}

// LoginData is the payload of a successful login response.
type LoginData struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      UserInfo  `json:"user"`
}

// RefreshData is the payload of a successful token refresh.
type RefreshData struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
