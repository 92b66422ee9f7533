package content

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/RovaFananganana/frontend/pkg/protocol"
)

// TokenFile holds a saved authentication token.
type TokenFile struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Server    string    `json:"server"`
	Username  string    `json:"username"`
}

// IsExpired returns true if the token has expired (with optional margin).
func (t *TokenFile) IsExpired(margin time.Duration) bool {
	if t.ExpiresAt.IsZero() {
		return false
	}
	return time.Now().Add(margin).After(t.ExpiresAt)
}

// Login authenticates with username/password and stores the bearer token on
// the client.
func (c *Client) Login(ctx context.Context, username, password string) (*protocol.LoginData, error) {
	var data protocol.LoginData
	req := protocol.LoginRequest{Username: username, Password: password}
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", nil, req, &data); err != nil {
		return nil, err
	}

	if data.ExpiresAt.IsZero() {
		if exp, ok := tokenExpiry(data.Token); ok {
			data.ExpiresAt = exp
		}
	}

	c.SetAuthToken(data.Token)
	return &data, nil
}

// RefreshToken exchanges the current token for a fresh one.
func (c *Client) RefreshToken(ctx context.Context) (*protocol.RefreshData, error) {
	var data protocol.RefreshData
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/refresh", nil, nil, &data); err != nil {
		return nil, err
	}

	if data.ExpiresAt.IsZero() {
		if exp, ok := tokenExpiry(data.Token); ok {
			data.ExpiresAt = exp
		}
	}

	c.SetAuthToken(data.Token)
	return &data, nil
}

// Logout revokes the token server-side. The local token is cleared even if
// the server call fails.
func (c *Client) Logout(ctx context.Context) error {
	err := c.doJSON(ctx, http.MethodPost, "/api/auth/logout", nil, nil, nil)
	c.SetAuthToken("")
	return err
}

// VerifyToken checks the current token and returns the authenticated user.
func (c *Client) VerifyToken(ctx context.Context) (*protocol.UserInfo, error) {
	var user protocol.UserInfo
	if err := c.doJSON(ctx, http.MethodGet, "/api/auth/me", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// tokenExpiry reads the exp claim from a JWT without verifying the
// signature. The client never validates tokens, it only needs to know when
// to refresh.
func tokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// TokenFilePath returns the default path for the token file.
func TokenFilePath() string {
	if runtime.GOOS == "windows" {
		appData := os.Getenv("APPDATA")
		if appData == "" {
			home, _ := os.UserHomeDir()
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		return filepath.Join(appData, "NasBrowse", "token.json")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "nasbrowse", "token.json")
}

// SaveToken saves a token file to the default location.
func SaveToken(tf *TokenFile) error {
	path := TokenFilePath()
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(tf, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// LoadToken loads a token file from the default location.
func LoadToken() (*TokenFile, error) {
	data, err := os.ReadFile(TokenFilePath())
	if err != nil {
		return nil, err
	}
	var tf TokenFile
	if err := json.Unmarshal(data, &tf); err != nil {
		return nil, err
	}
	return &tf, nil
}

// DeleteToken removes the saved token file.
func DeleteToken() error {
	err := os.Remove(TokenFilePath())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
