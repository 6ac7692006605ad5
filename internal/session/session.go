// Package session owns the persisted login state. It is the only place that
// touches the credentials file; everything else asks the Store.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const credFileName = "credentials.json"

// EnvToken overrides the stored access token when set. Useful for scripting
// against a service account without writing a credentials file.
const EnvToken = "PARISH_TOKEN"

// Tokens is the on-disk shape of a session: the access/refresh pair returned
// by the login endpoint plus when we saved it. No expiry tracking happens
// client-side; the server is the authority on token validity.
type Tokens struct {
	Access  string    `json:"access"`
	Refresh string    `json:"refresh"`
	Source  string    `json:"source"` // "env" | "file"
	SavedAt time.Time `json:"saved_at"`
}

// Store reads and writes the credentials file under dir.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) credPath() string {
	return filepath.Join(s.dir, credFileName)
}

// Tokens returns the current session, or nil when not logged in.
// The PARISH_TOKEN env var takes precedence over the file.
func (s *Store) Tokens() (*Tokens, error) {
	if env := strings.TrimSpace(os.Getenv(EnvToken)); env != "" {
		return &Tokens{Access: stripBearer(env), Source: "env"}, nil
	}

	b, err := os.ReadFile(s.credPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil // not logged in
		}
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	var t Tokens
	if err := json.Unmarshal(b, &t); err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	t.Access = stripBearer(t.Access)
	return &t, nil
}

// SetTokens persists the access/refresh pair. The directory is created with
// owner-only permissions, the file written 0600.
func (s *Store) SetTokens(access, refresh string) error {
	access = stripBearer(strings.TrimSpace(access))
	if access == "" {
		return fmt.Errorf("empty access token")
	}
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	t := Tokens{
		Access:  access,
		Refresh: strings.TrimSpace(refresh),
		Source:  "file",
		SavedAt: time.Now(),
	}
	b, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if err := os.WriteFile(s.credPath(), b, 0o600); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// Clear removes the credentials file. Idempotent: clearing an absent session
// is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.credPath()); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("remove: %w", err)
	}
	return nil
}

// AccessToken returns the stored access token or "" when absent. Read errors
// are treated as "not logged in"; the next API call will surface the 401.
func (s *Store) AccessToken() string {
	t, err := s.Tokens()
	if err != nil || t == nil {
		return ""
	}
	return t.Access
}

// RefreshToken returns the stored refresh token or "" when absent. The env
// override carries no refresh token.
func (s *Store) RefreshToken() string {
	t, err := s.Tokens()
	if err != nil || t == nil {
		return ""
	}
	return t.Refresh
}

// IsAuthenticated reports whether an access token is present. No server-side
// verification happens here.
func (s *Store) IsAuthenticated() bool {
	return s.AccessToken() != ""
}

func stripBearer(s string) string {
	if strings.HasPrefix(strings.ToLower(s), "bearer ") {
		return strings.TrimSpace(s[7:])
	}
	return s
}
