package openlist

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// Token is a saved login.
type Token struct {
	Server   string    `json:"server"`
	Username string    `json:"username"`
	Token    string    `json:"token"`
	SavedAt  time.Time `json:"saved_at"`
}

// Matches reports whether t was issued to username on server.
func (t *Token) Matches(server, username string) bool {
	return t != nil && t.Token != "" && t.Server == server && t.Username == username
}

// TokenStore keeps one token in a file readable only by its owner.
type TokenStore struct {
	Path string
}

// Load reads the saved token. It returns ErrNoToken when none was saved.
func (s TokenStore) Load() (*Token, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoToken
	}
	if err != nil {
		return nil, fmt.Errorf("read token: %w", err)
	}

	var t Token
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse token %s: %w", s.Path, err)
	}
	if t.Token == "" {
		return nil, ErrNoToken
	}
	return &t, nil
}

// Save writes t, creating the parent directory if needed.
func (s TokenStore) Save(t *Token) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	if t.SavedAt.IsZero() {
		t.SavedAt = time.Now().UTC()
	}

	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal token: %w", err)
	}
	if err := os.WriteFile(s.Path, data, 0o600); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	return nil
}

// Clear removes the saved token. Clearing a missing token is not an error.
func (s TokenStore) Clear() error {
	if err := os.Remove(s.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove token: %w", err)
	}
	return nil
}
