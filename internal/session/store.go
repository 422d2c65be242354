package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/epic-events/epic-events/internal/shared"
)

// Store persists the single local session token. One token is resident at
// a time; login overwrites it wholesale and logout removes it.
type Store struct {
	path string
}

// NewStore constructs a Store writing to path. An empty path selects the
// default location under the user config directory.
func NewStore(path string) *Store {
	if path == "" {
		path = defaultTokenPath()
	}
	return &Store{path: path}
}

// Path returns the token file location.
func (s *Store) Path() string { return s.path }

// Write persists the token, creating the parent directory when absent.
// The write goes through a temp file and rename so a crash never leaves a
// half-written token behind. The file is owner-only: it proves identity.
func (s *Store) Write(token string) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("session: create config dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".access_token-*")
	if err != nil {
		return fmt.Errorf("session: create temp token file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(token); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("session: write token: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("session: chmod token file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("session: close token file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("session: replace token file: %w", err)
	}
	return nil
}

// Read returns the stored token. shared.ErrNoSession when the file is absent.
func (s *Store) Read() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", shared.ErrNoSession
		}
		return "", fmt.Errorf("session: read token file %s: %w", s.path, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Clear removes the token file. A missing file is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("session: remove token file %s: %w", s.path, err)
	}
	return nil
}

// defaultTokenPath resolves the well-known token location, honoring
// XDG_CONFIG_HOME and falling back to ~/.config.
func defaultTokenPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), "epic_events", "access_token.txt")
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "epic_events", "access_token.txt")
}
