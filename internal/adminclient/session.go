package adminclient

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const DefaultBaseURL = "http://localhost:3000"

// Session is the admin's saved server address and password
type Session struct {
	BaseURL  string `yaml:"base_url"`
	Password string `yaml:"password"`

	path string
}

// DefaultSessionPath returns $XDG_CONFIG_HOME/portfolioctl/session.yaml,
// or the platform equivalent.
func DefaultSessionPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(dir, "portfolioctl", "session.yaml"), nil
}

// LoadSession reads the session at path. A missing file yields an empty
// session pointing at DefaultBaseURL.
func LoadSession(path string) (*Session, error) {
	s := &Session{BaseURL: DefaultBaseURL, path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to parse session: %w", err)
	}
	if s.BaseURL == "" {
		s.BaseURL = DefaultBaseURL
	}
	return s, nil
}

// Path returns the file backing the session
func (s *Session) Path() string {
	return s.path
}

// Save writes the session with owner-only permissions
func (s *Session) Save() error {
	if s.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

// Clear forgets the password and removes the session file
func (s *Session) Clear() error {
	s.Password = ""
	if s.path == "" {
		return nil
	}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove session: %w", err)
	}
	return nil
}
