package adminclient

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSessionRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolioctl", "session.yaml")

	s, err := LoadSession(path)
	if err != nil {
		t.Fatalf("LoadSession: %v", err)
	}
	if s.BaseURL != DefaultBaseURL || s.Password != "" {
		t.Fatalf("unexpected empty session %+v", s)
	}

	s.BaseURL = "https://portfolio.example.com"
	s.Password = "secret"
	if err := s.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("expected 0600, got %v", info.Mode().Perm())
	}

	loaded, err := LoadSession(path)
	if err != nil {
		t.Fatalf("LoadSession: %v", err)
	}
	if loaded.BaseURL != s.BaseURL || loaded.Password != "secret" {
		t.Fatalf("unexpected loaded session %+v", loaded)
	}

	if err := loaded.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected file removed, stat err=%v", err)
	}
	if err := loaded.Clear(); err != nil {
		t.Fatalf("second Clear should be a no-op, got %v", err)
	}
}

func TestLoadSessionRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")
	if err := os.WriteFile(path, []byte("base_url: [unclosed"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadSession(path); err == nil {
		t.Fatalf("expected parse error")
	}
}
