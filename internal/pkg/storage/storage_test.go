package storage

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"
)

type listerStub struct {
	items []*note
	err   error
	calls int
}

func (s *listerStub) List(ctx context.Context) ([]*note, error) {
	s.calls++
	return s.items, s.err
}

func TestReadFallback(t *testing.T) {
	local := []*note{{ID: 1, Text: "local"}}
	remote := []*note{{ID: 2, Text: "remote"}}

	tests := []struct {
		name      string
		primary   *listerStub
		secondary *listerStub
		wantID    int64
		wantLen   int
		wantErr   bool
	}{
		{"primary has data", &listerStub{items: remote}, &listerStub{items: local}, 2, 1, false},
		{"primary empty", &listerStub{items: []*note{}}, &listerStub{items: local}, 1, 1, false},
		{"primary fails", &listerStub{err: errors.New("down")}, &listerStub{items: local}, 1, 1, false},
		{"both empty", &listerStub{items: []*note{}}, &listerStub{items: []*note{}}, 0, 0, false},
		{"both fail", &listerStub{err: errors.New("down")}, &listerStub{err: errors.New("disk")}, 0, 0, true},
		{"primary empty secondary fails", &listerStub{items: []*note{}}, &listerStub{err: errors.New("disk")}, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewReadFallback[note]("notes", tt.primary, tt.secondary)
			items, err := f.List(context.Background())
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(items) != tt.wantLen {
				t.Fatalf("expected %d items, got %d", tt.wantLen, len(items))
			}
			if tt.wantLen > 0 && items[0].ID != tt.wantID {
				t.Fatalf("expected id %d, got %d", tt.wantID, items[0].ID)
			}
		})
	}
}

func TestGenerateKey(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	key := GenerateKey("projects", "Photo.JPG", now)

	if !regexp.MustCompile(`^projects/1700000000123-\d+\.jpg$`).MatchString(key) {
		t.Fatalf("unexpected key %q", key)
	}
	if GenerateKey("projects", "Photo.JPG", now) == key && GenerateKey("projects", "Photo.JPG", now) == key {
		t.Fatalf("expected random suffix to vary")
	}
	if k := GenerateKey("", "a.pdf", now); strings.Contains(k, "/") {
		t.Fatalf("expected no folder, got %q", k)
	}
}

func TestLocalStorageRoundTrip(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	st, err := NewLocalStorage(base, "/uploads/")
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}
	ctx := context.Background()

	if err := st.Save(ctx, "projects/a.png", bytes.NewReader([]byte("png")), "image/png"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(base, "projects", "a.png")); err != nil {
		t.Fatalf("expected file on disk: %v", err)
	}

	url := st.GetURL("projects/a.png")
	if url != "/uploads/projects/a.png" {
		t.Fatalf("unexpected url %q", url)
	}
	key, ok := st.KeyFromURL(url)
	if !ok || key != "projects/a.png" {
		t.Fatalf("KeyFromURL: got %q %v", key, ok)
	}
	if _, ok := st.KeyFromURL("https://elsewhere.example.com/a.png"); ok {
		t.Fatalf("foreign url must not map to a key")
	}
	if _, ok := st.KeyFromURL("/uploads/../secret"); ok {
		t.Fatalf("traversal must not map to a key")
	}

	if err := st.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := st.Delete(ctx, key); err != nil {
		t.Fatalf("Delete of missing file should be nil, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(base, "projects", "a.png")); !os.IsNotExist(err) {
		t.Fatalf("expected file gone, stat err=%v", err)
	}

	if err := st.Save(ctx, "../escape.txt", bytes.NewReader([]byte("x")), "text/plain"); err == nil {
		t.Fatalf("expected traversal key to be rejected")
	}
}
