package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage implements Storage for the local file system
type LocalStorage struct {
	basePath string
	baseURL  string
}

// NewLocalStorage creates a new local storage instance
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// Save stores a file locally
func (s *LocalStorage) Save(ctx context.Context, key string, reader io.Reader, contentType string) error {
	fullPath, err := s.resolve(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, reader); err != nil {
		os.Remove(fullPath)
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// Delete removes a file from local storage
func (s *LocalStorage) Delete(ctx context.Context, key string) error {
	fullPath, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// GetURL returns the URL for a locally stored file
func (s *LocalStorage) GetURL(key string) string {
	return fmt.Sprintf("%s/%s", s.baseURL, key)
}

// KeyFromURL reverses GetURL
func (s *LocalStorage) KeyFromURL(url string) (string, bool) {
	return keyFromURL(s.baseURL, url)
}

// Handler serves stored files under the public URL prefix
func (s *LocalStorage) Handler() http.Handler {
	return http.StripPrefix(s.baseURL, http.FileServer(http.Dir(s.basePath)))
}

func (s *LocalStorage) resolve(key string) (string, error) {
	fullPath := filepath.Join(s.basePath, filepath.FromSlash(key))
	rel, err := filepath.Rel(s.basePath, fullPath)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("invalid storage key: %s", key)
	}
	return fullPath, nil
}
