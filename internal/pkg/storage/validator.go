package storage

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var (
	ErrFileTooLarge    = errors.New("file exceeds maximum size")
	ErrInvalidFileType = errors.New("file type not allowed")
	ErrEmptyFile       = errors.New("file is empty")
)

// Upload categories
const (
	CategoryImage  = "image"
	CategoryResume = "resume"
)

// AllowedTypes lists permitted extensions and MIME types per category.
var AllowedTypes = map[string]struct {
	Extensions []string
	MimeTypes  []string
}{
	CategoryImage: {
		Extensions: []string{".jpg", ".jpeg", ".png", ".gif", ".webp"},
		MimeTypes:  []string{"image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp"},
	},
	CategoryResume: {
		Extensions: []string{".pdf"},
		MimeTypes:  []string{"application/pdf"},
	},
}

// ValidateFile reads at most maxSize bytes and checks the file against the
// category by extension, declared MIME type and sniffed content.
// It returns the buffered data and the detected MIME type.
func ValidateFile(reader io.Reader, filename, declaredMime, category string, maxSize int64) ([]byte, string, error) {
	allowed, ok := AllowedTypes[category]
	if !ok {
		return nil, "", fmt.Errorf("unknown category: %s", category)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !slices.Contains(allowed.Extensions, ext) {
		return nil, "", ErrInvalidFileType
	}
	if !slices.Contains(allowed.MimeTypes, cleanMime(declaredMime)) {
		return nil, "", ErrInvalidFileType
	}

	// Read file into buffer (limited to maxSize + 1 to detect oversized files)
	data, err := io.ReadAll(io.LimitReader(reader, maxSize+1))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read file: %w", err)
	}
	if len(data) == 0 {
		return nil, "", ErrEmptyFile
	}
	if int64(len(data)) > maxSize {
		return nil, "", ErrFileTooLarge
	}

	detected := mimetype.Detect(data)
	sniffed := cleanMime(detected.String())
	if !slices.Contains(allowed.MimeTypes, sniffed) {
		return nil, "", ErrInvalidFileType
	}

	return data, sniffed, nil
}

// IsValidationError reports whether err came from ValidateFile's checks.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidFileType) || errors.Is(err, ErrFileTooLarge) || errors.Is(err, ErrEmptyFile)
}

func cleanMime(m string) string {
	// "image/jpeg; charset=utf-8" -> "image/jpeg"
	if idx := strings.Index(m, ";"); idx != -1 {
		m = m[:idx]
	}
	return strings.ToLower(strings.TrimSpace(m))
}
