package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/portfolio/portfolio-api/internal/pkg/imaging"
	"github.com/portfolio/portfolio-api/internal/pkg/logger"
	"github.com/portfolio/portfolio-api/internal/pkg/storage"
)

// DefaultMaxSize caps a single uploaded file (10MB)
const DefaultMaxSize int64 = 10 * 1024 * 1024

// multipartOverhead leaves room for form fields and part headers on top of
// the file itself.
const multipartOverhead int64 = 1 << 20

// File is one uploaded file as received from the client
type File struct {
	Name        string
	ContentType string
	Body        io.Reader
}

// Service validates uploads and stores them in the configured blob backend
type Service struct {
	storage   storage.Storage
	processor *imaging.Processor
	maxSize   int64
	now       func() time.Time
}

// NewService creates upload service. processor may be nil to store images as-is.
func NewService(st storage.Storage, processor *imaging.Processor, maxSize int64) *Service {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &Service{
		storage:   st,
		processor: processor,
		maxSize:   maxSize,
		now:       time.Now,
	}
}

// MaxSize returns the per-file limit in bytes
func (s *Service) MaxSize() int64 {
	return s.maxSize
}

// Upload validates the file against category, stores it under folder and
// returns its public URL.
func (s *Service) Upload(ctx context.Context, category, folder string, f *File) (string, error) {
	if f == nil {
		return "", storage.ErrEmptyFile
	}

	data, contentType, err := storage.ValidateFile(f.Body, f.Name, f.ContentType, category, s.maxSize)
	if err != nil {
		return "", err
	}

	if category == storage.CategoryImage && s.processor != nil {
		resized, changed, err := s.processor.Downscale(data, contentType)
		if err != nil {
			return "", fmt.Errorf("%w: %v", storage.ErrInvalidFileType, err)
		}
		if changed {
			logger.FromContext(ctx).Debug().
				Int("from_bytes", len(data)).
				Int("to_bytes", len(resized)).
				Msg("Image downscaled")
			data = resized
		}
	}

	key := storage.GenerateKey(folder, f.Name, s.now())
	if err := s.storage.Save(ctx, key, bytes.NewReader(data), contentType); err != nil {
		return "", fmt.Errorf("failed to store upload: %w", err)
	}

	logger.FromContext(ctx).Info().
		Str("key", key).
		Str("content_type", contentType).
		Int("size", len(data)).
		Msg("File uploaded")

	return s.storage.GetURL(key), nil
}

// Release deletes the blob behind url. URLs the store does not own are
// ignored.
func (s *Service) Release(ctx context.Context, url string) error {
	if url == "" {
		return nil
	}
	key, ok := s.storage.KeyFromURL(url)
	if !ok {
		logger.FromContext(ctx).Debug().Str("url", url).Msg("Skipping release of foreign URL")
		return nil
	}
	if err := s.storage.Delete(ctx, key); err != nil {
		return fmt.Errorf("failed to delete blob %s: %w", key, err)
	}
	return nil
}

// ParseForm bounds the request body and parses the multipart form.
// An oversized body is reported as storage.ErrFileTooLarge.
func ParseForm(w http.ResponseWriter, r *http.Request, maxSize int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+multipartOverhead)
	if err := r.ParseMultipartForm(maxSize + multipartOverhead); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) || strings.Contains(err.Error(), "request body too large") {
			return storage.ErrFileTooLarge
		}
		return fmt.Errorf("invalid multipart form: %w", err)
	}
	return nil
}

// FormFile returns the named file of an already parsed form, or nil when
// the field is absent. The returned close func must be called.
func FormFile(r *http.Request, field string) (*File, func(), error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, func() {}, nil
		}
		return nil, func() {}, err
	}

	return &File{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Body:        file,
	}, func() { file.Close() }, nil
}

// OptionalValue returns the named form field of an already parsed form, or
// nil when the client did not send it.
func OptionalValue(r *http.Request, key string) *string {
	if r.MultipartForm == nil {
		return nil
	}
	values, ok := r.MultipartForm.Value[key]
	if !ok || len(values) == 0 {
		return nil
	}
	v := values[0]
	return &v
}
