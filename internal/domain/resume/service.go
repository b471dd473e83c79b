package resume

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/portfolio/portfolio-api/internal/pkg/logger"
	"github.com/portfolio/portfolio-api/internal/pkg/storage"
	"github.com/portfolio/portfolio-api/internal/pkg/upload"
)

const uploadFolder = "resume"

// Uploader stores and releases blobs
type Uploader interface {
	Upload(ctx context.Context, category, folder string, f *upload.File) (string, error)
	Release(ctx context.Context, url string) error
}

// Service handles resume business logic
type Service struct {
	repo    Repository
	uploads Uploader
	now     func() time.Time
}

// NewService creates resume service
func NewService(repo Repository, uploads Uploader) *Service {
	return &Service{repo: repo, uploads: uploads, now: time.Now}
}

// Get returns the current resume
func (s *Service) Get(ctx context.Context) (*Resume, error) {
	r, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrResumeNotFound
		}
		return nil, err
	}
	return r, nil
}

// Replace uploads a PDF and makes it the only resume. Blobs of the
// displaced records are released afterwards.
func (s *Service) Replace(ctx context.Context, file *upload.File) (*Resume, error) {
	url, err := s.uploads.Upload(ctx, storage.CategoryResume, uploadFolder, file)
	if err != nil {
		return nil, err
	}

	filename := strings.TrimSpace(file.Name)
	if filename == "" {
		filename = DefaultFilename
	}

	now := s.now()
	r := &Resume{
		ID:         storage.NewID(now),
		Path:       url,
		Filename:   filename,
		UploadedAt: now.UTC(),
	}

	previous, err := s.repo.Replace(ctx, r)
	if err != nil {
		s.release(ctx, url)
		return nil, err
	}

	for _, old := range previous {
		s.release(ctx, old.Path)
	}

	logger.FromContext(ctx).Info().
		Int64("resume_id", r.ID).
		Int("replaced", len(previous)).
		Msg("Resume replaced")

	return r, nil
}

// Clear removes the resume and its blob
func (s *Service) Clear(ctx context.Context) error {
	previous, err := s.repo.Clear(ctx)
	if err != nil {
		return err
	}
	for _, old := range previous {
		s.release(ctx, old.Path)
	}
	return nil
}

func (s *Service) release(ctx context.Context, url string) {
	if url == "" {
		return
	}
	if err := s.uploads.Release(ctx, url); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("url", url).Msg("Failed to release resume file")
	}
}
