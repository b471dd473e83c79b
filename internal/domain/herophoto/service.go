package herophoto

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/portfolio/portfolio-api/internal/pkg/logger"
	"github.com/portfolio/portfolio-api/internal/pkg/storage"
	"github.com/portfolio/portfolio-api/internal/pkg/upload"
)

const uploadFolder = "hero"

// Uploader stores and releases blobs
type Uploader interface {
	Upload(ctx context.Context, category, folder string, f *upload.File) (string, error)
	Release(ctx context.Context, url string) error
}

// Service handles hero photo business logic
type Service struct {
	repo    Repository
	uploads Uploader
	now     func() time.Time
}

// NewService creates hero photo service
func NewService(repo Repository, uploads Uploader) *Service {
	return &Service{repo: repo, uploads: uploads, now: time.Now}
}

// List returns hero photos by manual order, newest first within equal order
func (s *Service) List(ctx context.Context) ([]*HeroPhoto, error) {
	photos, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	storage.SortByOrder(photos)
	return photos, nil
}

// Create uploads the image, applies defaults and stores the photo
func (s *Service) Create(ctx context.Context, req *CreateRequest, image *upload.File) (*HeroPhoto, error) {
	var imageURL string
	if image != nil {
		url, err := s.uploads.Upload(ctx, storage.CategoryImage, uploadFolder, image)
		if err != nil {
			return nil, err
		}
		imageURL = url
	}

	alt := strings.TrimSpace(req.Alt)
	if alt == "" {
		alt = DefaultAlt
	}

	now := s.now()
	p := &HeroPhoto{
		ID:        storage.NewID(now),
		Image:     imageURL,
		Alt:       alt,
		PositionX: positionOrDefault(req.PositionX),
		PositionY: positionOrDefault(req.PositionY),
		CreatedAt: now.UTC(),
	}

	if err := s.repo.Create(ctx, p); err != nil {
		s.release(ctx, imageURL)
		return nil, err
	}
	return p, nil
}

// Update merges the supplied fields and optionally swaps the image
func (s *Service) Update(ctx context.Context, id int64, req *UpdateRequest, image *upload.File) (*HeroPhoto, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}

	if req.Alt != nil {
		p.Alt = strings.TrimSpace(*req.Alt)
		if p.Alt == "" {
			p.Alt = DefaultAlt
		}
	}
	if req.PositionX != nil {
		p.PositionX = Position(*req.PositionX)
	}
	if req.PositionY != nil {
		p.PositionY = Position(*req.PositionY)
	}

	var oldImage, newImage string
	if image != nil {
		newImage, err = s.uploads.Upload(ctx, storage.CategoryImage, uploadFolder, image)
		if err != nil {
			return nil, err
		}
		oldImage, p.Image = p.Image, newImage
	}

	if err := s.repo.Update(ctx, p); err != nil {
		s.release(ctx, newImage)
		return nil, mapNotFound(err)
	}

	s.release(ctx, oldImage)
	return p, nil
}

// Delete removes the photo and its image
func (s *Service) Delete(ctx context.Context, id int64) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return mapNotFound(err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapNotFound(err)
	}
	s.release(ctx, p.Image)
	return nil
}

// Reorder sets each photo's order to its position in ids. Unknown ids are
// skipped.
func (s *Service) Reorder(ctx context.Context, ids []int64) error {
	for i, id := range ids {
		p, err := s.repo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				continue
			}
			return err
		}
		if p.Order == i {
			continue
		}
		p.Order = i
		if err := s.repo.Update(ctx, p); err != nil && !errors.Is(err, storage.ErrNotFound) {
			return err
		}
	}
	return nil
}

func (s *Service) release(ctx context.Context, url string) {
	if url == "" {
		return
	}
	if err := s.uploads.Release(ctx, url); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("url", url).Msg("Failed to release hero image")
	}
}

func positionOrDefault(p *int) Position {
	if p == nil {
		return DefaultPosition
	}
	return Position(*p)
}

func mapNotFound(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return ErrHeroPhotoNotFound
	}
	return err
}
