package project

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/portfolio/portfolio-api/internal/pkg/logger"
	"github.com/portfolio/portfolio-api/internal/pkg/storage"
	"github.com/portfolio/portfolio-api/internal/pkg/upload"
)

const uploadFolder = "projects"

// Uploader stores and releases blobs
type Uploader interface {
	Upload(ctx context.Context, category, folder string, f *upload.File) (string, error)
	Release(ctx context.Context, url string) error
}

// Service handles project business logic
type Service struct {
	repo    Repository
	uploads Uploader
	now     func() time.Time
}

// NewService creates project service
func NewService(repo Repository, uploads Uploader) *Service {
	return &Service{repo: repo, uploads: uploads, now: time.Now}
}

// List returns projects by manual order, newest first within equal order
func (s *Service) List(ctx context.Context) ([]*Project, error) {
	projects, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	storage.SortByOrder(projects)
	return projects, nil
}

// Get returns one project
func (s *Service) Get(ctx context.Context, id int64) (*Project, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return p, nil
}

// Create uploads the image, then stores the project
func (s *Service) Create(ctx context.Context, req *CreateRequest, image *upload.File) (*Project, error) {
	var imageURL string
	if image != nil {
		url, err := s.uploads.Upload(ctx, storage.CategoryImage, uploadFolder, image)
		if err != nil {
			return nil, err
		}
		imageURL = url
	}

	now := s.now()
	p := &Project{
		ID:          storage.NewID(now),
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Image:       imageURL,
		ProjectURL:  strings.TrimSpace(req.ProjectURL),
		CreatedAt:   now.UTC(),
		Order:       0,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		s.release(ctx, imageURL)
		return nil, err
	}
	return p, nil
}

// Update merges the supplied fields and optionally swaps the image
func (s *Service) Update(ctx context.Context, id int64, req *UpdateRequest, image *upload.File) (*Project, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}

	if req.Title != nil {
		p.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.ProjectURL != nil {
		p.ProjectURL = strings.TrimSpace(*req.ProjectURL)
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

// Delete removes the project and its image
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

// Reorder sets each project's order to its position in ids. Unknown ids
// are skipped.
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
		logger.FromContext(ctx).Warn().Err(err).Str("url", url).Msg("Failed to release project image")
	}
}

func mapNotFound(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return ErrProjectNotFound
	}
	return err
}
