package video

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/portfolio/portfolio-api/internal/pkg/storage"
)

// Service handles video business logic
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates video service
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// List returns videos by manual order, newest first within equal order
func (s *Service) List(ctx context.Context) ([]*Video, error) {
	videos, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	storage.SortByOrder(videos)
	return videos, nil
}

// Get returns one video
func (s *Service) Get(ctx context.Context, id int64) (*Video, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return v, nil
}

// Create stores a video and derives its YouTube id and thumbnail
func (s *Service) Create(ctx context.Context, req *CreateRequest) (*Video, error) {
	now := s.now()
	v := &Video{
		ID:          storage.NewID(now),
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		CreatedAt:   now.UTC(),
	}
	v.applyURL(strings.TrimSpace(req.VideoURL))

	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// Update merges the supplied fields and re-derives the YouTube fields
func (s *Service) Update(ctx context.Context, id int64, req *UpdateRequest) (*Video, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}

	if req.Title != nil {
		v.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		v.Description = *req.Description
	}
	url := v.VideoURL
	if req.VideoURL != nil {
		url = strings.TrimSpace(*req.VideoURL)
	}
	v.applyURL(url)

	if err := s.repo.Update(ctx, v); err != nil {
		return nil, mapNotFound(err)
	}
	return v, nil
}

// Delete removes a video
func (s *Service) Delete(ctx context.Context, id int64) error {
	return mapNotFound(s.repo.Delete(ctx, id))
}

// Reorder sets each video's order to its position in ids. Unknown ids are
// skipped.
func (s *Service) Reorder(ctx context.Context, ids []int64) error {
	for i, id := range ids {
		v, err := s.repo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				continue
			}
			return err
		}
		if v.Order == i {
			continue
		}
		v.Order = i
		if err := s.repo.Update(ctx, v); err != nil && !errors.Is(err, storage.ErrNotFound) {
			return err
		}
	}
	return nil
}

func mapNotFound(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return ErrVideoNotFound
	}
	return err
}
