package message

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/portfolio/portfolio-api/internal/pkg/storage"
)

// Service handles contact messages
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates message service
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// List returns all messages, newest first
func (s *Service) List(ctx context.Context) ([]*Message, error) {
	messages, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	storage.SortNewestFirst(messages)
	return messages, nil
}

// Submit stores a new unread message
func (s *Service) Submit(ctx context.Context, req *SubmitRequest) (*Message, error) {
	now := s.now()
	msg := &Message{
		ID:        storage.NewID(now),
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.TrimSpace(req.Email),
		Message:   strings.TrimSpace(req.Message),
		Timestamp: now.Format(TimestampLayout),
		Read:      false,
	}

	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// ToggleRead flips the read flag
func (s *Service) ToggleRead(ctx context.Context, id int64) (*Message, error) {
	msg, err := s.repo.ToggleRead(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	return msg, nil
}

// Delete removes a message
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrMessageNotFound
		}
		return err
	}
	return nil
}
