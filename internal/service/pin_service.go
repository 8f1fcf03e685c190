package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/thread-watch-api/internal/models"
	"github.com/thread-watch-api/internal/repository"
)

// ErrEmptyPinTarget is returned when a pin request lacks ids
var ErrEmptyPinTarget = errors.New("thread id and comment id are required")

// pinService is the concrete implementation of PinService
type pinService struct {
	repo repository.PinnedCommentRepository
	log  zerolog.Logger
}

// newPinService creates a new PinService
func newPinService(repo repository.PinnedCommentRepository, log zerolog.Logger) *pinService {
	return &pinService{
		repo: repo,
		log:  log.With().Str("service", "pin").Logger(),
	}
}

// Pin stores a pin for a comment within a thread
func (s *pinService) Pin(ctx context.Context, threadID, commentID string) error {
	if threadID == "" || commentID == "" {
		return ErrEmptyPinTarget
	}
	return s.repo.Pin(ctx, threadID, commentID)
}

// Unpin removes a single pin
func (s *pinService) Unpin(ctx context.Context, threadID, commentID string) error {
	if threadID == "" || commentID == "" {
		return ErrEmptyPinTarget
	}
	return s.repo.Unpin(ctx, threadID, commentID)
}

// Clear removes every pin for a thread
func (s *pinService) Clear(ctx context.Context, threadID string) error {
	if threadID == "" {
		return ErrEmptyPinTarget
	}
	return s.repo.Clear(ctx, threadID)
}

// GetByThread lists a thread's pins
func (s *pinService) GetByThread(ctx context.Context, threadID string) ([]models.PinnedComment, error) {
	return s.repo.GetByThread(ctx, threadID)
}

// Count returns the total number of pins
func (s *pinService) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
