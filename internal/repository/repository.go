package repository

import (
	"context"

	"github.com/thread-watch-api/internal/database"
	"github.com/thread-watch-api/internal/models"
)

// WatchedUserRepository defines the interface for watch-list persistence
type WatchedUserRepository interface {
	Add(ctx context.Context, username string) error
	Remove(ctx context.Context, username string) error
	Exists(ctx context.Context, username string) (bool, error)
	GetAll(ctx context.Context) ([]models.WatchedUser, error)
	Count(ctx context.Context) (int, error)
}

// PinnedCommentRepository defines the interface for per-thread pin persistence
type PinnedCommentRepository interface {
	Pin(ctx context.Context, threadID, commentID string) error
	Unpin(ctx context.Context, threadID, commentID string) error
	Clear(ctx context.Context, threadID string) error
	GetByThread(ctx context.Context, threadID string) ([]models.PinnedComment, error)
	Count(ctx context.Context) (int, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	WatchedUser   WatchedUserRepository
	PinnedComment PinnedCommentRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		WatchedUser:   NewWatchedUserRepo(db),
		PinnedComment: NewPinnedCommentRepo(db),
	}
}
