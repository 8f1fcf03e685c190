package service

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/thread-watch-api/internal/cache"
	"github.com/thread-watch-api/internal/config"
	"github.com/thread-watch-api/internal/models"
	"github.com/thread-watch-api/internal/repository"
	"github.com/thread-watch-api/internal/thread"
)

// WatchService defines the interface for thread subscription management
type WatchService interface {
	Create(ctx context.Context, req *models.CreateWatchRequest) (*models.Watch, error)
	Get(ctx context.Context, watchID string) (*models.WatchSnapshot, error)
	List(ctx context.Context) []models.Watch
	Refresh(ctx context.Context, watchID string) (*models.WatchSnapshot, error)
	Update(ctx context.Context, watchID string, req *models.UpdateWatchRequest) (*models.Watch, error)
	Delete(ctx context.Context, watchID string) error
	ActiveCount() int
	StopAll()
}

// WatchlistService defines the interface for the watched-author feature:
// a persisted author set plus in-memory new-activity counters fed by
// each cycle's merged tree.
type WatchlistService interface {
	WatchUser(ctx context.Context, username string) error
	UnwatchUser(ctx context.Context, username string) error
	IsWatched(ctx context.Context, username string) (bool, error)
	GetAll(ctx context.Context) ([]models.WatchedUser, error)
	RecordActivity(ctx context.Context, comments []models.Comment, firstSeen map[string]struct{}) error
	Activity() []models.UserActivity
	ClearActivity(username string)
	ClearAllActivity()
	Count(ctx context.Context) (int, error)
}

// PinService defines the interface for per-thread pinned comments
type PinService interface {
	Pin(ctx context.Context, threadID, commentID string) error
	Unpin(ctx context.Context, threadID, commentID string) error
	Clear(ctx context.Context, threadID string) error
	GetByThread(ctx context.Context, threadID string) ([]models.PinnedComment, error)
	Count(ctx context.Context) (int, error)
}

// Services holds all service interfaces
type Services struct {
	Watch     WatchService
	Watchlist WatchlistService
	Pin       PinService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, snapshots *cache.SnapshotCache, fetcher thread.Fetcher, cfg *config.Config, log zerolog.Logger) *Services {
	watchlistSvc := newWatchlistService(repos.WatchedUser, log)
	watchSvc := newWatchService(fetcher, snapshots, watchlistSvc, cfg, log)
	pinSvc := newPinService(repos.PinnedComment, log)

	return &Services{
		Watch:     watchSvc,
		Watchlist: watchlistSvc,
		Pin:       pinSvc,
	}
}
