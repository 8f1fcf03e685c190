package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"github.com/thread-watch-api/internal/models"
	"github.com/thread-watch-api/internal/repository"
	"github.com/thread-watch-api/internal/thread"
)

// ErrUserNotWatched is returned when unwatching an author that is not on the list
var ErrUserNotWatched = errors.New("user is not on the watch list")

// watchlistService is the concrete implementation of WatchlistService.
// The author set is persisted; the activity counters are transient and
// live only for the process lifetime, like the view state they back.
type watchlistService struct {
	repo repository.WatchedUserRepository
	log  zerolog.Logger

	mu       sync.Mutex
	activity map[string]int
}

// newWatchlistService creates a new WatchlistService
func newWatchlistService(repo repository.WatchedUserRepository, log zerolog.Logger) *watchlistService {
	return &watchlistService{
		repo:     repo,
		log:      log.With().Str("service", "watchlist").Logger(),
		activity: make(map[string]int),
	}
}

// WatchUser adds an author to the watch list
func (s *watchlistService) WatchUser(ctx context.Context, username string) error {
	if err := s.repo.Add(ctx, username); err != nil {
		return err
	}
	s.log.Info().Str("username", username).Msg("User watched")
	return nil
}

// UnwatchUser removes an author and destroys their activity counter
func (s *watchlistService) UnwatchUser(ctx context.Context, username string) error {
	exists, err := s.repo.Exists(ctx, username)
	if err != nil {
		return err
	}
	if !exists {
		return ErrUserNotWatched
	}
	if err := s.repo.Remove(ctx, username); err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.activity, username)
	s.mu.Unlock()

	s.log.Info().Str("username", username).Msg("User unwatched")
	return nil
}

// IsWatched checks whether an author is on the watch list
func (s *watchlistService) IsWatched(ctx context.Context, username string) (bool, error) {
	return s.repo.Exists(ctx, username)
}

// GetAll returns the watch list
func (s *watchlistService) GetAll(ctx context.Context) ([]models.WatchedUser, error) {
	return s.repo.GetAll(ctx)
}

// RecordActivity walks a freshly merged tree and accumulates this
// cycle's per-author new-comment deltas into the running counters.
// firstSeen is the set of comment ids the cycle observed for the first
// time; only those contribute, so an author is credited at most once
// per comment no matter how often cycles run inside the highlight
// window.
func (s *watchlistService) RecordActivity(ctx context.Context, comments []models.Comment, firstSeen map[string]struct{}) error {
	if len(firstSeen) == 0 {
		return nil
	}

	users, err := s.repo.GetAll(ctx)
	if err != nil {
		return err
	}
	if len(users) == 0 {
		return nil
	}

	watched := make(map[string]struct{}, len(users))
	for _, u := range users {
		watched[u.Username] = struct{}{}
	}

	delta := thread.NewActivity(comments, watched, firstSeen)
	if len(delta) == 0 {
		return nil
	}

	s.mu.Lock()
	for author, count := range delta {
		s.activity[author] += count
	}
	s.mu.Unlock()

	for author, count := range delta {
		s.log.Debug().Str("username", author).Int("new_comments", count).Msg("Watched user activity")
	}
	return nil
}

// Activity returns the accumulated counters, sorted by author for a
// stable API response
func (s *watchlistService) Activity() []models.UserActivity {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.UserActivity, 0, len(s.activity))
	for author, count := range s.activity {
		out = append(out, models.UserActivity{Username: author, NewCount: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out
}

// ClearActivity resets one author's counter
func (s *watchlistService) ClearActivity(username string) {
	s.mu.Lock()
	delete(s.activity, username)
	s.mu.Unlock()
}

// ClearAllActivity resets every counter
func (s *watchlistService) ClearAllActivity() {
	s.mu.Lock()
	s.activity = make(map[string]int)
	s.mu.Unlock()
}

// Count returns the number of watched authors
func (s *watchlistService) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
