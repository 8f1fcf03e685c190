package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/thread-watch-api/internal/cache"
	"github.com/thread-watch-api/internal/config"
	"github.com/thread-watch-api/internal/models"
	"github.com/thread-watch-api/internal/reddit"
	"github.com/thread-watch-api/internal/thread"
)

var (
	// ErrWatchNotFound is returned for unknown watch ids
	ErrWatchNotFound = errors.New("watch not found")
	// ErrInvalidInterval is returned when an interval is outside the fixed choice set
	ErrInvalidInterval = errors.New("interval must be one of: 10s, 30s, 1m, 5m")
)

// watchEntry pairs a watch record with its live session
type watchEntry struct {
	watch   models.Watch
	session *thread.Session
}

// watchService is the concrete implementation of WatchService
type watchService struct {
	fetcher   thread.Fetcher
	snapshots *cache.SnapshotCache
	watchlist WatchlistService
	cfg       *config.Config
	log       zerolog.Logger

	mu      sync.RWMutex
	watches map[string]*watchEntry

	baseCtx context.Context
	cancel  context.CancelFunc
}

// newWatchService creates a new WatchService
func newWatchService(fetcher thread.Fetcher, snapshots *cache.SnapshotCache, watchlist WatchlistService, cfg *config.Config, log zerolog.Logger) *watchService {
	ctx, cancel := context.WithCancel(context.Background())
	return &watchService{
		fetcher:   fetcher,
		snapshots: snapshots,
		watchlist: watchlist,
		cfg:       cfg,
		log:       log.With().Str("service", "watch").Logger(),
		watches:   make(map[string]*watchEntry),
		baseCtx:   ctx,
		cancel:    cancel,
	}
}

// Create normalizes the thread URL, starts a session for it and begins watching
func (s *watchService) Create(ctx context.Context, req *models.CreateWatchRequest) (*models.Watch, error) {
	locator, err := reddit.NormalizeThreadURL(req.URL)
	if err != nil {
		return nil, err
	}
	if !reddit.IsValidThreadURL(locator) {
		return nil, fmt.Errorf("%w: %q", reddit.ErrInvalidThreadURL, req.URL)
	}

	interval := s.cfg.Watch.DefaultInterval
	if req.Interval != "" {
		d, ok := config.AllowedIntervals[req.Interval]
		if !ok {
			return nil, ErrInvalidInterval
		}
		interval = d
	}

	expandReplies := s.cfg.Watch.ExpandReplies
	if req.ExpandReplies != nil {
		expandReplies = *req.ExpandReplies
	}

	watch := models.Watch{
		ID:            uuid.New().String(),
		URL:           locator,
		Interval:      interval,
		IntervalLabel: config.IntervalLabel(interval),
		ExpandReplies: expandReplies,
		State:         models.WatchStateWatching,
		CreatedAt:     time.Now(),
	}

	session := thread.NewSession(locator, s.fetcher, thread.Config{
		Interval:        interval,
		HighlightWindow: s.cfg.Watch.HighlightWindow,
	}, s.log, s.cycleHook(watch.ID))

	s.mu.Lock()
	s.watches[watch.ID] = &watchEntry{watch: watch, session: session}
	s.mu.Unlock()

	session.Start(s.baseCtx)

	s.log.Info().
		Str("watch_id", watch.ID).
		Str("url", locator).
		Str("interval", watch.IntervalLabel).
		Msg("Watch created")

	return &watch, nil
}

// Get returns the current snapshot of a watch. Before the first cycle
// has committed, a cached snapshot from a previous run is served if one
// exists.
func (s *watchService) Get(ctx context.Context, watchID string) (*models.WatchSnapshot, error) {
	s.mu.RLock()
	entry, ok := s.watches[watchID]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrWatchNotFound
	}

	snap := s.buildSnapshot(entry)
	if snap.LastFetch == nil && s.snapshots != nil {
		if cached, err := s.snapshots.Load(ctx, watchID); err == nil && cached != nil {
			cached.State = snap.State
			return cached, nil
		}
	}
	return snap, nil
}

// List returns all watch records
func (s *watchService) List(ctx context.Context) []models.Watch {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Watch, 0, len(s.watches))
	for _, entry := range s.watches {
		w := entry.watch
		w.State = watchState(entry.session)
		out = append(out, w)
	}
	return out
}

// Refresh triggers an immediate out-of-band cycle and returns the
// resulting snapshot
func (s *watchService) Refresh(ctx context.Context, watchID string) (*models.WatchSnapshot, error) {
	s.mu.RLock()
	entry, ok := s.watches[watchID]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrWatchNotFound
	}

	if _, err := entry.session.RunCycleOnce(ctx); err != nil && !errors.Is(err, thread.ErrCycleDiscarded) {
		// Cycle errors are recorded in the session's error state and
		// surfaced through the snapshot; the held tree is intact.
		s.log.Warn().Err(err).Str("watch_id", watchID).Msg("Manual refresh failed")
	}
	return s.buildSnapshot(entry), nil
}

// Update changes interval, URL or reply-expansion default. A URL change
// is a hard reset of the session state.
func (s *watchService) Update(ctx context.Context, watchID string, req *models.UpdateWatchRequest) (*models.Watch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.watches[watchID]
	if !ok {
		return nil, ErrWatchNotFound
	}

	if req.Interval != "" {
		d, ok := config.AllowedIntervals[req.Interval]
		if !ok {
			return nil, ErrInvalidInterval
		}
		entry.watch.Interval = d
		entry.watch.IntervalLabel = req.Interval
		entry.session.SetInterval(d)
	}

	if req.URL != "" {
		locator, err := reddit.NormalizeThreadURL(req.URL)
		if err != nil {
			return nil, err
		}
		if !reddit.IsValidThreadURL(locator) {
			return nil, fmt.Errorf("%w: %q", reddit.ErrInvalidThreadURL, req.URL)
		}
		entry.watch.URL = locator
		entry.session.SetLocator(locator)
		if s.snapshots != nil {
			if err := s.snapshots.Delete(ctx, watchID); err != nil {
				s.log.Warn().Err(err).Str("watch_id", watchID).Msg("Failed to drop cached snapshot")
			}
		}
	}

	if req.ExpandReplies != nil {
		entry.watch.ExpandReplies = *req.ExpandReplies
	}

	w := entry.watch
	return &w, nil
}

// Delete stops a watch's session and forgets it
func (s *watchService) Delete(ctx context.Context, watchID string) error {
	s.mu.Lock()
	entry, ok := s.watches[watchID]
	if ok {
		delete(s.watches, watchID)
	}
	s.mu.Unlock()

	if !ok {
		return ErrWatchNotFound
	}

	entry.session.Stop()
	if s.snapshots != nil {
		if err := s.snapshots.Delete(ctx, watchID); err != nil {
			s.log.Warn().Err(err).Str("watch_id", watchID).Msg("Failed to drop cached snapshot")
		}
	}

	s.log.Info().Str("watch_id", watchID).Msg("Watch deleted")
	return nil
}

// ActiveCount returns the number of live watches
func (s *watchService) ActiveCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.watches)
}

// StopAll stops every session; used on shutdown
func (s *watchService) StopAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, entry := range s.watches {
		entry.session.Stop()
	}
	s.cancel()
}

// cycleHook runs after every committed cycle of a watch's session: it
// feeds the merged tree to the watch-list activity counters and stores
// the fresh snapshot in the cache.
func (s *watchService) cycleHook(watchID string) func(thread.CycleResult) {
	return func(result thread.CycleResult) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if result.NewCommentCount > 0 {
			if err := s.watchlist.RecordActivity(ctx, result.Comments, result.NewCommentIDs); err != nil {
				s.log.Warn().Err(err).Str("watch_id", watchID).Msg("Failed to record watch-list activity")
			}
		}

		if s.snapshots == nil {
			return
		}
		s.mu.RLock()
		entry, ok := s.watches[watchID]
		s.mu.RUnlock()
		if !ok {
			return
		}
		if err := s.snapshots.Save(ctx, watchID, s.buildSnapshot(entry)); err != nil {
			s.log.Warn().Err(err).Str("watch_id", watchID).Msg("Failed to cache snapshot")
		}
	}
}

// buildSnapshot converts session state into the API view
func (s *watchService) buildSnapshot(entry *watchEntry) *models.WatchSnapshot {
	sessSnap := entry.session.Snapshot()

	snap := &models.WatchSnapshot{
		Watch:    entry.watch,
		Thread:   sessSnap.Thread,
		Comments: sessSnap.Comments,
		Stats:    sessSnap.Stats,
	}
	snap.State = watchState(entry.session)
	if !sessSnap.LastFetch.IsZero() {
		t := sessSnap.LastFetch
		snap.LastFetch = &t
	}
	if sessSnap.Err != nil {
		snap.Error = sessSnap.Err.Error()
	}
	if snap.Comments == nil {
		snap.Comments = []models.Comment{}
	}
	return snap
}

func watchState(session *thread.Session) models.WatchState {
	if session.Watching() {
		return models.WatchStateWatching
	}
	return models.WatchStateIdle
}
