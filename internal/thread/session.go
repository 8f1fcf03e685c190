package thread

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/thread-watch-api/internal/models"
	"github.com/thread-watch-api/internal/reddit"
)

// ErrCycleDiscarded is returned when a cycle completes after the session
// was stopped or re-targeted; its result was not applied.
var ErrCycleDiscarded = errors.New("cycle result discarded: session was reset")

// Fetcher is the injected fetch capability. The concrete implementation
// is reddit.Client; tests substitute their own.
type Fetcher interface {
	FetchThread(ctx context.Context, locator string) (*reddit.Payload, error)
}

// CycleResult is what one committed fetch→parse→merge pass produced.
// NewCommentIDs holds the identifiers this session had never observed
// before the cycle's parse; highlighted nodes from earlier cycles are
// not in it, so consumers counting per id never count a comment twice.
type CycleResult struct {
	NewCommentCount int
	NewCommentIDs   map[string]struct{}
	Comments        []models.Comment
	Thread          models.ThreadMeta
	Stats           models.CommentStats
}

// Snapshot is the read-only view of session state handed to consumers
// after each cycle. The comment tree is value-built and never mutated
// in place, so holding it across later cycles is safe.
type Snapshot struct {
	Comments  []models.Comment
	Thread    *models.ThreadMeta
	Stats     models.CommentStats
	LastFetch time.Time
	Err       error
	Watching  bool
}

// Config tunes a session's timers.
type Config struct {
	// Interval between polling cycles while watching.
	Interval time.Duration
	// HighlightWindow is how long freshly observed comments keep their
	// novelty flag before the decay timer clears it.
	HighlightWindow time.Duration
}

// Session owns the authoritative comment tree for one thread
// subscription and drives repeated fetch→parse→merge cycles on a timer.
// Cycles never overlap: the polling loop runs them sequentially and
// out-of-band refreshes share the same run lock.
type Session struct {
	fetcher Fetcher
	log     zerolog.Logger
	onCycle func(CycleResult)

	// runMu serializes cycles across the loop and RunCycleOnce.
	runMu sync.Mutex

	mu         sync.Mutex
	locator    string
	interval   time.Duration
	highlight  time.Duration
	comments   []models.Comment
	meta       *models.ThreadMeta
	stats      models.CommentStats
	seen       map[string]struct{}
	lastFetch  time.Time
	lastErr    error
	generation uint64
	watching   bool
	cancelLoop context.CancelFunc
	decay      *time.Timer
}

// NewSession creates an idle session for a normalized thread locator.
// onCycle, if non-nil, runs after every committed cycle.
func NewSession(locator string, fetcher Fetcher, cfg Config, log zerolog.Logger, onCycle func(CycleResult)) *Session {
	return &Session{
		fetcher:   fetcher,
		log:       log.With().Str("component", "session").Str("locator", locator).Logger(),
		onCycle:   onCycle,
		locator:   locator,
		interval:  cfg.Interval,
		highlight: cfg.HighlightWindow,
		seen:      make(map[string]struct{}),
	}
}

// Start moves the session from Idle to Watching: it runs one cycle
// immediately and then keeps polling until Stop or context cancellation.
func (s *Session) Start(ctx context.Context) {
	s.mu.Lock()
	if s.watching {
		s.mu.Unlock()
		return
	}
	loopCtx, cancel := context.WithCancel(ctx)
	s.cancelLoop = cancel
	s.watching = true
	s.mu.Unlock()

	go s.loop(loopCtx)
}

// Stop cancels the polling loop and the pending decay timer and bumps
// the generation so any in-flight cycle is discarded on completion.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancelLoop != nil {
		s.cancelLoop()
		s.cancelLoop = nil
	}
	if s.decay != nil {
		s.decay.Stop()
		s.decay = nil
	}
	s.watching = false
	s.generation++
}

// SetInterval changes the polling cadence. The loop picks the new value
// up before its next wait; no state is reset.
func (s *Session) SetInterval(d time.Duration) {
	s.mu.Lock()
	s.interval = d
	s.mu.Unlock()
}

// SetLocator re-targets the session at a different thread. This is a
// hard reset: the held tree, thread metadata, statistics and the
// ever-observed id set are cleared atomically, the decay timer is
// cancelled, and any in-flight cycle for the old locator is discarded.
func (s *Session) SetLocator(locator string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if locator == s.locator {
		return
	}
	if s.decay != nil {
		s.decay.Stop()
		s.decay = nil
	}
	s.generation++
	s.locator = locator
	s.comments = nil
	s.meta = nil
	s.stats = models.CommentStats{}
	s.seen = make(map[string]struct{})
	s.lastFetch = time.Time{}
	s.lastErr = nil
	s.log = s.log.With().Str("locator", locator).Logger()
}

// Locator returns the thread locator the session currently targets.
func (s *Session) Locator() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locator
}

// Watching reports whether the polling loop is active.
func (s *Session) Watching() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.watching
}

// Snapshot returns the current read-only view of the session.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Comments:  s.comments,
		Thread:    s.meta,
		Stats:     s.stats,
		LastFetch: s.lastFetch,
		Err:       s.lastErr,
		Watching:  s.watching,
	}
}

func (s *Session) loop(ctx context.Context) {
	s.runCycle(ctx)
	for {
		s.mu.Lock()
		interval := s.interval
		s.mu.Unlock()

		select {
		case <-ctx.Done():
			return
		case <-time.After(interval):
			s.runCycle(ctx)
		}
	}
}

func (s *Session) runCycle(ctx context.Context) {
	if _, err := s.RunCycleOnce(ctx); err != nil && !errors.Is(err, ErrCycleDiscarded) {
		s.log.Warn().Err(err).Msg("Cycle failed, keeping last-good tree")
	}
}

// RunCycleOnce performs one fetch→parse→merge pass and commits the
// result if the session was not stopped or re-targeted while the fetch
// was in flight. On fetch or payload-shape failure the held tree and
// statistics stay untouched and the error becomes the session's current
// error state.
func (s *Session) RunCycleOnce(ctx context.Context) (CycleResult, error) {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	s.mu.Lock()
	locator := s.locator
	gen := s.generation
	// Parse tags nodes against every identifier ever observed this
	// session, not just those in the current tree, so a comment the
	// source stopped returning is not re-discovered as new later.
	seenBefore := make(map[string]struct{}, len(s.seen))
	for id := range s.seen {
		seenBefore[id] = struct{}{}
	}
	s.mu.Unlock()

	payload, err := s.fetcher.FetchThread(ctx, locator)
	if err != nil {
		s.recordError(gen, err)
		return CycleResult{}, err
	}

	parsed := reddit.ParseComments(payload.Children, seenBefore)

	s.mu.Lock()
	if s.generation != gen {
		s.mu.Unlock()
		return CycleResult{}, ErrCycleDiscarded
	}

	merged := Merge(s.comments, parsed)

	mergedIDs := make(map[string]struct{}, len(seenBefore))
	CollectIDs(merged, mergedIDs)
	newIDs := make(map[string]struct{})
	for id := range mergedIDs {
		if _, ok := seenBefore[id]; !ok {
			newIDs[id] = struct{}{}
		}
	}
	newCount := len(newIDs)

	meta := payload.Meta
	stats := models.CommentStats{
		DisplayedCount: len(mergedIDs),
		TotalCount:     meta.NumComments,
	}

	// Tree, ever-seen set and decay timer move together.
	s.comments = merged
	s.meta = &meta
	s.stats = stats
	for id := range mergedIDs {
		s.seen[id] = struct{}{}
	}
	s.lastFetch = time.Now()
	s.lastErr = nil
	if newCount > 0 {
		s.armDecayLocked(gen)
	}
	s.mu.Unlock()

	result := CycleResult{
		NewCommentCount: newCount,
		NewCommentIDs:   newIDs,
		Comments:        merged,
		Thread:          meta,
		Stats:           stats,
	}

	s.log.Debug().
		Int("new_comments", newCount).
		Int("displayed", stats.DisplayedCount).
		Int("total", stats.TotalCount).
		Msg("Cycle committed")

	if s.onCycle != nil {
		s.onCycle(result)
	}
	return result, nil
}

// armDecayLocked (re)arms the single decay timer. After the highlight
// window the whole held tree loses its novelty flags, unless the session
// was stopped or re-targeted in the meantime.
func (s *Session) armDecayLocked(gen uint64) {
	if s.decay != nil {
		s.decay.Stop()
	}
	s.decay = time.AfterFunc(s.highlight, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.generation != gen {
			return
		}
		s.comments = ClearNew(s.comments)
	})
}

func (s *Session) recordError(gen uint64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != gen {
		return
	}
	s.lastErr = err
}
