package models

import (
	"time"
)

// WatchState is the lifecycle state of a thread subscription.
type WatchState string

const (
	WatchStateIdle     WatchState = "idle"
	WatchStateWatching WatchState = "watching"
)

// Watch is one live thread subscription.
type Watch struct {
	ID            string        `json:"watch_id"`
	URL           string        `json:"url"`
	Interval      time.Duration `json:"-"`
	IntervalLabel string        `json:"interval"`
	ExpandReplies bool          `json:"expand_replies"`
	State         WatchState    `json:"state"`
	CreatedAt     time.Time     `json:"created_at"`
}

// WatchSnapshot is the read-only view of a watch exposed after each cycle.
// Comments must never be mutated by consumers.
type WatchSnapshot struct {
	Watch
	Thread    *ThreadMeta  `json:"thread,omitempty"`
	Comments  []Comment    `json:"comments"`
	Stats     CommentStats `json:"stats"`
	LastFetch *time.Time   `json:"last_fetch,omitempty"`
	Error     string       `json:"error,omitempty"`
}

// CreateWatchRequest is the body for POST /v1/watches.
type CreateWatchRequest struct {
	URL           string `json:"url"`
	Interval      string `json:"interval,omitempty"`
	ExpandReplies *bool  `json:"expand_replies,omitempty"`
}

// UpdateWatchRequest is the body for PATCH /v1/watches/:watch_id.
// A URL change is a hard reset of the underlying session.
type UpdateWatchRequest struct {
	URL           string `json:"url,omitempty"`
	Interval      string `json:"interval,omitempty"`
	ExpandReplies *bool  `json:"expand_replies,omitempty"`
}
