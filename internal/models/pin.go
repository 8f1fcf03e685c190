package models

import (
	"time"
)

// PinnedComment marks a comment a client wants kept at the top of a
// thread view. Pins are scoped per thread.
type PinnedComment struct {
	ThreadID  string    `json:"thread_id" db:"thread_id"`
	CommentID string    `json:"comment_id" db:"comment_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// PinCommentRequest is the body for POST /v1/threads/:thread_id/pins.
type PinCommentRequest struct {
	CommentID string `json:"comment_id"`
}
