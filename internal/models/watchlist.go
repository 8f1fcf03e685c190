package models

import (
	"time"
)

// WatchedUser is an author on the persisted watch list.
type WatchedUser struct {
	Username  string    `json:"username" db:"username"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// UserActivity is the accumulated new-comment count for one watched
// author since it was last cleared.
type UserActivity struct {
	Username string `json:"username"`
	NewCount int    `json:"new_count"`
}

// WatchUserRequest is the body for POST /v1/watchlist.
type WatchUserRequest struct {
	Username string `json:"username"`
}
