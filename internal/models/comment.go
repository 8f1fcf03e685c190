package models

import (
	"sort"
)

// DeletedAuthor is the sentinel Reddit reports for removed accounts.
const DeletedAuthor = "[deleted]"

// Comment is a single node in a thread's comment tree. Identity is the
// upstream-assigned ID; IsNew is transient highlight state and not part
// of identity.
type Comment struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	Score     int       `json:"score"`
	Created   float64   `json:"created"`
	Permalink string    `json:"permalink,omitempty"`
	IsNew     bool      `json:"is_new"`
	Replies   []Comment `json:"replies,omitempty"`
}

// ThreadMeta describes the root thread, parsed once per fetch cycle from
// the listing that accompanies the comment payload.
type ThreadMeta struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Subreddit   string  `json:"subreddit"`
	SelfText    string  `json:"selftext,omitempty"`
	Score       int     `json:"score"`
	UpvoteRatio float64 `json:"upvote_ratio"`
	NumComments int     `json:"num_comments"`
	Permalink   string  `json:"permalink,omitempty"`
	Created     float64 `json:"created"`
	NSFW        bool    `json:"nsfw"`
	Spoiler     bool    `json:"spoiler"`
}

// SortByCreatedDesc orders comments newest first, the ordering
// invariant every parse and merge result upholds.
func SortByCreatedDesc(comments []Comment) {
	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].Created > comments[j].Created
	})
}

// CountComments returns the flattened node count of a tree.
func CountComments(comments []Comment) int {
	n := len(comments)
	for _, c := range comments {
		n += CountComments(c.Replies)
	}
	return n
}

// CommentStats compares what the merged tree holds against what the
// upstream reports. TotalCount can exceed DisplayedCount because Reddit
// caps how many comments one listing returns.
type CommentStats struct {
	DisplayedCount int `json:"displayed_count"`
	TotalCount     int `json:"total_count"`
}
