// Package thread holds the incremental comment-tree synchronization
// engine: the pure merge algorithm, the polling session that drives it,
// and the watched-author activity walk over its results.
package thread

import (
	"github.com/thread-watch-api/internal/models"
)

// Merge combines a previously held comment tree with a freshly parsed
// one. Node identity is the upstream id: a node present on both sides
// keeps its slot, takes the incoming scalar fields (score and content
// may have changed), keeps novelty once set (IsNew ORs together; only
// the decay timer clears it), and has its replies merged recursively.
// A node absent from previous is inserted with IsNew forced true all
// the way down. Children present only in previous are retained, so a
// shallow re-fetch never drops deep branches: the merge is a union over
// children, not a replacement. Every level of the result is sorted by
// creation time descending.
//
// Neither input is mutated; callers may keep reading the previous tree
// while the merge computes the next one. If an id appears twice within
// one incoming batch the last occurrence's scalars win.
func Merge(previous, incoming []models.Comment) []models.Comment {
	if len(incoming) == 0 {
		return previous
	}

	order := make([]string, 0, len(previous)+len(incoming))
	index := make(map[string]models.Comment, len(previous)+len(incoming))

	for _, node := range previous {
		if _, ok := index[node.ID]; !ok {
			order = append(order, node.ID)
		}
		index[node.ID] = node
	}

	for _, node := range incoming {
		existing, ok := index[node.ID]
		if !ok {
			inserted := node
			inserted.IsNew = true
			inserted.Replies = Merge(nil, node.Replies)
			index[node.ID] = inserted
			order = append(order, node.ID)
			continue
		}

		merged := node
		merged.IsNew = existing.IsNew || node.IsNew
		merged.Replies = Merge(existing.Replies, node.Replies)
		index[node.ID] = merged
	}

	out := make([]models.Comment, 0, len(order))
	for _, id := range order {
		out = append(out, index[id])
	}
	models.SortByCreatedDesc(out)
	return out
}

// ClearNew returns a copy of the tree with every node's novelty flag
// cleared. Used by the decay timer; the input is not touched.
func ClearNew(comments []models.Comment) []models.Comment {
	if len(comments) == 0 {
		return comments
	}
	out := make([]models.Comment, 0, len(comments))
	for _, node := range comments {
		cleared := node
		cleared.IsNew = false
		cleared.Replies = ClearNew(node.Replies)
		out = append(out, cleared)
	}
	return out
}

// CollectIDs adds every identifier in the tree to the given set.
func CollectIDs(comments []models.Comment, into map[string]struct{}) {
	for _, node := range comments {
		into[node.ID] = struct{}{}
		CollectIDs(node.Replies, into)
	}
}
