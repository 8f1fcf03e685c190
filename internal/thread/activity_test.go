package thread

import (
	"testing"

	"github.com/thread-watch-api/internal/models"
)

func idSet(ids ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func authored(id, author string, isNew bool, replies ...models.Comment) models.Comment {
	return models.Comment{ID: id, Author: author, IsNew: isNew, Replies: replies}
}

func TestNewActivityCountsFirstSeenCommentsByWatchedAuthors(t *testing.T) {
	tree := []models.Comment{
		authored("a", "alice", true,
			authored("a1", "bob", true),
			authored("a2", "alice", false),
		),
		authored("b", "carol", true),
		authored("c", "alice", true),
	}

	counts := NewActivity(tree, idSet("alice", "bob"), idSet("a", "a1", "b", "c"))

	if counts["alice"] != 2 {
		t.Errorf("alice: expected 2 (a2 was not first seen this cycle), got %d", counts["alice"])
	}
	if counts["bob"] != 1 {
		t.Errorf("bob: expected 1, got %d", counts["bob"])
	}
	if _, ok := counts["carol"]; ok {
		t.Errorf("carol is not watched, must not appear in counts")
	}
}

func TestNewActivityEmptyWatchlist(t *testing.T) {
	tree := []models.Comment{authored("a", "alice", true)}
	if counts := NewActivity(tree, nil, idSet("a")); len(counts) != 0 {
		t.Errorf("expected no counts with an empty watchlist, got %v", counts)
	}
}

func TestNewActivityIgnoresHighlightedButAlreadySeen(t *testing.T) {
	// A later cycle inside the highlight window: a and b still carry the
	// highlight flag from their discovery, only c is first seen now.
	tree := []models.Comment{
		authored("a", "alice", true),
		authored("b", "alice", true),
		authored("c", "alice", true),
	}

	counts := NewActivity(tree, idSet("alice"), idSet("c"))
	if counts["alice"] != 1 {
		t.Errorf("expected only the first-seen comment counted, got %d", counts["alice"])
	}
}

func TestNewActivityNothingFirstSeen(t *testing.T) {
	tree := []models.Comment{
		authored("a", "alice", true),
		authored("b", "alice", true),
	}
	if counts := NewActivity(tree, idSet("alice"), nil); len(counts) != 0 {
		t.Errorf("expected no activity when no ids are first seen, got %v", counts)
	}
}
