package thread

import (
	"reflect"
	"testing"

	"github.com/thread-watch-api/internal/models"
)

func comment(id string, created float64, isNew bool, replies ...models.Comment) models.Comment {
	return models.Comment{
		ID:      id,
		Author:  "author-" + id,
		Content: "body-" + id,
		Score:   1,
		Created: created,
		IsNew:   isNew,
		Replies: replies,
	}
}

func ids(comments []models.Comment) []string {
	out := make([]string, 0, len(comments))
	for _, c := range comments {
		out = append(out, c.ID)
	}
	return out
}

func TestMergeEmptyPrevious(t *testing.T) {
	incoming := []models.Comment{
		comment("a", 100, false),
		comment("b", 300, false),
		comment("c", 200, false),
	}

	merged := Merge(nil, incoming)

	if got, want := ids(merged), []string{"b", "c", "a"}; !reflect.DeepEqual(got, want) {
		t.Errorf("expected order %v, got %v", want, got)
	}
	for _, c := range merged {
		if !c.IsNew {
			t.Errorf("comment %s: expected IsNew forced true on first merge", c.ID)
		}
	}
}

func TestMergeEmptyIncoming(t *testing.T) {
	previous := []models.Comment{
		comment("a", 200, true, comment("r", 210, false)),
		comment("b", 100, false),
	}

	merged := Merge(previous, nil)

	if !reflect.DeepEqual(merged, previous) {
		t.Errorf("merge with empty incoming must return previous unchanged")
	}
}

func TestMergeForcesNoveltyRecursively(t *testing.T) {
	incoming := []models.Comment{
		comment("a", 100, false,
			comment("a1", 110, false,
				comment("a1x", 120, false))),
	}

	merged := Merge(nil, incoming)

	var check func([]models.Comment)
	check = func(nodes []models.Comment) {
		for _, n := range nodes {
			if !n.IsNew {
				t.Errorf("node %s: expected IsNew true at every depth", n.ID)
			}
			check(n.Replies)
		}
	}
	check(merged)
}

func TestMergeUpdatesScalarsKeepsNovelty(t *testing.T) {
	previous := []models.Comment{comment("a", 100, true)}

	updated := comment("a", 100, false)
	updated.Score = 7
	updated.Content = "edited"

	merged := Merge(previous, []models.Comment{updated})

	if len(merged) != 1 {
		t.Fatalf("expected 1 comment, got %d", len(merged))
	}
	if merged[0].Score != 7 {
		t.Errorf("expected updated score 7, got %d", merged[0].Score)
	}
	if merged[0].Content != "edited" {
		t.Errorf("expected updated content, got %q", merged[0].Content)
	}
	if !merged[0].IsNew {
		t.Errorf("novelty must survive a merge step; only decay clears it")
	}
}

func TestMergeUnionKeepsRepliesFromShallowRefetch(t *testing.T) {
	previous := []models.Comment{
		comment("c1", 100, false, comment("r1", 110, false)),
	}

	// Re-fetch echoes c1 with a changed score and no replies.
	refetched := comment("c1", 100, false)
	refetched.Score = 7

	merged := Merge(previous, []models.Comment{refetched})

	if len(merged) != 1 || merged[0].ID != "c1" {
		t.Fatalf("expected only c1 at top level, got %v", ids(merged))
	}
	if merged[0].Score != 7 {
		t.Errorf("expected score 7, got %d", merged[0].Score)
	}
	if len(merged[0].Replies) != 1 || merged[0].Replies[0].ID != "r1" {
		t.Errorf("reply r1 must be retained, got %v", ids(merged[0].Replies))
	}
}

func TestMergeIdempotent(t *testing.T) {
	previous := []models.Comment{
		comment("a", 300, false, comment("a1", 310, false)),
		comment("b", 100, false),
	}
	incoming := []models.Comment{
		comment("a", 300, false, comment("a2", 320, true)),
		comment("c", 200, true),
	}

	once := Merge(previous, incoming)
	twice := Merge(once, incoming)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("re-merging the same batch must not change the tree:\nonce:  %+v\ntwice: %+v", once, twice)
	}
}

func TestMergeSortInvariant(t *testing.T) {
	previous := []models.Comment{
		comment("old", 50, false, comment("oldreply", 55, false)),
	}
	incoming := []models.Comment{
		comment("mid", 150, false),
		comment("new", 250, false,
			comment("r-low", 251, false),
			comment("r-high", 260, false)),
	}

	merged := Merge(previous, incoming)

	var check func(string, []models.Comment)
	check = func(where string, nodes []models.Comment) {
		for i := 1; i < len(nodes); i++ {
			if nodes[i-1].Created < nodes[i].Created {
				t.Errorf("%s: not sorted descending at index %d", where, i)
			}
		}
		for _, n := range nodes {
			check(n.ID, n.Replies)
		}
	}
	check("top", merged)
}

func TestMergeDuplicateIDInIncoming(t *testing.T) {
	first := comment("a", 100, false)
	first.Score = 1
	second := comment("a", 100, false)
	second.Score = 9

	merged := Merge(nil, []models.Comment{first, second})

	if len(merged) != 1 {
		t.Fatalf("duplicate ids must collapse to one node, got %d", len(merged))
	}
	if merged[0].Score != 9 {
		t.Errorf("last occurrence must win, got score %d", merged[0].Score)
	}
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	previous := []models.Comment{
		comment("a", 100, true, comment("r", 110, true)),
	}
	incoming := []models.Comment{
		comment("a", 100, false, comment("r2", 120, false)),
	}

	prevCopy := []models.Comment{
		comment("a", 100, true, comment("r", 110, true)),
	}
	incomingCopy := []models.Comment{
		comment("a", 100, false, comment("r2", 120, false)),
	}

	Merge(previous, incoming)

	if !reflect.DeepEqual(previous, prevCopy) {
		t.Errorf("previous tree was mutated by merge")
	}
	if !reflect.DeepEqual(incoming, incomingCopy) {
		t.Errorf("incoming tree was mutated by merge")
	}
}

func TestClearNew(t *testing.T) {
	tree := []models.Comment{
		comment("a", 200, true, comment("a1", 210, true)),
		comment("b", 100, false),
	}

	cleared := ClearNew(tree)

	var check func([]models.Comment)
	check = func(nodes []models.Comment) {
		for _, n := range nodes {
			if n.IsNew {
				t.Errorf("node %s: expected IsNew false after clear", n.ID)
			}
			check(n.Replies)
		}
	}
	check(cleared)

	// Original keeps its flags.
	if !tree[0].IsNew || !tree[0].Replies[0].IsNew {
		t.Errorf("ClearNew must not mutate its input")
	}
}

func TestCollectIDs(t *testing.T) {
	tree := []models.Comment{
		comment("a", 200, false, comment("a1", 210, false)),
		comment("b", 100, false),
	}

	got := make(map[string]struct{})
	CollectIDs(tree, got)

	for _, id := range []string{"a", "a1", "b"} {
		if _, ok := got[id]; !ok {
			t.Errorf("missing id %s", id)
		}
	}
	if len(got) != 3 {
		t.Errorf("expected 3 ids, got %d", len(got))
	}
}
