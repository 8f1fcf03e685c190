package thread

import (
	"github.com/thread-watch-api/internal/models"
)

// NewActivity walks a merged tree once and counts, per watched author,
// the nodes whose ids a cycle observed for the first time. The return
// value is only this cycle's delta; accumulation and clearing belong to
// the caller. Counting by first observation rather than the highlight
// flag keeps a node from contributing again when an out-of-band refresh
// lands while it is still highlighted.
func NewActivity(comments []models.Comment, watched, firstSeen map[string]struct{}) map[string]int {
	delta := make(map[string]int)
	walkActivity(comments, watched, firstSeen, delta)
	return delta
}

func walkActivity(comments []models.Comment, watched, firstSeen map[string]struct{}, delta map[string]int) {
	for _, node := range comments {
		if _, ok := firstSeen[node.ID]; ok {
			if _, ok := watched[node.Author]; ok {
				delta[node.Author]++
			}
		}
		walkActivity(node.Replies, watched, firstSeen, delta)
	}
}
