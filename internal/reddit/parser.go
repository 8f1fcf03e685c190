package reddit

import (
	"encoding/json"
	"strings"

	"github.com/thread-watch-api/internal/models"
)

// ParseComments converts raw listing children into comment nodes. Only
// t1 things are kept; "more comments" stubs and malformed nodes are
// dropped. knownIDs is the set of identifiers ever observed by the
// calling session: a node absent from it is provisionally new. The same
// set is used at every depth so a known id is never tagged differently
// in a nested reply. The result, and every replies slice inside it, is
// sorted by creation time descending.
func ParseComments(children []Thing, knownIDs map[string]struct{}) []models.Comment {
	out := make([]models.Comment, 0, len(children))
	for _, child := range children {
		if child.Kind != kindComment {
			continue
		}

		var data commentData
		if err := json.Unmarshal(child.Data, &data); err != nil {
			continue
		}
		if data.ID == "" {
			// Upstream payloads are not fully trusted; a node
			// without an identity cannot be merged.
			continue
		}

		_, known := knownIDs[data.ID]
		out = append(out, models.Comment{
			ID:        data.ID,
			Author:    data.Author,
			Content:   resolveInlineGIFs(data.Body, data.MediaMetadata),
			Score:     data.Score,
			Created:   data.CreatedUTC,
			Permalink: data.Permalink,
			IsNew:     !known,
			Replies:   ParseComments(replyChildren(data.Replies), knownIDs),
		})
	}

	models.SortByCreatedDesc(out)
	return out
}

// parseThreadMeta extracts the thread record from the first listing of
// the two-part payload.
func parseThreadMeta(things []Thing) (*models.ThreadMeta, error) {
	for _, t := range things {
		if t.Kind != kindThread {
			continue
		}
		var data threadData
		if err := json.Unmarshal(t.Data, &data); err != nil {
			return nil, ErrBadPayload
		}
		return &models.ThreadMeta{
			ID:          data.ID,
			Title:       data.Title,
			Author:      data.Author,
			Subreddit:   data.Subreddit,
			SelfText:    data.SelfText,
			Score:       data.Score,
			UpvoteRatio: data.UpvoteRatio,
			NumComments: data.NumComments,
			Permalink:   data.Permalink,
			Created:     data.CreatedUTC,
			NSFW:        data.Over18,
			Spoiler:     data.Spoiler,
		}, nil
	}
	return nil, ErrBadPayload
}

// replyChildren unwraps a comment's nested reply listing. Reddit sends
// an empty string when there are no replies, so decode failures mean
// "no children", never an error.
func replyChildren(raw json.RawMessage) []Thing {
	if len(raw) == 0 {
		return nil
	}
	var l listing
	if err := json.Unmarshal(raw, &l); err != nil {
		return nil
	}
	return l.Data.Children
}

// resolveInlineGIFs substitutes ![gif](<key>) references in a body with
// the resolved media URL from the accompanying metadata map. Unmatched
// references are left as-is.
func resolveInlineGIFs(body string, meta map[string]mediaMetadata) string {
	for key, m := range meta {
		if m.Kind == "AnimatedImage" && m.Source.GIF != "" {
			body = strings.ReplaceAll(body, "![gif]("+key+")", "![gif]("+m.Source.GIF+")")
		}
	}
	return body
}
