package reddit

import (
	"encoding/json"
)

// Listing kinds Reddit uses in the thread JSON endpoint.
const (
	kindComment = "t1"
	kindThread  = "t3"
)

// Thing is one element of a listing's children array. Data stays raw
// until the kind is known.
type Thing struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}

type listing struct {
	Kind string `json:"kind"`
	Data struct {
		Children []Thing `json:"children"`
	} `json:"data"`
}

// commentData is the wire shape of a t1 node. Replies is kept raw
// because Reddit sends an empty string instead of a listing when a
// comment has none.
type commentData struct {
	ID            string                   `json:"id"`
	Author        string                   `json:"author"`
	Body          string                   `json:"body"`
	Score         int                      `json:"score"`
	CreatedUTC    float64                  `json:"created_utc"`
	Permalink     string                   `json:"permalink"`
	Replies       json.RawMessage          `json:"replies"`
	MediaMetadata map[string]mediaMetadata `json:"media_metadata"`
}

// mediaMetadata carries resolved media for inline references. Only
// animated images are interesting here; everything else passes through
// untouched.
type mediaMetadata struct {
	Kind   string `json:"e"`
	Source struct {
		GIF string `json:"gif"`
	} `json:"s"`
}

type threadData struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Subreddit   string  `json:"subreddit"`
	SelfText    string  `json:"selftext"`
	Score       int     `json:"score"`
	UpvoteRatio float64 `json:"upvote_ratio"`
	NumComments int     `json:"num_comments"`
	Permalink   string  `json:"permalink"`
	CreatedUTC  float64 `json:"created_utc"`
	Over18      bool    `json:"over_18"`
	Spoiler     bool    `json:"spoiler"`
}
