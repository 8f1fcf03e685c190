package reddit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/thread-watch-api/internal/config"
	"github.com/thread-watch-api/internal/models"
)

// DefaultCommentLimit is the page-size cap requested from the listing
// endpoint. Reddit accepts up to 500; lower values trade completeness
// against payload size.
const DefaultCommentLimit = 500

// Error taxonomy for a fetch cycle. Not-found is kept distinct because
// it is user-actionable (thread deleted, private or never existed);
// every other non-success status collapses into ErrFetchFailed.
var (
	ErrInvalidThreadURL = errors.New("invalid thread url")
	ErrThreadNotFound   = errors.New("thread not found")
	ErrFetchFailed      = errors.New("thread fetch failed")
	ErrBadPayload       = errors.New("unexpected thread payload shape")
)

// Payload is one raw fetch result: the thread record from the first
// listing plus the untouched comment-listing children for the parser.
type Payload struct {
	Meta     models.ThreadMeta
	Children []Thing
}

// Client fetches thread listings over HTTP.
type Client struct {
	http      *http.Client
	userAgent string
	limit     int
	log       zerolog.Logger
}

// NewClient creates a Reddit listing client.
func NewClient(cfg *config.RedditConfig, log zerolog.Logger) *Client {
	return &Client{
		http:      &http.Client{Timeout: cfg.RequestTimeout},
		userAgent: cfg.UserAgent,
		limit:     cfg.CommentLimit,
		log:       log.With().Str("component", "reddit").Logger(),
	}
}

// FetchThread retrieves and decodes the two-part listing payload for a
// normalized thread locator.
func (c *Client) FetchThread(ctx context.Context, locator string) (*Payload, error) {
	fetchURL, err := FetchURL(locator, c.limit)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fetchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	// Reddit rejects anonymous clients.
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: status %d", ErrThreadNotFound, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: status %d", ErrFetchFailed, resp.StatusCode)
	}

	var parts []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&parts); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	if len(parts) < 2 {
		return nil, fmt.Errorf("%w: expected two listings, got %d", ErrBadPayload, len(parts))
	}

	var threadListing, commentListing listing
	if err := json.Unmarshal(parts[0], &threadListing); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	if err := json.Unmarshal(parts[1], &commentListing); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}

	meta, err := parseThreadMeta(threadListing.Data.Children)
	if err != nil {
		return nil, fmt.Errorf("%w: missing thread record", ErrBadPayload)
	}

	c.log.Debug().
		Str("thread_id", meta.ID).
		Int("children", len(commentListing.Data.Children)).
		Msg("Fetched thread listing")

	return &Payload{
		Meta:     *meta,
		Children: commentListing.Data.Children,
	}, nil
}
