package reddit

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/thread-watch-api/internal/config"
)

const listingBody = `[
  {"kind": "Listing", "data": {"children": [
    {"kind": "t3", "data": {"id": "abc123", "title": "a thread", "author": "op",
     "subreddit": "golang", "num_comments": 2, "created_utc": 1700000000}}
  ]}},
  {"kind": "Listing", "data": {"children": [
    {"kind": "t1", "data": {"id": "c1", "author": "alice", "body": "first", "score": 5, "created_utc": 1700000100}},
    {"kind": "t1", "data": {"id": "c2", "author": "bob", "body": "second", "score": 1, "created_utc": 1700000200}}
  ]}}
]`

func newTestClient() *Client {
	return NewClient(&config.RedditConfig{
		UserAgent:      "thread-watch-api-test/1.0",
		RequestTimeout: 5 * time.Second,
		CommentLimit:   200,
	}, zerolog.Nop())
}

func TestFetchThread(t *testing.T) {
	var gotPath, gotQuery, gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(listingBody))
	}))
	defer server.Close()

	client := newTestClient()
	payload, err := client.FetchThread(context.Background(), server.URL+"/r/golang/comments/abc123/a-thread")
	if err != nil {
		t.Fatalf("FetchThread failed: %v", err)
	}

	if gotPath != "/r/golang/comments/abc123/a-thread.json" {
		t.Errorf("unexpected request path %q", gotPath)
	}
	if gotQuery != "limit=200&raw_json=1&sort=new" {
		t.Errorf("unexpected query %q", gotQuery)
	}
	if gotUA != "thread-watch-api-test/1.0" {
		t.Errorf("unexpected User-Agent %q", gotUA)
	}

	if payload.Meta.ID != "abc123" || payload.Meta.NumComments != 2 {
		t.Errorf("unexpected thread metadata: %+v", payload.Meta)
	}
	if len(payload.Children) != 2 {
		t.Errorf("expected 2 comment children, got %d", len(payload.Children))
	}
}

func TestFetchThreadNotFound(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusForbidden} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		client := newTestClient()
		_, err := client.FetchThread(context.Background(), server.URL+"/r/golang/comments/gone")
		if !errors.Is(err, ErrThreadNotFound) {
			t.Errorf("status %d: expected ErrThreadNotFound, got %v", status, err)
		}
		server.Close()
	}
}

func TestFetchThreadServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient()
	_, err := client.FetchThread(context.Background(), server.URL+"/r/golang/comments/abc123")
	if !errors.Is(err, ErrFetchFailed) {
		t.Errorf("expected ErrFetchFailed, got %v", err)
	}
}

func TestFetchThreadBadPayload(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "<html>rate limited</html>"},
		{"single listing", `[{"kind": "Listing", "data": {"children": []}}]`},
		{"no thread record", `[{"kind": "Listing", "data": {"children": []}}, {"kind": "Listing", "data": {"children": []}}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := newTestClient()
			_, err := client.FetchThread(context.Background(), server.URL+"/r/golang/comments/abc123")
			if !errors.Is(err, ErrBadPayload) {
				t.Errorf("expected ErrBadPayload, got %v", err)
			}
		})
	}
}

func TestFetchThreadInvalidLocator(t *testing.T) {
	client := newTestClient()
	_, err := client.FetchThread(context.Background(), "::not-a-url")
	if !errors.Is(err, ErrInvalidThreadURL) {
		t.Errorf("expected ErrInvalidThreadURL, got %v", err)
	}
}
