package reddit

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// CanonicalHost serves the JSON listing endpoints.
const CanonicalHost = "www.reddit.com"

// Hosts whose thread paths are rewritten to the canonical API host.
// localhost is included so locally proxied URLs work during testing.
var mirrorHosts = map[string]bool{
	"reddit-now.com":     true,
	"www.reddit-now.com": true,
	"localhost":          true,
}

var threadPathPattern = regexp.MustCompile(`^/r/[^/]+/comments/[A-Za-z0-9]+`)

// ThreadPath identifies a thread extracted from a locator's path.
type ThreadPath struct {
	Subreddit string
	ThreadID  string
	Slug      string
}

// NormalizeThreadURL converts a user-supplied or route-derived thread URL
// into a canonical fetchable locator. Bare reddit.com hosts are rewritten
// to the canonical host; mirror hosts are rewritten when their path
// already looks like a thread path; any other host is returned unchanged
// and the caller must still validate it.
func NormalizeThreadURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return "", fmt.Errorf("%w: %q", ErrInvalidThreadURL, raw)
	}

	host := u.Hostname()
	switch {
	case host == "reddit.com":
		u.Scheme = "https"
		u.Host = CanonicalHost
		return u.String(), nil
	case mirrorHosts[host] && threadPathPattern.MatchString(u.Path):
		u.Scheme = "https"
		u.Host = CanonicalHost
		return u.String(), nil
	}
	return raw, nil
}

// IsValidThreadURL reports whether the URL points at a thread on a host
// this service knows how to fetch.
func IsValidThreadURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	host := u.Hostname()
	if host != "reddit.com" && host != CanonicalHost && !mirrorHosts[host] {
		return false
	}
	return threadPathPattern.MatchString(u.Path)
}

// FetchURL builds the JSON listing URL for a normalized locator: the
// path gains a .json suffix plus newest-first sort, a page-size cap and
// the raw_json flag so bodies arrive unescaped. Any query on the input
// is replaced. No depth parameter is requested; the merge layer relies
// on full-depth responses to refresh deep branches.
func FetchURL(locator string, limit int) (string, error) {
	u, err := url.Parse(locator)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidThreadURL, locator)
	}
	if limit <= 0 {
		limit = DefaultCommentLimit
	}

	u.Path = strings.TrimSuffix(u.Path, "/") + ".json"
	q := url.Values{}
	q.Set("sort", "new")
	q.Set("limit", fmt.Sprintf("%d", limit))
	q.Set("raw_json", "1")
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// ParseThreadPath extracts subreddit, thread id and slug from a thread
// URL's path.
func ParseThreadPath(raw string) (ThreadPath, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return ThreadPath{}, fmt.Errorf("%w: %q", ErrInvalidThreadURL, raw)
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 4 || parts[0] != "r" || parts[2] != "comments" {
		return ThreadPath{}, fmt.Errorf("%w: not a thread path: %q", ErrInvalidThreadURL, u.Path)
	}

	tp := ThreadPath{
		Subreddit: parts[1],
		ThreadID:  parts[3],
	}
	if len(parts) > 4 {
		tp.Slug = parts[4]
	}
	return tp, nil
}
