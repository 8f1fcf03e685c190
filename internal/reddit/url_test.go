package reddit

import (
	"errors"
	"testing"
)

func TestNormalizeThreadURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "bare reddit.com rewritten to canonical host",
			input: "https://reddit.com/r/golang/comments/abc123/title",
			want:  "https://www.reddit.com/r/golang/comments/abc123/title",
		},
		{
			name:  "canonical host unchanged",
			input: "https://www.reddit.com/r/golang/comments/abc123/title",
			want:  "https://www.reddit.com/r/golang/comments/abc123/title",
		},
		{
			name:  "mirror host with thread path rewritten",
			input: "https://reddit-now.com/r/golang/comments/abc123/title",
			want:  "https://www.reddit.com/r/golang/comments/abc123/title",
		},
		{
			name:  "www mirror host with thread path rewritten",
			input: "https://www.reddit-now.com/r/golang/comments/abc123",
			want:  "https://www.reddit.com/r/golang/comments/abc123",
		},
		{
			name:  "localhost with thread path rewritten and upgraded to https",
			input: "http://localhost:3000/r/golang/comments/abc123",
			want:  "https://www.reddit.com/r/golang/comments/abc123",
		},
		{
			name:  "mirror host without thread path passes through",
			input: "https://reddit-now.com/about",
			want:  "https://reddit-now.com/about",
		},
		{
			name:  "unrelated host passes through",
			input: "https://example.com/r/golang/comments/abc123",
			want:  "https://example.com/r/golang/comments/abc123",
		},
		{
			name:  "query and fragment preserved through rewrite",
			input: "https://reddit.com/r/golang/comments/abc123?context=3",
			want:  "https://www.reddit.com/r/golang/comments/abc123?context=3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeThreadURL(tt.input)
			if err != nil {
				t.Fatalf("NormalizeThreadURL(%q) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("NormalizeThreadURL(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeThreadURLDeterministic(t *testing.T) {
	input := "https://reddit.com/r/golang/comments/abc123/title"
	first, err := NormalizeThreadURL(input)
	if err != nil {
		t.Fatalf("NormalizeThreadURL failed: %v", err)
	}
	second, err := NormalizeThreadURL(first)
	if err != nil {
		t.Fatalf("NormalizeThreadURL of own output failed: %v", err)
	}
	if first != second {
		t.Errorf("normalization is not idempotent: %q then %q", first, second)
	}
}

func TestNormalizeThreadURLRejectsMalformed(t *testing.T) {
	for _, input := range []string{
		"",
		"not a url",
		"/r/golang/comments/abc123",
		"ftp://reddit.com/r/golang/comments/abc123",
	} {
		if _, err := NormalizeThreadURL(input); !errors.Is(err, ErrInvalidThreadURL) {
			t.Errorf("NormalizeThreadURL(%q): expected ErrInvalidThreadURL, got %v", input, err)
		}
	}
}

func TestIsValidThreadURL(t *testing.T) {
	valid := []string{
		"https://www.reddit.com/r/golang/comments/abc123",
		"https://reddit.com/r/golang/comments/abc123/some-title",
		"https://reddit-now.com/r/golang/comments/abc123",
	}
	for _, u := range valid {
		if !IsValidThreadURL(u) {
			t.Errorf("IsValidThreadURL(%q) = false, want true", u)
		}
	}

	invalid := []string{
		"https://www.reddit.com/r/golang",
		"https://www.reddit.com/user/someone",
		"https://example.com/r/golang/comments/abc123",
		"nonsense",
	}
	for _, u := range invalid {
		if IsValidThreadURL(u) {
			t.Errorf("IsValidThreadURL(%q) = true, want false", u)
		}
	}
}

func TestFetchURL(t *testing.T) {
	got, err := FetchURL("https://www.reddit.com/r/golang/comments/abc123/title/", 200)
	if err != nil {
		t.Fatalf("FetchURL failed: %v", err)
	}
	want := "https://www.reddit.com/r/golang/comments/abc123/title.json?limit=200&raw_json=1&sort=new"
	if got != want {
		t.Errorf("FetchURL = %q, want %q", got, want)
	}
}

func TestFetchURLDefaultsLimit(t *testing.T) {
	got, err := FetchURL("https://www.reddit.com/r/golang/comments/abc123", 0)
	if err != nil {
		t.Fatalf("FetchURL failed: %v", err)
	}
	want := "https://www.reddit.com/r/golang/comments/abc123.json?limit=500&raw_json=1&sort=new"
	if got != want {
		t.Errorf("FetchURL = %q, want %q", got, want)
	}
}

func TestFetchURLReplacesExistingQuery(t *testing.T) {
	got, err := FetchURL("https://www.reddit.com/r/golang/comments/abc123?context=3", 100)
	if err != nil {
		t.Fatalf("FetchURL failed: %v", err)
	}
	want := "https://www.reddit.com/r/golang/comments/abc123.json?limit=100&raw_json=1&sort=new"
	if got != want {
		t.Errorf("FetchURL = %q, want %q", got, want)
	}
}

func TestParseThreadPath(t *testing.T) {
	tp, err := ParseThreadPath("https://www.reddit.com/r/golang/comments/abc123/some-title/")
	if err != nil {
		t.Fatalf("ParseThreadPath failed: %v", err)
	}
	if tp.Subreddit != "golang" || tp.ThreadID != "abc123" || tp.Slug != "some-title" {
		t.Errorf("unexpected thread path: %+v", tp)
	}

	tp, err = ParseThreadPath("https://www.reddit.com/r/golang/comments/abc123")
	if err != nil {
		t.Fatalf("ParseThreadPath without slug failed: %v", err)
	}
	if tp.Slug != "" {
		t.Errorf("expected empty slug, got %q", tp.Slug)
	}

	if _, err := ParseThreadPath("https://www.reddit.com/r/golang"); !errors.Is(err, ErrInvalidThreadURL) {
		t.Errorf("expected ErrInvalidThreadURL for a non-thread path, got %v", err)
	}
}
