package reader

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	apperrors "ai-news-api/core/errors"
	"ai-news-api/core/interfaces"

	"github.com/PuerkitoBio/goquery"
)

const paragraph = "Researchers unveiled a new language model that reasons over long documents and cites its sources. "

func articlePage() string {
	body := strings.Repeat("<p>"+paragraph+"</p>\n", 12)
	return `<html><head><title>New model</title></head><body>
<nav>Home | Startups | AI</nav>
<article><h1>New model</h1>` + body + `<p>Subscribe to TechCrunch</p></article>
</body></html>`
}

func serve(status int, body string) *mockHTTPClient {
	return &mockHTTPClient{
		getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
			return &mockResponse{statusCode: status, body: body}, nil
		},
	}
}

func TestResolve_ExtractsAndCaches(t *testing.T) {
	var cached []byte
	var ttlSeen time.Duration
	svc := NewService(interfaces.Dependencies{
		HTTPClient: serve(200, articlePage()),
		Cache: &mockCache{
			setFunc: func(ctx context.Context, key string, value []byte, ttl time.Duration) error {
				if key != "reader:https://example.com/a" {
					t.Errorf("cache key = %s", key)
				}
				cached, ttlSeen = value, ttl
				return nil
			},
		},
		Logger: interfaces.NopLogger{},
	})

	text, err := svc.Resolve(context.Background(), "https://example.com/a")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if !strings.Contains(text, "cites its sources") {
		t.Errorf("Resolve text missing article body: %q", text)
	}
	if strings.Contains(text, "Subscribe to TechCrunch") {
		t.Error("boilerplate should be stripped")
	}
	if len([]rune(text)) > MaxContentLength+3 {
		t.Errorf("text length %d exceeds cap", len([]rune(text)))
	}
	if string(cached) != text || ttlSeen != cacheTTL {
		t.Errorf("result not cached as expected (ttl %v)", ttlSeen)
	}
}

func TestResolve_CacheHit(t *testing.T) {
	called := false
	svc := NewService(interfaces.Dependencies{
		HTTPClient: &mockHTTPClient{getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
			called = true
			return nil, errors.New("should not be called")
		}},
		Cache: &mockCache{getFunc: func(ctx context.Context, key string) ([]byte, error) {
			return []byte("cached text"), nil
		}},
	})

	text, err := svc.Resolve(context.Background(), "https://example.com/a")
	if err != nil || text != "cached text" {
		t.Errorf("Resolve = (%q, %v), want cached text", text, err)
	}
	if called {
		t.Error("HTTP client should not be used on a cache hit")
	}
}

func TestResolve_Failures(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		client *mockHTTPClient
	}{
		{"invalid url", "not a url", serve(200, articlePage())},
		{"fetch error", "https://example.com/a", &mockHTTPClient{getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
			return nil, errors.New("connection reset")
		}}},
		{"not found", "https://example.com/a", serve(404, "gone")},
		{"too short", "https://example.com/a", serve(200, "<html><body><p>Short.</p></body></html>")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(interfaces.Dependencies{HTTPClient: tt.client, Logger: interfaces.NopLogger{}})
			text, err := svc.Resolve(context.Background(), tt.url)
			if !apperrors.IsExtraction(err) {
				t.Errorf("Resolve error = %v, want ExtractionError", err)
			}
			if text != "" {
				t.Errorf("Resolve text = %q, want empty", text)
			}
		})
	}
}

func TestExtractWithSelectors(t *testing.T) {
	long := strings.Repeat("Robotics startups raised record funding this quarter. ", 4)
	html := `<html><body>
<script>var x = 1;</script>
<div class="sidebar">Short</div>
<div class="entry-content"><p>` + long + `</p><p>Follow us on Twitter</p></div>
</body></html>`

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatal(err)
	}

	text := extractWithSelectors(doc)
	if !strings.HasPrefix(text, "Robotics startups raised record funding") {
		t.Errorf("extractWithSelectors = %q", text)
	}
	if strings.Contains(text, "Follow us on Twitter") || strings.Contains(text, "var x") {
		t.Errorf("extractWithSelectors kept chrome: %q", text)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 10); got != "short" {
		t.Errorf("Truncate(short) = %q", got)
	}
	if got := Truncate("abcdef", 3); got != "abc..." {
		t.Errorf("Truncate(abcdef, 3) = %q, want abc...", got)
	}
	if got := Truncate("héllo wörld", 5); got != "héllo..." {
		t.Errorf("Truncate should count runes, got %q", got)
	}
}

func TestHTMLToText(t *testing.T) {
	tests := map[string]string{
		"plain text":                          "plain text",
		"<p>Hello <b>AI</b> world</p>":        "Hello AI world",
		"  multiple   \n spaces ":             "multiple spaces",
		"Tom &amp; Jerry":                     "Tom & Jerry",
		"<p>Sign up for TechCrunch</p><p>ok</p>": "ok",
	}
	for input, want := range tests {
		if got := HTMLToText(input); got != want {
			t.Errorf("HTMLToText(%q) = %q, want %q", input, got, want)
		}
	}
}
