package pipeline

import (
	"testing"

	"ai-news-api/core/domain"
)

func TestDeduplicate(t *testing.T) {
	input := []domain.Article{
		{Link: "a", SourceName: "Feed-X"},
		{Link: "b", SourceName: "Feed-X"},
		{Link: "a", SourceName: "Feed-Y"},
		{Link: "c", SourceName: "Feed-Y"},
		{Link: "b", SourceName: "Feed-Y"},
	}

	got := Deduplicate(input)

	want := []struct{ link, source string }{
		{"a", "Feed-X"},
		{"b", "Feed-X"},
		{"c", "Feed-Y"},
	}
	if len(got) != len(want) {
		t.Fatalf("Deduplicate returned %d articles, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].Link != w.link || got[i].SourceName != w.source {
			t.Errorf("got[%d] = %s/%s, want %s/%s", i, got[i].Link, got[i].SourceName, w.link, w.source)
		}
	}
}

func TestDeduplicate_Empty(t *testing.T) {
	if got := Deduplicate(nil); len(got) != 0 {
		t.Errorf("Deduplicate(nil) = %v, want empty", got)
	}
}
