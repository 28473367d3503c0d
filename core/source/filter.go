// ABOUTME: Keyword filter deciding whether an article is on topic
// ABOUTME: Matches whole words (plurals included) case-insensitively over the title and snippet

package source

import (
	"regexp"
	"strings"
)

// KeywordFilter matches text against a fixed keyword list
type KeywordFilter struct {
	pattern *regexp.Regexp
}

// NewKeywordFilter compiles keywords into one whole-word matcher that also
// accepts a plain plural ("LLMs", "transformers"). An empty list matches everything.
func NewKeywordFilter(keywords []string) *KeywordFilter {
	var quoted []string
	for _, kw := range keywords {
		if kw = strings.TrimSpace(kw); kw != "" {
			quoted = append(quoted, regexp.QuoteMeta(kw))
		}
	}
	if len(quoted) == 0 {
		return &KeywordFilter{}
	}
	return &KeywordFilter{
		pattern: regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)(?:s|es)?\b`),
	}
}

// Match reports whether any of texts contains a keyword
func (f *KeywordFilter) Match(texts ...string) bool {
	if f.pattern == nil {
		return true
	}
	for _, text := range texts {
		if f.pattern.MatchString(text) {
			return true
		}
	}
	return false
}
