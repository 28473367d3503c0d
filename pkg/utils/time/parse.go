// ABOUTME: Lenient date parsing for feed timestamps the feed parser could not read
// ABOUTME: Tries the layouts publishers commonly emit and normalizes results to UTC

package time

import (
	"strings"
	"time"
)

// Layouts seen in RSS/Atom feeds, most common first
var timeFormats = []string{
	time.RFC3339,
	time.RFC3339Nano,
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	"Mon, 02 Jan 2006 15:04 -0700",
	"02 Jan 2006 15:04:05 -0700",
	"02 Jan 2006 15:04:05 MST",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Parse reads a feed timestamp. Zones without an offset are taken as UTC.
func Parse(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}

	for _, layout := range timeFormats {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// First returns the first value that parses
func First(values ...string) (time.Time, bool) {
	for _, v := range values {
		if t, ok := Parse(v); ok {
			return t, true
		}
	}
	return time.Time{}, false
}
