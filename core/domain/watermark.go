// ABOUTME: Watermarks map each source name to the newest publish time already processed
// ABOUTME: Values only move forward; the map serializes as a flat name -> ISO-8601 object

package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Watermarks is the per-source cursor map. A missing key means the source
// was never processed successfully.
type Watermarks map[string]time.Time

// Cursor returns the watermark for a source, or nil on cold start
func (w Watermarks) Cursor(source string) *time.Time {
	t, ok := w[source]
	if !ok {
		return nil
	}
	return &t
}

// Advance moves the watermark for source to t when t is newer.
// Returns true when the map changed.
func (w Watermarks) Advance(source string, t time.Time) bool {
	if t.IsZero() {
		return false
	}
	current, ok := w[source]
	if ok && !t.After(current) {
		return false
	}
	w[source] = t.UTC()
	return true
}

// Merge advances every entry of w with the entries of other
func (w Watermarks) Merge(other Watermarks) {
	for source, t := range other {
		w.Advance(source, t)
	}
}

// Clone returns an independent copy
func (w Watermarks) Clone() Watermarks {
	out := make(Watermarks, len(w))
	for source, t := range w {
		out[source] = t
	}
	return out
}

// MarshalJSON encodes the map as source -> RFC 3339 timestamp
func (w Watermarks) MarshalJSON() ([]byte, error) {
	raw := make(map[string]string, len(w))
	for source, t := range w {
		raw[source] = t.UTC().Format(time.RFC3339Nano)
	}
	return json.Marshal(raw)
}

// UnmarshalJSON decodes a source -> ISO-8601 object
func (w *Watermarks) UnmarshalJSON(data []byte) error {
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := make(Watermarks, len(raw))
	for source, value := range raw {
		t, err := time.Parse(time.RFC3339Nano, value)
		if err != nil {
			return fmt.Errorf("watermark for %q: %w", source, err)
		}
		out[source] = t.UTC()
	}

	*w = out
	return nil
}
