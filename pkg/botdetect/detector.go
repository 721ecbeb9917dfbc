// Package botdetect matches User-Agent strings against an ordered table of
// crawler patterns.
package botdetect

import (
	"strings"
	"sync/atomic"
)

// DefaultPatterns is the crawler table used when none is configured.
var DefaultPatterns = []string{"Googlebot", "bingbot", "Baiduspider", "YandexBot", "DuckDuckBot"}

// Detector holds an ordered pattern table. Match and Replace are safe for
// concurrent use; a Match always sees one complete table.
type Detector struct {
	table atomic.Pointer[table]
}

type table struct {
	patterns []string
	lowered  []string
}

func newTable(patterns []string) *table {
	t := &table{
		patterns: make([]string, 0, len(patterns)),
		lowered:  make([]string, 0, len(patterns)),
	}
	for _, p := range patterns {
		if p == "" {
			continue
		}
		t.patterns = append(t.patterns, p)
		t.lowered = append(t.lowered, strings.ToLower(p))
	}
	return t
}

// New returns a detector for patterns. A nil slice selects DefaultPatterns;
// an empty non-nil slice disables detection.
func New(patterns []string) *Detector {
	if patterns == nil {
		patterns = DefaultPatterns
	}
	d := &Detector{}
	d.table.Store(newTable(patterns))
	return d
}

// Match returns the first pattern, in table order, contained in userAgent
// ignoring case. The returned pattern keeps its configured spelling.
func (d *Detector) Match(userAgent string) (string, bool) {
	if userAgent == "" {
		return "", false
	}

	t := d.table.Load()
	ua := strings.ToLower(userAgent)
	for i, p := range t.lowered {
		if strings.Contains(ua, p) {
			return t.patterns[i], true
		}
	}
	return "", false
}

// Replace swaps in a new pattern table. Requests already matching keep the
// table they loaded.
func (d *Detector) Replace(patterns []string) {
	d.table.Store(newTable(patterns))
}

// Patterns returns a copy of the current table.
func (d *Detector) Patterns() []string {
	t := d.table.Load()
	return append([]string(nil), t.patterns...)
}
