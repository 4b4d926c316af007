package posts

import (
	"slices"
	"strings"
	"time"
)

// dateLayouts are the ISO 8601 forms accepted for a post date.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.RFC3339,
	time.RFC3339Nano,
}

// ParseDate parses s as one of the accepted ISO 8601 layouts.
func ParseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// SortByRecency returns a copy of summaries ordered newest first.
//
// The sort is stable. Dates that cannot be parsed sort after all parseable
// dates and are compared as strings among themselves.
func SortByRecency(summaries []Summary) []Summary {
	sorted := slices.Clone(summaries)
	slices.SortStableFunc(sorted, func(a, b Summary) int {
		return compareDates(b.Date, a.Date)
	})
	return sorted
}

// compareDates orders a before b when a is older.
func compareDates(a, b string) int {
	ta, okA := ParseDate(a)
	tb, okB := ParseDate(b)
	switch {
	case okA && okB:
		return ta.Compare(tb)
	case okA:
		return 1
	case okB:
		return -1
	default:
		return strings.Compare(a, b)
	}
}
