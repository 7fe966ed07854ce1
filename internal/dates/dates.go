// Package dates parses the loosely formatted date strings found in bank
// and brokerage exports, normalizing them to day granularity.
package dates

import (
	"fmt"
	"strings"
	"time"
)

// Format is the canonical write format.
const Format = "2006-01-02"

// ParseError reports a date field that matched no known layout.
type ParseError struct {
	Raw string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unparsable date %q", e.Raw)
}

// Read layouts, most common first. Permissive variants allow
// single-digit month and day.
var layouts = []string{
	"2006-01-02",
	"2006-1-2",
	"2006/01/02",
	"2006/1/2",
	"01/02/2006",
	"1/2/2006",
	"Jan 2 2006",
	"Jan 2, 2006",
	"January 2 2006",
	"January 2, 2006",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// now is swapped out by tests of the relative keywords.
var now = time.Now

// Parse resolves a raw date string to midnight UTC of the named day.
// Besides the explicit layouts it accepts the relative keywords "today",
// "yesterday", and "tomorrow".
func Parse(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, &ParseError{Raw: raw}
	}

	switch strings.ToLower(s) {
	case "today":
		return Day(now()), nil
	case "yesterday":
		return Day(now()).AddDate(0, 0, -1), nil
	case "tomorrow":
		return Day(now()).AddDate(0, 0, 1), nil
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Day(t), nil
		}
	}
	return time.Time{}, &ParseError{Raw: raw}
}

// Day truncates a time to midnight UTC of its calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the absolute whole-day distance between two
// day-granular times.
func DaysBetween(a, b time.Time) int {
	d := Day(a).Sub(Day(b))
	if d < 0 {
		d = -d
	}
	return int(d / (24 * time.Hour))
}
