// Package dates handles calendar dates with day granularity.
//
// Exercise dates are stored as human-readable strings in the canonical
// layout "Mon Jan 02 2006". Inputs are accepted in a few common layouts
// and always normalized to the canonical one, so comparisons are done on
// parsed dates rather than on the storage strings (lexicographic and
// chronological order diverge for non-ISO strings).
package dates

import (
	"fmt"
	"time"
)

// Layout is the canonical storage and display layout for exercise dates.
const Layout = "Mon Jan 02 2006"

// inputLayouts are the accepted layouts for client-supplied date strings,
// tried in order. Slash dates are month-first, matching how clients of
// the original endpoints wrote them.
var inputLayouts = []string{
	"2006-01-02",
	Layout,
	time.RFC3339,
	"1/2/2006",
	"Jan 2 2006",
	"January 2 2006",
	"January 2, 2006",
}

// Parse parses a client-supplied or stored date string into a calendar
// date, truncated to midnight UTC. Time-of-day and timezone information
// in the input are discarded.
func Parse(s string) (time.Time, error) {
	for _, layout := range inputLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		return Truncate(t), nil
	}
	return time.Time{}, fmt.Errorf("unparsable date %q", s)
}

// Format renders a date in the canonical layout.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// Truncate drops time-of-day, keeping only the calendar date in UTC.
func Truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar date in the canonical layout.
func Today() string {
	return Format(time.Now())
}
