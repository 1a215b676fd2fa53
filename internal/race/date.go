package race

import "time"

// DateLayout is the normalized date format used in the output artifact.
const DateLayout = "2006-01-02"

// ParseListingDate parses a date as served by the listing API.
// Returns time.Time{} (zero value) if parsing fails.
// Supports "06/15/2026", "6/15/2026", and already-normalized "2026-06-15".
func ParseListingDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}

	for _, layout := range []string{"01/02/2006", "1/2/2006", DateLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}

	return time.Time{}
}

// DateOnly truncates a time to its calendar date in UTC. Date filtering
// has no time-of-day granularity.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// IsUpcoming reports whether the race date is on or after the given
// run date. Returns false for an unparseable date (such a race must
// never reach the output).
func (r *Race) IsUpcoming(today time.Time) bool {
	d, err := time.Parse(DateLayout, r.Date)
	if err != nil {
		return false
	}
	return !d.Before(DateOnly(today))
}
