package dateutil

import "time"

// Day returns t's calendar date (as observed in t's location) at midnight UTC,
// the form stored in DATE columns.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Parse reads a YYYY-MM-DD string.
func Parse(s string) (time.Time, error) {
	return time.Parse(time.DateOnly, s)
}

// ParseOptional returns nil for an empty string.
func ParseOptional(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := Parse(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func Format(t time.Time) string {
	return t.Format(time.DateOnly)
}

// InclusiveDays counts calendar days from start to end, both included.
// The result is zero or negative when end precedes start.
func InclusiveDays(start, end time.Time) int {
	return int(Day(end).Sub(Day(start)).Hours()/24) + 1
}
