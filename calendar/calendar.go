// Package calendar adapts Go's time package to the period.Timestamp
// domain, standing in for the "Calendar" collaborator that spec.md
// section 6 treats as external: timestamp comparison, interval
// arithmetic, and textual formatting.
//
// The rest of this module depends only on period.Timestamp and Interval;
// calendar is the single place a host application would swap in a
// different epoch or a leap-second-aware clock.
package calendar

import (
	"time"

	"github.com/grailbio/temporal/period"
)

// Interval is a signed span of microseconds, the result of subtracting
// two Timestamps.
type Interval int64

// Add returns i+j.
func (i Interval) Add(j Interval) Interval { return i + j }

// CmpZero returns -1, 0, or 1 as i is negative, zero, or positive,
// matching spec.md section 6's "interval cmp zero" collaborator method.
func (i Interval) CmpZero() int {
	switch {
	case i < 0:
		return -1
	case i > 0:
		return 1
	default:
		return 0
	}
}

// Duration converts the interval to a time.Duration.
func (i Interval) Duration() time.Duration {
	return time.Duration(i) * time.Microsecond
}

// Sub returns the interval t-u.
func Sub(t, u period.Timestamp) Interval {
	return Interval(t - u)
}

// Compare returns -1, 0, or 1 as t is before, equal to, or after u.
func Compare(t, u period.Timestamp) int {
	switch {
	case t < u:
		return -1
	case t > u:
		return 1
	default:
		return 0
	}
}

// FromTime converts a time.Time to a Timestamp, truncating to
// microsecond precision the way the wire format (spec.md section 6)
// requires.
func FromTime(t time.Time) period.Timestamp {
	return period.Timestamp(t.UnixNano() / int64(time.Microsecond))
}

// ToTime converts a Timestamp back to a time.Time in UTC.
func ToTime(ts period.Timestamp) time.Time {
	return time.Unix(0, int64(ts)*int64(time.Microsecond)).UTC()
}

// Format renders ts using RFC 3339 with microsecond precision, the
// textual form referenced by spec.md section 6's literal timestamps.
// A timestamp that falls exactly at UTC midnight renders as a bare date
// ("2000-01-01") rather than "2000-01-01T00:00:00Z", matching spec.md
// section 8 scenario 6's round-trip literal.
func Format(ts period.Timestamp) string {
	t := ToTime(ts)
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format("2006-01-02")
	}
	if t.Nanosecond() == 0 {
		return t.Format("2006-01-02T15:04:05Z07:00")
	}
	return t.Format("2006-01-02T15:04:05.999999Z07:00")
}

// Parse is the inverse of Format, also accepting a bare date
// ("2000-01-01") as spec.md section 8 scenario 6 does.
func Parse(s string) (period.Timestamp, error) {
	layouts := []string{
		"2006-01-02T15:04:05.999999Z07:00",
		"2006-01-02T15:04:05Z07:00",
		"2006-01-02 15:04:05.999999",
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
	var firstErr error
	for _, layout := range layouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return FromTime(t), nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return 0, firstErr
}
