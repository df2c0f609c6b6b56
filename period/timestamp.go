// Package period implements the timestamp, period, and period-set
// primitives that every binary search and restriction algorithm in this
// module is built on.
//
// A Timestamp is a 64-bit microsecond epoch offset, matching the wire
// convention documented in spec.md section 6. Period and PeriodSet carry
// their own inclusivity flags rather than leaning on a generic interval
// type, because the join/stitch rules in tsequence and tsequenceset need to
// see inclusivity directly.
package period

import (
	"fmt"
	"sort"
)

// Timestamp is microseconds since the Unix epoch (UTC). It is the base
// domain for every Period below and for tinstant.Instant.
type Timestamp int64

// Before reports whether t occurs strictly before u.
func (t Timestamp) Before(u Timestamp) bool { return t < u }

// After reports whether t occurs strictly after u.
func (t Timestamp) After(u Timestamp) bool { return t > u }

// String renders the raw microsecond count; calendar.Format renders a
// human timestamp.
func (t Timestamp) String() string {
	return fmt.Sprintf("%d", int64(t))
}

// searchTimestamps is the teacher's searchPosType (interval/bedunion.go)
// generalized from PosType to Timestamp: returns the index of the first
// element >= x, or len(a) if none.
func searchTimestamps(a []Timestamp, x Timestamp) int {
	return sort.Search(len(a), func(i int) bool { return a[i] >= x })
}
