// Package tinstant implements the temporal instant: a single
// (timestamp, value) point, spec.md section 3.
package tinstant

import (
	"github.com/grailbio/temporal/basetype"
	"github.com/grailbio/temporal/period"
	"github.com/grailbio/temporal/terrors"
)

// Instant is a (timestamp, value) pair tagged with its base domain. The
// invariant from spec.md section 3 ("the type tag matches the stored
// value's domain") is enforced at construction: New type-checks Value
// against Tag via the basetype registry's adapter lookup (a missing
// adapter is itself a TypeMismatch).
type Instant struct {
	Time  period.Timestamp
	Value interface{}
	Tag   basetype.Tag
}

// New validates tag is registered and returns an Instant.
func New(t period.Timestamp, value interface{}, tag basetype.Tag) (Instant, error) {
	if _, err := basetype.For(tag); err != nil {
		return Instant{}, err
	}
	return Instant{Time: t, Value: value, Tag: tag}, nil
}

// Equal reports whether i and j have the same timestamp and, via the
// base-type adapter, equal values. Differing tags are never equal.
func (i Instant) Equal(j Instant) bool {
	if i.Tag != j.Tag || i.Time != j.Time {
		return false
	}
	a, err := basetype.For(i.Tag)
	if err != nil {
		return false
	}
	return a.Equal(i.Value, j.Value)
}

// Compare returns -1, 0, 1 ordering first by timestamp, then (for equal
// timestamps) by value under the base-type adapter's Less, used by
// temporal's total order (spec.md section 4.9).
func (i Instant) Compare(j Instant) int {
	if i.Time < j.Time {
		return -1
	}
	if i.Time > j.Time {
		return 1
	}
	a, err := basetype.For(i.Tag)
	if err != nil {
		return 0
	}
	if a.Less(i.Value, j.Value) {
		return -1
	}
	if a.Less(j.Value, i.Value) {
		return 1
	}
	return 0
}

// ValueEqual reports whether i and j carry the same value, ignoring time.
// Used by join/stitch rules (spec.md sections 4.4, 4.5) that need to know
// whether two instants straddling a boundary agree in value.
func (i Instant) ValueEqual(j Instant) (bool, error) {
	if i.Tag != j.Tag {
		return false, terrors.New(terrors.TypeMismatch, "comparing instants of different temporal types", i.Tag, j.Tag)
	}
	a, err := basetype.For(i.Tag)
	if err != nil {
		return false, err
	}
	return a.Equal(i.Value, j.Value), nil
}

func (i Instant) String() string {
	a, err := basetype.For(i.Tag)
	if err != nil {
		return "<invalid>"
	}
	return a.Out(i.Value) + "@" + i.Time.String()
}
