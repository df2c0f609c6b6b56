package tsequence

import (
	"github.com/grailbio/temporal/basetype"
	"github.com/grailbio/temporal/period"
	"github.com/grailbio/temporal/tinstant"
)

// FindCrossing solves spec.md section 4.8's "closed-form linear
// intersection" for two linear segments covering the same time window
// [t0, t1]: segment A goes from (t0, va0) to (t1, va1); segment B from
// (t0, vb0) to (t1, vb1). It returns the timestamp and shared value at
// which A and B become equal strictly between t0 and t1, or
// (zero-value, false) if the segments are parallel, coincident, or don't
// cross in the open interval.
//
// Only defined for ordered numeric base types; point crossings are not
// computed (spec.md section 4.8 restricts crossings to "linear
// interpolation on ordered base types").
func FindCrossing(tag basetype.Tag, t0, t1 period.Timestamp, va0, va1, vb0, vb1 interface{}) (tinstant.Instant, bool) {
	if !tag.Ordered() || t0 >= t1 {
		return tinstant.Instant{}, false
	}
	adapter, err := basetype.For(tag)
	if err != nil {
		return tinstant.Instant{}, false
	}
	a0, a1 := adapter.ToFloat64(va0), adapter.ToFloat64(va1)
	b0, b1 := adapter.ToFloat64(vb0), adapter.ToFloat64(vb1)
	d0, d1 := a0-b0, a1-b1
	if d0 == d1 {
		return tinstant.Instant{}, false // parallel (includes coincident throughout)
	}
	frac := d0 / (d0 - d1)
	if frac <= 0 || frac >= 1 {
		return tinstant.Instant{}, false // crossing falls at or outside an endpoint, not strictly between
	}
	t := t0 + period.Timestamp(frac*float64(t1-t0))
	if t <= t0 || t >= t1 {
		return tinstant.Instant{}, false
	}
	value := a0 + (a1-a0)*frac
	inst, err := tinstant.New(t, adapter.FromFloat64(value), tag)
	if err != nil {
		return tinstant.Instant{}, false
	}
	return inst, true
}
