package tsequence

import (
	"sort"

	"github.com/grailbio/temporal/basetype"
	"github.com/grailbio/temporal/period"
	"github.com/grailbio/temporal/spatial"
	"github.com/grailbio/temporal/tinstant"
)

// findInstant returns (found, loc): loc is the index of the instant at t
// if found, else the index of the first instant with time > t. This is
// the instant-level sibling of tsequenceset's findTimestamp (spec.md
// section 4.3), generalized from interval.searchPosType.
func (s Sequence) findInstant(t period.Timestamp) (bool, int) {
	loc := sort.Search(len(s.Instants), func(i int) bool { return s.Instants[i].Time >= t })
	if loc < len(s.Instants) && s.Instants[loc].Time == t {
		return true, loc
	}
	return false, loc
}

// ValueAt implements spec.md section 4.7: value_at(seq, t, strict). With
// strict=false, a timestamp coinciding with an exclusive bound still
// yields that instant's value.
func (s Sequence) ValueAt(t period.Timestamp, strict bool) (interface{}, bool) {
	p := s.Period()
	if !p.Contains(t) {
		if strict {
			return nil, false
		}
		// Non-strict: allow exact coincidence with an excluded bound.
		if t == p.Lower && !p.LowerInc {
			return s.Instants[0].Value, true
		}
		if t == p.Upper && !p.UpperInc {
			return s.Instants[len(s.Instants)-1].Value, true
		}
		return nil, false
	}
	found, loc := s.findInstant(t)
	if found {
		return s.Instants[loc].Value, true
	}
	// t falls strictly between Instants[loc-1] and Instants[loc].
	switch s.Interp {
	case Discrete:
		return nil, false
	case Stepwise:
		return s.Instants[loc-1].Value, true
	case Linear:
		return s.interpolateLinear(s.Instants[loc-1], s.Instants[loc], t), true
	}
	return nil, false
}

func (s Sequence) interpolateLinear(a, b tinstant.Instant, t period.Timestamp) interface{} {
	frac := float64(t-a.Time) / float64(b.Time-a.Time)
	if s.Tag == basetype.Point {
		return spatial.Lerp(a.Value.(spatial.Point), b.Value.(spatial.Point), frac)
	}
	adapter, err := basetype.For(s.Tag)
	if err != nil {
		return nil
	}
	va, vb := adapter.ToFloat64(a.Value), adapter.ToFloat64(b.Value)
	return adapter.FromFloat64(va + (vb-va)*frac)
}

// Integral returns the time-weighted sum of the sequence's values over its
// own period, used by temporal.TimeWeightedAverage (spec.md component 7).
// Only defined for ordered numeric types.
func (s Sequence) Integral() float64 {
	if !s.Tag.Ordered() {
		return 0
	}
	adapter, _ := basetype.For(s.Tag)
	switch s.Interp {
	case Discrete:
		return 0
	case Stepwise:
		var total float64
		for i := 0; i < len(s.Instants)-1; i++ {
			dt := float64(s.Instants[i+1].Time - s.Instants[i].Time)
			total += adapter.ToFloat64(s.Instants[i].Value) * dt
		}
		return total
	case Linear:
		var total float64
		for i := 0; i < len(s.Instants)-1; i++ {
			dt := float64(s.Instants[i+1].Time - s.Instants[i].Time)
			v0, v1 := adapter.ToFloat64(s.Instants[i].Value), adapter.ToFloat64(s.Instants[i+1].Value)
			total += (v0 + v1) / 2 * dt
		}
		return total
	}
	return 0
}

// Duration returns the sequence's period length in microseconds.
func (s Sequence) Duration() int64 { return s.Period().Duration() }
