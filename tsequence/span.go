package tsequence

import (
	"github.com/grailbio/temporal/basetype"
	"github.com/grailbio/temporal/period"
	"github.com/grailbio/temporal/terrors"
	"github.com/grailbio/temporal/tinstant"
)

// Span is a numeric selector (spec.md section 4.6's "a numeric span").
type Span struct {
	Min, Max       float64
	MinInc, MaxInc bool
}

// Contains reports whether v falls within the span.
func (sp Span) Contains(v float64) bool {
	if v < sp.Min || v > sp.Max {
		return false
	}
	if v == sp.Min && !sp.MinInc {
		return false
	}
	if v == sp.Max && !sp.MaxInc {
		return false
	}
	return true
}

// AtSpan restricts s to the sub-runs whose value falls in sp, splitting
// linear segments at the span's boundary crossings the same way
// atValueLinear splits at a single value.
func (s Sequence) AtSpan(sp Span) ([]Sequence, error) {
	if !s.Tag.Ordered() {
		return nil, terrors.New(terrors.TypeMismatch, "span restriction requires an ordered base type", s.Tag)
	}
	adapter, err := basetype.For(s.Tag)
	if err != nil {
		return nil, err
	}
	switch s.Interp {
	case Discrete, Stepwise:
		return s.atSpanDiscreteLike(sp, adapter)
	case Linear:
		return s.atSpanLinear(sp, adapter)
	}
	return nil, nil
}

func (s Sequence) atSpanDiscreteLike(sp Span, adapter basetype.Adapter) ([]Sequence, error) {
	if s.Interp == Discrete {
		var out []Sequence
		for _, inst := range s.Instants {
			if sp.Contains(adapter.ToFloat64(inst.Value)) {
				seq, err := New(s.Tag, s.Interp, []tinstant.Instant{inst}, true, true, false)
				if err != nil {
					return nil, err
				}
				out = append(out, seq)
			}
		}
		return out, nil
	}
	var out []Sequence
	n := len(s.Instants)
	i := 0
	for i < n {
		if !sp.Contains(adapter.ToFloat64(s.Instants[i].Value)) {
			i++
			continue
		}
		j := i
		for j+1 < n && sp.Contains(adapter.ToFloat64(s.Instants[j+1].Value)) {
			j++
		}
		upperInc := j+1 < n
		if j == n-1 {
			upperInc = s.UpperInc
		}
		instants := append([]tinstant.Instant(nil), s.Instants[i:j+1]...)
		seq, err := New(s.Tag, s.Interp, instants, true, upperInc, false)
		if err != nil {
			return nil, err
		}
		out = append(out, seq)
		i = j + 1
	}
	return out, nil
}

func (s Sequence) atSpanLinear(sp Span, adapter basetype.Adapter) ([]Sequence, error) {
	var out []Sequence
	for i := 0; i < len(s.Instants)-1; i++ {
		a, b := s.Instants[i], s.Instants[i+1]
		va, vb := adapter.ToFloat64(a.Value), adapter.ToFloat64(b.Value)
		lo, hi := 0.0, 1.0
		loInc, hiInc := sp.Contains(va), sp.Contains(vb)
		if va != vb {
			// Solve for the fractional crossings of Min and Max along this
			// segment, clamping the [lo, hi] fraction window to where the
			// segment's value lies inside the span.
			for _, boundary := range []float64{sp.Min, sp.Max} {
				if (va-boundary)*(vb-boundary) < 0 {
					frac := (boundary - va) / (vb - va)
					mid := va + (vb-va)*frac
					if sp.Contains(mid) {
						if frac > lo {
							lo = frac
						}
					} else {
						if frac < hi {
							hi = frac
						}
					}
				}
			}
		} else if !sp.Contains(va) {
			continue
		}
		if lo > hi {
			continue
		}
		lowT := a.Time + period.Timestamp(lo*float64(b.Time-a.Time))
		highT := a.Time + period.Timestamp(hi*float64(b.Time-a.Time))
		if lowT > highT {
			continue
		}
		lowV := adapter.FromFloat64(va + (vb-va)*lo)
		highV := adapter.FromFloat64(va + (vb-va)*hi)
		var instants []tinstant.Instant
		li, err := tinstant.New(lowT, lowV, s.Tag)
		if err != nil {
			return nil, err
		}
		instants = append(instants, li)
		if lowT != highT {
			hiInstant, err := tinstant.New(highT, highV, s.Tag)
			if err != nil {
				return nil, err
			}
			instants = append(instants, hiInstant)
		}
		seq, err := New(s.Tag, s.Interp, instants, loInc || lo > 0, hiInc || hi < 1, false)
		if err != nil {
			return nil, err
		}
		out = append(out, seq)
	}
	// A single-instant sequence has no segment to walk; otherwise the last
	// segment's piece already ends at the last instant.
	last := s.Instants[len(s.Instants)-1]
	if len(s.Instants) == 1 && sp.Contains(adapter.ToFloat64(last.Value)) {
		seq, err := New(s.Tag, s.Interp, []tinstant.Instant{last}, true, true, false)
		if err != nil {
			return nil, err
		}
		out = append(out, seq)
	}
	return out, nil
}

// MinusSpan is the complement of AtSpan within s's own period.
func (s Sequence) MinusSpan(sp Span) ([]Sequence, error) {
	matched, err := s.AtSpan(sp)
	if err != nil {
		return nil, err
	}
	return s.minusPeriodsOf(matched)
}
