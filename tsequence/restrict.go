package tsequence

import (
	"github.com/grailbio/temporal/basetype"
	"github.com/grailbio/temporal/period"
	"github.com/grailbio/temporal/terrors"
	"github.com/grailbio/temporal/tinstant"
)

// AtValue implements the "at" side of spec.md section 4.6's value-based
// selector for a single sequence: each matching run becomes its own
// output Sequence (for linear interpolation, a run may be a single
// synthetic instant at a crossing point).
func (s Sequence) AtValue(v interface{}) ([]Sequence, error) {
	adapter, err := basetype.For(s.Tag)
	if err != nil {
		return nil, err
	}
	switch s.Interp {
	case Discrete:
		var out []Sequence
		for _, inst := range s.Instants {
			if adapter.Equal(inst.Value, v) {
				seq, err := New(s.Tag, s.Interp, []tinstant.Instant{inst}, true, true, false)
				if err != nil {
					return nil, err
				}
				out = append(out, seq)
			}
		}
		return out, nil
	case Stepwise:
		return s.atValueStepwise(v, adapter)
	case Linear:
		return s.atValueLinear(v, adapter)
	}
	return nil, nil
}

func (s Sequence) atValueStepwise(v interface{}, adapter basetype.Adapter) ([]Sequence, error) {
	var out []Sequence
	n := len(s.Instants)
	i := 0
	for i < n {
		if !adapter.Equal(s.Instants[i].Value, v) {
			i++
			continue
		}
		j := i
		for j+1 < n && adapter.Equal(s.Instants[j+1].Value, v) {
			j++
		}
		lowerInc := true
		upperInc := j+1 < n // exclusive at the instant where the value changes, unless it's the sequence's own upper bound
		if j == n-1 {
			upperInc = s.UpperInc
		}
		instants := append([]tinstant.Instant(nil), s.Instants[i:j+1]...)
		seq, err := New(s.Tag, s.Interp, instants, lowerInc, upperInc, false)
		if err != nil {
			return nil, err
		}
		out = append(out, seq)
		i = j + 1
	}
	return out, nil
}

func (s Sequence) atValueLinear(v interface{}, adapter basetype.Adapter) ([]Sequence, error) {
	if !s.Tag.Ordered() {
		return nil, terrors.New(terrors.TypeMismatch, "linear at-value restriction requires an ordered base type", s.Tag)
	}
	target := adapter.ToFloat64(v)
	var out []Sequence
	for i := 0; i < len(s.Instants)-1; i++ {
		a, b := s.Instants[i], s.Instants[i+1]
		va, vb := adapter.ToFloat64(a.Value), adapter.ToFloat64(b.Value)
		if va == target {
			seq, err := New(s.Tag, s.Interp, []tinstant.Instant{a}, true, true, false)
			if err != nil {
				return nil, err
			}
			out = append(out, seq)
		}
		if va == vb {
			continue
		}
		frac := (target - va) / (vb - va)
		if frac > 0 && frac < 1 {
			t := a.Time + period.Timestamp(frac*float64(b.Time-a.Time))
			if t > a.Time && t < b.Time {
				mid, err := tinstant.New(t, v, s.Tag)
				if err != nil {
					return nil, err
				}
				seq, err := New(s.Tag, s.Interp, []tinstant.Instant{mid}, true, true, false)
				if err != nil {
					return nil, err
				}
				out = append(out, seq)
			}
		}
	}
	last := s.Instants[len(s.Instants)-1]
	if adapter.ToFloat64(last.Value) == target {
		seq, err := New(s.Tag, s.Interp, []tinstant.Instant{last}, true, true, false)
		if err != nil {
			return nil, err
		}
		out = append(out, seq)
	}
	return out, nil
}

// MinusValue returns the complement runs of AtValue within this sequence's
// own period, implementing restriction duality (spec.md section 8) at the
// per-sequence granularity for discrete/stepwise. Linear minus-value is
// approximated as the period-set complement of the at-value crossing
// points' covering periods, which for point selectors (zero-width) is
// simply the whole sequence minus isolated instants.
func (s Sequence) MinusValue(v interface{}) ([]Sequence, error) {
	adapter, err := basetype.For(s.Tag)
	if err != nil {
		return nil, err
	}
	switch s.Interp {
	case Discrete:
		var instants []tinstant.Instant
		for _, inst := range s.Instants {
			if !adapter.Equal(inst.Value, v) {
				instants = append(instants, inst)
			}
		}
		if len(instants) == 0 {
			return nil, nil
		}
		seq, err := New(s.Tag, s.Interp, instants, true, true, false)
		if err != nil {
			return nil, err
		}
		return []Sequence{seq}, nil
	case Stepwise:
		return s.minusValueStepwise(v, adapter)
	case Linear:
		// A linear sequence touches value v only at isolated instants (or
		// sub-intervals if constant at v); minus removes those from the
		// whole. Build by subtracting the matched periods from the full
		// period and re-slicing via AtPeriod.
		matched, err := s.atValueLinear(v, adapter)
		if err != nil {
			return nil, err
		}
		return s.minusPeriodsOf(matched)
	}
	return nil, nil
}

func (s Sequence) minusValueStepwise(v interface{}, adapter basetype.Adapter) ([]Sequence, error) {
	matched, err := s.atValueStepwise(v, adapter)
	if err != nil {
		return nil, err
	}
	return s.minusPeriodsOf(matched)
}

func (s Sequence) minusPeriodsOf(matched []Sequence) ([]Sequence, error) {
	if len(matched) == 0 {
		return []Sequence{s}, nil
	}
	full := period.NewPeriodSet(s.Period())
	var matchedPeriods []period.Period
	for _, m := range matched {
		matchedPeriods = append(matchedPeriods, m.Period())
	}
	remaining := full.Minus(period.NewPeriodSet(matchedPeriods...))
	var out []Sequence
	for _, p := range remaining.Periods() {
		seq, ok, err := s.AtPeriod(p)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, seq)
		}
	}
	return out, nil
}

// AtPeriod clips s to p, interpolating new boundary instants if p's
// bounds fall strictly inside s's period and the interpolation is
// stepwise or linear.
func (s Sequence) AtPeriod(p period.Period) (Sequence, bool, error) {
	sp := s.Period()
	if !sp.Overlaps(p) {
		return Sequence{}, false, nil
	}
	lower, lowerInc := sp.Lower, sp.LowerInc
	if p.Lower > sp.Lower || (p.Lower == sp.Lower && !p.LowerInc) {
		lower, lowerInc = p.Lower, p.LowerInc
	}
	upper, upperInc := sp.Upper, sp.UpperInc
	if p.Upper < sp.Upper || (p.Upper == sp.Upper && !p.UpperInc) {
		upper, upperInc = p.Upper, p.UpperInc
	}
	if lower > upper || (lower == upper && !(lowerInc && upperInc)) {
		return Sequence{}, false, nil
	}
	var instants []tinstant.Instant
	for _, inst := range s.Instants {
		if inst.Time < lower || inst.Time > upper {
			continue
		}
		if inst.Time == lower && !lowerInc {
			continue
		}
		if inst.Time == upper && !upperInc {
			continue
		}
		instants = append(instants, inst)
	}
	if len(instants) == 0 || instants[0].Time != lower {
		if s.Interp == Discrete {
			if len(instants) == 0 {
				return Sequence{}, false, nil
			}
		} else {
			v, ok := s.ValueAt(lower, false)
			if !ok {
				return Sequence{}, false, nil
			}
			inst, err := tinstant.New(lower, v, s.Tag)
			if err != nil {
				return Sequence{}, false, err
			}
			instants = append([]tinstant.Instant{inst}, instants...)
		}
	}
	if s.Interp != Discrete && (len(instants) == 0 || instants[len(instants)-1].Time != upper) {
		v, ok := s.ValueAt(upper, false)
		if ok {
			inst, err := tinstant.New(upper, v, s.Tag)
			if err != nil {
				return Sequence{}, false, err
			}
			instants = append(instants, inst)
		}
	}
	if len(instants) == 0 {
		return Sequence{}, false, nil
	}
	seq, err := New(s.Tag, s.Interp, instants, lowerInc, upperInc, true)
	if err != nil {
		return Sequence{}, false, err
	}
	return seq, true, nil
}

// MinusPeriod returns the (zero, one, or two) pieces of s outside p.
func (s Sequence) MinusPeriod(p period.Period) ([]Sequence, error) {
	remaining := period.NewPeriodSet(s.Period()).Minus(period.NewPeriodSet(p))
	var out []Sequence
	for _, rp := range remaining.Periods() {
		seq, ok, err := s.AtPeriod(rp)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, seq)
		}
	}
	return out, nil
}

// AtPeriodSet and MinusPeriodSet apply AtPeriod/MinusPeriod across every
// period in ps, in order.
func (s Sequence) AtPeriodSet(ps period.PeriodSet) ([]Sequence, error) {
	var out []Sequence
	for _, p := range ps.Periods() {
		seq, ok, err := s.AtPeriod(p)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, seq)
		}
	}
	return out, nil
}

func (s Sequence) MinusPeriodSet(ps period.PeriodSet) ([]Sequence, error) {
	remaining := period.NewPeriodSet(s.Period()).Minus(ps)
	var out []Sequence
	for _, p := range remaining.Periods() {
		seq, ok, aerr := s.AtPeriod(p)
		if aerr != nil {
			return nil, aerr
		}
		if ok {
			out = append(out, seq)
		}
	}
	return out, nil
}
