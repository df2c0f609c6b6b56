package tsequenceset

import (
	"github.com/grailbio/temporal/basetype"
	"github.com/grailbio/temporal/period"
	"github.com/grailbio/temporal/terrors"
	"github.com/grailbio/temporal/tinstant"
)

// TimeSupport returns the period set covered by ss's sequences, the set
// Update subtracts from its first argument (spec.md section 4.5).
func (ss *SequenceSet) TimeSupport() (period.PeriodSet, error) {
	periods := make([]period.Period, len(ss.sequences))
	for i, s := range ss.sequences {
		periods[i] = s.Period()
	}
	return period.NewPeriodSet(periods...), nil
}

// Period returns the overall span from the first sequence's lower bound
// to the last sequence's upper bound (spec.md section 4.1's `period()`),
// which may include gaps not in TimeSupport.
func (ss *SequenceSet) Period() (period.Period, bool) {
	if len(ss.sequences) == 0 {
		return period.Period{}, false
	}
	first := ss.sequences[0].Period()
	last := ss.sequences[len(ss.sequences)-1].Period()
	p, err := period.New(first.Lower, last.Upper, first.LowerInc, last.UpperInc)
	if err != nil {
		return period.Period{}, false
	}
	return p, true
}

// ValueAt implements spec.md section 4.7's value_at at sequence-set
// granularity: the containing sequence is located by binary search, then
// delegated to.
func (ss *SequenceSet) ValueAt(t period.Timestamp, strict bool) (interface{}, bool) {
	found, loc := ss.findTimestamp(t)
	if found {
		return ss.sequences[loc].ValueAt(t, true)
	}
	if strict {
		return nil, false
	}
	// Non-strict: t may coincide with an excluded bound of the sequence
	// immediately before or after loc.
	if loc > 0 {
		if v, ok := ss.sequences[loc-1].ValueAt(t, false); ok {
			return v, true
		}
	}
	if loc < len(ss.sequences) {
		if v, ok := ss.sequences[loc].ValueAt(t, false); ok {
			return v, true
		}
	}
	return nil, false
}

// DistinctValues returns every distinct value across all instants, per
// spec.md section 4.9, in first-seen order using the base-type adapter's
// equality (not ordered — callers that need a stable order should sort
// separately via the adapter's Less).
func (ss *SequenceSet) DistinctValues() ([]interface{}, error) {
	adapter, err := basetype.For(ss.Tag)
	if err != nil {
		return nil, err
	}
	var out []interface{}
	for _, s := range ss.sequences {
		for _, inst := range s.Instants {
			seen := false
			for _, v := range out {
				if adapter.Equal(v, inst.Value) {
					seen = true
					break
				}
			}
			if !seen {
				out = append(out, inst.Value)
			}
		}
	}
	return out, nil
}

// NumInstants is an alias for TotalInstants matching spec.md section 4.9's
// `num_instants` naming.
func (ss *SequenceSet) NumInstants() int { return ss.totalInstants }

// InstantN returns the n'th distinct instant across all sequences in time
// order (spec.md section 4.9's `instant_n`), 0-indexed. A sequence whose
// first instant coincides with the previous sequence's last (a touching,
// disjoint boundary, see sharesBoundaryInstant) contributes its remaining
// instants only, so the shared timestamp is counted once.
func (ss *SequenceSet) InstantN(n int) (tinstant.Instant, bool) {
	if n < 0 {
		return tinstant.Instant{}, false
	}
	for i, s := range ss.sequences {
		insts := s.Instants
		if i > 0 && sharesBoundaryInstant(ss.sequences[i-1], s) {
			insts = insts[1:]
		}
		if n < len(insts) {
			return insts[n], true
		}
		n -= len(insts)
	}
	return tinstant.Instant{}, false
}

// StartInstant and EndInstant return the first and last instants overall.
func (ss *SequenceSet) StartInstant() (tinstant.Instant, bool) {
	if len(ss.sequences) == 0 {
		return tinstant.Instant{}, false
	}
	return ss.sequences[0].StartInstant(), true
}

func (ss *SequenceSet) EndInstant() (tinstant.Instant, bool) {
	if len(ss.sequences) == 0 {
		return tinstant.Instant{}, false
	}
	return ss.sequences[len(ss.sequences)-1].EndInstant(), true
}

// MinInstant and MaxInstant return the instant holding the smallest/largest
// value under the base-type adapter's order (spec.md section 4.9's
// `min_instant`/`max_instant`), requiring an Ordered tag.
func (ss *SequenceSet) MinInstant() (tinstant.Instant, error) {
	return ss.extremeInstant(true)
}

func (ss *SequenceSet) MaxInstant() (tinstant.Instant, error) {
	return ss.extremeInstant(false)
}

func (ss *SequenceSet) extremeInstant(wantMin bool) (tinstant.Instant, error) {
	if !ss.Tag.Ordered() {
		return tinstant.Instant{}, terrors.New(terrors.TypeMismatch, "min/max instant requires an ordered base type", ss.Tag)
	}
	adapter, err := basetype.For(ss.Tag)
	if err != nil {
		return tinstant.Instant{}, err
	}
	var best tinstant.Instant
	have := false
	for _, s := range ss.sequences {
		for _, inst := range s.Instants {
			if !have {
				best, have = inst, true
				continue
			}
			if wantMin && adapter.Less(inst.Value, best.Value) {
				best = inst
			}
			if !wantMin && adapter.Less(best.Value, inst.Value) {
				best = inst
			}
		}
	}
	if !have {
		return tinstant.Instant{}, terrors.New(terrors.OutOfRange, "sequence set has no instants", ss.Tag)
	}
	return best, nil
}

// Span returns the numeric bounding [min, max] across all instant values
// (spec.md section 4.9's numeric span accessor).
func (ss *SequenceSet) Span() (min, max float64, err error) {
	if !ss.Tag.Ordered() {
		return 0, 0, terrors.New(terrors.TypeMismatch, "numeric span requires an ordered base type", ss.Tag)
	}
	adapter, aerr := basetype.For(ss.Tag)
	if aerr != nil {
		return 0, 0, aerr
	}
	have := false
	for _, s := range ss.sequences {
		for _, inst := range s.Instants {
			v := adapter.ToFloat64(inst.Value)
			if !have {
				min, max, have = v, v, true
				continue
			}
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
	}
	if !have {
		return 0, 0, terrors.New(terrors.OutOfRange, "sequence set has no instants", ss.Tag)
	}
	return min, max, nil
}

// Duration returns the sum of each sequence's own duration, per spec.md
// section 4.9's `duration` (gaps between sequences do not count).
func (ss *SequenceSet) Duration() int64 {
	var total int64
	for _, s := range ss.sequences {
		total += s.Duration()
	}
	return total
}

// Equal reports structural equality: same tag, interpolation, and
// sequence-for-sequence equal periods and instants.
func (ss *SequenceSet) Equal(other *SequenceSet) bool {
	if ss.Tag != other.Tag || ss.Interp != other.Interp || len(ss.sequences) != len(other.sequences) {
		return false
	}
	for i := range ss.sequences {
		a, b := ss.sequences[i], other.sequences[i]
		if a.Period() != b.Period() || a.NumInstants() != b.NumInstants() {
			return false
		}
		for j := 0; j < a.NumInstants(); j++ {
			if !a.Instants[j].Equal(b.Instants[j]) {
				return false
			}
		}
	}
	return true
}

// Compare implements spec.md section 4.9's total order: lexicographic by
// instant, then by sequence count as a final tiebreaker for sets that
// share a common instant prefix but differ in how it's grouped into
// sequences.
func (ss *SequenceSet) Compare(other *SequenceSet) int {
	n := ss.NumInstants()
	if other.NumInstants() < n {
		n = other.NumInstants()
	}
	for i := 0; i < n; i++ {
		a, _ := ss.InstantN(i)
		b, _ := other.InstantN(i)
		if c := a.Compare(b); c != 0 {
			return c
		}
	}
	if ss.NumInstants() != other.NumInstants() {
		if ss.NumInstants() < other.NumInstants() {
			return -1
		}
		return 1
	}
	if len(ss.sequences) != len(other.sequences) {
		if len(ss.sequences) < len(other.sequences) {
			return -1
		}
		return 1
	}
	return 0
}
