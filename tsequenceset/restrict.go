package tsequenceset

import (
	"github.com/grailbio/temporal/period"
	"github.com/grailbio/temporal/tsequence"
)

// restrictSequences maps a per-sequence restriction function over every
// sequence in ss, in time order, and rebuilds a SequenceSet from whatever
// survives. A nil, nil result means the restriction produced no time
// support at all (spec.md section 4.6's "the empty sequence set is a
// valid, distinguished result, not an error").
func (ss *SequenceSet) restrictSequences(fn func(tsequence.Sequence) ([]tsequence.Sequence, error)) (*SequenceSet, error) {
	var out []tsequence.Sequence
	for _, s := range ss.sequences {
		pieces, err := fn(s)
		if err != nil {
			return nil, err
		}
		out = append(out, pieces...)
	}
	if len(out) == 0 {
		return nil, nil
	}
	return New(ss.Tag, ss.Interp, out, BuildOpts{Normalize: true})
}

// RestrictValue implements the "at"/"minus" value selector of spec.md
// section 4.6 at sequence-set granularity.
func (ss *SequenceSet) RestrictValue(v interface{}, at bool) (*SequenceSet, error) {
	if at {
		return ss.restrictSequences(func(s tsequence.Sequence) ([]tsequence.Sequence, error) { return s.AtValue(v) })
	}
	return ss.restrictSequences(func(s tsequence.Sequence) ([]tsequence.Sequence, error) { return s.MinusValue(v) })
}

// RestrictValueSet implements the "a set of values" selector: at is the
// union of RestrictValue over every value; minus chains MinusValue across
// the whole set, reflecting spec.md section 4.6's note that minus-of-set is
// the iterated per-value minus, not a single-pass union-then-subtract.
func (ss *SequenceSet) RestrictValueSet(vs []interface{}, at bool) (*SequenceSet, error) {
	if at {
		var out []tsequence.Sequence
		for _, v := range vs {
			matched, err := ss.restrictSequences(func(s tsequence.Sequence) ([]tsequence.Sequence, error) { return s.AtValue(v) })
			if err != nil {
				return nil, err
			}
			if matched != nil {
				out = append(out, matched.sequences...)
			}
		}
		if len(out) == 0 {
			return nil, nil
		}
		return New(ss.Tag, ss.Interp, out, BuildOpts{Normalize: true})
	}
	cur := ss
	for _, v := range vs {
		next, err := cur.RestrictValue(v, false)
		if err != nil {
			return nil, err
		}
		if next == nil {
			return nil, nil
		}
		cur = next
	}
	return cur, nil
}

// RestrictSpan implements the numeric-span selector.
func (ss *SequenceSet) RestrictSpan(sp tsequence.Span, at bool) (*SequenceSet, error) {
	if at {
		return ss.restrictSequences(func(s tsequence.Sequence) ([]tsequence.Sequence, error) { return s.AtSpan(sp) })
	}
	return ss.restrictSequences(func(s tsequence.Sequence) ([]tsequence.Sequence, error) { return s.MinusSpan(sp) })
}

// RestrictSpanSet implements the "a set of numeric spans" selector the
// same way RestrictValueSet does for discrete values: at unions, minus
// iterates.
func (ss *SequenceSet) RestrictSpanSet(spans []tsequence.Span, at bool) (*SequenceSet, error) {
	if at {
		var out []tsequence.Sequence
		for _, sp := range spans {
			matched, err := ss.RestrictSpan(sp, true)
			if err != nil {
				return nil, err
			}
			if matched != nil {
				out = append(out, matched.sequences...)
			}
		}
		if len(out) == 0 {
			return nil, nil
		}
		return New(ss.Tag, ss.Interp, out, BuildOpts{Normalize: true})
	}
	cur := ss
	for _, sp := range spans {
		next, err := cur.RestrictSpan(sp, false)
		if err != nil {
			return nil, err
		}
		if next == nil {
			return nil, nil
		}
		cur = next
	}
	return cur, nil
}

// RestrictPeriod implements the period selector. For "at" it locates the
// first possibly-overlapping sequence via findTimestamp before scanning,
// the "binary-search then walk" access pattern spec.md section 4.3
// describes, since only overlapping sequences can contribute. For "minus"
// every sequence can contribute (an entirely-outside sequence passes
// through unchanged), so it walks the full slice.
func (ss *SequenceSet) RestrictPeriod(p period.Period, at bool) (*SequenceSet, error) {
	var out []tsequence.Sequence
	if at {
		_, start := ss.findTimestamp(p.Lower)
		if start > 0 {
			start--
		}
		for i := start; i < len(ss.sequences); i++ {
			s := ss.sequences[i]
			if s.Period().Lower > p.Upper {
				break
			}
			seq, ok, err := s.AtPeriod(p)
			if err != nil {
				return nil, err
			}
			if ok {
				out = append(out, seq)
			}
		}
	} else {
		for _, s := range ss.sequences {
			pieces, err := s.MinusPeriod(p)
			if err != nil {
				return nil, err
			}
			out = append(out, pieces...)
		}
	}
	if len(out) == 0 {
		return nil, nil
	}
	return New(ss.Tag, ss.Interp, out, BuildOpts{Normalize: true})
}

// RestrictPeriodSet implements spec.md section 4.6's period-set selector,
// the one RestrictPeriod/DeletePeriod/Update build on.
func (ss *SequenceSet) RestrictPeriodSet(ps period.PeriodSet, at bool) (*SequenceSet, error) {
	if at {
		return ss.restrictSequences(func(s tsequence.Sequence) ([]tsequence.Sequence, error) { return s.AtPeriodSet(ps) })
	}
	return ss.restrictSequences(func(s tsequence.Sequence) ([]tsequence.Sequence, error) { return s.MinusPeriodSet(ps) })
}

// RestrictTimestamp implements the timestamp selector in terms of
// RestrictPeriod applied to the degenerate instant period.
func (ss *SequenceSet) RestrictTimestamp(t period.Timestamp, at bool) (*SequenceSet, error) {
	return ss.RestrictPeriod(period.Instant(t), at)
}

// RestrictTimestampSet implements the timestamp-set selector.
func (ss *SequenceSet) RestrictTimestampSet(ts []period.Timestamp, at bool) (*SequenceSet, error) {
	periods := make([]period.Period, len(ts))
	for i, t := range ts {
		periods[i] = period.Instant(t)
	}
	return ss.RestrictPeriodSet(period.NewPeriodSet(periods...), at)
}
