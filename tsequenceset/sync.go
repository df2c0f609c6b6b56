package tsequenceset

import (
	"sort"

	"github.com/grailbio/temporal/period"
	"github.com/grailbio/temporal/terrors"
	"github.com/grailbio/temporal/tsequence"
)

// SyncMode selects whether Synchronize also splits at the timestamps
// where two Linear sequence sets cross in value (spec.md section 4.8).
type SyncMode int

const (
	// Plain aligns a and b onto a shared breakpoint grid over their
	// common time support, with no extra splitting.
	Plain SyncMode = iota
	// Crossings additionally inserts a breakpoint at every timestamp
	// where a's and b's values (interpolated linearly) become equal.
	Crossings
)

// Synchronize implements spec.md section 4.8: it restricts a and b to
// their shared time support, then re-expresses both as sequences sharing
// exactly the same grid of breakpoint timestamps, so that corresponding
// sequences of the two results cover identical periods. A nil pair (no
// error) means a and b share no time support at all.
func Synchronize(a, b *SequenceSet, mode SyncMode) (*SequenceSet, *SequenceSet, error) {
	if a.Tag != b.Tag {
		return nil, nil, terrors.New(terrors.TypeMismatch, "synchronize requires matching temporal types", a.Tag, b.Tag)
	}
	aTime, _ := a.TimeSupport()
	bTime, _ := b.TimeSupport()
	overlap := aTime.Intersection(bTime)
	if overlap.IsEmpty() {
		return nil, nil, nil
	}

	aRestricted, err := a.RestrictPeriodSet(overlap, true)
	if err != nil {
		return nil, nil, err
	}
	bRestricted, err := b.RestrictPeriodSet(overlap, true)
	if err != nil {
		return nil, nil, err
	}
	if aRestricted == nil || bRestricted == nil {
		return nil, nil, nil
	}

	canCross := mode == Crossings && a.Tag.Ordered() && a.Interp == tsequence.Linear && b.Interp == tsequence.Linear

	var aOut, bOut []tsequence.Sequence
	for _, p := range overlap.Periods() {
		breakpoints := gridBreakpoints(aRestricted, bRestricted, p)
		if canCross {
			breakpoints = addCrossingBreakpoints(aRestricted, bRestricted, breakpoints)
		}
		for i := 0; i+1 < len(breakpoints); i++ {
			lower, upper := breakpoints[i], breakpoints[i+1]
			lowerInc := true
			upperInc := upper == p.Upper && p.UpperInc
			if i+2 < len(breakpoints) {
				upperInc = false
			}
			sub, perr := period.New(lower, upper, lowerInc, upperInc)
			if perr != nil {
				continue
			}
			aPieces, perr := aRestricted.RestrictPeriod(sub, true)
			if perr != nil {
				return nil, nil, perr
			}
			bPieces, perr := bRestricted.RestrictPeriod(sub, true)
			if perr != nil {
				return nil, nil, perr
			}
			if aPieces == nil || bPieces == nil {
				continue
			}
			aOut = append(aOut, aPieces.sequences...)
			bOut = append(bOut, bPieces.sequences...)
		}
	}
	if len(aOut) == 0 || len(bOut) == 0 {
		return nil, nil, nil
	}
	aSynced, err := New(a.Tag, a.Interp, aOut, BuildOpts{Normalize: false})
	if err != nil {
		return nil, nil, err
	}
	bSynced, err := New(b.Tag, b.Interp, bOut, BuildOpts{Normalize: false})
	if err != nil {
		return nil, nil, err
	}
	return aSynced, bSynced, nil
}

// gridBreakpoints collects every instant timestamp either restricted set
// carries inside p, plus p's own bounds, sorted and de-duplicated.
func gridBreakpoints(a, b *SequenceSet, p period.Period) []period.Timestamp {
	set := map[period.Timestamp]bool{p.Lower: true, p.Upper: true}
	collect := func(ss *SequenceSet) {
		for _, s := range ss.sequences {
			sp := s.Period()
			if !sp.Overlaps(p) {
				continue
			}
			for _, inst := range s.Instants {
				if inst.Time >= p.Lower && inst.Time <= p.Upper {
					set[inst.Time] = true
				}
			}
		}
	}
	collect(a)
	collect(b)
	return sortedTimestamps(set)
}

func sortedTimestamps(set map[period.Timestamp]bool) []period.Timestamp {
	out := make([]period.Timestamp, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// addCrossingBreakpoints walks each consecutive pair in breakpoints and,
// if a's and b's linearly-interpolated values swap order across that
// span, adds the closed-form crossing timestamp (spec.md section 4.8)
// as an extra breakpoint.
func addCrossingBreakpoints(a, b *SequenceSet, breakpoints []period.Timestamp) []period.Timestamp {
	set := make(map[period.Timestamp]bool, len(breakpoints))
	for _, t := range breakpoints {
		set[t] = true
	}
	for i := 0; i+1 < len(breakpoints); i++ {
		t0, t1 := breakpoints[i], breakpoints[i+1]
		va0, ok1 := a.ValueAt(t0, false)
		va1, ok2 := a.ValueAt(t1, false)
		vb0, ok3 := b.ValueAt(t0, false)
		vb1, ok4 := b.ValueAt(t1, false)
		if !ok1 || !ok2 || !ok3 || !ok4 {
			continue
		}
		crossing, found := tsequence.FindCrossing(a.Tag, t0, t1, va0, va1, vb0, vb1)
		if found {
			set[crossing.Time] = true
		}
	}
	return sortedTimestamps(set)
}
