package tsequence

import (
	"github.com/grailbio/temporal/terrors"
	"github.com/grailbio/temporal/tinstant"
)

// CanJoin reports whether b can be merged into a without loss, the `join`
// predicate of spec.md section 4.4: same interpolation, contiguous or
// touching periods with compatible inclusivity, and equal value at the
// shared instant for step and linear interpolation.
func (a Sequence) CanJoin(b Sequence) (bool, error) {
	if a.Tag != b.Tag {
		return false, nil
	}
	if a.Interp != b.Interp {
		return false, nil
	}
	pa, pb := a.Period(), b.Period()
	if !pa.Adjacent(pb) && !pa.Overlaps(pb) {
		return false, nil
	}
	if pa.Upper != pb.Lower {
		return false, nil
	}
	switch a.Interp {
	case Discrete:
		return false, nil // discrete sequences never join; every instant is isolated
	case Stepwise, Linear:
		aEnd, bStart := a.EndInstant(), b.StartInstant()
		eq, err := aEnd.ValueEqual(bStart)
		if err != nil {
			return false, err
		}
		if !eq {
			return false, nil
		}
		return true, nil
	}
	return false, nil
}

// Join merges b into a, which must satisfy CanJoin(b). The shared
// boundary instant is kept once, and only once (spec.md section 8
// scenario 1's total_instants count); it is not re-run through
// collinearity normalisation, which would otherwise fold it away as an
// interior point of the merged linear run.
func (a Sequence) Join(b Sequence) (Sequence, error) {
	ok, err := a.CanJoin(b)
	if err != nil {
		return Sequence{}, err
	}
	if !ok {
		return Sequence{}, terrors.New(terrors.ValueMismatchAtJoin, "sequences are not joinable")
	}
	instants := make([]tinstant.Instant, 0, len(a.Instants)+len(b.Instants)-1)
	instants = append(instants, a.Instants...)
	instants = append(instants, b.Instants[1:]...)
	return New(a.Tag, a.Interp, instants, a.LowerInc, b.UpperInc, false)
}
