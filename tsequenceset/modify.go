package tsequenceset

import (
	"sort"

	"github.com/grailbio/temporal/basetype"
	"github.com/grailbio/temporal/period"
	"github.com/grailbio/temporal/terrors"
	"github.com/grailbio/temporal/tinstant"
	"github.com/grailbio/temporal/tsequence"
)

// Insert implements spec.md section 4.5: returns a new sequence set whose
// time support is time(a) ∪ time(b). The two inputs' sequences are
// streamed together in time order (covering both the "disjoint" and
// "interleave" cases from spec.md uniformly, since both reduce to
// "combine and re-validate strict ordering"); a genuine overlap between a
// sequence of a and a sequence of b — as opposed to a touching boundary —
// surfaces as InvalidOrder from the underlying constructor, since insert
// is not defined to resolve overlapping time support (update is, by first
// subtracting b's time from a).
//
// When two combined sequences leave a genuine gap (neither touches the
// other, both sides inclusive) and the interpolation is stepwise or
// linear, a bridging sequence is synthesized connecting the two boundary
// instants so the interpolation stays defined across the gap. The
// bridging sequence is an ordinary Go value; no explicit release step is
// needed, unlike the packed-buffer original this module is modeled on.
func Insert(a, b *SequenceSet) (*SequenceSet, error) {
	if a.Tag != b.Tag {
		return nil, terrors.New(terrors.TypeMismatch, "insert requires matching temporal types", a.Tag, b.Tag)
	}
	if a.Interp != b.Interp {
		return nil, terrors.New(terrors.InterpolationMismatch, "insert requires matching interpolation", a.Interp, b.Interp)
	}
	combined := make([]tsequence.Sequence, 0, len(a.sequences)+len(b.sequences))
	combined = append(combined, a.sequences...)
	combined = append(combined, b.sequences...)
	sort.Slice(combined, func(i, j int) bool {
		return combined[i].Period().Lower < combined[j].Period().Lower
	})

	if err := checkTouchingAgree(combined); err != nil {
		return nil, err
	}

	withBridges, err := bridgeGaps(a.Interp, combined)
	if err != nil {
		return nil, err
	}

	return New(a.Tag, a.Interp, withBridges, BuildOpts{Normalize: true})
}

// checkTouchingAgree walks adjacent combined sequences in sorted order
// and verifies that any pair touching at a shared inclusive instant
// agrees in value there (spec.md section 4.5's "at every touching pair
// the value at the shared instant must agree").
func checkTouchingAgree(sortedSeqs []tsequence.Sequence) error {
	for i := 1; i < len(sortedSeqs); i++ {
		prev, cur := sortedSeqs[i-1], sortedSeqs[i]
		pp, cp := prev.Period(), cur.Period()
		if pp.Upper == cp.Lower && pp.UpperInc && cp.LowerInc {
			eq, err := prev.EndInstant().ValueEqual(cur.StartInstant())
			if err != nil {
				return err
			}
			if !eq {
				return terrors.New(terrors.ValueMismatchAtJoin, "touching sequences disagree on shared instant value", pp, cp)
			}
		}
	}
	return nil
}

// bridgeGaps synthesizes a connecting sequence across every genuine,
// both-sides-inclusive time gap between consecutively ordered sequences
// (spec.md section 4.5's "synthesising a bridging sequence between an
// inclusive upper of one side and the inclusive lower of the other").
func bridgeGaps(interp tsequence.Interpolation, sortedSeqs []tsequence.Sequence) ([]tsequence.Sequence, error) {
	if interp == tsequence.Discrete || len(sortedSeqs) < 2 {
		return sortedSeqs, nil
	}
	out := make([]tsequence.Sequence, 0, len(sortedSeqs)*2)
	out = append(out, sortedSeqs[0])
	for i := 1; i < len(sortedSeqs); i++ {
		prev, cur := out[len(out)-1], sortedSeqs[i]
		pp, cp := prev.Period(), cur.Period()
		if pp.Upper < cp.Lower && pp.UpperInc && cp.LowerInc {
			bridge, err := tsequence.New(prev.Tag, interp,
				[]tinstant.Instant{prev.EndInstant(), cur.StartInstant()}, false, false, false)
			if err == nil {
				out = append(out, bridge)
			}
		}
		out = append(out, cur)
	}
	return out, nil
}

// Update implements spec.md section 4.5: update(a, b) = insert(a minus
// time(b), b).
func Update(a, b *SequenceSet) (*SequenceSet, error) {
	bTime, err := b.TimeSupport()
	if err != nil {
		return nil, err
	}
	aMinus, err := a.RestrictPeriodSet(bTime, false)
	if err != nil {
		return nil, err
	}
	if aMinus == nil {
		return b.clone(), nil
	}
	return Insert(aMinus, b)
}

// DeleteTimestamp removes a single timestamp from ss, per spec.md section
// 4.5, stitching the resulting hole shut when the two flanking values
// agree and the interpolation permits (see DESIGN.md's resolution of the
// delete_periodset Open Question).
func (ss *SequenceSet) DeleteTimestamp(t period.Timestamp) (*SequenceSet, error) {
	return ss.DeletePeriod(period.Instant(t))
}

// DeleteTimestampSet removes every timestamp in ts.
func (ss *SequenceSet) DeleteTimestampSet(ts []period.Timestamp) (*SequenceSet, error) {
	cur := ss
	for _, t := range ts {
		next, err := cur.DeleteTimestamp(t)
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

// DeletePeriod removes p's time support from ss, stitching the hole when
// possible.
func (ss *SequenceSet) DeletePeriod(p period.Period) (*SequenceSet, error) {
	remainder, err := ss.RestrictPeriodSet(period.NewPeriodSet(p), false)
	if err != nil {
		return nil, err
	}
	if remainder == nil {
		return nil, nil
	}
	return stitch(ss, p, remainder)
}

// DeletePeriodSet removes every period in ps from ss, stitching each hole
// in turn.
func (ss *SequenceSet) DeletePeriodSet(ps period.PeriodSet) (*SequenceSet, error) {
	cur := ss
	for _, p := range ps.Periods() {
		next, err := cur.DeletePeriod(p)
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

// stitch implements the delete-stitching rule this module defines
// explicitly per spec.md section 9's Open Question: the hole left by
// deleting hole from orig is rejoined into a single sequence iff the
// value immediately before hole's lower bound equals the value
// immediately after hole's upper bound, and the interpolation is
// stepwise or linear (never discrete — a discrete sequence has no "value
// between samples" to stitch across, so a deleted discrete instant
// simply leaves a hole).
//
// When stitchable, a synthetic two-instant bridge exactly spanning hole
// (inclusive on both ends, carrying the agreed value) is inserted among
// remainder's sequences; New's normalize pass then chains the join
// predicate across both of the bridge's boundaries, fusing the flanking
// pieces and the bridge into one sequence.
func stitch(orig *SequenceSet, hole period.Period, remainder *SequenceSet) (*SequenceSet, error) {
	if orig.Interp == tsequence.Discrete {
		return remainder, nil
	}
	before, okBefore := orig.ValueAt(hole.Lower, false)
	after, okAfter := orig.ValueAt(hole.Upper, false)
	if !okBefore || !okAfter {
		return remainder, nil
	}
	adapter, err := basetype.For(orig.Tag)
	if err != nil {
		return nil, err
	}
	if !adapter.Equal(before, after) {
		return remainder, nil
	}
	bridgeInstants := []tinstant.Instant{}
	lowerInst, err := tinstant.New(hole.Lower, before, orig.Tag)
	if err != nil {
		return nil, err
	}
	bridgeInstants = append(bridgeInstants, lowerInst)
	if hole.Upper != hole.Lower {
		upperInst, err := tinstant.New(hole.Upper, after, orig.Tag)
		if err != nil {
			return nil, err
		}
		bridgeInstants = append(bridgeInstants, upperInst)
	}
	bridge, err := tsequence.New(orig.Tag, orig.Interp, bridgeInstants, true, true, false)
	if err != nil {
		return nil, err
	}
	merged := append(append([]tsequence.Sequence{}, remainder.sequences...), bridge)
	return New(orig.Tag, orig.Interp, merged, BuildOpts{Normalize: true})
}
