package tsequenceset

import (
	"github.com/grailbio/base/log"
	"github.com/grailbio/temporal/bbox"
	"github.com/grailbio/temporal/terrors"
	"github.com/grailbio/temporal/tinstant"
	"github.com/grailbio/temporal/tsequence"
)

// clone returns an independent SequenceSet with no reserved spare
// capacity, the representation used whenever expand=false requests a
// fresh value rather than an in-place mutation (spec.md section 3's
// "Ownership": "mutating operations... produce a new value unless the
// packed buffer has reserved capacity").
func (ss *SequenceSet) clone() *SequenceSet {
	backing := make([]tsequence.Sequence, len(ss.sequences))
	copy(backing, ss.sequences)
	return &SequenceSet{Tag: ss.Tag, Interp: ss.Interp, sequences: backing, totalInstants: ss.totalInstants, box: ss.box}
}

// AppendSequence implements spec.md section 4.4's append_sequence. With
// expand=true the receiver is mutated in place (growing its reserved
// capacity via the circular.NextExp2 doubling in ensureCapacity if
// needed) and returned; with expand=false an independent copy is
// returned and the receiver is untouched.
func (ss *SequenceSet) AppendSequence(seq tsequence.Sequence, expand bool) (*SequenceSet, error) {
	target := ss
	if !expand {
		target = ss.clone()
	}
	if err := target.appendSequenceInPlace(seq); err != nil {
		return nil, err
	}
	return target, nil
}

func (ss *SequenceSet) appendSequenceInPlace(seq tsequence.Sequence) error {
	if seq.Tag != ss.Tag {
		return terrors.New(terrors.TypeMismatch, "appended sequence has a different temporal type", seq.Tag, ss.Tag)
	}
	if seq.Interp != ss.Interp {
		return terrors.New(terrors.InterpolationMismatch, "appended sequence has a different interpolation", seq.Interp, ss.Interp)
	}
	if len(ss.sequences) == 0 {
		ss.ensureCapacity(1)
		ss.sequences = append(ss.sequences, seq)
		ss.totalInstants += seq.NumInstants()
		ss.box = bbox.Union(ss.box, seq.BBox())
		return nil
	}
	last := ss.sequences[len(ss.sequences)-1]
	can, err := last.CanJoin(seq)
	if err != nil {
		return err
	}
	if can {
		joined, err := last.Join(seq)
		if err != nil {
			return err
		}
		log.Debug.Printf("tsequenceset: joining appended sequence into trailing sequence at %v", joined.Period())
		ss.totalInstants += joined.NumInstants() - last.NumInstants()
		ss.sequences[len(ss.sequences)-1] = joined
		ss.recomputeBoxFromScratch()
		return nil
	}
	lastPeriod, newPeriod := last.Period(), seq.Period()
	if !lastPeriod.Before(newPeriod) {
		return terrors.New(terrors.InvalidOrder, "appended sequence does not strictly follow the last sequence", lastPeriod, newPeriod)
	}
	ss.ensureCapacity(len(ss.sequences) + 1)
	added := seq.NumInstants()
	if sharesBoundaryInstant(last, seq) {
		added--
	}
	ss.sequences = append(ss.sequences, seq)
	ss.totalInstants += added
	ss.box = bbox.Union(ss.box, seq.BBox())
	return nil
}

// AppendInstant implements spec.md section 4.4's append_instant: the new
// instant's timestamp must be strictly greater than the last, or equal
// with an equal value and the current upper bound exclusive (i.e. the
// instant legitimately extends the open end of the trailing sequence).
func (ss *SequenceSet) AppendInstant(inst tinstant.Instant, expand bool) (*SequenceSet, error) {
	target := ss
	if !expand {
		target = ss.clone()
	}
	if err := target.appendInstantInPlace(inst); err != nil {
		return nil, err
	}
	return target, nil
}

func (ss *SequenceSet) appendInstantInPlace(inst tinstant.Instant) error {
	if inst.Tag != ss.Tag {
		return terrors.New(terrors.TypeMismatch, "appended instant has a different temporal type", inst.Tag, ss.Tag)
	}
	single, err := tsequence.New(ss.Tag, ss.Interp, []tinstant.Instant{inst}, true, true, false)
	if err != nil {
		return err
	}
	if len(ss.sequences) == 0 {
		return ss.appendSequenceInPlace(single)
	}
	last := ss.sequences[len(ss.sequences)-1]
	lastEnd := last.EndInstant()
	if inst.Time < lastEnd.Time {
		return terrors.New(terrors.InvalidOrder, "appended instant timestamp precedes the sequence set's last instant", lastEnd.Time, inst.Time)
	}
	if inst.Time == lastEnd.Time {
		eq, err := lastEnd.ValueEqual(inst)
		if err != nil {
			return err
		}
		if !eq || last.Period().UpperInc {
			return terrors.New(terrors.ValueMismatchAtJoin, "appended instant collides with the sequence set's last instant", lastEnd, inst)
		}
		// Equal value at an excluded upper bound: no-op, the instant is
		// already implied.
		return nil
	}
	if ss.Interp != tsequence.Discrete {
		// A later instant extends the trailing sequence up to and
		// including itself.
		instants := append(append([]tinstant.Instant(nil), last.Instants...), inst)
		extended, err := tsequence.New(ss.Tag, ss.Interp, instants, last.LowerInc, true, false)
		if err != nil {
			return err
		}
		ss.sequences[len(ss.sequences)-1] = extended
		ss.recompute()
		return nil
	}
	return ss.appendSequenceInPlace(single)
}

func (ss *SequenceSet) recomputeBoxFromScratch() {
	ss.recompute()
}
