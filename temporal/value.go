// Package temporal is the dispatcher façade described in spec.md's
// component 6: a tagged union over a temporal instant, a single temporal
// sequence, and a temporal sequence set, plus the aggregation and
// comparison operations of component 7 (time-weighted average, integral,
// total order, structural hash) that need to work across all three.
//
// Grounded on the teacher's `encoding/bam.Record`/`biopb.Coord` pairing,
// where a thin wrapper type dispatches common operations (Compare, EQ)
// across a couple of concrete representations without a shared interface
// forcing every caller through method-set gymnastics.
package temporal

import (
	"github.com/grailbio/temporal/basetype"
	"github.com/grailbio/temporal/terrors"
	"github.com/grailbio/temporal/tinstant"
	"github.com/grailbio/temporal/tsequence"
	"github.com/grailbio/temporal/tsequenceset"
)

// Kind identifies which of the three representations a Value holds.
type Kind int

const (
	KindInstant Kind = iota
	KindSequence
	KindSequenceSet
)

func (k Kind) String() string {
	switch k {
	case KindInstant:
		return "instant"
	case KindSequence:
		return "sequence"
	case KindSequenceSet:
		return "sequenceset"
	default:
		return "unknown"
	}
}

// Value is the tagged union: exactly one of the three fields is valid,
// selected by Kind.
type Value struct {
	kind Kind
	tag  basetype.Tag

	inst tinstant.Instant
	seq  tsequence.Sequence
	set  *tsequenceset.SequenceSet
}

// FromInstant wraps a single temporal instant.
func FromInstant(inst tinstant.Instant) Value {
	return Value{kind: KindInstant, tag: inst.Tag, inst: inst}
}

// FromSequence wraps a single temporal sequence.
func FromSequence(seq tsequence.Sequence) Value {
	return Value{kind: KindSequence, tag: seq.Tag, seq: seq}
}

// FromSequenceSet wraps a temporal sequence set.
func FromSequenceSet(set *tsequenceset.SequenceSet) Value {
	return Value{kind: KindSequenceSet, tag: set.Tag, set: set}
}

// Kind and Tag report the union's current representation and base type.
func (v Value) Kind() Kind          { return v.kind }
func (v Value) Tag() basetype.Tag   { return v.tag }
func (v Value) Instant() (tinstant.Instant, bool) {
	return v.inst, v.kind == KindInstant
}
func (v Value) Sequence() (tsequence.Sequence, bool) {
	return v.seq, v.kind == KindSequence
}
func (v Value) SequenceSet() (*tsequenceset.SequenceSet, bool) {
	return v.set, v.kind == KindSequenceSet
}

// Duration returns the value's time extent in microseconds: zero for an
// instant, the sequence's own span for a sequence, and the sum of
// per-sequence spans (excluding inter-sequence gaps) for a set.
func (v Value) Duration() int64 {
	switch v.kind {
	case KindInstant:
		return 0
	case KindSequence:
		return v.seq.Duration()
	case KindSequenceSet:
		return v.set.Duration()
	}
	return 0
}

// Integral returns the time-weighted sum of an ordered numeric value over
// its own time extent (zero for a bare instant, which has no duration to
// integrate over).
func (v Value) Integral() (float64, error) {
	if !v.tag.Ordered() {
		return 0, terrors.New(terrors.TypeMismatch, "integral requires an ordered base type", v.tag)
	}
	switch v.kind {
	case KindInstant:
		return 0, nil
	case KindSequence:
		return v.seq.Integral(), nil
	case KindSequenceSet:
		var total float64
		for _, s := range v.set.Sequences() {
			total += s.Integral()
		}
		return total, nil
	}
	return 0, nil
}

// TimeWeightedAverage divides Integral by Duration, the component 7
// aggregation spec.md names explicitly. It errors on a zero-duration
// value (a bare instant, or a sequence/set whose span collapses to a
// point) since the average is undefined there.
func (v Value) TimeWeightedAverage() (float64, error) {
	integral, err := v.Integral()
	if err != nil {
		return 0, err
	}
	dur := v.Duration()
	if dur == 0 {
		return 0, terrors.New(terrors.OutOfRange, "time-weighted average undefined over a zero-duration value", dur)
	}
	return integral / float64(dur), nil
}

// Hash returns a structural hash of v, delegating to
// tsequenceset.SequenceSet.Hash64 for the set case (wrapping a
// single-sequence or single-instant value in a one-element set to reuse
// the same seahash-backed digest rather than duplicating the hashing
// logic per representation).
func (v Value) Hash() (uint64, error) {
	set, err := v.asSequenceSet()
	if err != nil {
		return 0, err
	}
	return set.Hash64(), nil
}

// Compare implements spec.md section 4.9's total order, generalized
// across the tagged union: instant < sequence < sequence set when kinds
// differ (an arbitrary but total and stable tiebreak), and delegates to
// the representation's own ordering when kinds match.
func (v Value) Compare(other Value) int {
	if v.kind != other.kind {
		if v.kind < other.kind {
			return -1
		}
		return 1
	}
	switch v.kind {
	case KindInstant:
		return v.inst.Compare(other.inst)
	case KindSequence:
		a := v.seq.StartInstant()
		b := other.seq.StartInstant()
		if c := a.Compare(b); c != 0 {
			return c
		}
		if v.seq.NumInstants() != other.seq.NumInstants() {
			if v.seq.NumInstants() < other.seq.NumInstants() {
				return -1
			}
			return 1
		}
		return 0
	case KindSequenceSet:
		return v.set.Compare(other.set)
	}
	return 0
}
