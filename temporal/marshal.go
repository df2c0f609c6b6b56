package temporal

import (
	"github.com/grailbio/temporal/basetype"
	"github.com/grailbio/temporal/terrors"
	"github.com/grailbio/temporal/tinstant"
	"github.com/grailbio/temporal/tsequence"
	"github.com/grailbio/temporal/tsequenceset"
)

// MarshalProto serializes v (instants and values) to the protobuf envelope
// defined in biopb, via tsequenceset.Marshal. An instant or a bare
// sequence is wrapped in a one-sequence set first, the same normalisation
// Hash uses, so there is exactly one wire encoding in this module rather
// than one per Kind.
func (v Value) MarshalProto() ([]byte, error) {
	set, err := v.asSequenceSet()
	if err != nil {
		return nil, err
	}
	return set.Marshal()
}

// UnmarshalProto reverses MarshalProto, always producing a
// KindSequenceSet Value; callers that need a narrower Kind should inspect
// the result (e.g. a single instant round-trips as a one-instant,
// one-sequence set, not back to KindInstant).
func UnmarshalProto(tag basetype.Tag, interp tsequence.Interpolation, data []byte) (Value, error) {
	set, err := tsequenceset.Unmarshal(tag, interp, data)
	if err != nil {
		return Value{}, err
	}
	return FromSequenceSet(set), nil
}

func (v Value) asSequenceSet() (*tsequenceset.SequenceSet, error) {
	switch v.kind {
	case KindSequenceSet:
		return v.set, nil
	case KindSequence:
		return tsequenceset.New(v.tag, v.seq.Interp, []tsequence.Sequence{v.seq}, tsequenceset.BuildOpts{})
	case KindInstant:
		seq, err := tsequence.New(v.tag, tsequence.Discrete, []tinstant.Instant{v.inst}, true, true, false)
		if err != nil {
			return nil, err
		}
		return tsequenceset.New(v.tag, tsequence.Discrete, []tsequence.Sequence{seq}, tsequenceset.BuildOpts{})
	}
	return nil, terrors.New(terrors.TypeMismatch, "unknown value kind", v.kind)
}
