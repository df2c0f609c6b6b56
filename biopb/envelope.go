// Package biopb holds the wire-message types used to move a packed
// sequence set between processes: the protobuf envelope that wraps
// tsequenceset's binary-encoded payload, and this package's comparison
// helpers.
package biopb

import "fmt"

// SequenceSetEnvelope is the protobuf wire form of a marshaled
// tsequenceset.SequenceSet (spec.md section 6's binary envelope).
// Adapted from the teacher's Coord/CoordRange message shape: a small,
// tagged, fixed-field header (there RefId/Pos/Seq; here Tag/Interp/
// LowerBound/UpperBound) plus an opaque payload, described with
// protobuf struct tags so github.com/gogo/protobuf/proto can marshal it
// by reflection without a generated .pb.go file.
type SequenceSetEnvelope struct {
	Tag        int32  `protobuf:"varint,1,opt,name=tag" json:"tag"`
	Interp     int32  `protobuf:"varint,2,opt,name=interp" json:"interp"`
	LowerBound int64  `protobuf:"varint,3,opt,name=lower_bound" json:"lower_bound"`
	UpperBound int64  `protobuf:"varint,4,opt,name=upper_bound" json:"upper_bound"`
	Payload    []byte `protobuf:"bytes,5,opt,name=payload" json:"payload"`
	Compressed bool   `protobuf:"varint,6,opt,name=compressed" json:"compressed"`
}

func (m *SequenceSetEnvelope) Reset()         { *m = SequenceSetEnvelope{} }
func (m *SequenceSetEnvelope) String() string { return fmt.Sprintf("%+v", *m) }
func (m *SequenceSetEnvelope) ProtoMessage()  {}

// Compare orders envelopes by (Tag, Interp, LowerBound, UpperBound), the
// same tiebreak-chain shape as the teacher's Coord.Compare (there
// RefId, then Pos, then Seq).
func (m *SequenceSetEnvelope) Compare(o *SequenceSetEnvelope) int {
	if m.Tag != o.Tag {
		return int(m.Tag - o.Tag)
	}
	if m.Interp != o.Interp {
		return int(m.Interp - o.Interp)
	}
	if m.LowerBound != o.LowerBound {
		if m.LowerBound < o.LowerBound {
			return -1
		}
		return 1
	}
	if m.UpperBound != o.UpperBound {
		if m.UpperBound < o.UpperBound {
			return -1
		}
		return 1
	}
	return 0
}

// EQ reports whether m and o carry the same header and payload bytes.
func (m *SequenceSetEnvelope) EQ(o *SequenceSetEnvelope) bool {
	if m.Compare(o) != 0 || m.Compressed != o.Compressed || len(m.Payload) != len(o.Payload) {
		return false
	}
	for i := range m.Payload {
		if m.Payload[i] != o.Payload[i] {
			return false
		}
	}
	return true
}
