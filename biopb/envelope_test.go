package biopb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompareOrdersByTagFirst(t *testing.T) {
	a := &SequenceSetEnvelope{Tag: 1, Interp: 0, LowerBound: 0, UpperBound: 0}
	b := &SequenceSetEnvelope{Tag: 2, Interp: 0, LowerBound: 0, UpperBound: 0}
	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
}

func TestCompareFallsThroughToInterpThenBounds(t *testing.T) {
	base := &SequenceSetEnvelope{Tag: 1, Interp: 1, LowerBound: 10, UpperBound: 20}
	sameExceptInterp := &SequenceSetEnvelope{Tag: 1, Interp: 2, LowerBound: 10, UpperBound: 20}
	assert.Equal(t, -1, base.Compare(sameExceptInterp))

	sameExceptLower := &SequenceSetEnvelope{Tag: 1, Interp: 1, LowerBound: 11, UpperBound: 20}
	assert.Equal(t, -1, base.Compare(sameExceptLower))

	sameExceptUpper := &SequenceSetEnvelope{Tag: 1, Interp: 1, LowerBound: 10, UpperBound: 21}
	assert.Equal(t, -1, base.Compare(sameExceptUpper))

	identical := &SequenceSetEnvelope{Tag: 1, Interp: 1, LowerBound: 10, UpperBound: 20}
	assert.Equal(t, 0, base.Compare(identical))
}

func TestEQRequiresMatchingPayloadAndCompressedFlag(t *testing.T) {
	a := &SequenceSetEnvelope{Tag: 1, Payload: []byte{1, 2, 3}, Compressed: true}
	b := &SequenceSetEnvelope{Tag: 1, Payload: []byte{1, 2, 3}, Compressed: true}
	assert.True(t, a.EQ(b))

	diffCompressed := &SequenceSetEnvelope{Tag: 1, Payload: []byte{1, 2, 3}, Compressed: false}
	assert.False(t, a.EQ(diffCompressed))

	diffPayload := &SequenceSetEnvelope{Tag: 1, Payload: []byte{1, 2, 9}, Compressed: true}
	assert.False(t, a.EQ(diffPayload))

	diffLen := &SequenceSetEnvelope{Tag: 1, Payload: []byte{1, 2}, Compressed: true}
	assert.False(t, a.EQ(diffLen))
}

func TestResetClearsAllFields(t *testing.T) {
	m := &SequenceSetEnvelope{Tag: 5, Interp: 2, LowerBound: 1, UpperBound: 2, Payload: []byte{9}, Compressed: true}
	m.Reset()
	assert.Equal(t, SequenceSetEnvelope{}, *m)
}

func TestStringIncludesFieldValues(t *testing.T) {
	m := &SequenceSetEnvelope{Tag: 5}
	s := m.String()
	assert.Contains(t, s, "Tag:5")
}
