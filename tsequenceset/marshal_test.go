package tsequenceset

import (
	"testing"

	"github.com/grailbio/temporal/basetype"
	"github.com/grailbio/temporal/tsequence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	ss := twoValueSeqSet(t)

	buf, err := ss.Encode()
	require.NoError(t, err)

	out, err := Decode(basetype.Int, tsequence.Stepwise, buf)
	require.NoError(t, err)
	assert.True(t, ss.Equal(out))
}

func TestEncodeDecodeRoundTripSingleInstantSequence(t *testing.T) {
	a := mustSeq(tsequence.Stepwise, true, true, 5, 42)
	ss, err := New(basetype.Int, tsequence.Stepwise, []tsequence.Sequence{a}, BuildOpts{})
	require.NoError(t, err)

	buf, err := ss.Encode()
	require.NoError(t, err)

	out, err := Decode(basetype.Int, tsequence.Stepwise, buf)
	require.NoError(t, err)
	assert.True(t, ss.Equal(out))
}

func TestDecodeRejectsMismatchedTag(t *testing.T) {
	ss := twoValueSeqSet(t)
	buf, err := ss.Encode()
	require.NoError(t, err)

	_, err = Decode(basetype.Float, tsequence.Stepwise, buf)
	require.Error(t, err)
}

func TestDecodeRejectsMismatchedInterp(t *testing.T) {
	ss := twoValueSeqSet(t)
	buf, err := ss.Encode()
	require.NoError(t, err)

	_, err = Decode(basetype.Int, tsequence.Linear, buf)
	require.Error(t, err)
}

func TestDecodeRejectsTruncatedHeader(t *testing.T) {
	_, err := Decode(basetype.Int, tsequence.Stepwise, []byte{1, 2, 3})
	require.Error(t, err)
}

func TestDecodeRejectsTruncatedSequenceHeader(t *testing.T) {
	ss := twoValueSeqSet(t)
	buf, err := ss.Encode()
	require.NoError(t, err)

	// Keep the top-level header (16 bytes) but cut off before any
	// sequence header can be read in full.
	_, err = Decode(basetype.Int, tsequence.Stepwise, buf[:20])
	require.Error(t, err)
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	ss := twoValueSeqSet(t)

	data, err := ss.Marshal()
	require.NoError(t, err)

	out, err := Unmarshal(basetype.Int, tsequence.Stepwise, data)
	require.NoError(t, err)
	assert.True(t, ss.Equal(out))
}

func TestUnmarshalRejectsMismatchedEnvelopeTag(t *testing.T) {
	ss := twoValueSeqSet(t)
	data, err := ss.Marshal()
	require.NoError(t, err)

	_, err = Unmarshal(basetype.Float, tsequence.Stepwise, data)
	require.Error(t, err)
}

func TestUnmarshalRejectsGarbageBytes(t *testing.T) {
	_, err := Unmarshal(basetype.Int, tsequence.Stepwise, []byte{0xff, 0xfe, 0xfd, 0xfc, 0xfb})
	require.Error(t, err)
}
