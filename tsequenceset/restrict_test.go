package tsequenceset

import (
	"testing"

	"github.com/grailbio/temporal/basetype"
	"github.com/grailbio/temporal/period"
	"github.com/grailbio/temporal/tsequence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoValueSeqSet(t *testing.T) *SequenceSet {
	a := mustSeq(tsequence.Stepwise, true, false, 0, 1, 5, 1, 10, 2)
	b := mustSeq(tsequence.Stepwise, true, true, 20, 2, 25, 2, 30, 3)
	ss, err := New(basetype.Int, tsequence.Stepwise, []tsequence.Sequence{a, b}, BuildOpts{})
	require.NoError(t, err)
	return ss
}

func TestRestrictValueAtUnionsAcrossSequences(t *testing.T) {
	ss := twoValueSeqSet(t)
	out, err := ss.RestrictValue(int64(2), true)
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, 2, out.NumSequences())
	assert.Equal(t, 3, out.TotalInstants())
}

func TestRestrictValueMinusRemovesOnlyMatchingRuns(t *testing.T) {
	ss := twoValueSeqSet(t)
	out, err := ss.RestrictValue(int64(2), false)
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, 2, out.NumSequences())
	assert.Equal(t, 5, out.TotalInstants())
}

func TestRestrictValueSetAtUnionsMultipleValues(t *testing.T) {
	ss := twoValueSeqSet(t)
	out, err := ss.RestrictValueSet([]interface{}{int64(1), int64(3)}, true)
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, 2, out.NumSequences())
}

func TestRestrictPeriodAtOnlyTouchesOverlappingSequence(t *testing.T) {
	ss := twoValueSeqSet(t)
	p, err := period.New(22, 28, true, true)
	require.NoError(t, err)
	out, err := ss.RestrictPeriod(p, true)
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, 1, out.NumSequences())
}

func TestRestrictPeriodSetMinusEntirelyEmptiesResult(t *testing.T) {
	ss := twoValueSeqSet(t)
	whole, err := ss.TimeSupport()
	require.NoError(t, err)
	out, err := ss.RestrictPeriodSet(whole, false)
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestRestrictTimestampDelegatesToRestrictPeriod(t *testing.T) {
	ss := twoValueSeqSet(t)
	out, err := ss.RestrictTimestamp(25, true)
	require.NoError(t, err)
	require.NotNil(t, out)
	v, ok := out.ValueAt(25, true)
	require.True(t, ok)
	assert.Equal(t, int64(2), v)
}

func TestRestrictTimestampSetAtCollectsEachMatch(t *testing.T) {
	ss := twoValueSeqSet(t)
	out, err := ss.RestrictTimestampSet([]period.Timestamp{0, 25}, true)
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, 2, out.TotalInstants())
}
