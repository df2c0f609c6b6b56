package tsequenceset

import (
	"testing"

	"github.com/grailbio/temporal/basetype"
	"github.com/grailbio/temporal/period"
	"github.com/grailbio/temporal/tsequence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeSupportAndPeriod(t *testing.T) {
	ss := twoValueSeqSet(t)
	ts, err := ss.TimeSupport()
	require.NoError(t, err)
	assert.Len(t, ts.Periods(), 2)

	p, ok := ss.Period()
	require.True(t, ok)
	assert.Equal(t, period.Timestamp(0), p.Lower)
	assert.Equal(t, period.Timestamp(30), p.Upper)
}

func TestPeriodOnEmptySet(t *testing.T) {
	ss := &SequenceSet{Tag: basetype.Int, Interp: tsequence.Stepwise}
	_, ok := ss.Period()
	assert.False(t, ok)
}

func TestValueAtNonStrictDoesNotBridgeGapBetweenSequences(t *testing.T) {
	ss := twoValueSeqSet(t)
	// t=15 sits in the gap between a=[0,10) and b=[20,30]; neither
	// sequence's own bound covers it, so non-strict lookup fails too.
	_, ok := ss.ValueAt(15, false)
	assert.False(t, ok)
}

func TestValueAtNonStrictHitsExcludedUpperBound(t *testing.T) {
	a := mustSeq(tsequence.Stepwise, true, false, 0, 1, 10, 2)
	ss, err := New(basetype.Int, tsequence.Stepwise, []tsequence.Sequence{a}, BuildOpts{})
	require.NoError(t, err)

	_, ok := ss.ValueAt(10, true)
	assert.False(t, ok)
	v, ok := ss.ValueAt(10, false)
	require.True(t, ok)
	assert.Equal(t, int64(2), v)
}

func TestDistinctValues(t *testing.T) {
	ss := twoValueSeqSet(t)
	vals, err := ss.DistinctValues()
	require.NoError(t, err)
	assert.ElementsMatch(t, []interface{}{int64(1), int64(2), int64(3)}, vals)
}

func TestInstantNWalksAcrossSequences(t *testing.T) {
	ss := twoValueSeqSet(t)
	inst, ok := ss.InstantN(3)
	require.True(t, ok)
	assert.Equal(t, period.Timestamp(20), inst.Time)

	_, ok = ss.InstantN(100)
	assert.False(t, ok)
}

func TestStartAndEndInstant(t *testing.T) {
	ss := twoValueSeqSet(t)
	start, ok := ss.StartInstant()
	require.True(t, ok)
	assert.Equal(t, period.Timestamp(0), start.Time)

	end, ok := ss.EndInstant()
	require.True(t, ok)
	assert.Equal(t, period.Timestamp(30), end.Time)
}

func TestMinMaxInstant(t *testing.T) {
	ss := twoValueSeqSet(t)
	min, err := ss.MinInstant()
	require.NoError(t, err)
	assert.Equal(t, int64(1), min.Value)

	max, err := ss.MaxInstant()
	require.NoError(t, err)
	assert.Equal(t, int64(3), max.Value)
}

func TestSpanAcrossSequences(t *testing.T) {
	ss := twoValueSeqSet(t)
	min, max, err := ss.Span()
	require.NoError(t, err)
	assert.Equal(t, 1.0, min)
	assert.Equal(t, 3.0, max)
}

func TestDurationSumsPerSequenceSpanOnly(t *testing.T) {
	ss := twoValueSeqSet(t)
	// a spans 10 (0..10), b spans 10 (20..30); the gap between them
	// does not count.
	assert.Equal(t, int64(20), ss.Duration())
}

func TestEqualAndCompare(t *testing.T) {
	a := twoValueSeqSet(t)
	b := twoValueSeqSet(t)
	assert.True(t, a.Equal(b))
	assert.Equal(t, 0, a.Compare(b))

	c := mustSeq(tsequence.Stepwise, true, false, 0, 1, 5, 1, 10, 2)
	ssC, err := New(basetype.Int, tsequence.Stepwise, []tsequence.Sequence{c}, BuildOpts{})
	require.NoError(t, err)
	assert.False(t, a.Equal(ssC))
	assert.Equal(t, 1, a.Compare(ssC))
	assert.Equal(t, -1, ssC.Compare(a))
}

// TestTotalInstantsDedupesTouchingBoundary covers two sequences built
// without BuildOpts.Normalize that touch at a shared timestamp (allowed by
// period.Period.Before whenever the two sides' inclusivity flags aren't
// both set): each sequence's own Instants slice physically holds an entry
// at t=10, but it must be counted, and indexed, only once.
func TestTotalInstantsDedupesTouchingBoundary(t *testing.T) {
	a := mustSeq(tsequence.Stepwise, true, false, 0, 1, 10, 2)
	b := mustSeq(tsequence.Stepwise, true, true, 10, 2, 20, 3)
	ss, err := New(basetype.Int, tsequence.Stepwise, []tsequence.Sequence{a, b}, BuildOpts{})
	require.NoError(t, err)
	assert.Equal(t, 2, ss.NumSequences())
	assert.Equal(t, 3, ss.TotalInstants())

	inst, ok := ss.InstantN(1)
	require.True(t, ok)
	assert.Equal(t, period.Timestamp(10), inst.Time)

	inst, ok = ss.InstantN(2)
	require.True(t, ok)
	assert.Equal(t, period.Timestamp(20), inst.Time)

	_, ok = ss.InstantN(3)
	assert.False(t, ok)
}

// TestAppendSequenceDedupesTouchingBoundary covers the same scenario
// reached through AppendSequence's non-join path (Before-but-not-Join,
// e.g. disagreeing values at the shared boundary) rather than New.
func TestAppendSequenceDedupesTouchingBoundary(t *testing.T) {
	a := mustSeq(tsequence.Stepwise, true, false, 0, 1, 10, 2)
	ss, err := New(basetype.Int, tsequence.Stepwise, []tsequence.Sequence{a}, BuildOpts{})
	require.NoError(t, err)

	b := mustSeq(tsequence.Stepwise, true, true, 10, 9, 20, 3)
	out, err := ss.AppendSequence(b, false)
	require.NoError(t, err)
	assert.Equal(t, 2, out.NumSequences())
	assert.Equal(t, 3, out.TotalInstants())
}
