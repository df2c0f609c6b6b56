package period

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func p(lower, upper int64, lowerInc, upperInc bool) Period {
	pp, err := New(Timestamp(lower), Timestamp(upper), lowerInc, upperInc)
	if err != nil {
		panic(err)
	}
	return pp
}

func TestNewPeriodSetMergesOverlapsAndAdjacency(t *testing.T) {
	ps := NewPeriodSet(p(0, 10, true, false), p(10, 20, true, false), p(30, 40, true, true))
	require := assert.New(t)
	require.Equal(2, ps.Len())
	require.Equal(Timestamp(0), ps.Periods()[0].Lower)
	require.Equal(Timestamp(20), ps.Periods()[0].Upper)
	require.Equal(Timestamp(30), ps.Periods()[1].Lower)
}

func TestPeriodSetContains(t *testing.T) {
	ps := NewPeriodSet(p(0, 10, true, false), p(20, 30, true, true))
	assert.True(t, ps.Contains(5))
	assert.False(t, ps.Contains(10))
	assert.True(t, ps.Contains(30))
	assert.False(t, ps.Contains(15))
}

func TestPeriodSetIntersection(t *testing.T) {
	a := NewPeriodSet(p(0, 10, true, true))
	b := NewPeriodSet(p(5, 15, true, true))
	got := a.Intersection(b)
	assert.Equal(t, 1, got.Len())
	assert.Equal(t, Timestamp(5), got.Periods()[0].Lower)
	assert.Equal(t, Timestamp(10), got.Periods()[0].Upper)
}

func TestPeriodSetMinus(t *testing.T) {
	a := NewPeriodSet(p(0, 100, true, true))
	b := NewPeriodSet(p(20, 30, true, true))
	got := a.Minus(b)
	assert.Equal(t, 2, got.Len())
	assert.Equal(t, Timestamp(0), got.Periods()[0].Lower)
	assert.Equal(t, Timestamp(20), got.Periods()[0].Upper)
	assert.False(t, got.Periods()[0].UpperInc)
	assert.Equal(t, Timestamp(30), got.Periods()[1].Lower)
	assert.False(t, got.Periods()[1].LowerInc)
	assert.Equal(t, Timestamp(100), got.Periods()[1].Upper)
}

func TestPeriodSetComplement(t *testing.T) {
	a := NewPeriodSet(p(20, 30, true, true))
	got, err := a.Complement(0, 100)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 2, got.Len())
}

func TestPeriodSetSpanEmpty(t *testing.T) {
	var ps PeriodSet
	_, ok := ps.Span()
	assert.False(t, ok)
	assert.True(t, ps.IsEmpty())
}
