package basetype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForUnknownTag(t *testing.T) {
	_, err := For(Tag(99))
	require.Error(t, err)
}

func TestBoolAdapter(t *testing.T) {
	a, err := For(Bool)
	require.NoError(t, err)
	assert.True(t, a.Equal(true, true))
	assert.False(t, a.Equal(true, false))
	assert.True(t, a.Less(false, true))
	assert.Equal(t, "true", a.Out(true))
	v, err := a.In("false")
	require.NoError(t, err)
	assert.Equal(t, false, v)
}

func TestIntAdapterRoundTrip(t *testing.T) {
	a, err := For(Int)
	require.NoError(t, err)
	v, err := a.In("-42")
	require.NoError(t, err)
	assert.Equal(t, int64(-42), v)
	assert.Equal(t, "-42", a.Out(v))
	assert.Equal(t, float64(-42), a.ToFloat64(v))
	assert.Equal(t, int64(7), a.FromFloat64(7.9))
}

func TestFloatAdapterRoundTrip(t *testing.T) {
	a, err := For(Float)
	require.NoError(t, err)
	v, err := a.In("3.5")
	require.NoError(t, err)
	assert.Equal(t, 3.5, v)
	assert.Equal(t, "3.5", a.Out(v))
}

func TestTextAdapterQuotedAndBare(t *testing.T) {
	a, err := For(Text)
	require.NoError(t, err)
	assert.Equal(t, `"hi"`, a.Out("hi"))

	v, err := a.In(`"hi"`)
	require.NoError(t, err)
	assert.Equal(t, "hi", v)

	v, err = a.In("bare")
	require.NoError(t, err)
	assert.Equal(t, "bare", v)
}

func TestTagPredicates(t *testing.T) {
	assert.True(t, Float.Continuous())
	assert.True(t, Point.Continuous())
	assert.False(t, Bool.Continuous())
	assert.True(t, Int.Ordered())
	assert.False(t, Text.Ordered())
}

func TestCastLossCheck(t *testing.T) {
	err := CastLossCheck(Float, Int, true)
	require.Error(t, err)
	assert.NoError(t, CastLossCheck(Float, Int, false))
	assert.NoError(t, CastLossCheck(Int, Float, true))
}
