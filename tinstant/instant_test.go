package tinstant

import (
	"testing"

	"github.com/grailbio/temporal/basetype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsUnregisteredTag(t *testing.T) {
	_, err := New(0, 1, basetype.Tag(99))
	require.Error(t, err)
}

func TestEqualRequiresSameTagAndTime(t *testing.T) {
	a, err := New(10, int64(5), basetype.Int)
	require.NoError(t, err)
	b, err := New(10, int64(5), basetype.Int)
	require.NoError(t, err)
	assert.True(t, a.Equal(b))

	c, err := New(11, int64(5), basetype.Int)
	require.NoError(t, err)
	assert.False(t, a.Equal(c))

	d, err := New(10, 5.0, basetype.Float)
	require.NoError(t, err)
	assert.False(t, a.Equal(d))
}

func TestCompareOrdersByTimeThenValue(t *testing.T) {
	a, _ := New(10, int64(5), basetype.Int)
	b, _ := New(20, int64(1), basetype.Int)
	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))

	c, _ := New(10, int64(1), basetype.Int)
	assert.Equal(t, 1, a.Compare(c))
	assert.Equal(t, 0, a.Compare(a))
}

func TestValueEqualRejectsMismatchedTags(t *testing.T) {
	a, _ := New(10, int64(5), basetype.Int)
	b, _ := New(10, 5.0, basetype.Float)
	_, err := a.ValueEqual(b)
	require.Error(t, err)
}

func TestString(t *testing.T) {
	a, _ := New(0, int64(7), basetype.Int)
	assert.Equal(t, "7@0", a.String())
}
