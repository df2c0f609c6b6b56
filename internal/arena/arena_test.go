package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllocAdvancesCursorAndReturnsWindow(t *testing.T) {
	buf := make([]byte, 32)
	a := New(buf)

	first := a.Alloc(8)
	assert.Len(t, first, 8)
	assert.Equal(t, 8, a.Len())

	second := a.Alloc(4)
	assert.Len(t, second, 4)
	assert.Equal(t, 12, a.Len())
}

func TestAlignRoundsUpToDoubleBoundary(t *testing.T) {
	buf := make([]byte, 32)
	a := New(buf)

	a.Alloc(3)
	assert.Equal(t, 3, a.Len())
	a.Align()
	assert.Equal(t, 8, a.Len())

	// Already aligned: Align is a no-op.
	a.Align()
	assert.Equal(t, 8, a.Len())
}

func TestBytesReturnsOnlyWrittenPrefix(t *testing.T) {
	buf := make([]byte, 16)
	a := New(buf)
	a.Alloc(5)
	assert.Len(t, a.Bytes(), 5)
}

func TestAllocWritesAreVisibleThroughBytes(t *testing.T) {
	buf := make([]byte, 16)
	a := New(buf)
	dst := a.Alloc(4)
	copy(dst, []byte{1, 2, 3, 4})
	assert.Equal(t, []byte{1, 2, 3, 4}, a.Bytes())
}

func TestAllocPanicsOnOverflow(t *testing.T) {
	buf := make([]byte, 4)
	a := New(buf)
	assert.Panics(t, func() {
		a.Alloc(5)
	})
}
