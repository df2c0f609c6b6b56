package spatial

import (
	"testing"

	"github.com/grailbio/temporal/basetype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointOutInRoundTrip2D(t *testing.T) {
	p := Point{X: 1, Y: 2, SRID: 4326}
	s := p.Out()
	assert.Equal(t, "SRID=4326;POINT(1 2)", s)

	got, err := In(s)
	require.NoError(t, err)
	assert.True(t, p.Equal(got))
}

func TestPointOutInRoundTrip3DNoSRID(t *testing.T) {
	p := Point{X: 1, Y: 2, Z: 3, HasZ: true}
	s := p.Out()
	assert.Equal(t, "POINT Z(1 2 3)", s)

	got, err := In(s)
	require.NoError(t, err)
	assert.True(t, p.Equal(got))
}

func TestInRejectsMalformed(t *testing.T) {
	_, err := In("NOT A POINT")
	require.Error(t, err)

	_, err = In("SRID=abc;POINT(1 2)")
	require.Error(t, err)

	_, err = In("POINT(1 2 3)")
	require.Error(t, err)
}

func TestDistanceEuclidean(t *testing.T) {
	a := Point{X: 0, Y: 0}
	b := Point{X: 3, Y: 4}
	assert.Equal(t, 5.0, a.Distance(b))
}

func TestLerp(t *testing.T) {
	a := Point{X: 0, Y: 0}
	b := Point{X: 10, Y: 20}
	mid := Lerp(a, b, 0.5)
	assert.Equal(t, 5.0, mid.X)
	assert.Equal(t, 10.0, mid.Y)
}

func TestRegisteredAsBasetypeAdapter(t *testing.T) {
	adapter, err := basetype.For(basetype.Point)
	require.NoError(t, err)
	p := Point{X: 1, Y: 1}
	assert.True(t, adapter.Equal(p, Point{X: 1, Y: 1}))
	assert.False(t, adapter.Equal(p, Point{X: 2, Y: 1}))
}
