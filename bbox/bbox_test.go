package bbox

import (
	"testing"

	"github.com/grailbio/temporal/period"
	"github.com/stretchr/testify/assert"
)

func mustPeriod(lower, upper int64) period.Period {
	p, err := period.New(period.Timestamp(lower), period.Timestamp(upper), true, true)
	if err != nil {
		panic(err)
	}
	return p
}

func TestUnionWithEmptyIsIdentity(t *testing.T) {
	b := FromPeriodAndSpan(mustPeriod(0, 10), 1, 2)
	assert.Equal(t, b, Union(Empty, b))
	assert.Equal(t, b, Union(b, Empty))
}

func TestUnionSpan(t *testing.T) {
	a := FromPeriodAndSpan(mustPeriod(0, 10), 1, 5)
	b := FromPeriodAndSpan(mustPeriod(5, 20), -3, 2)
	u := Union(a, b)
	assert.Equal(t, period.Timestamp(0), u.Period.Lower)
	assert.Equal(t, period.Timestamp(20), u.Period.Upper)
	assert.Equal(t, -3.0, u.SpanMin)
	assert.Equal(t, 5.0, u.SpanMax)
}

func TestUnionSpatial(t *testing.T) {
	a := FromPeriodAndSpatial(mustPeriod(0, 10), 0, 0, 5, 5, false, 0, 0)
	b := FromPeriodAndSpatial(mustPeriod(10, 20), -2, -2, 1, 1, true, 0, 9)
	u := Union(a, b)
	assert.True(t, u.HasSpatial)
	assert.Equal(t, -2.0, u.XMin)
	assert.Equal(t, 5.0, u.XMax)
	assert.True(t, u.HasZ)
	assert.Equal(t, 9.0, u.ZMax)
}
