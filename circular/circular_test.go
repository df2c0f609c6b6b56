package circular

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextExp2(t *testing.T) {
	cases := []struct {
		in   int
		want int
	}{
		{1, 2},
		{2, 4},
		{3, 4},
		{4, 8},
		{5, 8},
		{8, 16},
		{9, 16},
		{16, 32},
		{100, 128},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, NextExp2(c.in), "NextExp2(%d)", c.in)
	}
}
