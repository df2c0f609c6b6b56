package main

import (
	"testing"

	"github.com/grailbio/temporal/basetype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTagKnownNames(t *testing.T) {
	cases := map[string]basetype.Tag{
		"bool":  basetype.Bool,
		"int":   basetype.Int,
		"float": basetype.Float,
		"text":  basetype.Text,
		"point": basetype.Point,
	}
	for name, want := range cases {
		got, err := parseTag(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestParseTagRejectsUnknownName(t *testing.T) {
	_, err := parseTag("bogus")
	assert.Error(t, err)
}
