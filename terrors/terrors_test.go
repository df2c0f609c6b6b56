package terrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindStrings(t *testing.T) {
	cases := map[Kind]string{
		InvalidOrder:           "InvalidOrder",
		InterpolationMismatch:  "InterpolationMismatch",
		TypeMismatch:           "TypeMismatch",
		ValueMismatchAtJoin:    "ValueMismatchAtJoin",
		CastLossy:              "CastLossy",
		ParseError:             "ParseError",
		OutOfRange:             "OutOfRange",
		Kind(999):              "Unknown",
	}
	for kind, want := range cases {
		assert.Equal(t, want, kind.String())
	}
}

func TestNewBuildsErrorWithDetailAndValues(t *testing.T) {
	err := New(TypeMismatch, "mismatched tags", 1, "x")
	assert.Equal(t, TypeMismatch, err.Kind)
	assert.Equal(t, "mismatched tags", err.Detail)
	assert.Equal(t, []interface{}{1, "x"}, err.Values)
}

func TestErrorStringOmitsValuesWhenEmpty(t *testing.T) {
	err := New(ParseError, "bad input")
	assert.Equal(t, "ParseError: bad input", err.Error())
}

func TestErrorStringIncludesValuesWhenPresent(t *testing.T) {
	err := New(OutOfRange, "index out of range", 5)
	assert.Contains(t, err.Error(), "OutOfRange: index out of range")
	assert.Contains(t, err.Error(), "5")
}

func TestIsMatchesByKindNotIdentity(t *testing.T) {
	err := New(InvalidOrder, "timestamps not increasing", 1, 2)
	assert.True(t, errors.Is(err, ErrInvalidOrder))
	assert.False(t, errors.Is(err, ErrTypeMismatch))
}

func TestIsRejectsNonTerrorsTarget(t *testing.T) {
	err := New(InvalidOrder, "x")
	assert.False(t, errors.Is(err, errors.New("plain error")))
}
