package wkt

import (
	"testing"
	"time"

	"github.com/grailbio/temporal/basetype"
	"github.com/grailbio/temporal/calendar"
	"github.com/grailbio/temporal/spatial"
	"github.com/grailbio/temporal/tinstant"
	"github.com/grailbio/temporal/tsequence"
	"github.com/grailbio/temporal/tsequenceset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSet(t *testing.T, tag basetype.Tag, interp tsequence.Interpolation, lowerInc, upperInc bool, ts []int64, vals []interface{}) *tsequenceset.SequenceSet {
	require.Equal(t, len(ts), len(vals))
	instants := make([]tinstant.Instant, len(ts))
	for i := range ts {
		inst, err := tinstant.New(calendar.FromTime(time.Unix(ts[i], 0).UTC()), vals[i], tag)
		require.NoError(t, err)
		instants[i] = inst
	}
	seq, err := tsequence.New(tag, interp, instants, lowerInc, upperInc, false)
	require.NoError(t, err)
	set, err := tsequenceset.New(tag, interp, []tsequence.Sequence{seq}, tsequenceset.BuildOpts{})
	require.NoError(t, err)
	return set
}

func TestFormatParseRoundTripBool(t *testing.T) {
	set := buildSet(t, basetype.Bool, tsequence.Discrete, true, true, []int64{0}, []interface{}{true})
	text, err := Format(set)
	require.NoError(t, err)
	assert.NotContains(t, text, "Interp=")

	out, err := Parse(basetype.Bool, text)
	require.NoError(t, err)
	assert.True(t, set.Equal(out))
}

func TestFormatParseRoundTripInt(t *testing.T) {
	set := buildSet(t, basetype.Int, tsequence.Stepwise, true, false,
		[]int64{0, 86400}, []interface{}{int64(1), int64(2)})
	text, err := Format(set)
	require.NoError(t, err)
	assert.Contains(t, text, "Interp=Stepwise;")
	assert.Contains(t, text, "[")
	assert.Contains(t, text, ")")

	out, err := Parse(basetype.Int, text)
	require.NoError(t, err)
	assert.True(t, set.Equal(out))
}

func TestFormatParseRoundTripFloat(t *testing.T) {
	set := buildSet(t, basetype.Float, tsequence.Linear, true, true,
		[]int64{0, 86400}, []interface{}{1.5, 2.5})
	text, err := Format(set)
	require.NoError(t, err)
	assert.Contains(t, text, "Interp=Linear;")

	out, err := Parse(basetype.Float, text)
	require.NoError(t, err)
	assert.True(t, set.Equal(out))
}

func TestFormatParseRoundTripText(t *testing.T) {
	set := buildSet(t, basetype.Text, tsequence.Discrete, true, true,
		[]int64{0}, []interface{}{"hello world"})
	text, err := Format(set)
	require.NoError(t, err)

	out, err := Parse(basetype.Text, text)
	require.NoError(t, err)
	assert.True(t, set.Equal(out))
}

func TestFormatParseRoundTripPoint(t *testing.T) {
	p := spatial.Point{X: 1, Y: 2}
	set := buildSet(t, basetype.Point, tsequence.Linear, true, true,
		[]int64{0}, []interface{}{p})
	text, err := Format(set)
	require.NoError(t, err)

	out, err := Parse(basetype.Point, text)
	require.NoError(t, err)
	assert.True(t, set.Equal(out))
}

func TestFormatBareDateMidnightLiteral(t *testing.T) {
	set := buildSet(t, basetype.Int, tsequence.Discrete, true, true,
		[]int64{946684800}, []interface{}{int64(7)}) // 2000-01-01T00:00:00Z
	text, err := Format(set)
	require.NoError(t, err)
	assert.Contains(t, text, "2000-01-01@")
	assert.NotContains(t, text, "T00:00:00")

	out, err := Parse(basetype.Int, text)
	require.NoError(t, err)
	assert.True(t, set.Equal(out))
}

func TestFormatOmitsInterpTagForDiscrete(t *testing.T) {
	set := buildSet(t, basetype.Int, tsequence.Discrete, true, true,
		[]int64{0}, []interface{}{int64(1)})
	text, err := Format(set)
	require.NoError(t, err)
	assert.Equal(t, byte('{'), text[0])
}

func TestParseBracketInclusivityLowerExclusive(t *testing.T) {
	text := "(1@2000-01-02, 2@2000-01-03]"
	text = "Interp=Stepwise;{" + text + "}"
	out, err := Parse(basetype.Int, text)
	require.NoError(t, err)

	seqs := out.Sequences()
	require.Len(t, seqs, 1)
	p := seqs[0].Period()
	assert.False(t, p.LowerInc)
	assert.True(t, p.UpperInc)
}

func TestParseMultipleSequencesSeparatedByComma(t *testing.T) {
	text := "Interp=Stepwise;{[1@2000-01-01, 2@2000-01-02), [3@2000-01-05, 4@2000-01-06]}"
	out, err := Parse(basetype.Int, text)
	require.NoError(t, err)
	assert.Equal(t, 2, out.NumSequences())
}

func TestParseRejectsUnknownInterpName(t *testing.T) {
	_, err := Parse(basetype.Int, "Interp=Bogus;{[1@2000-01-01]}")
	require.Error(t, err)
}

func TestParseRejectsMissingClosingBrace(t *testing.T) {
	_, err := Parse(basetype.Int, "{[1@2000-01-01]")
	require.Error(t, err)
}

func TestParseRejectsBadBracket(t *testing.T) {
	_, err := Parse(basetype.Int, "{<1@2000-01-01]}")
	require.Error(t, err)
}
