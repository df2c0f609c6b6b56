// Package wkt implements spec.md section 6's textual form: the
// `{seq0, seq1, ...}` grammar, an optional leading `Interp=...;` tag for
// non-discrete interpolation, and an optional `SRID=n;` tag for point
// values. Formatting delegates scalar/point rendering to basetype and
// spatial; parsing is a small hand-rolled scanner in the style of
// interval.getTokens, since no general-purpose parsing library appears
// anywhere in the example pack.
package wkt

import (
	"strings"

	"github.com/grailbio/temporal/basetype"
	"github.com/grailbio/temporal/calendar"
	"github.com/grailbio/temporal/terrors"
	"github.com/grailbio/temporal/tinstant"
	"github.com/grailbio/temporal/tsequence"
	"github.com/grailbio/temporal/tsequenceset"
)

func interpName(interp tsequence.Interpolation) string {
	switch interp {
	case tsequence.Discrete:
		return "Discrete"
	case tsequence.Stepwise:
		return "Stepwise"
	case tsequence.Linear:
		return "Linear"
	}
	return "Discrete"
}

func parseInterpName(s string) (tsequence.Interpolation, bool) {
	switch s {
	case "Discrete":
		return tsequence.Discrete, true
	case "Stepwise":
		return tsequence.Stepwise, true
	case "Linear":
		return tsequence.Linear, true
	}
	return tsequence.Discrete, false
}

// Format renders ss as the textual form of spec.md section 6. Discrete
// interpolation is the grammar's default and is never tagged explicitly;
// any other interpolation is prefixed as "Interp=Stepwise;" or
// "Interp=Linear;". A Point-tagged set needs no separate SRID prefix
// here: spatial.Point.Out already prepends "SRID=n;" to each point
// literal itself (spec.md section 6's "Point temporal values prepend
// SRID=n;" describes the point literal's own text form, not a
// set-wide header).
func Format(ss *tsequenceset.SequenceSet) (string, error) {
	adapter, err := basetype.For(ss.Tag)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	if ss.Interp != tsequence.Discrete {
		sb.WriteString("Interp=")
		sb.WriteString(interpName(ss.Interp))
		sb.WriteString(";")
	}
	sb.WriteString("{")
	for i, seq := range ss.Sequences() {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(formatSequence(seq, adapter))
	}
	sb.WriteString("}")
	return sb.String(), nil
}

func formatSequence(seq tsequence.Sequence, adapter basetype.Adapter) string {
	p := seq.Period()
	lb, ub := "[", ")"
	if !p.LowerInc {
		lb = "("
	}
	if p.UpperInc {
		ub = "]"
	}
	parts := make([]string, len(seq.Instants))
	for i, inst := range seq.Instants {
		parts[i] = adapter.Out(inst.Value) + "@" + calendar.Format(inst.Time)
	}
	return lb + strings.Join(parts, ", ") + ub
}

// Parse is the inverse of Format for base type tag. Callers must supply
// tag because the grammar's scalar literals (e.g. "2") are ambiguous
// between int/float/bool/text without it. A Point literal's own
// "SRID=n;" prefix (if any) is consumed by spatial.In through the
// adapter, not by this scanner.
func Parse(tag basetype.Tag, s string) (*tsequenceset.SequenceSet, error) {
	sc := &scanner{s: s}
	interp := tsequence.Discrete
	if sc.peekLiteral("Interp=") {
		sc.skip(len("Interp="))
		name, err := sc.readUntil(';')
		if err != nil {
			return nil, err
		}
		got, ok := parseInterpName(name)
		if !ok {
			return nil, terrors.New(terrors.ParseError, "unknown interpolation name", name, sc.pos)
		}
		interp = got
		sc.skip(1) // ';'
	}
	if err := sc.expect('{'); err != nil {
		return nil, err
	}
	var seqs []tsequence.Sequence
	for {
		sc.skipSpaces()
		if sc.peek() == '}' {
			break
		}
		seq, err := parseSequence(sc, tag, interp)
		if err != nil {
			return nil, err
		}
		seqs = append(seqs, seq)
		sc.skipSpaces()
		if sc.peek() == ',' {
			sc.skip(1)
			continue
		}
		break
	}
	if err := sc.expect('}'); err != nil {
		return nil, err
	}
	return tsequenceset.New(tag, interp, seqs, tsequenceset.BuildOpts{Normalize: true})
}

func parseSequence(sc *scanner, tag basetype.Tag, interp tsequence.Interpolation) (tsequence.Sequence, error) {
	lowerInc, err := sc.expectOneOf('[', '(')
	if err != nil {
		return tsequence.Sequence{}, err
	}
	var instants []tinstant.Instant
	for {
		sc.skipSpaces()
		inst, err := parseInstant(sc, tag)
		if err != nil {
			return tsequence.Sequence{}, err
		}
		instants = append(instants, inst)
		sc.skipSpaces()
		if sc.peek() == ',' {
			sc.skip(1)
			continue
		}
		break
	}
	upperInc, err := sc.expectOneOf(']', ')')
	if err != nil {
		return tsequence.Sequence{}, err
	}
	return tsequence.New(tag, interp, instants, lowerInc, upperInc, false)
}

func parseInstant(sc *scanner, tag basetype.Tag) (tinstant.Instant, error) {
	adapter, err := basetype.For(tag)
	if err != nil {
		return tinstant.Instant{}, err
	}
	valueText, err := sc.readUntil('@')
	if err != nil {
		return tinstant.Instant{}, err
	}
	sc.skip(1) // '@'
	tsText, err := sc.readUntilAny(',', ']', ')')
	if err != nil {
		return tinstant.Instant{}, err
	}
	value, err := adapter.In(strings.TrimSpace(valueText))
	if err != nil {
		return tinstant.Instant{}, err
	}
	ts, err := calendar.Parse(strings.TrimSpace(tsText))
	if err != nil {
		return tinstant.Instant{}, terrors.New(terrors.ParseError, "invalid timestamp literal", tsText, sc.pos)
	}
	return tinstant.New(ts, value, tag)
}

// scanner is a minimal hand-rolled cursor over a string, grounded on
// interval.getTokens's manual byte-range scanning rather than a regexp
// or parser-combinator dependency.
type scanner struct {
	s   string
	pos int
}

func (sc *scanner) peek() byte {
	if sc.pos >= len(sc.s) {
		return 0
	}
	return sc.s[sc.pos]
}

func (sc *scanner) peekLiteral(lit string) bool {
	return strings.HasPrefix(sc.s[sc.pos:], lit)
}

func (sc *scanner) skip(n int) { sc.pos += n }

func (sc *scanner) skipSpaces() {
	for sc.pos < len(sc.s) && sc.s[sc.pos] == ' ' {
		sc.pos++
	}
}

func (sc *scanner) expect(c byte) error {
	if sc.peek() != c {
		return terrors.New(terrors.ParseError, "expected character", string(c), sc.pos)
	}
	sc.pos++
	return nil
}

func (sc *scanner) expectOneOf(a, b byte) (bool, error) {
	c := sc.peek()
	if c != a && c != b {
		return false, terrors.New(terrors.ParseError, "expected one of two bracket characters", string(a)+string(b), sc.pos)
	}
	sc.pos++
	return c == a, nil
}

func (sc *scanner) readUntil(c byte) (string, error) {
	idx := strings.IndexByte(sc.s[sc.pos:], c)
	if idx < 0 {
		return "", terrors.New(terrors.ParseError, "unterminated token, expected character", string(c), sc.pos)
	}
	out := sc.s[sc.pos : sc.pos+idx]
	sc.pos += idx
	return out, nil
}

func (sc *scanner) readUntilAny(cs ...byte) (string, error) {
	for i := sc.pos; i < len(sc.s); i++ {
		for _, c := range cs {
			if sc.s[i] == c {
				out := sc.s[sc.pos:i]
				sc.pos = i
				return out, nil
			}
		}
	}
	return "", terrors.New(terrors.ParseError, "unterminated token", string(cs), sc.pos)
}
