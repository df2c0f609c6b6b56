// Package tsequence implements the temporal sequence: an ordered run of
// instants on one period with an interpolation flag, spec.md section 3
// and component 4. It owns per-sequence restriction, crossing detection,
// integral, and normalisation; tsequenceset drives these across an
// ordered array of sequences.
package tsequence

import (
	"github.com/grailbio/temporal/basetype"
	"github.com/grailbio/temporal/bbox"
	"github.com/grailbio/temporal/period"
	"github.com/grailbio/temporal/spatial"
	"github.com/grailbio/temporal/terrors"
	"github.com/grailbio/temporal/tinstant"
)

// Interpolation is the per-sequence continuity mode (GLOSSARY).
type Interpolation int

const (
	Discrete Interpolation = iota
	Stepwise
	Linear
)

func (i Interpolation) String() string {
	switch i {
	case Discrete:
		return "Discrete"
	case Stepwise:
		return "Stepwise"
	case Linear:
		return "Linear"
	default:
		return "Unknown"
	}
}

// Sequence is an ordered, non-empty run of instants sharing one temporal
// type and interpolation, over one period.
//
// Invariants (enforced by New): instants have strictly increasing
// timestamps; if len==1, both bounds are inclusive; for discrete,
// LowerInc == UpperInc == true; for stepwise, no two consecutive
// instants carry the same value when normalized; for linear, no three
// consecutive collinear instants when normalized.
type Sequence struct {
	Tag      basetype.Tag
	Interp   Interpolation
	Instants []tinstant.Instant
	LowerInc bool
	UpperInc bool
	box      bbox.Box
}

// New validates and constructs a Sequence. If normalize is true, redundant
// instants are coalesced first (spec.md section 4.2 item 3, applied at the
// single-sequence granularity rather than across sibling sequences).
func New(tag basetype.Tag, interp Interpolation, instants []tinstant.Instant, lowerInc, upperInc bool, normalize bool) (Sequence, error) {
	if len(instants) == 0 {
		return Sequence{}, terrors.New(terrors.InvalidOrder, "sequence must have at least one instant")
	}
	for _, inst := range instants {
		if inst.Tag != tag {
			return Sequence{}, terrors.New(terrors.TypeMismatch, "instant tag does not match sequence tag", inst.Tag, tag)
		}
	}
	for i := 1; i < len(instants); i++ {
		if instants[i].Time <= instants[i-1].Time {
			return Sequence{}, terrors.New(terrors.InvalidOrder, "instant timestamps must strictly increase", instants[i-1].Time, instants[i].Time)
		}
	}
	if interp == Discrete {
		lowerInc, upperInc = true, true
	}
	if len(instants) == 1 {
		lowerInc, upperInc = true, true
	}
	if !tag.Continuous() && interp == Linear {
		return Sequence{}, terrors.New(terrors.InterpolationMismatch, "linear interpolation requires a continuous base type", tag)
	}
	out := make([]tinstant.Instant, len(instants))
	copy(out, instants)
	if normalize {
		var err error
		out, err = normalizeInstants(tag, interp, out)
		if err != nil {
			return Sequence{}, err
		}
		if len(out) == 1 {
			lowerInc, upperInc = true, true
		}
	}
	s := Sequence{Tag: tag, Interp: interp, Instants: out, LowerInc: lowerInc, UpperInc: upperInc}
	box, err := computeBBox(s)
	if err != nil {
		return Sequence{}, err
	}
	s.box = box
	return s, nil
}

// normalizeInstants removes instants that are redundant under the
// declared interpolation: consecutive equal values for stepwise (spec.md
// section 3's "no two consecutive instants carry the same value"), and
// collinear runs for linear ("no three consecutive collinear instants").
// Discrete sequences are never collapsed (every instant is meaningful).
func normalizeInstants(tag basetype.Tag, interp Interpolation, instants []tinstant.Instant) ([]tinstant.Instant, error) {
	if interp == Discrete || len(instants) < 2 {
		return instants, nil
	}
	adapter, err := basetype.For(tag)
	if err != nil {
		return nil, err
	}
	if interp == Stepwise {
		out := instants[:1]
		for i := 1; i < len(instants); i++ {
			if adapter.Equal(instants[i].Value, out[len(out)-1].Value) {
				continue
			}
			out = append(out, instants[i])
		}
		return out, nil
	}
	// Linear: drop interior instants collinear with their neighbors.
	if !tag.Ordered() && tag != basetype.Point {
		return instants, nil
	}
	out := []tinstant.Instant{instants[0]}
	for i := 1; i < len(instants)-1; i++ {
		if collinear(tag, out[len(out)-1], instants[i], instants[i+1]) {
			continue
		}
		out = append(out, instants[i])
	}
	out = append(out, instants[len(instants)-1])
	return out, nil
}

func collinear(tag basetype.Tag, a, b, c tinstant.Instant) bool {
	if tag == basetype.Point {
		pa, pb, pc := a.Value.(spatial.Point), b.Value.(spatial.Point), c.Value.(spatial.Point)
		return pointCollinear(a.Time, pa, b.Time, pb, c.Time, pc)
	}
	adapter, err := basetype.For(tag)
	if err != nil {
		return false
	}
	va, vb, vc := adapter.ToFloat64(a.Value), adapter.ToFloat64(b.Value), adapter.ToFloat64(c.Value)
	ta, tb, tc := float64(a.Time), float64(b.Time), float64(c.Time)
	// b lies on the line a-c iff the slopes a->b and b->c agree.
	return (vb-va)*(tc-tb) == (vc-vb)*(tb-ta)
}

func pointCollinear(ta period.Timestamp, pa spatial.Point, tb period.Timestamp, pb spatial.Point, tc period.Timestamp, pc spatial.Point) bool {
	fa, fb, fc := float64(ta), float64(tb), float64(tc)
	expectX := pa.X + (pc.X-pa.X)*(fb-fa)/(fc-fa)
	expectY := pa.Y + (pc.Y-pa.Y)*(fb-fa)/(fc-fa)
	if expectX != pb.X || expectY != pb.Y {
		return false
	}
	if pa.HasZ && pb.HasZ && pc.HasZ {
		expectZ := pa.Z + (pc.Z-pa.Z)*(fb-fa)/(fc-fa)
		return expectZ == pb.Z
	}
	return true
}

// Period returns the sequence's period.
func (s Sequence) Period() period.Period {
	first, last := s.Instants[0], s.Instants[len(s.Instants)-1]
	return period.Period{Lower: first.Time, Upper: last.Time, LowerInc: s.LowerInc, UpperInc: s.UpperInc}
}

// BBox returns the cached bounding box.
func (s Sequence) BBox() bbox.Box { return s.box }

func computeBBox(s Sequence) (bbox.Box, error) {
	p := s.Period()
	switch {
	case s.Tag.Ordered():
		adapter, err := basetype.For(s.Tag)
		if err != nil {
			return bbox.Box{}, err
		}
		min, max := adapter.ToFloat64(s.Instants[0].Value), adapter.ToFloat64(s.Instants[0].Value)
		for _, inst := range s.Instants[1:] {
			v := adapter.ToFloat64(inst.Value)
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
		return bbox.FromPeriodAndSpan(p, min, max), nil
	case s.Tag == basetype.Point:
		first := s.Instants[0].Value.(spatial.Point)
		xmin, ymin, xmax, ymax := first.X, first.Y, first.X, first.Y
		zmin, zmax := first.Z, first.Z
		hasZ := first.HasZ
		for _, inst := range s.Instants[1:] {
			pt := inst.Value.(spatial.Point)
			if pt.X < xmin {
				xmin = pt.X
			}
			if pt.X > xmax {
				xmax = pt.X
			}
			if pt.Y < ymin {
				ymin = pt.Y
			}
			if pt.Y > ymax {
				ymax = pt.Y
			}
			if pt.HasZ {
				if pt.Z < zmin {
					zmin = pt.Z
				}
				if pt.Z > zmax {
					zmax = pt.Z
				}
			}
		}
		return bbox.FromPeriodAndSpatial(p, xmin, ymin, xmax, ymax, hasZ, zmin, zmax), nil
	default:
		return bbox.FromPeriod(p), nil
	}
}

// NumInstants returns the number of instants.
func (s Sequence) NumInstants() int { return len(s.Instants) }

// StartInstant and EndInstant return the first/last instant.
func (s Sequence) StartInstant() tinstant.Instant { return s.Instants[0] }
func (s Sequence) EndInstant() tinstant.Instant    { return s.Instants[len(s.Instants)-1] }
