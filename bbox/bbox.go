// Package bbox implements the per-temporal-type bounding box summary from
// spec.md section 2 item 2: a period plus, for numbers, a numeric span,
// and for points, a spatial extent. Union is monoidal (associative, with
// Empty as identity), the same combine-on-insert shape as
// interval.BEDUnion's chromosome-keyed interval merging.
package bbox

import (
	"math"

	"github.com/grailbio/temporal/period"
)

// Box is the bounding box. Only the fields relevant to the owning
// temporal type are meaningful; HasSpan and HasSpatial gate the rest, the
// Go equivalent of the flag word spec.md section 9 describes.
type Box struct {
	Period period.Period
	HasPeriod bool

	HasSpan  bool
	SpanMin  float64
	SpanMax  float64

	HasSpatial bool
	XMin, YMin, ZMin float64
	XMax, YMax, ZMax float64
	HasZ             bool
}

// Empty is the identity element for Union.
var Empty = Box{}

// FromPeriod builds a Box covering only a time period (bool/text/discrete
// values with no numeric or spatial extent).
func FromPeriod(p period.Period) Box {
	return Box{Period: p, HasPeriod: true}
}

// FromPeriodAndSpan builds a Box for a numeric temporal type.
func FromPeriodAndSpan(p period.Period, min, max float64) Box {
	return Box{Period: p, HasPeriod: true, HasSpan: true, SpanMin: min, SpanMax: max}
}

// FromPeriodAndSpatial builds a Box for a temporal point.
func FromPeriodAndSpatial(p period.Period, xmin, ymin, xmax, ymax float64, hasZ bool, zmin, zmax float64) Box {
	b := Box{
		Period: p, HasPeriod: true,
		HasSpatial: true,
		XMin: xmin, YMin: ymin, XMax: xmax, YMax: ymax,
		HasZ: hasZ,
	}
	if hasZ {
		b.ZMin, b.ZMax = zmin, zmax
	}
	return b
}

// Union merges a and b, taking the period union and the componentwise
// min/max of whichever numeric or spatial extents are present. Union with
// Empty is the identity (matching the requirement that an empty sequence
// set's bbox union with anything returns that thing unchanged).
func Union(a, b Box) Box {
	if !a.HasPeriod {
		return b
	}
	if !b.HasPeriod {
		return a
	}
	out := Box{Period: a.Period.Union(b.Period), HasPeriod: true}
	if a.HasSpan || b.HasSpan {
		out.HasSpan = true
		out.SpanMin = minIf(a.HasSpan, a.SpanMin, b.HasSpan, b.SpanMin, math.Min)
		out.SpanMax = minIf(a.HasSpan, a.SpanMax, b.HasSpan, b.SpanMax, math.Max)
	}
	if a.HasSpatial || b.HasSpatial {
		out.HasSpatial = true
		out.XMin = minIf(a.HasSpatial, a.XMin, b.HasSpatial, b.XMin, math.Min)
		out.YMin = minIf(a.HasSpatial, a.YMin, b.HasSpatial, b.YMin, math.Min)
		out.XMax = minIf(a.HasSpatial, a.XMax, b.HasSpatial, b.XMax, math.Max)
		out.YMax = minIf(a.HasSpatial, a.YMax, b.HasSpatial, b.YMax, math.Max)
		out.HasZ = a.HasZ || b.HasZ
		if out.HasZ {
			out.ZMin = minIf(a.HasZ, a.ZMin, b.HasZ, b.ZMin, math.Min)
			out.ZMax = minIf(a.HasZ, a.ZMax, b.HasZ, b.ZMax, math.Max)
		}
	}
	return out
}

func minIf(aOK bool, a float64, bOK bool, b float64, combine func(float64, float64) float64) float64 {
	if aOK && bOK {
		return combine(a, b)
	}
	if aOK {
		return a
	}
	return b
}
