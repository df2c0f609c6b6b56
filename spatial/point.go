// Package spatial is the minimal Spatial collaborator from spec.md
// section 6: geometry in/out, SRID accessor, point-coordinate
// extraction, and the at_geometry/minus_geometry operators used by
// tsequence for temporal-point restriction.
//
// The full spatial library (arbitrary geometries, spatial indexing) is
// out of scope per spec.md section 1; this package supports exactly the
// point base type that temporal values adapt, with a WKT-flavored
// textual form ("POINT(x y)" / "POINT Z(x y z)") rather than the whole
// WKT grammar.
package spatial

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/grailbio/temporal/basetype"
	"github.com/grailbio/temporal/terrors"
)

// Point is a 2D or 3D coordinate, optionally tagged with a spatial
// reference system identifier and a geodetic flag, matching the flag
// word fields "X, Z, T, geodetic" from spec.md section 9.
type Point struct {
	X, Y, Z  float64
	HasZ     bool
	SRID     int32
	Geodetic bool
}

func (p Point) Equal(q Point) bool {
	return p.X == q.X && p.Y == q.Y && p.HasZ == q.HasZ &&
		(!p.HasZ || p.Z == q.Z) && p.SRID == q.SRID && p.Geodetic == q.Geodetic
}

// Distance returns Euclidean (or, if Geodetic, great-circle-approximate)
// distance between p and q. Geodetic uses a simple haversine formula;
// this is a point-operator convenience, not a full geodesic library.
func (p Point) Distance(q Point) float64 {
	if p.Geodetic {
		return haversine(p, q)
	}
	dx, dy := p.X-q.X, p.Y-q.Y
	if p.HasZ {
		dz := p.Z - q.Z
		return math.Sqrt(dx*dx + dy*dy + dz*dz)
	}
	return math.Sqrt(dx*dx + dy*dy)
}

const earthRadiusMeters = 6371000.0

func haversine(p, q Point) float64 {
	lat1, lat2 := p.Y*math.Pi/180, q.Y*math.Pi/180
	dLat := (q.Y - p.Y) * math.Pi / 180
	dLon := (q.X - p.X) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMeters * c
}

// Lerp returns the point on the segment p->q at fraction frac in [0, 1],
// used by tsequence's linear-interpolation value_at.
func Lerp(p, q Point, frac float64) Point {
	out := Point{
		X:        p.X + (q.X-p.X)*frac,
		Y:        p.Y + (q.Y-p.Y)*frac,
		HasZ:     p.HasZ && q.HasZ,
		SRID:     p.SRID,
		Geodetic: p.Geodetic,
	}
	if out.HasZ {
		out.Z = p.Z + (q.Z-p.Z)*frac
	}
	return out
}

// Out renders p as "SRID=n;POINT(x y)" or "SRID=n;POINT Z(x y z)",
// omitting the SRID prefix when SRID is zero, matching spec.md section
// 6's "Point temporal values prepend SRID=n;".
func (p Point) Out() string {
	var sb strings.Builder
	if p.SRID != 0 {
		fmt.Fprintf(&sb, "SRID=%d;", p.SRID)
	}
	if p.HasZ {
		fmt.Fprintf(&sb, "POINT Z(%s %s %s)", formatFloat(p.X), formatFloat(p.Y), formatFloat(p.Z))
	} else {
		fmt.Fprintf(&sb, "POINT(%s %s)", formatFloat(p.X), formatFloat(p.Y))
	}
	return sb.String()
}

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }

// In parses the textual form produced by Out.
func In(s string) (Point, error) {
	var srid int32
	rest := s
	if strings.HasPrefix(rest, "SRID=") {
		semi := strings.IndexByte(rest, ';')
		if semi < 0 {
			return Point{}, terrors.New(terrors.ParseError, "missing ';' after SRID=", s)
		}
		n, err := strconv.ParseInt(rest[len("SRID="):semi], 10, 32)
		if err != nil {
			return Point{}, terrors.New(terrors.ParseError, "invalid SRID", s)
		}
		srid = int32(n)
		rest = rest[semi+1:]
	}
	hasZ := false
	rest = strings.TrimSpace(rest)
	if !strings.HasPrefix(rest, "POINT") {
		return Point{}, terrors.New(terrors.ParseError, "expected POINT", s)
	}
	rest = strings.TrimSpace(rest[len("POINT"):])
	if strings.HasPrefix(rest, "Z") {
		hasZ = true
		rest = strings.TrimSpace(rest[1:])
	}
	if !strings.HasPrefix(rest, "(") || !strings.HasSuffix(rest, ")") {
		return Point{}, terrors.New(terrors.ParseError, "expected parenthesized coordinates", s)
	}
	fields := strings.Fields(rest[1 : len(rest)-1])
	want := 2
	if hasZ {
		want = 3
	}
	if len(fields) != want {
		return Point{}, terrors.New(terrors.ParseError, "wrong coordinate count", s)
	}
	coords := make([]float64, want)
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return Point{}, terrors.New(terrors.ParseError, "invalid coordinate", f)
		}
		coords[i] = v
	}
	p := Point{X: coords[0], Y: coords[1], HasZ: hasZ, SRID: srid}
	if hasZ {
		p.Z = coords[2]
	}
	return p, nil
}

// pointAdapter wires Point into the basetype registry so the rest of the
// module can treat Point like any other base domain. Equality is exact
// coordinate equality; Point has no total order (Less always panics, as
// Ordered() is false for it), matching spec.md's treatment of point
// values as unordered but continuous.
type pointAdapter struct{}

func (pointAdapter) Equal(a, b interface{}) bool { return a.(Point).Equal(b.(Point)) }
func (pointAdapter) Less(interface{}, interface{}) bool {
	panic("spatial: Point has no total order")
}
func (pointAdapter) Out(v interface{}) string { return v.(Point).Out() }
func (pointAdapter) In(s string) (interface{}, error) {
	p, err := In(s)
	return p, err
}
func (pointAdapter) ToFloat64(interface{}) float64 {
	panic("spatial: Point is not castable to float64")
}
func (pointAdapter) FromFloat64(float64) interface{} {
	panic("spatial: Point is not castable from float64")
}

func init() {
	basetype.Register(basetype.Point, pointAdapter{})
}
