// Package basetype is the base-value registry collaborator described in
// spec.md section 6: for each temporal type tag, equality and order
// predicates, text in/out, and (for numbers) cast to/from double.
//
// Values are stored as interface{} at this layer (tinstant and tsequence
// narrow that to one concrete Go type per sequence via the Tag they were
// built with); the registry is what lets the rest of the module stay
// generic over bool/int/float/text without a type switch at every call
// site, mirroring how interval.PosType centralizes the one comparison
// rule its package needs.
package basetype

import (
	"fmt"
	"strconv"

	"github.com/grailbio/temporal/terrors"
)

// Tag identifies a temporal type's base domain (spec.md section 3).
type Tag int

const (
	Bool Tag = iota
	Int
	Float
	Text
	Point // backed by spatial.Point; registered as an Adapter by that package's init.
)

func (t Tag) String() string {
	switch t {
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Float:
		return "float"
	case Text:
		return "text"
	case Point:
		return "point"
	default:
		return "unknown"
	}
}

// Continuous reports whether values of this type support linear
// interpolation (floats and points) as opposed to step-only (bool/int/text),
// per spec.md section 3's "Temporal type tag" note.
func (t Tag) Continuous() bool {
	return t == Float || t == Point
}

// Ordered reports whether the domain has a total order usable for
// numeric-span selectors (spec.md section 4.6).
func (t Tag) Ordered() bool {
	return t == Int || t == Float
}

// Adapter is the per-type collaborator surface: equality, order, text
// round trip, and (for ordered numeric types) a cast to float64 used by
// linear interpolation and crossing detection.
type Adapter interface {
	Equal(a, b interface{}) bool
	Less(a, b interface{}) bool
	Out(v interface{}) string
	In(s string) (interface{}, error)
	// ToFloat64 casts a numeric value for interpolation arithmetic. It
	// panics if the domain is not Ordered(); callers must check first.
	ToFloat64(v interface{}) float64
	FromFloat64(f float64) interface{}
}

var registry = map[Tag]Adapter{
	Bool:  boolAdapter{},
	Int:   intAdapter{},
	Float: floatAdapter{},
	Text:  textAdapter{},
}

// Register installs an Adapter for a Tag. Used by packages (like spatial)
// that add a base type without basetype needing to import them back.
func Register(tag Tag, a Adapter) {
	registry[tag] = a
}

// For returns the Adapter for tag, or an error if none is registered.
func For(tag Tag) (Adapter, error) {
	a, ok := registry[tag]
	if !ok {
		return nil, terrors.New(terrors.TypeMismatch, "no base-type adapter registered", tag)
	}
	return a, nil
}

type boolAdapter struct{}

func (boolAdapter) Equal(a, b interface{}) bool { return a.(bool) == b.(bool) }
func (boolAdapter) Less(a, b interface{}) bool  { return !a.(bool) && b.(bool) }
func (boolAdapter) Out(v interface{}) string    { return strconv.FormatBool(v.(bool)) }
func (boolAdapter) In(s string) (interface{}, error) {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return nil, terrors.New(terrors.ParseError, "invalid bool literal", s)
	}
	return v, nil
}
func (boolAdapter) ToFloat64(interface{}) float64    { panic("basetype: bool is not ordered") }
func (boolAdapter) FromFloat64(float64) interface{}  { panic("basetype: bool is not ordered") }

type intAdapter struct{}

func (intAdapter) Equal(a, b interface{}) bool { return a.(int64) == b.(int64) }
func (intAdapter) Less(a, b interface{}) bool  { return a.(int64) < b.(int64) }
func (intAdapter) Out(v interface{}) string    { return strconv.FormatInt(v.(int64), 10) }
func (intAdapter) In(s string) (interface{}, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, terrors.New(terrors.ParseError, "invalid int literal", s)
	}
	return v, nil
}
func (intAdapter) ToFloat64(v interface{}) float64   { return float64(v.(int64)) }
func (intAdapter) FromFloat64(f float64) interface{} { return int64(f) }

type floatAdapter struct{}

func (floatAdapter) Equal(a, b interface{}) bool { return a.(float64) == b.(float64) }
func (floatAdapter) Less(a, b interface{}) bool  { return a.(float64) < b.(float64) }
func (floatAdapter) Out(v interface{}) string {
	return strconv.FormatFloat(v.(float64), 'g', -1, 64)
}
func (floatAdapter) In(s string) (interface{}, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, terrors.New(terrors.ParseError, "invalid float literal", s)
	}
	return v, nil
}
func (floatAdapter) ToFloat64(v interface{}) float64   { return v.(float64) }
func (floatAdapter) FromFloat64(f float64) interface{} { return f }

type textAdapter struct{}

func (textAdapter) Equal(a, b interface{}) bool { return a.(string) == b.(string) }
func (textAdapter) Less(a, b interface{}) bool  { return a.(string) < b.(string) }
func (textAdapter) Out(v interface{}) string    { return fmt.Sprintf("%q", v.(string)) }
func (textAdapter) In(s string) (interface{}, error) {
	unquoted, err := strconv.Unquote(s)
	if err != nil {
		return s, nil // bare, unquoted text is accepted too
	}
	return unquoted, nil
}
func (textAdapter) ToFloat64(interface{}) float64   { panic("basetype: text is not ordered") }
func (textAdapter) FromFloat64(float64) interface{} { panic("basetype: text is not ordered") }

// CastLossCheck returns an error if casting from src to dst would lose
// information for linear-interpolated values, per spec.md section 7's
// CastLossy kind ("linear temporal float -> temporal int explicitly
// forbidden").
func CastLossCheck(src, dst Tag, continuous bool) error {
	if continuous && src == Float && dst == Int {
		return terrors.New(terrors.CastLossy, "linear temporal float cannot be cast to temporal int", src, dst)
	}
	return nil
}
