package period

import "github.com/grailbio/temporal/terrors"

// Period is a contiguous span over the timeline with independent
// inclusivity flags on each bound, per spec.md section 3.
type Period struct {
	Lower    Timestamp
	Upper    Timestamp
	LowerInc bool
	UpperInc bool
}

// New builds a Period, validating that Lower <= Upper and, when they are
// equal, that at least one bound is inclusive (otherwise the period would
// contain nothing).
func New(lower, upper Timestamp, lowerInc, upperInc bool) (Period, error) {
	if lower > upper {
		return Period{}, terrors.New(terrors.InvalidOrder, "period lower bound after upper bound", lower, upper)
	}
	if lower == upper && !(lowerInc && upperInc) {
		return Period{}, terrors.New(terrors.InvalidOrder, "degenerate period must be inclusive on both bounds", lower, upper)
	}
	return Period{Lower: lower, Upper: upper, LowerInc: lowerInc, UpperInc: upperInc}, nil
}

// Instant builds the single-timestamp inclusive period [t, t].
func Instant(t Timestamp) Period {
	return Period{Lower: t, Upper: t, LowerInc: true, UpperInc: true}
}

// Contains reports whether t falls within p, honoring inclusivity.
func (p Period) Contains(t Timestamp) bool {
	if t < p.Lower || t > p.Upper {
		return false
	}
	if t == p.Lower && !p.LowerInc {
		return false
	}
	if t == p.Upper && !p.UpperInc {
		return false
	}
	return true
}

// Overlaps reports whether p and q share at least one timestamp.
func (p Period) Overlaps(q Period) bool {
	if p.Lower > q.Upper || q.Lower > p.Upper {
		return false
	}
	if p.Lower == q.Upper && !(p.LowerInc && q.UpperInc) {
		return false
	}
	if q.Lower == p.Upper && !(q.LowerInc && p.UpperInc) {
		return false
	}
	return true
}

// Adjacent reports whether p and q touch at exactly one endpoint with no
// overlap: p.Upper == q.Lower (or vice versa) and that shared instant is
// covered by at most one of the two periods.
func (p Period) Adjacent(q Period) bool {
	if p.Upper == q.Lower && !(p.UpperInc && q.LowerInc) {
		return true
	}
	if q.Upper == p.Lower && !(q.UpperInc && p.LowerInc) {
		return true
	}
	return false
}

// Before reports whether p is strictly and disjointly ordered before q,
// the ordering relation required of sibling sequences in a sequence set
// (spec.md section 3: "pairwise disjoint and strictly ordered").
func (p Period) Before(q Period) bool {
	if p.Upper < q.Lower {
		return true
	}
	if p.Upper == q.Lower && !(p.UpperInc && q.LowerInc) {
		return true
	}
	return false
}

// Union returns the smallest period containing both p and q. It does not
// validate that p and q are adjacent or overlapping; callers needing that
// guarantee should check Adjacent/Overlaps first (bbox union has no such
// requirement, so this is kept permissive).
func (p Period) Union(q Period) Period {
	out := Period{}
	if p.Lower < q.Lower {
		out.Lower, out.LowerInc = p.Lower, p.LowerInc
	} else if q.Lower < p.Lower {
		out.Lower, out.LowerInc = q.Lower, q.LowerInc
	} else {
		out.Lower, out.LowerInc = p.Lower, p.LowerInc || q.LowerInc
	}
	if p.Upper > q.Upper {
		out.Upper, out.UpperInc = p.Upper, p.UpperInc
	} else if q.Upper > p.Upper {
		out.Upper, out.UpperInc = q.Upper, q.UpperInc
	} else {
		out.Upper, out.UpperInc = p.Upper, p.UpperInc || q.UpperInc
	}
	return out
}

// Duration returns Upper - Lower in microseconds, irrespective of
// inclusivity (a single-instant period has zero duration).
func (p Period) Duration() int64 {
	return int64(p.Upper - p.Lower)
}

func (p Period) String() string {
	lb, ub := "[", ")"
	if !p.LowerInc {
		lb = "("
	}
	if p.UpperInc {
		ub = "]"
	}
	return lb + p.Lower.String() + ", " + p.Upper.String() + ub
}
