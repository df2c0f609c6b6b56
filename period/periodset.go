package period

import (
	"sort"

	"github.com/grailbio/temporal/terrors"
)

// PeriodSet is an ordered set of disjoint, strictly ordered periods. It
// plays the role in this module that BEDUnion's []PosType arrays play in
// interval/bedunion.go: a sorted, merged run of spans supporting
// logarithmic containment queries and linear merge-walks.
type PeriodSet struct {
	periods []Period
}

// NewPeriodSet builds a PeriodSet from periods, sorting and merging
// touching/overlapping ones the way interval.scanBEDUnion coalesces
// adjacent BED intervals on ingest. It never errors: any overlap is
// resolved by merging, since a period set has no "join value" constraint
// (unlike a sequence set, whose members must agree in value at a shared
// bound).
func NewPeriodSet(periods ...Period) PeriodSet {
	if len(periods) == 0 {
		return PeriodSet{}
	}
	cp := make([]Period, len(periods))
	copy(cp, periods)
	sort.Slice(cp, func(i, j int) bool {
		if cp[i].Lower != cp[j].Lower {
			return cp[i].Lower < cp[j].Lower
		}
		return cp[i].Upper < cp[j].Upper
	})
	out := make([]Period, 0, len(cp))
	cur := cp[0]
	for _, p := range cp[1:] {
		if cur.Overlaps(p) || cur.Adjacent(p) {
			cur = cur.Union(p)
			continue
		}
		out = append(out, cur)
		cur = p
	}
	out = append(out, cur)
	return PeriodSet{periods: out}
}

// Periods returns a borrowed view of the set's periods; callers must not
// mutate the returned slice.
func (ps PeriodSet) Periods() []Period { return ps.periods }

// Len reports the number of disjoint periods.
func (ps PeriodSet) Len() int { return len(ps.periods) }

// IsEmpty reports whether the set has no periods.
func (ps PeriodSet) IsEmpty() bool { return len(ps.periods) == 0 }

// Span returns the period from the first set's lower bound to the last
// set's upper bound, or (Period{}, false) if the set is empty.
func (ps PeriodSet) Span() (Period, bool) {
	if ps.IsEmpty() {
		return Period{}, false
	}
	first, last := ps.periods[0], ps.periods[len(ps.periods)-1]
	return Period{Lower: first.Lower, LowerInc: first.LowerInc, Upper: last.Upper, UpperInc: last.UpperInc}, true
}

// findTimestamp is the PeriodSet-level analogue of
// tsequenceset.findTimestamp (spec.md section 4.3): it returns (found,
// loc) where loc is the index of the containing period if found, or the
// number of periods strictly below t otherwise.
func (ps PeriodSet) findTimestamp(t Timestamp) (bool, int) {
	loc := sort.Search(len(ps.periods), func(i int) bool { return !ps.periods[i].Before(Instant(t)) })
	if loc < len(ps.periods) && ps.periods[loc].Contains(t) {
		return true, loc
	}
	return false, loc
}

// Contains reports whether t is covered by the set.
func (ps PeriodSet) Contains(t Timestamp) bool {
	found, _ := ps.findTimestamp(t)
	return found
}

// Union returns the disjoint merge of ps and other.
func (ps PeriodSet) Union(other PeriodSet) PeriodSet {
	all := make([]Period, 0, len(ps.periods)+len(other.periods))
	all = append(all, ps.periods...)
	all = append(all, other.periods...)
	return NewPeriodSet(all...)
}

// Intersection returns the periods (possibly split) common to both sets,
// via the two-pointer merge walk described in spec.md section 4.6.
func (ps PeriodSet) Intersection(other PeriodSet) PeriodSet {
	var out []Period
	i, j := 0, 0
	for i < len(ps.periods) && j < len(other.periods) {
		a, b := ps.periods[i], other.periods[j]
		if !a.Overlaps(b) {
			if a.Before(b) {
				i++
			} else {
				j++
			}
			continue
		}
		lower, lowerInc := a.Lower, a.LowerInc
		if b.Lower > a.Lower || (b.Lower == a.Lower && !b.LowerInc) {
			lower, lowerInc = b.Lower, b.LowerInc
		}
		upper, upperInc := a.Upper, a.UpperInc
		if b.Upper < a.Upper || (b.Upper == a.Upper && !b.UpperInc) {
			upper, upperInc = b.Upper, b.UpperInc
		}
		if lower < upper || (lower == upper && lowerInc && upperInc) {
			out = append(out, Period{Lower: lower, Upper: upper, LowerInc: lowerInc, UpperInc: upperInc})
		}
		if a.Upper < b.Upper {
			i++
		} else if b.Upper < a.Upper {
			j++
		} else {
			i++
			j++
		}
	}
	return NewPeriodSet(out...)
}

// Minus returns ps with every timestamp in other removed, splitting
// periods as necessary and leaving the correct exclusive bounds at the
// cut points (spec.md section 8 scenario 3).
func (ps PeriodSet) Minus(other PeriodSet) PeriodSet {
	if other.IsEmpty() {
		return ps
	}
	var out []Period
	for _, p := range ps.periods {
		remaining := []Period{p}
		for _, cut := range other.periods {
			var next []Period
			for _, r := range remaining {
				next = append(next, subtractOne(r, cut)...)
			}
			remaining = next
		}
		out = append(out, remaining...)
	}
	return NewPeriodSet(out...)
}

// subtractOne removes cut from p, returning zero, one, or two remaining
// pieces.
func subtractOne(p, cut Period) []Period {
	if !p.Overlaps(cut) {
		return []Period{p}
	}
	var out []Period
	if cut.Lower > p.Lower || (cut.Lower == p.Lower && !cut.LowerInc && p.LowerInc) {
		upperInc := !cut.LowerInc
		if cut.Lower > p.Lower || upperInc {
			out = append(out, Period{Lower: p.Lower, LowerInc: p.LowerInc, Upper: cut.Lower, UpperInc: upperInc})
		}
	}
	if cut.Upper < p.Upper || (cut.Upper == p.Upper && !cut.UpperInc && p.UpperInc) {
		lowerInc := !cut.UpperInc
		out = append(out, Period{Lower: cut.Upper, LowerInc: lowerInc, Upper: p.Upper, UpperInc: p.UpperInc})
	}
	return out
}

// Complement returns the complement of ps within [lower, upper].
func (ps PeriodSet) Complement(lower, upper Timestamp) (PeriodSet, error) {
	bound, err := New(lower, upper, true, true)
	if err != nil {
		return PeriodSet{}, terrors.New(terrors.InvalidOrder, "invalid complement bound", lower, upper)
	}
	return NewPeriodSet(bound).Minus(ps), nil
}
