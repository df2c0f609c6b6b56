// Package tsequenceset implements the temporal sequence set: the core of
// this module (spec.md component 5). A SequenceSet is an ordered,
// pairwise-disjoint collection of tsequence.Sequence values sharing one
// interpolation, supporting binary-search restriction, synchronisation,
// mutation under strict ordering, and a packed binary encoding.
package tsequenceset

import (
	"sort"

	"github.com/grailbio/temporal/basetype"
	"github.com/grailbio/temporal/bbox"
	"github.com/grailbio/temporal/circular"
	"github.com/grailbio/temporal/terrors"
	"github.com/grailbio/temporal/tsequence"
)

// SequenceSet is the core temporal value: an ordered array of disjoint
// sequences sharing one temporal type and interpolation (spec.md section
// 3). sequences is capacity-managed by BuildOpts.ReserveCapacity and
// ensureCapacity to back the
// amortised-append optimisation of spec.md section 4.4; len(sequences) is
// the authoritative count, cap(sequences) is "maxcount".
type SequenceSet struct {
	Tag    basetype.Tag
	Interp tsequence.Interpolation

	sequences     []tsequence.Sequence
	totalInstants int
	box           bbox.Box
}

// BuildOpts controls construction, playing the role of a plain options
// struct the way interval.NewBEDOpts configures BED loading.
type BuildOpts struct {
	// Normalize requests pairwise-merging adjacent sequences per spec.md
	// section 4.2 item 3.
	Normalize bool
	// ReserveCapacity pre-sizes the backing slice beyond len(sequences),
	// enabling in-place appends without reallocation until exhausted.
	ReserveCapacity int
}

// New validates and constructs a SequenceSet from seqs, per spec.md
// section 4.2.
func New(tag basetype.Tag, interp tsequence.Interpolation, seqs []tsequence.Sequence, opts BuildOpts) (*SequenceSet, error) {
	for _, s := range seqs {
		if s.Tag != tag {
			return nil, terrors.New(terrors.TypeMismatch, "sequence tag does not match sequence set tag", s.Tag, tag)
		}
		if s.Interp != interp {
			return nil, terrors.New(terrors.InterpolationMismatch, "sequence interpolation does not match sequence set interpolation", s.Interp, interp)
		}
	}
	ordered := make([]tsequence.Sequence, len(seqs))
	copy(ordered, seqs)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Period().Lower < ordered[j].Period().Lower
	})
	for i := 1; i < len(ordered); i++ {
		prev, cur := ordered[i-1].Period(), ordered[i].Period()
		if !prev.Before(cur) {
			return nil, terrors.New(terrors.InvalidOrder, "sequences are not strictly ordered and disjoint", prev, cur)
		}
	}

	if opts.Normalize {
		merged, err := normalize(ordered)
		if err != nil {
			return nil, err
		}
		ordered = merged
	}

	cap := len(ordered)
	if opts.ReserveCapacity > cap {
		cap = opts.ReserveCapacity
	}
	backing := make([]tsequence.Sequence, len(ordered), cap)
	copy(backing, ordered)

	ss := &SequenceSet{Tag: tag, Interp: interp, sequences: backing}
	ss.recompute()
	return ss, nil
}

// normalize pairwise-merges adjacent sequences that satisfy the `join`
// predicate (spec.md section 4.2 item 3 / section 4.4), scanning left to
// right the way interval.scanBEDUnion folds adjacent BED intervals.
func normalize(seqs []tsequence.Sequence) ([]tsequence.Sequence, error) {
	if len(seqs) == 0 {
		return seqs, nil
	}
	out := make([]tsequence.Sequence, 0, len(seqs))
	cur := seqs[0]
	for _, next := range seqs[1:] {
		can, err := cur.CanJoin(next)
		if err != nil {
			return nil, err
		}
		if can {
			joined, err := cur.Join(next)
			if err != nil {
				return nil, err
			}
			cur = joined
			continue
		}
		out = append(out, cur)
		cur = next
	}
	out = append(out, cur)
	return out, nil
}

// sharesBoundaryInstant reports whether cur's first instant is the same
// timestamp as prev's last instant. period.Period.Before allows two
// disjoint, strictly ordered sequences to touch at exactly this timestamp
// whenever their inclusivity flags aren't both set, but the instant arrays
// on both sides still physically hold an entry there (Sequence.Period
// derives its bounds from the stored instants, not the other way round),
// so counting or indexing must not see it twice.
func sharesBoundaryInstant(prev, cur tsequence.Sequence) bool {
	return prev.Period().Upper == cur.Period().Lower
}

// recompute refreshes totalInstants and box from the current sequences
// slice. Callers must invoke this after any structural mutation.
func (ss *SequenceSet) recompute() {
	ss.totalInstants = 0
	ss.box = bbox.Empty
	for i, s := range ss.sequences {
		n := s.NumInstants()
		if i > 0 && sharesBoundaryInstant(ss.sequences[i-1], s) {
			n--
		}
		ss.totalInstants += n
		ss.box = bbox.Union(ss.box, s.BBox())
	}
}

// NumSequences returns the number of disjoint sequences.
func (ss *SequenceSet) NumSequences() int { return len(ss.sequences) }

// TotalInstants returns the sum of per-sequence instant counts, counting
// an instant shared by two touching sequences once.
func (ss *SequenceSet) TotalInstants() int { return ss.totalInstants }

// BBox returns the union bounding box.
func (ss *SequenceSet) BBox() bbox.Box { return ss.box }

// Seq returns a borrow of the i'th sequence (spec.md section 4.1's
// `seq(i)` accessor). It panics on an out-of-range index, matching the
// teacher's treatment of internal invariant violations (e.g.
// biopb.Coord.Compare assumes valid inputs) rather than returning an
// error for a programmer mistake.
func (ss *SequenceSet) Seq(i int) tsequence.Sequence {
	return ss.sequences[i]
}

// Sequences returns a borrowed view of every sequence; callers must not
// mutate the returned slice.
func (ss *SequenceSet) Sequences() []tsequence.Sequence {
	return ss.sequences
}

// Capacity returns the reserved slot count ("maxcount" in spec.md section
// 4.1).
func (ss *SequenceSet) Capacity() int { return cap(ss.sequences) }

// ensureCapacity grows the backing slice to at least n slots, doubling
// via circular.NextExp2 the way spec.md section 4.4 describes ("the
// caller allocates a fresh buffer with maxcount doubled").
func (ss *SequenceSet) ensureCapacity(n int) {
	if cap(ss.sequences) >= n {
		return
	}
	newCap := cap(ss.sequences)
	if newCap == 0 {
		newCap = 1
	}
	for newCap < n {
		newCap = circular.NextExp2(newCap)
	}
	grown := make([]tsequence.Sequence, len(ss.sequences), newCap)
	copy(grown, ss.sequences)
	ss.sequences = grown
}
