package tsequenceset

import (
	"sort"

	"github.com/grailbio/temporal/period"
)

// findTimestamp implements spec.md section 4.3's binary search: given t,
// returns (found, loc) where loc is the index of the containing sequence
// if found, else the number of sequences strictly below t. It is the
// sequence-set-level generalisation of interval.searchPosType, operating
// on sequence periods instead of a flat []PosType.
func (ss *SequenceSet) findTimestamp(t period.Timestamp) (bool, int) {
	seqs := ss.sequences
	loc := sort.Search(len(seqs), func(i int) bool {
		p := seqs[i].Period()
		return !p.Before(period.Instant(t))
	})
	if loc < len(seqs) && seqs[loc].Period().Contains(t) {
		return true, loc
	}
	return false, loc
}

// FindTimestamp exposes findTimestamp for callers (e.g. temporal, tests)
// that need the raw binary-search result without performing a full
// restriction.
func (ss *SequenceSet) FindTimestamp(t period.Timestamp) (bool, int) {
	return ss.findTimestamp(t)
}
