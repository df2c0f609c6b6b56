package tsequenceset

import (
	"encoding/binary"

	farm "github.com/dgryski/go-farm"
	"blainsmith.com/go/seahash"

	"github.com/grailbio/temporal/basetype"
)

// Hash32 implements spec.md section 4.9's 32-bit rolling hash: a cheap,
// order-sensitive combination of every instant's (timestamp, value),
// grounded on the teacher's `fusion.kmerIndex` use of `farm.Hash32` as a
// fast non-cryptographic rolling key over small fixed-size records.
func (ss *SequenceSet) Hash32() uint32 {
	var buf [16]byte
	h := uint32(0x9e3779b9) // arbitrary odd seed, matches no external constant
	for _, s := range ss.sequences {
		for _, inst := range s.Instants {
			binary.LittleEndian.PutUint64(buf[0:8], uint64(inst.Time))
			binary.LittleEndian.PutUint64(buf[8:16], instantBits(inst.Tag, inst.Value))
			h = farm.Hash32WithSeed(buf[:], h)
		}
	}
	return h
}

// Hash64 is the stronger structural hash over the same (timestamp, value)
// stream, used where a collision-resistant fingerprint is worth the extra
// cost (e.g. de-duplicating sequence sets in a cache). Grounded on
// `cmd/bio-pamtool/checksum.go`'s streaming `seahash.New()` usage: a
// single hash.Hash64 fed every record in order, then finalized once.
func (ss *SequenceSet) Hash64() uint64 {
	h := seahash.New()
	var buf [16]byte
	for _, s := range ss.sequences {
		for _, inst := range s.Instants {
			binary.LittleEndian.PutUint64(buf[0:8], uint64(inst.Time))
			binary.LittleEndian.PutUint64(buf[8:16], instantBits(inst.Tag, inst.Value))
			h.Write(buf[:])
		}
	}
	return h.Sum64()
}

// instantBits packs an instant's value into a 64-bit digest for hashing,
// via a farm hash of its text form (bool/int/float/text/point all
// round-trip through the adapter's Out() cleanly, so this needs no
// per-domain special case).
func instantBits(tag basetype.Tag, v interface{}) uint64 {
	adapter, err := basetype.For(tag)
	if err != nil {
		return 0
	}
	return farm.Hash64([]byte(adapter.Out(v)))
}
