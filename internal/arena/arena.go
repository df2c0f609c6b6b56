// Package arena implements the packed-buffer allocator backing spec.md
// section 4.1's binary layout as tsequenceset.Encode writes it: a header
// and the sequences themselves laid out back to back, each padded to a
// double (8-byte) boundary. That encoding has no bbox and no offsets table.
//
// It is adapted from the teacher's encoding/pam/fieldio.UnsafeArena,
// which allocates []byte regions out of one buffer with explicit 8-byte
// alignment for pointer-sized fields. Here the arena backs only the
// serialized encoding of a tsequenceset.SequenceSet (internal/arena is
// not exported to package consumers); the in-memory representation used
// for reads and mutation is a plain Go slice of sequences, per spec.md
// section 9's note that the packed layout need only be "retained... as a
// serialisation format reached by a dedicated encoder."
package arena

import "github.com/grailbio/base/log"

const doubleAlign = 8

// Arena is a write-once byte-buffer allocator.
type Arena struct {
	buf []byte
	n   int
}

// New creates an arena over buf, which must be large enough for every
// subsequent Alloc call; Alloc panics on overflow exactly as
// fieldio.UnsafeArena.Alloc does, since a caller that mis-sized the
// buffer has a bug, not a recoverable condition.
func New(buf []byte) Arena {
	return Arena{buf: buf}
}

// Align rounds the write cursor up to the next 8-byte boundary, so the
// next Alloc starts double-aligned ("Double-padding is mandatory after
// every variable-length field", spec.md section 6).
func (a *Arena) Align() {
	if a.n%doubleAlign != 0 {
		a.n += doubleAlign - a.n%doubleAlign
	}
}

// Alloc reserves and returns a size-byte window of the arena.
func (a *Arena) Alloc(size int) []byte {
	if a.n+size > len(a.buf) {
		log.Panicf("arena: overflow, n=%d, size=%d, cap=%d", a.n, size, len(a.buf))
	}
	out := a.buf[a.n : a.n+size]
	a.n += size
	return out
}

// Len returns the number of bytes written so far.
func (a *Arena) Len() int { return a.n }

// Bytes returns the written prefix of the underlying buffer.
func (a *Arena) Bytes() []byte { return a.buf[:a.n] }
