package encoding

import (
	"encoding/binary"

	"github.com/overline-mining/nemgen/src/common"
)

// A Reader consumes fixed-width fields from a byte slice. Like Writer it
// keeps the first error and turns every later call into a no-op.
type Reader struct {
	buf []byte
	off int
	err error
}

func NewReader(b []byte) *Reader {
	return &Reader{buf: b}
}

func (r *Reader) next(field string, n int) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 || r.Remaining() < n {
		r.err = common.NewShortBufferError(field, n, r.Remaining())
		return nil
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b
}

// NextUint reads a width byte little-endian integer.
func (r *Reader) NextUint(field string, width int) uint64 {
	b := r.next(field, width)
	if b == nil {
		return 0
	}
	var tmp [8]byte
	copy(tmp[:], b)
	return binary.LittleEndian.Uint64(tmp[:])
}

func (r *Reader) NextUint16(field string) uint16 { return uint16(r.NextUint(field, 2)) }
func (r *Reader) NextUint32(field string) uint32 { return uint32(r.NextUint(field, 4)) }
func (r *Reader) NextUint64(field string) uint64 { return r.NextUint(field, 8) }

// NextBytes returns a copy of the next n bytes.
func (r *Reader) NextBytes(field string, n int) []byte {
	b := r.next(field, n)
	if b == nil {
		return nil
	}
	out := make([]byte, n)
	copy(out, b)
	return out
}

// NextSized reads a 4 byte length field, requires it to equal size, and
// returns the size bytes that follow.
func (r *Reader) NextSized(field string, size int) []byte {
	n := r.NextUint32(field + " length")
	if r.err != nil {
		return nil
	}
	if int(n) != size {
		r.err = common.NewFormatError(field, size, int(n))
		return nil
	}
	return r.NextBytes(field, size)
}

func (r *Reader) Offset() int {
	return r.off
}

func (r *Reader) Remaining() int {
	return len(r.buf) - r.off
}

func (r *Reader) Err() error {
	return r.err
}
