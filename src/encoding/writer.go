// Package encoding provides the append-only little-endian buffer that every
// entity codec writes into, and the matching reader used to split finished
// streams back into entities.
package encoding

import (
	"encoding/binary"

	"github.com/overline-mining/nemgen/src/common"
)

// A Writer accumulates fixed-width little-endian integers and raw bytes. It
// has no seek: entities that need bytes inserted after the fact are rebuilt
// from the finalized buffer. After the first error every method is a no-op
// and Finalize reports that error.
type Writer struct {
	buf []byte
	err error
}

func NewWriter(capacity int) *Writer {
	return &Writer{buf: make([]byte, 0, capacity)}
}

// fits reports whether v can be represented in width bytes.
func fits(v uint64, width int) bool {
	if width >= 8 {
		return true
	}
	return v>>(8*uint(width)) == 0
}

// WriteUint appends v as a width byte little-endian integer. Widths other
// than 1, 2, 4 and 8 are rejected, as are values wider than the field.
func (w *Writer) WriteUint(v uint64, width int) error {
	if w.err != nil {
		return w.err
	}
	switch width {
	case 1, 2, 4, 8:
	default:
		w.err = common.NewRangeError("field width", width, 8)
		return w.err
	}
	if !fits(v, width) {
		w.err = common.NewRangeError("integer", v, width)
		return w.err
	}
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	w.buf = append(w.buf, tmp[:width]...)
	return nil
}

func (w *Writer) WriteUint16(v uint16) error { return w.WriteUint(uint64(v), 2) }
func (w *Writer) WriteUint32(v uint32) error { return w.WriteUint(uint64(v), 4) }
func (w *Writer) WriteUint64(v uint64) error { return w.WriteUint(v, 8) }

// WriteBytes appends b unchanged.
func (w *Writer) WriteBytes(b []byte) error {
	if w.err != nil {
		return w.err
	}
	w.buf = append(w.buf, b...)
	return nil
}

// WriteSized appends a 4 byte length field followed by b, after checking
// that b is exactly size bytes long.
func (w *Writer) WriteSized(field string, b []byte, size int) error {
	if w.err != nil {
		return w.err
	}
	if len(b) != size {
		w.err = common.NewFormatError(field, size, len(b))
		return w.err
	}
	w.WriteUint32(uint32(size))
	return w.WriteBytes(b)
}

func (w *Writer) Len() int {
	return len(w.buf)
}

func (w *Writer) Err() error {
	return w.err
}

// Finalize returns a copy of the accumulated bytes, or the first error.
func (w *Writer) Finalize() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	out := make([]byte, len(w.buf))
	copy(out, w.buf)
	return out, nil
}
