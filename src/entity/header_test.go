package entity

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"

	"github.com/overline-mining/nemgen/src/common"
	"github.com/overline-mining/nemgen/src/encoding"
)

func TestSizes(t *testing.T) {
	if HeaderSize != 44 {
		t.Fatalf("HeaderSize = %d", HeaderSize)
	}
	if EntityHeaderSize != 48 {
		t.Fatalf("EntityHeaderSize = %d", EntityHeaderSize)
	}
}

func TestEncodeHeaderLayout(t *testing.T) {
	pk := bytes.Repeat([]byte{0xAB}, PublicKeySize)
	w := encoding.NewWriter(HeaderSize)
	if err := EncodeHeader(w, 1, 0x98, 0, pk); err != nil {
		t.Fatal(err)
	}
	got, err := w.Finalize()
	if err != nil {
		t.Fatal(err)
	}
	want := append([]byte{1, 0, 0x98, 0, 0, 0, 0, 0, 32, 0, 0, 0}, pk...)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("header mismatch (-want +got):\n%s", diff)
	}
}

// TestEncodeHeaderShortKey feeds a 31 byte key and expects a FormatError
// with nothing written.
func TestEncodeHeaderShortKey(t *testing.T) {
	w := encoding.NewWriter(0)
	err := EncodeHeader(w, 1, 0x98, 0, make([]byte, 31))
	var fe *common.FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FormatError, got %v", err)
	}
	if fe.Expected != 32 || fe.Actual != 31 {
		t.Fatalf("unexpected sizes in error: %+v", fe)
	}
	if w.Len() != 0 {
		t.Fatalf("%d bytes written despite the error", w.Len())
	}

	w = encoding.NewWriter(0)
	if err := EncodePrefix(w, Header{Type: 1, SignerPublicKey: make([]byte, 33)}); err == nil {
		t.Fatal("33 byte key should be rejected")
	}
	if w.Len() != 0 {
		t.Fatal("prefix should not be partially written")
	}
}

func TestPrefixRoundTrip(t *testing.T) {
	h := Header{
		Type:            0xFFFFFFFF,
		Version:         1,
		Network:         0x68,
		Timestamp:       7,
		SignerPublicKey: bytes.Repeat([]byte{3}, PublicKeySize),
	}
	w := encoding.NewWriter(EntityHeaderSize)
	if err := EncodePrefix(w, h); err != nil {
		t.Fatal(err)
	}
	b, _ := w.Finalize()
	if len(b) != EntityHeaderSize {
		t.Fatalf("prefix is %d bytes, want %d", len(b), EntityHeaderSize)
	}
	got, err := DecodePrefix(encoding.NewReader(b))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(h, got); diff != "" {
		t.Fatalf("prefix round trip mismatch (-want +got):\n%s", diff)
	}
	typ, err := PeekType(b)
	if err != nil || typ != 0xFFFFFFFF {
		t.Fatalf("PeekType = %x, %v", typ, err)
	}
	if _, err := DecodePrefix(encoding.NewReader(b[:20])); err == nil {
		t.Fatal("truncated prefix should fail")
	}
}
