package signing

import (
	"bytes"
	"encoding/binary"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"

	"github.com/overline-mining/nemgen/src/common"
	"github.com/overline-mining/nemgen/src/entity"
)

// countingSigner signs by repeating the first message byte and records the
// messages it was handed.
type countingSigner struct {
	calls    int32
	messages [][]byte
	sigLen   int
}

func (s *countingSigner) PublicKey() []byte { return make([]byte, entity.PublicKeySize) }

func (s *countingSigner) Sign(message []byte) []byte {
	atomic.AddInt32(&s.calls, 1)
	s.messages = append(s.messages, append([]byte(nil), message...))
	n := s.sigLen
	if n == 0 {
		n = entity.SignatureSize
	}
	return bytes.Repeat([]byte{message[0] ^ 0x5A}, n)
}

func payload(n int) []byte {
	p := make([]byte, n)
	for i := range p {
		p[i] = byte(i)
	}
	return p
}

// TestAttachSignaturePlacement checks the length field at [48:52] and the
// signature at [52:116].
func TestAttachSignaturePlacement(t *testing.T) {
	unsigned := payload(81)
	sig := bytes.Repeat([]byte{0xEE}, entity.SignatureSize)
	signed, err := AttachSignature(unsigned, sig)
	if err != nil {
		t.Fatal(err)
	}
	if len(signed) != len(unsigned)+entity.SignatureFieldSize {
		t.Fatalf("signed length %d", len(signed))
	}
	if got := binary.LittleEndian.Uint32(signed[48:52]); got != 64 {
		t.Fatalf("signature length field = %d", got)
	}
	if !bytes.Equal(signed[52:116], sig) {
		t.Fatal("signature not found at [52:116]")
	}
	if !bytes.Equal(signed[:48], unsigned[:48]) || !bytes.Equal(signed[116:], unsigned[48:]) {
		t.Fatal("unsigned regions were not copied verbatim")
	}
	if !bytes.Equal(unsigned, payload(81)) {
		t.Fatal("input payload was mutated")
	}
}

// TestDetachRoundTrip splits signed payloads of several sizes back into
// their unsigned prefix and suffix.
func TestDetachRoundTrip(t *testing.T) {
	sig := bytes.Repeat([]byte{1}, entity.SignatureSize)
	for _, n := range []int{48, 49, 81, 300} {
		unsigned := payload(n)
		signed, err := AttachSignature(unsigned, sig)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(signed[:48], unsigned[:48]) || !bytes.Equal(signed[48+4+64:], unsigned[48:]) {
			t.Fatalf("split at 116 does not reproduce a %d byte payload", n)
		}
		gotUnsigned, gotSig, err := DetachSignature(signed)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(unsigned, gotUnsigned); diff != "" {
			t.Fatalf("unsigned mismatch for %d bytes (-want +got):\n%s", n, diff)
		}
		if !bytes.Equal(gotSig, sig) {
			t.Fatal("signature mismatch")
		}
	}
}

func TestAttachSignatureDeterministic(t *testing.T) {
	unsigned := payload(100)
	sig := bytes.Repeat([]byte{9}, entity.SignatureSize)
	a, _ := AttachSignature(unsigned, sig)
	b, _ := AttachSignature(unsigned, sig)
	if !bytes.Equal(a, b) {
		t.Fatal("AttachSignature is not deterministic")
	}
}

func TestAttachSignatureErrors(t *testing.T) {
	var fe *common.FormatError
	if _, err := AttachSignature(payload(47), make([]byte, 64)); !errors.As(err, &fe) || !fe.AtLeast {
		t.Fatalf("47 byte payload: expected FormatError, got %v", err)
	}
	if _, err := AttachSignature(payload(48), make([]byte, 63)); !errors.As(err, &fe) || fe.Field != "signature" {
		t.Fatalf("63 byte signature: expected FormatError, got %v", err)
	}
	if _, _, err := DetachSignature(payload(115)); err == nil {
		t.Fatal("115 bytes cannot hold a signed entity")
	}
	bad := make([]byte, 116)
	binary.LittleEndian.PutUint32(bad[48:], 32)
	if _, _, err := DetachSignature(bad); !errors.As(err, &fe) {
		t.Fatalf("wrong signature length field: expected FormatError, got %v", err)
	}
}

// TestSignAndAttach checks the signer sees only the unsigned bytes, once.
func TestSignAndAttach(t *testing.T) {
	signer := &countingSigner{}
	unsigned := payload(81)
	signed, err := SignAndAttach(unsigned, signer)
	if err != nil {
		t.Fatal(err)
	}
	if signer.calls != 1 {
		t.Fatalf("signer invoked %d times", signer.calls)
	}
	if !bytes.Equal(signer.messages[0], unsigned) {
		t.Fatal("signer was not handed the unsigned payload")
	}
	if !bytes.Equal(signed[52:116], bytes.Repeat([]byte{unsigned[0] ^ 0x5A}, 64)) {
		t.Fatal("signature not spliced")
	}

	bad := &countingSigner{sigLen: 32}
	if _, err := SignAndAttach(unsigned, bad); err == nil {
		t.Fatal("short signature should be rejected")
	}
	short := &countingSigner{}
	if _, err := SignAndAttach(payload(10), short); err == nil || short.calls != 0 {
		t.Fatal("short payload should fail before signing")
	}
}
