// Package keys implements the NEM flavour of Ed25519 (Keccak-512 in place of
// SHA-512, byte-reversed private keys) together with address derivation.
package keys

import (
	"bytes"
	"encoding/hex"

	"filippo.io/edwards25519"

	"github.com/overline-mining/nemgen/src/common"
	"github.com/overline-mining/nemgen/src/entity"
	"github.com/overline-mining/nemgen/src/nemhash"
)

const PrivateKeySize = 32

// KeyPair is immutable after construction and safe for concurrent signing.
type KeyPair struct {
	scalar    *edwards25519.Scalar
	prefix    []byte
	publicKey []byte
}

// NewKeyPair derives the key pair for a private key in its configured
// (big-endian) byte order.
func NewKeyPair(privateKey []byte) (*KeyPair, error) {
	if len(privateKey) != PrivateKeySize {
		return nil, common.NewFormatError("private key", PrivateKeySize, len(privateKey))
	}
	reversed := make([]byte, PrivateKeySize)
	for i, b := range privateKey {
		reversed[PrivateKeySize-1-i] = b
	}
	h := nemhash.Keccak512(reversed)
	scalar, err := edwards25519.NewScalar().SetBytesWithClamping(h[:32])
	if err != nil {
		return nil, err
	}
	publicKey := new(edwards25519.Point).ScalarBaseMult(scalar).Bytes()
	return &KeyPair{scalar: scalar, prefix: h[32:], publicKey: publicKey}, nil
}

func NewKeyPairFromHex(privateKey string) (*KeyPair, error) {
	b, err := hex.DecodeString(privateKey)
	if err != nil {
		return nil, err
	}
	return NewKeyPair(b)
}

func (kp *KeyPair) PublicKey() []byte {
	return append([]byte(nil), kp.publicKey...)
}

// Sign returns R || S. Signing is deterministic.
func (kp *KeyPair) Sign(message []byte) []byte {
	r, err := edwards25519.NewScalar().SetUniformBytes(nemhash.Keccak512(kp.prefix, message))
	if err != nil {
		panic(err) // Keccak-512 output is always 64 bytes
	}
	encodedR := new(edwards25519.Point).ScalarBaseMult(r).Bytes()
	k, err := edwards25519.NewScalar().SetUniformBytes(nemhash.Keccak512(encodedR, kp.publicKey, message))
	if err != nil {
		panic(err)
	}
	s := edwards25519.NewScalar().MultiplyAdd(k, kp.scalar, r)

	signature := make([]byte, 0, entity.SignatureSize)
	signature = append(signature, encodedR...)
	return append(signature, s.Bytes()...)
}

// Verify reports whether signature is a valid signature of message by
// publicKey. Malformed keys or signatures never verify.
func Verify(publicKey, message, signature []byte) bool {
	if len(publicKey) != entity.PublicKeySize || len(signature) != entity.SignatureSize {
		return false
	}
	A, err := new(edwards25519.Point).SetBytes(publicKey)
	if err != nil {
		return false
	}
	s, err := edwards25519.NewScalar().SetCanonicalBytes(signature[32:])
	if err != nil {
		return false
	}
	k, err := edwards25519.NewScalar().SetUniformBytes(nemhash.Keccak512(signature[:32], publicKey, message))
	if err != nil {
		return false
	}
	minusA := new(edwards25519.Point).Negate(A)
	R := new(edwards25519.Point).VarTimeDoubleScalarBaseMult(k, minusA, s)
	return bytes.Equal(R.Bytes(), signature[:32])
}
