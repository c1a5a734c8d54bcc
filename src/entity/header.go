// Package entity encodes the header shared by every signable entity: block
// headers and transactions alike start with the same 48 byte prefix.
package entity

import (
	"github.com/overline-mining/nemgen/src/common"
	"github.com/overline-mining/nemgen/src/encoding"
)

const (
	PublicKeySize = 32
	SignatureSize = 64
	HashSize      = 32
	AddressSize   = 25

	// TypeSize is the width of the entity type discriminator.
	TypeSize = 4
	// HeaderSize covers version, network, timestamp and the length
	// prefixed signer public key.
	HeaderSize = 2 + 2 + 4 + 4 + PublicKeySize
	// EntityHeaderSize is the split point of every signable entity: the
	// signature field is spliced in right after it.
	EntityHeaderSize = TypeSize + HeaderSize
	// SignatureFieldSize is what signing adds: length prefix plus signature.
	SignatureFieldSize = 4 + SignatureSize
)

type Header struct {
	Type            uint32
	Version         uint16
	Network         uint16
	Timestamp       uint32
	SignerPublicKey []byte
}

// EncodeHeader writes version, network, timestamp and the length prefixed
// signer public key. Nothing is written when the key has the wrong width.
func EncodeHeader(w *encoding.Writer, version, network uint16, timestamp uint32, signerPublicKey []byte) error {
	if len(signerPublicKey) != PublicKeySize {
		return common.NewFormatError("signer public key", PublicKeySize, len(signerPublicKey))
	}
	w.WriteUint16(version)
	w.WriteUint16(network)
	w.WriteUint32(timestamp)
	return w.WriteSized("signer public key", signerPublicKey, PublicKeySize)
}

// EncodePrefix writes the type discriminator followed by the header, i.e.
// the first EntityHeaderSize bytes of an unsigned entity.
func EncodePrefix(w *encoding.Writer, h Header) error {
	if len(h.SignerPublicKey) != PublicKeySize {
		return common.NewFormatError("signer public key", PublicKeySize, len(h.SignerPublicKey))
	}
	w.WriteUint32(h.Type)
	return EncodeHeader(w, h.Version, h.Network, h.Timestamp, h.SignerPublicKey)
}

// DecodePrefix reads what EncodePrefix writes.
func DecodePrefix(r *encoding.Reader) (Header, error) {
	var h Header
	h.Type = r.NextUint32("entity type")
	h.Version = r.NextUint16("version")
	h.Network = r.NextUint16("network")
	h.Timestamp = r.NextUint32("timestamp")
	h.SignerPublicKey = r.NextSized("signer public key", PublicKeySize)
	if err := r.Err(); err != nil {
		return Header{}, err
	}
	return h, nil
}

// PeekType returns the type discriminator of an entity without consuming it.
func PeekType(b []byte) (uint32, error) {
	r := encoding.NewReader(b)
	t := r.NextUint32("entity type")
	return t, r.Err()
}
