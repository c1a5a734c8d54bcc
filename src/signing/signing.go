// Package signing turns unsigned entity payloads into signed ones. The
// signature is computed over the unsigned bytes and then spliced in right
// after the entity header, so the signed form is never what gets signed.
package signing

import (
	"github.com/pkg/errors"

	"github.com/overline-mining/nemgen/src/common"
	"github.com/overline-mining/nemgen/src/encoding"
	"github.com/overline-mining/nemgen/src/entity"
)

// A Signer produces a 64 byte signature over a message. Implementations must
// be safe for concurrent use.
type Signer interface {
	PublicKey() []byte
	Sign(message []byte) []byte
}

// AttachSignature returns unsigned[:48] | 64 | signature | unsigned[48:].
// Neither input is modified.
func AttachSignature(unsigned, signature []byte) ([]byte, error) {
	if len(unsigned) < entity.EntityHeaderSize {
		return nil, common.NewShortBufferError("unsigned payload", entity.EntityHeaderSize, len(unsigned))
	}
	if len(signature) != entity.SignatureSize {
		return nil, common.NewFormatError("signature", entity.SignatureSize, len(signature))
	}
	w := encoding.NewWriter(len(unsigned) + entity.SignatureFieldSize)
	w.WriteBytes(unsigned[:entity.EntityHeaderSize])
	w.WriteSized("signature", signature, entity.SignatureSize)
	w.WriteBytes(unsigned[entity.EntityHeaderSize:])
	return w.Finalize()
}

// SignAndAttach signs the unsigned payload exactly once and splices the
// signature into it.
func SignAndAttach(unsigned []byte, signer Signer) ([]byte, error) {
	if len(unsigned) < entity.EntityHeaderSize {
		return nil, common.NewShortBufferError("unsigned payload", entity.EntityHeaderSize, len(unsigned))
	}
	signed, err := AttachSignature(unsigned, signer.Sign(unsigned))
	if err != nil {
		return nil, errors.Wrap(err, "signer returned a malformed signature")
	}
	return signed, nil
}

// DetachSignature reverses AttachSignature, returning the unsigned payload
// and the signature it carried.
func DetachSignature(signed []byte) (unsigned, signature []byte, err error) {
	if len(signed) < entity.EntityHeaderSize+entity.SignatureFieldSize {
		return nil, nil, common.NewShortBufferError("signed payload", entity.EntityHeaderSize+entity.SignatureFieldSize, len(signed))
	}
	r := encoding.NewReader(signed[entity.EntityHeaderSize:])
	signature = r.NextSized("signature", entity.SignatureSize)
	if err := r.Err(); err != nil {
		return nil, nil, err
	}
	unsigned = make([]byte, 0, len(signed)-entity.SignatureFieldSize)
	unsigned = append(unsigned, signed[:entity.EntityHeaderSize]...)
	unsigned = append(unsigned, signed[entity.EntityHeaderSize+entity.SignatureFieldSize:]...)
	return unsigned, signature, nil
}
