package transactions

import (
	"github.com/pkg/errors"

	"github.com/overline-mining/nemgen/src/common"
	"github.com/overline-mining/nemgen/src/encoding"
	"github.com/overline-mining/nemgen/src/entity"
)

const (
	TRANSFER_TYPE    = 0x0101
	TRANSFER_VERSION = 1
	// genesis transactions carry no timestamp
	GENESIS_TIMESTAMP = 0

	// TransferSize is the length of an unsigned transfer payload.
	TransferSize = entity.EntityHeaderSize + entity.AddressSize + 8
	// SignedTransferSize is the length of a signed transfer payload.
	SignedTransferSize = TransferSize + entity.SignatureFieldSize
)

type TransferTransaction struct {
	entity.Header
	Recipient []byte
	Amount    uint64
}

// EncodeTransfer returns the unsigned transfer payload: entity prefix,
// recipient address and amount.
func EncodeTransfer(signerPublicKey []byte, network uint16, recipient []byte, amount uint64) ([]byte, error) {
	if len(recipient) != entity.AddressSize {
		return nil, common.NewFormatError("recipient address", entity.AddressSize, len(recipient))
	}
	w := encoding.NewWriter(TransferSize)
	err := entity.EncodePrefix(w, entity.Header{
		Type:            TRANSFER_TYPE,
		Version:         TRANSFER_VERSION,
		Network:         network,
		Timestamp:       GENESIS_TIMESTAMP,
		SignerPublicKey: signerPublicKey,
	})
	if err != nil {
		return nil, errors.Wrap(err, "transfer transaction")
	}
	w.WriteBytes(recipient)
	w.WriteUint64(amount)
	return w.Finalize()
}

// DecodeTransfer parses an unsigned transfer payload.
func DecodeTransfer(unsigned []byte) (*TransferTransaction, error) {
	if len(unsigned) != TransferSize {
		return nil, common.NewFormatError("transfer transaction", TransferSize, len(unsigned))
	}
	r := encoding.NewReader(unsigned)
	h, err := entity.DecodePrefix(r)
	if err != nil {
		return nil, err
	}
	if h.Type != TRANSFER_TYPE {
		return nil, errors.Errorf("entity type 0x%x is not a transfer transaction", h.Type)
	}
	tx := &TransferTransaction{Header: h}
	tx.Recipient = r.NextBytes("recipient address", entity.AddressSize)
	tx.Amount = r.NextUint64("amount")
	if err := r.Err(); err != nil {
		return nil, err
	}
	return tx, nil
}

// UnsignedSize returns the unsigned length of the entity at the start of b,
// derived from its type field.
func UnsignedSize(b []byte) (int, error) {
	t, err := entity.PeekType(b)
	if err != nil {
		return 0, err
	}
	switch t {
	case TRANSFER_TYPE:
		return TransferSize, nil
	}
	return 0, errors.Errorf("unknown transaction type 0x%x", t)
}
