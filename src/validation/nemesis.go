package validation

import (
	"github.com/pkg/errors"

	"github.com/overline-mining/nemgen/src/encoding"
	"github.com/overline-mining/nemgen/src/entity"
	"github.com/overline-mining/nemgen/src/transactions"
)

// Block is a parsed signed nemesis block header together with the unsigned
// transactions embedded in it.
type Block struct {
	entity.Header
	Signature      []byte
	GenerationHash []byte
	Height         uint64
	Transactions   [][]byte
	// Unsigned is the block payload without its signature field, i.e. the
	// bytes that were signed.
	Unsigned []byte
}

type Nemesis struct {
	Block              *Block
	SignedTransactions [][]byte
}

// ParseNemesis splits a nemesis stream into the signed block and the signed
// transactions that follow it, using only the type and length fields inside
// each entity.
func ParseNemesis(stream []byte) (*Nemesis, error) {
	r := encoding.NewReader(stream)
	h, err := entity.DecodePrefix(r)
	if err != nil {
		return nil, errors.Wrap(err, "block header")
	}
	block := &Block{Header: h}
	block.Signature = r.NextSized("block signature", entity.SignatureSize)
	block.GenerationHash = r.NextSized("generation hash", entity.HashSize)
	block.Height = r.NextUint64("height")
	count := r.NextUint32("transaction count")
	if err := r.Err(); err != nil {
		return nil, errors.Wrap(err, "block header")
	}

	block.Transactions = make([][]byte, 0, minInt(int(count), r.Remaining()/entity.EntityHeaderSize))
	for i := 0; i < int(count); i++ {
		size, err := transactions.UnsignedSize(stream[r.Offset():])
		if err != nil {
			return nil, errors.Wrapf(err, "block transaction %d", i)
		}
		tx := r.NextBytes("block transaction", size)
		if err := r.Err(); err != nil {
			return nil, errors.Wrapf(err, "block transaction %d", i)
		}
		block.Transactions = append(block.Transactions, tx)
	}
	blockEnd := r.Offset()
	block.Unsigned = make([]byte, 0, blockEnd-entity.SignatureFieldSize)
	block.Unsigned = append(block.Unsigned, stream[:entity.EntityHeaderSize]...)
	block.Unsigned = append(block.Unsigned, stream[entity.EntityHeaderSize+entity.SignatureFieldSize:blockEnd]...)

	n := &Nemesis{Block: block}
	for i := 0; r.Remaining() > 0; i++ {
		size, err := transactions.UnsignedSize(stream[r.Offset():])
		if err != nil {
			return nil, errors.Wrapf(err, "signed transaction %d", i)
		}
		tx := r.NextBytes("signed transaction", size+entity.SignatureFieldSize)
		if err := r.Err(); err != nil {
			return nil, errors.Wrapf(err, "signed transaction %d", i)
		}
		n.SignedTransactions = append(n.SignedTransactions, tx)
	}
	return n, nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
