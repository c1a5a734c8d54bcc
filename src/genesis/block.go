package genesis

import (
	"math"

	"github.com/pkg/errors"

	"github.com/overline-mining/nemgen/src/common"
	"github.com/overline-mining/nemgen/src/encoding"
	"github.com/overline-mining/nemgen/src/entity"
)

// AssembleBlock builds the unsigned nemesis block: entity prefix, generation
// hash, height, transaction count and the unsigned transaction payloads in
// the order given. An empty transaction list is allowed.
func AssembleBlock(signerPublicKey []byte, network uint16, generationHash []byte, unsignedTxs [][]byte) ([]byte, error) {
	if len(generationHash) != entity.HashSize {
		return nil, common.NewFormatError("generation hash", entity.HashSize, len(generationHash))
	}
	if uint64(len(unsignedTxs)) > math.MaxUint32 {
		return nil, common.NewRangeError("transaction count", len(unsignedTxs), 4)
	}
	size := TransactionsOffset
	for _, tx := range unsignedTxs {
		size += len(tx)
	}

	w := encoding.NewWriter(size)
	err := entity.EncodePrefix(w, entity.Header{
		Type:            NEMESIS_BLOCK_TYPE,
		Version:         VERSION,
		Network:         network,
		Timestamp:       TIMESTAMP,
		SignerPublicKey: signerPublicKey,
	})
	if err != nil {
		return nil, errors.Wrap(err, "nemesis block")
	}
	w.WriteSized("generation hash", generationHash, entity.HashSize)
	w.WriteUint64(HEIGHT)
	w.WriteUint32(uint32(len(unsignedTxs)))
	for _, tx := range unsignedTxs {
		w.WriteBytes(tx)
	}
	return w.Finalize()
}
