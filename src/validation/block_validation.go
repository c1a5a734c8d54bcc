package validation

import (
	"bytes"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/overline-mining/nemgen/src/common"
	"github.com/overline-mining/nemgen/src/genesis"
	"github.com/overline-mining/nemgen/src/keys"
	"github.com/overline-mining/nemgen/src/signing"
	"github.com/overline-mining/nemgen/src/transactions"
)

// ValidateNemesis checks every structural and signature rule of a parsed
// nemesis stream and returns all violations combined.
func ValidateNemesis(n *Nemesis) error {
	block := n.Block
	var errs error
	fail := func(format string, args ...interface{}) {
		err := errors.Errorf(format, args...)
		zap.S().Debugf("nemesis validation: %v", err)
		errs = multierr.Append(errs, err)
	}

	if block.Type != genesis.NEMESIS_BLOCK_TYPE {
		fail("block type 0x%x is not the nemesis block type", block.Type)
	}
	if block.Version != genesis.VERSION {
		fail("block version %d, expected %d", block.Version, genesis.VERSION)
	}
	if _, ok := common.NetworkByIdentifier(block.Network); !ok {
		fail("unknown network 0x%x", block.Network)
	}
	if block.Timestamp != genesis.TIMESTAMP {
		fail("block timestamp %d, expected %d", block.Timestamp, genesis.TIMESTAMP)
	}
	if block.Height != genesis.HEIGHT {
		fail("block height %d, expected %d", block.Height, genesis.HEIGHT)
	}
	if !keys.Verify(block.SignerPublicKey, block.Unsigned, block.Signature) {
		fail("block signature does not verify")
	}
	if len(n.SignedTransactions) != len(block.Transactions) {
		fail("block embeds %d transactions but %d signed transactions follow it",
			len(block.Transactions), len(n.SignedTransactions))
	}

	for i, signed := range n.SignedTransactions {
		unsigned, signature, err := signing.DetachSignature(signed)
		if err != nil {
			fail("transaction %d: %v", i, err)
			continue
		}
		if i < len(block.Transactions) && !bytes.Equal(unsigned, block.Transactions[i]) {
			fail("transaction %d does not match the payload embedded in the block", i)
		}
		tx, err := transactions.DecodeTransfer(unsigned)
		if err != nil {
			fail("transaction %d: %v", i, err)
			continue
		}
		if !bytes.Equal(tx.SignerPublicKey, block.SignerPublicKey) {
			fail("transaction %d is not signed by the block signer", i)
		}
		if tx.Network != block.Network {
			fail("transaction %d network 0x%x differs from block network 0x%x", i, tx.Network, block.Network)
		}
		if tx.Timestamp != transactions.GENESIS_TIMESTAMP {
			fail("transaction %d timestamp %d, expected %d", i, tx.Timestamp, transactions.GENESIS_TIMESTAMP)
		}
		if !keys.Verify(tx.SignerPublicKey, unsigned, signature) {
			fail("transaction %d signature does not verify", i)
		}
	}
	return errs
}
