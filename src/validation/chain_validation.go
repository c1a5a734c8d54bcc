package validation

import (
	"bytes"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/overline-mining/nemgen/src/common"
	"github.com/overline-mining/nemgen/src/genesis"
	"github.com/overline-mining/nemgen/src/keys"
	"github.com/overline-mining/nemgen/src/transactions"
)

// ValidateAccounts checks the nemesis transactions pay exactly the given
// accounts, in order.
func ValidateAccounts(n *Nemesis, accounts []genesis.Account) error {
	txs := n.Block.Transactions
	if len(txs) != len(accounts) {
		return errors.Errorf("nemesis pays %d accounts, configuration lists %d", len(txs), len(accounts))
	}
	var errs error
	for i, unsigned := range txs {
		tx, err := transactions.DecodeTransfer(unsigned)
		if err != nil {
			errs = multierr.Append(errs, errors.Wrapf(err, "transaction %d", i))
			continue
		}
		if !bytes.Equal(tx.Recipient, accounts[i].Address) {
			errs = multierr.Append(errs, errors.Errorf("transaction %d pays %v, expected %v",
				i, common.BriefBytes(tx.Recipient), common.BriefBytes(accounts[i].Address)))
		}
		if tx.Amount != accounts[i].Amount {
			errs = multierr.Append(errs, errors.Errorf("transaction %d amount %d, expected %d", i, tx.Amount, accounts[i].Amount))
		}
	}
	return errs
}

// ValidateSigner checks the nemesis was signed by the given key.
func ValidateSigner(n *Nemesis, network common.Network, signerPublicKey []byte) error {
	if !bytes.Equal(n.Block.SignerPublicKey, signerPublicKey) {
		return errors.Errorf("nemesis signed by %v, expected %v",
			keys.AddressFromPublicKey(network, n.Block.SignerPublicKey),
			keys.AddressFromPublicKey(network, signerPublicKey))
	}
	if n.Block.Network != network.Identifier {
		return errors.Errorf("nemesis network 0x%x, expected %v", n.Block.Network, network)
	}
	return nil
}
