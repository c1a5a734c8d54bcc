package main

import (
	"bytes"
	"encoding/hex"
	"io/ioutil"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/overline-mining/nemgen/src/common"
	"github.com/overline-mining/nemgen/src/config"
	"github.com/overline-mining/nemgen/src/keys"
	"github.com/overline-mining/nemgen/src/nemhash"
	"github.com/overline-mining/nemgen/src/validation"
)

func verify(input, configPath string) error {
	data, err := ioutil.ReadFile(input)
	if err != nil {
		return err
	}
	n, err := validation.ParseNemesis(data)
	if err != nil {
		return errors.Wrapf(err, "parsing %s", input)
	}
	network, ok := common.NetworkByIdentifier(n.Block.Network)
	if !ok {
		network = common.TESTNET
	}
	zap.S().Infof("Verifying Nemesis Block %v", common.BriefHash(nemhash.EntityHash(n.Block.Unsigned)))
	zap.S().Infof(" *  SIGNER ADDRESS: %v", keys.AddressFromPublicKey(network, n.Block.SignerPublicKey))
	zap.S().Infof(" * GENERATION HASH: %v", hex.EncodeToString(n.Block.GenerationHash))
	zap.S().Infof(" *    TRANSACTIONS: %d", len(n.Block.Transactions))

	errs := validation.ValidateNemesis(n)
	if configPath != "" {
		cfg, err := config.Load(configPath)
		if err != nil {
			return multierr.Append(errs, err)
		}
		errs = multierr.Append(errs, validation.ValidateSigner(n, cfg.Network, cfg.Signer.PublicKey()))
		if !bytes.Equal(cfg.GenerationHash, n.Block.GenerationHash) {
			errs = multierr.Append(errs, errors.New("generation hash differs from the configuration"))
		}
		errs = multierr.Append(errs, validation.ValidateAccounts(n, cfg.Accounts))
	}
	if errs != nil {
		return errs
	}
	zap.S().Infof("%s is a valid nemesis block", input)
	return nil
}
