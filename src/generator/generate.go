package main

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	probar "github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/overline-mining/nemgen/src/config"
	"github.com/overline-mining/nemgen/src/genesis"
)

func printHeader(s genesis.Summary) {
	zap.S().Info("Preparing Nemesis Block")
	zap.S().Infof(" *  SIGNER ADDRESS: %v", s.SignerAddress)
	zap.S().Infof(" * GENERATION HASH: %v", s.GenerationHash)
	zap.S().Infof(" *  TOTAL ACCOUNTS: %d", s.TotalAccounts)
	zap.S().Infof(" *    TOTAL AMOUNT: %s", genesis.FormatAmount(s.TotalAmount))
}

func generate(ctx context.Context, input, output string, workers int, showProgress bool) error {
	cfg, err := config.Load(input)
	if err != nil {
		return err
	}
	builder, err := genesis.NewBuilder(cfg.Network, cfg.Signer, cfg.GenerationHash, cfg.Accounts)
	if err != nil {
		return err
	}
	builder.Workers = workers
	printHeader(builder.Summary())

	if showProgress && len(cfg.Accounts) > 0 {
		bar := probar.Default(int64(len(cfg.Accounts)), "signing transactions ->")
		builder.Progress = func() { bar.Add(1) }
		defer bar.Finish()
	}

	if err := builder.PrepareTransactions(ctx); err != nil {
		return errors.Wrap(err, "preparing transactions")
	}
	if err := builder.PrepareBlock(); err != nil {
		return errors.Wrap(err, "preparing block")
	}
	if err := builder.Finalize(); err != nil {
		return err
	}

	n, err := writeFileAtomic(output, builder)
	if err != nil {
		return errors.Wrapf(err, "writing %s", output)
	}
	zap.S().Infof("Wrote %d bytes to %s", n, output)
	return nil
}

// writeFileAtomic writes through a temporary file in the target directory
// so that a failed run never leaves a partial nemesis file behind.
func writeFileAtomic(path string, builder *genesis.Builder) (int64, error) {
	tmp, err := ioutil.TempFile(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return 0, err
	}
	defer os.Remove(tmp.Name())

	n, err := builder.WriteTo(tmp)
	if err == nil {
		err = tmp.Sync()
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return 0, err
	}
	return n, os.Rename(tmp.Name(), path)
}
