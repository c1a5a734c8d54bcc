package genesis

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"math/big"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/overline-mining/nemgen/src/common"
	"github.com/overline-mining/nemgen/src/entity"
	"github.com/overline-mining/nemgen/src/keys"
	"github.com/overline-mining/nemgen/src/nemhash"
	"github.com/overline-mining/nemgen/src/signing"
	"github.com/overline-mining/nemgen/src/transactions"
)

type State int

const (
	Configured State = iota
	TransactionsPrepared
	BlockPrepared
	Finalized
)

func (s State) String() string {
	switch s {
	case Configured:
		return "Configured"
	case TransactionsPrepared:
		return "TransactionsPrepared"
	case BlockPrepared:
		return "BlockPrepared"
	case Finalized:
		return "Finalized"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Account is one initial balance. Address is the raw 25 byte form.
type Account struct {
	Address []byte
	Amount  uint64
}

// Builder turns a balance list into the nemesis stream. Its operations must
// run in order (PrepareTransactions, PrepareBlock, Finalize) and a builder
// is used for a single run.
type Builder struct {
	// Workers > 1 signs transactions concurrently. The output is identical
	// to a sequential run.
	Workers int
	// Progress, if set, is called once per prepared transaction, possibly
	// from several goroutines.
	Progress func()

	network        common.Network
	signer         signing.Signer
	generationHash []byte
	accounts       []Account

	state       State
	unsignedTxs [][]byte
	signedTxs   [][]byte
	signedBlock []byte
	output      []byte
}

func NewBuilder(network common.Network, signer signing.Signer, generationHash []byte, accounts []Account) (*Builder, error) {
	if len(generationHash) != entity.HashSize {
		return nil, common.NewFormatError("generation hash", entity.HashSize, len(generationHash))
	}
	if pk := signer.PublicKey(); len(pk) != entity.PublicKeySize {
		return nil, common.NewFormatError("signer public key", entity.PublicKeySize, len(pk))
	}
	owned := make([]Account, len(accounts))
	for i, acct := range accounts {
		owned[i] = Account{Address: append([]byte(nil), acct.Address...), Amount: acct.Amount}
	}
	return &Builder{
		network:        network,
		signer:         signer,
		generationHash: append([]byte(nil), generationHash...),
		accounts:       owned,
		state:          Configured,
	}, nil
}

func (b *Builder) State() State {
	return b.state
}

func (b *Builder) require(operation string, want State) error {
	if b.state != want {
		return &common.SequencingError{Operation: operation, State: b.state.String(), Required: want.String()}
	}
	return nil
}

// PrepareTransactions encodes and signs one transfer per account. Results
// are stored by account index, so account order is kept whatever the
// number of workers.
func (b *Builder) PrepareTransactions(ctx context.Context) error {
	if err := b.require("prepare transactions", Configured); err != nil {
		return err
	}
	n := len(b.accounts)
	unsigned := make([][]byte, n)
	signed := make([][]byte, n)
	signerPublicKey := b.signer.PublicKey()

	prepare := func(i int) error {
		acct := b.accounts[i]
		u, err := transactions.EncodeTransfer(signerPublicKey, b.network.Identifier, acct.Address, acct.Amount)
		if err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		s, err := signing.SignAndAttach(u, b.signer)
		if err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		unsigned[i], signed[i] = u, s
		zap.S().Debugf("Prepared transaction %d: %v -> %d", i, common.BriefHash(transactions.TxHash(u)), acct.Amount)
		if b.Progress != nil {
			b.Progress()
		}
		return nil
	}

	if b.Workers <= 1 {
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := prepare(i); err != nil {
				return err
			}
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		indices := make(chan int)
		g.Go(func() error {
			defer close(indices)
			for i := 0; i < n; i++ {
				select {
				case indices <- i:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			return nil
		})
		for w := 0; w < b.Workers; w++ {
			g.Go(func() error {
				for i := range indices {
					if err := prepare(i); err != nil {
						return err
					}
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	}

	b.unsignedTxs, b.signedTxs = unsigned, signed
	b.state = TransactionsPrepared
	return nil
}

// PrepareBlock assembles the unsigned block around every unsigned
// transaction and signs it.
func (b *Builder) PrepareBlock() error {
	if err := b.require("prepare block", TransactionsPrepared); err != nil {
		return err
	}
	unsignedBlock, err := AssembleBlock(b.signer.PublicKey(), b.network.Identifier, b.generationHash, b.unsignedTxs)
	if err != nil {
		return err
	}
	signedBlock, err := signing.SignAndAttach(unsignedBlock, b.signer)
	if err != nil {
		return errors.Wrap(err, "nemesis block")
	}
	zap.S().Debugf("Prepared nemesis block %v with %d transactions (%d bytes)",
		common.BriefHash(nemhash.EntityHash(unsignedBlock)), len(b.unsignedTxs), len(signedBlock))
	b.signedBlock = signedBlock
	b.state = BlockPrepared
	return nil
}

// Finalize concatenates the signed block with every signed transaction.
func (b *Builder) Finalize() error {
	if err := b.require("finalize", BlockPrepared); err != nil {
		return err
	}
	size := len(b.signedBlock)
	for _, tx := range b.signedTxs {
		size += len(tx)
	}
	var buf bytes.Buffer
	buf.Grow(size)
	buf.Write(b.signedBlock)
	for _, tx := range b.signedTxs {
		buf.Write(tx)
	}
	b.output = buf.Bytes()
	b.state = Finalized
	return nil
}

// Build runs every transition and returns the finished stream.
func (b *Builder) Build(ctx context.Context) ([]byte, error) {
	if err := b.PrepareTransactions(ctx); err != nil {
		return nil, err
	}
	if err := b.PrepareBlock(); err != nil {
		return nil, err
	}
	if err := b.Finalize(); err != nil {
		return nil, err
	}
	return b.Bytes()
}

// Bytes returns a copy of the finished stream.
func (b *Builder) Bytes() ([]byte, error) {
	if err := b.require("read output", Finalized); err != nil {
		return nil, err
	}
	return append([]byte(nil), b.output...), nil
}

// WriteTo writes the finished stream to w.
func (b *Builder) WriteTo(w io.Writer) (int64, error) {
	if err := b.require("write output", Finalized); err != nil {
		return 0, err
	}
	n, err := w.Write(b.output)
	return int64(n), err
}

type Summary struct {
	SignerAddress  keys.Address
	GenerationHash string
	TotalAccounts  int
	TotalAmount    *big.Int
}

func (b *Builder) Summary() Summary {
	total := new(big.Int)
	for _, acct := range b.accounts {
		total.Add(total, new(big.Int).SetUint64(acct.Amount))
	}
	return Summary{
		SignerAddress:  keys.AddressFromPublicKey(b.network, b.signer.PublicKey()),
		GenerationHash: hex.EncodeToString(b.generationHash),
		TotalAccounts:  len(b.accounts),
		TotalAmount:    total,
	}
}

// FormatAmount renders micro-units as whole units with six decimals.
func FormatAmount(micros *big.Int) string {
	whole, frac := new(big.Int).QuoRem(micros, big.NewInt(MICROS_PER_UNIT), new(big.Int))
	return fmt.Sprintf("%s.%06d", whole.String(), frac.Int64())
}
