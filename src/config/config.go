// Package config loads the nemesis configuration: the signer key, the
// generation hash and the ordered balance list.
package config

import (
	"bytes"
	"encoding/hex"
	"io/ioutil"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"

	"github.com/overline-mining/nemgen/src/common"
	"github.com/overline-mining/nemgen/src/entity"
	"github.com/overline-mining/nemgen/src/genesis"
	"github.com/overline-mining/nemgen/src/keys"
	"github.com/overline-mining/nemgen/src/nemhash"
)

// File mirrors the YAML layout.
type File struct {
	Network          string         `yaml:"network"`
	SignerPrivateKey string         `yaml:"signer_private_key"`
	GenerationHash   string         `yaml:"generation_hash"`
	Accounts         []AccountEntry `yaml:"accounts"`
	BalancesCSV      string         `yaml:"balances_csv"`
	BalancesDigest   string         `yaml:"balances_digest"`
}

type AccountEntry struct {
	Address string `yaml:"address"`
	Amount  Amount `yaml:"amount"`
}

// Amount is a micro-unit quantity that rejects negative, fractional and
// oversized values while decoding.
type Amount uint64

func (a *Amount) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw interface{}
	if err := unmarshal(&raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case int:
		if v < 0 {
			return common.NewRangeError("amount", v, 8)
		}
		*a = Amount(v)
	case int64:
		if v < 0 {
			return common.NewRangeError("amount", v, 8)
		}
		*a = Amount(v)
	case uint64:
		*a = Amount(v)
	case float64:
		// fractions, exponents and anything above 2^64-1 decode as floats
		return common.NewRangeError("amount", strconv.FormatFloat(v, 'f', -1, 64), 8)
	case string:
		u, err := ParseAmount(v)
		if err != nil {
			return err
		}
		*a = Amount(u)
	default:
		return errors.Errorf("amount %v is not a number", raw)
	}
	return nil
}

// ParseAmount parses a decimal micro-unit amount.
func ParseAmount(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	u, err := strconv.ParseUint(s, 10, 64)
	if err == nil {
		return u, nil
	}
	if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
		return 0, common.NewRangeError("amount", s, 8)
	}
	if strings.HasPrefix(s, "-") && len(s) > 1 && strings.Trim(s[1:], "0123456789") == "" {
		return 0, common.NewRangeError("amount", s, 8)
	}
	return 0, errors.Errorf("amount %q is not a decimal integer", s)
}

// NemesisConfig is the validated configuration handed to the builder.
type NemesisConfig struct {
	Network        common.Network
	Signer         *keys.KeyPair
	GenerationHash []byte
	Accounts       []genesis.Account
	// Digest is the BLAKE2b-512 of the balance list.
	Digest []byte
}

// Load reads a YAML configuration. A relative balances_csv path is resolved
// against the directory holding the configuration.
func Load(path string) (*NemesisConfig, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(data, filepath.Dir(path))
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", path)
	}
	return cfg, nil
}

func Parse(data []byte, baseDir string) (*NemesisConfig, error) {
	var f File
	if err := yaml.UnmarshalStrict(data, &f); err != nil {
		return nil, err
	}
	network, err := common.NetworkByName(f.Network)
	if err != nil {
		return nil, err
	}
	cfg := &NemesisConfig{Network: network}

	privateKey, err := decodeHex("signer_private_key", f.SignerPrivateKey, keys.PrivateKeySize)
	if err != nil {
		return nil, err
	}
	if cfg.Signer, err = keys.NewKeyPair(privateKey); err != nil {
		return nil, err
	}
	if cfg.GenerationHash, err = decodeHex("generation_hash", f.GenerationHash, entity.HashSize); err != nil {
		return nil, err
	}

	for i, entry := range f.Accounts {
		addr, err := keys.ParseAddress(entry.Address, network)
		if err != nil {
			return nil, errors.Wrapf(err, "accounts[%d]", i)
		}
		cfg.Accounts = append(cfg.Accounts, genesis.Account{Address: addr.Bytes(), Amount: uint64(entry.Amount)})
	}
	if f.BalancesCSV != "" {
		csvPath := f.BalancesCSV
		if !filepath.IsAbs(csvPath) {
			csvPath = filepath.Join(baseDir, csvPath)
		}
		accounts, err := LoadBalancesCSV(csvPath, network)
		if err != nil {
			return nil, err
		}
		cfg.Accounts = append(cfg.Accounts, accounts...)
	}

	cfg.Digest = BalancesDigest(cfg.Accounts)
	if f.BalancesDigest != "" {
		expected, err := decodeHex("balances_digest", f.BalancesDigest, len(cfg.Digest))
		if err != nil {
			return nil, err
		}
		if !bytes.Equal(expected, cfg.Digest) {
			return nil, errors.Errorf("calculated balances digest is incorrect:\n\t%v\n\t%v",
				hex.EncodeToString(cfg.Digest), f.BalancesDigest)
		}
	}
	zap.S().Debugf("Loaded %d accounts, balances digest %v", len(cfg.Accounts), common.BriefBytes(cfg.Digest))
	return cfg, nil
}

func decodeHex(field, s string, size int) ([]byte, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(s), "0x"))
	if err != nil {
		return nil, errors.Wrapf(err, "%s is not hex", field)
	}
	if len(b) != size {
		return nil, common.NewFormatError(field, size, len(b))
	}
	return b, nil
}

// BalancesDigest hashes the balance list as "ADDRESS,amount" lines.
func BalancesDigest(accounts []genesis.Account) []byte {
	var buf bytes.Buffer
	for _, acct := range accounts {
		var a keys.Address
		copy(a[:], acct.Address)
		buf.WriteString(a.String())
		buf.WriteByte(',')
		buf.WriteString(strconv.FormatUint(acct.Amount, 10))
		buf.WriteByte('\n')
	}
	return nemhash.Blake2b512(buf.Bytes())
}
