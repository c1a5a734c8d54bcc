package keys

import (
	"bytes"
	"encoding/base32"
	"strings"

	"github.com/pkg/errors"

	"github.com/overline-mining/nemgen/src/common"
	"github.com/overline-mining/nemgen/src/entity"
	"github.com/overline-mining/nemgen/src/nemhash"
)

const (
	// AddressEncodedSize is the length of the base32 form of an address.
	AddressEncodedSize = 40
	checksumSize       = 4
)

var ErrInvalidChecksum = errors.New("address checksum mismatch")

type Address [entity.AddressSize]byte

// AddressFromPublicKey computes network byte | RIPEMD-160(Keccak-256(key))
// followed by a four byte Keccak-256 checksum.
func AddressFromPublicKey(network common.Network, publicKey []byte) Address {
	var a Address
	a[0] = network.AddressVersion()
	copy(a[1:], nemhash.Ripemd160(nemhash.Keccak256(publicKey)))
	copy(a[21:], checksum(a[:21]))
	return a
}

func checksum(b []byte) []byte {
	return nemhash.Keccak256(b)[:checksumSize]
}

func (a Address) String() string {
	return base32.StdEncoding.EncodeToString(a[:])
}

func (a Address) Bytes() []byte {
	return append([]byte(nil), a[:]...)
}

// ParseAddress decodes the base32 form of an address, tolerating dashes and
// lower case, and checks its checksum and network byte.
func ParseAddress(s string, network common.Network) (Address, error) {
	var a Address
	cleaned := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", ""))
	if len(cleaned) != AddressEncodedSize {
		return a, errors.Wrapf(common.NewFormatError("encoded address", AddressEncodedSize, len(cleaned)), "address %q", s)
	}
	raw, err := base32.StdEncoding.DecodeString(cleaned)
	if err != nil {
		return a, errors.Wrapf(err, "address %q is not base32", s)
	}
	if len(raw) != entity.AddressSize {
		return a, errors.Wrapf(common.NewFormatError("address", entity.AddressSize, len(raw)), "address %q", s)
	}
	copy(a[:], raw)
	if !bytes.Equal(a[21:], checksum(a[:21])) {
		return a, errors.Wrapf(ErrInvalidChecksum, "address %q", s)
	}
	if a[0] != network.AddressVersion() {
		return a, errors.Errorf("address %q does not belong to %v", s, network)
	}
	return a, nil
}
