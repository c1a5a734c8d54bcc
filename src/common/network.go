package common

import (
	"strings"

	"github.com/pkg/errors"
)

type Network struct {
	Name       string
	Identifier uint16
}

var (
	TESTNET = Network{Name: "testnet", Identifier: 0x98}
	MAINNET = Network{Name: "mainnet", Identifier: 0x68}
)

// AddressVersion is the leading byte of every address on the network.
func (n Network) AddressVersion() byte {
	return byte(n.Identifier)
}

func (n Network) String() string {
	return n.Name
}

func NetworkByName(name string) (Network, error) {
	switch strings.ToLower(name) {
	case "", TESTNET.Name:
		return TESTNET, nil
	case MAINNET.Name:
		return MAINNET, nil
	}
	return Network{}, errors.Errorf("unknown network %q (supported: %s, %s)", name, TESTNET.Name, MAINNET.Name)
}

func NetworkByIdentifier(identifier uint16) (Network, bool) {
	for _, n := range []Network{TESTNET, MAINNET} {
		if n.Identifier == identifier {
			return n, true
		}
	}
	return Network{}, false
}
