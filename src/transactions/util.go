package transactions

import (
	"github.com/overline-mining/nemgen/src/nemhash"
)

// TxHash is the hex Keccak-256 of the unsigned payload, so it does not
// change when the signature is attached.
func TxHash(unsigned []byte) string {
	return nemhash.EntityHash(unsigned)
}
