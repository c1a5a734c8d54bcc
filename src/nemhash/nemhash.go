package nemhash

import (
	"encoding/hex"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/ripemd160"
)

func Keccak256(data ...[]byte) []byte {
	return ethcrypto.Keccak256(data...)
}

func Keccak512(data ...[]byte) []byte {
	return ethcrypto.Keccak512(data...)
}

func Ripemd160(data []byte) []byte {
	h := ripemd160.New()
	h.Write(data)
	return h.Sum(nil)
}

// EntityHash identifies an entity by the Keccak-256 of its unsigned payload.
func EntityHash(unsigned []byte) string {
	return hex.EncodeToString(Keccak256(unsigned))
}

func Blake2b512(data []byte) []byte {
	hash := blake2b.Sum512(data)
	return hash[:]
}
