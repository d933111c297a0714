// Crypto struct definition
//
// Crypto is the source of secrets for the challenge oracles: random AES
// keys, IVs, prefixes and coin flips. Oracles take a *Crypto instead of
// reading crypto/rand directly so tests can substitute a seeded reader
// and replay an attack exactly.
package cryptopals

import (
	"io"
)

// Crypto hands out random values drawn from a single reader.
//
// Usage Example:
//
//	c := NewCrypto()
//	key, err := c.RandomKey()
type Crypto struct {
	rng io.Reader // crypto/rand.Reader unless a test injects one
}
