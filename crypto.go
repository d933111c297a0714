package cryptopals

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
)

// NewCrypto creates a Crypto backed by crypto/rand.
func NewCrypto() *Crypto {
	return &Crypto{
		rng: rand.Reader,
	}
}

// NewCryptoWithReader creates a Crypto backed by r, typically a seeded
// math/rand source in tests.
func NewCryptoWithReader(r io.Reader) *Crypto {
	return &Crypto{
		rng: r,
	}
}

// RandomBytes returns n random bytes.
func (c *Crypto) RandomBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative length %d", ErrInvalidArgument, n)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(c.rng, buf); err != nil {
		return nil, fmt.Errorf("failed to read %d random bytes: %w", n, err)
	}
	return buf, nil
}

// RandomKey returns a random AES-128 key.
func (c *Crypto) RandomKey() ([]byte, error) {
	return c.RandomBytes(AESKeySize)
}

// Random32 returns a random uint32.
func (c *Crypto) Random32() (uint32, error) {
	var b [4]byte
	if _, err := io.ReadFull(c.rng, b[:]); err != nil {
		return 0, fmt.Errorf("failed to generate random uint32: %w", err)
	}
	return binary.BigEndian.Uint32(b[:]), nil
}

// IntRange returns a random integer in [min, max].
func (c *Crypto) IntRange(min, max int) (int, error) {
	if max < min {
		return 0, fmt.Errorf("%w: empty range [%d, %d]", ErrInvalidArgument, min, max)
	}
	r, err := c.Random32()
	if err != nil {
		return 0, err
	}
	return min + int(r%uint32(max-min+1)), nil
}

// CoinFlip returns true or false with equal probability.
func (c *Crypto) CoinFlip() (bool, error) {
	r, err := c.Random32()
	if err != nil {
		return false, err
	}
	return r&1 == 1, nil
}
