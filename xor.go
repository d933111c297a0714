package cryptopals

import (
	"crypto/cipher"
	"fmt"
	"math/bits"
)

// FixedXOR combines a and b byte by byte, stopping at the shorter input.
func FixedXOR(a, b []byte) []byte {
	n := min(len(a), len(b))
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = a[i] ^ b[i]
	}
	return out
}

// FixedXORStrict is FixedXOR for inputs that must have equal length.
func FixedXORStrict(a, b []byte) ([]byte, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("%w: %d and %d bytes", ErrLengthMismatch, len(a), len(b))
	}
	return FixedXOR(a, b), nil
}

// xorInto writes a ^ b into dst for the length of a. dst and b must be at
// least as long as a.
func xorInto(dst, a, b []byte) {
	for i := range a {
		dst[i] = a[i] ^ b[i]
	}
}

// SingleByteXOR XORs every byte of src with key.
func SingleByteXOR(src []byte, key byte) []byte {
	out := make([]byte, len(src))
	for i, c := range src {
		out[i] = c ^ key
	}
	return out
}

// RepeatingKeyXOR XORs src with key repeated as often as needed.
// An empty key leaves the data unchanged.
func RepeatingKeyXOR(src, key []byte) []byte {
	out := make([]byte, len(src))
	if len(key) == 0 {
		copy(out, src)
		return out
	}
	NewRepeatingXORStream(key).XORKeyStream(out, src)
	return out
}

// repeatingXOR is a cipher.Stream whose keystream is the key repeated.
type repeatingXOR struct {
	key []byte
	pos int
}

// NewRepeatingXORStream returns a cipher.Stream for repeating-key XOR.
// Consecutive XORKeyStream calls continue where the previous one stopped.
func NewRepeatingXORStream(key []byte) cipher.Stream {
	k := make([]byte, len(key))
	copy(k, key)
	return &repeatingXOR{key: k}
}

func (x *repeatingXOR) XORKeyStream(dst, src []byte) {
	if len(dst) < len(src) {
		panic("cryptopals: output smaller than input")
	}
	if len(x.key) == 0 {
		copy(dst, src)
		return
	}
	for i := range src {
		dst[i] = src[i] ^ x.key[x.pos]
		x.pos++
		if x.pos == len(x.key) {
			x.pos = 0
		}
	}
}

// HammingDistance counts the differing bits of two equal-length inputs.
func HammingDistance(a, b []byte) (int, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d and %d bytes", ErrLengthMismatch, len(a), len(b))
	}
	n := 0
	for i := range a {
		n += bits.OnesCount8(a[i] ^ b[i])
	}
	return n, nil
}
