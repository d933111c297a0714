package cryptopals

import (
	"bytes"
	"fmt"
)

// PKCS7Pad appends between 1 and blockSize bytes, each holding the number
// of bytes added, so the result is a whole number of blocks.
func PKCS7Pad(b []byte, blockSize int) ([]byte, error) {
	if blockSize < 1 || blockSize > MaxPKCS7BlockSize {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBlockSize, blockSize)
	}
	n := blockSize - len(b)%blockSize
	out := make([]byte, len(b), len(b)+n)
	copy(out, b)
	return append(out, bytes.Repeat([]byte{byte(n)}, n)...), nil
}

// PKCS7Unpad validates and strips PKCS#7 padding. Every padding byte must
// equal the padding length, which must be between 1 and blockSize.
func PKCS7Unpad(b []byte, blockSize int) ([]byte, error) {
	if blockSize < 1 || blockSize > MaxPKCS7BlockSize {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBlockSize, blockSize)
	}
	if len(b) == 0 || len(b)%blockSize != 0 {
		return nil, fmt.Errorf("%w: %d bytes for block size %d", ErrInvalidPadding, len(b), blockSize)
	}
	n := int(b[len(b)-1])
	if n == 0 || n > blockSize {
		return nil, fmt.Errorf("%w: length byte %#02x", ErrInvalidPadding, n)
	}
	for _, c := range b[len(b)-n:] {
		if int(c) != n {
			return nil, fmt.Errorf("%w: expected %d bytes of %#02x", ErrInvalidPadding, n, n)
		}
	}
	return b[:len(b)-n], nil
}
