package cryptopals

import (
	"crypto/cipher"
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/chacha20"
)

// ChaCha20KeySize is the key length of NewChaCha20Stream.
const ChaCha20KeySize = chacha20.KeySize

// NewChaCha20Stream returns the ChaCha20 keystream for key and a 64-bit
// nonce. The nonce fills the last eight bytes of the 96-bit IETF nonce in
// little-endian order, so a fixed nonce can be reused across messages the
// same way NewCTR allows.
func NewChaCha20Stream(key []byte, nonce uint64) (cipher.Stream, error) {
	if len(key) != chacha20.KeySize {
		return nil, fmt.Errorf("%w: ChaCha20 key of %d bytes", ErrInvalidArgument, len(key))
	}
	var iv [chacha20.NonceSize]byte
	binary.LittleEndian.PutUint64(iv[4:], nonce)

	stream, err := chacha20.NewUnauthenticatedCipher(key, iv[:])
	if err != nil {
		return nil, fmt.Errorf("failed to create ChaCha20 stream: %w", err)
	}
	return stream, nil
}

// CryptChaCha20 encrypts or decrypts data with ChaCha20 under key and nonce.
func CryptChaCha20(key []byte, nonce uint64, data []byte) ([]byte, error) {
	stream, err := NewChaCha20Stream(key, nonce)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(data))
	stream.XORKeyStream(out, data)
	modeLog.Debugf("ChaCha20 nonce %d over %d bytes", nonce, len(data))
	return out, nil
}
