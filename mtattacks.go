package cryptopals

import (
	"bytes"
	"crypto/cipher"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/samber/oops"
)

// CrackTimestampSeed finds the Unix timestamp in [now-window, now] that,
// used as a seed, makes MT19937 produce output first.
func CrackTimestampSeed(output uint32, now time.Time, window time.Duration) (uint32, error) {
	end := now.Unix()
	start := now.Add(-window).Unix()
	for t := end; t >= start; t-- {
		if NewMT19937(uint32(t)).Uint32() == output {
			mtLog.Debugf("Seed %d found after %d tries", t, end-t+1)
			return uint32(t), nil
		}
	}
	return 0, oops.In("mt19937").With("output", output, "window", window).
		Errorf("%w: no timestamp seed", ErrAttackFailed)
}

type mtStream struct {
	mt *MT19937
}

// NewMTStream returns a stream cipher whose keystream is the low byte of
// each output of MT19937 seeded with seed.
func NewMTStream(seed uint16) cipher.Stream {
	return &mtStream{mt: NewMT19937(uint32(seed))}
}

func (s *mtStream) XORKeyStream(dst, src []byte) {
	if len(dst) < len(src) {
		panic("cryptopals/mt19937: output smaller than input")
	}
	for i, c := range src {
		dst[i] = c ^ byte(s.mt.Uint32())
	}
}

// CryptMT encrypts or decrypts data with the MT19937 stream cipher.
func CryptMT(seed uint16, data []byte) []byte {
	out := make([]byte, len(data))
	NewMTStream(seed).XORKeyStream(out, data)
	return out
}

// RecoverMTStreamSeed brute-forces the 16-bit seed of an MT19937 stream
// ciphertext whose plaintext ends with known.
func RecoverMTStreamSeed(ct, known []byte) (uint16, error) {
	if len(known) == 0 || len(known) > len(ct) {
		return 0, fmt.Errorf("%w: %d known bytes for %d byte ciphertext", ErrInvalidArgument, len(known), len(ct))
	}
	for seed := 0; seed <= 0xffff; seed++ {
		if bytes.HasSuffix(CryptMT(uint16(seed), ct), known) {
			mtLog.Debugf("Stream seed %d recovered", seed)
			return uint16(seed), nil
		}
	}
	return 0, fmt.Errorf("%w: no 16-bit seed matches", ErrAttackFailed)
}

// PasswordResetTokenSize is the number of generator bytes in a token.
const PasswordResetTokenSize = 16

// PasswordResetToken returns a hex token drawn from MT19937 seeded with
// the Unix time of now.
func PasswordResetToken(now time.Time) string {
	return BytesToHex(mtTokenBytes(uint32(now.Unix())))
}

// mtTokenBytes returns the low bytes of the first PasswordResetTokenSize
// outputs of a generator seeded with seed.
func mtTokenBytes(seed uint32) []byte {
	mt := NewMT19937(seed)
	out := make([]byte, PasswordResetTokenSize)
	for i := range out {
		out[i] = byte(mt.Uint32())
	}
	return out
}

// IsMTToken reports whether token came from PasswordResetToken at some
// second in [now-window, now].
func IsMTToken(token string, now time.Time, window time.Duration) bool {
	raw, err := hex.DecodeString(token)
	if err != nil || len(raw) != PasswordResetTokenSize {
		return false
	}
	for t := now.Unix(); t >= now.Add(-window).Unix(); t-- {
		if bytes.Equal(mtTokenBytes(uint32(t)), raw) {
			mtLog.Debugf("Token seeded with %d", t)
			return true
		}
	}
	return false
}
