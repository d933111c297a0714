package cryptopals

import (
	"crypto/cipher"
	"encoding/binary"
)

type ctr struct {
	b       cipher.Block
	nonce   uint64
	counter uint64
	in      []byte
	out     []byte
	used    int
}

// NewCTR returns a Stream which encrypts with b in counter mode. The
// counter block is the nonce as a little-endian 64-bit integer followed by
// the block count as a little-endian 64-bit integer, starting at zero.
// b must have a 16-byte block size.
func NewCTR(b cipher.Block, nonce uint64) cipher.Stream {
	if b.BlockSize() != AESBlockSize {
		panic("cryptopals/ctr: block size must be 16 bytes")
	}
	return &ctr{
		b:     b,
		nonce: nonce,
		in:    make([]byte, AESBlockSize),
		out:   make([]byte, AESBlockSize),
		used:  AESBlockSize,
	}
}

func (x *ctr) refill() {
	binary.LittleEndian.PutUint64(x.in[:8], x.nonce)
	binary.LittleEndian.PutUint64(x.in[8:], x.counter)
	x.b.Encrypt(x.out, x.in)
	x.counter++
	x.used = 0
}

func (x *ctr) XORKeyStream(dst, src []byte) {
	if len(dst) < len(src) {
		panic("cryptopals/ctr: output smaller than input")
	}
	for len(src) > 0 {
		if x.used == len(x.out) {
			x.refill()
		}
		n := min(len(src), len(x.out)-x.used)
		xorInto(dst[:n], src[:n], x.out[x.used:])
		x.used += n
		src = src[n:]
		dst = dst[n:]
	}
}

// CryptCTR encrypts or decrypts data with AES-CTR under key and nonce.
func CryptCTR(key []byte, nonce uint64, data []byte) ([]byte, error) {
	block, err := newAES(key)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(data))
	NewCTR(block, nonce).XORKeyStream(out, data)
	modeLog.Debugf("CTR nonce %d over %d bytes", nonce, len(data))
	return out, nil
}
