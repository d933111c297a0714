package cryptopals

import (
	"crypto/cipher"
	"fmt"
)

type cbc struct {
	b         cipher.Block
	blockSize int
	iv        []byte
	tmp       []byte
}

func newCBC(b cipher.Block, iv []byte) *cbc {
	return &cbc{
		b:         b,
		blockSize: b.BlockSize(),
		iv:        dup(iv),
		tmp:       make([]byte, b.BlockSize()),
	}
}

func dup(p []byte) []byte {
	q := make([]byte, len(p))
	copy(q, p)
	return q
}

type cbcEncrypter cbc

// NewCBCEncrypter returns a BlockMode which encrypts in cipher block
// chaining mode: each plaintext block is XORed with the previous
// ciphertext block, or iv for the first one, before encryption.
// The length of iv must be the block size.
func NewCBCEncrypter(b cipher.Block, iv []byte) cipher.BlockMode {
	if len(iv) != b.BlockSize() {
		panic("cryptopals/cbc: IV length must equal block size")
	}
	return (*cbcEncrypter)(newCBC(b, iv))
}

func (x *cbcEncrypter) BlockSize() int { return x.blockSize }

func (x *cbcEncrypter) CryptBlocks(dst, src []byte) {
	if len(src)%x.blockSize != 0 {
		panic("cryptopals/cbc: input not full blocks")
	}
	if len(dst) < len(src) {
		panic("cryptopals/cbc: output smaller than input")
	}

	iv := x.iv
	for len(src) > 0 {
		xorInto(dst[:x.blockSize], src[:x.blockSize], iv)
		x.b.Encrypt(dst[:x.blockSize], dst[:x.blockSize])

		iv = dst[:x.blockSize]
		src = src[x.blockSize:]
		dst = dst[x.blockSize:]
	}
	copy(x.iv, iv)
}

type cbcDecrypter cbc

// NewCBCDecrypter returns a BlockMode which decrypts in cipher block
// chaining mode. dst and src may overlap exactly.
func NewCBCDecrypter(b cipher.Block, iv []byte) cipher.BlockMode {
	if len(iv) != b.BlockSize() {
		panic("cryptopals/cbc: IV length must equal block size")
	}
	return (*cbcDecrypter)(newCBC(b, iv))
}

func (x *cbcDecrypter) BlockSize() int { return x.blockSize }

func (x *cbcDecrypter) CryptBlocks(dst, src []byte) {
	if len(src)%x.blockSize != 0 {
		panic("cryptopals/cbc: input not full blocks")
	}
	if len(dst) < len(src) {
		panic("cryptopals/cbc: output smaller than input")
	}

	for len(src) > 0 {
		// Keep the ciphertext block: it is the next IV and dst may alias src.
		copy(x.tmp, src[:x.blockSize])
		x.b.Decrypt(dst[:x.blockSize], src[:x.blockSize])
		xorInto(dst[:x.blockSize], dst[:x.blockSize], x.iv)
		x.iv, x.tmp = x.tmp, x.iv

		src = src[x.blockSize:]
		dst = dst[x.blockSize:]
	}
}

// EncryptCBC pads data with PKCS#7 and encrypts it with AES in CBC mode.
func EncryptCBC(key, iv, data []byte) ([]byte, error) {
	block, err := newAES(key)
	if err != nil {
		return nil, err
	}
	if len(iv) != block.BlockSize() {
		return nil, fmt.Errorf("%w: IV of %d bytes", ErrInvalidArgument, len(iv))
	}
	out, err := PKCS7Pad(data, block.BlockSize())
	if err != nil {
		return nil, err
	}
	NewCBCEncrypter(block, iv).CryptBlocks(out, out)
	modeLog.Debugf("CBC encrypted %d bytes into %d", len(data), len(out))
	return out, nil
}

// DecryptCBC decrypts AES-CBC data and strips its PKCS#7 padding.
// A padding failure is reported as ErrInvalidPadding.
func DecryptCBC(key, iv, data []byte) ([]byte, error) {
	out, err := DecryptCBCRaw(key, iv, data)
	if err != nil {
		return nil, err
	}
	return PKCS7Unpad(out, AESBlockSize)
}

// DecryptCBCRaw decrypts AES-CBC data and leaves the padding in place.
func DecryptCBCRaw(key, iv, data []byte) ([]byte, error) {
	block, err := newAES(key)
	if err != nil {
		return nil, err
	}
	if len(iv) != block.BlockSize() {
		return nil, fmt.Errorf("%w: IV of %d bytes", ErrInvalidArgument, len(iv))
	}
	if len(data) == 0 || len(data)%block.BlockSize() != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrNotBlockAligned, len(data))
	}
	out := make([]byte, len(data))
	NewCBCDecrypter(block, iv).CryptBlocks(out, data)
	return out, nil
}
