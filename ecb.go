package cryptopals

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"github.com/samber/lo"
)

type ecb struct {
	b         cipher.Block
	blockSize int
}

type ecbEncrypter ecb

// NewECBEncrypter returns a BlockMode which encrypts each block
// independently with b.
func NewECBEncrypter(b cipher.Block) cipher.BlockMode {
	return &ecbEncrypter{b: b, blockSize: b.BlockSize()}
}

func (x *ecbEncrypter) BlockSize() int { return x.blockSize }

func (x *ecbEncrypter) CryptBlocks(dst, src []byte) {
	if len(src)%x.blockSize != 0 {
		panic("cryptopals/ecb: input not full blocks")
	}
	if len(dst) < len(src) {
		panic("cryptopals/ecb: output smaller than input")
	}
	for len(src) > 0 {
		x.b.Encrypt(dst[:x.blockSize], src[:x.blockSize])
		src = src[x.blockSize:]
		dst = dst[x.blockSize:]
	}
}

type ecbDecrypter ecb

// NewECBDecrypter returns a BlockMode which decrypts each block
// independently with b.
func NewECBDecrypter(b cipher.Block) cipher.BlockMode {
	return &ecbDecrypter{b: b, blockSize: b.BlockSize()}
}

func (x *ecbDecrypter) BlockSize() int { return x.blockSize }

func (x *ecbDecrypter) CryptBlocks(dst, src []byte) {
	if len(src)%x.blockSize != 0 {
		panic("cryptopals/ecb: input not full blocks")
	}
	if len(dst) < len(src) {
		panic("cryptopals/ecb: output smaller than input")
	}
	for len(src) > 0 {
		x.b.Decrypt(dst[:x.blockSize], src[:x.blockSize])
		src = src[x.blockSize:]
		dst = dst[x.blockSize:]
	}
}

func newAES(key []byte) (cipher.Block, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	return block, nil
}

// EncryptECB pads data with PKCS#7 and encrypts it with AES in ECB mode.
func EncryptECB(key, data []byte) ([]byte, error) {
	block, err := newAES(key)
	if err != nil {
		return nil, err
	}
	out, err := PKCS7Pad(data, block.BlockSize())
	if err != nil {
		return nil, err
	}
	NewECBEncrypter(block).CryptBlocks(out, out)
	return out, nil
}

// DecryptECB decrypts AES-ECB data and strips its PKCS#7 padding.
func DecryptECB(key, data []byte) ([]byte, error) {
	block, err := newAES(key)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 || len(data)%block.BlockSize() != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrNotBlockAligned, len(data))
	}
	out := make([]byte, len(data))
	NewECBDecrypter(block).CryptBlocks(out, data)
	return PKCS7Unpad(out, block.BlockSize())
}

// DetectECB returns the number of blocks of ct that repeat an earlier
// block. ECB encrypts equal plaintext blocks to equal ciphertext blocks, so
// any repeat is a strong sign of ECB.
func DetectECB(ct []byte, blockSize int) int {
	if blockSize <= 0 || len(ct) == 0 {
		return 0
	}
	blocks := lo.Map(lo.Chunk(ct, blockSize), func(b []byte, _ int) string {
		return string(b)
	})
	return len(blocks) - len(lo.Uniq(blocks))
}

// IsECB reports whether ct holds at least one repeated block.
func IsECB(ct []byte, blockSize int) bool {
	return DetectECB(ct, blockSize) > 0
}
