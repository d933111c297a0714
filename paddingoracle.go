package cryptopals

import (
	"errors"
	"fmt"

	"github.com/samber/oops"
)

// PaddingOracleStrings are the ten plaintexts of challenge 17, base64 encoded.
var PaddingOracleStrings = []string{
	"MDAwMDAwTm93IHRoYXQgdGhlIHBhcnR5IGlzIGp1bXBpbmc=",
	"MDAwMDAxV2l0aCB0aGUgYmFzcyBraWNrZWQgaW4gYW5kIHRoZSBWZWdhJ3MgYXJlIHB1bXBpbic=",
	"MDAwMDAyUXVpY2sgdG8gdGhlIHBvaW50LCB0byB0aGUgcG9pbnQsIG5vIGZha2luZw==",
	"MDAwMDAzQ29va2luZyBNQydzIGxpa2UgYSBwb3VuZCBvZiBiYWNvbg==",
	"MDAwMDA0QnVybmluZyAnZW0sIGlmIHlvdSBhaW4ndCBxdWljayBhbmQgbmltYmxl",
	"MDAwMDA1SSBnbyBjcmF6eSB3aGVuIEkgaGVhciBhIGN5bWJhbA==",
	"MDAwMDA2QW5kIGEgaGlnaCBoYXQgd2l0aCBhIHNvdXBlZCB1cCB0ZW1wbw==",
	"MDAwMDA3SSdtIG9uIGEgcm9sbCwgaXQncyB0aW1lIHRvIGdvIHNvbG8=",
	"MDAwMDA4b2xsaW4nIGluIG15IGZpdmUgcG9pbnQgb2g=",
	"MDAwMDA5aXRoIG15IHJhZy10b3AgZG93biBzbyBteSBoYWlyIGNhbiBibG93",
}

// PaddingOracle holds a fixed random AES key. Encrypt picks one of its
// plaintexts at random and CBC-encrypts it under a fresh IV; Valid only
// tells whether a ciphertext decrypts to correct padding.
type PaddingOracle struct {
	crypto     *Crypto
	key        []byte
	plaintexts [][]byte
	metrics    MetricsCollector
}

// NewPaddingOracle creates a PaddingOracle over plaintexts, or over the
// challenge 17 strings when plaintexts is empty. metrics may be nil.
func NewPaddingOracle(c *Crypto, plaintexts [][]byte, metrics MetricsCollector) (*PaddingOracle, error) {
	if len(plaintexts) == 0 {
		for _, s := range PaddingOracleStrings {
			pt, err := Base64Decode(s)
			if err != nil {
				return nil, err
			}
			plaintexts = append(plaintexts, pt)
		}
	}
	key, err := c.RandomKey()
	if err != nil {
		return nil, err
	}
	return &PaddingOracle{crypto: c, key: key, plaintexts: plaintexts, metrics: metrics}, nil
}

// Encrypt returns a randomly chosen plaintext encrypted under a random IV.
func (o *PaddingOracle) Encrypt() (ct, iv []byte, err error) {
	i, err := o.crypto.IntRange(0, len(o.plaintexts)-1)
	if err != nil {
		return nil, nil, err
	}
	if iv, err = o.crypto.RandomBytes(AESBlockSize); err != nil {
		return nil, nil, err
	}
	ct, err = EncryptCBC(o.key, iv, o.plaintexts[i])
	if err != nil {
		return nil, nil, err
	}
	return ct, iv, nil
}

// Valid reports whether ct decrypts under iv to correctly padded plaintext.
func (o *PaddingOracle) Valid(ct, iv []byte) bool {
	err := observe(o.metrics, "padding", func() error {
		_, err := DecryptCBC(o.key, iv, ct)
		return err
	})
	if err != nil && !errors.Is(err, ErrInvalidPadding) {
		modeLog.Debugf("Padding oracle rejected input: %v", err)
	}
	return err == nil
}

// BreakCBCPaddingOracle decrypts ct, IV included, using only a padding
// oracle. It returns the plaintext with its padding still attached.
//
// Each block is attacked alone with a forged IV. Working from the last
// byte back, the forged IV is chosen so the known tail of the decrypted
// block reads as valid padding, then the next byte is guessed until the
// oracle accepts it.
func BreakCBCPaddingOracle(ct, iv []byte, valid func(ct, iv []byte) bool) ([]byte, error) {
	const blockSize = AESBlockSize
	if len(iv) != blockSize {
		return nil, fmt.Errorf("%w: IV of %d bytes", ErrInvalidArgument, len(iv))
	}
	if len(ct) == 0 || len(ct)%blockSize != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrNotBlockAligned, len(ct))
	}

	plaintext := make([]byte, 0, len(ct))
	prev := iv
	for off := 0; off < len(ct); off += blockSize {
		block := ct[off : off+blockSize]
		inter, err := paddingOracleBlock(block, valid)
		if err != nil {
			return nil, oops.In("padding-oracle").With("block", off/blockSize).Wrap(err)
		}
		plaintext = append(plaintext, FixedXOR(inter, prev)...)
		prev = block
	}
	return plaintext, nil
}

// paddingOracleBlock recovers the block cipher decryption of block, before
// the CBC XOR.
func paddingOracleBlock(block []byte, valid func(ct, iv []byte) bool) ([]byte, error) {
	const blockSize = AESBlockSize
	inter := make([]byte, blockSize)
	forged := make([]byte, blockSize)

	for pos := blockSize - 1; pos >= 0; pos-- {
		pad := byte(blockSize - pos)
		for i := pos + 1; i < blockSize; i++ {
			forged[i] = inter[i] ^ pad
		}

		found := false
		for g := 0; g < 256; g++ {
			forged[pos] = byte(g)
			if !valid(block, forged) {
				continue
			}
			if pos == blockSize-1 && pos > 0 {
				// The block may already end in \x02\x02 or longer padding
				// that just happens to validate; change the byte before
				// the guess and make sure it still does.
				forged[pos-1] ^= 0xff
				ok := valid(block, forged)
				forged[pos-1] ^= 0xff
				if !ok {
					continue
				}
			}
			inter[pos] = byte(g) ^ pad
			found = true
			break
		}
		if !found {
			return nil, fmt.Errorf("%w: no valid padding at byte %d", ErrAttackFailed, pos)
		}
	}
	return inter, nil
}
