package cryptopals

import (
	"bytes"
	"fmt"

	"github.com/samber/oops"
)

// Oracle encrypts attacker-chosen input under secrets the caller cannot see.
type Oracle func(input []byte) ([]byte, error)

// BlockMode names the block cipher mode an oracle used.
type BlockMode int

const (
	ModeUnknown BlockMode = iota
	ModeECB
	ModeCBC
)

func (m BlockMode) String() string {
	switch m {
	case ModeECB:
		return "ECB"
	case ModeCBC:
		return "CBC"
	default:
		return "unknown"
	}
}

// EncryptionOracle encrypts under a fresh random AES key on every call,
// surrounds the input with 5 to 10 random bytes on each side and picks ECB
// or CBC (with a random IV) by coin flip.
type EncryptionOracle struct {
	crypto  *Crypto
	metrics MetricsCollector
	last    BlockMode
}

// NewEncryptionOracle creates an EncryptionOracle drawing randomness from c.
// metrics may be nil.
func NewEncryptionOracle(c *Crypto, metrics MetricsCollector) *EncryptionOracle {
	return &EncryptionOracle{crypto: c, metrics: metrics}
}

// LastMode returns the mode used by the latest Encrypt call.
func (o *EncryptionOracle) LastMode() BlockMode {
	return o.last
}

// Encrypt implements Oracle.
func (o *EncryptionOracle) Encrypt(input []byte) (ct []byte, err error) {
	err = observe(o.metrics, "encryption", func() error {
		ct, err = o.encrypt(input)
		return err
	})
	return ct, err
}

func (o *EncryptionOracle) encrypt(input []byte) ([]byte, error) {
	key, err := o.crypto.RandomKey()
	if err != nil {
		return nil, err
	}
	before, err := o.randomPadding()
	if err != nil {
		return nil, err
	}
	after, err := o.randomPadding()
	if err != nil {
		return nil, err
	}
	plaintext := bytes.Join([][]byte{before, input, after}, nil)

	useECB, err := o.crypto.CoinFlip()
	if err != nil {
		return nil, err
	}
	if useECB {
		o.last = ModeECB
		return EncryptECB(key, plaintext)
	}
	o.last = ModeCBC
	iv, err := o.crypto.RandomBytes(AESBlockSize)
	if err != nil {
		return nil, err
	}
	return EncryptCBC(key, iv, plaintext)
}

func (o *EncryptionOracle) randomPadding() ([]byte, error) {
	n, err := o.crypto.IntRange(5, 10)
	if err != nil {
		return nil, err
	}
	return o.crypto.RandomBytes(n)
}

// DetectBlockMode feeds the oracle three blocks of identical bytes. At most
// one block of random prefix precedes them, so two full blocks of the
// input always line up and encrypt identically under ECB.
func DetectBlockMode(oracle Oracle) (BlockMode, error) {
	ct, err := oracle(bytes.Repeat([]byte{'A'}, 3*AESBlockSize))
	if err != nil {
		return ModeUnknown, err
	}
	if IsECB(ct, AESBlockSize) {
		return ModeECB, nil
	}
	return ModeCBC, nil
}

// blockShape describes how an oracle's output length grows with its input.
type blockShape struct {
	blockSize int
	// baseLen is the ciphertext length for an empty input.
	baseLen int
	// jump is the smallest input length that adds a block.
	jump int
}

func detectShape(oracle Oracle) (blockShape, error) {
	ct, err := oracle(nil)
	if err != nil {
		return blockShape{}, err
	}
	base := len(ct)
	for i := 1; i <= MaxPKCS7BlockSize; i++ {
		ct, err := oracle(bytes.Repeat([]byte{'A'}, i))
		if err != nil {
			return blockShape{}, err
		}
		if len(ct) > base {
			shape := blockShape{blockSize: len(ct) - base, baseLen: base, jump: i}
			modeLog.Debugf("Oracle shape: %+v", shape)
			return shape, nil
		}
	}
	return blockShape{}, oops.In("oracle").With("base_len", base).
		Errorf("%w: ciphertext length never grew", ErrAttackFailed)
}

// DetectBlockSize returns the block size of the cipher behind oracle by
// growing the input one byte at a time until the output gains a block.
func DetectBlockSize(oracle Oracle) (int, error) {
	shape, err := detectShape(oracle)
	if err != nil {
		return 0, err
	}
	return shape.blockSize, nil
}

// byteAtATime recovers secretLen bytes that an ECB oracle appends after
// prefixLen bytes of unknown data and the attacker's input. Each secret
// byte is shifted to the end of a block of known bytes, then matched
// against all 256 possible blocks.
func byteAtATime(oracle Oracle, blockSize, prefixLen, secretLen int) ([]byte, error) {
	align := (blockSize - prefixLen%blockSize) % blockSize
	skip := prefixLen + align

	known := bytes.Repeat([]byte{'A'}, blockSize-1)
	filler := bytes.Repeat([]byte{'A'}, align+blockSize)
	probe := make([]byte, align+blockSize)
	copy(probe, filler)

	for i := 0; i < secretLen; i++ {
		shift := blockSize - 1 - i%blockSize
		ct, err := oracle(filler[:align+shift])
		if err != nil {
			return nil, err
		}
		offset := skip + (i/blockSize)*blockSize
		if offset+blockSize > len(ct) {
			return nil, oops.In("byte-at-a-time").With("offset", i).
				Errorf("%w: ciphertext too short", ErrAttackFailed)
		}
		target := ct[offset : offset+blockSize]

		copy(probe[align:], known[len(known)-(blockSize-1):])
		found := false
		for b := 0; b < 256; b++ {
			probe[len(probe)-1] = byte(b)
			guess, err := oracle(probe)
			if err != nil {
				return nil, err
			}
			if bytes.Equal(guess[skip:skip+blockSize], target) {
				known = append(known, byte(b))
				found = true
				break
			}
		}
		if !found {
			return nil, oops.In("byte-at-a-time").With("offset", i, "recovered", len(known)-(blockSize-1)).
				Errorf("%w: no byte matches", ErrAttackFailed)
		}
	}
	return known[blockSize-1:], nil
}

// requireECB fails unless oracle encrypts repeated input blocks identically.
func requireECB(oracle Oracle, blockSize int) error {
	ct, err := oracle(bytes.Repeat([]byte{'A'}, 3*blockSize))
	if err != nil {
		return err
	}
	if !IsECB(ct, blockSize) {
		return fmt.Errorf("%w: oracle does not use ECB", ErrAttackFailed)
	}
	return nil
}
