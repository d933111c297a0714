package cryptopals

import (
	"bytes"
	"fmt"
	"slices"
)

// ECBSuffixOracle encrypts input || secret under a fixed random AES key in
// ECB mode.
type ECBSuffixOracle struct {
	key     []byte
	prefix  []byte
	secret  []byte
	metrics MetricsCollector
}

// NewECBSuffixOracle creates an oracle hiding secret behind a random key.
// metrics may be nil.
func NewECBSuffixOracle(c *Crypto, secret []byte, metrics MetricsCollector) (*ECBSuffixOracle, error) {
	key, err := c.RandomKey()
	if err != nil {
		return nil, err
	}
	return &ECBSuffixOracle{key: key, secret: dup(secret), metrics: metrics}, nil
}

// NewECBPrefixSuffixOracle creates an oracle that encrypts
// prefix || input || secret, where prefix is between 0 and 63 random
// bytes chosen once.
func NewECBPrefixSuffixOracle(c *Crypto, secret []byte, metrics MetricsCollector) (*ECBSuffixOracle, error) {
	o, err := NewECBSuffixOracle(c, secret, metrics)
	if err != nil {
		return nil, err
	}
	n, err := c.IntRange(0, 4*AESBlockSize-1)
	if err != nil {
		return nil, err
	}
	if o.prefix, err = c.RandomBytes(n); err != nil {
		return nil, err
	}
	return o, nil
}

// Encrypt implements Oracle.
func (o *ECBSuffixOracle) Encrypt(input []byte) (ct []byte, err error) {
	name := "ecb-suffix"
	if o.prefix != nil {
		name = "ecb-prefix-suffix"
	}
	err = observe(o.metrics, name, func() error {
		ct, err = EncryptECB(o.key, bytes.Join([][]byte{o.prefix, input, o.secret}, nil))
		return err
	})
	return ct, err
}

// BreakECBSuffix recovers the secret an ECB oracle appends to its input:
// it finds the block size, checks for ECB, then decrypts one byte at a time.
func BreakECBSuffix(oracle Oracle) ([]byte, error) {
	shape, err := detectShape(oracle)
	if err != nil {
		return nil, err
	}
	if err := requireECB(oracle, shape.blockSize); err != nil {
		return nil, err
	}
	secretLen := shape.baseLen - shape.jump
	modeLog.Debugf("Block size %d, secret of %d bytes", shape.blockSize, secretLen)
	return byteAtATime(oracle, shape.blockSize, 0, secretLen)
}

// DetectPrefixLength measures the random prefix an ECB oracle puts before
// the input. It grows a run of filler bytes until two consecutive
// ciphertext blocks are equal; their position and the run length give the
// prefix length. A prefix ending with the filler byte, or a secret starting
// with it, skews the result, so three fillers are tried and the median
// kept.
func DetectPrefixLength(oracle Oracle, blockSize int) (int, error) {
	var results []int
	for _, filler := range []byte{'A', 'B', 'C'} {
		n, err := prefixLengthWith(oracle, blockSize, filler)
		if err != nil {
			return 0, err
		}
		results = append(results, n)
	}
	slices.Sort(results)
	modeLog.Debugf("Prefix length candidates %v", results)
	return results[1], nil
}

func prefixLengthWith(oracle Oracle, blockSize int, filler byte) (int, error) {
	for n := 2 * blockSize; n < 3*blockSize; n++ {
		ct, err := oracle(bytes.Repeat([]byte{filler}, n))
		if err != nil {
			return 0, err
		}
		if j := firstRepeatedPair(ct, blockSize); j >= 0 {
			return j*blockSize - (n - 2*blockSize), nil
		}
	}
	return 0, fmt.Errorf("%w: no repeated blocks with filler %q", ErrAttackFailed, filler)
}

// firstRepeatedPair returns the index of the first block equal to the
// block after it, or -1.
func firstRepeatedPair(ct []byte, blockSize int) int {
	for j := 0; (j+2)*blockSize <= len(ct); j++ {
		if bytes.Equal(ct[j*blockSize:(j+1)*blockSize], ct[(j+1)*blockSize:(j+2)*blockSize]) {
			return j
		}
	}
	return -1
}

// BreakECBPrefixSuffix recovers the secret of an oracle that encrypts
// random-prefix || input || secret in ECB mode.
func BreakECBPrefixSuffix(oracle Oracle) ([]byte, error) {
	shape, err := detectShape(oracle)
	if err != nil {
		return nil, err
	}
	if err := requireECB(oracle, shape.blockSize); err != nil {
		return nil, err
	}
	prefixLen, err := DetectPrefixLength(oracle, shape.blockSize)
	if err != nil {
		return nil, err
	}
	secretLen := shape.baseLen - shape.jump - prefixLen
	if secretLen < 0 {
		return nil, fmt.Errorf("%w: prefix of %d bytes exceeds output", ErrAttackFailed, prefixLen)
	}
	modeLog.Debugf("Block size %d, prefix of %d bytes, secret of %d bytes", shape.blockSize, prefixLen, secretLen)
	return byteAtATime(oracle, shape.blockSize, prefixLen, secretLen)
}
