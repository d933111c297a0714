package cryptopals

import (
	"bytes"
	"fmt"
	"strings"
)

const (
	commentPrefix = "comment1=cooking%20MCs;userdata="
	commentSuffix = ";comment2=%20like%20a%20pound%20of%20bacon"
)

var commentQuoter = strings.NewReplacer(";", "%3B", "=", "%3D")

// CommentOracle wraps user data between fixed comment fields and
// encrypts the result with AES-CBC under a fixed random key and IV.
type CommentOracle struct {
	key     []byte
	iv      []byte
	metrics MetricsCollector
}

// NewCommentOracle creates a CommentOracle. metrics may be nil.
func NewCommentOracle(c *Crypto, metrics MetricsCollector) (*CommentOracle, error) {
	key, err := c.RandomKey()
	if err != nil {
		return nil, err
	}
	iv, err := c.RandomBytes(AESBlockSize)
	if err != nil {
		return nil, err
	}
	return &CommentOracle{key: key, iv: iv, metrics: metrics}, nil
}

// Encrypt quotes ";" and "=" out of userdata, adds the comment fields and
// encrypts.
func (o *CommentOracle) Encrypt(userdata string) (ct []byte, err error) {
	err = observe(o.metrics, "comment", func() error {
		pt := commentPrefix + commentQuoter.Replace(userdata) + commentSuffix
		ct, err = EncryptCBC(o.key, o.iv, []byte(pt))
		return err
	})
	return ct, err
}

// IsAdmin decrypts ct and reports whether one of its ";" separated fields
// is exactly "admin=true".
func (o *CommentOracle) IsAdmin(ct []byte) (bool, error) {
	pt, err := DecryptCBC(o.key, o.iv, ct)
	if err != nil {
		return false, err
	}
	for _, field := range bytes.Split(pt, []byte{';'}) {
		if string(field) == "admin=true" {
			return true, nil
		}
	}
	return false, nil
}

// ForgeCBCAdmin produces a ciphertext that decrypts with an
// ";admin=true;" field. It encrypts two blocks of known user data, then
// flips bits of the first one: in CBC a change to ciphertext block i
// scrambles plaintext block i and applies the same XOR to block i+1.
func ForgeCBCAdmin(encrypt func(userdata string) ([]byte, error)) ([]byte, error) {
	const blockSize = AESBlockSize
	align := (blockSize - len(commentPrefix)%blockSize) % blockSize
	start := len(commentPrefix) + align

	known := bytes.Repeat([]byte{'A'}, blockSize)
	want := []byte(";admin=true;AAAA")

	ct, err := encrypt(strings.Repeat("A", align+2*blockSize))
	if err != nil {
		return nil, err
	}
	if len(ct) < start+2*blockSize {
		return nil, fmt.Errorf("%w: ciphertext too short", ErrAttackFailed)
	}

	forged := dup(ct)
	flip := FixedXOR(known, want)
	xorInto(forged[start:start+blockSize], forged[start:start+blockSize], flip)
	modeLog.Debugf("Flipped ciphertext block %d", start/blockSize)
	return forged, nil
}
