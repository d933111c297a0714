package cryptopals

import (
	"crypto/cipher"
	"errors"
	"fmt"

	"github.com/samber/lo"
)

// FixedNonceLines is the plaintext of challenge 19, W. B. Yeats' "Easter, 1916".
var FixedNonceLines = []string{
	"I have met them at close of day",
	"Coming with vivid faces",
	"From counter or desk among grey",
	"Eighteenth-century houses.",
	"I have passed with a nod of the head",
	"Or polite meaningless words,",
	"Or have lingered awhile and said",
	"Polite meaningless words,",
	"And thought before I had done",
	"Of a mocking tale or a gibe",
	"To please a companion",
	"Around the fire at the club,",
	"Being certain that they and I",
	"But lived where motley is worn:",
	"All changed, changed utterly:",
	"A terrible beauty is born.",
	"That woman's days were spent",
	"In ignorant good will,",
	"Her nights in argument",
	"Until her voice grew shrill.",
	"What voice more sweet than hers",
	"When young and beautiful,",
	"She rode to harriers?",
	"This man had kept a school",
	"And rode our winged horse.",
	"This other his helper and friend",
	"Was coming into his force;",
	"He might have won fame in the end,",
	"So sensitive his nature seemed,",
	"So daring and sweet his thought.",
	"This other man I had dreamed",
	"A drunken, vain-glorious lout.",
	"He had done most bitter wrong",
	"To some who are near my heart,",
	"Yet I number him in the song;",
	"He, too, has resigned his part",
	"In the casual comedy;",
	"He, too, has been changed in his turn,",
	"Transformed utterly:",
	"A terrible beauty is born.",
}

// EncryptFixedNonce encrypts every plaintext with a fresh stream from
// newStream, which always returns the same keystream.
func EncryptFixedNonce(plaintexts [][]byte, newStream func() (cipher.Stream, error)) ([][]byte, error) {
	out := make([][]byte, len(plaintexts))
	for i, pt := range plaintexts {
		stream, err := newStream()
		if err != nil {
			return nil, err
		}
		out[i] = make([]byte, len(pt))
		stream.XORKeyStream(out[i], pt)
	}
	return out, nil
}

// BreakFixedNonce recovers the keystream shared by ciphertexts encrypted
// under one key and nonce. Byte i of the keystream is the single-byte XOR
// key of column i, formed by byte i of every ciphertext long enough to
// have one. Columns too short to score keep a zero key byte.
func BreakFixedNonce(scorer *Scorer, cts [][]byte) ([]byte, error) {
	if len(cts) == 0 {
		return nil, ErrEmptyInput
	}
	longest := lo.Max(lo.Map(cts, func(ct []byte, _ int) int { return len(ct) }))

	keystream := make([]byte, longest)
	for i := 0; i < longest; i++ {
		column := lo.FilterMap(cts, func(ct []byte, _ int) (byte, bool) {
			if i < len(ct) {
				return ct[i], true
			}
			return 0, false
		})
		cand, err := BreakSingleByteXOR(scorer, column)
		if errors.Is(err, ErrNoCandidate) {
			xorLog.Debugf("Column %d (%d bytes): no candidate", i, len(column))
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", i, err)
		}
		keystream[i] = cand.Key
	}
	return keystream, nil
}

// TruncateToShortest cuts every ciphertext to the length of the shortest.
func TruncateToShortest(cts [][]byte) [][]byte {
	if len(cts) == 0 {
		return nil
	}
	shortest := lo.Min(lo.Map(cts, func(ct []byte, _ int) int { return len(ct) }))
	return lo.Map(cts, func(ct []byte, _ int) []byte { return ct[:shortest] })
}

// BreakFixedNonceTruncated truncates the ciphertexts to a common length
// and breaks their concatenation as repeating-key XOR with a key of that
// length. It returns the keystream prefix it recovered.
func BreakFixedNonceTruncated(scorer *Scorer, cts [][]byte) ([]byte, error) {
	truncated := TruncateToShortest(cts)
	if len(truncated) == 0 || len(truncated[0]) == 0 {
		return nil, ErrEmptyInput
	}
	return breakColumns(scorer, lo.Flatten(truncated), len(truncated[0]))
}

// ApplyKeystream XORs each ciphertext with the start of keystream, up to
// the shorter of the two.
func ApplyKeystream(cts [][]byte, keystream []byte) [][]byte {
	return lo.Map(cts, func(ct []byte, _ int) []byte {
		return FixedXOR(ct, keystream)
	})
}
