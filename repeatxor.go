package cryptopals

import (
	"fmt"
	"sort"

	"github.com/samber/lo"
)

// KeySizeGuess is a repeating-key XOR key length with its normalised edit
// distance. Smaller distances are more likely.
type KeySizeGuess struct {
	Size     int
	Distance float64
}

// GuessKeySizes ranks every key size in [minSize, maxSize] by the Hamming
// distance between consecutive ciphertext blocks of that size, divided by
// the size and averaged over all pairs, and returns the best n guesses.
// Sizes that do not fit twice in ct are skipped.
func GuessKeySizes(ct []byte, minSize, maxSize, n int) ([]KeySizeGuess, error) {
	if minSize < 1 || maxSize < minSize || n < 1 {
		return nil, fmt.Errorf("%w: key sizes [%d, %d], %d guesses", ErrInvalidArgument, minSize, maxSize, n)
	}
	if len(ct) == 0 {
		return nil, ErrEmptyInput
	}

	var guesses []KeySizeGuess
	for size := minSize; size <= maxSize; size++ {
		blocks := lo.Chunk(ct, size)
		if len(blocks[len(blocks)-1]) != size {
			blocks = blocks[:len(blocks)-1]
		}
		if len(blocks) < 2 {
			continue
		}

		total := 0.0
		for i := 0; i+1 < len(blocks); i++ {
			d, err := HammingDistance(blocks[i], blocks[i+1])
			if err != nil {
				return nil, err
			}
			total += float64(d) / float64(size)
		}
		distance := total / float64(len(blocks)-1)
		xorLog.Debugf("Key size %d: normalised distance %.4f", size, distance)
		guesses = append(guesses, KeySizeGuess{Size: size, Distance: distance})
	}
	if len(guesses) == 0 {
		return nil, fmt.Errorf("%w: %d bytes is too short for key size %d", ErrInvalidArgument, len(ct), minSize)
	}

	sort.SliceStable(guesses, func(i, j int) bool {
		return guesses[i].Distance < guesses[j].Distance
	})
	return guesses[:min(n, len(guesses))], nil
}

// Transpose splits ct into size columns: column i holds the bytes at
// offsets i, i+size, i+2*size... so each column was XORed with the same
// key byte.
func Transpose(ct []byte, size int) [][]byte {
	if size <= 0 || len(ct) == 0 {
		return nil
	}
	columns := make([][]byte, min(size, len(ct)))
	for _, block := range lo.Chunk(ct, size) {
		for i, c := range block {
			columns[i] = append(columns[i], c)
		}
	}
	return columns
}

// BreakRepeatingKeyXOR recovers the key of a repeating-key XOR ciphertext.
// It breaks each column of the KeySizeCandidates most likely key sizes as
// a single-byte XOR and keeps the key whose full plaintext reads most like
// English.
func BreakRepeatingKeyXOR(scorer *Scorer, ct []byte) (key, plaintext []byte, err error) {
	guesses, err := GuessKeySizes(ct, MinGuessedKeySize, MaxGuessedKeySize, KeySizeCandidates)
	if err != nil {
		return nil, nil, err
	}

	var best Score
	for _, guess := range guesses {
		k, err := breakColumns(scorer, ct, guess.Size)
		if err != nil {
			xorLog.Debugf("Key size %d: %v", guess.Size, err)
			continue
		}
		pt := RepeatingKeyXOR(ct, k)
		score := scorer.Score(pt)
		xorLog.Debugf("Key size %d: key %q, distance %.4f", guess.Size, k, score.Distance)
		if key == nil || score.Better(best) {
			key, plaintext, best = k, pt, score
		}
	}
	if key == nil {
		return nil, nil, fmt.Errorf("%w: no key size in %v gave a key", ErrNoCandidate, lo.Map(guesses, func(g KeySizeGuess, _ int) int {
			return g.Size
		}))
	}
	return key, plaintext, nil
}

func breakColumns(scorer *Scorer, ct []byte, size int) ([]byte, error) {
	columns := Transpose(ct, size)
	key := make([]byte, len(columns))
	for i, col := range columns {
		cand, err := BreakSingleByteXOR(scorer, col)
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", i, err)
		}
		key[i] = cand.Key
	}
	return key, nil
}
