package cryptopals

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

// Candidate is one decryption attempt of a single-byte XOR ciphertext.
type Candidate struct {
	Key       byte
	Plaintext []byte
	Score     Score
}

// BreakSingleByteXOR tries all 256 keys on ct and returns the candidate
// whose plaintext is closest to English. Ties keep the smaller key.
func BreakSingleByteXOR(scorer *Scorer, ct []byte) (Candidate, error) {
	if len(ct) == 0 {
		return Candidate{}, ErrEmptyInput
	}

	var best Candidate
	found := false
	for k := 0; k < 256; k++ {
		pt := SingleByteXOR(ct, byte(k))
		score := scorer.Score(pt)
		if !score.Valid {
			continue
		}
		if xorLog.Enabled(logrus.DebugLevel) {
			xorLog.Debugf("Key %#02x: distance %.4f, pearson %.4f", k, score.Distance, score.Pearson)
		}
		if !found || score.Better(best.Score) {
			best = Candidate{Key: byte(k), Plaintext: pt, Score: score}
			found = true
		}
	}
	if !found {
		return Candidate{}, fmt.Errorf("%w: %d bytes, no printable key", ErrNoCandidate, len(ct))
	}
	xorLog.Debugf("Best key %#02x, distance %.4f", best.Key, best.Score.Distance)
	return best, nil
}

// DetectSingleByteXOR finds which of lines was encrypted with single-byte
// XOR and returns its index with the winning candidate. Lines without any
// valid candidate are skipped.
func DetectSingleByteXOR(scorer *Scorer, lines [][]byte) (int, Candidate, error) {
	type result struct {
		index int
		cand  Candidate
	}

	var results []result
	for i, line := range lines {
		cand, err := BreakSingleByteXOR(scorer, line)
		if err != nil {
			xorLog.Debugf("Line %d: %v", i, err)
			continue
		}
		results = append(results, result{index: i, cand: cand})
	}
	if len(results) == 0 {
		return -1, Candidate{}, fmt.Errorf("%w: none of %d lines", ErrNoCandidate, len(lines))
	}

	best := lo.MinBy(results, func(a, b result) bool {
		return a.cand.Score.Better(b.cand.Score)
	})
	return best.index, best.cand, nil
}
