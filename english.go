package cryptopals

import (
	"fmt"
	"math"
	"unicode/utf8"
)

// Frequencies returns the relative frequency of every 7-bit ASCII byte in
// text, letters folded to upper case. Bytes of 0x80 and above are ignored
// and do not count towards the total. The result has FrequencyBins entries
// and is all zeros when text holds no ASCII byte.
func Frequencies(text []byte) []float64 {
	freq := make([]float64, FrequencyBins)
	total := 0
	for _, c := range text {
		if c >= FrequencyBins {
			continue
		}
		if 'a' <= c && c <= 'z' {
			c -= 'a' - 'A'
		}
		freq[c]++
		total++
	}
	if total == 0 {
		return freq
	}
	for i := range freq {
		freq[i] /= float64(total)
	}
	return freq
}

// EuclideanDistance returns the L2 distance between two frequency tables.
func EuclideanDistance(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: tables of %d and %d bins", ErrLengthMismatch, len(a), len(b))
	}
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum), nil
}

// Score rates how English-like a candidate plaintext is.
type Score struct {
	// Distance is the Euclidean distance to the reference frequencies.
	// Lower is better.
	Distance float64
	// Pearson is the correlation with the reference frequencies, reported
	// for diagnostics only.
	Pearson float64
	// Valid is false for candidates that are not UTF-8 or hold no ASCII.
	Valid bool
}

// Better reports whether s ranks above other: any valid score beats an
// invalid one, then the smaller distance wins.
func (s Score) Better(other Score) bool {
	if s.Valid != other.Valid {
		return s.Valid
	}
	return s.Distance < other.Distance
}

// Scorer compares candidate plaintexts with the letter frequencies of a
// reference corpus.
type Scorer struct {
	reference []float64
}

// NewScorer builds a Scorer from a reference English text.
func NewScorer(corpus []byte) (*Scorer, error) {
	if len(corpus) == 0 {
		return nil, fmt.Errorf("%w: empty corpus", ErrEmptyInput)
	}
	ref := Frequencies(corpus)
	if ref[' '] == 0 && ref['E'] == 0 {
		return nil, fmt.Errorf("%w: corpus holds no English text", ErrInvalidArgument)
	}
	return &Scorer{reference: ref}, nil
}

// Reference returns a copy of the corpus frequency table.
func (s *Scorer) Reference() []float64 {
	out := make([]float64, len(s.reference))
	copy(out, s.reference)
	return out
}

// Score rates candidate against the reference corpus.
func (s *Scorer) Score(candidate []byte) Score {
	if !utf8.Valid(candidate) {
		return Score{Distance: math.Inf(1)}
	}
	freq := Frequencies(candidate)
	// Both tables always have FrequencyBins entries.
	dist, _ := EuclideanDistance(freq, s.reference)
	pearson, _ := Pearson(freq, s.reference)

	hasASCII := false
	for _, c := range candidate {
		if c < FrequencyBins {
			hasASCII = true
			break
		}
	}
	if !hasASCII {
		return Score{Distance: math.Inf(1), Pearson: pearson}
	}
	return Score{Distance: dist, Pearson: pearson, Valid: true}
}
