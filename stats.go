package cryptopals

import (
	"fmt"
	"math"
)

// Mean returns the arithmetic mean of values, NaN when empty.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// StdDev returns the population standard deviation of values.
func StdDev(values []float64) float64 {
	m := Mean(values)
	sum := 0.0
	for _, v := range values {
		sum += (v - m) * (v - m)
	}
	return math.Sqrt(sum / float64(len(values)))
}

// Covariance returns the population covariance of two equal-length series.
func Covariance(x, y []float64) (float64, error) {
	if len(x) != len(y) {
		return 0, fmt.Errorf("%w: series of %d and %d values", ErrLengthMismatch, len(x), len(y))
	}
	mx, my := Mean(x), Mean(y)
	sum := 0.0
	for i := range x {
		sum += (x[i] - mx) * (y[i] - my)
	}
	return sum / float64(len(x)), nil
}

// Pearson returns the correlation coefficient of two equal-length series.
// It is NaN when either series is constant.
func Pearson(x, y []float64) (float64, error) {
	cov, err := Covariance(x, y)
	if err != nil {
		return 0, err
	}
	return cov / StdDev(x) / StdDev(y), nil
}
