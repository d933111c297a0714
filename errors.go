package cryptopals

import (
	"errors"
	"fmt"
	"net/http"
)

// Standard cryptopals error types
//
// These errors follow Go 1.13+ error wrapping conventions and can be
// checked using errors.Is() and errors.As(). Library functions never panic
// on malformed input; they return one of the sentinels below, usually
// wrapped with the offending value.

// Sentinel errors for malformed input and failed attacks
var (
	// ErrInvalidHex indicates an empty, odd-length or non-hexadecimal string.
	ErrInvalidHex = errors.New("cryptopals: invalid hexadecimal string")

	// ErrInvalidBase64 indicates input that is not standard, padded base64.
	ErrInvalidBase64 = errors.New("cryptopals: invalid base64 string")

	// ErrLengthMismatch indicates two inputs that must have the same length do not.
	ErrLengthMismatch = errors.New("cryptopals: inputs differ in length")

	// ErrEmptyInput indicates an operation that needs data received none.
	ErrEmptyInput = errors.New("cryptopals: empty input")

	// ErrInvalidBlockSize indicates a block size PKCS#7 cannot express.
	ErrInvalidBlockSize = errors.New("cryptopals: invalid block size")

	// ErrInvalidPadding indicates PKCS#7 padding that does not validate.
	// Challenge 15 and the challenge 17 padding oracle depend on it.
	ErrInvalidPadding = errors.New("cryptopals: invalid PKCS#7 padding")

	// ErrNotBlockAligned indicates ciphertext that is not a whole number of blocks.
	ErrNotBlockAligned = errors.New("cryptopals: input is not a multiple of the block size")

	// ErrInvalidArgument indicates a nil, empty or out-of-range argument,
	// such as an IV whose length differs from the block size.
	ErrInvalidArgument = errors.New("cryptopals: invalid argument")

	// ErrNoCandidate indicates a brute-force search found no acceptable plaintext.
	ErrNoCandidate = errors.New("cryptopals: no valid candidate")

	// ErrAttackFailed indicates an attack ran to completion without recovering the secret.
	ErrAttackFailed = errors.New("cryptopals: attack failed")

	// ErrUnexpectedResult indicates a challenge produced a value that differs
	// from the published answer.
	ErrUnexpectedResult = errors.New("cryptopals: unexpected result")

	// ErrCorpusMarker indicates a Project Gutenberg start or end marker is missing.
	ErrCorpusMarker = errors.New("cryptopals: gutenberg marker not found")

	// ErrOffline indicates a download was needed while offline mode is on.
	ErrOffline = errors.New("cryptopals: offline and not cached")

	// ErrCircuitOpen indicates downloads are suspended after repeated failures.
	ErrCircuitOpen = errors.New("cryptopals: too many failed downloads")

	// ErrInvalidConfiguration indicates a malformed configuration value or log filter.
	ErrInvalidConfiguration = errors.New("cryptopals: invalid configuration")

	// ErrNotCloneable indicates fewer outputs than needed to clone a generator.
	ErrNotCloneable = errors.New("cryptopals: not enough outputs to clone generator")
)

// FetchError represents an HTTP download that completed with a non-2xx status.
type FetchError struct {
	URL        string
	StatusCode int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("cryptopals: GET %s returned %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// Temporary reports whether retrying the request may succeed.
// Server errors and rate limiting are temporary; other client errors are not.
func (e *FetchError) Temporary() bool {
	return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests
}

// ChallengeError represents the failure of a single challenge driver.
// It keeps the set and challenge numbers so the command line can report
// which challenge broke without parsing messages.
type ChallengeError struct {
	Set       int
	Challenge int
	Err       error
}

func (e *ChallengeError) Error() string {
	return fmt.Sprintf("cryptopals: set %d challenge %d failed: %v", e.Set, e.Challenge, e.Err)
}

func (e *ChallengeError) Unwrap() error {
	return e.Err
}

// NewChallengeError creates a ChallengeError, or returns nil if err is nil.
//
// Example:
//
//	if err := run(ctx, env); err != nil {
//	    return NewChallengeError(1, 4, err)
//	}
func NewChallengeError(set, challenge int, err error) error {
	if err == nil {
		return nil
	}
	return &ChallengeError{
		Set:       set,
		Challenge: challenge,
		Err:       err,
	}
}

// IsTemporary returns true if the error is temporary and the operation can be retried.
func IsTemporary(err error) bool {
	if err == nil {
		return false
	}

	type temporary interface {
		Temporary() bool
	}
	var te temporary
	if errors.As(err, &te) {
		return te.Temporary()
	}

	return false
}

// IsFatal returns true if retrying cannot help: bad input, bad
// configuration, an offline cache miss, or an open circuit breaker.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrInvalidConfiguration) ||
		errors.Is(err, ErrOffline) ||
		errors.Is(err, ErrCircuitOpen) ||
		errors.Is(err, ErrInvalidArgument) {
		return true
	}

	var fe *FetchError
	if errors.As(err, &fe) {
		return !fe.Temporary()
	}

	return false
}
