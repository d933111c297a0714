package cryptopals

import (
	"fmt"
	"sync"
	"time"
)

// CircuitState is the state of a CircuitBreaker.
type CircuitState string

const (
	// CircuitClosed lets downloads through and counts failures.
	CircuitClosed CircuitState = "closed"

	// CircuitOpen fails every download at once.
	CircuitOpen CircuitState = "open"

	// CircuitHalfOpen lets one download through to probe the server and
	// fails the others until it finishes.
	CircuitHalfOpen CircuitState = "half-open"
)

// CircuitBreaker stops a Fetcher from retrying a server that keeps
// failing. After maxFailures consecutive failed downloads, each already
// retried with backoff, the circuit opens and downloads fail with
// ErrCircuitOpen until resetTimeout has passed; the next download then
// decides whether the circuit closes again.
//
// Only transient failures count. A 404 says the URL is wrong, not that
// the server is down.
type CircuitBreaker struct {
	maxFailures  int
	resetTimeout time.Duration
	now          func() time.Time

	mu          sync.Mutex
	failures    int
	lastFailure time.Time
	state       CircuitState
}

// NewCircuitBreaker creates a closed CircuitBreaker. A maxFailures of 0
// never opens the circuit.
//
// Example:
//
//	// Give up on the server after 2 failed downloads, probe again after a minute
//	cb := NewCircuitBreaker(2, time.Minute)
func NewCircuitBreaker(maxFailures int, resetTimeout time.Duration) *CircuitBreaker {
	return &CircuitBreaker{
		maxFailures:  maxFailures,
		resetTimeout: resetTimeout,
		now:          time.Now,
		state:        CircuitClosed,
	}
}

// Execute runs fn unless the circuit is open, and records its outcome.
func (cb *CircuitBreaker) Execute(fn func() error) error {
	probe, err := cb.beforeRequest()
	if err != nil {
		return err
	}
	err = fn()
	cb.afterRequest(probe, err)
	return err
}

// beforeRequest admits a request. Once resetTimeout has passed on an open
// circuit, exactly one request is let through as the probe.
func (cb *CircuitBreaker) beforeRequest() (probe bool, err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case CircuitClosed:
		return false, nil
	case CircuitHalfOpen:
		return false, fmt.Errorf("%w: waiting for the probe download", ErrCircuitOpen)
	}
	since := cb.now().Sub(cb.lastFailure)
	if since > cb.resetTimeout {
		cb.state = CircuitHalfOpen
		fetchLog.Debugf("Circuit breaker half-open after %v", since.Round(time.Second))
		return true, nil
	}
	return false, fmt.Errorf("%w: %d failed downloads, last %v ago", ErrCircuitOpen, cb.failures, since.Round(time.Second))
}

func (cb *CircuitBreaker) afterRequest(probe bool, err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if probe {
		// A fatal error such as a 404 still means the server answered.
		if err == nil || IsFatal(err) {
			fetchLog.Infof("Circuit breaker closed, server is back")
			cb.state = CircuitClosed
			cb.failures = 0
			return
		}
		cb.failures++
		cb.lastFailure = cb.now()
		cb.state = CircuitOpen
		fetchLog.Debugf("Circuit breaker re-opened, probe failed: %v", err)
		return
	}
	if cb.state != CircuitClosed {
		// Admitted before the circuit opened; the probe decides.
		return
	}

	if err == nil {
		cb.failures = 0
		return
	}
	if IsFatal(err) {
		return
	}
	cb.failures++
	cb.lastFailure = cb.now()
	if cb.maxFailures > 0 && cb.failures >= cb.maxFailures {
		cb.state = CircuitOpen
		fetchLog.Warnf("Circuit breaker opened after %d failed downloads", cb.failures)
	}
}

// State returns the current state.
func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// Failures returns the number of consecutive counted failures.
func (cb *CircuitBreaker) Failures() int {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.failures
}

// Reset closes the circuit and clears the failure count.
func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.state = CircuitClosed
	cb.failures = 0
}

func (cb *CircuitBreaker) String() string {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return fmt.Sprintf("CircuitBreaker{state=%s, failures=%d/%d}", cb.state, cb.failures, cb.maxFailures)
}
