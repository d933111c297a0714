package cryptopals

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// MetricsCollector receives oracle usage from the attack code.
// Implementations must be safe for concurrent use and non-blocking.
type MetricsCollector interface {
	// IncrementQuery counts one call of the named oracle.
	IncrementQuery(oracle string)

	// RecordQueryLatency records how long one oracle call took.
	RecordQueryLatency(oracle string, duration time.Duration)

	// IncrementError counts a failed oracle call or attack by kind,
	// e.g. "padding", "fetch".
	IncrementError(kind string)

	// AddBytesFetched adds to the total of downloaded challenge data.
	AddBytesFetched(bytes uint64)
}

// InMemoryMetrics is the MetricsCollector used by the command line: it
// keeps counters in memory so each challenge can report how many oracle
// queries its attack needed.
type InMemoryMetrics struct {
	mu      sync.RWMutex
	oracles map[string]*oracleStats
	errors  map[string]uint64

	bytesFetched uint64
}

type oracleStats struct {
	queries    uint64
	totalNanos uint64
	maxNanos   uint64
}

// OracleSnapshot is a point-in-time copy of one oracle's counters.
type OracleSnapshot struct {
	Oracle       string
	Queries      uint64
	AvgLatency   time.Duration
	MaxLatency   time.Duration
	TotalLatency time.Duration
}

// NewInMemoryMetrics creates an empty collector.
func NewInMemoryMetrics() *InMemoryMetrics {
	return &InMemoryMetrics{
		oracles: make(map[string]*oracleStats),
		errors:  make(map[string]uint64),
	}
}

func (m *InMemoryMetrics) stats(oracle string) *oracleStats {
	m.mu.RLock()
	s, ok := m.oracles[oracle]
	m.mu.RUnlock()
	if ok {
		return s
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok = m.oracles[oracle]; !ok {
		s = &oracleStats{}
		m.oracles[oracle] = s
	}
	return s
}

// IncrementQuery counts one call of oracle.
func (m *InMemoryMetrics) IncrementQuery(oracle string) {
	atomic.AddUint64(&m.stats(oracle).queries, 1)
}

// RecordQueryLatency adds duration to oracle's latency totals.
func (m *InMemoryMetrics) RecordQueryLatency(oracle string, duration time.Duration) {
	s := m.stats(oracle)
	nanos := uint64(duration.Nanoseconds())
	atomic.AddUint64(&s.totalNanos, nanos)
	for {
		current := atomic.LoadUint64(&s.maxNanos)
		if nanos <= current || atomic.CompareAndSwapUint64(&s.maxNanos, current, nanos) {
			return
		}
	}
}

// IncrementError counts an error of the given kind.
func (m *InMemoryMetrics) IncrementError(kind string) {
	m.mu.Lock()
	m.errors[kind]++
	m.mu.Unlock()
}

// AddBytesFetched adds to the downloaded byte counter.
func (m *InMemoryMetrics) AddBytesFetched(bytes uint64) {
	atomic.AddUint64(&m.bytesFetched, bytes)
}

// Queries returns the number of calls made to oracle.
func (m *InMemoryMetrics) Queries(oracle string) uint64 {
	m.mu.RLock()
	s, ok := m.oracles[oracle]
	m.mu.RUnlock()
	if !ok {
		return 0
	}
	return atomic.LoadUint64(&s.queries)
}

// Errors returns the error count for kind.
func (m *InMemoryMetrics) Errors(kind string) uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.errors[kind]
}

// BytesFetched returns the total of downloaded bytes.
func (m *InMemoryMetrics) BytesFetched() uint64 {
	return atomic.LoadUint64(&m.bytesFetched)
}

// Snapshot returns every oracle's counters sorted by oracle name.
func (m *InMemoryMetrics) Snapshot() []OracleSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]OracleSnapshot, 0, len(m.oracles))
	for name, s := range m.oracles {
		queries := atomic.LoadUint64(&s.queries)
		total := time.Duration(atomic.LoadUint64(&s.totalNanos))
		snap := OracleSnapshot{
			Oracle:       name,
			Queries:      queries,
			MaxLatency:   time.Duration(atomic.LoadUint64(&s.maxNanos)),
			TotalLatency: total,
		}
		if queries > 0 {
			snap.AvgLatency = total / time.Duration(queries)
		}
		out = append(out, snap)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Oracle < out[j].Oracle })
	return out
}

// Reset clears every counter.
func (m *InMemoryMetrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.oracles = make(map[string]*oracleStats)
	m.errors = make(map[string]uint64)
	atomic.StoreUint64(&m.bytesFetched, 0)
}

// observe wraps one oracle call with query and latency accounting.
// A nil collector is allowed.
func observe(m MetricsCollector, oracle string, call func() error) error {
	if m == nil {
		return call()
	}
	start := time.Now()
	err := call()
	m.IncrementQuery(oracle)
	m.RecordQueryLatency(oracle, time.Since(start))
	return err
}
