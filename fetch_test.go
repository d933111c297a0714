package cryptopals

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func newTestFetcher(t *testing.T, offline bool) (*Fetcher, *InMemoryMetrics) {
	t.Helper()
	cfg := DefaultConfig()
	cfg.CacheDir = t.TempDir()
	cfg.MaxRetries = 2
	cfg.HTTPTimeout = 5 * time.Second
	cfg.Offline = offline

	metrics := NewInMemoryMetrics()
	f := NewFetcher(cfg, metrics)
	f.backoff = time.Millisecond
	return f, metrics
}

// TestFetchCachesBody tests that a URL is downloaded once and then read from disk
func TestFetchCachesBody(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write([]byte("challenge data\n"))
	}))
	defer srv.Close()

	f, metrics := newTestFetcher(t, false)
	url := srv.URL + "/4.txt"

	for i := 0; i < 3; i++ {
		body, err := f.Fetch(context.Background(), url)
		if err != nil {
			t.Fatalf("Fetch() #%d error: %v", i, err)
		}
		if body != "challenge data\n" {
			t.Errorf("Fetch() #%d = %q", i, body)
		}
	}

	if got := atomic.LoadInt32(&hits); got != 1 {
		t.Errorf("server hit %d times, want 1", got)
	}
	if got := metrics.BytesFetched(); got != uint64(len("challenge data\n")) {
		t.Errorf("BytesFetched() = %d, want %d", got, len("challenge data\n"))
	}

	cached, err := os.ReadFile(f.CachePath(url))
	if err != nil {
		t.Fatalf("cache file missing: %v", err)
	}
	if string(cached) != "challenge data\n" {
		t.Errorf("cache file holds %q", cached)
	}
}

// TestCachePath tests that distinct URLs get distinct cache files
func TestCachePath(t *testing.T) {
	f, _ := newTestFetcher(t, false)
	a := f.CachePath("https://cryptopals.com/static/challenge-data/4.txt")
	b := f.CachePath("https://cryptopals.com/static/challenge-data/6.txt")
	if a == b {
		t.Errorf("CachePath() collision: %s", a)
	}
	if a != f.CachePath("https://cryptopals.com/static/challenge-data/4.txt") {
		t.Error("CachePath() is not stable")
	}
	if !strings.HasPrefix(a, f.cacheDir) || !strings.HasSuffix(a, ".txt") {
		t.Errorf("CachePath() = %s", a)
	}
}

// TestFetchOffline tests that offline mode only serves the cache
func TestFetchOffline(t *testing.T) {
	f, _ := newTestFetcher(t, true)
	url := "http://unreachable.test/7.txt"

	if _, err := f.Fetch(context.Background(), url); !errors.Is(err, ErrOffline) {
		t.Fatalf("Fetch() error = %v, want ErrOffline", err)
	}

	if err := f.store(f.CachePath(url), []byte("cached")); err != nil {
		t.Fatalf("store() error: %v", err)
	}
	body, err := f.Fetch(context.Background(), url)
	if err != nil {
		t.Fatalf("Fetch() after store error: %v", err)
	}
	if body != "cached" {
		t.Errorf("Fetch() = %q, want cached", body)
	}
}

// TestFetchNotFound tests that a 404 is reported without retrying
func TestFetchNotFound(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	f, metrics := newTestFetcher(t, false)
	_, err := f.Fetch(context.Background(), srv.URL+"/99.txt")

	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("Fetch() error = %v, want *FetchError", err)
	}
	if fe.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", fe.StatusCode)
	}
	if got := atomic.LoadInt32(&hits); got != 1 {
		t.Errorf("server hit %d times, want 1", got)
	}
	if got := metrics.Errors("fetch"); got != 1 {
		t.Errorf("Errors(fetch) = %d, want 1", got)
	}
	if _, err := os.Stat(f.CachePath(srv.URL + "/99.txt")); err == nil {
		t.Error("failed download was cached")
	}
}

// TestFetchRetriesServerErrors tests recovery from transient failures
func TestFetchRetriesServerErrors(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("third time lucky"))
	}))
	defer srv.Close()

	f, _ := newTestFetcher(t, false)
	body, err := f.Fetch(context.Background(), srv.URL+"/10.txt")
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if body != "third time lucky" {
		t.Errorf("Fetch() = %q", body)
	}
	if got := atomic.LoadInt32(&hits); got != 3 {
		t.Errorf("server hit %d times, want 3", got)
	}
}

// TestFetchGivesUp tests that retries stop after MaxRetries
func TestFetchGivesUp(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	f, _ := newTestFetcher(t, false)
	_, err := f.Fetch(context.Background(), srv.URL+"/20.txt")

	var maxErr *MaxRetriesExceededError
	if !errors.As(err, &maxErr) {
		t.Fatalf("Fetch() error = %v, want *MaxRetriesExceededError", err)
	}
	if got := atomic.LoadInt32(&hits); got != 3 {
		t.Errorf("server hit %d times, want 3", got)
	}
}

// TestFetchStopsAfterRepeatedFailures tests that a server that keeps failing is not hit again
func TestFetchStopsAfterRepeatedFailures(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	f, metrics := newTestFetcher(t, false)
	f.maxRetries = 0
	for n := 1; n <= DefaultMaxFailures; n++ {
		if _, err := f.Fetch(context.Background(), fmt.Sprintf("%s/%d.txt", srv.URL, n)); err == nil {
			t.Fatalf("Fetch() #%d succeeded", n)
		}
	}

	_, err := f.Fetch(context.Background(), srv.URL+"/99.txt")
	if !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("Fetch() error = %v, want ErrCircuitOpen", err)
	}
	if got := atomic.LoadInt32(&hits); got != DefaultMaxFailures {
		t.Errorf("server hit %d times, want %d", got, DefaultMaxFailures)
	}
	if got := metrics.Errors("fetch"); got != DefaultMaxFailures+1 {
		t.Errorf("Errors(fetch) = %d, want %d", got, DefaultMaxFailures+1)
	}
}

// TestFetchRetriesDroppedConnection tests that a connection closed without a response is retried
func TestFetchRetriesDroppedConnection(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) == 1 {
			conn, _, err := w.(http.Hijacker).Hijack()
			if err != nil {
				t.Errorf("hijack: %v", err)
				return
			}
			conn.Close()
			return
		}
		w.Write([]byte("second connection"))
	}))
	defer srv.Close()

	f, metrics := newTestFetcher(t, false)
	body, err := f.Fetch(context.Background(), srv.URL+"/17.txt")
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if body != "second connection" {
		t.Errorf("Fetch() = %q", body)
	}
	if got := atomic.LoadInt32(&hits); got != 2 {
		t.Errorf("server hit %d times, want 2", got)
	}
	if got := metrics.Errors("fetch"); got != 0 {
		t.Errorf("Errors(fetch) = %d, want 0", got)
	}
}
