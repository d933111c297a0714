package cryptopals

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/samber/oops"
)

// Source provides the text behind a URL. Challenge drivers read their
// input files and the English corpus through it, so tests can substitute
// canned data.
type Source interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context, url string) (string, error)

func (f SourceFunc) Fetch(ctx context.Context, url string) (string, error) {
	return f(ctx, url)
}

// Fetcher downloads text over HTTP and keeps a copy of every body in a
// cache directory, so each URL is downloaded at most once.
type Fetcher struct {
	cacheDir   string
	offline    bool
	maxRetries int
	backoff    time.Duration
	client     *http.Client
	breaker    *CircuitBreaker
	metrics    MetricsCollector
}

// NewFetcher creates a Fetcher configured from cfg. metrics may be nil.
func NewFetcher(cfg *Config, metrics MetricsCollector) *Fetcher {
	return &Fetcher{
		cacheDir:   cfg.CacheDir,
		offline:    cfg.Offline,
		maxRetries: cfg.MaxRetries,
		backoff:    DefaultBackoff,
		client:     &http.Client{Timeout: cfg.HTTPTimeout},
		breaker:    NewCircuitBreaker(DefaultMaxFailures, DefaultResetAfter),
		metrics:    metrics,
	}
}

// CachePath returns the cache file used for url.
func (f *Fetcher) CachePath(url string) string {
	return filepath.Join(f.cacheDir, fmt.Sprintf("cryptopals-%016x.txt", xxhash.Sum64String(url)))
}

// Fetch returns the body of url, from the cache when possible.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	path := f.CachePath(url)
	body, err := os.ReadFile(path)
	if err == nil {
		fetchLog.Infof("Read text of %s from cache file %s", url, path)
		return string(body), nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return "", oops.In("fetch").With("url", url, "path", path).Wrapf(err, "reading cache")
	}
	if f.offline {
		return "", fmt.Errorf("%w: %s", ErrOffline, url)
	}

	err = f.breaker.Execute(func() error {
		return RetryWithBackoff(ctx, f.maxRetries, f.backoff, func() error {
			var derr error
			body, derr = f.download(ctx, url)
			return derr
		})
	})
	if err != nil {
		if f.metrics != nil {
			f.metrics.IncrementError("fetch")
		}
		return "", oops.In("fetch").With("url", url).Wrapf(err, "downloading")
	}
	if f.metrics != nil {
		f.metrics.AddBytesFetched(uint64(len(body)))
	}

	fetchLog.Infof("Write text from %s to cache file %s", url, path)
	if err := f.store(path, body); err != nil {
		// The body is still good; the next run downloads it again.
		fetchLog.Warnf("Failed to cache %s: %v", url, err)
	}
	return string(body), nil
}

func (f *Fetcher) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode}
	}
	return io.ReadAll(resp.Body)
}

// store writes body next to path and renames it into place, so a reader
// never sees a partial file.
func (f *Fetcher) store(path string, body []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".fetch-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
