package cryptopals

import (
	"context"
	"io"
	"os"
	"sync"
	"time"
)

// Env is what a challenge driver needs from the outside world: where to
// read input, where to write results and which randomness and clock to use.
type Env struct {
	Config  *Config
	Source  Source
	Crypto  *Crypto
	Metrics *InMemoryMetrics
	Out     io.Writer
	Err     io.Writer
	Now     func() time.Time

	scorerOnce sync.Once
	scorer     *Scorer
	scorerErr  error
}

// NewEnv creates the environment of the command line: an HTTP Fetcher
// over cfg, crypto/rand, the wall clock, stdout and stderr.
func NewEnv(cfg *Config) *Env {
	metrics := NewInMemoryMetrics()
	return &Env{
		Config:  cfg,
		Source:  NewFetcher(cfg, metrics),
		Crypto:  NewCrypto(),
		Metrics: metrics,
		Out:     os.Stdout,
		Err:     os.Stderr,
		Now:     time.Now,
	}
}

// WithScorer sets the English scorer, skipping the corpus download.
func (e *Env) WithScorer(s *Scorer) *Env {
	e.scorerOnce.Do(func() {})
	e.scorer = s
	return e
}

// Scorer returns the English scorer, downloading the corpus on first use.
func (e *Env) Scorer(ctx context.Context) (*Scorer, error) {
	e.scorerOnce.Do(func() {
		e.scorer, e.scorerErr = LoadCorpus(ctx, e.Source, e.Config.CorpusURL)
	})
	return e.scorer, e.scorerErr
}

// ChallengeData returns the input file of challenge n.
func (e *Env) ChallengeData(ctx context.Context, n int) (string, error) {
	return e.Source.Fetch(ctx, e.Config.ChallengeDataURL(n))
}
