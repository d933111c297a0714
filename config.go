package cryptopals

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds the settings of the command line: where challenge data
// comes from and where it is cached.
type Config struct {
	CacheDir    string
	DataURL     string
	CorpusURL   string
	HTTPTimeout time.Duration
	MaxRetries  int
	Offline     bool
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		CacheDir:    filepath.Join(os.TempDir(), defaultCacheSubdir),
		DataURL:     DefaultDataURL,
		CorpusURL:   DefaultCorpusURL,
		HTTPTimeout: DefaultHTTPTimeout,
		MaxRetries:  DefaultMaxRetries,
	}
}

// configKeys maps config file keys to their environment variables.
var configKeys = []struct{ key, env string }{
	{"cache_dir", EnvCacheDir},
	{"data_url", EnvDataURL},
	{"corpus_url", EnvCorpusURL},
	{"http_timeout", EnvHTTPTimeout},
	{"max_retries", EnvMaxRetries},
	{"offline", EnvOffline},
}

// LoadConfig builds a Config from the defaults, then the optional file at
// path, then the CRYPTOPALS_* environment variables.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		if err := ParseConfig(path, cfg.Set); err != nil {
			return nil, err
		}
	}
	for _, k := range configKeys {
		value, ok := os.LookupEnv(k.env)
		if !ok {
			continue
		}
		if err := cfg.Set(k.key, value); err != nil {
			return nil, fmt.Errorf("%s: %w", k.env, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log.Debugf("Configuration: %+v", *cfg)
	return cfg, nil
}

// Set assigns one configuration key. Unknown keys and malformed values
// are ErrInvalidConfiguration.
func (c *Config) Set(key, value string) error {
	switch key {
	case "cache_dir":
		c.CacheDir = value
	case "data_url":
		c.DataURL = strings.TrimRight(value, "/")
	case "corpus_url":
		c.CorpusURL = value
	case "http_timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("%w: http_timeout: %v", ErrInvalidConfiguration, err)
		}
		c.HTTPTimeout = d
	case "max_retries":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: max_retries: %v", ErrInvalidConfiguration, err)
		}
		c.MaxRetries = n
	case "offline":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: offline: %v", ErrInvalidConfiguration, err)
		}
		c.Offline = b
	default:
		return fmt.Errorf("%w: unknown key %q", ErrInvalidConfiguration, key)
	}
	return nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	var errs []error
	if c.CacheDir == "" {
		errs = append(errs, errors.New("cache_dir is empty"))
	}
	if c.DataURL == "" {
		errs = append(errs, errors.New("data_url is empty"))
	}
	if c.CorpusURL == "" {
		errs = append(errs, errors.New("corpus_url is empty"))
	}
	if c.HTTPTimeout <= 0 {
		errs = append(errs, fmt.Errorf("http_timeout must be positive, got %v", c.HTTPTimeout))
	}
	if c.MaxRetries < 0 {
		errs = append(errs, fmt.Errorf("max_retries must not be negative, got %d", c.MaxRetries))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfiguration, errors.Join(errs...))
	}
	return nil
}

// ChallengeDataURL returns the URL of the input file of challenge n.
func (c *Config) ChallengeDataURL(n int) string {
	return fmt.Sprintf("%s/%d.txt", c.DataURL, n)
}
