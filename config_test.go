package cryptopals

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cryptopals.conf")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

// TestDefaultConfig tests the built-in values
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.DataURL != DefaultDataURL {
		t.Errorf("DataURL = %s, want %s", cfg.DataURL, DefaultDataURL)
	}
	if cfg.HTTPTimeout != DefaultHTTPTimeout {
		t.Errorf("HTTPTimeout = %v, want %v", cfg.HTTPTimeout, DefaultHTTPTimeout)
	}
	if cfg.Offline {
		t.Error("Offline should default to false")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() on defaults: %v", err)
	}
	if got := cfg.ChallengeDataURL(6); got != DefaultDataURL+"/6.txt" {
		t.Errorf("ChallengeDataURL(6) = %s", got)
	}
}

// TestConfigSet tests every key and the rejection of malformed values
func TestConfigSet(t *testing.T) {
	tests := []struct {
		key, value string
		check      func(*Config) bool
		wantErr    bool
	}{
		{key: "cache_dir", value: "/var/cache/cp", check: func(c *Config) bool { return c.CacheDir == "/var/cache/cp" }},
		{key: "data_url", value: "http://mirror.test/data/", check: func(c *Config) bool { return c.DataURL == "http://mirror.test/data" }},
		{key: "corpus_url", value: "http://mirror.test/book.txt", check: func(c *Config) bool { return c.CorpusURL == "http://mirror.test/book.txt" }},
		{key: "http_timeout", value: "5s", check: func(c *Config) bool { return c.HTTPTimeout == 5*time.Second }},
		{key: "max_retries", value: "7", check: func(c *Config) bool { return c.MaxRetries == 7 }},
		{key: "offline", value: "true", check: func(c *Config) bool { return c.Offline }},
		{key: "http_timeout", value: "soon", wantErr: true},
		{key: "max_retries", value: "many", wantErr: true},
		{key: "offline", value: "maybe", wantErr: true},
		{key: "colour", value: "blue", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			cfg := DefaultConfig()
			err := cfg.Set(tt.key, tt.value)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidConfiguration) {
					t.Errorf("Set() error = %v, want ErrInvalidConfiguration", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Set() error: %v", err)
			}
			if !tt.check(cfg) {
				t.Errorf("Set(%s, %s) gave %+v", tt.key, tt.value, *cfg)
			}
		})
	}
}

// TestConfigValidate tests that every problem is reported
func TestConfigValidate(t *testing.T) {
	cfg := &Config{HTTPTimeout: -time.Second, MaxRetries: -1}
	err := cfg.Validate()
	if !errors.Is(err, ErrInvalidConfiguration) {
		t.Fatalf("Validate() error = %v, want ErrInvalidConfiguration", err)
	}
	for _, want := range []string{"cache_dir", "data_url", "corpus_url", "http_timeout", "max_retries"} {
		if !containsString(err.Error(), want) {
			t.Errorf("Validate() error %q does not mention %s", err, want)
		}
	}
}

// TestLoadConfigFile tests reading a file with comments
func TestLoadConfigFile(t *testing.T) {
	path := writeConfigFile(t, "# local mirror\ndata_url = http://mirror.test/;\nmax_retries=1;\n\noffline = true;\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.DataURL != "http://mirror.test" || cfg.MaxRetries != 1 || !cfg.Offline {
		t.Errorf("LoadConfig() = %+v", *cfg)
	}
	if cfg.CorpusURL != DefaultCorpusURL {
		t.Errorf("CorpusURL = %s, want default", cfg.CorpusURL)
	}
}

// TestLoadConfigEnvOverrides tests that the environment wins over the file
func TestLoadConfigEnvOverrides(t *testing.T) {
	path := writeConfigFile(t, "max_retries = 1;\nhttp_timeout = 2s;\n")
	t.Setenv(EnvMaxRetries, "9")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.MaxRetries != 9 {
		t.Errorf("MaxRetries = %d, want 9 from %s", cfg.MaxRetries, EnvMaxRetries)
	}
	if cfg.HTTPTimeout != 2*time.Second {
		t.Errorf("HTTPTimeout = %v, want 2s from file", cfg.HTTPTimeout)
	}
}

// TestLoadConfigErrors tests bad files and bad environment values
func TestLoadConfigErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.conf"))
		if !errors.Is(err, ErrInvalidConfiguration) {
			t.Errorf("LoadConfig() error = %v, want ErrInvalidConfiguration", err)
		}
	})

	t.Run("bad value in file", func(t *testing.T) {
		_, err := LoadConfig(writeConfigFile(t, "http_timeout = never;\n"))
		if !errors.Is(err, ErrInvalidConfiguration) {
			t.Errorf("LoadConfig() error = %v, want ErrInvalidConfiguration", err)
		}
	})

	t.Run("bad env value", func(t *testing.T) {
		t.Setenv(EnvOffline, "sometimes")
		_, err := LoadConfig("")
		if !errors.Is(err, ErrInvalidConfiguration) {
			t.Fatalf("LoadConfig() error = %v, want ErrInvalidConfiguration", err)
		}
		if !containsString(err.Error(), EnvOffline) {
			t.Errorf("error %q does not name %s", err, EnvOffline)
		}
	})

	t.Run("invalid result", func(t *testing.T) {
		t.Setenv(EnvMaxRetries, "-2")
		if _, err := LoadConfig(""); !errors.Is(err, ErrInvalidConfiguration) {
			t.Errorf("LoadConfig() error = %v, want ErrInvalidConfiguration", err)
		}
	})
}
