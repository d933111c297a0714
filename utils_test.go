package cryptopals

import (
	"errors"
	"strings"
	"testing"
)

func containsString(s, substr string) bool {
	return strings.Contains(s, substr)
}

// TestParseConfig tests the "key = value;" file format
func TestParseConfig(t *testing.T) {
	path := writeConfigFile(t, strings.Join([]string{
		"# comment",
		"  cache_dir =  /tmp/cp  ;",
		"data_url=http://x.test;",
		"no semicolon = skipped",
		"a.b = dotted;",
		"",
	}, "\n"))

	got := map[string]string{}
	err := ParseConfig(path, func(key, value string) error {
		got[key] = value
		return nil
	})
	if err != nil {
		t.Fatalf("ParseConfig() error: %v", err)
	}

	want := map[string]string{
		"cache_dir": "/tmp/cp",
		"data_url":  "http://x.test",
		"a.b":       "dotted",
	}
	if len(got) != len(want) {
		t.Errorf("ParseConfig() read %v, want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("ParseConfig()[%q] = %q, want %q", k, got[k], v)
		}
	}
}

// TestParseConfigCallbackError tests that callback errors carry the line number
func TestParseConfigCallbackError(t *testing.T) {
	path := writeConfigFile(t, "ok = 1;\nbad = 2;\n")
	errBad := errors.New("bad key")

	err := ParseConfig(path, func(key, _ string) error {
		if key == "bad" {
			return errBad
		}
		return nil
	})
	if !errors.Is(err, errBad) {
		t.Fatalf("ParseConfig() error = %v, want %v", err, errBad)
	}
	if !strings.Contains(err.Error(), ":2:") {
		t.Errorf("ParseConfig() error %q lacks the line number", err)
	}
}

// TestParseConfigMissingFile tests opening a missing file
func TestParseConfigMissingFile(t *testing.T) {
	err := ParseConfig("/nonexistent/cryptopals.conf", func(string, string) error { return nil })
	if !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("ParseConfig() error = %v, want ErrInvalidConfiguration", err)
	}
}
