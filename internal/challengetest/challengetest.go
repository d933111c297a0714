// Package challengetest builds cryptopals.Env values for the set tests:
// challenge input files are generated locally, randomness is seeded and
// output is captured.
package challengetest

import (
	"bytes"
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Farzy/cryptopals"
)

// RepeatingKey is the key of the generated challenge 6 file.
const RepeatingKey = "Terminator X: Bring the noise"

// HiddenLine is the plaintext of the single-byte XOR line of challenge 4.
const HiddenLine = "Now that the party is jumping\n"

// ECBLine is the 1-based line of the challenge 8 file that is ECB encrypted.
const ECBLine = 133

// Now is the fixed clock of every test Env.
var Now = time.Date(2024, time.March, 14, 15, 9, 26, 0, time.UTC)

// Env is a cryptopals.Env with its output buffers.
type Env struct {
	*cryptopals.Env
	Out    *bytes.Buffer
	Errors *bytes.Buffer
	Files  map[int]string
}

// NewEnv returns an Env whose Source serves generated challenge files and
// whose English scorer is built from testdata/corpus.txt.
func NewEnv(t testing.TB, seed int64) *Env {
	t.Helper()

	cfg := cryptopals.DefaultConfig()
	cfg.CacheDir = t.TempDir()
	cfg.DataURL = "http://challenges.test"
	cfg.Offline = true

	files := Files(t)
	urls := make(map[string]string, len(files))
	for n, body := range files {
		urls[cfg.ChallengeDataURL(n)] = body
	}

	var out, errs bytes.Buffer
	env := &cryptopals.Env{
		Config: cfg,
		Source: cryptopals.SourceFunc(func(_ context.Context, url string) (string, error) {
			body, ok := urls[url]
			if !ok {
				return "", fmt.Errorf("%w: %s", cryptopals.ErrOffline, url)
			}
			return body, nil
		}),
		Crypto:  cryptopals.NewCryptoWithReader(rand.New(rand.NewSource(seed))),
		Metrics: cryptopals.NewInMemoryMetrics(),
		Out:     &out,
		Err:     &errs,
		Now:     func() time.Time { return Now },
	}
	env.WithScorer(Scorer(t))

	return &Env{Env: env, Out: &out, Errors: &errs, Files: files}
}

// Failing replaces the Source so that challenge file n cannot be fetched.
func (e *Env) Failing(n int) *Env {
	src := e.Source
	bad := e.Config.ChallengeDataURL(n)
	e.Source = cryptopals.SourceFunc(func(ctx context.Context, url string) (string, error) {
		if url == bad {
			return "", fmt.Errorf("%w: %s", cryptopals.ErrOffline, url)
		}
		return src.Fetch(ctx, url)
	})
	return e
}

// Testdata returns the content of a file of the repository's testdata directory.
func Testdata(t testing.TB, name string) []byte {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok)
	body, err := os.ReadFile(filepath.Join(filepath.Dir(file), "..", "..", "testdata", name))
	require.NoError(t, err)
	return body
}

// Scorer returns the English scorer of testdata/corpus.txt.
func Scorer(t testing.TB) *cryptopals.Scorer {
	t.Helper()
	text, err := cryptopals.ExtractGutenberg(string(Testdata(t, "corpus.txt")))
	require.NoError(t, err)
	scorer, err := cryptopals.NewScorer([]byte(text))
	require.NoError(t, err)
	return scorer
}

// Plaintext returns the text encrypted in the generated challenge 6, 7
// and 10 files.
func Plaintext(t testing.TB) []byte {
	return Testdata(t, "plaintext.txt")
}

// Files generates the challenge input files, keyed by challenge number,
// in the formats the real files use.
func Files(t testing.TB) map[int]string {
	t.Helper()
	rng := rand.New(rand.NewSource(1))
	pt := Plaintext(t)
	key := []byte("YELLOW SUBMARINE")

	files := make(map[int]string)

	var lines []string
	for i := 0; i < 60; i++ {
		line := make([]byte, len(HiddenLine))
		rng.Read(line)
		if i == 17 {
			line = cryptopals.SingleByteXOR([]byte(HiddenLine), 0x35)
		}
		lines = append(lines, cryptopals.BytesToHex(line))
	}
	files[4] = strings.Join(lines, "\n") + "\n"

	files[6] = wrap(cryptopals.Base64Encode(cryptopals.RepeatingKeyXOR(pt, []byte(RepeatingKey))))

	ecb, err := cryptopals.EncryptECB(key, pt)
	require.NoError(t, err)
	files[7] = wrap(cryptopals.Base64Encode(ecb))

	lines = lines[:0]
	repeated := bytes.Repeat([]byte("sixteen byte blk"), 4)
	for i := 1; i <= 200; i++ {
		line := make([]byte, 160)
		rng.Read(line)
		if i == ECBLine {
			ct, err := cryptopals.EncryptECB(key, append(repeated, line[:96]...))
			require.NoError(t, err)
			line = ct[:160]
		}
		lines = append(lines, cryptopals.BytesToHex(line))
	}
	files[8] = strings.Join(lines, "\n") + "\n"

	cbc, err := cryptopals.EncryptCBC(key, make([]byte, cryptopals.AESBlockSize), pt)
	require.NoError(t, err)
	files[10] = wrap(cryptopals.Base64Encode(cbc))

	lines = lines[:0]
	text, err := cryptopals.ExtractGutenberg(string(Testdata(t, "corpus.txt")))
	require.NoError(t, err)
	for _, line := range strings.Split(text, "\n") {
		if len(line) >= 40 {
			lines = append(lines, cryptopals.Base64Encode([]byte(line)))
		}
	}
	files[20] = strings.Join(lines, "\n") + "\n"

	return files
}

// wrap splits s into 60 character lines.
func wrap(s string) string {
	var sb strings.Builder
	for len(s) > 60 {
		sb.WriteString(s[:60])
		sb.WriteByte('\n')
		s = s[60:]
	}
	sb.WriteString(s)
	sb.WriteByte('\n')
	return sb.String()
}
