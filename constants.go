package cryptopals

import "time"

// Module identity
//
// ModuleName is the root of the logging filter namespace: CRYPTOPALS_LOG
// directives such as "cryptopals=debug" or "cryptopals/fetch=info" are
// matched against it.
const (
	ModuleName = "cryptopals"
	LogEnvVar  = "CRYPTOPALS_LOG"
)

// Block cipher constants
const (
	AESBlockSize = 16
	AESKeySize   = 16

	// MaxPKCS7BlockSize is the largest block size PKCS#7 can describe in a
	// single padding byte.
	MaxPKCS7BlockSize = 255
)

// English scoring constants
const (
	// FrequencyBins covers the 7-bit ASCII range.
	FrequencyBins = 128
)

// Repeating-key XOR key size search bounds (challenge 6)
const (
	MinGuessedKeySize = 2
	MaxGuessedKeySize = 40
	KeySizeCandidates = 3
)

// Configuration defaults
const (
	DefaultDataURL     = "https://cryptopals.com/static/challenge-data"
	DefaultCorpusURL   = "https://www.gutenberg.org/files/11/11-0.txt"
	DefaultHTTPTimeout = 30 * time.Second
	DefaultMaxRetries  = 3
	DefaultBackoff     = 500 * time.Millisecond
	DefaultMaxFailures = 3
	DefaultResetAfter  = time.Minute
	defaultCacheSubdir = "cryptopals"
)

// Configuration environment variables
const (
	EnvCacheDir    = "CRYPTOPALS_CACHE_DIR"
	EnvDataURL     = "CRYPTOPALS_DATA_URL"
	EnvCorpusURL   = "CRYPTOPALS_CORPUS_URL"
	EnvHTTPTimeout = "CRYPTOPALS_HTTP_TIMEOUT"
	EnvMaxRetries  = "CRYPTOPALS_MAX_RETRIES"
	EnvOffline     = "CRYPTOPALS_OFFLINE"
)

// MT19937 parameters
const (
	mtN         = 624
	mtM         = 397
	mtMatrixA   = 0x9908b0df
	mtUpperMask = 0x80000000
	mtLowerMask = 0x7fffffff
	mtInitMul   = 1812433253

	mtTemperB = 0x9d2c5680
	mtTemperC = 0xefc60000

	// MTDefaultSeed is the reference seed of the original MT19937 code.
	MTDefaultSeed = 5489
	// MTStateSize is the number of consecutive outputs needed to clone a generator.
	MTStateSize = mtN
)
