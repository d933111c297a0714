package cryptopals

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// Profile is the user record of challenge 13.
type Profile struct {
	Email string
	UID   int
	Role  string
}

// Encode renders the profile as "email=...&uid=...&role=...".
func (p Profile) Encode() string {
	return "email=" + p.Email + "&uid=" + strconv.Itoa(p.UID) + "&role=" + p.Role
}

// ParseKV parses "k1=v1&k2=v2" into a map. Every pair needs an "=";
// later keys override earlier ones.
func ParseKV(s string) (map[string]string, error) {
	out := make(map[string]string)
	if s == "" {
		return out, nil
	}
	for _, pair := range strings.Split(s, "&") {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: malformed pair %q", ErrInvalidArgument, pair)
		}
		out[key] = value
	}
	return out, nil
}

// ProfileFor encodes a user profile for email. Metacharacters "&" and "="
// are removed so the email cannot add fields.
func ProfileFor(email string) string {
	email = strings.NewReplacer("&", "", "=", "").Replace(email)
	return Profile{Email: email, UID: 10, Role: "user"}.Encode()
}

// ProfileOracle encrypts profiles under a fixed random AES-ECB key and
// decrypts them back.
type ProfileOracle struct {
	key     []byte
	metrics MetricsCollector
}

// NewProfileOracle creates a ProfileOracle with a random key. metrics may be nil.
func NewProfileOracle(c *Crypto, metrics MetricsCollector) (*ProfileOracle, error) {
	key, err := c.RandomKey()
	if err != nil {
		return nil, err
	}
	return &ProfileOracle{key: key, metrics: metrics}, nil
}

// Encrypt returns the encrypted profile of email.
func (o *ProfileOracle) Encrypt(email string) (ct []byte, err error) {
	err = observe(o.metrics, "profile", func() error {
		ct, err = EncryptECB(o.key, []byte(ProfileFor(email)))
		return err
	})
	return ct, err
}

// Decrypt decrypts and parses an encrypted profile.
func (o *ProfileOracle) Decrypt(ct []byte) (map[string]string, error) {
	pt, err := DecryptECB(o.key, ct)
	if err != nil {
		return nil, err
	}
	return ParseKV(string(pt))
}

// ForgeAdminProfile builds a ciphertext that decrypts to a profile with
// role=admin using only encrypt. One email pushes "admin" plus valid
// padding into a block of its own; a second email of the right length
// ends a block just after "role="; the admin block replaces the tail.
func ForgeAdminProfile(encrypt func(email string) ([]byte, error)) ([]byte, error) {
	const blockSize = AESBlockSize
	head := len("email=")
	tail := len("&uid=10&role=")

	admin, err := PKCS7Pad([]byte("admin"), blockSize)
	if err != nil {
		return nil, err
	}
	align := (blockSize - head%blockSize) % blockSize
	ct, err := encrypt(strings.Repeat("A", align) + string(admin))
	if err != nil {
		return nil, err
	}
	start := head + align
	if len(ct) < start+blockSize {
		return nil, fmt.Errorf("%w: ciphertext too short", ErrAttackFailed)
	}
	adminBlock := ct[start : start+blockSize]

	// "@bar.com" keeps the email plausible; pad the user part to align.
	domain := "@bar.com"
	userLen := (blockSize-(head+tail+len(domain))%blockSize)%blockSize + blockSize
	email := strings.Repeat("f", userLen-2) + "oo" + domain
	ct, err = encrypt(email)
	if err != nil {
		return nil, err
	}
	cut := head + len(email) + tail
	if len(ct) < cut {
		return nil, fmt.Errorf("%w: ciphertext too short", ErrAttackFailed)
	}
	modeLog.Debugf("Cut-and-paste with email %q, %d byte head", email, cut)
	return bytes.Join([][]byte{ct[:cut], adminBlock}, nil), nil
}
