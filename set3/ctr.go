package set3

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"github.com/Farzy/cryptopals"
)

// Challenge18Ciphertext is the base64 AES-CTR ciphertext of challenge 18.
const Challenge18Ciphertext = "L77na/nrFsKvynd6HzOoG7GHTLXsTVu9qvY/2syLXzhPweyyMTJULu/6/kXX0KSvoOLSFQ=="

// Challenge18 implements CTR mode.
func Challenge18(ctx context.Context, env *cryptopals.Env) error {
	cryptopals.Section(env.Out, "Set 3 / Challenge 18")

	ct, err := cryptopals.Base64Decode(Challenge18Ciphertext)
	if err != nil {
		return err
	}
	pt, err := cryptopals.CryptCTR([]byte("YELLOW SUBMARINE"), 0, ct)
	if err != nil {
		return err
	}
	fmt.Fprintf(env.Out, "Decrypted AES CTR ciphertext: %q\n", pt)
	return cryptopals.Expect("plaintext", "Yo, VIP Let's kick it Ice, Ice, baby Ice, Ice, baby ", string(pt))
}

// Challenge19 breaks CTR encryption under a reused nonce, then shows that
// ChaCha20 under a reused nonce falls the same way.
func Challenge19(ctx context.Context, env *cryptopals.Env) error {
	cryptopals.Section(env.Out, "Set 3 / Challenge 19")

	scorer, err := env.Scorer(ctx)
	if err != nil {
		return err
	}
	plaintexts := make([][]byte, len(cryptopals.FixedNonceLines))
	for i, line := range cryptopals.FixedNonceLines {
		plaintexts[i] = []byte(line)
	}

	key, err := env.Crypto.RandomKey()
	if err != nil {
		return err
	}
	cts, err := cryptopals.EncryptFixedNonce(plaintexts, func() (cipher.Stream, error) {
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, err
		}
		return cryptopals.NewCTR(block, 0), nil
	})
	if err != nil {
		return err
	}
	if err := breakAndPrint(env, scorer, "AES-CTR", cts); err != nil {
		return err
	}

	chachaKey, err := env.Crypto.RandomBytes(cryptopals.ChaCha20KeySize)
	if err != nil {
		return err
	}
	cts, err = cryptopals.EncryptFixedNonce(plaintexts, func() (cipher.Stream, error) {
		return cryptopals.NewChaCha20Stream(chachaKey, 0)
	})
	if err != nil {
		return err
	}
	return breakAndPrint(env, scorer, "ChaCha20", cts)
}

func breakAndPrint(env *cryptopals.Env, scorer *cryptopals.Scorer, name string, cts [][]byte) error {
	keystream, err := cryptopals.BreakFixedNonce(scorer, cts)
	if err != nil {
		return err
	}
	cryptopals.Subsection(env.Out, name+" with a fixed nonce")
	for _, pt := range cryptopals.ApplyKeystream(cts, keystream) {
		fmt.Fprintf(env.Out, "%q\n", pt)
	}
	return nil
}

// Challenge20 breaks fixed-nonce CTR statistically, as repeating-key XOR
// over ciphertexts truncated to a common length.
func Challenge20(ctx context.Context, env *cryptopals.Env) error {
	cryptopals.Section(env.Out, "Set 3 / Challenge 20")

	scorer, err := env.Scorer(ctx)
	if err != nil {
		return err
	}
	data, err := env.ChallengeData(ctx, 20)
	if err != nil {
		return err
	}
	plaintexts, err := cryptopals.Base64Lines(data)
	if err != nil {
		return err
	}

	key, err := env.Crypto.RandomKey()
	if err != nil {
		return err
	}
	cts := make([][]byte, len(plaintexts))
	for i, pt := range plaintexts {
		if cts[i], err = cryptopals.CryptCTR(key, 0, pt); err != nil {
			return err
		}
	}

	keystream, err := cryptopals.BreakFixedNonceTruncated(scorer, cts)
	if err != nil {
		return err
	}
	fmt.Fprintf(env.Out, "Recovered %d keystream bytes from %d ciphertexts\n", len(keystream), len(cts))
	for _, pt := range cryptopals.ApplyKeystream(cryptopals.TruncateToShortest(cts), keystream) {
		fmt.Fprintf(env.Out, "%s\n", pt)
	}
	return nil
}
