package set2

import (
	"context"
	"fmt"

	"github.com/Farzy/cryptopals"
)

// Trials is the number of oracle runs in challenge 11.
const Trials = 20

// SecretSuffix is the base64 secret appended by the oracles of
// challenges 12 and 14.
const SecretSuffix = "Um9sbGluJyBpbiBteSA1LjAKV2l0aCBteSByYWctdG9wIGRvd24gc28gbXkg" +
	"aGFpciBjYW4gYmxvdwpUaGUgZ2lybGllcyBvbiBzdGFuZGJ5IHdhdmluZyBq" +
	"dXN0IHRvIHNheSBoaQpEaWQgeW91IHN0b3A/IE5vLCBJIGp1c3QgZHJvdmUg" +
	"YnkK"

// Challenge11 detects whether a random oracle uses ECB or CBC.
func Challenge11(ctx context.Context, env *cryptopals.Env) error {
	cryptopals.Section(env.Out, "Set 2 / Challenge 11")

	oracle := cryptopals.NewEncryptionOracle(env.Crypto, env.Metrics)
	for i := 0; i < Trials; i++ {
		detected, err := cryptopals.DetectBlockMode(oracle.Encrypt)
		if err != nil {
			return err
		}
		fmt.Fprintf(env.Out, "Trial %2d: oracle used %s, detected %s\n", i+1, oracle.LastMode(), detected)
		if detected != oracle.LastMode() {
			return fmt.Errorf("%w: trial %d detected %s, oracle used %s",
				cryptopals.ErrAttackFailed, i+1, detected, oracle.LastMode())
		}
	}
	return nil
}

// Challenge12 decrypts an ECB oracle's secret suffix one byte at a time.
func Challenge12(ctx context.Context, env *cryptopals.Env) error {
	cryptopals.Section(env.Out, "Set 2 / Challenge 12")

	secret, err := cryptopals.Base64Decode(SecretSuffix)
	if err != nil {
		return err
	}
	oracle, err := cryptopals.NewECBSuffixOracle(env.Crypto, secret, env.Metrics)
	if err != nil {
		return err
	}

	blockSize, err := cryptopals.DetectBlockSize(oracle.Encrypt)
	if err != nil {
		return err
	}
	mode, err := cryptopals.DetectBlockMode(oracle.Encrypt)
	if err != nil {
		return err
	}
	fmt.Fprintf(env.Out, "Block size %d, mode %s\n", blockSize, mode)

	recovered, err := cryptopals.BreakECBSuffix(oracle.Encrypt)
	if err != nil {
		return err
	}
	fmt.Fprintf(env.Out, "Recovered secret after %d oracle queries:\n%s",
		env.Metrics.Queries("ecb-suffix"), recovered)
	return cryptopals.Expect("secret", string(secret), string(recovered))
}

// Challenge13 forges an admin profile by cutting and pasting ECB blocks.
func Challenge13(ctx context.Context, env *cryptopals.Env) error {
	cryptopals.Section(env.Out, "Set 2 / Challenge 13")

	fmt.Fprintf(env.Out, "profile_for(%q) = %s\n", "foo@bar.com&role=admin", cryptopals.ProfileFor("foo@bar.com&role=admin"))

	oracle, err := cryptopals.NewProfileOracle(env.Crypto, env.Metrics)
	if err != nil {
		return err
	}
	forged, err := cryptopals.ForgeAdminProfile(oracle.Encrypt)
	if err != nil {
		return err
	}
	profile, err := oracle.Decrypt(forged)
	if err != nil {
		return err
	}
	fmt.Fprintf(env.Out, "Forged profile: email=%s uid=%s role=%s\n", profile["email"], profile["uid"], profile["role"])
	return cryptopals.Expect("role", "admin", profile["role"])
}

// Challenge14 is challenge 12 with a random-length random prefix.
func Challenge14(ctx context.Context, env *cryptopals.Env) error {
	cryptopals.Section(env.Out, "Set 2 / Challenge 14")

	secret, err := cryptopals.Base64Decode(SecretSuffix)
	if err != nil {
		return err
	}
	oracle, err := cryptopals.NewECBPrefixSuffixOracle(env.Crypto, secret, env.Metrics)
	if err != nil {
		return err
	}
	prefixLen, err := cryptopals.DetectPrefixLength(oracle.Encrypt, cryptopals.AESBlockSize)
	if err != nil {
		return err
	}
	fmt.Fprintf(env.Out, "Random prefix is %d bytes long\n", prefixLen)

	recovered, err := cryptopals.BreakECBPrefixSuffix(oracle.Encrypt)
	if err != nil {
		return err
	}
	fmt.Fprintf(env.Out, "Recovered secret after %d oracle queries:\n%s",
		env.Metrics.Queries("ecb-prefix-suffix"), recovered)
	return cryptopals.Expect("secret", string(secret), string(recovered))
}
