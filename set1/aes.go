package set1

import (
	"context"
	"fmt"

	"github.com/Farzy/cryptopals"
)

// Challenge7 decrypts AES-128 in ECB mode.
func Challenge7(ctx context.Context, env *cryptopals.Env) error {
	cryptopals.Section(env.Out, "Set 1 / Challenge 7")
	fmt.Fprintf(env.Out, "Solving https://cryptopals.com/sets/1/challenges/7:\nAES in ECB mode\n\n")

	data, err := env.ChallengeData(ctx, 7)
	if err != nil {
		return err
	}
	ct, err := cryptopals.Base64Decode(data)
	if err != nil {
		return err
	}
	pt, err := cryptopals.DecryptECB([]byte("YELLOW SUBMARINE"), ct)
	if err != nil {
		return err
	}
	fmt.Fprintf(env.Out, "Decrypted AES ECB ciphertext:\n%s\n", pt)
	return nil
}

// Challenge8 finds the ECB-encrypted line among hex-encoded ciphertexts.
func Challenge8(ctx context.Context, env *cryptopals.Env) error {
	cryptopals.Section(env.Out, "Set 1 / Challenge 8")

	data, err := env.ChallengeData(ctx, 8)
	if err != nil {
		return err
	}
	lines, err := cryptopals.HexLines(data)
	if err != nil {
		return err
	}

	best, bestRepeats := -1, 0
	for i, line := range lines {
		repeats := cryptopals.DetectECB(line, cryptopals.AESBlockSize)
		if repeats > 0 {
			log.Debugf("Line %d has %d repeated blocks", i+1, repeats)
		}
		if repeats > bestRepeats {
			best, bestRepeats = i, repeats
		}
	}
	if best < 0 {
		return fmt.Errorf("%w: no line repeats a block", cryptopals.ErrNoCandidate)
	}
	fmt.Fprintf(env.Out, "Line %d repeats %d blocks, it is ECB encrypted:\n%s\n",
		best+1, bestRepeats, cryptopals.BytesToHex(lines[best]))
	return nil
}
