package set1

import (
	"context"
	"fmt"

	"github.com/Farzy/cryptopals"
)

// Challenge3 breaks a single-byte XOR cipher by letter frequency.
func Challenge3(ctx context.Context, env *cryptopals.Env) error {
	cryptopals.Section(env.Out, "Set 1 / Challenge 3")

	const input = "1b37373331363f78151b7f2b783431333d78397828372d363c78373e783a393b3736"

	scorer, err := env.Scorer(ctx)
	if err != nil {
		return err
	}
	ct, err := cryptopals.HexToBytes(input)
	if err != nil {
		return err
	}
	best, err := cryptopals.BreakSingleByteXOR(scorer, ct)
	if err != nil {
		return err
	}

	fmt.Fprintf(env.Out, "XOR character = '%c' (distance %.4f, Pearson %.4f)\n",
		best.Key, best.Score.Distance, best.Score.Pearson)
	fmt.Fprintf(env.Out, "Output = %s\n", best.Plaintext)
	return cryptopals.Expect("plaintext", "Cooking MC's like a pound of bacon", string(best.Plaintext))
}

// Challenge4 finds the one line of the challenge file that was encrypted
// with single-byte XOR.
func Challenge4(ctx context.Context, env *cryptopals.Env) error {
	cryptopals.Section(env.Out, "Set 1 / Challenge 4")

	scorer, err := env.Scorer(ctx)
	if err != nil {
		return err
	}
	data, err := env.ChallengeData(ctx, 4)
	if err != nil {
		return err
	}
	lines, err := cryptopals.HexLines(data)
	if err != nil {
		return err
	}
	index, best, err := cryptopals.DetectSingleByteXOR(scorer, lines)
	if err != nil {
		return err
	}

	fmt.Fprintf(env.Out, "Input = '%s', XOR character = '%c'.\n", cryptopals.BytesToHex(lines[index]), best.Key)
	fmt.Fprintf(env.Out, "Output = %s", best.Plaintext)
	return nil
}

// Challenge5 implements repeating-key XOR.
func Challenge5(ctx context.Context, env *cryptopals.Env) error {
	cryptopals.Section(env.Out, "Set 1 / Challenge 5")
	fmt.Fprintf(env.Out, "Solving https://cryptopals.com/sets/1/challenges/5:\nImplement repeating-key XOR\n\n")

	const input = "Burning 'em, if you ain't quick and nimble\nI go crazy when I hear a cymbal"
	const want = "0b3637272a2b2e63622c2e69692a23693a2a3c6324202d623d63343c2a26226324272765272a282b2f20430a652e2c652a3124333a653e2b2027630c692b20283165286326302e27282f"

	got := cryptopals.BytesToHex(cryptopals.RepeatingKeyXOR([]byte(input), []byte("ICE")))
	fmt.Fprintf(env.Out, "Input:\n%s\n", input)
	fmt.Fprintf(env.Out, "ICE xored output:\n%s\n", got)
	return cryptopals.Expect("ciphertext", want, got)
}

// Challenge6 breaks repeating-key XOR.
func Challenge6(ctx context.Context, env *cryptopals.Env) error {
	cryptopals.Section(env.Out, "Set 1 / Challenge 6")

	const text1, text2 = "this is a test", "wokka wokka!!!"
	hamming, err := cryptopals.HammingDistance([]byte(text1), []byte(text2))
	if err != nil {
		return err
	}
	fmt.Fprintf(env.Out, "The Hamming distance between '%s' and '%s' is %d.\n", text1, text2, hamming)
	if hamming != 37 {
		return fmt.Errorf("%w: Hamming distance %d, want 37", cryptopals.ErrUnexpectedResult, hamming)
	}

	scorer, err := env.Scorer(ctx)
	if err != nil {
		return err
	}
	data, err := env.ChallengeData(ctx, 6)
	if err != nil {
		return err
	}
	ct, err := cryptopals.Base64Decode(data)
	if err != nil {
		return err
	}

	sizes, err := cryptopals.GuessKeySizes(ct, cryptopals.MinGuessedKeySize, cryptopals.MaxGuessedKeySize, cryptopals.KeySizeCandidates)
	if err != nil {
		return err
	}
	for _, s := range sizes {
		log.Debugf("Key size %d, normalised distance %.4f", s.Size, s.Distance)
	}

	key, plaintext, err := cryptopals.BreakRepeatingKeyXOR(scorer, ct)
	if err != nil {
		return err
	}
	fmt.Fprintf(env.Out, "Key (%d bytes) = %q\n", len(key), key)
	fmt.Fprintf(env.Out, "Decrypted text:\n%s\n", plaintext)
	return nil
}
