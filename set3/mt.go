package set3

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/Farzy/cryptopals"
)

// Challenge21 implements the MT19937 generator.
func Challenge21(ctx context.Context, env *cryptopals.Env) error {
	cryptopals.Section(env.Out, "Set 3 / Challenge 21")

	mt := cryptopals.NewMT19937(cryptopals.MTDefaultSeed)
	got := make([]uint32, 5)
	for i := range got {
		got[i] = mt.Uint32()
	}
	fmt.Fprintf(env.Out, "First outputs for seed %d: %v\n", cryptopals.MTDefaultSeed, got)
	return cryptopals.Expect("first outputs",
		"[3499211612 581869302 3890346734 3586334585 545404204]", fmt.Sprint(got))
}

// Challenge22 recovers a seed taken from the clock. Waiting is simulated
// by moving a copy of env.Now forward.
func Challenge22(ctx context.Context, env *cryptopals.Env) error {
	cryptopals.Section(env.Out, "Set 3 / Challenge 22")

	wait := func() (time.Duration, error) {
		s, err := env.Crypto.IntRange(40, 1000)
		return time.Duration(s) * time.Second, err
	}

	d, err := wait()
	if err != nil {
		return err
	}
	seeded := env.Now().Add(d)
	output := cryptopals.NewMT19937(uint32(seeded.Unix())).Uint32()

	if d, err = wait(); err != nil {
		return err
	}
	now := seeded.Add(d)
	fmt.Fprintf(env.Out, "First output %d, observed at %s\n", output, now.Format(time.RFC3339))

	seed, err := cryptopals.CrackTimestampSeed(output, now, 2*time.Hour)
	if err != nil {
		return err
	}
	fmt.Fprintf(env.Out, "Seed is %d (%s)\n", seed, time.Unix(int64(seed), 0).UTC().Format(time.RFC3339))
	return cryptopals.Expect("seed", fmt.Sprint(seeded.Unix()), fmt.Sprint(seed))
}

// Challenge23 clones an MT19937 generator from its output.
func Challenge23(ctx context.Context, env *cryptopals.Env) error {
	cryptopals.Section(env.Out, "Set 3 / Challenge 23")

	seed, err := env.Crypto.Random32()
	if err != nil {
		return err
	}
	original := cryptopals.NewMT19937(seed)
	outputs := make([]uint32, cryptopals.MTStateSize)
	for i := range outputs {
		outputs[i] = original.Uint32()
	}
	clone, err := cryptopals.CloneMT19937(outputs)
	if err != nil {
		return err
	}

	const checks = 1000
	for i := 0; i < checks; i++ {
		if a, b := original.Uint32(), clone.Uint32(); a != b {
			return fmt.Errorf("%w: output %d differs, %d != %d", cryptopals.ErrAttackFailed, i, a, b)
		}
	}
	fmt.Fprintf(env.Out, "Cloned generator predicts the next %d outputs\n", checks)
	return nil
}

// Challenge24 breaks the MT19937 stream cipher and detects MT-based
// password reset tokens.
func Challenge24(ctx context.Context, env *cryptopals.Env) error {
	cryptopals.Section(env.Out, "Set 3 / Challenge 24")

	n, err := env.Crypto.IntRange(5, 20)
	if err != nil {
		return err
	}
	prefix, err := env.Crypto.RandomBytes(n)
	if err != nil {
		return err
	}
	r, err := env.Crypto.Random32()
	if err != nil {
		return err
	}
	seed := uint16(r)

	known := bytes.Repeat([]byte{'A'}, 14)
	ct := cryptopals.CryptMT(seed, append(prefix, known...))
	found, err := cryptopals.RecoverMTStreamSeed(ct, known)
	if err != nil {
		return err
	}
	fmt.Fprintf(env.Out, "Stream cipher seed is %d\n", found)
	if found != seed {
		return fmt.Errorf("%w: seed %d, want %d", cryptopals.ErrAttackFailed, found, seed)
	}

	now := env.Now()
	token := cryptopals.PasswordResetToken(now)
	random, err := env.Crypto.RandomBytes(cryptopals.PasswordResetTokenSize)
	if err != nil {
		return err
	}
	isMT := cryptopals.IsMTToken(token, now, time.Hour)
	randomIsMT := cryptopals.IsMTToken(cryptopals.BytesToHex(random), now, time.Hour)
	fmt.Fprintf(env.Out, "Token %s from MT19937: %t\n", token, isMT)
	fmt.Fprintf(env.Out, "Token %s from MT19937: %t\n", cryptopals.BytesToHex(random), randomIsMT)
	if !isMT || randomIsMT {
		return fmt.Errorf("%w: token detection", cryptopals.ErrUnexpectedResult)
	}
	return nil
}
