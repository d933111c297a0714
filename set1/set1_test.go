package set1

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Farzy/cryptopals"
	"github.com/Farzy/cryptopals/internal/challengetest"
)

func TestRunAll(t *testing.T) {
	env := challengetest.NewEnv(t, 1)

	require.NoError(t, Run(context.Background(), env.Env, 0))
	require.Empty(t, env.Errors.String())

	out := env.Out.String()
	for n := 1; n <= 8; n++ {
		require.Contains(t, out, fmt.Sprintf("| Set 1 / Challenge %d |", n))
	}
	require.Contains(t, out, "Output = Cooking MC's like a pound of bacon")
	require.Contains(t, out, "Output = "+challengetest.HiddenLine)
	require.Contains(t, out, fmt.Sprintf("Key (29 bytes) = %q", challengetest.RepeatingKey))
	require.Contains(t, out, fmt.Sprintf("Line %d repeats 3 blocks", challengetest.ECBLine))
}

func TestChallenge1(t *testing.T) {
	env := challengetest.NewEnv(t, 1)
	require.NoError(t, Challenge1(context.Background(), env.Env))
	require.Contains(t, env.Out.String(), "SSdtIGtpbGxpbmcgeW91ciBicmFpbiBsaWtlIGEgcG9pc29ub3VzIG11c2hyb29t")
}

func TestChallenge2(t *testing.T) {
	env := challengetest.NewEnv(t, 1)
	require.NoError(t, Challenge2(context.Background(), env.Env))
	require.Contains(t, env.Out.String(), "746865206b696420646f6e277420706c6179")
}

func TestChallenge6RecoversPlaintext(t *testing.T) {
	env := challengetest.NewEnv(t, 1)
	require.NoError(t, Challenge6(context.Background(), env.Env))
	require.Contains(t, env.Out.String(), string(challengetest.Plaintext(t)))
}

func TestChallenge7DecryptsFile(t *testing.T) {
	env := challengetest.NewEnv(t, 1)
	require.NoError(t, Challenge7(context.Background(), env.Env))
	require.Contains(t, env.Out.String(), string(challengetest.Plaintext(t)))
}

func TestRunOnly(t *testing.T) {
	env := challengetest.NewEnv(t, 1)

	require.NoError(t, Run(context.Background(), env.Env, 5))
	out := env.Out.String()
	require.Contains(t, out, "Set 1 / Challenge 5")
	require.NotContains(t, out, "Set 1 / Challenge 4")
	require.NotContains(t, out, "Set 1 / Challenge 6")
}

func TestRunUnknownChallenge(t *testing.T) {
	env := challengetest.NewEnv(t, 1)

	err := Run(context.Background(), env.Env, 9)
	require.ErrorIs(t, err, cryptopals.ErrInvalidArgument)
	require.Empty(t, env.Out.String())
}

func TestRunReportsFailures(t *testing.T) {
	env := challengetest.NewEnv(t, 1).Failing(4)

	err := Run(context.Background(), env.Env, 0)
	require.ErrorIs(t, err, cryptopals.ErrOffline)

	var ce *cryptopals.ChallengeError
	require.True(t, errors.As(err, &ce))
	require.Equal(t, Set, ce.Set)
	require.Equal(t, 4, ce.Challenge)

	require.Contains(t, env.Errors.String(), "An error happened: ")
	// The remaining challenges still ran.
	require.Contains(t, env.Out.String(), "Set 1 / Challenge 8")
}

func TestRunCancelled(t *testing.T) {
	env := challengetest.NewEnv(t, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, Run(ctx, env.Env, 0), context.Canceled)
	require.Empty(t, env.Out.String())
}
