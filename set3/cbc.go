package set3

import (
	"context"
	"fmt"

	"github.com/Farzy/cryptopals"
)

// PaddingOracleRounds is the number of ciphertexts decrypted in challenge 17.
const PaddingOracleRounds = 10

// Challenge17 decrypts CBC ciphertexts with a padding oracle.
func Challenge17(ctx context.Context, env *cryptopals.Env) error {
	cryptopals.Section(env.Out, "Set 3 / Challenge 17")

	oracle, err := cryptopals.NewPaddingOracle(env.Crypto, nil, env.Metrics)
	if err != nil {
		return err
	}
	for i := 0; i < PaddingOracleRounds; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		ct, iv, err := oracle.Encrypt()
		if err != nil {
			return err
		}
		padded, err := cryptopals.BreakCBCPaddingOracle(ct, iv, oracle.Valid)
		if err != nil {
			return err
		}
		pt, err := cryptopals.PKCS7Unpad(padded, cryptopals.AESBlockSize)
		if err != nil {
			return fmt.Errorf("%w: recovered plaintext has bad padding: %v", cryptopals.ErrAttackFailed, err)
		}
		fmt.Fprintf(env.Out, "%s\n", pt)
	}
	fmt.Fprintf(env.Out, "%d padding oracle queries\n", env.Metrics.Queries("padding"))
	return nil
}
