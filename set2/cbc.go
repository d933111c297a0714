package set2

import (
	"context"
	"fmt"

	"github.com/Farzy/cryptopals"
)

// Challenge10 decrypts the challenge file with the hand-written CBC mode.
func Challenge10(ctx context.Context, env *cryptopals.Env) error {
	cryptopals.Section(env.Out, "Set 2 / Challenge 10")

	data, err := env.ChallengeData(ctx, 10)
	if err != nil {
		return err
	}
	ct, err := cryptopals.Base64Decode(data)
	if err != nil {
		return err
	}
	iv := make([]byte, cryptopals.AESBlockSize)
	pt, err := cryptopals.DecryptCBC([]byte("YELLOW SUBMARINE"), iv, ct)
	if err != nil {
		return err
	}
	fmt.Fprintf(env.Out, "Decrypted AES CBC ciphertext:\n%s\n", pt)
	return nil
}

// Challenge16 forges an ";admin=true;" field by flipping CBC ciphertext bits.
func Challenge16(ctx context.Context, env *cryptopals.Env) error {
	cryptopals.Section(env.Out, "Set 2 / Challenge 16")

	oracle, err := cryptopals.NewCommentOracle(env.Crypto, env.Metrics)
	if err != nil {
		return err
	}

	honest, err := oracle.Encrypt(";admin=true;")
	if err != nil {
		return err
	}
	admin, err := oracle.IsAdmin(honest)
	if err != nil {
		return err
	}
	fmt.Fprintf(env.Out, "Injecting \";admin=true;\" as user data: admin = %t\n", admin)
	if admin {
		return fmt.Errorf("%w: quoting let the field through", cryptopals.ErrUnexpectedResult)
	}

	forged, err := cryptopals.ForgeCBCAdmin(oracle.Encrypt)
	if err != nil {
		return err
	}
	if admin, err = oracle.IsAdmin(forged); err != nil {
		return err
	}
	fmt.Fprintf(env.Out, "Bit-flipped ciphertext: admin = %t\n", admin)
	if !admin {
		return fmt.Errorf("%w: forged ciphertext is not admin", cryptopals.ErrAttackFailed)
	}
	return nil
}
