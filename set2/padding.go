package set2

import (
	"context"
	"errors"
	"fmt"

	"github.com/Farzy/cryptopals"
)

// Challenge9 implements PKCS#7 padding.
func Challenge9(ctx context.Context, env *cryptopals.Env) error {
	cryptopals.Section(env.Out, "Set 2 / Challenge 9")

	padded, err := cryptopals.PKCS7Pad([]byte("YELLOW SUBMARINE"), 20)
	if err != nil {
		return err
	}
	fmt.Fprintf(env.Out, "PKCS#7(%q, 20) = %q\n", "YELLOW SUBMARINE", padded)
	return cryptopals.Expect("padded block", "YELLOW SUBMARINE\x04\x04\x04\x04", string(padded))
}

// Challenge15 validates PKCS#7 padding.
func Challenge15(ctx context.Context, env *cryptopals.Env) error {
	cryptopals.Section(env.Out, "Set 2 / Challenge 15")

	cases := []struct {
		input string
		valid bool
	}{
		{"ICE ICE BABY\x04\x04\x04\x04", true},
		{"ICE ICE BABY\x05\x05\x05\x05", false},
		{"ICE ICE BABY\x01\x02\x03\x04", false},
	}
	for _, c := range cases {
		out, err := cryptopals.PKCS7Unpad([]byte(c.input), cryptopals.AESBlockSize)
		switch {
		case err == nil && c.valid:
			fmt.Fprintf(env.Out, "%q has valid padding: %q\n", c.input, out)
		case errors.Is(err, cryptopals.ErrInvalidPadding) && !c.valid:
			fmt.Fprintf(env.Out, "%q is rejected: %v\n", c.input, err)
		default:
			return fmt.Errorf("%w: %q unpadded to %q, %v", cryptopals.ErrUnexpectedResult, c.input, out, err)
		}
	}
	return nil
}
