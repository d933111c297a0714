package set1

import (
	"context"
	"fmt"

	"github.com/Farzy/cryptopals"
)

// Challenge1 converts hex to base64.
func Challenge1(ctx context.Context, env *cryptopals.Env) error {
	cryptopals.Section(env.Out, "Set 1 / Challenge 1")

	const input = "49276d206b696c6c696e6720796f757220627261696e206c696b65206120706f69736f6e6f7573206d757368726f6f6d"
	const want = "SSdtIGtpbGxpbmcgeW91ciBicmFpbiBsaWtlIGEgcG9pc29ub3VzIG11c2hyb29t"

	b, err := cryptopals.HexToBytes(input)
	if err != nil {
		return err
	}
	got := cryptopals.Base64Encode(b)
	text, err := cryptopals.HexToString(input)
	if err != nil {
		return err
	}

	fmt.Fprintf(env.Out, "Base64(%s) = %s\n", input, got)
	fmt.Fprintf(env.Out, "String translation: %s\n", text)
	return cryptopals.Expect("base64", want, got)
}

// Challenge2 XORs two equal-length buffers.
func Challenge2(ctx context.Context, env *cryptopals.Env) error {
	cryptopals.Section(env.Out, "Set 1 / Challenge 2")
	fmt.Fprintf(env.Out, "Solving https://cryptopals.com/sets/1/challenges/2:\nFixed XOR\n\n")

	const input1 = "1c0111001f010100061a024b53535009181c"
	const input2 = "686974207468652062756c6c277320657965"
	const want = "746865206b696420646f6e277420706c6179"

	a, err := cryptopals.HexToBytes(input1)
	if err != nil {
		return err
	}
	b, err := cryptopals.HexToBytes(input2)
	if err != nil {
		return err
	}
	x, err := cryptopals.FixedXORStrict(a, b)
	if err != nil {
		return err
	}
	got := cryptopals.BytesToHex(x)

	fmt.Fprintf(env.Out, "%s ^ %s = %s\n", input1, input2, got)
	fmt.Fprintf(env.Out, "String translation = %s\n", x)
	return cryptopals.Expect("xor", want, got)
}
