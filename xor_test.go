package cryptopals

import (
	"bytes"
	"errors"
	"testing"
)

// TestFixedXOR tests the challenge 2 vector
func TestFixedXOR(t *testing.T) {
	a, _ := HexToBytes("1c0111001f010100061a024b53535009181c")
	b, _ := HexToBytes("686974207468652062756c6c277320657965")

	got, err := FixedXORStrict(a, b)
	if err != nil {
		t.Fatalf("FixedXORStrict() error: %v", err)
	}
	if hex := BytesToHex(got); hex != "746865206b696420646f6e277420706c6179" {
		t.Errorf("FixedXORStrict() = %s", hex)
	}
}

// TestFixedXORLengths tests the handling of unequal inputs
func TestFixedXORLengths(t *testing.T) {
	got := FixedXOR([]byte{1, 2, 3}, []byte{1, 1})
	if !bytes.Equal(got, []byte{0, 3}) {
		t.Errorf("FixedXOR() = %v, want [0 3]", got)
	}

	if _, err := FixedXORStrict([]byte{1, 2, 3}, []byte{1, 1}); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("FixedXORStrict() error = %v, want ErrLengthMismatch", err)
	}
}

// TestSingleByteXOR tests that applying the same key twice is the identity
func TestSingleByteXOR(t *testing.T) {
	in := []byte("Cooking MC's like a pound of bacon")
	ct := SingleByteXOR(in, 'X')
	if bytes.Equal(ct, in) {
		t.Fatal("SingleByteXOR() left the input unchanged")
	}
	if got := SingleByteXOR(ct, 'X'); !bytes.Equal(got, in) {
		t.Errorf("SingleByteXOR() twice = %q, want %q", got, in)
	}
}

// TestRepeatingKeyXOR tests the challenge 5 vector
func TestRepeatingKeyXOR(t *testing.T) {
	input := "Burning 'em, if you ain't quick and nimble\nI go crazy when I hear a cymbal"
	want := "0b3637272a2b2e63622c2e69692a23693a2a3c6324202d623d63343c2a26226324272765272a282b2f20430a652e2c652a3124333a653e2b2027630c692b20283165286326302e27282f"

	if got := BytesToHex(RepeatingKeyXOR([]byte(input), []byte("ICE"))); got != want {
		t.Errorf("RepeatingKeyXOR() = %s, want %s", got, want)
	}

	if got := RepeatingKeyXOR([]byte("abc"), nil); string(got) != "abc" {
		t.Errorf("RepeatingKeyXOR(empty key) = %q, want abc", got)
	}
}

// TestRepeatingXORStream tests that split calls continue the key position
func TestRepeatingXORStream(t *testing.T) {
	input := []byte("Burning 'em, if you ain't quick and nimble")
	want := RepeatingKeyXOR(input, []byte("ICE"))

	stream := NewRepeatingXORStream([]byte("ICE"))
	got := make([]byte, len(input))
	stream.XORKeyStream(got[:5], input[:5])
	stream.XORKeyStream(got[5:], input[5:])

	if !bytes.Equal(got, want) {
		t.Errorf("split XORKeyStream() = %x, want %x", got, want)
	}
}

// TestHammingDistance tests the bit distance helper
func TestHammingDistance(t *testing.T) {
	d, err := HammingDistance([]byte("this is a test"), []byte("wokka wokka!!!"))
	if err != nil {
		t.Fatalf("HammingDistance() error: %v", err)
	}
	if d != 37 {
		t.Errorf("HammingDistance() = %d, want 37", d)
	}

	if d, _ := HammingDistance(nil, nil); d != 0 {
		t.Errorf("HammingDistance(empty) = %d, want 0", d)
	}

	if _, err := HammingDistance([]byte("a"), []byte("ab")); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("HammingDistance() error = %v, want ErrLengthMismatch", err)
	}
}
