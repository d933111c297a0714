package cryptopals

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"encoding/binary"
	"errors"
	"strings"
	"testing"
)

var (
	yellowKey = []byte("YELLOW SUBMARINE")
	zeroIV    = make([]byte, AESBlockSize)
)

// TestECBRoundTrip tests encrypt then decrypt with padding
func TestECBRoundTrip(t *testing.T) {
	for _, pt := range []string{"", "short", "exactly 16 bytes", strings.Repeat("long input ", 9)} {
		ct, err := EncryptECB(yellowKey, []byte(pt))
		if err != nil {
			t.Fatalf("EncryptECB(%q) error: %v", pt, err)
		}
		if len(ct)%AESBlockSize != 0 || len(ct) <= len(pt) {
			t.Errorf("EncryptECB(%q) gave %d bytes", pt, len(ct))
		}
		got, err := DecryptECB(yellowKey, ct)
		if err != nil {
			t.Fatalf("DecryptECB() error: %v", err)
		}
		if string(got) != pt {
			t.Errorf("DecryptECB() = %q, want %q", got, pt)
		}
	}
}

// TestECBMatchesBlockCipher tests that each block is the raw AES encryption
func TestECBMatchesBlockCipher(t *testing.T) {
	block, err := aes.NewCipher(yellowKey)
	if err != nil {
		t.Fatal(err)
	}
	pt := []byte("0123456789abcdefFEDCBA9876543210")
	got := make([]byte, len(pt))
	NewECBEncrypter(block).CryptBlocks(got, pt)

	want := make([]byte, len(pt))
	block.Encrypt(want[:16], pt[:16])
	block.Encrypt(want[16:], pt[16:])
	if !bytes.Equal(got, want) {
		t.Errorf("ECB = %x, want %x", got, want)
	}

	back := make([]byte, len(got))
	NewECBDecrypter(block).CryptBlocks(back, got)
	if !bytes.Equal(back, pt) {
		t.Errorf("ECB decrypt = %q, want %q", back, pt)
	}
}

// TestECBErrors tests bad keys and misaligned ciphertext
func TestECBErrors(t *testing.T) {
	if _, err := EncryptECB([]byte("short key"), []byte("x")); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("EncryptECB(bad key) error = %v, want ErrInvalidArgument", err)
	}
	if _, err := DecryptECB(yellowKey, make([]byte, 17)); !errors.Is(err, ErrNotBlockAligned) {
		t.Errorf("DecryptECB(17 bytes) error = %v, want ErrNotBlockAligned", err)
	}
	if _, err := DecryptECB(yellowKey, nil); !errors.Is(err, ErrNotBlockAligned) {
		t.Errorf("DecryptECB(empty) error = %v, want ErrNotBlockAligned", err)
	}
}

// TestDetectECB tests repeated block counting
func TestDetectECB(t *testing.T) {
	ct, err := EncryptECB(yellowKey, bytes.Repeat([]byte("A"), 64))
	if err != nil {
		t.Fatal(err)
	}
	if got := DetectECB(ct, AESBlockSize); got != 3 {
		t.Errorf("DetectECB() = %d, want 3", got)
	}
	if !IsECB(ct, AESBlockSize) {
		t.Error("IsECB() = false for repeated blocks")
	}

	cbcCT, err := EncryptCBC(yellowKey, zeroIV, bytes.Repeat([]byte("A"), 64))
	if err != nil {
		t.Fatal(err)
	}
	if IsECB(cbcCT, AESBlockSize) {
		t.Error("IsECB() = true for CBC ciphertext")
	}
	if DetectECB(nil, AESBlockSize) != 0 || DetectECB(ct, 0) != 0 {
		t.Error("DetectECB() should be 0 for empty input or block size")
	}
}

// TestCBCMatchesStandardLibrary tests the hand-written mode against crypto/cipher
func TestCBCMatchesStandardLibrary(t *testing.T) {
	block, err := aes.NewCipher(yellowKey)
	if err != nil {
		t.Fatal(err)
	}
	iv := []byte("fedcba9876543210")
	pt := bytes.Repeat([]byte("cipher block chaining "), 8)[:160]

	got := make([]byte, len(pt))
	NewCBCEncrypter(block, iv).CryptBlocks(got, pt)
	want := make([]byte, len(pt))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(want, pt)
	if !bytes.Equal(got, want) {
		t.Fatalf("CBC encrypt = %x, want %x", got, want)
	}

	// Decrypt in place and in two calls to check the chained IV.
	buf := dup(got)
	dec := NewCBCDecrypter(block, iv)
	dec.CryptBlocks(buf[:48], buf[:48])
	dec.CryptBlocks(buf[48:], buf[48:])
	if !bytes.Equal(buf, pt) {
		t.Errorf("CBC decrypt = %q, want %q", buf, pt)
	}
}

// TestCBCEncrypterKeepsChain tests that split encryption equals one call
func TestCBCEncrypterKeepsChain(t *testing.T) {
	block, _ := aes.NewCipher(yellowKey)
	pt := bytes.Repeat([]byte{7}, 64)

	whole := make([]byte, len(pt))
	NewCBCEncrypter(block, zeroIV).CryptBlocks(whole, pt)

	split := make([]byte, len(pt))
	enc := NewCBCEncrypter(block, zeroIV)
	enc.CryptBlocks(split[:16], pt[:16])
	enc.CryptBlocks(split[16:], pt[16:])
	if !bytes.Equal(whole, split) {
		t.Errorf("split CBC = %x, want %x", split, whole)
	}
}

// TestCBCRoundTrip tests the padded helpers and their errors
func TestCBCRoundTrip(t *testing.T) {
	pt := []byte("I'm back and I'm ringin' the bell")
	ct, err := EncryptCBC(yellowKey, zeroIV, pt)
	if err != nil {
		t.Fatalf("EncryptCBC() error: %v", err)
	}
	got, err := DecryptCBC(yellowKey, zeroIV, ct)
	if err != nil {
		t.Fatalf("DecryptCBC() error: %v", err)
	}
	if !bytes.Equal(got, pt) {
		t.Errorf("DecryptCBC() = %q, want %q", got, pt)
	}

	raw, err := DecryptCBCRaw(yellowKey, zeroIV, ct)
	if err != nil {
		t.Fatal(err)
	}
	if len(raw) != 48 || raw[47] != 15 {
		t.Errorf("DecryptCBCRaw() kept %d bytes ending in %d", len(raw), raw[len(raw)-1])
	}

	if _, err := EncryptCBC(yellowKey, zeroIV[:8], pt); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("EncryptCBC(short IV) error = %v, want ErrInvalidArgument", err)
	}
	if _, err := DecryptCBC(yellowKey, zeroIV, ct[:20]); !errors.Is(err, ErrNotBlockAligned) {
		t.Errorf("DecryptCBC(20 bytes) error = %v, want ErrNotBlockAligned", err)
	}

	tampered := dup(ct)
	tampered[len(tampered)-17] ^= 0x01
	if _, err := DecryptCBC(yellowKey, zeroIV, tampered); !errors.Is(err, ErrInvalidPadding) {
		t.Errorf("DecryptCBC(tampered) error = %v, want ErrInvalidPadding", err)
	}
}

// TestCBCPanicsOnBadIV tests the BlockMode constructor contract
func TestCBCPanicsOnBadIV(t *testing.T) {
	block, _ := aes.NewCipher(yellowKey)
	defer func() {
		if recover() == nil {
			t.Error("NewCBCEncrypter() with an 8 byte IV did not panic")
		}
	}()
	NewCBCEncrypter(block, make([]byte, 8))
}

// TestCTRChallenge18 tests the published CTR vector
func TestCTRChallenge18(t *testing.T) {
	ct, err := Base64Decode("L77na/nrFsKvynd6HzOoG7GHTLXsTVu9qvY/2syLXzhPweyyMTJULu/6/kXX0KSvoOLSFQ==")
	if err != nil {
		t.Fatal(err)
	}
	got, err := CryptCTR(yellowKey, 0, ct)
	if err != nil {
		t.Fatalf("CryptCTR() error: %v", err)
	}
	want := "Yo, VIP Let's kick it Ice, Ice, baby Ice, Ice, baby "
	if string(got) != want {
		t.Errorf("CryptCTR() = %q, want %q", got, want)
	}
}

// TestCTRCounterBlocks tests the little-endian nonce and counter layout
func TestCTRCounterBlocks(t *testing.T) {
	block, _ := aes.NewCipher(yellowKey)
	const nonce = 0x0102030405060708

	var want []byte
	for counter := uint64(0); counter < 20; counter++ {
		in := make([]byte, 16)
		binary.LittleEndian.PutUint64(in[:8], nonce)
		binary.LittleEndian.PutUint64(in[8:], counter)
		out := make([]byte, 16)
		block.Encrypt(out, in)
		want = append(want, out...)
	}

	got := make([]byte, len(want))
	stream := NewCTR(block, nonce)
	// Odd-sized pieces cross block boundaries.
	for off := 0; off < len(got); off += 7 {
		end := min(off+7, len(got))
		stream.XORKeyStream(got[off:end], make([]byte, end-off))
	}
	if !bytes.Equal(got, want) {
		t.Errorf("CTR keystream = %x, want %x", got, want)
	}
}

// TestCTRSymmetric tests that encryption and decryption are the same operation
func TestCTRSymmetric(t *testing.T) {
	pt := []byte("counter mode needs no padding")
	ct, err := CryptCTR(yellowKey, 42, pt)
	if err != nil {
		t.Fatal(err)
	}
	if len(ct) != len(pt) {
		t.Errorf("len(ct) = %d, want %d", len(ct), len(pt))
	}
	back, _ := CryptCTR(yellowKey, 42, ct)
	if !bytes.Equal(back, pt) {
		t.Errorf("CryptCTR() twice = %q", back)
	}
	other, _ := CryptCTR(yellowKey, 43, pt)
	if bytes.Equal(other, ct) {
		t.Error("different nonces gave the same ciphertext")
	}
}

// TestChaCha20 tests the 64-bit nonce stream
func TestChaCha20(t *testing.T) {
	key := bytes.Repeat([]byte{0x42}, ChaCha20KeySize)
	pt := []byte("reusing a nonce breaks every stream cipher")

	ct, err := CryptChaCha20(key, 7, pt)
	if err != nil {
		t.Fatalf("CryptChaCha20() error: %v", err)
	}
	back, err := CryptChaCha20(key, 7, ct)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(back, pt) {
		t.Errorf("CryptChaCha20() twice = %q", back)
	}

	again, _ := CryptChaCha20(key, 7, pt)
	if !bytes.Equal(again, ct) {
		t.Error("same key and nonce gave different ciphertexts")
	}
	other, _ := CryptChaCha20(key, 8, pt)
	if bytes.Equal(other, ct) {
		t.Error("different nonces gave the same ciphertext")
	}

	if _, err := NewChaCha20Stream(key[:16], 0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("NewChaCha20Stream(16 byte key) error = %v, want ErrInvalidArgument", err)
	}
}
