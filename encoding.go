package cryptopals

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

const base64Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

// HexToBytes decodes a hexadecimal string. Empty and odd-length strings
// are rejected, as is any character outside [0-9a-fA-F].
func HexToBytes(s string) ([]byte, error) {
	if len(s) == 0 || len(s)%2 == 1 {
		return nil, fmt.Errorf("%w: length %d", ErrInvalidHex, len(s))
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		var invalid hex.InvalidByteError
		if errors.As(err, &invalid) {
			return nil, fmt.Errorf("%w: bad digit %q at offset %d", ErrInvalidHex, byte(invalid), strings.IndexByte(s, byte(invalid)))
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidHex, err)
	}
	return b, nil
}

// HexToString decodes a hexadecimal string and maps every byte to the
// rune of the same value, so the result is readable even when the bytes
// are not valid UTF-8.
func HexToString(s string) (string, error) {
	b, err := HexToBytes(s)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.Grow(len(b))
	for _, c := range b {
		sb.WriteRune(rune(c))
	}
	return sb.String(), nil
}

// BytesToHex encodes b as lower-case hexadecimal.
func BytesToHex(b []byte) string {
	return hex.EncodeToString(b)
}

// Base64Encode encodes b with the standard alphabet and "=" padding.
// Every 3-byte group becomes four 6-bit indexes; a short final group is
// zero-filled and padded.
func Base64Encode(b []byte) string {
	var sb strings.Builder
	sb.Grow((len(b) + 2) / 3 * 4)

	for i := 0; i < len(b); i += 3 {
		var group [3]byte
		n := copy(group[:], b[i:])

		indexes := [4]byte{
			group[0] >> 2,
			(group[0]&0x03)<<4 | group[1]>>4,
			(group[1]&0x0f)<<2 | group[2]>>6,
			group[2] & 0x3f,
		}
		for j := 0; j < 4; j++ {
			if j > n {
				sb.WriteByte('=')
				continue
			}
			sb.WriteByte(base64Alphabet[indexes[j]])
		}
	}
	return sb.String()
}

// Base64Decode decodes standard padded base64, ignoring whitespace so the
// line-wrapped challenge files decode as a whole.
func Base64Decode(s string) ([]byte, error) {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\r', '\n':
			return -1
		}
		return r
	}, s)
	b, err := base64.StdEncoding.DecodeString(clean)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBase64, err)
	}
	return b, nil
}

// Base64Lines decodes one base64 value per non-empty line.
func Base64Lines(s string) ([][]byte, error) {
	var out [][]byte
	for i, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		b, err := Base64Decode(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		out = append(out, b)
	}
	return out, nil
}

// HexLines decodes one hexadecimal value per non-empty line.
func HexLines(s string) ([][]byte, error) {
	var out [][]byte
	for i, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		b, err := HexToBytes(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		out = append(out, b)
	}
	return out, nil
}
