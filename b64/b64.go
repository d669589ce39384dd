// Package b64 implements the base64 variant used by crypt(3) hash strings.
//
// It is NOT RFC 4648 base64. The alphabet is "./0-9A-Za-z", there is no
// padding, and each group of three bytes is read as a little-endian 24-bit
// word whose six-bit chunks are emitted least-significant first:
//
//	w := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16
//	out = Alphabet[w&63], Alphabet[w>>6&63], Alphabet[w>>12&63], Alphabet[w>>18&63]
//
// Callers are responsible for handing in whole groups: [Encode] accepts only
// multiples of 3 bytes and [Decode] only multiples of 4 characters.
package b64

import (
	"errors"
	"fmt"
)

// Alphabet is the 64-symbol crypt alphabet in value order.
const Alphabet = "./0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

var (
	// ErrInvalidLength is returned when the input to Encode is not a multiple
	// of 3 bytes, or the input to Decode is not a multiple of 4 characters.
	ErrInvalidLength = errors.New("b64: invalid input length")

	// ErrInvalidCharacter is returned when a string contains a byte outside
	// [Alphabet].
	ErrInvalidCharacter = errors.New("b64: invalid character")
)

const invalid = 0xff

var decodeMap = func() [256]byte {
	var m [256]byte
	for i := range m {
		m[i] = invalid
	}
	for i := 0; i < len(Alphabet); i++ {
		m[Alphabet[i]] = byte(i)
	}
	return m
}()

// EncodedLen returns the number of characters Encode produces for n bytes.
func EncodedLen(n int) int { return n / 3 * 4 }

// DecodedLen returns the number of bytes Decode produces for n characters.
func DecodedLen(n int) int { return n / 4 * 3 }

// Encode returns the crypt-b64 encoding of src.
func Encode(src []byte) (string, error) {
	if len(src)%3 != 0 {
		return "", fmt.Errorf("%w: %d bytes is not a multiple of 3", ErrInvalidLength, len(src))
	}
	dst := make([]byte, EncodedLen(len(src)))
	for si, di := 0, 0; si < len(src); si, di = si+3, di+4 {
		w := uint32(src[si]) | uint32(src[si+1])<<8 | uint32(src[si+2])<<16
		dst[di] = Alphabet[w&0x3f]
		dst[di+1] = Alphabet[w>>6&0x3f]
		dst[di+2] = Alphabet[w>>12&0x3f]
		dst[di+3] = Alphabet[w>>18&0x3f]
	}
	return string(dst), nil
}

// Decode returns the bytes represented by the crypt-b64 string s.
func Decode(s string) ([]byte, error) {
	if len(s)%4 != 0 {
		return nil, fmt.Errorf("%w: %d characters is not a multiple of 4", ErrInvalidLength, len(s))
	}
	dst := make([]byte, DecodedLen(len(s)))
	for si, di := 0, 0; si < len(s); si, di = si+4, di+3 {
		var w uint32
		for k := 0; k < 4; k++ {
			v := decodeMap[s[si+k]]
			if v == invalid {
				return nil, fmt.Errorf("%w: %q at offset %d", ErrInvalidCharacter, s[si+k], si+k)
			}
			w |= uint32(v) << (6 * k)
		}
		dst[di] = byte(w)
		dst[di+1] = byte(w >> 8)
		dst[di+2] = byte(w >> 16)
	}
	return dst, nil
}

// Valid reports, as an error, whether every byte of s belongs to [Alphabet].
// It does not check the length.
func Valid(s string) error {
	for i := 0; i < len(s); i++ {
		if decodeMap[s[i]] == invalid {
			return fmt.Errorf("%w: %q at offset %d", ErrInvalidCharacter, s[i], i)
		}
	}
	return nil
}
