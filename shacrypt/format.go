package shacrypt

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hasbyte1/go-pwhash/b64"
)

const roundsPrefix = "rounds="

// EncodedHash is the parsed form of a SHA-crypt hash string.
type EncodedHash struct {
	Variant Variant

	// Rounds is the clamped round count; DefaultRounds when the string has
	// no rounds segment.
	Rounds uint32

	// RoundsEmbedded reports whether the string carried a rounds segment.
	RoundsEmbedded bool

	Salt []byte

	// Digest is the shuffled, zero-padded digest as produced by [Shuffle].
	Digest []byte
}

// String formats h back into a hash string.
func (h *EncodedHash) String() string {
	return Format(h.Variant, h.Rounds, h.RoundsEmbedded, h.Salt, h.Digest)
}

// Format builds "$<id>$[rounds=<n>$]<salt>$<digest>". digest is the output of
// [Shuffle]; the rounds segment is written only when embedRounds is true.
func Format(v Variant, rounds uint32, embedRounds bool, salt, digest []byte) string {
	var sb strings.Builder
	sb.Grow(len(v.Prefix()) + len(roundsPrefix) + 11 + len(salt) + 1 + v.EncodedDigestLen())
	sb.WriteString(v.Prefix())
	if embedRounds {
		sb.WriteString(roundsPrefix)
		sb.WriteString(strconv.FormatUint(uint64(rounds), 10))
		sb.WriteByte('$')
	}
	sb.Write(salt)
	sb.WriteByte('$')
	sb.WriteString(encodeDigest(digest, v))
	return sb.String()
}

// Parse decodes a hash string that must belong to variant v.
//
// The shape is checked first (ErrMalformedHash), then the identifier
// (ErrWrongVariant), the rounds segment, the salt and finally the digest
// (ErrInvalidDigestLength or b64.ErrInvalidCharacter). Salts longer than
// MaxSaltLength are truncated, as crypt(3) does.
func Parse(encoded string, v Variant) (*EncodedHash, error) {
	if !v.Valid() {
		return nil, fmt.Errorf("%w: undefined variant %d", ErrWrongVariant, v)
	}
	parts := strings.Split(encoded, "$")
	if (len(parts) != 4 && len(parts) != 5) || parts[0] != "" {
		return nil, fmt.Errorf("%w: expected 3 or 4 '$'-separated segments, got %d",
			ErrMalformedHash, len(parts)-1)
	}
	if parts[1] != v.ID() {
		return nil, fmt.Errorf("%w: got %q, want %q", ErrWrongVariant, parts[1], v.ID())
	}

	h := &EncodedHash{Variant: v, Rounds: DefaultRounds}
	rest := parts[2:]
	if len(parts) == 5 {
		rounds, err := parseRounds(parts[2])
		if err != nil {
			return nil, err
		}
		h.Rounds = rounds
		h.RoundsEmbedded = true
		rest = parts[3:]
	}

	salt := rest[0]
	if err := b64.Valid(salt); err != nil {
		return nil, fmt.Errorf("%w: salt: %w", ErrMalformedHash, err)
	}
	if len(salt) > MaxSaltLength {
		salt = salt[:MaxSaltLength]
	}
	h.Salt = []byte(salt)

	digest, err := decodeDigest(rest[1], v)
	if err != nil {
		return nil, err
	}
	h.Digest = digest
	return h, nil
}

// parseRounds parses "rounds=<digits>" and clamps the value.
func parseRounds(s string) (uint32, error) {
	digits, ok := strings.CutPrefix(s, roundsPrefix)
	if !ok {
		return 0, fmt.Errorf("%w: expected %q segment, got %q", ErrMalformedHash, roundsPrefix, s)
	}
	n, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: rounds %q: %v", ErrMalformedHash, digits, err)
	}
	if n > uint64(MaxRounds) {
		n = uint64(MaxRounds)
	}
	return ClampRounds(uint32(n)), nil
}

// encodeDigest b64-encodes a shuffled digest and drops the trailing
// characters that only encode padding.
func encodeDigest(shuffled []byte, v Variant) string {
	s, err := b64.Encode(shuffled)
	if err != nil {
		panic(fmt.Sprintf("shacrypt: encode %d-byte digest: %v", len(shuffled), err))
	}
	return s[:v.EncodedDigestLen()]
}

// decodeDigest reverses encodeDigest. The result is v.paddedLen() bytes.
func decodeDigest(s string, v Variant) ([]byte, error) {
	if len(s) != v.EncodedDigestLen() {
		return nil, fmt.Errorf("%w: got %d characters, want %d",
			ErrInvalidDigestLength, len(s), v.EncodedDigestLen())
	}
	full := b64.EncodedLen(v.paddedLen())
	digest, err := b64.Decode(s + strings.Repeat(".", full-len(s)))
	if err != nil {
		return nil, fmt.Errorf("shacrypt: digest: %w", err)
	}
	return digest, nil
}
