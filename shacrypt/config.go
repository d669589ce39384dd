package shacrypt

import (
	"fmt"
	"io"

	"github.com/hasbyte1/go-pwhash/b64"
)

// Salt length limits.
const (
	MaxSaltLength     = 16
	DefaultSaltLength = 16
)

// Config holds the parameters used to produce new hashes. Build it with
// [NewConfig] or [DefaultConfig]; a Config is never mutated afterwards.
type Config struct {
	Variant Variant

	// Rounds is in [MinRounds, MaxRounds].
	Rounds uint32

	// SaltLength is in [0, MaxSaltLength].
	SaltLength int

	// EmbedRounds writes the rounds segment even when Rounds equals
	// DefaultRounds. A non-default round count is always written.
	EmbedRounds bool
}

// NewConfig returns a Config for v. Out-of-range rounds are clamped to
// [MinRounds, MaxRounds] and saltLength to [0, MaxSaltLength]; nothing is
// rejected.
func NewConfig(v Variant, rounds uint32, saltLength int, embedRounds bool) Config {
	switch {
	case saltLength < 0:
		saltLength = 0
	case saltLength > MaxSaltLength:
		saltLength = MaxSaltLength
	}
	return Config{
		Variant:     v,
		Rounds:      ClampRounds(rounds),
		SaltLength:  saltLength,
		EmbedRounds: embedRounds,
	}
}

// DefaultConfig returns the crypt(3) defaults for v: 5000 rounds, a 16
// character salt and no rounds segment.
func DefaultConfig(v Variant) Config {
	return NewConfig(v, DefaultRounds, DefaultSaltLength, false)
}

// writesRounds reports whether hashes made with c carry a rounds segment.
func (c Config) writesRounds() bool {
	return c.EmbedRounds || c.Rounds != DefaultRounds
}

// NewSalt draws n characters uniformly from the crypt alphabet using r.
// r must be a cryptographically secure source.
func NewSalt(r io.Reader, n int) ([]byte, error) {
	salt := make([]byte, n)
	if _, err := io.ReadFull(r, salt); err != nil {
		return nil, fmt.Errorf("shacrypt: failed to generate salt: %w", err)
	}
	// 256 is a multiple of 64, so masking keeps the distribution uniform.
	for i, c := range salt {
		salt[i] = b64.Alphabet[c&0x3f]
	}
	return salt, nil
}
