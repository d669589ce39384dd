package shacrypt

import (
	"crypto/subtle"
	"io"
)

// Hash hashes password under cfg with a fresh salt read from r and returns
// the hash string.
func Hash(r io.Reader, cfg Config, password []byte) (string, error) {
	salt, err := NewSalt(r, cfg.SaltLength)
	if err != nil {
		return "", err
	}
	digest := Shuffle(Mix(password, salt, cfg.Rounds, cfg.Variant), cfg.Variant)
	return Format(cfg.Variant, cfg.Rounds, cfg.writesRounds(), salt, digest), nil
}

// Verify reports whether password matches encoded. The salt and rounds are
// taken from encoded, not from any configuration. Parse errors are returned
// as is; a well-formed hash that does not match yields (false, nil).
func Verify(v Variant, password []byte, encoded string) (bool, error) {
	h, err := Parse(encoded, v)
	if err != nil {
		return false, err
	}
	return h.Matches(password), nil
}

// Matches recomputes the digest for password with h's salt and rounds and
// compares it to h.Digest in constant time.
func (h *EncodedHash) Matches(password []byte) bool {
	computed := Shuffle(Mix(password, h.Salt, h.Rounds, h.Variant), h.Variant)
	return subtle.ConstantTimeCompare(computed, h.Digest) == 1
}

// NeedsRehash reports whether encoded verifies against password but was made
// with parameters different from cfg: rounds segment presence, round count
// or salt length. It returns false for any hash that is malformed, belongs
// to another variant or does not verify.
func NeedsRehash(cfg Config, password []byte, encoded string) bool {
	h, err := Parse(encoded, cfg.Variant)
	if err != nil || !h.Matches(password) {
		return false
	}
	return h.RoundsEmbedded != cfg.writesRounds() ||
		h.Rounds != cfg.Rounds ||
		len(h.Salt) != cfg.SaltLength
}
