package hashing

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"github.com/hasbyte1/go-pwhash/shacrypt"
)

// ShaCryptOptions configures a [ShaCryptHasher].
//
// Unlike the other drivers, out-of-range values are clamped rather than
// rejected, matching crypt(3): Rounds to [1000, 999999999] and SaltLength to
// [0, 16].
type ShaCryptOptions struct {
	// Rounds is the number of mixing rounds.
	// Default: [shacrypt.DefaultRounds] (5000).
	Rounds uint32

	// SaltLength is the number of salt characters.
	// Default: [shacrypt.DefaultSaltLength] (16).
	SaltLength int

	// EmbedRounds writes "rounds=<n>$" even when Rounds is the default.
	// Leave it false to produce old-style hashes such as those found in
	// /etc/shadow.  A non-default Rounds is always embedded.
	EmbedRounds bool
}

// DefaultShaCryptOptions returns the crypt(3) defaults: 5000 rounds, a 16
// character salt and no rounds segment.
func DefaultShaCryptOptions() ShaCryptOptions {
	return ShaCryptOptions{
		Rounds:     shacrypt.DefaultRounds,
		SaltLength: shacrypt.DefaultSaltLength,
	}
}

// ShaCryptHasher hashes passwords with SHA-256-crypt or SHA-512-crypt.
//
// Output format: "$5$[rounds=<n>$]<salt>$<digest>" or the "$6$" equivalent,
// interoperable with glibc crypt(3), passlib and mkpasswd.
//
// Use it to verify and gradually migrate hashes imported from system
// password databases.  Prefer [Argon2idHasher] for new systems.
//
// # Thread safety
//
// ShaCryptHasher is immutable after construction and safe for concurrent use.
type ShaCryptHasher struct {
	cfg    shacrypt.Config
	driver DriverName
	random io.Reader
}

// NewSha256CryptHasher constructs a SHA-256-crypt hasher.
func NewSha256CryptHasher(opts ShaCryptOptions) *ShaCryptHasher {
	return newShaCryptHasher(shacrypt.SHA256, DriverSha256Crypt, opts)
}

// NewSha512CryptHasher constructs a SHA-512-crypt hasher.
func NewSha512CryptHasher(opts ShaCryptOptions) *ShaCryptHasher {
	return newShaCryptHasher(shacrypt.SHA512, DriverSha512Crypt, opts)
}

func newShaCryptHasher(v shacrypt.Variant, d DriverName, opts ShaCryptOptions) *ShaCryptHasher {
	return &ShaCryptHasher{
		cfg:    shacrypt.NewConfig(v, opts.Rounds, opts.SaltLength, opts.EmbedRounds),
		driver: d,
		random: rand.Reader,
	}
}

// Driver returns [DriverSha256Crypt] or [DriverSha512Crypt].
func (h *ShaCryptHasher) Driver() DriverName { return h.driver }

// Config returns the effective (clamped) configuration.
func (h *ShaCryptHasher) Config() shacrypt.Config { return h.cfg }

// Make hashes password and returns the crypt string.
func (h *ShaCryptHasher) Make(password string) (string, error) {
	hash, err := shacrypt.Hash(h.random, h.cfg, []byte(password))
	if err != nil {
		return "", fmt.Errorf("hashing: %s: %w", h.driver, err)
	}
	return hash, nil
}

// Check verifies password against hash using the salt and rounds stored in
// hash.  Any parse failure, including a hash of the other SHA-crypt variant,
// is reported as [ErrInvalidHash]; the wrapped cause is available through
// [errors.Is].
func (h *ShaCryptHasher) Check(password, hash string) (bool, error) {
	ok, err := shacrypt.Verify(h.cfg.Variant, []byte(password), hash)
	if err != nil {
		return false, h.invalid(err)
	}
	return ok, nil
}

// NeedsRehash returns true if password verifies against hash and the hash's
// rounds segment presence, round count or salt length differ from the
// hasher's configuration.  Salt content is not inspected.
func (h *ShaCryptHasher) NeedsRehash(password, hash string) bool {
	return shacrypt.NeedsRehash(h.cfg, []byte(password), hash)
}

// Info parses hash and returns its parameters.
//
// Returned [HashInfo].Params:
//   - "rounds"          → uint32
//   - "rounds_embedded" → bool
//   - "salt_length"     → int
func (h *ShaCryptHasher) Info(hash string) (HashInfo, error) {
	p, err := shacrypt.Parse(hash, h.cfg.Variant)
	if err != nil {
		return HashInfo{}, h.invalid(err)
	}
	return HashInfo{
		Driver: h.driver,
		Params: map[string]any{
			"rounds":          p.Rounds,
			"rounds_embedded": p.RoundsEmbedded,
			"salt_length":     len(p.Salt),
		},
	}, nil
}

func (h *ShaCryptHasher) invalid(err error) error {
	if errors.Is(err, shacrypt.ErrWrongVariant) {
		return algorithmMismatch("%w", err)
	}
	return fmt.Errorf("%w: %w", ErrInvalidHash, err)
}
