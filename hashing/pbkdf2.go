package hashing

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"hash"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// DefaultPbkdf2Iterations is the default PBKDF2 iteration count.
	DefaultPbkdf2Iterations = 20000

	// DefaultPbkdf2SaltLen is the default random salt length in bytes.
	DefaultPbkdf2SaltLen = 16
)

// Pbkdf2Options configures a [Pbkdf2Hasher].
type Pbkdf2Options struct {
	// Iterations is the PBKDF2 iteration count.  Minimum: 1.
	Iterations int

	// SaltLen is the length of the random salt in bytes.  Minimum: 1.
	SaltLen int

	// KeyLen is the derived key length in bytes.  Zero selects the output
	// size of the underlying hash; larger values are rejected because they
	// add cost for the defender only.
	KeyLen int
}

// DefaultPbkdf2Options returns Pbkdf2Options with the default iteration count
// and salt length, and a key as long as the underlying hash output.
func DefaultPbkdf2Options() Pbkdf2Options {
	return Pbkdf2Options{
		Iterations: DefaultPbkdf2Iterations,
		SaltLen:    DefaultPbkdf2SaltLen,
	}
}

// Pbkdf2Hasher hashes passwords with PBKDF2 over HMAC-SHA1, HMAC-SHA256 or
// HMAC-SHA512.
//
// Output format:
//
//	$pbkdf2withhmacsha512$iterations=20000$<base64-salt>$<base64-key>
//
// using standard base64 without padding.  PBKDF2 is not memory-hard; it is
// provided for compatibility with existing hashes and FIPS-constrained
// deployments.
//
// # Thread safety
//
// Pbkdf2Hasher is immutable after construction and safe for concurrent use.
type Pbkdf2Hasher struct {
	driver DriverName
	prf    func() hash.Hash
	opts   Pbkdf2Options
}

// NewPbkdf2Hasher constructs a Pbkdf2Hasher for one of [DriverPbkdf2Sha1],
// [DriverPbkdf2Sha256] or [DriverPbkdf2Sha512].
func NewPbkdf2Hasher(driver DriverName, opts Pbkdf2Options) (*Pbkdf2Hasher, error) {
	var prf func() hash.Hash
	switch driver {
	case DriverPbkdf2Sha1:
		prf = sha1.New
	case DriverPbkdf2Sha256:
		prf = sha256.New
	case DriverPbkdf2Sha512:
		prf = sha512.New
	default:
		return nil, fmt.Errorf("%w: %q is not a PBKDF2 driver", ErrInvalidOption, driver)
	}

	size := prf().Size()
	if opts.KeyLen == 0 {
		opts.KeyLen = size
	}
	switch {
	case opts.Iterations < 1:
		return nil, fmt.Errorf("%w: pbkdf2 iterations must be ≥ 1, got %d", ErrInvalidOption, opts.Iterations)
	case opts.SaltLen < 1:
		return nil, fmt.Errorf("%w: pbkdf2 salt_len must be ≥ 1, got %d", ErrInvalidOption, opts.SaltLen)
	case opts.KeyLen < 1 || opts.KeyLen > size:
		return nil, fmt.Errorf("%w: pbkdf2 key_len must be in [1, %d], got %d",
			ErrInvalidOption, size, opts.KeyLen)
	}
	return &Pbkdf2Hasher{driver: driver, prf: prf, opts: opts}, nil
}

// Driver returns the configured PBKDF2 driver name.
func (h *Pbkdf2Hasher) Driver() DriverName { return h.driver }

// Options returns the effective options.
func (h *Pbkdf2Hasher) Options() Pbkdf2Options { return h.opts }

// Make derives a key from password with a fresh random salt.
func (h *Pbkdf2Hasher) Make(password string) (string, error) {
	salt, err := randomSalt(uint32(h.opts.SaltLen))
	if err != nil {
		return "", err
	}
	key := pbkdf2.Key([]byte(password), salt, h.opts.Iterations, h.opts.KeyLen, h.prf)
	return fmt.Sprintf("$%s$iterations=%d$%s$%s",
		h.driver,
		h.opts.Iterations,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Check verifies password against hash.  The iteration count and key length
// are taken from hash.
func (h *Pbkdf2Hasher) Check(password, hash string) (bool, error) {
	p, err := h.decode(hash)
	if err != nil {
		return false, err
	}
	computed := pbkdf2.Key([]byte(password), p.salt, p.iterations, len(p.key), h.prf)
	return subtle.ConstantTimeCompare(computed, p.key) == 1, nil
}

// NeedsRehash returns true if password verifies against hash and the stored
// iteration count, salt length or key length differs from the configuration.
func (h *Pbkdf2Hasher) NeedsRehash(password, hash string) bool {
	if ok, err := h.Check(password, hash); err != nil || !ok {
		return false
	}
	p, err := h.decode(hash)
	if err != nil {
		return false
	}
	return p.iterations != h.opts.Iterations ||
		len(p.salt) != h.opts.SaltLen ||
		len(p.key) != h.opts.KeyLen
}

// Info parses hash and returns its parameters.
//
// Returned [HashInfo].Params:
//   - "iterations" → int
//   - "salt_len"   → int
//   - "key_len"    → int
func (h *Pbkdf2Hasher) Info(hash string) (HashInfo, error) {
	p, err := h.decode(hash)
	if err != nil {
		return HashInfo{}, err
	}
	return HashInfo{
		Driver: h.driver,
		Params: map[string]any{
			"iterations": p.iterations,
			"salt_len":   len(p.salt),
			"key_len":    len(p.key),
		},
	}, nil
}

type pbkdf2Params struct {
	iterations int
	salt       []byte
	key        []byte
}

// decode parses "$<driver>$iterations=<n>$<salt>$<key>".
func (h *Pbkdf2Hasher) decode(encoded string) (*pbkdf2Params, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 5 || parts[0] != "" {
		return nil, fmt.Errorf("%w: expected 4-segment pbkdf2 string, got %d segments",
			ErrInvalidHash, len(parts)-1)
	}
	if parts[1] != string(h.driver) {
		return nil, algorithmMismatch("hash is %q, not %s", parts[1], h.driver)
	}
	n, err := parseKV(parts[2], "iterations")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}
	if n < 1 || n > uint64(^uint32(0)>>1) {
		return nil, fmt.Errorf("%w: iteration count %d out of range", ErrInvalidHash, n)
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[3])
	if err != nil {
		return nil, fmt.Errorf("%w: invalid salt base64: %v", ErrInvalidHash, err)
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, fmt.Errorf("%w: invalid key base64: %v", ErrInvalidHash, err)
	}
	if len(key) == 0 {
		return nil, fmt.Errorf("%w: empty key", ErrInvalidHash)
	}
	return &pbkdf2Params{iterations: int(n), salt: salt, key: key}, nil
}

