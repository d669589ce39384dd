package hashing

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by hashing operations.
//
// Use [errors.Is] for comparisons:
//
//	ok, err := hasher.Check(password, hash)
//	if errors.Is(err, hashing.ErrInvalidHash) {
//	    // hash string is malformed
//	}
//
// Errors from the SHA-crypt drivers additionally wrap the precise cause from
// package shacrypt or b64 (for example [shacrypt.ErrWrongVariant]).
var (
	// ErrInvalidHash is returned when a hash string cannot be parsed because
	// it has an unrecognised format, missing fields, or invalid encoding.
	ErrInvalidHash = errors.New("hashing: invalid or unrecognised hash string")

	// ErrInvalidOption is returned when a constructor is called with a
	// parameter value that falls outside the allowed range (e.g., a bcrypt
	// cost below 4 or above 31).
	ErrInvalidOption = errors.New("hashing: invalid option value")

	// ErrDriverNotFound is returned by [Manager.Driver] or indirectly by
	// [Manager.Make] / [Manager.Check] when the requested driver has not been
	// registered.
	ErrDriverNotFound = errors.New("hashing: driver not found")

	// ErrEmptyDriverName is returned by [Manager.RegisterDriver] when the
	// supplied driver name is an empty string.
	ErrEmptyDriverName = errors.New("hashing: driver name must not be empty")

	// ErrNilHasher is returned by [Manager.RegisterDriver] and
	// [NewMigrationHasher] when a nil [Hasher] is supplied.
	ErrNilHasher = errors.New("hashing: hasher must not be nil")

	// ErrAlgorithmMismatch is returned by a [Hasher]'s Check or Info method
	// when the hash string was produced by a different algorithm than the one
	// implemented by that hasher.  Such errors also match [ErrInvalidHash].
	ErrAlgorithmMismatch = errors.New("hashing: hash was produced by a different algorithm")
)

// algorithmMismatch reports a hash made by another algorithm.  The result
// matches both [ErrInvalidHash] and [ErrAlgorithmMismatch].
func algorithmMismatch(format string, args ...any) error {
	return fmt.Errorf("%w: %w: "+format, append([]any{ErrInvalidHash, ErrAlgorithmMismatch}, args...)...)
}
