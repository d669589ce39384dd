package hashing

import "strings"

// DriverName identifies a hashing algorithm driver.
// Using a named string type prevents accidental confusion with plain strings.
type DriverName string

const (
	// DriverBcrypt selects the bcrypt driver.
	DriverBcrypt DriverName = "bcrypt"
	// DriverArgon2i selects the Argon2i driver.
	DriverArgon2i DriverName = "argon2i"
	// DriverArgon2id selects the Argon2id driver (recommended for new systems).
	DriverArgon2id DriverName = "argon2id"
	// DriverSha256Crypt selects SHA-256-crypt ("$5$", crypt(3) compatible).
	DriverSha256Crypt DriverName = "sha256crypt"
	// DriverSha512Crypt selects SHA-512-crypt ("$6$", crypt(3) compatible).
	DriverSha512Crypt DriverName = "sha512crypt"
	// DriverPbkdf2Sha1 selects PBKDF2 with HMAC-SHA1.
	DriverPbkdf2Sha1 DriverName = "pbkdf2withhmacsha1"
	// DriverPbkdf2Sha256 selects PBKDF2 with HMAC-SHA256.
	DriverPbkdf2Sha256 DriverName = "pbkdf2withhmacsha256"
	// DriverPbkdf2Sha512 selects PBKDF2 with HMAC-SHA512.
	DriverPbkdf2Sha512 DriverName = "pbkdf2withhmacsha512"
)

// Hasher is the core interface satisfied by all password-hashing drivers.
//
// All implementations must be safe for concurrent use by multiple goroutines.
type Hasher interface {
	// Make hashes a plaintext password and returns the encoded hash string.
	// A fresh cryptographic salt is generated for every call, so two calls
	// with the same password will produce different outputs.
	Make(password string) (string, error)

	// Check verifies that password matches the previously encoded hash.
	// Returns (true, nil) on match, (false, nil) on mismatch, or
	// (false, err) if the hash is structurally invalid.
	//
	// Comparison is performed in constant time to prevent timing attacks.
	Check(password, hash string) (bool, error)

	// NeedsRehash reports whether hash should be replaced by a fresh
	// Make(password).  The password is verified first: a hash that does not
	// verify, or cannot be parsed, never needs a rehash.  For a verified hash
	// the answer is true when its parameters differ from the hasher's current
	// configuration.
	//
	// NeedsRehash never fails; "cannot tell" is reported as false.
	NeedsRehash(password, hash string) bool

	// Info extracts metadata from an encoded hash string without verifying it.
	// Useful for auditing, migration tooling, or logging.
	Info(hash string) (HashInfo, error)

	// Driver returns the DriverName implemented by this hasher.
	Driver() DriverName
}

// HashInfo carries metadata parsed from an encoded hash string.
type HashInfo struct {
	// Driver is the hashing algorithm that produced the hash.
	Driver DriverName

	// Params holds algorithm-specific parameters extracted from the hash string.
	//
	// For bcrypt:
	//   "cost" → int
	//
	// For Argon2i and Argon2id:
	//   "version" → int   (Argon2 version number, typically 19)
	//   "memory"  → uint32 (KiB)
	//   "time"    → uint32 (iterations)
	//   "threads" → uint8  (degree of parallelism)
	//   "key_len" → uint32 (output key length in bytes)
	//
	// For SHA-256-crypt and SHA-512-crypt:
	//   "rounds"          → uint32
	//   "rounds_embedded" → bool
	//   "salt_length"     → int
	//
	// For PBKDF2:
	//   "iterations" → int
	//   "salt_len"   → int
	//   "key_len"    → int
	Params map[string]any
}

// DetectDriver inspects a hash string and returns the [DriverName] that
// produced it.  It is a best-effort heuristic based on the hash prefix and
// does not verify the hash itself.
//
// The second return value is false when the hash format is not recognised.
func DetectDriver(hash string) (DriverName, bool) {
	switch {
	case strings.HasPrefix(hash, "$argon2id$"):
		return DriverArgon2id, true
	case strings.HasPrefix(hash, "$argon2i$"):
		return DriverArgon2i, true
	// bcrypt hashes start with $2a$, $2b$, or $2y$
	case strings.HasPrefix(hash, "$2a$"),
		strings.HasPrefix(hash, "$2b$"),
		strings.HasPrefix(hash, "$2y$"):
		return DriverBcrypt, true
	case strings.HasPrefix(hash, "$5$"):
		return DriverSha256Crypt, true
	case strings.HasPrefix(hash, "$6$"):
		return DriverSha512Crypt, true
	case strings.HasPrefix(hash, "$"+string(DriverPbkdf2Sha1)+"$"):
		return DriverPbkdf2Sha1, true
	case strings.HasPrefix(hash, "$"+string(DriverPbkdf2Sha256)+"$"):
		return DriverPbkdf2Sha256, true
	case strings.HasPrefix(hash, "$"+string(DriverPbkdf2Sha512)+"$"):
		return DriverPbkdf2Sha512, true
	default:
		return "", false
	}
}
