// Package hashing provides pluggable password hashing behind a single
// [Hasher] interface.
//
// # Architecture
//
// Every driver implements [Hasher]:
//
//   - [BcryptHasher]: bcrypt ("$2y$"), widest ecosystem support.
//   - [Argon2iHasher] / [Argon2idHasher]: Argon2 in PHC format; Argon2id is
//     recommended for new systems.
//   - [ShaCryptHasher]: SHA-256-crypt ("$5$") and SHA-512-crypt ("$6$"),
//     compatible with glibc crypt(3) and /etc/shadow.
//   - [Pbkdf2Hasher]: PBKDF2 over HMAC-SHA1/256/512.
//
// [MigrationHasher] pairs a legacy hasher with its replacement: it verifies
// against both and reports every legacy hash as needing a rehash.
//
// The [Manager] is a named driver registry and dispatcher.  Register one or
// more [Hasher] implementations, designate a default driver, then delegate
// hashing operations through the [Manager].
//
// # Quick start
//
//	m, err := hashing.NewDefaultManager() // Argon2id default, all drivers registered
//	if err != nil { log.Fatal(err) }
//
//	hash, _ := m.Make("my-secret-password")
//	ok, _   := m.Check("my-secret-password", hash) // true
//
// # Security defaults
//
//   - bcrypt:  cost 12.
//   - Argon2id: m=64 MiB, t=3 iterations, p=2 threads, 32-byte key.
//   - SHA-crypt: 5000 rounds, 16 character salt (the crypt(3) defaults).
//   - PBKDF2: 20000 iterations, 16-byte salt, key as long as the hash output.
//
// # Rehashing on login
//
// NeedsRehash takes the plaintext as well as the stored hash.  A hash is only
// reported as stale once the password has been verified against it, so a
// caller can never be told to replace a hash with one built from a wrong
// password:
//
//	ok, _ := m.CheckWithDetect(password, storedHash)
//	if ok && m.NeedsRehash(password, storedHash) {
//	    newHash, _ := m.Make(password)
//	    persist(userID, newHash)
//	}
//
// # Hash formats
//
// All parameters are self-contained in the encoded string, so no external
// configuration is needed to verify a previously produced hash:
//
//	$argon2id$v=19$m=65536,t=3,p=2$<base64-salt>$<base64-hash>
//	$6$rounds=10000$<salt>$<crypt-b64-digest>
//	$pbkdf2withhmacsha256$iterations=20000$<base64-salt>$<base64-key>
package hashing
