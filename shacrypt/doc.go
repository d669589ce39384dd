// Package shacrypt implements Ulrich Drepper's SHA-crypt password hashing
// scheme, the "$5$" (SHA-256) and "$6$" (SHA-512) formats of crypt(3).
//
// # Hash string format
//
//	$5$rounds=10000$saltstringsaltst$3xv.VbSHBb41AL9AvLeujZkZRBAwqFMz2.opqey6IcA
//	$6$saltstring$svn8UoSVapNtMuq1ukKS4tPQd8iKwSMHWjl/O817G3uBnIFNjnQJuesI68u4OTLiBFdcbYEdFCoEOfaS35inz1
//
// The rounds segment is optional; when it is absent the default of 5000
// rounds applies. Salts are at most 16 characters from the crypt alphabet
// (see package b64). The digest is 43 characters for SHA-256 and 86 for
// SHA-512.
//
// # Layers
//
//   - [Mix] runs the digest mixing rounds and returns the raw digest.
//   - [Shuffle] reorders the digest into its wire order.
//   - [Format] and [Parse] convert between hash strings and [EncodedHash].
//   - [Hash], [Verify] and [NeedsRehash] combine the above with a [Config].
//
// All functions are safe for concurrent use. The only shared resource is the
// random source handed to [Hash], which must itself be safe for concurrent
// use; crypto/rand.Reader is.
//
// SHA-crypt is supported for compatibility with existing system password
// databases. Prefer Argon2id for new deployments.
package shacrypt
