package shacrypt

import "errors"

var (
	// ErrMalformedHash is returned by [Parse] when the hash string has the
	// wrong number of segments, a malformed rounds segment, or a salt that
	// contains characters outside the crypt alphabet.
	ErrMalformedHash = errors.New("shacrypt: malformed hash string")

	// ErrWrongVariant is returned by [Parse] when the identifier segment does
	// not match the expected [Variant].
	ErrWrongVariant = errors.New("shacrypt: hash identifier does not match variant")

	// ErrInvalidDigestLength is returned by [Parse] when the digest segment
	// does not have the length required by the variant.
	ErrInvalidDigestLength = errors.New("shacrypt: invalid digest length")
)
