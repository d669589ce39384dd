package shacrypt

import (
	"crypto/sha256"
	"crypto/sha512"
	"hash"
)

// Variant selects the SHA-2 function underlying a SHA-crypt hash.
type Variant uint8

const (
	// SHA256 is SHA-256-crypt, identifier "5".
	SHA256 Variant = iota + 1
	// SHA512 is SHA-512-crypt, identifier "6".
	SHA512
)

// VariantByID returns the Variant whose identifier is id ("5" or "6").
func VariantByID(id string) (Variant, bool) {
	switch id {
	case "5":
		return SHA256, true
	case "6":
		return SHA512, true
	default:
		return 0, false
	}
}

// ID returns the identifier written between the first two '$' of a hash.
func (v Variant) ID() string {
	switch v {
	case SHA256:
		return "5"
	case SHA512:
		return "6"
	default:
		return ""
	}
}

// Prefix returns "$<id>$".
func (v Variant) Prefix() string { return "$" + v.ID() + "$" }

// String implements fmt.Stringer.
func (v Variant) String() string {
	switch v {
	case SHA256:
		return "sha256-crypt"
	case SHA512:
		return "sha512-crypt"
	default:
		return "unknown"
	}
}

// Valid reports whether v is one of the defined variants.
func (v Variant) Valid() bool { return v == SHA256 || v == SHA512 }

// Size returns the digest size in bytes. SHA-crypt uses it as the block size
// when tiling the P and S sequences as well.
func (v Variant) Size() int {
	switch v {
	case SHA256:
		return sha256.Size
	case SHA512:
		return sha512.Size
	default:
		return 0
	}
}

// New returns a fresh hash.Hash for the variant. It panics on an undefined
// variant.
func (v Variant) New() hash.Hash {
	switch v {
	case SHA256:
		return sha256.New()
	case SHA512:
		return sha512.New()
	default:
		panic("shacrypt: undefined variant " + v.String())
	}
}

// EncodedDigestLen returns the number of b64 characters in the digest
// segment: 43 for SHA-256, 86 for SHA-512.
func (v Variant) EncodedDigestLen() int { return (v.Size()*8 + 5) / 6 }

// paddedLen is the shuffled digest size rounded up to whole 3-byte groups.
func (v Variant) paddedLen() int { return (v.Size() + 2) / 3 * 3 }
