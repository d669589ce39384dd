package shacrypt

import "fmt"

// Wire order of the digest bytes. Each consecutive triple is one b64 group,
// least-significant byte first. Copied from the SHA-crypt reference; do not
// edit.
var (
	sha256Order = [sha256Len]uint8{
		20, 10, 0, 11, 1, 21, 2, 22, 12, 23, 13, 3, 14, 4, 24, 5, 25, 15,
		26, 16, 6, 17, 7, 27, 8, 28, 18, 29, 19, 9, 30, 31,
	}
	sha512Order = [sha512Len]uint8{
		42, 21, 0, 1, 43, 22, 23, 2, 44, 45, 24, 3, 4, 46, 25, 26, 5, 47,
		48, 27, 6, 7, 49, 28, 29, 8, 50, 51, 30, 9, 10, 52, 31, 32, 11, 53,
		54, 33, 12, 13, 55, 34, 35, 14, 56, 57, 36, 15, 16, 58, 37, 38, 17, 59,
		60, 39, 18, 19, 61, 40, 41, 20, 62, 63,
	}
)

const (
	sha256Len = 32
	sha512Len = 64
)

func (v Variant) order() []uint8 {
	switch v {
	case SHA256:
		return sha256Order[:]
	case SHA512:
		return sha512Order[:]
	default:
		return nil
	}
}

// Shuffle permutes digest into wire order and zero-pads it to a multiple of
// three bytes: 33 bytes for SHA-256 and 66 for SHA-512. It panics if digest
// is not exactly v.Size() bytes.
func Shuffle(digest []byte, v Variant) []byte {
	order := v.order()
	if order == nil || len(digest) != len(order) {
		panic(fmt.Sprintf("shacrypt: shuffle of %d-byte digest for %s", len(digest), v))
	}
	out := make([]byte, v.paddedLen())
	for i, j := range order {
		out[i] = digest[j]
	}
	return out
}
