package shacrypt_test

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/hasbyte1/go-pwhash/shacrypt"
)

// FuzzParse ensures Parse never panics and that anything it accepts survives
// a String/Parse round trip unchanged.
//
// Run with: go test -fuzz=FuzzParse ./shacrypt/
func FuzzParse(f *testing.F) {
	for _, v := range sha256Vectors {
		f.Add(v.hash)
	}
	for _, v := range sha512Vectors {
		f.Add(v.hash)
	}
	f.Add("")
	f.Add("$5$")
	f.Add("$6$rounds=$salt$")
	f.Add("$5$rounds=18446744073709551616$salt$" + string(bytes.Repeat([]byte{'z'}, 43)))

	f.Fuzz(func(t *testing.T, encoded string) {
		for _, v := range []shacrypt.Variant{shacrypt.SHA256, shacrypt.SHA512} {
			h, err := shacrypt.Parse(encoded, v)
			if err != nil {
				continue
			}
			again, err := shacrypt.Parse(h.String(), v)
			if err != nil {
				t.Fatalf("re-parse of %q (from %q) failed: %v", h.String(), encoded, err)
			}
			if again.Rounds != h.Rounds || again.RoundsEmbedded != h.RoundsEmbedded ||
				!bytes.Equal(again.Salt, h.Salt) || !bytes.Equal(again.Digest, h.Digest) {
				t.Fatalf("round trip of %q changed fields: %+v -> %+v", encoded, h, again)
			}
		}
	})
}

// FuzzHashVerify checks that a fresh hash always verifies, with the minimum
// round count to keep iterations fast.
func FuzzHashVerify(f *testing.F) {
	f.Add([]byte(""), true)
	f.Add([]byte("Hello world!"), false)
	f.Add([]byte{0x00, 0xff, 0x80}, true)

	f.Fuzz(func(t *testing.T, password []byte, sha512 bool) {
		v := shacrypt.SHA256
		if sha512 {
			v = shacrypt.SHA512
		}
		cfg := shacrypt.NewConfig(v, shacrypt.MinRounds, shacrypt.DefaultSaltLength, false)
		encoded, err := shacrypt.Hash(rand.Reader, cfg, password)
		if err != nil {
			t.Fatalf("Hash: %v", err)
		}
		ok, err := shacrypt.Verify(v, password, encoded)
		if err != nil || !ok {
			t.Fatalf("Verify(%q): ok=%v err=%v", encoded, ok, err)
		}
	})
}
