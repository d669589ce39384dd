package shacrypt

// Round limits and default, as in glibc crypt(3).
const (
	DefaultRounds uint32 = 5000
	MinRounds     uint32 = 1000
	MaxRounds     uint32 = 999_999_999
)

// ClampRounds returns rounds limited to [MinRounds, MaxRounds].
func ClampRounds(rounds uint32) uint32 {
	switch {
	case rounds < MinRounds:
		return MinRounds
	case rounds > MaxRounds:
		return MaxRounds
	default:
		return rounds
	}
}

// Mix runs the SHA-crypt digest computation over password and salt and
// returns the final digest C, before shuffling. rounds is clamped with
// [ClampRounds]. The result is v.Size() bytes long.
//
// Salt is used as given; callers truncate it to MaxSaltLength.
func Mix(password, salt []byte, rounds uint32, v Variant) []byte {
	rounds = ClampRounds(rounds)
	size := v.Size()

	// Digest B: password, salt, password.
	b := v.New()
	b.Write(password)
	b.Write(salt)
	b.Write(password)
	bSum := b.Sum(nil)

	// Digest A: password, salt, then len(password) bytes of B, then one
	// B or password per bit of len(password).
	a := v.New()
	a.Write(password)
	a.Write(salt)
	n := len(password)
	for ; n > size; n -= size {
		a.Write(bSum)
	}
	a.Write(bSum[:n])
	for n = len(password); n > 0; n >>= 1 {
		if n&1 != 0 {
			a.Write(bSum)
		} else {
			a.Write(password)
		}
	}
	aSum := a.Sum(nil)

	// Digest DP and the P sequence.
	dp := v.New()
	for i := 0; i < len(password); i++ {
		dp.Write(password)
	}
	p := tile(dp.Sum(nil), len(password))

	// Digest DS and the S sequence. A[0] is the repeat count modifier.
	ds := v.New()
	for i := 0; i < 16+int(aSum[0]); i++ {
		ds.Write(salt)
	}
	s := tile(ds.Sum(nil), len(salt))

	c := v.New()
	cSum := aSum
	for i := uint32(0); i < rounds; i++ {
		c.Reset()
		if i&1 != 0 {
			c.Write(p)
		} else {
			c.Write(cSum)
		}
		if i%3 != 0 {
			c.Write(s)
		}
		if i%7 != 0 {
			c.Write(p)
		}
		if i&1 != 0 {
			c.Write(cSum)
		} else {
			c.Write(p)
		}
		cSum = c.Sum(cSum[:0])
	}

	clear(p)
	clear(s)
	return cSum
}

// tile returns n bytes made of whole copies of src followed by a prefix of
// src.
func tile(src []byte, n int) []byte {
	out := make([]byte, n)
	for off := 0; off < n; off += len(src) {
		copy(out[off:], src)
	}
	return out
}
