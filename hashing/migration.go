package hashing

// MigrationHasher moves users from a legacy algorithm to a new one as they
// log in.
//
// New hashes are always produced by the new hasher.  Stored hashes verify
// against either hasher, and any hash the legacy hasher accepts is reported
// by NeedsRehash, so it is replaced on the user's next successful login:
//
//	legacy := hashing.NewSha512CryptHasher(hashing.DefaultShaCryptOptions())
//	modern, _ := hashing.NewArgon2idHasher(hashing.DefaultArgon2Options())
//	h, _ := hashing.NewMigrationHasher(legacy, modern)
//
//	if ok, _ := h.Check(password, stored); ok && h.NeedsRehash(password, stored) {
//	    stored, _ = h.Make(password)
//	}
//
// # Thread safety
//
// MigrationHasher is safe for concurrent use when both wrapped hashers are.
type MigrationHasher struct {
	old Hasher
	new Hasher
}

// NewMigrationHasher returns a MigrationHasher that verifies against old and
// new and hashes with new.  Either argument being nil yields [ErrNilHasher].
func NewMigrationHasher(old, new Hasher) (*MigrationHasher, error) {
	if old == nil || new == nil {
		return nil, ErrNilHasher
	}
	return &MigrationHasher{old: old, new: new}, nil
}

// Driver returns the driver of the new hasher.
func (h *MigrationHasher) Driver() DriverName { return h.new.Driver() }

// Make hashes password with the new hasher.
func (h *MigrationHasher) Make(password string) (string, error) {
	return h.new.Make(password)
}

// Check reports whether password matches hash under either hasher.  A parse
// failure in one hasher counts as a mismatch; an error is returned only when
// neither hasher can parse hash, in which case it is the new hasher's error.
func (h *MigrationHasher) Check(password, hash string) (bool, error) {
	ok, oldErr := h.old.Check(password, hash)
	if oldErr == nil && ok {
		return true, nil
	}
	ok, err := h.new.Check(password, hash)
	if err != nil {
		if oldErr == nil {
			return false, nil
		}
		return false, err
	}
	return ok, nil
}

// NeedsRehash returns true when password verifies against the legacy
// hasher, or when it verifies against the new hasher and the new hasher
// reports its parameters as outdated.
func (h *MigrationHasher) NeedsRehash(password, hash string) bool {
	if ok, err := h.old.Check(password, hash); err == nil && ok {
		return true
	}
	if ok, err := h.new.Check(password, hash); err != nil || !ok {
		return false
	}
	return h.new.NeedsRehash(password, hash)
}

// Info describes hash using whichever hasher can parse it, trying the new
// hasher first.
func (h *MigrationHasher) Info(hash string) (HashInfo, error) {
	info, err := h.new.Info(hash)
	if err == nil {
		return info, nil
	}
	if info, oldErr := h.old.Info(hash); oldErr == nil {
		return info, nil
	}
	return HashInfo{}, err
}
