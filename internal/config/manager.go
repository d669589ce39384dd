package config

import (
	"fmt"

	"github.com/hasbyte1/go-pwhash/hashing"
)

// BuildManager returns a Manager with every built-in driver configured from
// cfg and cfg.Hashing.Driver as its default.
func BuildManager(cfg *AppConfig) (*hashing.Manager, error) {
	bcryptH, err := hashing.NewBcryptHasher(hashing.BcryptOptions{Cost: cfg.Bcrypt.Cost})
	if err != nil {
		return nil, fmt.Errorf("bcrypt: %w", err)
	}

	argon2Opts := hashing.Argon2Options{
		Memory:  cfg.Argon2.Memory,
		Time:    cfg.Argon2.Time,
		Threads: cfg.Argon2.Threads,
		KeyLen:  cfg.Argon2.KeyLen,
		SaltLen: cfg.Argon2.SaltLen,
	}
	argon2iH, err := hashing.NewArgon2iHasher(argon2Opts)
	if err != nil {
		return nil, fmt.Errorf("argon2i: %w", err)
	}
	argon2idH, err := hashing.NewArgon2idHasher(argon2Opts)
	if err != nil {
		return nil, fmt.Errorf("argon2id: %w", err)
	}

	shaOpts := hashing.ShaCryptOptions{
		Rounds:      cfg.ShaCrypt.Rounds,
		SaltLength:  cfg.ShaCrypt.SaltLength,
		EmbedRounds: cfg.ShaCrypt.EmbedRounds,
	}

	m := hashing.NewManager(hashing.DriverName(cfg.Hashing.Driver))
	_ = m.RegisterDriver(hashing.DriverBcrypt, bcryptH)
	_ = m.RegisterDriver(hashing.DriverArgon2i, argon2iH)
	_ = m.RegisterDriver(hashing.DriverArgon2id, argon2idH)
	_ = m.RegisterDriver(hashing.DriverSha256Crypt, hashing.NewSha256CryptHasher(shaOpts))
	_ = m.RegisterDriver(hashing.DriverSha512Crypt, hashing.NewSha512CryptHasher(shaOpts))

	pbkdf2Opts := hashing.Pbkdf2Options{
		Iterations: cfg.Pbkdf2.Iterations,
		SaltLen:    cfg.Pbkdf2.SaltLen,
		KeyLen:     cfg.Pbkdf2.KeyLen,
	}
	for _, d := range []hashing.DriverName{hashing.DriverPbkdf2Sha1, hashing.DriverPbkdf2Sha256, hashing.DriverPbkdf2Sha512} {
		h, err := hashing.NewPbkdf2Hasher(d, pbkdf2Opts)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", d, err)
		}
		_ = m.RegisterDriver(d, h)
	}

	if err := m.SetDefaultDriver(m.DefaultDriver()); err != nil {
		return nil, fmt.Errorf("hashing.driver: %w", err)
	}
	return m, nil
}

// Drivers lists the drivers BuildManager registers.
var Drivers = []hashing.DriverName{
	hashing.DriverBcrypt,
	hashing.DriverArgon2i,
	hashing.DriverArgon2id,
	hashing.DriverSha256Crypt,
	hashing.DriverSha512Crypt,
	hashing.DriverPbkdf2Sha1,
	hashing.DriverPbkdf2Sha256,
	hashing.DriverPbkdf2Sha512,
}
