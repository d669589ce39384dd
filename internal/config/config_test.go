package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hasbyte1/go-pwhash/hashing"
	"github.com/hasbyte1/go-pwhash/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.App.Env != "development" {
		t.Errorf("app.env = %q, want development", cfg.App.Env)
	}
	if cfg.Hashing.Driver != string(hashing.DriverArgon2id) {
		t.Errorf("hashing.driver = %q, want argon2id", cfg.Hashing.Driver)
	}
	if cfg.Bcrypt.Cost != hashing.DefaultBcryptCost {
		t.Errorf("bcrypt.cost = %d", cfg.Bcrypt.Cost)
	}
	if cfg.Argon2.Memory != hashing.DefaultArgon2Memory || cfg.Argon2.Threads != hashing.DefaultArgon2Threads {
		t.Errorf("unexpected argon2 settings: %+v", cfg.Argon2)
	}
	if cfg.ShaCrypt.Rounds != 5000 || cfg.ShaCrypt.SaltLength != 16 || cfg.ShaCrypt.EmbedRounds {
		t.Errorf("unexpected shacrypt settings: %+v", cfg.ShaCrypt)
	}
	if cfg.Pbkdf2.Iterations != hashing.DefaultPbkdf2Iterations || cfg.Pbkdf2.KeyLen != 0 {
		t.Errorf("unexpected pbkdf2 settings: %+v", cfg.Pbkdf2)
	}
	if cfg.Metrics.Textfile != "" {
		t.Errorf("metrics.textfile = %q, want empty", cfg.Metrics.Textfile)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PWHASH_HASHING_DRIVER", "sha512crypt")
	t.Setenv("PWHASH_SHACRYPT_ROUNDS", "10000")
	t.Setenv("PWHASH_SHACRYPT_EMBED_ROUNDS", "true")
	t.Setenv("PWHASH_ARGON2_THREADS", "1")

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Hashing.Driver != "sha512crypt" {
		t.Errorf("hashing.driver = %q", cfg.Hashing.Driver)
	}
	if cfg.ShaCrypt.Rounds != 10000 || !cfg.ShaCrypt.EmbedRounds {
		t.Errorf("unexpected shacrypt settings: %+v", cfg.ShaCrypt)
	}
	if cfg.Argon2.Threads != 1 {
		t.Errorf("argon2.threads = %d, want 1", cfg.Argon2.Threads)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pwhash.yaml")
	body := []byte("app:\n  env: production\nhashing:\n  driver: bcrypt\nbcrypt:\n  cost: 10\npbkdf2:\n  iterations: 1000\n")
	if err := os.WriteFile(path, body, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.App.Env != "production" || cfg.Hashing.Driver != "bcrypt" || cfg.Bcrypt.Cost != 10 {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.Pbkdf2.Iterations != 1000 {
		t.Errorf("pbkdf2.iterations = %d, want 1000", cfg.Pbkdf2.Iterations)
	}
	// Keys missing from the file keep their defaults.
	if cfg.ShaCrypt.Rounds != 5000 {
		t.Errorf("shacrypt.rounds = %d, want 5000", cfg.ShaCrypt.Rounds)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

// fastConfig returns defaults with cheap work factors.
func fastConfig(t *testing.T) *config.AppConfig {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg.Bcrypt.Cost = 4
	cfg.Argon2.Memory = 16
	cfg.Argon2.Time = 1
	cfg.Argon2.Threads = 2
	cfg.Pbkdf2.Iterations = 10
	return cfg
}

func TestBuildManager(t *testing.T) {
	cfg := fastConfig(t)
	cfg.Hashing.Driver = string(hashing.DriverSha256Crypt)
	cfg.ShaCrypt.Rounds = 2000

	m, err := config.BuildManager(cfg)
	if err != nil {
		t.Fatalf("BuildManager: %v", err)
	}
	if m.DefaultDriver() != hashing.DriverSha256Crypt {
		t.Errorf("default driver = %q", m.DefaultDriver())
	}
	for _, d := range config.Drivers {
		if !m.HasDriver(d) {
			t.Errorf("driver %q not registered", d)
		}
	}

	hash, err := m.Make("pw")
	if err != nil {
		t.Fatalf("Make: %v", err)
	}
	info, err := m.InfoWithDetect(hash)
	if err != nil {
		t.Fatalf("InfoWithDetect: %v", err)
	}
	if info.Params["rounds"] != uint32(2000) {
		t.Errorf("rounds = %v, want 2000", info.Params["rounds"])
	}
}

func TestBuildManagerErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.AppConfig)
		want   error
	}{
		{"unknown driver", func(c *config.AppConfig) { c.Hashing.Driver = "md5" }, hashing.ErrDriverNotFound},
		{"bcrypt cost", func(c *config.AppConfig) { c.Bcrypt.Cost = 2 }, hashing.ErrInvalidOption},
		{"argon2 threads", func(c *config.AppConfig) { c.Argon2.Threads = 0 }, hashing.ErrInvalidOption},
		{"pbkdf2 iterations", func(c *config.AppConfig) { c.Pbkdf2.Iterations = 0 }, hashing.ErrInvalidOption},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := fastConfig(t)
			tt.mutate(cfg)
			if _, err := config.BuildManager(cfg); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}
