// Package config loads pwhash settings from defaults, a config file and the
// environment.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/hasbyte1/go-pwhash/hashing"
	"github.com/hasbyte1/go-pwhash/shacrypt"
)

const envPrefix = "PWHASH"

// AppConfig is the full pwhash configuration.
type AppConfig struct {
	App      AppSettings      `mapstructure:"app"`
	Hashing  HashingSettings  `mapstructure:"hashing"`
	Bcrypt   BcryptSettings   `mapstructure:"bcrypt"`
	Argon2   Argon2Settings   `mapstructure:"argon2"`
	ShaCrypt ShaCryptSettings `mapstructure:"shacrypt"`
	Pbkdf2   Pbkdf2Settings   `mapstructure:"pbkdf2"`
	Metrics  MetricsSettings  `mapstructure:"metrics"`
}

// AppSettings selects the logging environment and level.
type AppSettings struct {
	Env      string `mapstructure:"env"`
	LogLevel string `mapstructure:"log_level"`
}

// HashingSettings selects the driver new hashes are produced with.
type HashingSettings struct {
	Driver string `mapstructure:"driver"`
}

// BcryptSettings configures the bcrypt driver.
type BcryptSettings struct {
	Cost int `mapstructure:"cost"`
}

// Argon2Settings configures both Argon2 variants.
type Argon2Settings struct {
	Memory  uint32 `mapstructure:"memory"`
	Time    uint32 `mapstructure:"time"`
	Threads uint8  `mapstructure:"threads"`
	KeyLen  uint32 `mapstructure:"key_len"`
	SaltLen uint32 `mapstructure:"salt_len"`
}

// ShaCryptSettings configures SHA-256-crypt and SHA-512-crypt.
type ShaCryptSettings struct {
	Rounds      uint32 `mapstructure:"rounds"`
	SaltLength  int    `mapstructure:"salt_length"`
	EmbedRounds bool   `mapstructure:"embed_rounds"`
}

// Pbkdf2Settings configures the PBKDF2 drivers.  A zero KeyLen means the
// output size of the underlying hash.
type Pbkdf2Settings struct {
	Iterations int `mapstructure:"iterations"`
	SaltLen    int `mapstructure:"salt_len"`
	KeyLen     int `mapstructure:"key_len"`
}

// MetricsSettings configures the Prometheus text file written on exit.
// An empty Textfile disables it.
type MetricsSettings struct {
	Textfile string `mapstructure:"textfile"`
}

var keys = []string{
	"app.env",
	"app.log_level",
	"hashing.driver",
	"bcrypt.cost",
	"argon2.memory",
	"argon2.time",
	"argon2.threads",
	"argon2.key_len",
	"argon2.salt_len",
	"shacrypt.rounds",
	"shacrypt.salt_length",
	"shacrypt.embed_rounds",
	"pbkdf2.iterations",
	"pbkdf2.salt_len",
	"pbkdf2.key_len",
	"metrics.textfile",
}

// Load reads configuration from defaults, the optional file at path, and
// PWHASH_-prefixed environment variables, in increasing precedence.
func Load(path string) (*AppConfig, error) {
	v := viper.New()

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix(envPrefix)

	setDefaults(v)

	if err := bindEnvs(v, keys); err != nil {
		return nil, err
	}

	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("hashing.driver", string(hashing.DriverArgon2id))

	v.SetDefault("bcrypt.cost", hashing.DefaultBcryptCost)

	v.SetDefault("argon2.memory", hashing.DefaultArgon2Memory)
	v.SetDefault("argon2.time", hashing.DefaultArgon2Time)
	v.SetDefault("argon2.threads", hashing.DefaultArgon2Threads)
	v.SetDefault("argon2.key_len", hashing.DefaultArgon2KeyLen)
	v.SetDefault("argon2.salt_len", hashing.DefaultArgon2SaltLen)

	v.SetDefault("shacrypt.rounds", shacrypt.DefaultRounds)
	v.SetDefault("shacrypt.salt_length", shacrypt.DefaultSaltLength)
	v.SetDefault("shacrypt.embed_rounds", false)

	v.SetDefault("pbkdf2.iterations", hashing.DefaultPbkdf2Iterations)
	v.SetDefault("pbkdf2.salt_len", hashing.DefaultPbkdf2SaltLen)
	v.SetDefault("pbkdf2.key_len", 0)

	v.SetDefault("metrics.textfile", "")
}

func bindEnvs(v *viper.Viper, keys []string) error {
	for _, key := range keys {
		envKey := strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, envPrefix+"_"+envKey); err != nil {
			return fmt.Errorf("bind env for %s: %w", key, err)
		}
	}
	return nil
}
