// Package logger builds the zap logger used by pwhash and masks hash
// material before it is logged.
package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a zap.Logger for the given environment and level.  Production
// logs JSON to stderr; any other environment uses the colourised console
// encoder.  An unparseable level falls back to info.
func New(env, level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if env != "production" {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	return cfg.Build()
}

// MaskHash keeps the parameter segments of an encoded password hash and
// masks the salt and digest, so hashes can be logged without handing out
// material for offline attacks.
// Example: $6$rounds=10000$saltstring$abc... -> $6$rounds=10000$sa***$***
func MaskHash(hash string) string {
	if hash == "" {
		return ""
	}
	if !strings.HasPrefix(hash, "$") {
		return "***"
	}

	parts := strings.Split(hash, "$")
	if len(parts) < 4 {
		return "$" + parts[1] + "$***"
	}

	// parts[len-1] is the digest, parts[len-2] the salt.
	n := len(parts)
	parts[n-2] = MaskString(parts[n-2])
	parts[n-1] = "***"
	return strings.Join(parts, "$")
}

// MaskString generic masking for arbitrary sensitive strings
// Shows first 2 characters with *** after them
// Example: "saltstring" -> "sa***"
func MaskString(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 4 {
		return "***"
	}
	return s[:2] + "***"
}
