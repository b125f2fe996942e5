// Package config handles configuration for the auth service. Values come
// from the environment; required variables fail startup instead of first use.
package config

import (
	"time"

	"github.com/dkravets/video2mp3/internal/envx"
)

// Config holds runtime settings for the auth service.
//
// Fields:
//   - Addr: bind address for the HTTP endpoint.
//   - DatabaseDSN: PostgreSQL DSN for the user store (pgx).
//   - JWTSecret: HMAC secret for signing tokens (HS256). Never logged.
//   - TokenTTL: lifetime of issued tokens. Expiry is the only revocation
//     mechanism, so shortening it is the knob for tightening exposure.
//   - PasswordMatcher: "plaintext" (legacy user table) or "bcrypt".
//   - ReadTimeout / WriteTimeout: HTTP server I/O bounds.
type Config struct {
	Addr            string
	DatabaseDSN     string
	JWTSecret       string
	TokenTTL        time.Duration
	PasswordMatcher string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
}

// Load reads the configuration from the environment. It returns an error
// naming every missing required variable.
func Load() (*Config, error) {
	var r envx.Reader

	cfg := &Config{
		Addr:            r.Get("AUTH_ADDR", ":5000"),
		DatabaseDSN:     r.Required("DATABASE_DSN"),
		JWTSecret:       r.Required("JWT_SECRET"),
		TokenTTL:        r.Duration("TOKEN_TTL", 24*time.Hour),
		PasswordMatcher: r.Get("PASSWORD_MATCHER", "plaintext"),
		ReadTimeout:     r.Duration("HTTP_READ_TIMEOUT", 10*time.Second),
		WriteTimeout:    r.Duration("HTTP_WRITE_TIMEOUT", 10*time.Second),
	}

	if err := r.Err(); err != nil {
		return nil, err
	}

	return cfg, nil
}
