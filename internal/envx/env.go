// Package envx reads configuration values from the process environment.
//
// A Reader collects the names of required variables that are absent so a
// service can report every missing setting at startup in one error instead
// of failing at first use.
package envx

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Reader struct {
	missing []string
}

// Required returns the value of key. An unset or empty variable is recorded
// and surfaced later by Err.
func (r *Reader) Required(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		r.missing = append(r.missing, key)
		return ""
	}
	return v
}

// Get returns the value of key or fallback when the variable is unset or empty.
func (r *Reader) Get(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

// Int returns the value of key parsed as an integer, or fallback when the
// variable is unset or not a valid integer.
func (r *Reader) Int(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// Duration returns the value of key parsed with time.ParseDuration
// (e.g. "30s", "24h"), or fallback when unset or unparsable.
func (r *Reader) Duration(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

// Err reports all required variables that were missing, or nil.
func (r *Reader) Err() error {
	if len(r.missing) == 0 {
		return nil
	}
	return fmt.Errorf("missing required environment variables: %s", strings.Join(r.missing, ", "))
}
