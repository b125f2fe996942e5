package auth

import (
	"crypto/subtle"

	"github.com/dkravets/video2mp3/internal/users"
	"golang.org/x/crypto/bcrypt"
)

// PasswordMatcher decides whether a supplied password matches the stored
// credential. It is an explicit policy object so the comparison scheme is
// visible configuration, not an accident of control flow.
type PasswordMatcher interface {
	Match(stored, supplied string) bool
}

// PlaintextMatcher compares the supplied password directly against the
// stored value in constant time. This reproduces the legacy user table,
// which stores passwords in the clear. Run with MatcherBcrypt once the
// table is rehashed.
type PlaintextMatcher struct{}

func (PlaintextMatcher) Match(stored, supplied string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(supplied)) == 1
}

// BcryptMatcher treats the stored value as a bcrypt hash.
type BcryptMatcher struct{}

func (BcryptMatcher) Match(stored, supplied string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(supplied)) == nil
}

// Password matcher names accepted in configuration.
const (
	MatcherPlaintext = "plaintext"
	MatcherBcrypt    = "bcrypt"
)

// NewPasswordMatcher maps a configured matcher name to its implementation.
// Unknown names fall back to bcrypt, the safer of the two.
func NewPasswordMatcher(name string) PasswordMatcher {
	if name == MatcherPlaintext {
		return PlaintextMatcher{}
	}
	return BcryptMatcher{}
}

// RoleAssigner decides the admin flag carried in issued tokens.
type RoleAssigner interface {
	Admin(user *users.User) bool
}

// EveryoneAdmin grants the admin role to every authenticated user. The
// legacy service issued every token with admin=true; keeping that behavior
// is a named policy here so it can be swapped out without touching the
// login flow.
type EveryoneAdmin struct{}

func (EveryoneAdmin) Admin(*users.User) bool { return true }
