package auth

import (
	"context"
	"errors"

	"github.com/dkravets/video2mp3/internal/shared"
	"github.com/dkravets/video2mp3/internal/users"
)

// Identity is the authenticated principal derived from verified credentials.
type Identity struct {
	Username string
	Admin    bool
}

// Verifier checks a username/password pair against the user store.
type Verifier struct {
	repo    users.Repository
	matcher PasswordMatcher
	roles   RoleAssigner
}

func NewVerifier(repo users.Repository, matcher PasswordMatcher, roles RoleAssigner) *Verifier {
	return &Verifier{repo: repo, matcher: matcher, roles: roles}
}

// Verify looks the user up and compares the password under the configured
// matcher. An unknown user and a wrong password both come back wrapping
// shared.ErrInvalidCredentials so callers cannot tell them apart; a
// transient store error surfaces as-is and is never masked as a rejection.
func (v *Verifier) Verify(ctx context.Context, username, password string) (Identity, error) {

	user, err := v.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, shared.ErrorNotFound) {
			return Identity{}, shared.ErrUserNotFound
		}
		return Identity{}, err
	}

	if !v.matcher.Match(user.Password, password) {
		return Identity{}, shared.ErrPasswordMismatch
	}

	return Identity{Username: user.Email, Admin: v.roles.Admin(user)}, nil
}
