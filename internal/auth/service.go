// Package auth implements credential verification, token issuance and token
// validation for the conversion pipeline.
package auth

import (
	"context"
	"time"

	"github.com/dkravets/video2mp3/internal/auth/token"
)

// Service exposes the two authentication operations. It is stateless aside
// from the signing secret loaded once at startup, so concurrent requests
// need no coordination.
type Service struct {
	verifier *Verifier
	secret   []byte
	tokenTTL time.Duration
}

func NewService(verifier *Verifier, secret []byte, tokenTTL time.Duration) *Service {
	return &Service{verifier: verifier, secret: secret, tokenTTL: tokenTTL}
}

// Login verifies the credentials and issues a signed token whose expiry is
// tokenTTL after issuance.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {

	identity, err := s.verifier.Verify(ctx, username, password)
	if err != nil {
		return "", err
	}

	claims := token.NewClaims(identity.Username, identity.Admin, time.Now(), s.tokenTTL)
	return token.Encode(claims, s.secret)
}

// Validate decodes tokenString and returns its claims verbatim. The store is
// not consulted: a valid signature plus unexpired timestamps is the whole
// contract of a stateless token.
func (s *Service) Validate(ctx context.Context, tokenString string) (*token.Claims, error) {
	return token.Decode(tokenString, s.secret)
}
