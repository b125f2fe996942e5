// Package token encodes and decodes the signed authorization token.
//
// A token is self-contained: its validity is fully determined by its own
// claims plus the HS256 signature, so no server-side session state exists
// and no revocation is possible before expiry.
package token

import (
	"errors"
	"time"

	"github.com/dkravets/video2mp3/internal/shared"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the token payload. The JSON field names are the wire contract
// consumed by the gateway and returned verbatim from /validate.
type Claims struct {
	Username string `json:"username"`
	Admin    bool   `json:"admin"`
	jwt.RegisteredClaims
}

// NewClaims builds claims for username issued at now and expiring after ttl.
func NewClaims(username string, admin bool, now time.Time, ttl time.Duration) Claims {
	return Claims{
		Username: username,
		Admin:    admin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}

// Encode signs claims with secret using HS256.
func Encode(claims Claims, secret []byte) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secret)
}

// Decode verifies tokenString against secret and returns its claims.
//
// Failures are distinguishable with errors.Is:
//   - shared.ErrTokenExpired when exp is in the past
//   - shared.ErrSignatureInvalid when the signature does not match secret
//   - shared.ErrTokenMalformed when the token cannot be parsed at all
func Decode(tokenString string, secret []byte) (*Claims, error) {
	claims := &Claims{}

	t, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, shared.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, shared.ErrSignatureInvalid
		default:
			return nil, shared.ErrTokenMalformed
		}
	}

	if !t.Valid {
		return nil, shared.ErrTokenMalformed
	}

	return claims, nil
}
