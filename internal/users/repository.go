// Package users provides read access to the external user store. The auth
// subsystem only ever needs one query: look a user up by username.
package users

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, user *User) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
}
