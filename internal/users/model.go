package users

import "time"

// User is one row of the user store. Username doubles as the e-mail address
// the notifier delivers to. Password holds whatever the configured
// PasswordMatcher expects: a plaintext value in compatibility mode, a bcrypt
// hash otherwise.
type User struct {
	ID        string
	Email     string
	Password  string
	CreatedAt time.Time
}
