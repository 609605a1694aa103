// Package models holds the server's domain types.
package models

// User is a registered account. The password is write-only: it is set with
// SetPassword and checked with Authenticate.
type User struct {
	ID       int64   `json:"id"`
	Username string  `json:"username"`
	ImageURL *string `json:"image_url"`
	Bio      *string `json:"bio"`

	Password PasswordHash `json:"-"`
}

// SetPassword stores a salted hash of plain.
func (u *User) SetPassword(plain string) error {
	return u.Password.Set(plain)
}

// Authenticate reports whether plain is the user's password.
func (u *User) Authenticate(plain string) bool {
	return u.Password.Matches(plain)
}
