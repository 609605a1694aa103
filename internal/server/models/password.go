package models

import (
	"database/sql/driver"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

var (
	// ErrEmptyPassword is returned when hashing an empty password.
	ErrEmptyPassword = errors.New("empty password")
	// ErrPasswordTooLong is returned for passwords over MaxPasswordBytes.
	ErrPasswordTooLong = errors.New("password longer than 72 bytes")
)

// PasswordHash holds a bcrypt hash. It can be set from a plaintext password,
// compared against a candidate and persisted, but offers no way to read the
// hash back in Go code.
type PasswordHash struct {
	hash []byte
}

// Set replaces the hash with one derived from plain.
func (p *PasswordHash) Set(plain string) error {
	if plain == "" {
		return ErrEmptyPassword
	}
	if len(plain) > MaxPasswordBytes {
		return ErrPasswordTooLong
	}
	h, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	p.hash = h
	return nil
}

// Matches reports whether plain hashes to the stored value.
func (p PasswordHash) Matches(plain string) bool {
	if len(p.hash) == 0 {
		return false
	}
	return bcrypt.CompareHashAndPassword(p.hash, []byte(plain)) == nil
}

// IsSet reports whether a hash is present.
func (p PasswordHash) IsSet() bool {
	return len(p.hash) > 0
}

// String never reveals the hash.
func (p PasswordHash) String() string {
	return "[REDACTED]"
}

// GoString keeps %#v from printing the hash.
func (p PasswordHash) GoString() string {
	return "models.PasswordHash{[REDACTED]}"
}

// Value implements driver.Valuer.
func (p PasswordHash) Value() (driver.Value, error) {
	if len(p.hash) == 0 {
		return nil, nil
	}
	return string(p.hash), nil
}

// Scan implements sql.Scanner.
func (p *PasswordHash) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		p.hash = nil
	case string:
		p.hash = []byte(v)
	case []byte:
		p.hash = append([]byte(nil), v...)
	default:
		return fmt.Errorf("unsupported password hash type %T", src)
	}
	return nil
}
