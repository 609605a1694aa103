package common

import (
	"errors"
	"sort"
	"strings"
)

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")
	ErrorInvalidData   = errors.New("invalid data")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")

	// Session errors.
	ErrorInvalidToken   = errors.New("invalid token")
	ErrorSessionExpired = errors.New("session expired")
)

// FieldErrors maps a request field name to a human readable message.
// It matches ErrorValidation via errors.Is.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e[k])
	}
	return "validation error: " + strings.Join(parts, "; ")
}

func (e FieldErrors) Unwrap() error {
	return ErrorValidation
}
