// Package common contains shared constants and sentinel errors used across
// the recipebook server components.
package common

// RequestIDHeaderName is the HTTP header carrying the per-request id.
const RequestIDHeaderName = "X-Request-ID"

// InstructionsMinLength is the minimum number of characters a recipe's
// instructions must contain. The database enforces the same bound.
const InstructionsMinLength = 50
