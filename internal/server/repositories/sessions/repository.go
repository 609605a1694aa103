// Package sessions declares and implements database persistence of login
// sessions.
package sessions

import (
	"context"
	"time"

	"github.com/dmitrijs2005/recipebook/internal/server/models"
)

// Repository stores sessions keyed by their opaque id.
type Repository interface {
	// Create stores a new session.
	Create(ctx context.Context, s *models.Session) error

	// Find returns the session or common.ErrorNotFound.
	Find(ctx context.Context, id string) (*models.Session, error)

	// Delete removes a session. Deleting a missing session is not an error.
	Delete(ctx context.Context, id string) error

	// DeleteExpired removes every session expired at now and returns how
	// many were removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
