// Package session implements server-side login sessions: storage backends,
// the signed cookie that carries a session id, and the Manager used by HTTP
// handlers to start, read and end sessions.
package session

import (
	"context"
	"time"

	"github.com/dmitrijs2005/recipebook/internal/server/models"
)

// Store persists sessions by id.
type Store interface {
	Create(ctx context.Context, s *models.Session) error
	// Get returns nil, nil when the session does not exist.
	Get(ctx context.Context, id string) (*models.Session, error)
	// Delete is a no-op for unknown ids.
	Delete(ctx context.Context, id string) error
}

// Purger is implemented by stores that need expired sessions removed
// explicitly.
type Purger interface {
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}
