package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/recipebook/internal/common"
	"github.com/dmitrijs2005/recipebook/internal/logging"
	"github.com/dmitrijs2005/recipebook/internal/server/models"
	"github.com/dmitrijs2005/recipebook/internal/server/reqctx"
	"github.com/gin-gonic/gin"
)

// sessionIDBytes is the entropy of a session id.
const sessionIDBytes = 32

// gin context key caching the session resolved for the request.
const loadedKey = "session.loaded"

// Manager ties the session cookie to a Store.
type Manager struct {
	store  Store
	signer *Signer
	cookie CookieOptions
	ttl    time.Duration
	logger logging.Logger
	now    func() time.Time
}

func NewManager(store Store, signer *Signer, cookie CookieOptions, ttl time.Duration, logger logging.Logger) *Manager {
	return &Manager{
		store:  store,
		signer: signer,
		cookie: cookie.normalize(),
		ttl:    ttl,
		logger: logger.With("module", "session"),
		now:    time.Now,
	}
}

// Start replaces any session of the request with a new one for userID and
// sets the cookie.
func (m *Manager) Start(c *gin.Context, userID int64) error {
	ctx := c.Request.Context()

	prev, err := m.load(c)
	if err != nil {
		return err
	}
	if prev != nil {
		if err := m.store.Delete(ctx, prev.ID); err != nil {
			return fmt.Errorf("error dropping previous session: %w", err)
		}
	}

	id, err := common.MakeRandToken(sessionIDBytes)
	if err != nil {
		return fmt.Errorf("error generating session id: %w", err)
	}
	s := &models.Session{ID: id, UserID: userID, ExpiresAt: m.now().Add(m.ttl)}

	token, err := m.signer.Sign(s.ID, s.ExpiresAt)
	if err != nil {
		return fmt.Errorf("error signing session: %w", err)
	}
	if err := m.store.Create(ctx, s); err != nil {
		return fmt.Errorf("error storing session: %w", err)
	}

	setCookie(c, m.cookie, token, m.ttl)
	m.remember(c, s)
	return nil
}

// Current returns the user id of the request's session.
func (m *Manager) Current(c *gin.Context) (int64, bool, error) {
	s, err := m.load(c)
	if err != nil || s == nil {
		return 0, false, err
	}
	return s.UserID, true, nil
}

// End deletes the request's session and clears the cookie. It returns
// common.ErrorUnauthorized when there is no session.
func (m *Manager) End(c *gin.Context) error {
	s, err := m.load(c)
	if err != nil {
		return err
	}
	if s == nil {
		return common.ErrorUnauthorized
	}
	if err := m.store.Delete(c.Request.Context(), s.ID); err != nil {
		return fmt.Errorf("error deleting session: %w", err)
	}
	clearCookie(c, m.cookie)
	m.remember(c, nil)
	return nil
}

// load resolves the session once per request. A missing, forged or expired
// cookie means no session; only store failures are errors.
func (m *Manager) load(c *gin.Context) (*models.Session, error) {
	if v, ok := c.Get(loadedKey); ok {
		s, _ := v.(*models.Session)
		return s, nil
	}

	ctx := c.Request.Context()

	raw, err := c.Cookie(m.cookie.Name)
	if err != nil || raw == "" {
		m.remember(c, nil)
		return nil, nil
	}

	id, err := m.signer.Verify(raw)
	if err != nil {
		if !errors.Is(err, common.ErrorSessionExpired) {
			m.logger.Warn(ctx, "rejected session cookie", "error", err)
		}
		m.remember(c, nil)
		return nil, nil
	}

	s, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error loading session: %w", err)
	}
	if s != nil && s.Expired(m.now()) {
		if err := m.store.Delete(ctx, s.ID); err != nil {
			m.logger.Warn(ctx, "failed to delete expired session", "error", err)
		}
		s = nil
	}

	m.remember(c, s)
	return s, nil
}

func (m *Manager) remember(c *gin.Context, s *models.Session) {
	c.Set(loadedKey, s)

	st := reqctx.State{}
	if s != nil {
		st = reqctx.State{UserID: s.UserID, SessionID: s.ID}
	}
	c.Request = c.Request.WithContext(reqctx.With(c.Request.Context(), st))
}

// Purge removes expired sessions when the store needs it.
func (m *Manager) Purge(ctx context.Context) (int64, error) {
	p, ok := m.store.(Purger)
	if !ok {
		return 0, nil
	}
	return p.PurgeExpired(ctx, m.now())
}

// RunJanitor calls Purge every interval until ctx is done.
func (m *Manager) RunJanitor(ctx context.Context, interval time.Duration) {
	if _, ok := m.store.(Purger); !ok || interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := m.Purge(ctx)
			if err != nil {
				m.logger.Error(ctx, "session purge failed", "error", err)
				continue
			}
			if n > 0 {
				m.logger.Info(ctx, "purged expired sessions", "count", n)
			}
		}
	}
}
