package session

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/recipebook/internal/common"
	"github.com/dmitrijs2005/recipebook/internal/dbx"
	"github.com/dmitrijs2005/recipebook/internal/server/models"
	"github.com/dmitrijs2005/recipebook/internal/server/repositories/sessions"
)

// DBStore keeps sessions in the sessions table. Calls made inside a
// transaction started with dbx.WithTx join that transaction.
type DBStore struct {
	db   dbx.DBTX
	repo func(dbx.DBTX) sessions.Repository
}

// NewDBStore builds a store over db using repo to bind repositories,
// typically repomanager.RepositoryManager.Sessions.
func NewDBStore(db dbx.DBTX, repo func(dbx.DBTX) sessions.Repository) *DBStore {
	return &DBStore{db: db, repo: repo}
}

func (d *DBStore) Create(ctx context.Context, s *models.Session) error {
	return d.repo(dbx.Conn(ctx, d.db)).Create(ctx, s)
}

func (d *DBStore) Get(ctx context.Context, id string) (*models.Session, error) {
	s, err := d.repo(dbx.Conn(ctx, d.db)).Find(ctx, id)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, nil
	}
	return s, err
}

func (d *DBStore) Delete(ctx context.Context, id string) error {
	return d.repo(dbx.Conn(ctx, d.db)).Delete(ctx, id)
}

func (d *DBStore) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	return d.repo(dbx.Conn(ctx, d.db)).DeleteExpired(ctx, now)
}
