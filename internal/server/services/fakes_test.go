package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/recipebook/internal/dbx"
	"github.com/dmitrijs2005/recipebook/internal/server/models"
	recipesrepo "github.com/dmitrijs2005/recipebook/internal/server/repositories/recipes"
	sessionsrepo "github.com/dmitrijs2005/recipebook/internal/server/repositories/sessions"
	usersrepo "github.com/dmitrijs2005/recipebook/internal/server/repositories/users"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

type fakeUsersRepo struct {
	created   *models.User
	createErr error

	byName    *models.User
	byNameErr error

	byID    *models.User
	byIDErr error

	deleteErr error
	deleted   []int64

	createCalls int
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.createCalls++
	f.created = u
	if f.createErr != nil {
		return nil, f.createErr
	}
	u.ID = 1
	return u, nil
}

func (f *fakeUsersRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if f.byNameErr != nil {
		return nil, f.byNameErr
	}
	return f.byName, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	return f.byID, nil
}

func (f *fakeUsersRepo) Delete(ctx context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeRecipesRepo struct {
	created   *models.Recipe
	createErr error

	list    []*models.Recipe
	listErr error
}

func (f *fakeRecipesRepo) Create(ctx context.Context, r *models.Recipe) (*models.Recipe, error) {
	f.created = r
	if f.createErr != nil {
		return nil, f.createErr
	}
	r.ID = 10
	return r, nil
}

func (f *fakeRecipesRepo) ListWithOwners(ctx context.Context) ([]*models.Recipe, error) {
	return f.list, f.listErr
}

type fakeSessionsRepo struct{}

func (fakeSessionsRepo) Create(context.Context, *models.Session) error { return nil }
func (fakeSessionsRepo) Find(context.Context, string) (*models.Session, error) {
	return nil, nil
}
func (fakeSessionsRepo) Delete(context.Context, string) error { return nil }
func (fakeSessionsRepo) DeleteExpired(context.Context, time.Time) (int64, error) {
	return 0, nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	r *fakeRecipesRepo

	// txSeen records whether a repository was requested with a handle other
	// than the pool, i.e. inside a transaction.
	db     *sql.DB
	txSeen bool
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository {
	m.note(db)
	return m.u
}

func (m *fakeRepoManager) Recipes(db dbx.DBTX) recipesrepo.Repository {
	m.note(db)
	return m.r
}

func (m *fakeRepoManager) Sessions(db dbx.DBTX) sessionsrepo.Repository {
	return fakeSessionsRepo{}
}

func (m *fakeRepoManager) note(db dbx.DBTX) {
	if pool, ok := db.(*sql.DB); !ok || pool != m.db {
		m.txSeen = true
	}
}
