package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/recipebook/internal/common"
	"github.com/dmitrijs2005/recipebook/internal/logging"
	"github.com/dmitrijs2005/recipebook/internal/server/models"
	"github.com/dmitrijs2005/recipebook/internal/server/services"
	"github.com/dmitrijs2005/recipebook/internal/server/session"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var errBoom = errors.New("boom")

type fakeUsers struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*models.User
	err    error
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: map[int64]*models.User{}}
}

func (f *fakeUsers) CreateUser(_ context.Context, in services.NewUser) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if in.Username == "" || in.Password == "" {
		return nil, common.ErrorValidation
	}
	for _, u := range f.byID {
		if u.Username == in.Username {
			return nil, common.ErrorAlreadyExists
		}
	}
	f.nextID++
	u := &models.User{ID: f.nextID, Username: in.Username, ImageURL: in.ImageURL, Bio: in.Bio}
	if err := u.SetPassword(in.Password); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrorValidation, err)
	}
	f.byID[u.ID] = u
	return u, nil
}

func (f *fakeUsers) Authenticate(_ context.Context, username, password string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.byID {
		if u.Username == username && u.Authenticate(password) {
			return u, nil
		}
	}
	return nil, common.ErrorUnauthorized
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func (f *fakeUsers) DeleteUser(_ context.Context, id int64) error {
	f.remove(id)
	return nil
}

func (f *fakeUsers) remove(id int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.byID, id)
}

// failingStore fails session creation.
type failingStore struct {
	*session.MemoryStore
	createErr error
}

func (f *failingStore) Create(ctx context.Context, s *models.Session) error {
	if f.createErr != nil {
		return f.createErr
	}
	return f.MemoryStore.Create(ctx, s)
}

type fakeRecipes struct {
	mu        sync.Mutex
	users     *fakeUsers
	list      []*models.Recipe
	createErr error
	listErr   error
}

func (f *fakeRecipes) ListAll(context.Context) ([]*models.Recipe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]*models.Recipe{}, f.list...), nil
}

func (f *fakeRecipes) Create(ctx context.Context, userID int64, in services.NewRecipe) (*models.Recipe, error) {
	if errs := services.ValidateRecipe(in); len(errs) > 0 {
		return nil, errs
	}
	if f.createErr != nil {
		return nil, f.createErr
	}
	owner, err := f.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	r := &models.Recipe{
		ID:                int64(len(f.list) + 1),
		Title:             *in.Title,
		Instructions:      *in.Instructions,
		MinutesToComplete: in.MinutesToComplete,
		UserID:            userID,
		User:              owner,
	}
	f.list = append(f.list, r)
	return r, nil
}

type fakePinger struct{ err error }

func (p fakePinger) PingContext(context.Context) error { return p.err }

type testEnv struct {
	server  *Server
	users   *fakeUsers
	recipes *fakeRecipes
	store   *session.MemoryStore
	db      *fakePinger
}

func newTestEnv() *testEnv {
	return newTestEnvWithStore(session.NewMemoryStore(), nil)
}

// newTestEnvWithStore uses wrapped as the session store when set, otherwise store.
func newTestEnvWithStore(store *session.MemoryStore, wrapped session.Store) *testEnv {
	users := newFakeUsers()
	recipes := &fakeRecipes{users: users}
	db := &fakePinger{}
	var st session.Store = store
	if wrapped != nil {
		st = wrapped
	}
	sm := session.NewManager(st, session.NewSigner([]byte("test-key")), session.CookieOptions{}, time.Hour, logging.Nop())
	return &testEnv{
		server:  NewServer("127.0.0.1:0", logging.Nop(), users, recipes, sm, db, time.Second),
		users:   users,
		recipes: recipes,
		store:   store,
		db:      db,
	}
}

// client replays cookies set by previous responses, like a browser.
type client struct {
	t       *testing.T
	handler http.Handler
	cookies map[string]*http.Cookie
}

func (e *testEnv) client(t *testing.T) *client {
	return &client{t: t, handler: e.server.Handler(), cookies: map[string]*http.Cookie{}}
}

func (cl *client) do(method, path, body string) *httptest.ResponseRecorder {
	cl.t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for _, ck := range cl.cookies {
		req.AddCookie(ck)
	}

	w := httptest.NewRecorder()
	cl.handler.ServeHTTP(w, req)

	for _, ck := range w.Result().Cookies() {
		if ck.MaxAge < 0 {
			delete(cl.cookies, ck.Name)
			continue
		}
		cl.cookies[ck.Name] = ck
	}
	return w
}
