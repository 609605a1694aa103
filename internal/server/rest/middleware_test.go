package rest

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/recipebook/internal/common"
	"github.com/dmitrijs2005/recipebook/internal/logging"
	"github.com/dmitrijs2005/recipebook/internal/server/session"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestID_GeneratedWhenAbsent(t *testing.T) {
	env := newTestEnv()

	w := env.client(t).do(http.MethodGet, "/healthz", "")

	_, err := uuid.Parse(w.Header().Get(common.RequestIDHeaderName))
	assert.NoError(t, err)
}

func TestRequestID_Propagated(t *testing.T) {
	env := newTestEnv()
	id := uuid.NewString()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(common.RequestIDHeaderName, id)
	w := httptest.NewRecorder()
	env.server.Handler().ServeHTTP(w, req)

	assert.Equal(t, id, w.Header().Get(common.RequestIDHeaderName))
}

func TestRequestID_GarbageReplaced(t *testing.T) {
	env := newTestEnv()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(common.RequestIDHeaderName, "not-a-uuid\n")
	w := httptest.NewRecorder()
	env.server.Handler().ServeHTTP(w, req)

	got := w.Header().Get(common.RequestIDHeaderName)
	assert.NotEqual(t, "not-a-uuid\n", got)
	_, err := uuid.Parse(got)
	assert.NoError(t, err)
}

func TestAccessLog(t *testing.T) {
	var buf bytes.Buffer
	l, err := logging.New("slog", "debug", &buf)
	require.NoError(t, err)

	env := newTestEnv()
	sm := session.NewManager(session.NewMemoryStore(), session.NewSigner([]byte("k")), session.CookieOptions{}, time.Hour, logging.Nop())
	s := NewServer("127.0.0.1:0", l, env.users, env.recipes, sm, nil, time.Second)

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/check_session", nil))
	require.Equal(t, http.StatusUnauthorized, w.Code)

	out := buf.String()
	assert.Contains(t, out, `"path":"/check_session"`)
	assert.Contains(t, out, `"status":401`)
	assert.Contains(t, out, `"level":"WARN"`)
	assert.Contains(t, out, `"module":"http_server"`)
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv()
	cl := env.client(t)

	cl.do(http.MethodGet, "/healthz", "")
	cl.do(http.MethodGet, "/nowhere", "")
	w := cl.do(http.MethodGet, "/metrics", "")

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `recipebook_http_requests_total{method="GET",route="/healthz",status="200"} 1`)
	assert.Contains(t, body, `route="unmatched",status="404"`)
	assert.Contains(t, body, "recipebook_http_request_duration_seconds")
}

func TestRun_StopsOnCancel(t *testing.T) {
	env := newTestEnv()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- env.server.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestRun_ListenError(t *testing.T) {
	sm := session.NewManager(session.NewMemoryStore(), session.NewSigner([]byte("k")), session.CookieOptions{}, time.Hour, logging.Nop())
	s := NewServer("256.0.0.1:-1", logging.Nop(), newFakeUsers(), &fakeRecipes{}, sm, nil, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	assert.Error(t, s.Run(ctx))
}
