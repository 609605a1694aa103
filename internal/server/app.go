// Package server wires configuration, storage, sessions and the HTTP API
// together and runs them until the process is signalled to stop.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/recipebook/internal/logging"
	"github.com/dmitrijs2005/recipebook/internal/server/config"
	"github.com/dmitrijs2005/recipebook/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/recipebook/internal/server/rest"
	"github.com/dmitrijs2005/recipebook/internal/server/services"
	"github.com/dmitrijs2005/recipebook/internal/server/session"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"
)

const sessionPurgeInterval = 10 * time.Minute

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	redis    *redis.Client
	sessions *session.Manager
	server   *rest.Server
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.New(c.LogBackend, c.LogLevel, os.Stdout)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	app := &App{config: c, logger: logger, db: db}

	store, err := app.newSessionStore(rm)
	if err != nil {
		app.close()
		return nil, err
	}

	app.sessions = session.NewManager(
		store,
		session.NewSigner([]byte(c.SecretKey)),
		session.CookieOptions{Name: c.CookieName, Domain: c.CookieDomain, Secure: c.CookieSecure},
		c.SessionTTL,
		logger,
	)

	us := services.NewUserService(db, rm)
	rs := services.NewRecipeService(db, rm)
	app.server = rest.NewServer(c.EndpointAddrHTTP, logger, us, rs, app.sessions, db, c.ShutdownTimeout)

	return app, nil
}

func (app *App) newSessionStore(rm repomanager.RepositoryManager) (session.Store, error) {
	switch app.config.SessionBackend {
	case config.SessionBackendPostgres:
		return session.NewDBStore(app.db, rm.Sessions), nil
	case config.SessionBackendRedis:
		app.redis = redis.NewClient(&redis.Options{
			Addr:     app.config.RedisAddr,
			Password: app.config.RedisPassword,
			DB:       app.config.RedisDB,
		})
		return session.NewRedisStore(app.redis), nil
	case config.SessionBackendMemory:
		return session.NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("unknown session backend %q", app.config.SessionBackend)
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until the HTTP server stops, then releases storage clients.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "session_backend", app.config.SessionBackend)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.sessions.RunJanitor(ctx, sessionPurgeInterval)
	}()

	wg.Wait()

	app.close()
	app.logger.Info(context.Background(), "App stopped")
}

func (app *App) close() {
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error(context.Background(), "redis close error", "error", err)
		}
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error(context.Background(), "db close error", "error", err)
		}
	}
}
