// Package rest exposes the recipebook HTTP/JSON API on top of gin.
package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/recipebook/internal/logging"
	"github.com/dmitrijs2005/recipebook/internal/server/models"
	"github.com/dmitrijs2005/recipebook/internal/server/services"
	"github.com/dmitrijs2005/recipebook/internal/server/session"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

type userSvc interface {
	CreateUser(ctx context.Context, in services.NewUser) (*models.User, error)
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

type recipeSvc interface {
	ListAll(ctx context.Context) ([]*models.Recipe, error)
	Create(ctx context.Context, userID int64, in services.NewRecipe) (*models.Recipe, error)
}

type pinger interface {
	PingContext(ctx context.Context) error
}

type Server struct {
	address         string
	shutdownTimeout time.Duration
	logger          logging.Logger
	users           userSvc
	recipes         recipeSvc
	sessions        *session.Manager
	db              pinger
	registry        *prometheus.Registry
	router          *gin.Engine
}

func NewServer(address string, l logging.Logger, us userSvc, rs recipeSvc, sm *session.Manager, db pinger, shutdownTimeout time.Duration) *Server {
	s := &Server{
		address:         address,
		shutdownTimeout: shutdownTimeout,
		logger:          l.With("module", "http_server"),
		users:           us,
		recipes:         rs,
		sessions:        sm,
		db:              db,
		registry:        prometheus.NewRegistry(),
	}
	s.router = s.newRouter()
	return s
}

// Handler returns the configured router.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) newRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), accessLog(s.logger), newMetrics(s.registry).middleware())

	r.POST("/signup", s.Signup)
	r.GET("/check_session", s.requireSession(gin.H{"message": "401: Not Authorized"}), s.CheckSession)
	r.POST("/login", s.Login)
	r.DELETE("/logout", s.Logout)

	recipes := r.Group("/recipes", s.requireSession(gin.H{"error": "Unauthorized. Please log in."}))
	recipes.GET("", s.RecipeIndex)
	recipes.POST("", s.CreateRecipe)

	r.GET("/healthz", s.Health)
	r.GET("/metrics", metricsHandler(s.registry))

	return r
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown failed", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-stopped
	return nil
}
