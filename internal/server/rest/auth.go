package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/recipebook/internal/common"
	"github.com/dmitrijs2005/recipebook/internal/server/models"
	"github.com/dmitrijs2005/recipebook/internal/server/reqctx"
	"github.com/dmitrijs2005/recipebook/internal/server/services"
	"github.com/gin-gonic/gin"
)

type signupRequest struct {
	Username string  `json:"username"`
	Password string  `json:"password"`
	ImageURL *string `json:"image_url"`
	Bio      *string `json:"bio"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Signup creates a user and logs them in.
func (s *Server) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bodyMalformed)
		return
	}

	user, err := s.users.CreateUser(c.Request.Context(), services.NewUser{
		Username: req.Username,
		Password: req.Password,
		ImageURL: req.ImageURL,
		Bio:      req.Bio,
	})
	if err != nil {
		switch {
		case errors.Is(err, models.ErrPasswordTooLong):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Password must be at most 72 bytes"})
		case errors.Is(err, common.ErrorValidation):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Username and password are required"})
		case errors.Is(err, common.ErrorAlreadyExists):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Invalid"})
		default:
			s.fail(c, err)
		}
		return
	}

	// Drop the new account so a retry can reuse the username.
	if err := s.sessions.Start(c, user.ID); err != nil {
		if derr := s.users.DeleteUser(c.Request.Context(), user.ID); derr != nil {
			s.logger.Error(c.Request.Context(), "signup cleanup failed", "user_id", user.ID, "error", derr)
		}
		s.fail(c, err)
		return
	}

	s.logger.Info(c.Request.Context(), "user signed up", "user_id", user.ID)
	c.JSON(http.StatusCreated, user)
}

// CheckSession returns the logged-in user.
func (s *Server) CheckSession(c *gin.Context) {
	userID, _ := reqctx.UserID(c.Request.Context())

	user, err := s.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// Login verifies credentials and starts a session.
func (s *Server) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bodyMalformed)
		return
	}

	user, err := s.users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Username or password is incorrect"})
			return
		}
		s.fail(c, err)
		return
	}

	if err := s.sessions.Start(c, user.ID); err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// Logout ends the current session.
func (s *Server) Logout(c *gin.Context) {
	if err := s.sessions.End(c); err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized!"})
			return
		}
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Health reports whether the database answers.
func (s *Server) Health(c *gin.Context) {
	if s.db != nil {
		if err := s.db.PingContext(c.Request.Context()); err != nil {
			s.logger.Warn(c.Request.Context(), "health check failed", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
