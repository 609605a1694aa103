// Package services contains server-side business logic. UserService is the
// credential store: it creates users, verifies passwords and loads users by id.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/recipebook/internal/common"
	"github.com/dmitrijs2005/recipebook/internal/dbx"
	"github.com/dmitrijs2005/recipebook/internal/server/models"
	"github.com/dmitrijs2005/recipebook/internal/server/repositories/repomanager"
)

// NewUser is the input of UserService.CreateUser.
type NewUser struct {
	Username string
	Password string
	ImageURL *string
	Bio      *string
}

// UserService provides account operations:
//   - CreateUser: validate and persist a user with a hashed password
//   - Authenticate: verify credentials with a uniform failure
//   - GetByID: load a user for an existing session
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager

	dummyOnce sync.Once
	dummy     *models.User
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager) *UserService {
	return &UserService{db: db, repomanager: m}
}

// CreateUser persists a new user. Missing username or password and a
// password bcrypt cannot hash yield common.ErrorValidation, a taken username
// common.ErrorAlreadyExists.
func (s *UserService) CreateUser(ctx context.Context, in NewUser) (*models.User, error) {
	if in.Username == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: username and password are required", common.ErrorValidation)
	}

	user := &models.User{Username: in.Username, ImageURL: in.ImageURL, Bio: in.Bio}
	if err := user.SetPassword(in.Password); err != nil {
		if errors.Is(err, models.ErrPasswordTooLong) {
			return nil, fmt.Errorf("%w: %w", common.ErrorValidation, err)
		}
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	var created *models.User
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		created, err = s.repomanager.Users(tx).Create(ctx, user)
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return created, nil
}

// Authenticate returns the user when password matches. Unknown users and
// wrong passwords both yield common.ErrorUnauthorized; an unknown user still
// pays for one hash comparison.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.dummyUser().Authenticate(password)
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	if !user.Authenticate(password) {
		return nil, common.ErrorUnauthorized
	}
	return user, nil
}

// GetByID returns the user or common.ErrorNotFound.
func (s *UserService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}
	return user, nil
}

// DeleteUser removes a user together with their sessions and recipes.
func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	if err := s.repomanager.Users(s.db).Delete(ctx, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("error deleting user: %w", err)
	}
	return nil
}

func (s *UserService) dummyUser() *models.User {
	s.dummyOnce.Do(func() {
		s.dummy = &models.User{}
		_ = s.dummy.SetPassword("not-a-real-password")
	})
	return s.dummy
}
