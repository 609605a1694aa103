package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/dmitrijs2005/recipebook/internal/common"
	"github.com/dmitrijs2005/recipebook/internal/dbx"
	"github.com/dmitrijs2005/recipebook/internal/server/models"
	"github.com/dmitrijs2005/recipebook/internal/server/repositories/repomanager"
)

// Validation messages keyed by request field.
const (
	MsgTitleRequired        = "Title is required."
	MsgInstructionsRequired = "Instructions are required."
	MsgInstructionsTooShort = "Instructions must be at least 50 characters."
	MsgMinutesRequired      = "Minutes to complete is required."
)

// NewRecipe is the input of RecipeService.Create. A nil field was absent or
// null in the request.
type NewRecipe struct {
	Title             *string
	Instructions      *string
	MinutesToComplete *int
}

// RecipeService is the recipe store.
type RecipeService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewRecipeService(db *sql.DB, m repomanager.RepositoryManager) *RecipeService {
	return &RecipeService{db: db, repomanager: m}
}

// ListAll returns every recipe with its owner, ordered by id.
func (s *RecipeService) ListAll(ctx context.Context) ([]*models.Recipe, error) {
	list, err := s.repomanager.Recipes(s.db).ListWithOwners(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing recipes: %w", err)
	}
	return list, nil
}

// Create validates in, stores the recipe for userID and returns it with the
// owner attached. Errors:
//   - common.FieldErrors (matches common.ErrorValidation) naming every bad field
//   - common.ErrorInvalidData when storage rejects the row
//   - common.ErrorNotFound when the owner no longer exists
//
// Nothing is persisted when an error is returned.
func (s *RecipeService) Create(ctx context.Context, userID int64, in NewRecipe) (*models.Recipe, error) {
	if errs := ValidateRecipe(in); len(errs) > 0 {
		return nil, errs
	}

	recipe := &models.Recipe{
		Title:             *in.Title,
		Instructions:      *in.Instructions,
		MinutesToComplete: in.MinutesToComplete,
		UserID:            userID,
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Recipes(tx).Create(ctx, recipe); err != nil {
			return err
		}
		owner, err := s.repomanager.Users(tx).GetByID(ctx, userID)
		if err != nil {
			return err
		}
		recipe.User = owner
		return nil
	})

	switch {
	case err == nil:
		return recipe, nil
	case errors.Is(err, common.ErrorInvalidData):
		return nil, common.ErrorInvalidData
	case errors.Is(err, common.ErrorNotFound):
		return nil, common.ErrorNotFound
	}
	return nil, fmt.Errorf("error creating recipe: %w", err)
}

// ValidateRecipe checks, in order, title presence, instructions presence and
// length, and minutes_to_complete presence. All failures are collected.
func ValidateRecipe(in NewRecipe) common.FieldErrors {
	errs := common.FieldErrors{}

	if in.Title == nil || *in.Title == "" {
		errs["title"] = MsgTitleRequired
	}

	switch {
	case in.Instructions == nil || *in.Instructions == "":
		errs["instructions"] = MsgInstructionsRequired
	case utf8.RuneCountInString(*in.Instructions) < common.InstructionsMinLength:
		errs["instructions"] = MsgInstructionsTooShort
	}

	if in.MinutesToComplete == nil {
		errs["minutes_to_complete"] = MsgMinutesRequired
	}

	return errs
}
