// Package recipes declares and implements persistence of recipes.
package recipes

import (
	"context"

	"github.com/dmitrijs2005/recipebook/internal/server/models"
)

// Repository stores recipes.
type Repository interface {
	// Create inserts the recipe and fills in its ID. Constraint violations
	// surface as common.ErrorInvalidData, a missing owner as
	// common.ErrorNotFound.
	Create(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error)

	// ListWithOwners returns every recipe ordered by id with its owner
	// attached.
	ListWithOwners(ctx context.Context) ([]*models.Recipe, error)
}
