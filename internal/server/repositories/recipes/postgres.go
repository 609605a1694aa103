package recipes

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/recipebook/internal/common"
	"github.com/dmitrijs2005/recipebook/internal/dbx"
	"github.com/dmitrijs2005/recipebook/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error) {
	query := `
		INSERT INTO recipes (title, instructions, minutes_to_complete, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		recipe.Title, recipe.Instructions, recipe.MinutesToComplete, recipe.UserID).Scan(&recipe.ID)
	if err != nil {
		switch c := dbx.ClassifyError(err); {
		case errors.Is(c, common.ErrorInvalidData), errors.Is(c, common.ErrorNotFound):
			return nil, c
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return recipe, nil
}

func (r *PostgresRepository) ListWithOwners(ctx context.Context) ([]*models.Recipe, error) {
	query := `
		SELECT r.id, r.title, r.instructions, r.minutes_to_complete, r.user_id,
		       u.id, u.username, u.image_url, u.bio
		FROM recipes r
		JOIN users u ON u.id = r.user_id
		ORDER BY r.id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Recipe, 0)
	for rows.Next() {
		rec := &models.Recipe{User: &models.User{}}
		if err := rows.Scan(&rec.ID, &rec.Title, &rec.Instructions, &rec.MinutesToComplete, &rec.UserID,
			&rec.User.ID, &rec.User.Username, &rec.User.ImageURL, &rec.User.Bio); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
