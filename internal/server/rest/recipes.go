package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/recipebook/internal/common"
	"github.com/dmitrijs2005/recipebook/internal/server/reqctx"
	"github.com/dmitrijs2005/recipebook/internal/server/services"
	"github.com/gin-gonic/gin"
)

type recipeRequest struct {
	Title             *string `json:"title"`
	Instructions      *string `json:"instructions"`
	MinutesToComplete *int    `json:"minutes_to_complete"`
}

// RecipeIndex lists every recipe with its owner.
func (s *Server) RecipeIndex(c *gin.Context) {
	list, err := s.recipes.ListAll(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// CreateRecipe stores a recipe owned by the logged-in user.
func (s *Server) CreateRecipe(c *gin.Context) {
	userID, _ := reqctx.UserID(c.Request.Context())

	var req recipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bodyMalformed)
		return
	}

	recipe, err := s.recipes.Create(c.Request.Context(), userID, services.NewRecipe{
		Title:             req.Title,
		Instructions:      req.Instructions,
		MinutesToComplete: req.MinutesToComplete,
	})
	if err != nil {
		var fields common.FieldErrors
		switch {
		case errors.As(err, &fields):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": fields})
		case errors.Is(err, common.ErrorInvalidData):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid data. Could not create recipe."})
		case errors.Is(err, common.ErrorNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found."})
		default:
			s.fail(c, err)
		}
		return
	}

	c.JSON(http.StatusCreated, recipe)
}
