package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/types"
)

const (
	msgAlreadyExists = "Recipe already exists"
	msgNotFound      = "Recipe doesn't exist"
)

// RecipeHandler serves the recipe endpoints
type RecipeHandler struct {
	recipes service.IRecipeService
}

func NewRecipeHandler(recipes service.IRecipeService) *RecipeHandler {
	registerValidators()
	return &RecipeHandler{recipes: recipes}
}

// RegisterRoutes mounts the recipe endpoints on router. writeMiddleware runs
// in front of the create, update and delete handlers only.
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup, writeMiddleware ...gin.HandlerFunc) {
	write := func(handler gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, writeMiddleware...), handler)
	}

	recipes := router.Group("/recipe")
	{
		recipes.GET("/all", h.ListRecipes)
		recipes.GET("", h.FilterRecipes)
		recipes.POST("", write(h.CreateRecipe)...)
		recipes.PUT("/:id", write(h.UpdateRecipe)...)
		recipes.DELETE("/:id", write(h.DeleteRecipe)...)
	}
}

// ListRecipes handles GET /recipe/all
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	recipes, err := h.recipes.FindAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.NewRecipeResponses(recipes))
}

// FilterRecipes handles GET /recipe with optional filter parameters
func (h *RecipeHandler) FilterRecipes(c *gin.Context) {
	var query types.RecipeQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, types.MessageResponse{Message: err.Error()})
		return
	}

	criteria, err := query.Criteria()
	if err != nil {
		c.JSON(http.StatusBadRequest, types.MessageResponse{Message: err.Error()})
		return
	}

	recipes, err := h.recipes.Find(c.Request.Context(), criteria)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.NewRecipeResponses(recipes))
}

// CreateRecipe handles POST /recipe
func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req types.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.MessageResponse{Message: validationMessage(err)})
		return
	}

	recipe, err := h.recipes.Create(c.Request.Context(), req.Fields())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, types.MessageResponse{
		Message: "Recipe created id " + recipe.ID,
		ID:      recipe.ID,
	})
}

// UpdateRecipe replaces every editable field of the recipe at /recipe/:id
func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	var req types.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.MessageResponse{Message: validationMessage(err)})
		return
	}

	if err := h.recipes.Update(c.Request.Context(), c.Param("id"), req.Fields()); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.MessageResponse{Message: "Recipe updated"})
}

// DeleteRecipe handles DELETE /recipe/:id. Unknown ids still succeed.
func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	if err := h.recipes.Remove(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.MessageResponse{Message: "Recipe deleted"})
}

// respondError maps service errors to a status code and a {message} body
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAlreadyExists):
		c.JSON(http.StatusBadRequest, types.MessageResponse{Message: msgAlreadyExists})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, types.MessageResponse{Message: msgNotFound})
	default:
		log.Error().
			Err(err).
			Str("request_id", c.GetString("request_id")).
			Str("path", c.FullPath()).
			Msg("Recipe request failed")
		c.JSON(http.StatusInternalServerError, types.MessageResponse{Message: err.Error()})
	}
}
