package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipes/backend/internal/middleware"
	"github.com/pageza/recipes/backend/internal/service"
	"github.com/pageza/recipes/backend/internal/types"
)

// RecipeHandler exposes the recipe service over HTTP
type RecipeHandler struct {
	recipes service.IRecipeService
}

// NewRecipeHandler creates a new RecipeHandler
func NewRecipeHandler(recipes service.IRecipeService) *RecipeHandler {
	return &RecipeHandler{recipes: recipes}
}

// RegisterRoutes mounts the recipe routes on an authenticated group
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipe := router.Group("/recipe")
	{
		recipe.POST("/new", h.CreateRecipe)
		recipe.GET("/search", h.SearchRecipes)
		recipe.GET("/:id", h.GetRecipe)
		recipe.PUT("/:id", h.UpdateRecipe)
		recipe.DELETE("/:id", h.DeleteRecipe)
	}
}

// CreateRecipe handles POST /api/recipe/new
func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	caller, ok := callerIdentity(c)
	if !ok {
		return
	}

	var req types.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(service.ErrBadInput)
		return
	}

	id, err := h.recipes.AddRecipe(c.Request.Context(), caller, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, types.CreateRecipeResponse{ID: id})
}

// GetRecipe handles GET /api/recipe/:id
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	recipe, err := h.recipes.GetRecipe(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// UpdateRecipe handles PUT /api/recipe/:id
func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	caller, ok := callerIdentity(c)
	if !ok {
		return
	}

	// an unreadable body is passed on as nil so that the id is still
	// validated first and the outcome stays BadInput
	var req types.RecipeRequest
	input := &req
	if err := c.ShouldBindJSON(&req); err != nil {
		input = nil
	}

	if err := h.recipes.UpdateRecipe(c.Request.Context(), caller, c.Param("id"), input); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteRecipe handles DELETE /api/recipe/:id
func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	caller, ok := callerIdentity(c)
	if !ok {
		return
	}

	if err := h.recipes.DeleteRecipe(c.Request.Context(), caller, c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SearchRecipes handles GET /api/recipe/search?category=... or ?name=...
func (h *RecipeHandler) SearchRecipes(c *gin.Context) {
	recipes, err := h.recipes.SearchRecipes(c.Request.Context(), optionalQuery(c, "category"), optionalQuery(c, "name"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

// optionalQuery distinguishes an absent parameter (nil) from an empty one
func optionalQuery(c *gin.Context, key string) *string {
	value, ok := c.GetQuery(key)
	if !ok {
		return nil
	}
	return &value
}

// callerIdentity returns the authenticated identity, failing the request without one
func callerIdentity(c *gin.Context) (string, bool) {
	email, ok := middleware.UserEmail(c)
	if !ok {
		_ = c.Error(service.ErrUnauthorized)
	}
	return email, ok
}
