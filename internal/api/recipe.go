package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-nexus/backend/internal/middleware"
	"github.com/pageza/recipe-nexus/backend/internal/service"
	"github.com/pageza/recipe-nexus/backend/internal/types"
)

// RecipeHandler serves the merged listing and local recipe mutations.
type RecipeHandler struct {
	aggregator  service.IAggregator
	recipes     service.IRecipeService
	auth        middleware.TokenValidator
	createLimit gin.HandlerFunc
}

// NewRecipeHandler creates the handler. createLimit guards POST /recipes and
// may be nil.
func NewRecipeHandler(aggregator service.IAggregator, recipes service.IRecipeService, auth middleware.TokenValidator, createLimit gin.HandlerFunc) *RecipeHandler {
	return &RecipeHandler{
		aggregator:  aggregator,
		recipes:     recipes,
		auth:        auth,
		createLimit: createLimit,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	authed := middleware.AuthMiddleware(h.auth)
	create := []gin.HandlerFunc{authed}
	if h.createLimit != nil {
		create = append(create, h.createLimit)
	}
	create = append(create, h.CreateRecipe)

	recipes := router.Group("/recipes")
	{
		recipes.GET("", authed, h.ListRecipes)
		recipes.POST("", create...)
		recipes.GET("/:id", h.GetRecipe)
		recipes.DELETE("/:id", authed, h.DeleteRecipe)
	}
}

// ListRecipes returns the merged listing for ?s=<term>&c=<category>.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	data, err := h.aggregator.GetMerged(c.Request.Context(), c.Query("s"), c.Query("c"))
	if err != nil {
		abort(c, http.StatusInternalServerError, msgServerError, err)
		return
	}
	rawJSON(c, data)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req types.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, msgMissingFields, err)
		return
	}

	recipe, err := h.recipes.Create(c.Request.Context(), middleware.Username(c), req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			abort(c, http.StatusBadRequest, msgMissingFields, nil)
			return
		}
		abort(c, http.StatusInternalServerError, msgServerError, err)
		return
	}
	c.JSON(http.StatusCreated, recipe)
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	recipe, err := h.recipes.Get(c.Request.Context(), c.Param("id"))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, recipe)
	case errors.Is(err, service.ErrNotLocal):
		abort(c, http.StatusBadRequest, msgUseExternalRoute, nil)
	case errors.Is(err, service.ErrNotFound):
		abort(c, http.StatusNotFound, msgRecipeNotFound, nil)
	default:
		abort(c, http.StatusInternalServerError, msgServerError, err)
	}
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	err := h.recipes.Delete(c.Request.Context(), middleware.Username(c), c.Param("id"))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
	case errors.Is(err, service.ErrNotFound):
		abort(c, http.StatusNotFound, msgNotFound, nil)
	case errors.Is(err, service.ErrForbidden):
		abort(c, http.StatusForbidden, msgUnauthorized, nil)
	default:
		abort(c, http.StatusInternalServerError, msgServerError, err)
	}
}
