package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-nexus/backend/internal/middleware"
	"github.com/pageza/recipe-nexus/backend/internal/service"
)

// ExternalHandler exposes the cached single-provider passthroughs.
type ExternalHandler struct {
	external service.IExternalService
	auth     middleware.TokenValidator
}

func NewExternalHandler(external service.IExternalService, auth middleware.TokenValidator) *ExternalHandler {
	return &ExternalHandler{external: external, auth: auth}
}

func (h *ExternalHandler) RegisterRoutes(router *gin.RouterGroup) {
	external := router.Group("/external")
	external.Use(middleware.AuthMiddleware(h.auth))
	{
		external.GET("/categories", h.Categories)
		external.GET("/search", h.Search)
		external.GET("/recipe/:id", h.Recipe)
		external.GET("/filter", h.Filter)
	}
}

func (h *ExternalHandler) Categories(c *gin.Context) {
	data, err := h.external.Categories(c.Request.Context())
	if err != nil {
		abort(c, http.StatusInternalServerError, msgFailed, err)
		return
	}
	rawJSON(c, data)
}

func (h *ExternalHandler) Search(c *gin.Context) {
	data, err := h.external.Search(c.Request.Context(), c.Query("s"))
	if err != nil {
		abort(c, http.StatusInternalServerError, msgSearchFailed, err)
		return
	}
	rawJSON(c, data)
}

func (h *ExternalHandler) Recipe(c *gin.Context) {
	data, err := h.external.Recipe(c.Request.Context(), c.Param("id"))
	switch {
	case err == nil:
		rawJSON(c, data)
	case errors.Is(err, service.ErrNotFound):
		abort(c, http.StatusNotFound, msgRecipeNotFound, nil)
	default:
		abort(c, http.StatusInternalServerError, msgFailed, err)
	}
}

func (h *ExternalHandler) Filter(c *gin.Context) {
	data, err := h.external.Filter(c.Request.Context(), c.Query("c"), c.Query("a"))
	switch {
	case err == nil:
		rawJSON(c, data)
	case errors.Is(err, service.ErrBadFilter):
		abort(c, http.StatusBadRequest, msgFilterRequired, nil)
	default:
		abort(c, http.StatusInternalServerError, msgFilterFailed, err)
	}
}

func rawJSON(c *gin.Context, data []byte) {
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}
