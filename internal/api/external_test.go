package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/recipe-nexus/backend/internal/service"
)

func setupExternalRouter(ext *mockExternalService) *gin.Engine {
	r := gin.New()
	NewExternalHandler(ext, &mockAuthService{}).RegisterRoutes(r.Group("/api"))
	return r
}

func TestExternalRoutes(t *testing.T) {
	ext := &mockExternalService{}
	ext.On("Categories", mock.Anything).Return([]byte(`[{"strCategory":"Beef"}]`), nil)
	ext.On("Search", mock.Anything, "cake").Return([]byte(`[]`), nil)
	ext.On("Recipe", mock.Anything, "dummy_1").Return([]byte(`{"id":"dummy_1"}`), nil)
	ext.On("Filter", mock.Anything, "Beef", "").Return([]byte(`[{"id":"1"}]`), nil)
	r := setupExternalRouter(ext)

	tests := []struct {
		path string
		body string
	}{
		{"/api/external/categories", `[{"strCategory":"Beef"}]`},
		{"/api/external/search?s=cake", `[]`},
		{"/api/external/recipe/dummy_1", `{"id":"dummy_1"}`},
		{"/api/external/filter?c=Beef", `[{"id":"1"}]`},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := do(r, http.MethodGet, tt.path, goodToken, nil)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, tt.body, w.Body.String())

			w = do(r, http.MethodGet, tt.path, "", nil)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestExternalErrors(t *testing.T) {
	upstream := fmt.Errorf("%w: boom", service.ErrUpstream)

	ext := &mockExternalService{}
	ext.On("Categories", mock.Anything).Return(nil, upstream)
	ext.On("Search", mock.Anything, "x").Return(nil, upstream)
	ext.On("Recipe", mock.Anything, "999").Return(nil, service.ErrNotFound)
	ext.On("Recipe", mock.Anything, "cocktail_1").Return(nil, errors.New("timeout"))
	ext.On("Filter", mock.Anything, "", "").Return(nil, service.ErrBadFilter)
	ext.On("Filter", mock.Anything, "", "Italian").Return(nil, upstream)
	r := setupExternalRouter(ext)

	tests := []struct {
		path    string
		status  int
		message string
	}{
		{"/api/external/categories", http.StatusInternalServerError, "Failed"},
		{"/api/external/search?s=x", http.StatusInternalServerError, "Failed to search recipes"},
		{"/api/external/recipe/999", http.StatusNotFound, "Recipe not found"},
		{"/api/external/recipe/cocktail_1", http.StatusInternalServerError, "Failed"},
		{"/api/external/filter", http.StatusBadRequest, "Category or area required"},
		{"/api/external/filter?a=Italian", http.StatusInternalServerError, "Failed to filter recipes"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := do(r, http.MethodGet, tt.path, goodToken, nil)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.message, errorOf(t, w))
		})
	}
}
