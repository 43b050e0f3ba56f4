package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-nexus/backend/internal/middleware"
	"github.com/pageza/recipe-nexus/backend/internal/model"
	"github.com/pageza/recipe-nexus/backend/internal/service"
	"github.com/pageza/recipe-nexus/backend/internal/types"
)

func setupRecipeRouter(agg *mockAggregator, recipes *mockRecipeService, limit gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	NewRecipeHandler(agg, recipes, &mockAuthService{}, limit).RegisterRoutes(r.Group("/api"))
	return r
}

func do(r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body middleware.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error
}

func TestListRecipes(t *testing.T) {
	agg := &mockAggregator{}
	payload := []byte(`[{"id":"local_1","title":"Soup"}]`)
	agg.On("GetMerged", mock.Anything, "soup", "Dessert").Return(payload, nil).Once()
	r := setupRecipeRouter(agg, &mockRecipeService{}, nil)

	w := do(r, http.MethodGet, "/api/recipes?s=soup&c=Dessert", goodToken, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, string(payload), w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	agg.AssertExpectations(t)
}

func TestListRecipesRequiresAuth(t *testing.T) {
	agg := &mockAggregator{}
	r := setupRecipeRouter(agg, &mockRecipeService{}, nil)

	w := do(r, http.MethodGet, "/api/recipes", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "No token, authorization denied", errorOf(t, w))

	w = do(r, http.MethodGet, "/api/recipes", "forged", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Token is not valid", errorOf(t, w))
	agg.AssertNotCalled(t, "GetMerged", mock.Anything, mock.Anything, mock.Anything)
}

func TestListRecipesStoreFailure(t *testing.T) {
	agg := &mockAggregator{}
	agg.On("GetMerged", mock.Anything, "", "").Return(nil, errors.New("disk gone"))
	r := setupRecipeRouter(agg, &mockRecipeService{}, nil)

	w := do(r, http.MethodGet, "/api/recipes", goodToken, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Server Error", errorOf(t, w))
}

func TestCreateRecipe(t *testing.T) {
	req := types.CreateRecipeRequest{Title: "Soup", Ingredients: []string{"water"}, Instructions: "Boil", Category: "Starter"}

	t.Run("created", func(t *testing.T) {
		recipes := &mockRecipeService{}
		recipes.On("Create", mock.Anything, "alice", req).
			Return(&model.LocalRecipe{ID: "local_1", Title: "Soup", Author: "alice"}, nil).Once()
		r := setupRecipeRouter(&mockAggregator{}, recipes, nil)

		w := do(r, http.MethodPost, "/api/recipes", goodToken, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		var got model.LocalRecipe
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, "local_1", got.ID)
		assert.Equal(t, "alice", got.Author)
		recipes.AssertExpectations(t)
	})

	t.Run("missing fields", func(t *testing.T) {
		recipes := &mockRecipeService{}
		r := setupRecipeRouter(&mockAggregator{}, recipes, nil)

		bodies := []any{
			map[string]string{"title": "Soup"},
			map[string]any{"title": "Soup", "ingredients": []string{}, "instructions": "Boil."},
			map[string]any{"ingredients": []string{"water"}, "instructions": "Boil."},
		}
		for _, body := range bodies {
			w := do(r, http.MethodPost, "/api/recipes", goodToken, body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "Missing fields", errorOf(t, w))
		}
		recipes.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("blank title", func(t *testing.T) {
		recipes := &mockRecipeService{}
		recipes.On("Create", mock.Anything, "alice", mock.Anything).Return(nil, service.ErrValidation)
		r := setupRecipeRouter(&mockAggregator{}, recipes, nil)

		w := do(r, http.MethodPost, "/api/recipes", goodToken, map[string]any{
			"title": "  ", "ingredients": []string{"water"}, "instructions": "Boil.",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Missing fields", errorOf(t, w))
		recipes.AssertExpectations(t)
	})

	t.Run("malformed body", func(t *testing.T) {
		r := setupRecipeRouter(&mockAggregator{}, &mockRecipeService{}, nil)
		httpReq := httptest.NewRequest(http.MethodPost, "/api/recipes", bytes.NewBufferString("{"))
		httpReq.Header.Set("Authorization", "Bearer "+goodToken)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httpReq)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("store failure", func(t *testing.T) {
		recipes := &mockRecipeService{}
		recipes.On("Create", mock.Anything, "alice", mock.Anything).Return(nil, errors.New("write failed"))
		r := setupRecipeRouter(&mockAggregator{}, recipes, nil)

		w := do(r, http.MethodPost, "/api/recipes", goodToken, req)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Server Error", errorOf(t, w))
	})

	t.Run("rate limited", func(t *testing.T) {
		recipes := &mockRecipeService{}
		deny := func(c *gin.Context) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
		}
		r := setupRecipeRouter(&mockAggregator{}, recipes, deny)

		w := do(r, http.MethodPost, "/api/recipes", goodToken, req)
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		recipes.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestGetRecipe(t *testing.T) {
	recipes := &mockRecipeService{}
	recipes.On("Get", mock.Anything, "local_1").Return(&model.LocalRecipe{ID: "local_1", Title: "Soup"}, nil)
	recipes.On("Get", mock.Anything, "local_missing").Return(nil, service.ErrNotFound)
	recipes.On("Get", mock.Anything, "52772").Return(nil, service.ErrNotLocal)
	r := setupRecipeRouter(&mockAggregator{}, recipes, nil)

	w := do(r, http.MethodGet, "/api/recipes/local_1", "", nil)
	assert.Equal(t, http.StatusOK, w.Code, "lookup does not require a token")

	w = do(r, http.MethodGet, "/api/recipes/local_missing", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Recipe not found", errorOf(t, w))

	w = do(r, http.MethodGet, "/api/recipes/52772", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Use external route for TheMealDB recipes", errorOf(t, w))
}

func TestDeleteRecipe(t *testing.T) {
	recipes := &mockRecipeService{}
	recipes.On("Delete", mock.Anything, "alice", "local_1").Return(nil)
	recipes.On("Delete", mock.Anything, "bob", "local_1").Return(service.ErrForbidden)
	recipes.On("Delete", mock.Anything, "alice", "local_2").Return(service.ErrNotFound)
	r := setupRecipeRouter(&mockAggregator{}, recipes, nil)

	w := do(r, http.MethodDelete, "/api/recipes/local_1", otherToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Unauthorized", errorOf(t, w))

	w = do(r, http.MethodDelete, "/api/recipes/local_2", goodToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Not found", errorOf(t, w))

	w = do(r, http.MethodDelete, "/api/recipes/local_1", goodToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Deleted"}`, w.Body.String())

	w = do(r, http.MethodDelete, "/api/recipes/local_1", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
