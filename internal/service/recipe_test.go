package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-nexus/backend/internal/model"
	"github.com/pageza/recipe-nexus/backend/internal/store"
	"github.com/pageza/recipe-nexus/backend/internal/types"
)

func newRecipeService(t *testing.T) (*RecipeService, *store.FileStore, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := store.NewFileStore(dir)
	require.NoError(t, err)
	return NewRecipeService(s, newTestCache(), nil), s, dir
}

func TestCreateRecipe(t *testing.T) {
	svc, s, _ := newRecipeService(t)
	fixed := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	got, err := svc.Create(context.Background(), "alice", types.CreateRecipeRequest{
		Title:        "Pancakes",
		Ingredients:  []string{"flour", "milk", "eggs"},
		Instructions: "Whisk and fry.",
		Category:     "Breakfast",
		CookingTime:  "20 min",
	})
	require.NoError(t, err)

	assert.Regexp(t, `^local_[0-9a-f-]{36}$`, got.ID)
	assert.Equal(t, "alice", got.Author)
	assert.Equal(t, fixed, got.CreatedAt)
	assert.Equal(t, model.DefaultRecipeImage, got.Image)

	stored, err := s.Get(context.Background(), got.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pancakes", stored.Title)
	assert.Equal(t, "20 min", stored.CookingTime)
}

func TestCreateRecipeValidation(t *testing.T) {
	valid := types.CreateRecipeRequest{Title: "Soup", Ingredients: []string{"water"}, Instructions: "Boil."}

	tests := map[string]func(r *types.CreateRecipeRequest){
		"missing title":        func(r *types.CreateRecipeRequest) { r.Title = "" },
		"missing ingredients":  func(r *types.CreateRecipeRequest) { r.Ingredients = nil },
		"missing instructions": func(r *types.CreateRecipeRequest) { r.Instructions = "" },
		"blank instructions":   func(r *types.CreateRecipeRequest) { r.Instructions = "   " },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			svc, _, dir := newRecipeService(t)
			before, err := os.ReadFile(filepath.Join(dir, "recipes.json"))
			require.NoError(t, err)

			req := valid
			mutate(&req)
			_, err = svc.Create(context.Background(), "alice", req)
			assert.ErrorIs(t, err, ErrValidation)

			after, err := os.ReadFile(filepath.Join(dir, "recipes.json"))
			require.NoError(t, err)
			assert.Equal(t, before, after, "store file is unchanged")
		})
	}
}

func TestDeleteRecipe(t *testing.T) {
	ctx := context.Background()
	svc, s, _ := newRecipeService(t)

	created, err := svc.Create(ctx, "alice", types.CreateRecipeRequest{
		Title: "Soup", Ingredients: []string{"water"}, Instructions: "Boil.",
	})
	require.NoError(t, err)

	t.Run("other user is forbidden", func(t *testing.T) {
		err := svc.Delete(ctx, "bob", created.ID)
		assert.ErrorIs(t, err, ErrForbidden)

		_, err = s.Get(ctx, created.ID)
		assert.NoError(t, err, "record is still present")
	})

	t.Run("unknown id", func(t *testing.T) {
		assert.ErrorIs(t, svc.Delete(ctx, "alice", "local_nope"), ErrNotFound)
	})

	t.Run("author deletes", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, "alice", created.ID))
		_, err := s.Get(ctx, created.ID)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestGetRecipe(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newRecipeService(t)

	_, err := svc.Get(ctx, "52772")
	assert.ErrorIs(t, err, ErrNotLocal)
	_, err = svc.Get(ctx, "dummy_1")
	assert.ErrorIs(t, err, ErrNotLocal)
	_, err = svc.Get(ctx, "local_missing")
	assert.ErrorIs(t, err, ErrNotFound)

	created, err := svc.Create(ctx, "alice", types.CreateRecipeRequest{
		Title: "Soup", Ingredients: []string{"water"}, Instructions: "Boil.",
	})
	require.NoError(t, err)
	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Soup", got.Title)
}

type failingInvalidation struct{ *testCache }

func (failingInvalidation) DeleteByPrefix(context.Context, string) (int, error) {
	return 0, errors.New("cache unavailable")
}

func TestCreateSucceedsWhenInvalidationFails(t *testing.T) {
	s, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)
	svc := NewRecipeService(s, failingInvalidation{newTestCache()}, nil)

	_, err = svc.Create(context.Background(), "alice", types.CreateRecipeRequest{
		Title: "Soup", Ingredients: []string{"water"}, Instructions: "Boil.",
	})
	assert.NoError(t, err)
}
