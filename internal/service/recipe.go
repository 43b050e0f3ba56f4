package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/recipe-nexus/backend/internal/cache"
	"github.com/pageza/recipe-nexus/backend/internal/metrics"
	"github.com/pageza/recipe-nexus/backend/internal/model"
	"github.com/pageza/recipe-nexus/backend/internal/store"
	"github.com/pageza/recipe-nexus/backend/internal/types"
)

// RecipeService handles local recipe operations
type RecipeService struct {
	recipes store.RecipeStore
	cache   cache.Cache
	logger  *zap.Logger
	now     func() time.Time
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(recipes store.RecipeStore, c cache.Cache, logger *zap.Logger) *RecipeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecipeService{
		recipes: recipes,
		cache:   c,
		logger:  logger,
		now:     time.Now,
	}
}

// Create validates and stores a new local recipe authored by author.
func (s *RecipeService) Create(ctx context.Context, author string, req types.CreateRecipeRequest) (*model.LocalRecipe, error) {
	if strings.TrimSpace(req.Title) == "" || len(req.Ingredients) == 0 || strings.TrimSpace(req.Instructions) == "" {
		return nil, ErrValidation
	}

	image := req.Image
	if image == "" {
		image = model.DefaultRecipeImage
	}
	recipe := &model.LocalRecipe{
		ID:           model.PrefixLocal + uuid.NewString(),
		Title:        req.Title,
		Category:     req.Category,
		Ingredients:  model.JSONStringArray(req.Ingredients),
		Instructions: req.Instructions,
		CookingTime:  req.CookingTime,
		Image:        image,
		Author:       author,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.recipes.Create(ctx, recipe); err != nil {
		s.logger.Error("failed to create recipe", zap.String("author", author), zap.Error(err))
		return nil, fmt.Errorf("create recipe: %w", err)
	}

	s.invalidateMerged(ctx)
	return recipe, nil
}

// Get returns a local recipe by its prefixed id.
func (s *RecipeService) Get(ctx context.Context, id string) (*model.LocalRecipe, error) {
	if !strings.HasPrefix(id, model.PrefixLocal) {
		return nil, ErrNotLocal
	}
	recipe, err := s.recipes.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	return recipe, nil
}

// Delete removes a recipe. Only its author may delete it.
func (s *RecipeService) Delete(ctx context.Context, actor, id string) error {
	recipe, err := s.recipes.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("get recipe: %w", err)
	}
	if recipe.Author != actor {
		return ErrForbidden
	}

	if err := s.recipes.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		s.logger.Error("failed to delete recipe", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("delete recipe: %w", err)
	}

	s.invalidateMerged(ctx)
	return nil
}

// invalidateMerged drops every cached merged listing. The write has already
// succeeded, so a failure here is only logged; stale entries expire with
// the merged TTL.
func (s *RecipeService) invalidateMerged(ctx context.Context) {
	n, err := s.cache.DeleteByPrefix(ctx, cache.MergedPrefix)
	if err != nil {
		s.logger.Warn("failed to invalidate merged cache", zap.Error(err))
		return
	}
	metrics.CacheInvalidated(n)
}
