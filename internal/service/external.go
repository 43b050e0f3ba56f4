package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pageza/recipe-nexus/backend/internal/cache"
	"github.com/pageza/recipe-nexus/backend/internal/metrics"
	"github.com/pageza/recipe-nexus/backend/internal/model"
	"github.com/pageza/recipe-nexus/backend/internal/provider"
)

// ExternalService serves single-provider lookups through the cache.
type ExternalService struct {
	cache  cache.Cache
	meals  MealSource
	dummy  DummySource
	drinks DrinkSource
	ttl    time.Duration
	logger *zap.Logger
}

// NewExternalService wires the passthroughs. A non-positive ttl selects the cache default.
func NewExternalService(c cache.Cache, meals MealSource, dummy DummySource, drinks DrinkSource, ttl time.Duration, logger *zap.Logger) *ExternalService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExternalService{cache: c, meals: meals, dummy: dummy, drinks: drinks, ttl: ttl, logger: logger}
}

// Categories returns the primary provider's category list.
func (s *ExternalService) Categories(ctx context.Context) ([]byte, error) {
	return s.cached(ctx, "categories", func(ctx context.Context) (any, error) {
		cats, err := s.meals.Categories(ctx)
		if cats == nil {
			cats = []model.Category{}
		}
		return cats, err
	})
}

// Search returns primary-provider meals matching term.
func (s *ExternalService) Search(ctx context.Context, term string) ([]byte, error) {
	return s.cached(ctx, "search_"+term, func(ctx context.Context) (any, error) {
		meals, err := s.meals.Search(ctx, term)
		return nonNil(mapAll(meals, NormalizeMealDB)), err
	})
}

// Recipe looks up one upstream recipe, choosing the provider by id prefix.
func (s *ExternalService) Recipe(ctx context.Context, id string) ([]byte, error) {
	return s.cached(ctx, "recipe_"+id, func(ctx context.Context) (any, error) {
		switch model.OriginFromID(id) {
		case model.OriginAlternate:
			d, err := s.dummy.Get(ctx, strings.TrimPrefix(id, model.PrefixAlternate))
			if err != nil {
				return nil, err
			}
			return NormalizeDummy(*d), nil
		case model.OriginCocktail:
			d, err := s.drinks.Lookup(ctx, strings.TrimPrefix(id, model.PrefixCocktail))
			if err != nil {
				return nil, err
			}
			return NormalizeCocktail(*d), nil
		case model.OriginLocal:
			return nil, ErrNotFound
		default:
			m, err := s.meals.Lookup(ctx, id)
			if err != nil {
				return nil, err
			}
			return NormalizeMealDB(*m), nil
		}
	})
}

// Filter lists primary-provider meals by category, or by area when no
// category is given.
func (s *ExternalService) Filter(ctx context.Context, category, area string) ([]byte, error) {
	if category == "" && area == "" {
		return nil, ErrBadFilter
	}
	return s.cached(ctx, "filter_"+category+"_"+area, func(ctx context.Context) (any, error) {
		var (
			meals []provider.Meal
			err   error
		)
		if category != "" {
			meals, err = s.meals.FilterByCategory(ctx, category)
		} else {
			meals, err = s.meals.FilterByArea(ctx, area)
		}
		return nonNil(mapAll(meals, NormalizeMealDB)), err
	})
}

// cached serves key from the cache, or runs load and caches its encoded
// result. Failures are never cached.
func (s *ExternalService) cached(ctx context.Context, key string, load func(context.Context) (any, error)) ([]byte, error) {
	data, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
	}
	metrics.CacheLookup("external", ok)
	if ok {
		return data, nil
	}

	v, err := load(ctx)
	if err != nil {
		if errors.Is(err, provider.ErrNotFound) || errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		s.logger.Warn("upstream passthrough failed", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	data, err = cache.SetJSON(ctx, s.cache, key, v, s.ttl)
	if err != nil {
		if data == nil {
			return nil, err
		}
		s.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
	return data, nil
}

func nonNil(r []model.Recipe) []model.Recipe {
	if r == nil {
		return []model.Recipe{}
	}
	return r
}
