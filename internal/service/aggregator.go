package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pageza/recipe-nexus/backend/internal/cache"
	"github.com/pageza/recipe-nexus/backend/internal/metrics"
	"github.com/pageza/recipe-nexus/backend/internal/model"
	"github.com/pageza/recipe-nexus/backend/internal/store"
)

const (
	categoryAll        = "All"
	categoryQuickMeals = "Quick Meals"
	// quickMealsUpstream is what the primary provider calls "Quick Meals".
	quickMealsUpstream = "Starter"
	drinkFilter        = "Ordinary_Drink"
	alternateListLimit = 20
)

// Aggregation fault reasons.
const (
	faultTaskPanic  = "task_panic"
	faultMergePanic = "merge_panic"
	faultAllFailed  = "all_failed"
)

// Aggregator merges local recipes with the three upstream providers.
type Aggregator struct {
	recipes   store.RecipeStore
	cache     cache.Cache
	meals     MealSource
	dummy     DummySource
	drinks    DrinkSource
	mergedTTL time.Duration
	logger    *zap.Logger
}

// NewAggregator wires the engine. A non-positive mergedTTL selects cache.MergedTTL.
func NewAggregator(recipes store.RecipeStore, c cache.Cache, meals MealSource, dummy DummySource, drinks DrinkSource, mergedTTL time.Duration, logger *zap.Logger) *Aggregator {
	if mergedTTL <= 0 {
		mergedTTL = cache.MergedTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{
		recipes:   recipes,
		cache:     c,
		meals:     meals,
		dummy:     dummy,
		drinks:    drinks,
		mergedTTL: mergedTTL,
		logger:    logger,
	}
}

// MergedKey is the cache key of one (term, category) listing.
func MergedKey(term, category string) string {
	t := strings.ToLower(strings.TrimSpace(term))
	if t == "" {
		t = "all"
	}
	c := strings.TrimSpace(category)
	if c == "" {
		c = "all"
	}
	return cache.MergedPrefix + t + "_" + c
}

// GetMerged returns the encoded merged listing, serving it from cache when
// possible. Only a persistence fault is returned as an error.
func (a *Aggregator) GetMerged(ctx context.Context, term, category string) ([]byte, error) {
	key := MergedKey(term, category)

	data, ok, err := a.cache.Get(ctx, key)
	if err != nil {
		a.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
	}
	metrics.CacheLookup("merged", ok)
	if ok {
		return data, nil
	}

	// The generation is read before the store so a write that lands while
	// the upstreams are in flight keeps this result out of the cache.
	gen, genErr := a.cache.Generation(ctx)
	if genErr != nil {
		a.logger.Warn("cache generation read failed", zap.Error(genErr))
	}

	recipes, cacheable, err := a.Merge(ctx, term, category)
	if err != nil {
		return nil, err
	}

	data, err = json.Marshal(recipes)
	if err != nil {
		return nil, fmt.Errorf("encode merged recipes: %w", err)
	}
	if cacheable && genErr == nil {
		stored, err := a.cache.SetIfGeneration(ctx, key, data, a.mergedTTL, gen)
		switch {
		case err != nil:
			a.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
		case !stored:
			a.logger.Debug("merged listing invalidated while computing", zap.String("key", key))
		}
	}
	return data, nil
}

// Merge computes the listing without consulting the cache. The bool reports
// whether the result may be cached; it is false after an aggregation fault,
// in which case only the local records are returned.
func (a *Aggregator) Merge(ctx context.Context, term, category string) ([]model.Recipe, bool, error) {
	term = strings.TrimSpace(term)
	category = strings.TrimSpace(category)

	local, err := a.localRecipes(ctx, term, category)
	if err != nil {
		return nil, false, err
	}

	external, fault := a.external(ctx, term, category)
	if fault != "" {
		metrics.AggregationFault(fault)
		a.logger.Warn("aggregation degraded to local results",
			zap.String("reason", fault),
			zap.String("term", term),
			zap.String("category", category),
		)
		return local, false, nil
	}

	out := make([]model.Recipe, 0, len(local)+len(external))
	out = append(out, local...)
	out = append(out, external...)
	return out, true, nil
}

func (a *Aggregator) localRecipes(ctx context.Context, term, category string) ([]model.Recipe, error) {
	all, err := a.recipes.List(ctx)
	if err != nil {
		a.logger.Error("failed to read local recipes", zap.Error(err))
		return nil, fmt.Errorf("read local recipes: %w", err)
	}

	needle := strings.ToLower(term)
	out := make([]model.Recipe, 0, len(all))
	for _, r := range all {
		if needle != "" && !matchesTerm(r, needle) {
			continue
		}
		if category != "" && category != categoryAll && r.Category != category {
			continue
		}
		out = append(out, NormalizeLocal(r))
	}
	return out, nil
}

func matchesTerm(r model.LocalRecipe, needle string) bool {
	if strings.Contains(strings.ToLower(r.Title), needle) {
		return true
	}
	for _, ing := range r.Ingredients {
		if strings.Contains(strings.ToLower(ing), needle) {
			return true
		}
	}
	return false
}

// upstreamCall is one planned provider request.
type upstreamCall struct {
	provider string
	fetch    func(ctx context.Context) ([]model.Recipe, error)
}

// callResult is the outcome of one upstream call. A failed call carries err
// and no records.
type callResult struct {
	records  []model.Recipe
	err      error
	panicked bool
}

// plan decides which provider calls a (term, category) pair needs, in
// primary, alternate, cocktail order.
func (a *Aggregator) plan(term, category string) []upstreamCall {
	specific := category != "" && category != categoryAll
	var calls []upstreamCall

	switch {
	case term != "":
		calls = append(calls, upstreamCall{"primary", func(ctx context.Context) ([]model.Recipe, error) {
			return a.mealsByTerm(ctx, term)
		}})
	case specific && category != drinksCategory:
		calls = append(calls, upstreamCall{"primary", func(ctx context.Context) ([]model.Recipe, error) {
			return a.mealsByCategory(ctx, category)
		}})
	case !specific:
		calls = append(calls, upstreamCall{"primary", func(ctx context.Context) ([]model.Recipe, error) {
			return a.mealsByTerm(ctx, "")
		}})
	}

	switch {
	case term != "":
		calls = append(calls, upstreamCall{"alternate", func(ctx context.Context) ([]model.Recipe, error) {
			found, err := a.dummy.Search(ctx, term)
			return mapAll(found, NormalizeDummy), err
		}})
	case !specific:
		calls = append(calls, upstreamCall{"alternate", func(ctx context.Context) ([]model.Recipe, error) {
			found, err := a.dummy.List(ctx, alternateListLimit)
			return mapAll(found, NormalizeDummy), err
		}})
	}

	if term != "" || category == drinksCategory {
		calls = append(calls, upstreamCall{"cocktail", func(ctx context.Context) ([]model.Recipe, error) {
			if term != "" {
				found, err := a.drinks.Search(ctx, term)
				return mapAll(found, NormalizeCocktail), err
			}
			found, err := a.drinks.FilterByCategory(ctx, drinkFilter)
			return mapAll(found, NormalizeCocktail), err
		}})
	}
	return calls
}

func (a *Aggregator) mealsByTerm(ctx context.Context, term string) ([]model.Recipe, error) {
	found, err := a.meals.Search(ctx, term)
	return mapAll(found, NormalizeMealDB), err
}

// mealsByCategory filters the primary provider by category, asking for the
// upstream synonym where one exists and tagging results with the category
// the caller asked for.
func (a *Aggregator) mealsByCategory(ctx context.Context, category string) ([]model.Recipe, error) {
	upstream := category
	if category == categoryQuickMeals {
		upstream = quickMealsUpstream
	}
	found, err := a.meals.FilterByCategory(ctx, upstream)
	if err != nil {
		return nil, err
	}
	out := mapAll(found, NormalizeMealDB)
	for i := range out {
		out[i].Category = category
	}
	return out, nil
}

// external runs the plan and merges its results. A non-empty fault means
// the upstream records must be discarded.
func (a *Aggregator) external(ctx context.Context, term, category string) (_ []model.Recipe, fault string) {
	calls := a.plan(term, category)
	if len(calls) == 0 {
		return nil, ""
	}

	results := make([]callResult, len(calls))
	var g errgroup.Group
	for i, call := range calls {
		i, call := i, call
		g.Go(func() error {
			results[i] = a.invoke(ctx, call)
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for i, res := range results {
		if res.panicked {
			a.logger.Error("upstream task panicked", zap.String("provider", calls[i].provider), zap.Error(res.err))
			return nil, faultTaskPanic
		}
		if res.err != nil {
			failed++
			a.logger.Warn("upstream call failed", zap.String("provider", calls[i].provider), zap.Error(res.err))
		}
	}
	if failed == len(results) {
		return nil, faultAllFailed
	}

	merged, err := mergeResults(results, category)
	if err != nil {
		a.logger.Error("merge failed", zap.Error(err))
		return nil, faultMergePanic
	}
	return merged, ""
}

// invoke runs one call, converting both errors and panics into a callResult.
func (a *Aggregator) invoke(ctx context.Context, call upstreamCall) (res callResult) {
	defer func() {
		if r := recover(); r != nil {
			res = callResult{err: fmt.Errorf("panic: %v", r), panicked: true}
		}
	}()
	records, err := call.fetch(ctx)
	if err != nil {
		return callResult{err: err}
	}
	return callResult{records: records}
}

// mergeResults concatenates results in plan order, drops duplicate ids and,
// for a specific category, keeps only matching records.
func mergeResults(results []callResult, category string) (out []model.Recipe, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("panic: %v", r)
		}
	}()

	var all []model.Recipe
	for _, res := range results {
		all = append(all, res.records...)
	}
	out = dedupe(all)

	if category != "" && category != categoryAll && category != drinksCategory {
		kept := out[:0]
		for _, r := range out {
			if r.Category != "" && strings.EqualFold(r.Category, category) {
				kept = append(kept, r)
			}
		}
		out = kept
	}
	return out, nil
}

// dedupe keeps one record per id at the position of its first occurrence.
// A later duplicate replaces it only when it carries a category and the
// kept one does not.
func dedupe(records []model.Recipe) []model.Recipe {
	index := make(map[string]int, len(records))
	out := make([]model.Recipe, 0, len(records))
	for _, r := range records {
		if r.ID == "" {
			continue
		}
		i, seen := index[r.ID]
		if !seen {
			index[r.ID] = len(out)
			out = append(out, r)
			continue
		}
		if r.Category != "" && out[i].Category == "" {
			out[i] = r
		}
	}
	return out
}

func mapAll[T any](in []T, fn func(T) model.Recipe) []model.Recipe {
	if len(in) == 0 {
		return nil
	}
	out := make([]model.Recipe, len(in))
	for i, v := range in {
		out[i] = fn(v)
	}
	return out
}
