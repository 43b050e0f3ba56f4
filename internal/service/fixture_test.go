package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-nexus/backend/internal/cache"
	"github.com/pageza/recipe-nexus/backend/internal/model"
	"github.com/pageza/recipe-nexus/backend/internal/provider"
	"github.com/pageza/recipe-nexus/backend/internal/store"
)

// fixture runs the three providers as httptest servers and counts every
// request they receive.
type fixture struct {
	t      *testing.T
	calls  atomic.Int64
	cache  *cache.MemoryCache
	store  *store.FileStore
	meals  *provider.MealDB
	dummy  *provider.DummyJSON
	drinks *provider.CocktailDB
}

func failing(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusInternalServerError)
}

func newFixture(t *testing.T, meal, dummy, drink http.HandlerFunc) *fixture {
	t.Helper()
	f := &fixture{t: t, cache: cache.NewMemoryCache(cache.DefaultTTL, 0)}

	serve := func(h http.HandlerFunc) string {
		if h == nil {
			h = failing
		}
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			f.calls.Add(1)
			h(w, r)
		}))
		t.Cleanup(ts.Close)
		return ts.URL
	}

	client := &http.Client{Timeout: 2 * time.Second}
	f.meals = provider.NewMealDB(serve(meal), client)
	f.dummy = provider.NewDummyJSON(serve(dummy), client)
	f.drinks = provider.NewCocktailDB(serve(drink), client)

	s, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)
	f.store = s
	return f
}

func (f *fixture) aggregator() *Aggregator {
	return NewAggregator(f.store, f.cache, f.meals, f.dummy, f.drinks, 0, nil)
}

func (f *fixture) recipes() *RecipeService {
	return NewRecipeService(f.store, f.cache, nil)
}

func (f *fixture) external() *ExternalService {
	return NewExternalService(f.cache, f.meals, f.dummy, f.drinks, 0, nil)
}

func (f *fixture) addLocal(title, category, author string, ingredients ...string) *model.LocalRecipe {
	f.t.Helper()
	r := &model.LocalRecipe{
		ID:           model.PrefixLocal + uuid.NewString(),
		Title:        title,
		Category:     category,
		Ingredients:  ingredients,
		Instructions: "Cook it.",
		Author:       author,
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(f.t, f.store.Create(context.Background(), r))
	return r
}

func decodeRecipes(t *testing.T, data []byte) []model.Recipe {
	t.Helper()
	var out []model.Recipe
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

type mealFixture struct {
	ID       string
	Name     string
	Category string
}

func mealsJSON(meals ...mealFixture) string {
	parts := make([]string, len(meals))
	for i, m := range meals {
		cat := "null"
		if m.Category != "" {
			cat = fmt.Sprintf("%q", m.Category)
		}
		parts[i] = fmt.Sprintf(`{"idMeal":%q,"strMeal":%q,"strMealThumb":"https://img/%s.jpg","strCategory":%s,"strArea":"British","strIngredient1":"Salt","strMeasure1":"1 tsp"}`,
			m.ID, m.Name, m.ID, cat)
	}
	return `{"meals":[` + strings.Join(parts, ",") + `]}`
}

func respond(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	}
}

const (
	dummyBody = `{"recipes":[{"id":1,"name":"Margherita Pizza","image":"https://img/pizza.jpg","cuisine":"Italian","mealType":["Dinner"],"ingredients":["Dough","Tomato"],"instructions":["Stretch","Bake"]},
		{"id":2,"name":"Plain Rice","ingredients":["Rice"],"instructions":"Boil."}]}`
	drinkBody = `{"drinks":[{"idDrink":"11007","strDrink":"Margarita","strDrinkThumb":"https://img/margarita.jpg","strCategory":"Ordinary Drink","strInstructions":"Shake.","strIngredient1":"Tequila","strMeasure1":"1 1/2 oz"}]}`
)

type testCache = cache.MemoryCache

func newTestCache() *testCache {
	return cache.NewMemoryCache(cache.DefaultTTL, 0)
}
