package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-nexus/backend/internal/model"
)

func TestExternalCategoriesCached(t *testing.T) {
	f := newFixture(t, respond(`{"categories":[{"idCategory":"1","strCategory":"Beef","strCategoryThumb":"x","strCategoryDescription":"Cow"}]}`), nil, nil)
	svc := f.external()
	ctx := context.Background()

	first, err := svc.Categories(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"idCategory":"1","strCategory":"Beef","strCategoryThumb":"x","strCategoryDescription":"Cow"}]`, string(first))

	second, err := svc.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, int64(1), f.calls.Load())
}

func TestExternalSearchEmpty(t *testing.T) {
	f := newFixture(t, respond(`{"meals":null}`), nil, nil)

	data, err := f.external().Search(context.Background(), "zzz")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestExternalRecipeDispatch(t *testing.T) {
	f := newFixture(t,
		func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/lookup.php", r.URL.Path)
			if r.URL.Query().Get("i") == "52772" {
				respond(mealsJSON(mealFixture{"52772", "Teriyaki Chicken", "Chicken"}))(w, r)
				return
			}
			respond(`{"meals":null}`)(w, r)
		},
		func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/recipes/7" {
				respond(`{"id":7,"name":"Tacos","cuisine":"Mexican","tags":["Street"],"ingredients":["Tortilla"],"instructions":["Fill"]}`)(w, r)
				return
			}
			w.WriteHeader(http.StatusNotFound)
		},
		func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("i") == "11007" {
				respond(drinkBody)(w, r)
				return
			}
			respond(`{"drinks":null}`)(w, r)
		},
	)
	svc := f.external()
	ctx := context.Background()

	data, err := svc.Recipe(ctx, "52772")
	require.NoError(t, err)
	var meal model.Recipe
	require.NoError(t, meal.UnmarshalJSON(data))
	assert.Equal(t, "Teriyaki Chicken", meal.Name)
	assert.Equal(t, model.OriginPrimary, meal.Origin)

	data, err = svc.Recipe(ctx, "dummy_7")
	require.NoError(t, err)
	var tacos model.Recipe
	require.NoError(t, tacos.UnmarshalJSON(data))
	assert.Equal(t, "dummy_7", tacos.ID)
	assert.Equal(t, "Street", tacos.Category, "falls back to the first tag")
	assert.Equal(t, "Mexican", tacos.Area)

	data, err = svc.Recipe(ctx, "cocktail_11007")
	require.NoError(t, err)
	var drink model.Recipe
	require.NoError(t, drink.UnmarshalJSON(data))
	assert.Equal(t, "Margarita", drink.Name)
	assert.Equal(t, []model.Ingredient{{Name: "Tequila", Measure: "1 1/2 oz", Slot: 1}}, drink.Ingredients)

	for _, id := range []string{"1", "dummy_99", "cocktail_1", "local_abc"} {
		_, err := svc.Recipe(ctx, id)
		assert.ErrorIs(t, err, ErrNotFound, id)
	}
}

func TestExternalFilter(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("c") != "" {
			assert.Empty(t, q.Get("a"), "category wins over area")
		}
		respond(mealsJSON(mealFixture{"1", "Pie", ""}))(w, r)
	}, nil, nil)
	svc := f.external()
	ctx := context.Background()

	_, err := svc.Filter(ctx, "", "")
	assert.ErrorIs(t, err, ErrBadFilter)

	_, err = svc.Filter(ctx, "Beef", "Canadian")
	require.NoError(t, err)
	_, err = svc.Filter(ctx, "", "Canadian")
	require.NoError(t, err)

	_, ok, _ := f.cache.Get(ctx, "filter_Beef_Canadian")
	assert.True(t, ok)
	_, ok, _ = f.cache.Get(ctx, "filter__Canadian")
	assert.True(t, ok)
}

func TestExternalFailureNotCached(t *testing.T) {
	f := newFixture(t, nil, nil, nil)
	svc := f.external()
	ctx := context.Background()

	_, err := svc.Search(ctx, "chicken")
	assert.ErrorIs(t, err, ErrUpstream)
	assert.Equal(t, 0, f.cache.Len())
}
