package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pageza/recipe-nexus/backend/internal/model"
)

// DefaultMealDBURL is the public TheMealDB v1 endpoint.
const DefaultMealDBURL = "https://www.themealdb.com/api/json/v1/1"

// MealDB is the primary recipe provider.
type MealDB struct {
	c client
}

// NewMealDB creates a TheMealDB client. An empty baseURL selects the public API.
func NewMealDB(baseURL string, httpClient *http.Client) *MealDB {
	if baseURL == "" {
		baseURL = DefaultMealDBURL
	}
	return &MealDB{c: newClient("themealdb", baseURL, httpClient)}
}

// Search returns meals whose name matches term. An empty term lists meals.
func (m *MealDB) Search(ctx context.Context, term string) ([]Meal, error) {
	var out mealList
	if err := m.c.getJSON(ctx, "search", "/search.php", url.Values{"s": {term}}, &out); err != nil {
		return nil, err
	}
	return out.Meals, nil
}

// FilterByCategory returns the abbreviated meals of one category.
func (m *MealDB) FilterByCategory(ctx context.Context, category string) ([]Meal, error) {
	var out mealList
	if err := m.c.getJSON(ctx, "filter_category", "/filter.php", url.Values{"c": {category}}, &out); err != nil {
		return nil, err
	}
	return out.Meals, nil
}

// FilterByArea returns the abbreviated meals of one area.
func (m *MealDB) FilterByArea(ctx context.Context, area string) ([]Meal, error) {
	var out mealList
	if err := m.c.getJSON(ctx, "filter_area", "/filter.php", url.Values{"a": {area}}, &out); err != nil {
		return nil, err
	}
	return out.Meals, nil
}

// Lookup returns one meal by id.
func (m *MealDB) Lookup(ctx context.Context, id string) (*Meal, error) {
	var out mealList
	if err := m.c.getJSON(ctx, "lookup", "/lookup.php", url.Values{"i": {id}}, &out); err != nil {
		return nil, err
	}
	if len(out.Meals) == 0 {
		return nil, fmt.Errorf("meal %s: %w", id, ErrNotFound)
	}
	return &out.Meals[0], nil
}

// Categories returns the provider's category list.
func (m *MealDB) Categories(ctx context.Context) ([]model.Category, error) {
	var out categoryList
	if err := m.c.getJSON(ctx, "categories", "/categories.php", nil, &out); err != nil {
		return nil, err
	}
	return out.Categories, nil
}
