package provider

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// DefaultDummyJSONURL is the public DummyJSON endpoint.
const DefaultDummyJSONURL = "https://dummyjson.com"

// DummyJSON is the alternate recipe provider.
type DummyJSON struct {
	c client
}

// NewDummyJSON creates a DummyJSON client. An empty baseURL selects the public API.
func NewDummyJSON(baseURL string, httpClient *http.Client) *DummyJSON {
	if baseURL == "" {
		baseURL = DefaultDummyJSONURL
	}
	return &DummyJSON{c: newClient("dummyjson", baseURL, httpClient)}
}

// Search returns recipes matching q.
func (d *DummyJSON) Search(ctx context.Context, q string) ([]DummyRecipe, error) {
	var out dummyList
	if err := d.c.getJSON(ctx, "search", "/recipes/search", url.Values{"q": {q}}, &out); err != nil {
		return nil, err
	}
	return out.Recipes, nil
}

// List returns the first limit recipes.
func (d *DummyJSON) List(ctx context.Context, limit int) ([]DummyRecipe, error) {
	var out dummyList
	if err := d.c.getJSON(ctx, "list", "/recipes", url.Values{"limit": {strconv.Itoa(limit)}}, &out); err != nil {
		return nil, err
	}
	return out.Recipes, nil
}

// Get returns one recipe by its numeric id.
func (d *DummyJSON) Get(ctx context.Context, id string) (*DummyRecipe, error) {
	var out DummyRecipe
	if err := d.c.getJSON(ctx, "get", "/recipes/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
