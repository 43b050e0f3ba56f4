package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// DefaultCocktailDBURL is the public TheCocktailDB v1 endpoint.
const DefaultCocktailDBURL = "https://www.thecocktaildb.com/api/json/v1/1"

// CocktailDB is the cocktail provider.
type CocktailDB struct {
	c client
}

// NewCocktailDB creates a TheCocktailDB client. An empty baseURL selects the public API.
func NewCocktailDB(baseURL string, httpClient *http.Client) *CocktailDB {
	if baseURL == "" {
		baseURL = DefaultCocktailDBURL
	}
	return &CocktailDB{c: newClient("thecocktaildb", baseURL, httpClient)}
}

// Search returns drinks whose name matches term.
func (c *CocktailDB) Search(ctx context.Context, term string) ([]Drink, error) {
	var out drinkList
	if err := c.c.getJSON(ctx, "search", "/search.php", url.Values{"s": {term}}, &out); err != nil {
		return nil, err
	}
	return out.Drinks, nil
}

// FilterByCategory returns the abbreviated drinks of one category, e.g. "Ordinary_Drink".
func (c *CocktailDB) FilterByCategory(ctx context.Context, category string) ([]Drink, error) {
	var out drinkList
	if err := c.c.getJSON(ctx, "filter_category", "/filter.php", url.Values{"c": {category}}, &out); err != nil {
		return nil, err
	}
	return out.Drinks, nil
}

// Lookup returns one drink by id.
func (c *CocktailDB) Lookup(ctx context.Context, id string) (*Drink, error) {
	var out drinkList
	if err := c.c.getJSON(ctx, "lookup", "/lookup.php", url.Values{"i": {id}}, &out); err != nil {
		return nil, err
	}
	if len(out.Drinks) == 0 {
		return nil, fmt.Errorf("drink %s: %w", id, ErrNotFound)
	}
	return &out.Drinks[0], nil
}
