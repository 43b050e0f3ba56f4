package service

import (
	"context"

	"github.com/pageza/recipe-nexus/backend/internal/model"
	"github.com/pageza/recipe-nexus/backend/internal/provider"
	"github.com/pageza/recipe-nexus/backend/internal/types"
)

// MealSource is the primary provider as the services use it.
type MealSource interface {
	Search(ctx context.Context, term string) ([]provider.Meal, error)
	FilterByCategory(ctx context.Context, category string) ([]provider.Meal, error)
	FilterByArea(ctx context.Context, area string) ([]provider.Meal, error)
	Lookup(ctx context.Context, id string) (*provider.Meal, error)
	Categories(ctx context.Context) ([]model.Category, error)
}

// DummySource is the alternate provider.
type DummySource interface {
	Search(ctx context.Context, q string) ([]provider.DummyRecipe, error)
	List(ctx context.Context, limit int) ([]provider.DummyRecipe, error)
	Get(ctx context.Context, id string) (*provider.DummyRecipe, error)
}

// DrinkSource is the cocktail provider.
type DrinkSource interface {
	Search(ctx context.Context, term string) ([]provider.Drink, error)
	FilterByCategory(ctx context.Context, category string) ([]provider.Drink, error)
	Lookup(ctx context.Context, id string) (*provider.Drink, error)
}

// IAggregator defines the merged recipe listing.
type IAggregator interface {
	GetMerged(ctx context.Context, term, category string) ([]byte, error)
}

// IRecipeService defines local recipe operations.
type IRecipeService interface {
	Create(ctx context.Context, author string, req types.CreateRecipeRequest) (*model.LocalRecipe, error)
	Get(ctx context.Context, id string) (*model.LocalRecipe, error)
	Delete(ctx context.Context, actor, id string) error
}

// IExternalService defines the cached single-provider passthroughs.
type IExternalService interface {
	Categories(ctx context.Context) ([]byte, error)
	Search(ctx context.Context, term string) ([]byte, error)
	Recipe(ctx context.Context, id string) ([]byte, error)
	Filter(ctx context.Context, category, area string) ([]byte, error)
}

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, username, password string) (*model.User, error)
	Login(ctx context.Context, username, password string) (*types.LoginResponse, error)
	GenerateToken(claims *types.TokenClaims) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}

var (
	_ MealSource  = (*provider.MealDB)(nil)
	_ DummySource = (*provider.DummyJSON)(nil)
	_ DrinkSource = (*provider.CocktailDB)(nil)
)
