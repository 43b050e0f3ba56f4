// Package store persists local recipes and user accounts.
package store

import (
	"context"
	"errors"

	"github.com/pageza/recipe-nexus/backend/internal/model"
)

var (
	// ErrNotFound is returned when no record matches.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique key is already taken.
	ErrDuplicate = errors.New("record already exists")
)

// RecipeStore holds user-submitted recipes in insertion order.
type RecipeStore interface {
	List(ctx context.Context) ([]model.LocalRecipe, error)
	Get(ctx context.Context, id string) (*model.LocalRecipe, error)
	Create(ctx context.Context, recipe *model.LocalRecipe) error
	Delete(ctx context.Context, id string) error
}

// UserStore holds accounts keyed by username.
type UserStore interface {
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	CreateUser(ctx context.Context, user *model.User) error
	ListUsers(ctx context.Context) ([]model.User, error)
}

// Store is implemented by every backend in this package.
type Store interface {
	RecipeStore
	UserStore
	Ping(ctx context.Context) error
	Close() error
}
