package store

import (
	"context"
	"errors"
	"fmt"
)

// Copy writes every user and recipe of src into dst, preserving recipe
// order. Records dst already holds are skipped, so a rerun is harmless.
// It returns how many users and recipes were written.
func Copy(ctx context.Context, src, dst Store) (users, recipes int, err error) {
	us, err := src.ListUsers(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("list users: %w", err)
	}
	for i := range us {
		switch err := dst.CreateUser(ctx, &us[i]); {
		case err == nil:
			users++
		case errors.Is(err, ErrDuplicate):
		default:
			return users, recipes, fmt.Errorf("copy user %s: %w", us[i].Username, err)
		}
	}

	rs, err := src.List(ctx)
	if err != nil {
		return users, recipes, fmt.Errorf("list recipes: %w", err)
	}
	for i := range rs {
		switch err := dst.Create(ctx, &rs[i]); {
		case err == nil:
			recipes++
		case errors.Is(err, ErrDuplicate):
		default:
			return users, recipes, fmt.Errorf("copy recipe %s: %w", rs[i].ID, err)
		}
	}
	return users, recipes, nil
}
