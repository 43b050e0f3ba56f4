// Command seed creates demo accounts and a few local recipes in the
// configured store. Rerunning it skips what already exists.
package main

import (
	"context"
	"errors"
	"flag"
	"log"

	"go.uber.org/zap"

	"github.com/pageza/recipe-nexus/backend/config"
	"github.com/pageza/recipe-nexus/backend/internal/app"
	"github.com/pageza/recipe-nexus/backend/internal/logger"
	"github.com/pageza/recipe-nexus/backend/internal/service"
	"github.com/pageza/recipe-nexus/backend/internal/types"
)

var demoUsers = []string{"chef_ada", "chef_linus", "chef_grace"}

var demoRecipes = []struct {
	author string
	recipe types.CreateRecipeRequest
}{
	{"chef_ada", types.CreateRecipeRequest{
		Title:        "Solar Flare Soup",
		Ingredients:  []string{"2 red chilies", "4 tomatoes", "1 onion", "500ml vegetable stock"},
		Instructions: "Sweat the onion. Add chilies and tomatoes, cover with stock and simmer for 20 minutes. Blend until smooth.",
		Category:     "Vegetarian",
		CookingTime:  "30 min",
	}},
	{"chef_linus", types.CreateRecipeRequest{
		Title:        "Kernel Panic Pancakes",
		Ingredients:  []string{"200g flour", "2 eggs", "300ml milk", "1 tbsp sugar"},
		Instructions: "Whisk everything into a smooth batter. Fry ladlefuls in a hot buttered pan until golden on both sides.",
		Category:     "Breakfast",
		CookingTime:  "20 min",
	}},
	{"chef_grace", types.CreateRecipeRequest{
		Title:        "Compiler Cookies",
		Ingredients:  []string{"250g butter", "200g brown sugar", "1 egg", "300g flour", "150g chocolate chips"},
		Instructions: "Cream butter and sugar, beat in the egg, fold in flour and chips. Bake at 180C for 12 minutes.",
		Category:     "Dessert",
		CookingTime:  "25 min",
	}},
}

func main() {
	configPath := flag.String("config", "", "path to a config file")
	password := flag.String("password", "testpassword123", "password for every demo account")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	zlog, err := logger.New(logger.Config{Level: cfg.LogLevel, Format: "console", Development: true})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	a, err := app.New(cfg, zlog)
	if err != nil {
		zlog.Fatal("failed to open store", zap.Error(err))
	}
	defer a.Close()

	ctx := context.Background()
	auth := service.NewAuthService(a.Store, cfg.JWTSecret, cfg.JWTExpiration, zlog)
	recipes := service.NewRecipeService(a.Store, a.Cache, zlog)

	for _, name := range demoUsers {
		_, err := auth.Register(ctx, name, *password)
		switch {
		case err == nil:
			zlog.Info("created user", zap.String("username", name))
		case errors.Is(err, service.ErrUserExists):
			zlog.Info("user exists, skipping", zap.String("username", name))
		default:
			zlog.Fatal("failed to create user", zap.String("username", name), zap.Error(err))
		}
	}

	existing, err := a.Store.List(ctx)
	if err != nil {
		zlog.Fatal("failed to list recipes", zap.Error(err))
	}
	seen := make(map[string]bool, len(existing))
	for _, r := range existing {
		seen[r.Author+"/"+r.Title] = true
	}

	for _, d := range demoRecipes {
		if seen[d.author+"/"+d.recipe.Title] {
			zlog.Info("recipe exists, skipping", zap.String("title", d.recipe.Title))
			continue
		}
		r, err := recipes.Create(ctx, d.author, d.recipe)
		if err != nil {
			zlog.Fatal("failed to create recipe", zap.String("title", d.recipe.Title), zap.Error(err))
		}
		zlog.Info("created recipe", zap.String("id", r.ID), zap.String("title", r.Title))
	}
}
