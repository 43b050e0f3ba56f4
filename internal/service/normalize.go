package service

import (
	"strconv"

	"github.com/pageza/recipe-nexus/backend/internal/model"
	"github.com/pageza/recipe-nexus/backend/internal/provider"
)

const (
	sourceDummyJSON  = "DummyJSON"
	sourceCocktailDB = "TheCocktailDB"

	defaultDummyCategory = "Miscellaneous"
	defaultDummyArea     = "International"
	drinksCategory       = "Drinks"
	defaultDrinkArea     = "Beverage"
	localArea            = "User Submitted"
)

// NormalizeMealDB tags a primary-provider meal. Its shape already matches.
func NormalizeMealDB(m provider.Meal) model.Recipe {
	return model.Recipe{
		ID:           m.ID,
		Name:         m.Name,
		Thumbnail:    m.Thumbnail,
		Category:     m.Category,
		Area:         m.Area,
		Instructions: m.Instructions,
		Ingredients:  capIngredients(m.Ingredients),
		Origin:       model.OriginPrimary,
	}
}

// NormalizeDummy maps a DummyJSON recipe onto the canonical record.
func NormalizeDummy(d provider.DummyRecipe) model.Recipe {
	category := firstNonEmpty(d.MealType)
	if category == "" {
		category = firstNonEmpty(d.Tags)
	}
	if category == "" {
		category = defaultDummyCategory
	}
	area := d.Cuisine
	if area == "" {
		area = defaultDummyArea
	}
	return model.Recipe{
		ID:           model.PrefixAlternate + strconv.Itoa(d.ID),
		Name:         d.Name,
		Thumbnail:    d.Image,
		Category:     category,
		Area:         area,
		Instructions: d.Instructions.String(),
		Ingredients:  namesOnly(d.Ingredients),
		Origin:       model.OriginAlternate,
		IsExternal:   true,
		Source:       sourceDummyJSON,
	}
}

// NormalizeCocktail maps a TheCocktailDB drink onto the canonical record.
// The drink's own category becomes the area; the category is always Drinks.
func NormalizeCocktail(d provider.Drink) model.Recipe {
	area := d.Category
	if area == "" {
		area = defaultDrinkArea
	}
	return model.Recipe{
		ID:           model.PrefixCocktail + d.ID,
		Name:         d.Name,
		Thumbnail:    d.Thumbnail,
		Category:     drinksCategory,
		Area:         area,
		Instructions: d.Instructions,
		Ingredients:  capIngredients(d.Ingredients),
		Origin:       model.OriginCocktail,
		IsExternal:   true,
		Source:       sourceCocktailDB,
	}
}

// NormalizeLocal maps a user-submitted recipe onto the canonical record.
func NormalizeLocal(r model.LocalRecipe) model.Recipe {
	return model.Recipe{
		ID:           r.ID,
		Name:         r.Title,
		Thumbnail:    r.Image,
		Category:     r.Category,
		Area:         localArea,
		Instructions: r.Instructions,
		Ingredients:  namesOnly(r.Ingredients),
		Origin:       model.OriginLocal,
		IsLocal:      true,
	}
}

func namesOnly(names []string) []model.Ingredient {
	if len(names) == 0 {
		return nil
	}
	out := make([]model.Ingredient, 0, min(len(names), model.MaxIngredients))
	for _, n := range names {
		if len(out) == model.MaxIngredients {
			break
		}
		out = append(out, model.Ingredient{Name: n})
	}
	return out
}

func capIngredients(ings []model.Ingredient) []model.Ingredient {
	if len(ings) > model.MaxIngredients {
		return ings[:model.MaxIngredients]
	}
	return ings
}

func firstNonEmpty(values []string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
