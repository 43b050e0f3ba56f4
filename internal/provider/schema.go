package provider

import (
	"encoding/json"
	"strings"

	"github.com/pageza/recipe-nexus/backend/internal/model"
)

// Meal is a TheMealDB record. Filter responses only carry id, name and thumb.
type Meal struct {
	ID           string
	Name         string
	Thumbnail    string
	Category     string
	Area         string
	Instructions string
	Ingredients  []model.Ingredient
}

// UnmarshalJSON collects the numbered ingredient slots into Ingredients.
func (m *Meal) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID           string  `json:"idMeal"`
		Name         string  `json:"strMeal"`
		Thumbnail    string  `json:"strMealThumb"`
		Category     *string `json:"strCategory"`
		Area         *string `json:"strArea"`
		Instructions *string `json:"strInstructions"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	ings, err := model.ParseIngredientSlots(data)
	if err != nil {
		return err
	}
	*m = Meal{
		ID:           raw.ID,
		Name:         raw.Name,
		Thumbnail:    raw.Thumbnail,
		Category:     deref(raw.Category),
		Area:         deref(raw.Area),
		Instructions: deref(raw.Instructions),
		Ingredients:  ings,
	}
	return nil
}

type mealList struct {
	Meals []Meal `json:"meals"`
}

type categoryList struct {
	Categories []model.Category `json:"categories"`
}

// DummyRecipe is a DummyJSON recipe record.
type DummyRecipe struct {
	ID           int      `json:"id"`
	Name         string   `json:"name"`
	Image        string   `json:"image"`
	Cuisine      string   `json:"cuisine"`
	MealType     []string `json:"mealType"`
	Tags         []string `json:"tags"`
	Ingredients  []string `json:"ingredients"`
	Instructions Steps    `json:"instructions"`
}

// Steps accepts either a list of instruction steps or a single string.
type Steps []string

// UnmarshalJSON implements json.Unmarshaler.
func (s *Steps) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*s = list
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single == "" {
			*s = nil
		} else {
			*s = Steps{single}
		}
		return nil
	}
	// Anything else is treated as absent rather than failing the whole record.
	*s = nil
	return nil
}

// String joins the steps with newlines.
func (s Steps) String() string {
	return strings.Join(s, "\n")
}

type dummyList struct {
	Recipes []DummyRecipe `json:"recipes"`
}

// Drink is a TheCocktailDB record.
type Drink struct {
	ID           string
	Name         string
	Thumbnail    string
	Category     string
	Instructions string
	Ingredients  []model.Ingredient
}

// UnmarshalJSON collects the numbered ingredient slots into Ingredients.
func (d *Drink) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID           string  `json:"idDrink"`
		Name         string  `json:"strDrink"`
		Thumbnail    string  `json:"strDrinkThumb"`
		Category     *string `json:"strCategory"`
		Instructions *string `json:"strInstructions"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	ings, err := model.ParseIngredientSlots(data)
	if err != nil {
		return err
	}
	*d = Drink{
		ID:           raw.ID,
		Name:         raw.Name,
		Thumbnail:    raw.Thumbnail,
		Category:     deref(raw.Category),
		Instructions: deref(raw.Instructions),
		Ingredients:  ings,
	}
	return nil
}

// drinkList tolerates TheCocktailDB answering "drinks": "no data found".
type drinkList struct {
	Drinks []Drink
}

func (l *drinkList) UnmarshalJSON(data []byte) error {
	var raw struct {
		Drinks json.RawMessage `json:"drinks"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	trimmed := strings.TrimSpace(string(raw.Drinks))
	if !strings.HasPrefix(trimmed, "[") {
		l.Drinks = nil
		return nil
	}
	return json.Unmarshal(raw.Drinks, &l.Drinks)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
