package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// MaxIngredients is the number of ingredient slots a recipe carries on the wire.
const MaxIngredients = 20

// Origin identifies which source a recipe came from.
type Origin string

const (
	OriginPrimary   Origin = "primary"
	OriginAlternate Origin = "alternate"
	OriginCocktail  Origin = "cocktail"
	OriginLocal     Origin = "local"
)

// ID prefixes. Primary provider ids are bare.
const (
	PrefixAlternate = "dummy_"
	PrefixCocktail  = "cocktail_"
	PrefixLocal     = "local_"
)

// OriginFromID derives the origin of a recipe from its id prefix.
func OriginFromID(id string) Origin {
	switch {
	case strings.HasPrefix(id, PrefixLocal):
		return OriginLocal
	case strings.HasPrefix(id, PrefixAlternate):
		return OriginAlternate
	case strings.HasPrefix(id, PrefixCocktail):
		return OriginCocktail
	default:
		return OriginPrimary
	}
}

// Ingredient is one (name, measure) pair. Measure may be empty. Slot is the
// 1-based wire position taken from a slotted payload; zero means the slot
// after the previous ingredient.
type Ingredient struct {
	Name    string
	Measure string
	Slot    int
}

// Recipe is the canonical record every source is normalized into.
type Recipe struct {
	ID           string
	Name         string
	Thumbnail    string
	Category     string
	Area         string
	Instructions string
	Ingredients  []Ingredient
	Origin       Origin
	IsExternal   bool
	IsLocal      bool
	Source       string
}

// MarshalJSON writes the TheMealDB-compatible shape the browser client renders,
// flattening ingredients into strIngredientN/strMeasureN slots.
func (r Recipe) MarshalJSON() ([]byte, error) {
	out := map[string]any{
		"idMeal":          r.ID,
		"strMeal":         r.Name,
		"strMealThumb":    r.Thumbnail,
		"strCategory":     r.Category,
		"strArea":         r.Area,
		"strInstructions": r.Instructions,
		"origin":          r.Origin,
	}
	if r.IsExternal {
		out["isExternal"] = true
	}
	if r.IsLocal {
		out["isLocal"] = true
	}
	if r.Source != "" {
		out["source"] = r.Source
	}
	next := 1
	for _, ing := range r.Ingredients {
		pos := ing.Slot
		if pos <= 0 {
			pos = next
		}
		if pos > MaxIngredients {
			break
		}
		out[fmt.Sprintf("strIngredient%d", pos)] = ing.Name
		out[fmt.Sprintf("strMeasure%d", pos)] = ing.Measure
		next = pos + 1
	}
	// encoding/json sorts map keys, so the output is deterministic.
	return json.Marshal(out)
}

// UnmarshalJSON reads the shape produced by MarshalJSON.
func (r *Recipe) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID           string `json:"idMeal"`
		Name         string `json:"strMeal"`
		Thumbnail    string `json:"strMealThumb"`
		Category     string `json:"strCategory"`
		Area         string `json:"strArea"`
		Instructions string `json:"strInstructions"`
		Origin       Origin `json:"origin"`
		IsExternal   bool   `json:"isExternal"`
		IsLocal      bool   `json:"isLocal"`
		Source       string `json:"source"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	slots, err := ParseIngredientSlots(data)
	if err != nil {
		return err
	}
	*r = Recipe{
		ID:           raw.ID,
		Name:         raw.Name,
		Thumbnail:    raw.Thumbnail,
		Category:     raw.Category,
		Area:         raw.Area,
		Instructions: raw.Instructions,
		Ingredients:  slots,
		Origin:       raw.Origin,
		IsExternal:   raw.IsExternal,
		IsLocal:      raw.IsLocal,
		Source:       raw.Source,
	}
	if r.Origin == "" {
		r.Origin = OriginFromID(r.ID)
	}
	return nil
}

// ParseIngredientSlots extracts the positional strIngredientN/strMeasureN
// fields shared by TheMealDB and TheCocktailDB payloads. Slots with an empty
// or null ingredient name are skipped; the rest keep their slot number.
func ParseIngredientSlots(data []byte) ([]Ingredient, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	var out []Ingredient
	for i := 1; i <= MaxIngredients; i++ {
		name := slotString(fields[fmt.Sprintf("strIngredient%d", i)])
		if strings.TrimSpace(name) == "" {
			continue
		}
		out = append(out, Ingredient{
			Name:    name,
			Measure: slotString(fields[fmt.Sprintf("strMeasure%d", i)]),
			Slot:    i,
		})
	}
	return out, nil
}

// slotString tolerates null and non-string values.
func slotString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}
