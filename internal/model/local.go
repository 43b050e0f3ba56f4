package model

import (
	"time"

	"github.com/google/uuid"
)

// DefaultRecipeImage is used when a submission carries no image URL.
const DefaultRecipeImage = "https://images.unsplash.com/photo-1495521821757-a1efb6729352?q=80&w=800&auto=format&fit=crop"

// LocalRecipe is a user-submitted recipe. Records are created and deleted,
// never edited; Author and CreatedAt are immutable.
type LocalRecipe struct {
	ID           string          `json:"id" gorm:"primaryKey;size:64"`
	Title        string          `json:"title" gorm:"size:255;not null"`
	Category     string          `json:"category" gorm:"size:100;index"`
	Ingredients  JSONStringArray `json:"ingredients" gorm:"type:text;not null"`
	Instructions string          `json:"instructions" gorm:"type:text;not null"`
	CookingTime  string          `json:"cookingTime,omitempty" gorm:"size:100"`
	Image        string          `json:"image" gorm:"size:512"`
	Author       string          `json:"author" gorm:"size:50;not null;index"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// TableName pins the gorm table name.
func (LocalRecipe) TableName() string { return "local_recipes" }

// User is an account. Password holds the bcrypt hash.
type User struct {
	ID       uuid.UUID `json:"id" gorm:"type:varchar(36);primaryKey"`
	Username string    `json:"username" gorm:"size:50;not null;uniqueIndex"`
	Password string    `json:"password" gorm:"not null"`
}

// Category is an entry of the primary provider's category list.
type Category struct {
	ID          string `json:"idCategory"`
	Name        string `json:"strCategory"`
	Thumbnail   string `json:"strCategoryThumb"`
	Description string `json:"strCategoryDescription"`
}
