// Package types holds request and response bodies shared by handlers and services.
package types

import "github.com/google/uuid"

// CreateRecipeRequest represents the request body for creating a local recipe.
type CreateRecipeRequest struct {
	Title        string   `json:"title" binding:"required"`
	Ingredients  []string `json:"ingredients" binding:"required,min=1"`
	Instructions string   `json:"instructions" binding:"required"`
	Category     string   `json:"category"`
	CookingTime  string   `json:"cookingTime"`
	Image        string   `json:"image"`
}

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest is the body of POST /api/auth/login. Blank credentials are
// not a 400; they fail lookup and answer "Invalid credentials".
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

// LoginResponse is returned on successful login.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
