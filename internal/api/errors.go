// Package api holds the gin handlers of the recipe gateway.
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-nexus/backend/internal/middleware"
)

// Messages returned in {"error": ...} bodies.
const (
	msgMissingFields      = "Missing fields"
	msgServerError        = "Server Error"
	msgRecipeNotFound     = "Recipe not found"
	msgNotFound           = "Not found"
	msgUnauthorized       = "Unauthorized"
	msgUseExternalRoute   = "Use external route for TheMealDB recipes"
	msgUserExists         = "User already exists"
	msgInvalidCredentials = "Invalid credentials"
	msgFilterRequired     = "Category or area required"
	msgFailed             = "Failed"
	msgSearchFailed       = "Failed to search recipes"
	msgFilterFailed       = "Failed to filter recipes"
)

// abort writes an error body. A non-nil err is attached to the context so
// the request logger reports it.
func abort(c *gin.Context, status int, message string, err error) {
	if err != nil {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, middleware.ErrorResponse{Error: message})
}
