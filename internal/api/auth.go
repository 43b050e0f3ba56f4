package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-nexus/backend/internal/service"
	"github.com/pageza/recipe-nexus/backend/internal/types"
)

// AuthHandler handles account registration and login.
type AuthHandler struct {
	authService service.IAuthService
}

func NewAuthHandler(authService service.IAuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req types.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, msgMissingFields, err)
		return
	}

	_, err := h.authService.Register(c.Request.Context(), req.Username, req.Password)
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, gin.H{"message": "User registered"})
	case errors.Is(err, service.ErrValidation):
		abort(c, http.StatusBadRequest, msgMissingFields, nil)
	case errors.Is(err, service.ErrUserExists):
		abort(c, http.StatusBadRequest, msgUserExists, nil)
	default:
		abort(c, http.StatusInternalServerError, msgServerError, err)
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, msgMissingFields, err)
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, resp)
	case errors.Is(err, service.ErrInvalidCredentials):
		abort(c, http.StatusUnauthorized, msgInvalidCredentials, nil)
	default:
		abort(c, http.StatusInternalServerError, msgServerError, err)
	}
}
