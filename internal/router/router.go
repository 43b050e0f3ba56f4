package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/pageza/recipe-nexus/backend/internal/api"
	"github.com/pageza/recipe-nexus/backend/internal/middleware"
)

// Handlers groups every handler the router mounts.
type Handlers struct {
	Auth     *api.AuthHandler
	Recipes  *api.RecipeHandler
	External *api.ExternalHandler
	Health   *api.HealthHandler
}

// SetupRouter configures the application routes
func SetupRouter(h Handlers, logger *zap.Logger, allowedOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.Logger(logger, "/health", "/metrics"),
		middleware.Recovery(logger),
		middleware.CORS(allowedOrigins),
	)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, middleware.ErrorResponse{Error: "Not found"})
	})

	h.Health.RegisterRoutes(router)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v := router.Group("/api")
	h.Auth.RegisterRoutes(v)
	h.Recipes.RegisterRoutes(v)
	h.External.RegisterRoutes(v)

	return router
}
