package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pageza/recipebox/backend/internal/api"
	"github.com/pageza/recipebox/backend/internal/middleware"
)

// Deps are the collaborators the router wires together. RateLimiter is
// optional; without it writes are not limited.
type Deps struct {
	RecipeHandler  *api.RecipeHandler
	Health         api.Pinger
	RateLimiter    *middleware.RateLimiter
	AllowedOrigins []string
}

// SetupRouter configures the application routes
func SetupRouter(deps Deps) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		middleware.Logger(),
		middleware.Metrics(),
		middleware.CORS(deps.AllowedOrigins),
	)
	router.NoRoute(middleware.NoRoute)

	router.GET("/health", api.HealthCheck(deps.Health))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	var writeMiddleware []gin.HandlerFunc
	if deps.RateLimiter != nil {
		writeMiddleware = append(writeMiddleware, deps.RateLimiter.RateLimitMiddleware())
	}

	// API v1 routes
	v1 := router.Group("/v1")
	deps.RecipeHandler.RegisterRoutes(v1, writeMiddleware...)

	return router
}
