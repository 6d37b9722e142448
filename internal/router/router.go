package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipes/backend/internal/api"
	"github.com/pageza/recipes/backend/internal/middleware"
)

// Deps are the handlers and collaborators the route table is built from
type Deps struct {
	Logger        *slog.Logger
	CORSOrigins   []string
	Authenticator middleware.Authenticator
	AuthHandler   *api.AuthHandler
	RecipeHandler *api.RecipeHandler
	HealthHandler *api.HealthHandler
}

// SetupRouter configures the application routes
func SetupRouter(deps Deps) *gin.Engine {
	router := gin.New()
	router.Use(
		middleware.RequestID(deps.Logger),
		middleware.RequestLogger(deps.Logger),
		gin.Recovery(),
		middleware.CORS(deps.CORSOrigins),
		middleware.ErrorHandler(deps.Logger),
	)

	router.GET("/health", deps.HealthHandler.HealthCheck)

	apiGroup := router.Group("/api")

	// Account routes
	deps.AuthHandler.RegisterRoutes(apiGroup)

	// Protected routes
	protected := apiGroup.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Authenticator))
	deps.RecipeHandler.RegisterRoutes(protected)

	return router
}
