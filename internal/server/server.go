package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pageza/recipes/backend/config"
	"github.com/pageza/recipes/backend/internal/api"
	"github.com/pageza/recipes/backend/internal/database"
	"github.com/pageza/recipes/backend/internal/router"
	"github.com/pageza/recipes/backend/internal/service"
	"github.com/pageza/recipes/backend/internal/validator"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	logger *slog.Logger
}

// New wires stores, services and handlers into an HTTP server. The recipe
// cache is used only when redisClient is not nil.
func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, logger *slog.Logger) *Server {
	v := validator.New()

	recipeStore := database.NewRecipeStore(db)
	var recipes service.RecipeStore = recipeStore
	if redisClient != nil {
		recipes = database.NewCachedRecipeStore(recipeStore, redisClient, cfg.CacheTTL, logger)
	}

	authService := service.NewAuthService(database.NewUserStore(db), v, cfg.JWTSecret, cfg.TokenTTL, logger)
	recipeService := service.NewRecipeService(recipes, v, logger)

	engine := router.SetupRouter(router.Deps{
		Logger:        logger,
		CORSOrigins:   cfg.CORSOrigins,
		Authenticator: authService,
		AuthHandler:   api.NewAuthHandler(authService),
		RecipeHandler: api.NewRecipeHandler(recipeService),
		HealthHandler: api.NewHealthHandler(func(ctx context.Context) error {
			return database.HealthCheck(ctx, db)
		}),
	})

	return &Server{
		router: engine,
		logger: logger,
		http: &http.Server{
			Addr:              cfg.Address(),
			Handler:           engine,
			ReadHeaderTimeout: cfg.ReadHeaderTimeout,
			ReadTimeout:       cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
			IdleTimeout:       cfg.IdleTimeout,
		},
	}
}

// Handler returns the routed gin engine
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on the configured address and blocks until Shutdown
func (s *Server) Start() error {
	s.logger.Info("starting server", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Serve accepts connections on l and blocks until Shutdown
func (s *Server) Serve(l net.Listener) error {
	s.logger.Info("starting server", "addr", l.Addr().String())
	if err := s.http.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down server")
	return s.http.Shutdown(ctx)
}
