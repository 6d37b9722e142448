package service

import (
	"context"

	"github.com/pageza/recipes/backend/internal/models"
	"github.com/pageza/recipes/backend/internal/types"
)

// RecipeStore is the durable storage the recipe service depends on.
// FindByID, Update and Delete return database.ErrRecordNotFound for unknown ids.
type RecipeStore interface {
	Create(ctx context.Context, recipe *models.Recipe) error
	FindByID(ctx context.Context, id int) (*models.Recipe, error)
	Update(ctx context.Context, recipe *models.Recipe) error
	Delete(ctx context.Context, id int) error
	FindByCategory(ctx context.Context, category string) ([]*models.Recipe, error)
	FindByNameContaining(ctx context.Context, name string) ([]*models.Recipe, error)
}

// UserStore is the credential storage the auth service depends on
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Exists(ctx context.Context, email string) (bool, error)
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	AddRecipe(ctx context.Context, caller string, input *types.RecipeRequest) (int, error)
	GetRecipe(ctx context.Context, id string) (*models.Recipe, error)
	DeleteRecipe(ctx context.Context, caller, id string) error
	UpdateRecipe(ctx context.Context, caller, id string, input *types.RecipeRequest) error
	SearchRecipes(ctx context.Context, category, name *string) ([]*models.Recipe, error)
}

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, email, password string) error
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}
