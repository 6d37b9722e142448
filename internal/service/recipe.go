package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/pageza/recipes/backend/internal/database"
	"github.com/pageza/recipes/backend/internal/logging"
	"github.com/pageza/recipes/backend/internal/models"
	"github.com/pageza/recipes/backend/internal/types"
	"github.com/pageza/recipes/backend/internal/validator"
)

// RecipeService handles recipe operations
type RecipeService struct {
	store     RecipeStore
	validator *validator.Validator
	logger    *slog.Logger
	now       func() time.Time
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(store RecipeStore, v *validator.Validator, logger *slog.Logger) *RecipeService {
	return &RecipeService{
		store:     store,
		validator: v,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// AddRecipe stores a new recipe authored by caller and returns its id
func (s *RecipeService) AddRecipe(ctx context.Context, caller string, input *types.RecipeRequest) (int, error) {
	if !s.validator.ValidateRecipeInput(input) {
		return 0, ErrBadInput
	}

	recipe := input.ToModel()
	recipe.Author = caller
	recipe.Date = s.now()

	if err := s.store.Create(ctx, recipe); err != nil {
		return 0, fmt.Errorf("add recipe: %w", err)
	}

	s.log(ctx).Info("recipe created", "recipe_id", recipe.ID, "author", caller)
	return recipe.ID, nil
}

// GetRecipe returns the recipe with the given id
func (s *RecipeService) GetRecipe(ctx context.Context, id string) (*models.Recipe, error) {
	recipeID, ok := s.validator.ValidateInteger(id)
	if !ok {
		return nil, ErrBadInput
	}
	return s.findRecipe(ctx, recipeID)
}

// DeleteRecipe removes a recipe owned by caller
func (s *RecipeService) DeleteRecipe(ctx context.Context, caller, id string) error {
	recipeID, ok := s.validator.ValidateInteger(id)
	if !ok {
		return ErrBadInput
	}

	recipe, err := s.findRecipe(ctx, recipeID)
	if err != nil {
		return err
	}
	if err := s.authorize(ctx, caller, recipe); err != nil {
		return err
	}

	if err := s.store.Delete(ctx, recipeID); err != nil {
		if errors.Is(err, database.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete recipe %d: %w", recipeID, err)
	}

	s.log(ctx).Info("recipe deleted", "recipe_id", recipeID, "author", caller)
	return nil
}

// UpdateRecipe replaces a recipe owned by caller. The id and the body are
// both validated before the recipe is looked up, so a malformed body reports
// ErrBadInput even for an unknown id.
func (s *RecipeService) UpdateRecipe(ctx context.Context, caller, id string, input *types.RecipeRequest) error {
	recipeID, idOK := s.validator.ValidateInteger(id)
	inputOK := s.validator.ValidateRecipeInput(input)
	if !idOK || !inputOK {
		return ErrBadInput
	}

	existing, err := s.findRecipe(ctx, recipeID)
	if err != nil {
		return err
	}
	if err := s.authorize(ctx, caller, existing); err != nil {
		return err
	}

	recipe := input.ToModel()
	recipe.ID = existing.ID
	recipe.Author = caller
	recipe.Date = s.now()

	if err := s.store.Update(ctx, recipe); err != nil {
		if errors.Is(err, database.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("update recipe %d: %w", recipeID, err)
	}

	s.log(ctx).Info("recipe updated", "recipe_id", recipeID, "author", caller)
	return nil
}

// SearchRecipes looks recipes up by exactly one of category (exact match) or
// name (substring), ignoring case. Results are ordered newest first. An empty
// string parameter matches nothing.
func (s *RecipeService) SearchRecipes(ctx context.Context, category, name *string) ([]*models.Recipe, error) {
	if !s.validator.ValidateSearchParameters(category, name) {
		return nil, ErrBadInput
	}

	var (
		recipes []*models.Recipe
		err     error
	)
	switch {
	case category != nil && *category != "":
		recipes, err = s.store.FindByCategory(ctx, *category)
	case name != nil && *name != "":
		recipes, err = s.store.FindByNameContaining(ctx, *name)
	default:
		return []*models.Recipe{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("search recipes: %w", err)
	}
	if recipes == nil {
		return []*models.Recipe{}, nil
	}

	sortByDateDescending(recipes)
	return recipes, nil
}

// sortByDateDescending sorts ascending with a stable sort and then reverses,
// so recipes sharing a date come out in reverse store order.
func sortByDateDescending(recipes []*models.Recipe) {
	slices.SortStableFunc(recipes, func(a, b *models.Recipe) int {
		return a.Date.Compare(b.Date)
	})
	slices.Reverse(recipes)
}

func (s *RecipeService) findRecipe(ctx context.Context, id int) (*models.Recipe, error) {
	recipe, err := s.store.FindByID(ctx, id)
	if errors.Is(err, database.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get recipe %d: %w", id, err)
	}
	return recipe, nil
}

// authorize allows only the recipe's author, compared as plain strings
func (s *RecipeService) authorize(ctx context.Context, caller string, recipe *models.Recipe) error {
	if caller != recipe.Author {
		s.log(ctx).Warn("recipe access denied", "recipe_id", recipe.ID, "caller", caller)
		return ErrForbidden
	}
	return nil
}

func (s *RecipeService) log(ctx context.Context) *slog.Logger {
	return logging.FromContext(ctx, s.logger)
}
