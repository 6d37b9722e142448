package database

import (
	"context"
	"strings"

	"github.com/pageza/recipes/backend/internal/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// RecipeStore persists recipes through gorm
type RecipeStore struct {
	db *gorm.DB
}

// NewRecipeStore creates a new RecipeStore
func NewRecipeStore(db *gorm.DB) *RecipeStore {
	return &RecipeStore{db: db}
}

// Create inserts the recipe and sets its generated ID
func (s *RecipeStore) Create(ctx context.Context, recipe *models.Recipe) error {
	recipe.ID = 0
	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return errors.Wrap(err, "failed to create recipe")
	}
	return nil
}

// FindByID returns the recipe with the given ID or ErrRecordNotFound
func (s *RecipeStore) FindByID(ctx context.Context, id int) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).First(&recipe, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get recipe %d", id)
	}
	return &recipe, nil
}

// Update replaces every column of an existing recipe
func (s *RecipeStore) Update(ctx context.Context, recipe *models.Recipe) error {
	result := s.db.WithContext(ctx).
		Model(&models.Recipe{}).
		Where("id = ?", recipe.ID).
		Select("*").
		Omit("id").
		Updates(recipe)
	if result.Error != nil {
		return errors.Wrapf(result.Error, "failed to update recipe %d", recipe.ID)
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// Delete removes the recipe with the given ID
func (s *RecipeStore) Delete(ctx context.Context, id int) error {
	result := s.db.WithContext(ctx).Delete(&models.Recipe{}, id)
	if result.Error != nil {
		return errors.Wrapf(result.Error, "failed to delete recipe %d", id)
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// FindByCategory returns recipes whose category equals category ignoring case
func (s *RecipeStore) FindByCategory(ctx context.Context, category string) ([]*models.Recipe, error) {
	recipes := []*models.Recipe{}
	err := s.db.WithContext(ctx).
		Where("LOWER(category) = LOWER(?)", category).
		Order("id").
		Find(&recipes).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to search recipes by category")
	}
	return recipes, nil
}

// FindByNameContaining returns recipes whose name contains name ignoring case.
// LIKE wildcards in name match literally.
func (s *RecipeStore) FindByNameContaining(ctx context.Context, name string) ([]*models.Recipe, error) {
	recipes := []*models.Recipe{}
	err := s.db.WithContext(ctx).
		Where(`LOWER(name) LIKE '%' || LOWER(?) || '%' ESCAPE '\'`, likeEscaper.Replace(name)).
		Order("id").
		Find(&recipes).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to search recipes by name")
	}
	return recipes, nil
}
