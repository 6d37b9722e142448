package database

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"github.com/pageza/recipes/backend/internal/models"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const recipeKeyPrefix = "recipe:"

// invalidationHold keeps a written recipe out of the cache. A read that began
// before the write must finish within it to be kept from refilling the old row.
const invalidationHold = 30 * time.Second

var tombstone = []byte("tombstone")

// RecipeBackend is the store wrapped by CachedRecipeStore
type RecipeBackend interface {
	Create(ctx context.Context, recipe *models.Recipe) error
	FindByID(ctx context.Context, id int) (*models.Recipe, error)
	Update(ctx context.Context, recipe *models.Recipe) error
	Delete(ctx context.Context, id int) error
	FindByCategory(ctx context.Context, category string) ([]*models.Recipe, error)
	FindByNameContaining(ctx context.Context, name string) ([]*models.Recipe, error)
}

// cachedRecipe is the cache encoding of a recipe. Unlike the API encoding it
// keeps the id and author.
type cachedRecipe struct {
	ID          int       `json:"id"`
	Author      string    `json:"author"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	Ingredients []string  `json:"ingredients"`
	Directions  []string  `json:"directions"`
}

// CachedRecipeStore adds a Redis read-through cache in front of FindByID.
// Redis failures are logged and the backend is used directly.
type CachedRecipeStore struct {
	RecipeBackend
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedRecipeStore wraps backend with a cache entry per recipe kept for ttl
func NewCachedRecipeStore(backend RecipeBackend, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedRecipeStore {
	return &CachedRecipeStore{
		RecipeBackend: backend,
		client:        client,
		ttl:           ttl,
		logger:        logger,
	}
}

func recipeKey(id int) string {
	return recipeKeyPrefix + strconv.Itoa(id)
}

// FindByID serves the recipe from Redis when present, otherwise loads it
// from the backend and populates the cache unless a recent write holds the key
func (s *CachedRecipeStore) FindByID(ctx context.Context, id int) (*models.Recipe, error) {
	key := recipeKey(id)

	data, err := s.client.Get(ctx, key).Bytes()
	switch {
	case err == nil && bytes.Equal(data, tombstone):
		return s.RecipeBackend.FindByID(ctx, id)
	case err == nil:
		var cached cachedRecipe
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached.toModel(), nil
		}
		s.logger.WarnContext(ctx, "discarding corrupt cache entry", "key", key)
		s.client.Del(ctx, key)
	case !errors.Is(err, redis.Nil):
		s.logger.WarnContext(ctx, "recipe cache read failed", "key", key, "error", err)
	}

	recipe, err := s.RecipeBackend.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	data, err = json.Marshal(fromModel(recipe))
	if err != nil {
		return recipe, nil
	}
	// SetNX never replaces a tombstone written by a concurrent update or delete
	if err := s.client.SetNX(ctx, key, data, s.ttl).Err(); err != nil {
		s.logger.WarnContext(ctx, "recipe cache write failed", "key", key, "error", err)
	}
	return recipe, nil
}

// Update writes through to the backend and then invalidates the cache entry
func (s *CachedRecipeStore) Update(ctx context.Context, recipe *models.Recipe) error {
	if err := s.RecipeBackend.Update(ctx, recipe); err != nil {
		return err
	}
	s.invalidate(ctx, recipe.ID)
	return nil
}

// Delete removes the recipe from the backend and then invalidates the cache entry
func (s *CachedRecipeStore) Delete(ctx context.Context, id int) error {
	if err := s.RecipeBackend.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

// invalidate replaces the entry with a tombstone for invalidationHold
func (s *CachedRecipeStore) invalidate(ctx context.Context, id int) {
	if err := s.client.Set(ctx, recipeKey(id), tombstone, invalidationHold).Err(); err != nil {
		s.logger.WarnContext(ctx, "recipe cache invalidation failed", "id", id, "error", err)
	}
}

func fromModel(r *models.Recipe) cachedRecipe {
	return cachedRecipe{
		ID:          r.ID,
		Author:      r.Author,
		Name:        r.Name,
		Category:    r.Category,
		Date:        r.Date,
		Description: r.Description,
		Ingredients: r.Ingredients,
		Directions:  r.Directions,
	}
}

func (c cachedRecipe) toModel() *models.Recipe {
	return &models.Recipe{
		ID:          c.ID,
		Author:      c.Author,
		Name:        c.Name,
		Category:    c.Category,
		Date:        c.Date,
		Description: c.Description,
		Ingredients: append(models.StringList{}, c.Ingredients...),
		Directions:  append(models.StringList{}, c.Directions...),
	}
}
