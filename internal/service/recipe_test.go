package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pageza/recipes/backend/internal/database"
	"github.com/pageza/recipes/backend/internal/logging"
	"github.com/pageza/recipes/backend/internal/mocks"
	"github.com/pageza/recipes/backend/internal/models"
	"github.com/pageza/recipes/backend/internal/types"
	"github.com/pageza/recipes/backend/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 5, 4, 10, 30, 0, 0, time.UTC)

func newTestRecipeService() (*RecipeService, *mocks.MockRecipeStore) {
	store := new(mocks.MockRecipeStore)
	svc := NewRecipeService(store, validator.New(), logging.Discard())
	svc.now = func() time.Time { return fixedNow }
	return svc, store
}

func validInput() *types.RecipeRequest {
	return &types.RecipeRequest{
		Name:        "Fresh Mint Tea",
		Category:    "beverage",
		Description: "Light, aromatic and refreshing beverage, ...",
		Ingredients: []string{"boiled water", "honey", "fresh mint leaves"},
		Directions:  []string{"Boil water", "Pour boiling hot water into a mug", "Add fresh mint leaves", "Mix and let the mint leaves seep for 3-5 minutes", "Add honey and mix again"},
	}
}

func storedRecipe(id int, author string) *models.Recipe {
	recipe := validInput().ToModel()
	recipe.ID = id
	recipe.Author = author
	recipe.Date = fixedNow.Add(-time.Hour)
	return recipe
}

func ptr(s string) *string {
	return &s
}

func TestAddRecipe(t *testing.T) {
	ctx := context.Background()

	t.Run("stamps author and date", func(t *testing.T) {
		svc, store := newTestRecipeService()
		store.On("Create", ctx, mock.MatchedBy(func(r *models.Recipe) bool {
			return r.Author == "alice@example.com" && r.Date.Equal(fixedNow) && r.Name == "Fresh Mint Tea"
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*models.Recipe).ID = 7
		}).Return(nil)

		id, err := svc.AddRecipe(ctx, "alice@example.com", validInput())
		require.NoError(t, err)
		assert.Equal(t, 7, id)
		store.AssertExpectations(t)
	})

	t.Run("invalid input is never stored", func(t *testing.T) {
		inputs := map[string]func(*types.RecipeRequest){
			"blank name":        func(r *types.RecipeRequest) { r.Name = "  " },
			"empty category":    func(r *types.RecipeRequest) { r.Category = "" },
			"blank description": func(r *types.RecipeRequest) { r.Description = "\t" },
			"no ingredients":    func(r *types.RecipeRequest) { r.Ingredients = nil },
			"no directions":     func(r *types.RecipeRequest) { r.Directions = []string{} },
		}
		for name, mutate := range inputs {
			t.Run(name, func(t *testing.T) {
				svc, store := newTestRecipeService()
				input := validInput()
				mutate(input)

				_, err := svc.AddRecipe(ctx, "alice@example.com", input)
				assert.ErrorIs(t, err, ErrBadInput)
				store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			})
		}
	})

	t.Run("nil input", func(t *testing.T) {
		svc, _ := newTestRecipeService()
		_, err := svc.AddRecipe(ctx, "alice@example.com", nil)
		assert.ErrorIs(t, err, ErrBadInput)
	})

	t.Run("store failure is unclassified", func(t *testing.T) {
		svc, store := newTestRecipeService()
		store.On("Create", ctx, mock.Anything).Return(errors.New("connection reset"))

		_, err := svc.AddRecipe(ctx, "alice@example.com", validInput())
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrBadInput)
		assert.NotErrorIs(t, err, ErrNotFound)
	})
}

func TestGetRecipe(t *testing.T) {
	ctx := context.Background()

	t.Run("malformed id", func(t *testing.T) {
		svc, store := newTestRecipeService()
		for _, id := range []string{"", "abc", "12x", "2147483648"} {
			_, err := svc.GetRecipe(ctx, id)
			assert.ErrorIs(t, err, ErrBadInput, id)
		}
		store.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("unknown id", func(t *testing.T) {
		svc, store := newTestRecipeService()
		store.On("FindByID", ctx, 42).Return(nil, database.ErrRecordNotFound)

		_, err := svc.GetRecipe(ctx, "42")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("found", func(t *testing.T) {
		svc, store := newTestRecipeService()
		stored := storedRecipe(42, "alice@example.com")
		store.On("FindByID", ctx, 42).Return(stored, nil)

		recipe, err := svc.GetRecipe(ctx, "42")
		require.NoError(t, err)
		assert.Same(t, stored, recipe)
	})
}

func TestDeleteRecipe(t *testing.T) {
	ctx := context.Background()

	t.Run("malformed id", func(t *testing.T) {
		svc, _ := newTestRecipeService()
		assert.ErrorIs(t, svc.DeleteRecipe(ctx, "alice@example.com", "one"), ErrBadInput)
	})

	t.Run("unknown id", func(t *testing.T) {
		svc, store := newTestRecipeService()
		store.On("FindByID", ctx, 3).Return(nil, database.ErrRecordNotFound)

		assert.ErrorIs(t, svc.DeleteRecipe(ctx, "alice@example.com", "3"), ErrNotFound)
		store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("other author", func(t *testing.T) {
		svc, store := newTestRecipeService()
		store.On("FindByID", ctx, 3).Return(storedRecipe(3, "alice@example.com"), nil)

		assert.ErrorIs(t, svc.DeleteRecipe(ctx, "bob@example.com", "3"), ErrForbidden)
		store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("ownership is case sensitive", func(t *testing.T) {
		svc, store := newTestRecipeService()
		store.On("FindByID", ctx, 3).Return(storedRecipe(3, "alice@example.com"), nil)

		assert.ErrorIs(t, svc.DeleteRecipe(ctx, "Alice@example.com", "3"), ErrForbidden)
	})

	t.Run("author deletes", func(t *testing.T) {
		svc, store := newTestRecipeService()
		store.On("FindByID", ctx, 3).Return(storedRecipe(3, "alice@example.com"), nil)
		store.On("Delete", ctx, 3).Return(nil)

		require.NoError(t, svc.DeleteRecipe(ctx, "alice@example.com", "3"))
		store.AssertExpectations(t)
	})

	t.Run("deleted concurrently", func(t *testing.T) {
		svc, store := newTestRecipeService()
		store.On("FindByID", ctx, 3).Return(storedRecipe(3, "alice@example.com"), nil)
		store.On("Delete", ctx, 3).Return(database.ErrRecordNotFound)

		assert.ErrorIs(t, svc.DeleteRecipe(ctx, "alice@example.com", "3"), ErrNotFound)
	})
}

func TestUpdateRecipe(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid body is reported before existence", func(t *testing.T) {
		svc, store := newTestRecipeService()
		input := validInput()
		input.Name = ""

		assert.ErrorIs(t, svc.UpdateRecipe(ctx, "alice@example.com", "999", input), ErrBadInput)
		store.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("malformed id", func(t *testing.T) {
		svc, _ := newTestRecipeService()
		assert.ErrorIs(t, svc.UpdateRecipe(ctx, "alice@example.com", "x", validInput()), ErrBadInput)
	})

	t.Run("unknown id", func(t *testing.T) {
		svc, store := newTestRecipeService()
		store.On("FindByID", ctx, 999).Return(nil, database.ErrRecordNotFound)

		assert.ErrorIs(t, svc.UpdateRecipe(ctx, "alice@example.com", "999", validInput()), ErrNotFound)
	})

	t.Run("other author", func(t *testing.T) {
		svc, store := newTestRecipeService()
		store.On("FindByID", ctx, 5).Return(storedRecipe(5, "alice@example.com"), nil)

		assert.ErrorIs(t, svc.UpdateRecipe(ctx, "bob@example.com", "5", validInput()), ErrForbidden)
		store.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("full replace keeps id and restamps", func(t *testing.T) {
		svc, store := newTestRecipeService()
		store.On("FindByID", ctx, 5).Return(storedRecipe(5, "alice@example.com"), nil)

		input := validInput()
		input.Name = "Iced Mint Tea"
		input.Ingredients = []string{"ice"}
		store.On("Update", ctx, mock.MatchedBy(func(r *models.Recipe) bool {
			return r.ID == 5 &&
				r.Author == "alice@example.com" &&
				r.Date.Equal(fixedNow) &&
				r.Name == "Iced Mint Tea" &&
				len(r.Ingredients) == 1
		})).Return(nil)

		require.NoError(t, svc.UpdateRecipe(ctx, "alice@example.com", "5", input))
		store.AssertExpectations(t)
	})
}

func TestSearchRecipes(t *testing.T) {
	ctx := context.Background()
	t1 := fixedNow.Add(-3 * time.Hour)
	t2 := fixedNow.Add(-2 * time.Hour)
	t3 := fixedNow.Add(-1 * time.Hour)

	dated := func(id int, date time.Time) *models.Recipe {
		recipe := storedRecipe(id, "alice@example.com")
		recipe.Date = date
		return recipe
	}
	ids := func(recipes []*models.Recipe) []int {
		out := make([]int, 0, len(recipes))
		for _, r := range recipes {
			out = append(out, r.ID)
		}
		return out
	}

	t.Run("exactly one parameter", func(t *testing.T) {
		svc, store := newTestRecipeService()

		_, err := svc.SearchRecipes(ctx, nil, nil)
		assert.ErrorIs(t, err, ErrBadInput)
		_, err = svc.SearchRecipes(ctx, ptr("a"), ptr("b"))
		assert.ErrorIs(t, err, ErrBadInput)
		store.AssertNotCalled(t, "FindByCategory", mock.Anything, mock.Anything)
	})

	t.Run("empty string yields empty result", func(t *testing.T) {
		svc, store := newTestRecipeService()

		recipes, err := svc.SearchRecipes(ctx, ptr(""), nil)
		require.NoError(t, err)
		assert.NotNil(t, recipes)
		assert.Empty(t, recipes)

		recipes, err = svc.SearchRecipes(ctx, nil, ptr(""))
		require.NoError(t, err)
		assert.NotNil(t, recipes)
		assert.Empty(t, recipes)

		store.AssertNotCalled(t, "FindByCategory", mock.Anything, mock.Anything)
		store.AssertNotCalled(t, "FindByNameContaining", mock.Anything, mock.Anything)
	})

	t.Run("category newest first", func(t *testing.T) {
		svc, store := newTestRecipeService()
		store.On("FindByCategory", ctx, "Beverage").Return([]*models.Recipe{dated(1, t1), dated(3, t3), dated(2, t2)}, nil)

		recipes, err := svc.SearchRecipes(ctx, ptr("Beverage"), nil)
		require.NoError(t, err)
		assert.Equal(t, []int{3, 2, 1}, ids(recipes))
	})

	t.Run("name newest first", func(t *testing.T) {
		svc, store := newTestRecipeService()
		store.On("FindByNameContaining", ctx, "tea").Return([]*models.Recipe{dated(2, t2), dated(1, t1), dated(3, t3)}, nil)

		recipes, err := svc.SearchRecipes(ctx, nil, ptr("tea"))
		require.NoError(t, err)
		assert.Equal(t, []int{3, 2, 1}, ids(recipes))
	})

	t.Run("equal dates come out in reverse store order", func(t *testing.T) {
		svc, store := newTestRecipeService()
		store.On("FindByCategory", ctx, "x").Return([]*models.Recipe{dated(1, t2), dated(2, t2), dated(3, t3)}, nil)

		recipes, err := svc.SearchRecipes(ctx, ptr("x"), nil)
		require.NoError(t, err)
		assert.Equal(t, []int{3, 2, 1}, ids(recipes))
	})

	t.Run("no match", func(t *testing.T) {
		svc, store := newTestRecipeService()
		store.On("FindByCategory", ctx, "none").Return(nil, nil)

		recipes, err := svc.SearchRecipes(ctx, ptr("none"), nil)
		require.NoError(t, err)
		assert.NotNil(t, recipes)
		assert.Empty(t, recipes)
	})

	t.Run("store failure", func(t *testing.T) {
		svc, store := newTestRecipeService()
		store.On("FindByNameContaining", ctx, "tea").Return(nil, errors.New("timeout"))

		_, err := svc.SearchRecipes(ctx, nil, ptr("tea"))
		assert.Error(t, err)
	})
}
