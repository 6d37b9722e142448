package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"

	"github.com/pageza/recipes/backend/config"
	"github.com/pageza/recipes/backend/internal/database"
	"github.com/pageza/recipes/backend/internal/logging"
	"github.com/pageza/recipes/backend/internal/service"
	"github.com/pageza/recipes/backend/internal/types"
	"github.com/pageza/recipes/backend/internal/validator"
)

var testUsers = []string{
	"john.doe@example.com",
	"jane.smith@example.com",
	"bob.wilson@example.com",
}

var sampleRecipes = []types.RecipeRequest{
	{
		Name:        "Fresh Mint Tea",
		Category:    "Beverage",
		Description: "Light, aromatic and refreshing beverage",
		Ingredients: []string{"boiled water", "honey", "fresh mint leaves"},
		Directions:  []string{"Boil water", "Pour boiling hot water into a mug", "Add fresh mint leaves", "Let the mint leaves seep for 3-5 minutes", "Add honey and mix"},
	},
	{
		Name:        "Warming Ginger Tea",
		Category:    "Beverage",
		Description: "Ginger tea is a warming drink for cool weather",
		Ingredients: []string{"1 inch ginger root, minced", "1/2 lemon, juiced", "1/2 teaspoon manuka honey"},
		Directions:  []string{"Place all ingredients in a mug and fill with warm water", "Steep for 5-10 minutes", "Drink and enjoy"},
	},
	{
		Name:        "Overnight Oats",
		Category:    "Breakfast",
		Description: "No-cook oats prepared the evening before",
		Ingredients: []string{"1/2 cup rolled oats", "1/2 cup milk", "1 tablespoon chia seeds", "berries"},
		Directions:  []string{"Mix oats, milk and chia seeds in a jar", "Refrigerate overnight", "Top with berries before serving"},
	},
	{
		Name:        "Garlic Bread",
		Category:    "Sides",
		Description: "Crisp baguette with garlic butter",
		Ingredients: []string{"1 baguette", "4 tablespoons butter", "3 cloves garlic", "parsley"},
		Directions:  []string{"Mix softened butter with minced garlic and parsley", "Spread on sliced baguette", "Bake at 200C for 10 minutes"},
	},
}

func main() {
	password := flag.String("password", "testpassword123", "Password for the seeded users")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(os.Stdout, cfg.LogLevel, cfg.LogPretty)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	db, err := database.New(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx := context.Background()
	if err := database.RunMigrations(ctx, db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	v := validator.New()
	auth := service.NewAuthService(database.NewUserStore(db), v, cfg.JWTSecret, cfg.TokenTTL, logger)
	recipes := service.NewRecipeService(database.NewRecipeStore(db), v, logger)

	for _, email := range testUsers {
		err := auth.Register(ctx, email, *password)
		switch {
		case errors.Is(err, service.ErrUserExists):
			logger.Info("user already exists", "email", email)
		case err != nil:
			log.Fatalf("Failed to create user %s: %v", email, err)
		}
	}

	for i := range sampleRecipes {
		author := testUsers[i%len(testUsers)]
		id, err := recipes.AddRecipe(ctx, author, &sampleRecipes[i])
		if err != nil {
			log.Fatalf("Failed to create recipe %s: %v", sampleRecipes[i].Name, err)
		}
		logger.Info("seeded recipe", "id", id, "name", sampleRecipes[i].Name, "author", author)
	}

	if err := database.Close(db); err != nil {
		logger.Warn("failed to close database", "error", err)
	}
}
