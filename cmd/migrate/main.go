package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/pageza/recipes/backend/config"
	"github.com/pageza/recipes/backend/internal/database"
	"github.com/pageza/recipes/backend/internal/logging"
)

func main() {
	rollback := flag.Bool("rollback", false, "Rollback the last migration")
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
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close(db)

	ctx := context.Background()
	if *rollback {
		if err := database.RollbackMigration(ctx, db); err != nil {
			logger.Error("rollback failed", "error", err)
			os.Exit(1)
		}
		logger.Info("rolled back last migration")
		return
	}

	if err := database.RunMigrations(ctx, db); err != nil {
		logger.Error("migration failed", "error", err)
		os.Exit(1)
	}
	logger.Info("migrations applied")
}
