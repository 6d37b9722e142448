package database

import (
	"context"

	"github.com/pageza/recipes/backend/internal/models"
	"github.com/pageza/recipes/backend/migrations"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
	"gorm.io/gorm"
)

// RunMigrations brings the schema up to date. SQLite databases are migrated
// from the gorm models, PostgreSQL from the embedded SQL migrations.
func RunMigrations(ctx context.Context, db *gorm.DB) error {
	if db.Dialector.Name() == "sqlite" {
		return db.WithContext(ctx).AutoMigrate(&models.User{}, &models.Recipe{})
	}

	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get connection pool")
	}
	if err := setupGoose(); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, sqlDB, "."); err != nil {
		return errors.Wrap(err, "failed to apply migrations")
	}
	return nil
}

// RollbackMigration reverts the most recently applied PostgreSQL migration
func RollbackMigration(ctx context.Context, db *gorm.DB) error {
	if db.Dialector.Name() == "sqlite" {
		return errors.New("rollback is not supported for sqlite")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get connection pool")
	}
	if err := setupGoose(); err != nil {
		return err
	}
	if err := goose.DownContext(ctx, sqlDB, "."); err != nil {
		return errors.Wrap(err, "failed to roll back migration")
	}
	return nil
}

func setupGoose() error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Wrap(err, "failed to set migration dialect")
	}
	return nil
}
