package database

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"
	"sync"
	"time"

	_ "github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"github.com/pageza/recipes/backend/config"
	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const pingTimeout = 5 * time.Second

const sqliteDriverName = "sqlite3_unicode"

var registerSQLiteDriver sync.Once

// sqliteDriver registers a sqlite3 driver whose lower() folds all of Unicode.
// The built-in lower() and LIKE only fold ASCII letters.
func sqliteDriver() string {
	registerSQLiteDriver.Do(func() {
		sql.Register(sqliteDriverName, &sqlite3.SQLiteDriver{
			ConnectHook: func(conn *sqlite3.SQLiteConn) error {
				return conn.RegisterFunc("lower", unicodeLower, true)
			},
		})
	})
	return sqliteDriverName
}

func unicodeLower(v any) any {
	switch s := v.(type) {
	case string:
		return strings.ToLower(s)
	case []byte:
		return strings.ToLower(string(s))
	default:
		return v
	}
}

// New opens the database selected by cfg.DBDriver
func New(cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: newGormSlogLogger(logger, cfg.LogLevel == "debug"),
	}

	switch cfg.DBDriver {
	case config.DriverPostgres:
		sqlDB, err := openPostgres(cfg, logger)
		if err != nil {
			return nil, err
		}
		db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), gormCfg)
		if err != nil {
			sqlDB.Close()
			return nil, errors.Wrap(err, "error initializing gorm")
		}
		return db, nil
	case config.DriverSQLite:
		logger.Info("opening sqlite database", "path", cfg.SQLitePath)
		return OpenSQLite(cfg.SQLitePath, gormCfg)
	default:
		return nil, errors.Errorf("unsupported database driver: %s", cfg.DBDriver)
	}
}

// openPostgres connects through lib/pq and verifies the connection
func openPostgres(cfg *config.Config, logger *slog.Logger) (*sql.DB, error) {
	logger.Info("connecting to database", "host", cfg.DBHost, "port", cfg.DBPort, "user", cfg.DBUser)

	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, errors.Wrap(err, "error opening database")
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "error connecting to the database")
	}

	logger.Info("successfully connected to database")
	return db, nil
}

// OpenSQLite opens a sqlite database. A single connection is kept so that
// in-memory databases are shared by every query.
func OpenSQLite(dsn string, gormCfg *gorm.Config) (*gorm.DB, error) {
	if gormCfg == nil {
		gormCfg = &gorm.Config{}
	}
	db, err := gorm.Open(sqlite.New(sqlite.Config{DriverName: sqliteDriver(), DSN: dsn}), gormCfg)
	if err != nil {
		return nil, errors.Wrap(err, "error opening sqlite database")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "error getting sqlite connection pool")
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

// HealthCheck checks if the database is accessible
func HealthCheck(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the underlying connection pool
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
