package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	defaultConfigFile = "config.yaml"
	defaultEnvFile    = ".env"
	defaultSecretsDir = "/run/secrets"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort        string        `koanf:"server_port"`
	ServerHost        string        `koanf:"server_host"`
	ReadHeaderTimeout time.Duration `koanf:"server_read_header_timeout"`
	ReadTimeout       time.Duration `koanf:"server_read_timeout"`
	WriteTimeout      time.Duration `koanf:"server_write_timeout"`
	IdleTimeout       time.Duration `koanf:"server_idle_timeout"`
	CORSOrigins       []string      `koanf:"cors_origins"`

	// Database configuration
	DBDriver      string `koanf:"db_driver"`
	DBHost        string `koanf:"db_host"`
	DBPort        string `koanf:"db_port"`
	DBUser        string `koanf:"db_user"`
	DBPassword    string `koanf:"db_password"`
	DBName        string `koanf:"db_name"`
	DBSSLMode     string `koanf:"db_ssl_mode"`
	SQLitePath    string `koanf:"sqlite_path"`
	AutoMigrate   bool   `koanf:"db_auto_migrate"`

	// Redis configuration, the recipe cache is disabled when no address is set
	RedisHost     string        `koanf:"redis_host"`
	RedisPort     string        `koanf:"redis_port"`
	RedisPassword string        `koanf:"redis_password"`
	RedisDB       int           `koanf:"redis_db"`
	RedisURL      string        `koanf:"redis_url"`
	CacheTTL      time.Duration `koanf:"cache_ttl"`

	// JWT configuration
	JWTSecret string        `koanf:"jwt_secret"`
	TokenTTL  time.Duration `koanf:"token_ttl"`

	// Logging configuration
	LogLevel  string `koanf:"log_level"`
	LogPretty bool   `koanf:"log_pretty"`
}

// Address returns the host:port the HTTP server listens on
func (c *Config) Address() string {
	return net.JoinHostPort(c.ServerHost, c.ServerPort)
}

// DSN returns the PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// CacheEnabled reports whether a Redis address is configured
func (c *Config) CacheEnabled() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}

// defaults returns the configuration used before any source is applied
func defaults(env Environment) *Config {
	cfg := &Config{
		ServerPort:        "8080",
		ServerHost:        "",
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		CORSOrigins:       []string{"http://localhost:5173"},
		DBDriver:          DriverSQLite,
		DBHost:            "localhost",
		DBPort:            "5432",
		DBUser:            "postgres",
		DBName:            "recipes",
		DBSSLMode:         "disable",
		SQLitePath:        "recipes.db",
		CacheTTL:          10 * time.Minute,
		TokenTTL:          24 * time.Hour,
		LogLevel:          "info",
		AutoMigrate:       true,
	}
	if env == Production || env == CI {
		cfg.DBDriver = DriverPostgres
	}
	if env == Development || env == Test {
		cfg.JWTSecret = "development-secret"
	}
	if env == Development {
		cfg.LogPretty = true
		cfg.LogLevel = "debug"
	}
	return cfg
}

// LoadConfig builds the configuration from defaults, an optional YAML file,
// environment variables and Docker secrets, in that order of precedence
func LoadConfig() (*Config, error) {
	loadDotEnv()

	environment := GetEnvironment()
	cfg := defaults(environment)
	k := koanf.New(".")

	if path, ok := configFile(); ok {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(".", env.Opt{
		TransformFunc: func(key, value string) (string, any) {
			key = strings.ToLower(key)
			if key == "cors_origins" {
				return key, splitList(value)
			}
			return key, value
		},
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	loadSecrets(cfg)

	if err := ValidateConfig(cfg, environment); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadDotEnv exports variables from a .env file without overriding the
// process environment. A missing file is not an error.
func loadDotEnv() {
	path := os.Getenv("ENV_FILE")
	if path == "" {
		path = defaultEnvFile
	}
	_ = godotenv.Load(path)
}

// configFile returns the YAML file to load, if any
func configFile() (string, bool) {
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		return path, true
	}
	if _, err := os.Stat(defaultConfigFile); err == nil {
		return defaultConfigFile, true
	}
	return "", false
}

// loadSecrets overrides sensitive values with Docker secrets when present
func loadSecrets(cfg *Config) {
	if v := readSecret("db_user"); v != "" {
		cfg.DBUser = v
	}
	if v := readSecret("db_password"); v != "" {
		cfg.DBPassword = v
	}
	if v := readSecret("jwt_secret"); v != "" {
		cfg.JWTSecret = v
	}
	if v := readSecret("redis_password"); v != "" {
		cfg.RedisPassword = v
	}
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = defaultSecretsDir
	}
	data, err := os.ReadFile(filepath.Join(secretsDir, name))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
