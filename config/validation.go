package config

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ConfigRequirements defines required configuration for each environment
type ConfigRequirements struct {
	RequiredFields []string
}

var (
	// Environment-specific requirements
	requirements = map[Environment]ConfigRequirements{
		Development: {
			RequiredFields: []string{"server_port", "db_driver"},
		},
		Test: {
			RequiredFields: []string{"server_port", "db_driver"},
		},
		CI: {
			RequiredFields: []string{
				"server_port",
				"db_host",
				"db_port",
				"db_user",
				"db_password",
				"db_name",
				"jwt_secret",
			},
		},
		Production: {
			RequiredFields: []string{
				"server_port",
				"db_host",
				"db_port",
				"db_user",
				"db_password",
				"db_name",
				"db_ssl_mode",
				"jwt_secret",
			},
		},
	}
)

// fields exposes the string settings checked by the requirement table
func (c *Config) fields() map[string]string {
	return map[string]string{
		"server_port": c.ServerPort,
		"db_driver":   c.DBDriver,
		"db_host":     c.DBHost,
		"db_port":     c.DBPort,
		"db_user":     c.DBUser,
		"db_password": c.DBPassword,
		"db_name":     c.DBName,
		"db_ssl_mode": c.DBSSLMode,
		"jwt_secret":  c.JWTSecret,
	}
}

// ValidateConfig checks if the configuration meets the requirements for the given environment
func ValidateConfig(cfg *Config, env Environment) error {
	var errors []string

	fields := cfg.fields()
	for _, name := range requirements[env].RequiredFields {
		if strings.TrimSpace(fields[name]) == "" {
			errors = append(errors, ValidationError{Field: name, Message: "is required"}.Error())
		}
	}

	if port, err := strconv.Atoi(cfg.ServerPort); err != nil || port <= 0 || port > 65535 {
		errors = append(errors, ValidationError{Field: "server_port", Message: "must be a valid TCP port"}.Error())
	}

	switch cfg.DBDriver {
	case DriverPostgres:
	case DriverSQLite:
		if env == Production {
			errors = append(errors, ValidationError{Field: "db_driver", Message: "sqlite is not allowed in production"}.Error())
		}
		if cfg.SQLitePath == "" {
			errors = append(errors, ValidationError{Field: "sqlite_path", Message: "is required for the sqlite driver"}.Error())
		}
	default:
		errors = append(errors, ValidationError{Field: "db_driver", Message: fmt.Sprintf("unknown driver %q", cfg.DBDriver)}.Error())
	}

	if cfg.TokenTTL <= 0 {
		errors = append(errors, ValidationError{Field: "token_ttl", Message: "must be positive"}.Error())
	}
	if cfg.CacheEnabled() && cfg.CacheTTL <= 0 {
		errors = append(errors, ValidationError{Field: "cache_ttl", Message: "must be positive when redis is configured"}.Error())
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errors, "\n"))
	}

	return nil
}
