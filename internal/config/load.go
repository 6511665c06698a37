package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Environment variable names. These are kept flat (no prefix) for
// compatibility with existing deployment configs.
const (
	envDatabaseURL        = "DATABASE_URL"
	envBindAddr           = "BIND_ADDR"
	envJWTSecret          = "JWT_SECRET"
	envReadOnlyWithoutJWT = "READ_ONLY_WITHOUT_JWT"
	envLogLevel           = "LOG_LEVEL"
)

// Load reads configuration from environment variables, applies defaults,
// and validates the result. Returns a populated Config struct or an error
// if loading or validation fails.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("database_url", "data.db")
	v.SetDefault("bind_addr", "0.0.0.0:8080")
	v.SetDefault("jwt_secret", "")
	v.SetDefault("read_only_without_jwt", true)
	v.SetDefault("log_level", "info")

	bindings := map[string]string{
		"database_url":          envDatabaseURL,
		"bind_addr":             envBindAddr,
		"jwt_secret":            envJWTSecret,
		"read_only_without_jwt": envReadOnlyWithoutJWT,
		"log_level":             envLogLevel,
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			BindAddr: v.GetString("bind_addr"),
			LogLevel: strings.ToLower(v.GetString("log_level")),
		},
		Database: DatabaseConfig{
			URL: v.GetString("database_url"),
		},
		Auth: AuthConfig{
			JWTSecret:           v.GetString("jwt_secret"),
			ReadOnlyWithoutAuth: v.GetBool("read_only_without_jwt"),
		},
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
