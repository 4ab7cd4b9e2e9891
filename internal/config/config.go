// Package config loads the application configuration from a YAML file and
// environment variables.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/skillsenselab/taskhive/internal/auth/password"
	"github.com/skillsenselab/taskhive/internal/auth/token"
	"github.com/skillsenselab/taskhive/internal/logger"
	"github.com/skillsenselab/taskhive/internal/ratelimit"
	"github.com/skillsenselab/taskhive/internal/server"
	"github.com/skillsenselab/taskhive/internal/store"
)

// EnvPrefix is the prefix for environment variable overrides, e.g.
// TASKHIVE_DATABASE_DSN overrides database.dsn.
const EnvPrefix = "TASKHIVE"

// Config is the full application configuration.
type Config struct {
	Server    server.Config    `mapstructure:"server"`
	Logging   logger.Config    `mapstructure:"logging"`
	Database  store.Config     `mapstructure:"database"`
	Auth      token.Config     `mapstructure:"auth"`
	Password  password.Config  `mapstructure:"password"`
	RateLimit ratelimit.Config `mapstructure:"rate_limit"`
}

// Load reads configuration from the given YAML file (searched in standard
// locations when empty), a .env file when present, and TASKHIVE_-prefixed
// environment variables, in increasing order of precedence.
func Load(configFile string) (*Config, error) {
	// A .env file is a convenience for local development; absence is fine.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile == "" {
		configFile = findConfigFile()
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", configFile, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	c.Server.ApplyDefaults()
	c.Logging.ApplyDefaults()
	c.Database.ApplyDefaults()
	c.Auth.ApplyDefaults()
	c.Password.ApplyDefaults()
	c.RateLimit.ApplyDefaults()
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := c.Database.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := c.Auth.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := c.Password.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// findConfigFile searches for config.yml in standard locations.
func findConfigFile() string {
	searchPaths := []string{
		"./config.yml",
		"./config/config.yml",
		"./cmd/server/config.yml",
	}
	for _, path := range searchPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
