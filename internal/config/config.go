package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the full application configuration loaded from environment variables.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	JWT    JWTConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port string `env:"SERVER_PORT" envDefault:"8080"`
}

// DBConfig holds database connection parameters.
type DBConfig struct {
	Host     string `env:"DB_HOST,required"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER,required"`
	Password string `env:"DB_PASSWORD"`
	Name     string `env:"DB_NAME,required"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
}

// JWTConfig holds token signing settings. The secret is mandatory: every
// protected route depends on it, so its absence is a startup-fatal error.
type JWTConfig struct {
	Secret          string `env:"JWT_SECRET,required,notEmpty"`
	ExpirationHours int64  `env:"JWT_EXPIRATION_HOURS" envDefault:"168"`
}

// Load parses the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment config: %w", err)
	}
	return cfg, nil
}

// DSN builds a pgx connection string from the database settings.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}
