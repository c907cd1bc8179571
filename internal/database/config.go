package database

import (
	"fmt"
	"strings"

	"github.com/franciscosanchezn/little-lemon-app/internal/config"
)

// DatabaseConfig holds relational store connection configuration
type DatabaseConfig struct {
	// Driver specifies the database driver (sqlite, postgres)
	Driver string

	// SQLite-specific configuration (the on-device default)
	Path string

	// PostgreSQL-specific configuration (development convenience)
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// FromConfig maps the application configuration onto a DatabaseConfig
func FromConfig(cfg *config.Config) DatabaseConfig {
	return DatabaseConfig{
		Driver:   cfg.DBDriver,
		Path:     cfg.DBPath,
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		Name:     cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
	}
}

// String returns a string representation with sensitive data masked
func (c *DatabaseConfig) String() string {
	return fmt.Sprintf("DatabaseConfig{Driver: %s, Path: %s, Host: %s, Port: %s, User: %s, Password: [REDACTED], Name: %s, SSLMode: %s}",
		c.Driver, c.Path, c.Host, c.Port, c.User, c.Name, c.SSLMode)
}

// DSN builds a Data Source Name string based on the driver.
// The driver name is normalized here so "Postgres" and "postgres" behave
// the same as they do in InitDatabase's driver switch.
func (c *DatabaseConfig) DSN() string {
	switch strings.ToLower(c.Driver) {
	case "postgres", "postgresql":
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode)
	case "sqlite", "":
		return c.Path
	default:
		return ""
	}
}
