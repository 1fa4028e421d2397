// Package config loads configuration from files, env vars, and flags, and
// validates it.
package config

import (
	"fmt"
	"time"

	"schema-naming/internal/rewrite"
)

// Config holds the application configuration.
type Config struct {
	Schema   SchemaConfig   `mapstructure:"schema"`
	Naming   rewrite.Config `mapstructure:"naming"`
	Database DatabaseConfig `mapstructure:"database"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// SchemaConfig locates the schema definition to process.
type SchemaConfig struct {
	File string `mapstructure:"file"`
}

// DatabaseConfig holds connection parameters for rename planning against a
// live database.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	PasswordFile    string        `mapstructure:"password_file"`
	PasswordPrompt  bool          `mapstructure:"password_prompt"`
	Database        string        `mapstructure:"database"`
	TLSMode         string        `mapstructure:"tls_mode"` // off, skip-verify, preferred
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// LoggingConfig holds logging parameters.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, text
}

// DSN builds the MySQL connection string.
func (d DatabaseConfig) DSN() string {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
		d.User, d.Password, d.Host, d.Port, d.Database)
	switch d.TLSMode {
	case "", "off":
	case "skip-verify", "preferred":
		dsn += "&tls=" + d.TLSMode
	default:
		dsn += "&tls=true"
	}
	return dsn
}

// Validate checks cross-field constraints not expressible in decoding.
func (c *Config) Validate() error {
	if _, err := c.Naming.TableRewriter(); err != nil {
		return fmt.Errorf("invalid naming config: %w", err)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging level %q (use debug, info, warn or error)", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("invalid logging format %q (use json or text)", c.Logging.Format)
	}

	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("database port %d is out of valid range (1-65535)", c.Database.Port)
	}
	return nil
}
