// Package config loads the operational configuration for the smf CLI: how
// to reach the database, what to log, and which tables/columns to leave
// out of diffs. It reads a TOML file the same way this lineage previously
// read TOML-authored schemas, repointed onto operational settings instead.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"smf/internal/core"
)

// Database holds the connection settings for a MySQL-family server.
type Database struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	Name     string `toml:"name"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Charset  string `toml:"charset"`
	// DSN, when set, overrides Host/Port/Name/User/Password/Charset entirely.
	DSN string `toml:"dsn"`
}

// Logging holds the logger construction settings.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Config is the root of the TOML configuration document.
type Config struct {
	Database      Database `toml:"database"`
	Logging       Logging  `toml:"logging"`
	IgnoreTables  []string `toml:"ignore_tables"`
	IgnoreColumns []string `toml:"ignore_columns"`
}

// Default returns the built-in defaults applied before file and flag
// overrides are layered on top.
func Default() *Config {
	return &Config{
		Database: Database{
			Host:    "127.0.0.1",
			Port:    3306,
			Charset: "utf8mb4",
		},
		Logging: Logging{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads path as TOML and merges it on top of Default(). A missing file
// is not an error when path is empty; callers that want a config file are
// expected to check existence themselves before calling Load.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &core.ConfigError{Message: fmt.Sprintf("open config %q: %v", path, err)}
	}
	defer f.Close()

	if err := decode(f, cfg); err != nil {
		return nil, &core.ConfigError{Message: fmt.Sprintf("parse config %q: %v", path, err)}
	}
	return cfg, nil
}

func decode(r io.Reader, cfg *Config) error {
	_, err := toml.NewDecoder(r).Decode(cfg)
	return err
}

// DSN returns the effective connection string: Database.DSN verbatim when
// set, otherwise one assembled from the discrete fields.
func (c *Config) DSN() string {
	if c.Database.DSN != "" {
		return c.Database.DSN
	}
	d := c.Database
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=true",
		d.User, d.Password, d.Host, d.Port, d.Name, d.Charset)
}

// RedactedDSN is DSN() with the password replaced, safe to put in logs and
// ConnectError values.
func (c *Config) RedactedDSN() string {
	dsn := c.DSN()
	if c.Database.Password == "" {
		return dsn
	}
	return strings.Replace(dsn, ":"+c.Database.Password+"@", ":***@", 1)
}
