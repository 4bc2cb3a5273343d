package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smf/internal/config"
	"smf/internal/core"
)

func writeTOML(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "smf.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", cfg.Database.Host)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeTOML(t, `
[database]
host = "db.internal"
port = 3307
name = "app"
user = "app"
password = "secret"
charset = "utf8mb4"

[logging]
level = "debug"
format = "json"

ignore_tables = ["schema_migrations"]
ignore_columns = ["created_at", "orders.internal_note"]
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 3307, cfg.Database.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, []string{"schema_migrations"}, cfg.IgnoreTables)
	assert.Equal(t, []string{"created_at", "orders.internal_note"}, cfg.IgnoreColumns)

	assert.Contains(t, cfg.DSN(), "secret")
	assert.NotContains(t, cfg.RedactedDSN(), "secret")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	var configErr *core.ConfigError
	require.ErrorAs(t, err, &configErr)
}

func TestExplicitDSNOverridesFields(t *testing.T) {
	path := writeTOML(t, `
[database]
host = "ignored"
dsn = "app:secret@tcp(127.0.0.1:3306)/app"
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "app:secret@tcp(127.0.0.1:3306)/app", cfg.DSN())
}
