package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"smf/internal/config"
	"smf/internal/core"
	"smf/internal/diff"
	"smf/internal/introspect/mysql"
	"smf/internal/logging"
	"smf/internal/parser"
)

// loadDesired parses the desired-schema file named by path into a Schema.
func loadDesired(path string) (*core.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read desired schema %q: %w", path, err)
	}
	schema, err := parser.NewSQLParser().ParseSchema(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse desired schema: %w", err)
	}
	return schema, nil
}

// loadCurrent resolves the current schema. When fromFile is non-empty it is
// parsed as a SQL dump, mirroring loadDesired; otherwise the current schema
// is introspected from the live database named by cfg's DSN.
func loadCurrent(ctx context.Context, cfg *config.Config, log logging.Logger, fromFile string) (*core.Schema, error) {
	if fromFile != "" {
		return loadDesired(fromFile)
	}

	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		return nil, &core.ConnectError{DSN: cfg.RedactedDSN(), Err: err}
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return nil, &core.ConnectError{DSN: cfg.RedactedDSN(), Err: err}
	}

	return mysql.NewIntrospecter(log).Introspect(ctx, db)
}

func computeDelta(current, desired *core.Schema, cfg *config.Config) *core.Delta {
	return diff.Diff(current, desired, diff.Options{
		IgnoreTables:  cfg.IgnoreTables,
		IgnoreColumns: cfg.IgnoreColumns,
	})
}
