// Package mysql introspects a live MySQL, MariaDB, or TiDB server (the
// three speak the same wire protocol and largely the same information_schema)
// into the same core.Schema the DDL parser builds, so the differ never has
// to care where a schema came from.
package mysql

import (
	"context"
	"database/sql"

	"smf/internal/core"
	"smf/internal/logging"
)

type introspectCtx struct {
	ctx context.Context
	db  *sql.DB
}

// Introspecter builds a core.Schema by querying a live database's
// information_schema.
type Introspecter struct {
	log logging.Logger
}

// NewIntrospecter returns an Introspecter. A nil log defaults to
// logging.Nop().
func NewIntrospecter(log logging.Logger) *Introspecter {
	if log == nil {
		log = logging.Nop()
	}
	return &Introspecter{log: log}
}

// Introspect builds a Schema from db, covering every base table in the
// connected database (DATABASE()). Views, routines, triggers, and events
// are out of scope.
func (in *Introspecter) Introspect(ctx context.Context, db *sql.DB) (*core.Schema, error) {
	flavor, version, err := detectFlavor(ctx, db)
	if err != nil {
		return nil, &core.IntrospectionError{Err: err}
	}
	in.log.Infof("introspecting %s %s", flavor, version)

	ic := &introspectCtx{ctx: ctx, db: db}

	schema := &core.Schema{}
	if err := introspectTables(ic, schema); err != nil {
		return nil, err
	}
	if err := introspectForeignKeys(ic, schema); err != nil {
		return nil, err
	}

	if err := schema.Validate(); err != nil {
		return nil, err
	}

	return schema, nil
}
