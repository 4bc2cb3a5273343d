package mysql

import (
	"database/sql"

	"smf/internal/core"
)

func introspectTables(ic *introspectCtx, schema *core.Schema) error {
	rows, err := ic.db.QueryContext(ic.ctx, `
		SELECT table_name, table_comment
		FROM information_schema.tables
		WHERE table_schema = DATABASE() AND table_type = 'BASE TABLE'
		ORDER BY table_name
	`)
	if err != nil {
		return &core.IntrospectionError{Err: err}
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name, comment string
		if err := rows.Scan(&name, &comment); err != nil {
			return &core.IntrospectionError{Err: err}
		}
		schema.Tables = append(schema.Tables, &core.Table{Name: name, Comment: comment})
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return &core.IntrospectionError{Err: err}
	}

	for _, t := range schema.Tables {
		if err := introspectTableOptions(ic, t); err != nil {
			return err
		}
		if err := introspectColumns(ic, t); err != nil {
			return err
		}
		if err := introspectIndexes(ic, t); err != nil {
			return err
		}
	}

	return nil
}

// introspectTableOptions fills in Engine/Collation/Charset/AutoIncrement.
// Charset isn't in information_schema.tables directly; it's recovered from
// table_collation via information_schema.collations.
func introspectTableOptions(ic *introspectCtx, t *core.Table) error {
	row := ic.db.QueryRowContext(ic.ctx, `
		SELECT t.engine, t.table_collation, t.auto_increment, co.character_set_name
		FROM information_schema.tables t
		LEFT JOIN information_schema.collations co ON co.collation_name = t.table_collation
		WHERE t.table_schema = DATABASE() AND t.table_name = ?
	`, t.Name)

	var engine, collation, charset sql.NullString
	var autoIncrement sql.NullInt64
	if err := row.Scan(&engine, &collation, &autoIncrement, &charset); err != nil {
		return &core.IntrospectionError{Table: t.Name, Err: err}
	}

	t.Options.Engine = engine.String
	t.Options.Collation = collation.String
	t.Options.Charset = charset.String
	t.Options.AutoIncrement = uint64(autoIncrement.Int64)
	return nil
}
