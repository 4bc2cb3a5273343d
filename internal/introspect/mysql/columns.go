package mysql

import (
	"database/sql"
	"strings"

	"smf/internal/core"
)

func introspectColumns(ic *introspectCtx, t *core.Table) error {
	rows, err := ic.db.QueryContext(ic.ctx, `
		SELECT
			c.column_name,
			c.column_type,
			c.column_comment,
			c.is_nullable,
			c.column_default,
			c.extra,
			c.character_set_name,
			c.collation_name,
			c.column_key
		FROM information_schema.columns c
		WHERE c.table_schema = DATABASE() AND c.table_name = ?
		ORDER BY c.ordinal_position
	`, t.Name)
	if err != nil {
		return &core.IntrospectionError{Table: t.Name, Err: err}
	}
	defer rows.Close()

	for rows.Next() {
		var name, colType, comment, nullable, extra, charset, collation, colKey sql.NullString
		var defaultVal sql.NullString
		if err := rows.Scan(&name, &colType, &comment, &nullable, &defaultVal, &extra, &charset, &collation, &colKey); err != nil {
			return &core.IntrospectionError{Table: t.Name, Err: err}
		}

		col := &core.Column{
			Name:       name.String,
			Type:       colType.String,
			Nullable:   nullable.String == "YES",
			PrimaryKey: colKey.String == "PRI",
			Extra:      strings.ToLower(extra.String),
			Comment:    comment.String,
			Charset:    charset.String,
			Collation:  collation.String,
		}
		if defaultVal.Valid {
			col.Default = &defaultVal.String
		}

		t.Columns = append(t.Columns, col)
	}

	if err := rows.Err(); err != nil {
		return &core.IntrospectionError{Table: t.Name, Err: err}
	}
	return nil
}
