package mysql

import (
	"database/sql"
	"strings"

	"smf/internal/core"
)

func introspectIndexes(ic *introspectCtx, t *core.Table) error {
	rows, err := ic.db.QueryContext(ic.ctx, `
		SELECT
			index_name,
			non_unique,
			index_type,
			MAX(comment),
			GROUP_CONCAT(column_name ORDER BY seq_in_index SEPARATOR ',')
		FROM information_schema.statistics
		WHERE table_schema = DATABASE() AND table_name = ?
		GROUP BY index_name, non_unique, index_type
	`, t.Name)
	if err != nil {
		return &core.IntrospectionError{Table: t.Name, Err: err}
	}
	defer rows.Close()

	for rows.Next() {
		var name, nonUnique, indexType, comment, columns sql.NullString
		if err := rows.Scan(&name, &nonUnique, &indexType, &comment, &columns); err != nil {
			return &core.IntrospectionError{Table: t.Name, Err: err}
		}

		t.Indexes = append(t.Indexes, &core.Index{
			Name:    name.String,
			Columns: strings.Split(columns.String, ","),
			Unique:  nonUnique.String == "0",
			Type:    strings.ToUpper(indexType.String),
			Comment: comment.String,
		})
	}

	if err := rows.Err(); err != nil {
		return &core.IntrospectionError{Table: t.Name, Err: err}
	}
	return nil
}
