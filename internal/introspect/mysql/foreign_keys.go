package mysql

import (
	"smf/internal/core"
)

// introspectForeignKeys loads every foreign key in the connected database in
// one pass and attaches each to its owning table. information_schema splits
// a multi-column FK across one row per column, so rows are grouped by
// (table_name, constraint_name) and ordered by ordinal_position to rebuild
// column order.
func introspectForeignKeys(ic *introspectCtx, schema *core.Schema) error {
	rows, err := ic.db.QueryContext(ic.ctx, `
		SELECT
			kcu.table_name,
			kcu.constraint_name,
			kcu.column_name,
			kcu.referenced_table_name,
			kcu.referenced_column_name,
			rc.update_rule,
			rc.delete_rule
		FROM information_schema.key_column_usage kcu
		JOIN information_schema.referential_constraints rc
			ON rc.constraint_schema = kcu.constraint_schema
			AND rc.constraint_name = kcu.constraint_name
			AND rc.table_name = kcu.table_name
		WHERE kcu.table_schema = DATABASE() AND kcu.referenced_table_name IS NOT NULL
		ORDER BY kcu.table_name, kcu.constraint_name, kcu.ordinal_position
	`)
	if err != nil {
		return &core.IntrospectionError{Err: err}
	}
	defer rows.Close()

	type fkKey struct{ table, name string }
	byKey := make(map[fkKey]*core.ForeignKey)
	var order []fkKey

	for rows.Next() {
		var table, name, column, refTable, refColumn, updateRule, deleteRule string
		if err := rows.Scan(&table, &name, &column, &refTable, &refColumn, &updateRule, &deleteRule); err != nil {
			return &core.IntrospectionError{Err: err}
		}

		key := fkKey{table: table, name: name}
		fk, ok := byKey[key]
		if !ok {
			fk = &core.ForeignKey{
				Name:            name,
				ReferencedTable: refTable,
				OnUpdate:        core.NormalizeReferentialAction(updateRule),
				OnDelete:        core.NormalizeReferentialAction(deleteRule),
			}
			byKey[key] = fk
			order = append(order, key)
		}
		fk.Columns = append(fk.Columns, column)
		fk.ReferencedColumns = append(fk.ReferencedColumns, refColumn)
	}
	if err := rows.Err(); err != nil {
		return &core.IntrospectionError{Err: err}
	}

	for _, key := range order {
		tbl := schema.FindTable(key.table)
		if tbl == nil {
			continue
		}
		tbl.ForeignKeys = append(tbl.ForeignKeys, byKey[key])
	}

	return nil
}
