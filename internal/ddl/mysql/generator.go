package mysql

import (
	"fmt"
	"strings"

	"smf/internal/core"
)

// GenerateCreateTable renders a full CREATE TABLE statement, including
// inline indexes and foreign keys. New tables' FKs are emitted inline with
// the creating statement rather than deferred to a later ALTER TABLE: per
// spec §4.6, MySQL accepts forward references to tables created earlier in
// the same statement stream for the common storage engines.
func GenerateCreateTable(t *core.Table) string {
	name := QuoteIdentifier(t.Name)

	lines := make([]string, 0, len(t.Columns)+len(t.Indexes)+len(t.ForeignKeys))
	for _, c := range t.Columns {
		lines = append(lines, "  "+columnDefinition(c))
	}
	for _, idx := range t.Indexes {
		lines = append(lines, "  "+indexDefinitionInline(idx))
	}
	for _, fk := range t.ForeignKeys {
		lines = append(lines, "  "+foreignKeyDefinitionInline(fk))
	}

	return fmt.Sprintf("CREATE TABLE %s (\n%s\n)%s;", name, strings.Join(lines, ",\n"), tableOptionsClause(t.Options))
}

// GenerateAlterTable renders the ordered ALTER TABLE statement sequence for
// one table's delta, per spec §4.6: drop foreign keys, drop indexes, add
// columns, modify columns, drop columns (if allowed), add indexes, add
// foreign keys, change engine/collation.
func GenerateAlterTable(td *core.TableDelta, allowColumnDrops bool) []string {
	table := QuoteIdentifier(td.Name)
	var stmts []string

	for _, name := range td.ForeignKeysToDrop {
		stmts = append(stmts, dropForeignKeyStatement(table, name))
	}
	for _, name := range td.IndexesToDrop {
		stmts = append(stmts, dropIndexStatement(table, name))
	}
	for _, c := range td.ColumnsToAdd {
		stmts = append(stmts, fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s;", table, columnDefinition(c)))
	}
	for _, mod := range td.ColumnsToModify {
		stmts = append(stmts, fmt.Sprintf("ALTER TABLE %s MODIFY COLUMN %s;", table, columnDefinition(mod.Desired)))
	}
	if allowColumnDrops {
		for _, name := range td.ColumnsToDrop {
			stmts = append(stmts, fmt.Sprintf("ALTER TABLE %s DROP COLUMN %s;", table, QuoteIdentifier(name)))
		}
	}
	for _, idx := range td.IndexesToAdd {
		stmts = append(stmts, addIndexStatement(table, idx))
	}
	for _, fk := range td.ForeignKeysToAdd {
		stmts = append(stmts, addForeignKeyStatement(table, fk))
	}
	if eng := td.OptionChanges.Engine; eng != nil {
		stmts = append(stmts, fmt.Sprintf("ALTER TABLE %s ENGINE=%s;", table, eng.New))
	}
	if coll := td.OptionChanges.Collation; coll != nil {
		stmts = append(stmts, fmt.Sprintf("ALTER TABLE %s COLLATE=%s;", table, coll.New))
	}

	return stmts
}
