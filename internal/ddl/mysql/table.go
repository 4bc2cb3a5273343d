package mysql

import (
	"fmt"
	"strconv"
	"strings"

	"smf/internal/core"
)

func formatColumnList(cols []string) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = QuoteIdentifier(c)
	}
	return "(" + strings.Join(quoted, ", ") + ")"
}

func indexDefinitionInline(idx *core.Index) string {
	cols := formatColumnList(idx.Columns)
	switch {
	case idx.IsPrimary():
		return "PRIMARY KEY " + cols
	case idx.Unique:
		return fmt.Sprintf("UNIQUE KEY %s %s", QuoteIdentifier(idx.Name), cols)
	default:
		return fmt.Sprintf("KEY %s %s", QuoteIdentifier(idx.Name), cols)
	}
}

func foreignKeyDefinitionInline(fk *core.ForeignKey) string {
	return fmt.Sprintf("CONSTRAINT %s FOREIGN KEY %s REFERENCES %s %s ON DELETE %s ON UPDATE %s",
		QuoteIdentifier(fk.Name), formatColumnList(fk.Columns), QuoteIdentifier(fk.ReferencedTable),
		formatColumnList(fk.ReferencedColumns), fk.OnDelete, fk.OnUpdate)
}

// tableOptionsClause renders the engine/collation/comment/auto-increment
// options spec §4.5's full render describes. Charset is captured in the
// model but, per §9, excluded nowhere from rendering (only from diffing).
func tableOptionsClause(o core.TableOptions) string {
	var parts []string
	if engine := strings.TrimSpace(o.Engine); engine != "" {
		parts = append(parts, "ENGINE="+engine)
	}
	if charset := strings.TrimSpace(o.Charset); charset != "" {
		parts = append(parts, "DEFAULT CHARSET="+charset)
	}
	if coll := strings.TrimSpace(o.Collation); coll != "" {
		parts = append(parts, "COLLATE="+coll)
	}
	if o.AutoIncrement != 0 {
		parts = append(parts, "AUTO_INCREMENT="+strconv.FormatUint(o.AutoIncrement, 10))
	}
	if comment := strings.TrimSpace(o.Comment); comment != "" {
		parts = append(parts, "COMMENT="+QuoteString(comment))
	}
	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, " ")
}

func addIndexStatement(table string, idx *core.Index) string {
	cols := formatColumnList(idx.Columns)
	switch {
	case idx.IsPrimary():
		return fmt.Sprintf("ALTER TABLE %s ADD PRIMARY KEY %s;", table, cols)
	case idx.Unique:
		return fmt.Sprintf("ALTER TABLE %s ADD UNIQUE KEY %s %s;", table, QuoteIdentifier(idx.Name), cols)
	default:
		return fmt.Sprintf("ALTER TABLE %s ADD KEY %s %s;", table, QuoteIdentifier(idx.Name), cols)
	}
}

func dropIndexStatement(table, name string) string {
	if name == core.PrimaryKeyName {
		return fmt.Sprintf("ALTER TABLE %s DROP PRIMARY KEY;", table)
	}
	return fmt.Sprintf("ALTER TABLE %s DROP INDEX %s;", table, QuoteIdentifier(name))
}

func addForeignKeyStatement(table string, fk *core.ForeignKey) string {
	return fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s FOREIGN KEY %s REFERENCES %s %s ON DELETE %s ON UPDATE %s;",
		table, QuoteIdentifier(fk.Name), formatColumnList(fk.Columns), QuoteIdentifier(fk.ReferencedTable),
		formatColumnList(fk.ReferencedColumns), fk.OnDelete, fk.OnUpdate)
}

func dropForeignKeyStatement(table, name string) string {
	return fmt.Sprintf("ALTER TABLE %s DROP FOREIGN KEY %s;", table, QuoteIdentifier(name))
}
