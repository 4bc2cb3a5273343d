package output

import (
	"fmt"
	"strings"

	"smf/internal/core"
)

// formatDeltaText renders a Delta as a human-oriented change list, used by
// the SQL formatter's diff output (as leading comments) and available to
// any formatter that wants a table-change narrative.
func formatDeltaText(d *core.Delta) string {
	if d == nil || d.IsEmpty() {
		return "No differences detected."
	}

	var sb strings.Builder
	sb.WriteString("Schema differences:\n")

	writeTablesToCreate(&sb, d.TablesToCreate)
	writeTablesToAlter(&sb, d.TablesToAlter)

	return sb.String()
}

func writeTablesToCreate(sb *strings.Builder, tables []*core.Table) {
	if len(tables) == 0 {
		return
	}
	fmt.Fprintf(sb, "\nTables to create:\n")
	for _, t := range tables {
		fmt.Fprintf(sb, "  - %s (%d columns)\n", t.Name, len(t.Columns))
	}
}

func writeTablesToAlter(sb *strings.Builder, deltas []*core.TableDelta) {
	if len(deltas) == 0 {
		return
	}
	fmt.Fprintf(sb, "\nTables to alter:\n")
	for _, td := range deltas {
		fmt.Fprintf(sb, "\n  - %s\n", td.Name)
		writeColumnChanges(sb, td)
		writeIndexChanges(sb, td)
		writeForeignKeyChanges(sb, td)
		writeOptionChanges(sb, td)
	}
}

func writeColumnChanges(sb *strings.Builder, td *core.TableDelta) {
	if len(td.ColumnsToAdd) > 0 {
		fmt.Fprintf(sb, "    Columns to add:\n")
		for _, c := range td.ColumnsToAdd {
			fmt.Fprintf(sb, "      - %s: %s\n", c.Name, c.Type)
		}
	}
	if len(td.ColumnsToModify) > 0 {
		fmt.Fprintf(sb, "    Columns to modify:\n")
		for _, m := range td.ColumnsToModify {
			fmt.Fprintf(sb, "      - %s: %s -> %s\n", m.Desired.Name, m.Current.Type, m.Desired.Type)
		}
	}
	if len(td.ColumnsToDrop) > 0 {
		fmt.Fprintf(sb, "    Columns to drop:\n")
		for _, name := range td.ColumnsToDrop {
			fmt.Fprintf(sb, "      - %s\n", name)
		}
	}
}

func writeIndexChanges(sb *strings.Builder, td *core.TableDelta) {
	if len(td.IndexesToAdd) > 0 {
		fmt.Fprintf(sb, "    Indexes to add:\n")
		for _, idx := range td.IndexesToAdd {
			fmt.Fprintf(sb, "      - %s (%s)\n", idx.Name, strings.Join(idx.Columns, ", "))
		}
	}
	if len(td.IndexesToDrop) > 0 {
		fmt.Fprintf(sb, "    Indexes to drop:\n")
		for _, name := range td.IndexesToDrop {
			fmt.Fprintf(sb, "      - %s\n", name)
		}
	}
}

func writeForeignKeyChanges(sb *strings.Builder, td *core.TableDelta) {
	if len(td.ForeignKeysToAdd) > 0 {
		fmt.Fprintf(sb, "    Foreign keys to add:\n")
		for _, fk := range td.ForeignKeysToAdd {
			fmt.Fprintf(sb, "      - %s -> %s\n", fk.Name, fk.ReferencedTable)
		}
	}
	if len(td.ForeignKeysToDrop) > 0 {
		fmt.Fprintf(sb, "    Foreign keys to drop:\n")
		for _, name := range td.ForeignKeysToDrop {
			fmt.Fprintf(sb, "      - %s\n", name)
		}
	}
}

func writeOptionChanges(sb *strings.Builder, td *core.TableDelta) {
	if eng := td.OptionChanges.Engine; eng != nil {
		fmt.Fprintf(sb, "    Engine: %q -> %q\n", eng.Old, eng.New)
	}
	if coll := td.OptionChanges.Collation; coll != nil {
		fmt.Fprintf(sb, "    Collation: %q -> %q\n", coll.Old, coll.New)
	}
}
