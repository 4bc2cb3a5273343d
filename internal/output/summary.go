package output

import (
	"fmt"
	"strings"

	"smf/internal/core"
)

type summaryFormatter struct{}

// FormatDiff formats a Delta as a compact summary.
// Example output:
//
//	Tables to create: 3
//	Tables to alter:  2
func (summaryFormatter) FormatDiff(d *core.Delta) (string, error) {
	if d == nil || d.IsEmpty() {
		return "No changes detected.\n", nil
	}

	var sb strings.Builder
	sb.WriteString("Schema Diff Summary\n")
	sb.WriteString("===================\n\n")

	addedCols, modifiedCols, droppedCols := countColumns(d)
	addedIdx, droppedIdx := countIndexes(d)
	addedFK, droppedFK := countForeignKeys(d)

	fmt.Fprintf(&sb, "Tables to create: %d\n", len(d.TablesToCreate))
	fmt.Fprintf(&sb, "Tables to alter:  %d\n", len(d.TablesToAlter))
	fmt.Fprintf(&sb, "Columns:          +%d, ~%d, -%d\n", addedCols, modifiedCols, droppedCols)
	fmt.Fprintf(&sb, "Indexes:          +%d, -%d\n", addedIdx, droppedIdx)
	fmt.Fprintf(&sb, "Foreign keys:     +%d, -%d\n", addedFK, droppedFK)

	writeTableDetails(&sb, d)

	return sb.String(), nil
}

func countColumns(d *core.Delta) (added, modified, dropped int) {
	for _, t := range d.TablesToCreate {
		added += len(t.Columns)
	}
	for _, td := range d.TablesToAlter {
		added += len(td.ColumnsToAdd)
		modified += len(td.ColumnsToModify)
		dropped += len(td.ColumnsToDrop)
	}
	return
}

func countIndexes(d *core.Delta) (added, dropped int) {
	for _, t := range d.TablesToCreate {
		added += len(t.Indexes)
	}
	for _, td := range d.TablesToAlter {
		added += len(td.IndexesToAdd)
		dropped += len(td.IndexesToDrop)
	}
	return
}

func countForeignKeys(d *core.Delta) (added, dropped int) {
	for _, t := range d.TablesToCreate {
		added += len(t.ForeignKeys)
	}
	for _, td := range d.TablesToAlter {
		added += len(td.ForeignKeysToAdd)
		dropped += len(td.ForeignKeysToDrop)
	}
	return
}

func writeTableDetails(sb *strings.Builder, d *core.Delta) {
	if len(d.TablesToCreate) == 0 && len(d.TablesToAlter) == 0 {
		return
	}

	sb.WriteString("\nDetails:\n")
	for _, t := range d.TablesToCreate {
		fmt.Fprintf(sb, "  + %s (new table)\n", t.Name)
	}
	for _, td := range d.TablesToAlter {
		fmt.Fprintf(sb, "  ~ %s (%s)\n", td.Name, describeTableChanges(td))
	}
}

// describeTableChanges returns a human-readable summary of changes in a table.
func describeTableChanges(td *core.TableDelta) string {
	var parts []string

	if n := len(td.ColumnsToAdd); n > 0 {
		parts = append(parts, fmt.Sprintf("+%d cols", n))
	}
	if n := len(td.ColumnsToModify); n > 0 {
		parts = append(parts, fmt.Sprintf("~%d cols", n))
	}
	if n := len(td.ColumnsToDrop); n > 0 {
		parts = append(parts, fmt.Sprintf("-%d cols", n))
	}
	if n := len(td.IndexesToAdd); n > 0 {
		parts = append(parts, fmt.Sprintf("+%d idx", n))
	}
	if n := len(td.IndexesToDrop); n > 0 {
		parts = append(parts, fmt.Sprintf("-%d idx", n))
	}
	if n := len(td.ForeignKeysToAdd); n > 0 {
		parts = append(parts, fmt.Sprintf("+%d fk", n))
	}
	if n := len(td.ForeignKeysToDrop); n > 0 {
		parts = append(parts, fmt.Sprintf("-%d fk", n))
	}

	if len(parts) == 0 {
		return "options changed"
	}
	return strings.Join(parts, ", ")
}

// FormatPlan formats an ordered DDL plan as a compact summary.
func (summaryFormatter) FormatPlan(statements []string) (string, error) {
	stmts := normalizeStatements(statements)
	if len(stmts) == 0 {
		return "No plan statements.\n", nil
	}

	var sb strings.Builder
	sb.WriteString("Plan Summary\n")
	sb.WriteString("============\n\n")
	fmt.Fprintf(&sb, "SQL Statements: %d\n", len(stmts))
	return sb.String(), nil
}
