// Package diff computes the structural difference between a current and a
// desired schema, producing a core.Delta consumed by the DDL generator and
// planner.
package diff

import (
	"strings"

	"smf/internal/core"
)

// Options controls what the differ compares. Ignored tables and columns
// are treated as if they did not exist in either schema: they never
// appear in TablesToCreate, TableDelta, or table-option comparisons.
type Options struct {
	// IgnoreTables is a list of table names (case-insensitive) excluded
	// entirely from the diff.
	IgnoreTables []string

	// IgnoreColumns is a list of "table.column" or bare "column" entries.
	// A bare entry ignores that column name in every table; a qualified
	// entry ignores it only in the named table.
	IgnoreColumns []string
}

// Diff computes the Delta needed to transform current into desired.
func Diff(current, desired *core.Schema, opts Options) *core.Delta {
	ign := newIgnoreSet(opts)
	cur := ign.filterSchema(current)
	want := ign.filterSchema(desired)

	curTables, _ := mapTablesByName(cur.Tables)
	delta := &core.Delta{}

	for _, wantTable := range want.Tables {
		curTable, exists := curTables[strings.ToLower(wantTable.Name)]
		if !exists {
			delta.TablesToCreate = append(delta.TablesToCreate, wantTable)
			continue
		}
		if td := compareTable(curTable, wantTable); !td.IsEmpty() {
			delta.TablesToAlter = append(delta.TablesToAlter, td)
		}
	}

	delta.SortTables()
	return delta
}
