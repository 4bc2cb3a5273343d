package core

import "sort"

// Delta is the structural difference between a current and a desired
// Schema. Drops are never produced for tables (see package ddl/mysql's
// non-goal around rollback/destructive defaults); column drops are
// computed but gated by a planner option.
type Delta struct {
	TablesToCreate []*Table
	TablesToAlter  []*TableDelta
}

// TableDelta is the structural difference for a single table present in
// both current and desired schemas.
type TableDelta struct {
	Name string

	ColumnsToAdd    []*Column
	ColumnsToModify []*ColumnModification
	ColumnsToDrop   []string // suppressed at emission time by default

	IndexesToAdd  []*Index
	IndexesToDrop []string

	ForeignKeysToAdd  []*ForeignKey
	ForeignKeysToDrop []string

	OptionChanges TableOptionChanges
}

// ColumnModification pairs a column's current and desired definitions.
type ColumnModification struct {
	Current *Column
	Desired *Column
}

// TableOptionChanges carries only the table options the Differ compares:
// engine and collation. A zero value means no change.
type TableOptionChanges struct {
	Engine    *OptionChange
	Collation *OptionChange
}

// OptionChange is a single old/new string pair.
type OptionChange struct {
	Old string
	New string
}

// IsEmpty reports whether every field of the TableDelta is empty, meaning
// the table contributes no alter statements.
func (td *TableDelta) IsEmpty() bool {
	return len(td.ColumnsToAdd) == 0 &&
		len(td.ColumnsToModify) == 0 &&
		len(td.ColumnsToDrop) == 0 &&
		len(td.IndexesToAdd) == 0 &&
		len(td.IndexesToDrop) == 0 &&
		len(td.ForeignKeysToAdd) == 0 &&
		len(td.ForeignKeysToDrop) == 0 &&
		td.OptionChanges.Engine == nil &&
		td.OptionChanges.Collation == nil
}

// IsEmpty reports whether the Delta contains no changes at all.
func (d *Delta) IsEmpty() bool {
	return d == nil || (len(d.TablesToCreate) == 0 && len(d.TablesToAlter) == 0)
}

// SortTables sorts TablesToCreate and TablesToAlter by name for
// deterministic output (spec §4.6: "tables ordered by name").
func (d *Delta) SortTables() {
	sort.Slice(d.TablesToCreate, func(i, j int) bool {
		return d.TablesToCreate[i].Name < d.TablesToCreate[j].Name
	})
	sort.Slice(d.TablesToAlter, func(i, j int) bool {
		return d.TablesToAlter[i].Name < d.TablesToAlter[j].Name
	})
}
