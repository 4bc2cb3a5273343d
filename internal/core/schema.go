// Package core contains the single source of truth for the schema model
// shared by the parser, introspector, differ, and DDL generator.
package core

import (
	"fmt"
	"strings"
)

// Schema is a mapping from table name to Table. Table order is irrelevant
// for comparison but is preserved for deterministic output.
type Schema struct {
	Tables []*Table
}

// Table is a single CREATE TABLE definition.
type Table struct {
	Name        string
	Columns     []*Column
	Indexes     []*Index
	ForeignKeys []*ForeignKey
	Options     TableOptions
	Comment     string
}

// Column describes a single column of a Table.
type Column struct {
	Name       string
	Type       string // raw, as written/reported; use NormalizeType for comparison.
	Nullable   bool
	Default    *string // nil means "no default"; see NormalizeDefault.
	Extra      string  // lower-case; recognized: "auto_increment", "".
	Comment    string
	Charset    string
	Collation  string
	PrimaryKey bool
}

// Index is a named index, including the primary key under the reserved
// name "PRIMARY".
type Index struct {
	Name    string
	Columns []string // ordered
	Unique  bool
	Type    string // default "BTREE"
	Comment string
}

// IsPrimary reports whether this index is the table's primary key.
func (i *Index) IsPrimary() bool {
	return i != nil && i.Name == PrimaryKeyName
}

// PrimaryKeyName is the reserved index name for a table's primary key.
const PrimaryKeyName = "PRIMARY"

// ForeignKey is a named foreign-key constraint.
type ForeignKey struct {
	Name              string
	Columns           []string // ordered
	ReferencedTable   string
	ReferencedColumns []string // ordered, same length as Columns
	OnUpdate          ReferentialAction
	OnDelete          ReferentialAction
}

// ReferentialAction is one of the MySQL FK referential actions.
type ReferentialAction string

const (
	RefActionRestrict   ReferentialAction = "RESTRICT"
	RefActionCascade    ReferentialAction = "CASCADE"
	RefActionSetNull    ReferentialAction = "SET NULL"
	RefActionNoAction   ReferentialAction = "NO ACTION"
	RefActionSetDefault ReferentialAction = "SET DEFAULT"
)

// NormalizeReferentialAction upper-cases and defaults an ON UPDATE/DELETE
// action string. An empty input defaults to RESTRICT.
func NormalizeReferentialAction(s string) ReferentialAction {
	switch ReferentialAction(strings.ToUpper(strings.TrimSpace(s))) {
	case RefActionCascade:
		return RefActionCascade
	case RefActionSetNull:
		return RefActionSetNull
	case RefActionNoAction:
		return RefActionNoAction
	case RefActionSetDefault:
		return RefActionSetDefault
	default:
		return RefActionRestrict
	}
}

// TableOptions holds the table-level options spec §3 tracks. Charset is
// captured for completeness but excluded from diffing (spec §9).
type TableOptions struct {
	Engine        string // default "InnoDB"
	Collation     string
	Charset       string
	Comment       string
	AutoIncrement uint64 // ignored in diffs
}

// FindTable looks up a table by name.
func (s *Schema) FindTable(name string) *Table {
	if s == nil {
		return nil
	}
	for _, t := range s.Tables {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// FindColumn looks up a column by name inside a table.
func (t *Table) FindColumn(name string) *Column {
	for _, c := range t.Columns {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// FindIndex looks up an index by name inside a table.
func (t *Table) FindIndex(name string) *Index {
	for _, idx := range t.Indexes {
		if idx.Name == name {
			return idx
		}
	}
	return nil
}

// FindForeignKey looks up a foreign key by name inside a table.
func (t *Table) FindForeignKey(name string) *ForeignKey {
	for _, fk := range t.ForeignKeys {
		if fk.Name == name {
			return fk
		}
	}
	return nil
}

// PrimaryKey returns the table's primary-key index, or nil.
func (t *Table) PrimaryKey() *Index {
	return t.FindIndex(PrimaryKeyName)
}

// String renders a short human summary, e.g. for logging.
func (t *Table) String() string {
	return fmt.Sprintf("Table: %s (%d cols, %d indexes, %d fks)",
		t.Name, len(t.Columns), len(t.Indexes), len(t.ForeignKeys))
}
