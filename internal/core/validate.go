package core

import (
	"fmt"
	"strings"
)

// Validate checks the structural invariants every Schema must satisfy
// regardless of where it came from (parsed DDL, a live introspection, or a
// hand-built test fixture). It never touches a database connection; callers
// decide what to do with a non-nil error (abort, log, surface to the user).
func (s *Schema) Validate() error {
	if s == nil {
		return nil
	}
	seenTables := make(map[string]string, len(s.Tables))
	for _, t := range s.Tables {
		lower := strings.ToLower(t.Name)
		if prev, ok := seenTables[lower]; ok {
			return &InvariantViolation{Message: fmt.Sprintf("duplicate table name %q (collides with %q)", t.Name, prev)}
		}
		seenTables[lower] = t.Name

		if err := t.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks a single table's invariants in isolation. It does not check
// whether a foreign key's referenced table or columns exist; neither
// Schema.Validate nor its callers (the parser and the introspector) check
// that either.
func (t *Table) Validate() error {
	if t == nil {
		return nil
	}

	seenCols := make(map[string]string, len(t.Columns))
	for _, c := range t.Columns {
		lower := strings.ToLower(c.Name)
		if prev, ok := seenCols[lower]; ok {
			return &InvariantViolation{Message: fmt.Sprintf("table %q: duplicate column name %q (collides with %q)", t.Name, c.Name, prev)}
		}
		seenCols[lower] = c.Name
	}

	pkCount := 0
	for _, idx := range t.Indexes {
		if idx.IsPrimary() {
			pkCount++
		}
		if len(idx.Columns) == 0 {
			return &InvariantViolation{Message: fmt.Sprintf("table %q: index %q has no columns", t.Name, idx.Name)}
		}
		for _, col := range idx.Columns {
			if t.FindColumn(col) == nil {
				return &InvariantViolation{Message: fmt.Sprintf("table %q: index %q references unknown column %q", t.Name, idx.Name, col)}
			}
		}
	}
	if pkCount > 1 {
		return &InvariantViolation{Message: fmt.Sprintf("table %q: more than one index named %q", t.Name, PrimaryKeyName)}
	}

	for _, fk := range t.ForeignKeys {
		if len(fk.Columns) == 0 {
			return &InvariantViolation{Message: fmt.Sprintf("table %q: foreign key %q has no columns", t.Name, fk.Name)}
		}
		if len(fk.Columns) != len(fk.ReferencedColumns) {
			return &InvariantViolation{Message: fmt.Sprintf("table %q: foreign key %q has %d local columns but %d referenced columns", t.Name, fk.Name, len(fk.Columns), len(fk.ReferencedColumns))}
		}
		for _, col := range fk.Columns {
			if t.FindColumn(col) == nil {
				return &InvariantViolation{Message: fmt.Sprintf("table %q: foreign key %q references unknown local column %q", t.Name, fk.Name, col)}
			}
		}
	}

	return nil
}
