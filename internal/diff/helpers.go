package diff

import (
	"fmt"
	"strings"

	"smf/internal/core"
)

// mapTablesByName creates a lookup map of tables keyed by lowercase name.
// Returns the map and any case-insensitive name collisions found.
func mapTablesByName(tables []*core.Table) (map[string]*core.Table, []string) {
	m := make(map[string]*core.Table, len(tables))
	original := make(map[string]string, len(tables))
	var collisions []string

	for _, t := range tables {
		key := strings.ToLower(t.Name)
		if prev, ok := original[key]; ok {
			if prev != t.Name {
				collisions = append(collisions, fmt.Sprintf("case-insensitive name collision: %q vs %q", prev, t.Name))
			}
			continue
		}
		original[key] = t.Name
		m[key] = t
	}
	return m, collisions
}

// mapColumnsByName creates a lookup map of columns keyed by lowercase name.
// Returns the map and any case-insensitive name collisions found.
func mapColumnsByName(columns []*core.Column) (map[string]*core.Column, []string) {
	m := make(map[string]*core.Column, len(columns))
	original := make(map[string]string, len(columns))
	var collisions []string

	for _, c := range columns {
		key := strings.ToLower(c.Name)
		if prev, ok := original[key]; ok {
			if prev != c.Name {
				collisions = append(collisions, fmt.Sprintf("case-insensitive name collision: %q vs %q", prev, c.Name))
			}
			continue
		}
		original[key] = c.Name
		m[key] = c
	}
	return m, collisions
}

// mapIndexesByKey creates a lookup map of indexes keyed by a custom key function.
func mapIndexesByKey(items []*core.Index, keyFn func(*core.Index) string) map[string]*core.Index {
	m := make(map[string]*core.Index, len(items))
	for _, item := range items {
		m[keyFn(item)] = item
	}
	return m
}

// ignoreSet resolves Options.IgnoreTables/IgnoreColumns into fast lookup
// tables and strips ignored tables/columns out of a schema before diffing.
type ignoreSet struct {
	tables        map[string]struct{}
	globalColumns map[string]struct{}          // bare "column" entries
	tableColumns  map[string]map[string]struct{} // "table" -> {"column": {}}
}

func newIgnoreSet(opts Options) *ignoreSet {
	ign := &ignoreSet{
		tables:        make(map[string]struct{}, len(opts.IgnoreTables)),
		globalColumns: make(map[string]struct{}),
		tableColumns:  make(map[string]map[string]struct{}),
	}
	for _, t := range opts.IgnoreTables {
		ign.tables[strings.ToLower(strings.TrimSpace(t))] = struct{}{}
	}
	for _, entry := range opts.IgnoreColumns {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		table, column, qualified := strings.Cut(entry, ".")
		if !qualified {
			ign.globalColumns[strings.ToLower(table)] = struct{}{}
			continue
		}
		table = strings.ToLower(strings.TrimSpace(table))
		cols, ok := ign.tableColumns[table]
		if !ok {
			cols = make(map[string]struct{})
			ign.tableColumns[table] = cols
		}
		cols[strings.ToLower(strings.TrimSpace(column))] = struct{}{}
	}
	return ign
}

func (ign *ignoreSet) ignoresColumn(tableName, columnName string) bool {
	columnName = strings.ToLower(columnName)
	if _, ok := ign.globalColumns[columnName]; ok {
		return true
	}
	if cols, ok := ign.tableColumns[strings.ToLower(tableName)]; ok {
		if _, ok := cols[columnName]; ok {
			return true
		}
	}
	return false
}

// filterSchema returns a copy of s with ignored tables dropped and ignored
// columns stripped from each remaining table's column list.
func (ign *ignoreSet) filterSchema(s *core.Schema) *core.Schema {
	if s == nil {
		return &core.Schema{}
	}
	out := &core.Schema{Tables: make([]*core.Table, 0, len(s.Tables))}
	for _, t := range s.Tables {
		if _, skip := ign.tables[strings.ToLower(t.Name)]; skip {
			continue
		}
		out.Tables = append(out.Tables, ign.filterTable(t))
	}
	return out
}

func (ign *ignoreSet) filterTable(t *core.Table) *core.Table {
	filtered := *t
	filtered.Columns = make([]*core.Column, 0, len(t.Columns))
	for _, c := range t.Columns {
		if ign.ignoresColumn(t.Name, c.Name) {
			continue
		}
		filtered.Columns = append(filtered.Columns, c)
	}
	return &filtered
}
