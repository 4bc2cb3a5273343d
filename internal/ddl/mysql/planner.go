package mysql

import (
	"regexp"
	"sort"
	"strings"

	"smf/internal/core"
)

// Options controls planner behavior not dictated by the Delta itself.
type Options struct {
	// AllowColumnDrops emits DROP COLUMN statements for each
	// TableDelta.ColumnsToDrop entry. Disabled by default per spec
	// §4.4/§9's safe-default column-drop gate.
	AllowColumnDrops bool
}

// Plan renders a Delta into the ordered statement sequence spec §4.6
// describes: CREATE TABLEs first, then per-table alters, each internally
// ordered per GenerateAlterTable. Delta.SortTables (run by diff.Diff)
// already orders both slices by table name.
func Plan(delta *core.Delta, opts Options) []string {
	if delta.IsEmpty() {
		return nil
	}

	var stmts []string
	for _, t := range delta.TablesToCreate {
		stmts = append(stmts, GenerateCreateTable(t))
	}
	for _, td := range delta.TablesToAlter {
		stmts = append(stmts, GenerateAlterTable(td, opts.AllowColumnDrops)...)
	}
	return stmts
}

// FullRender renders every table in a schema as a CREATE TABLE statement,
// sorted by name. Used for schema dumping and for the normalized-DDL fast
// path below.
func FullRender(s *core.Schema) string {
	tables := make([]*core.Table, len(s.Tables))
	copy(tables, s.Tables)
	sort.Slice(tables, func(i, j int) bool { return tables[i].Name < tables[j].Name })

	var sb strings.Builder
	for _, t := range tables {
		sb.WriteString(GenerateCreateTable(t))
		sb.WriteByte('\n')
	}
	return sb.String()
}

var reWhitespaceRun = regexp.MustCompile(`\s+`)

// FastPathEqual reports whether two schemas' full renders are equal after
// lower-casing and whitespace collapsing, letting a caller skip the Differ
// entirely per spec §4.6's normalized-DDL fast path.
func FastPathEqual(current, desired *core.Schema) bool {
	return normalizeRender(FullRender(current)) == normalizeRender(FullRender(desired))
}

func normalizeRender(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return reWhitespaceRun.ReplaceAllString(s, " ")
}
