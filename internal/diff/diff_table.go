package diff

import (
	"sort"
	"strings"

	"smf/internal/core"
)

// compareTable computes the TableDelta for a table present in both the
// current and desired schema.
func compareTable(cur, want *core.Table) *core.TableDelta {
	td := &core.TableDelta{Name: want.Name}

	compareColumns(cur.Columns, want.Columns, td)
	compareIndexes(cur.Indexes, want.Indexes, td)
	compareForeignKeys(cur.ForeignKeys, want.ForeignKeys, td)
	compareOptions(cur.Options, want.Options, td)

	return td
}

func compareColumns(curCols, wantCols []*core.Column, td *core.TableDelta) {
	curMap, _ := mapColumnsByName(curCols)
	wantMap, _ := mapColumnsByName(wantCols)

	for _, wantCol := range wantCols {
		key := strings.ToLower(wantCol.Name)
		curCol, exists := curMap[key]
		if !exists {
			td.ColumnsToAdd = append(td.ColumnsToAdd, wantCol)
			continue
		}
		if !core.EqualColumns(curCol, wantCol) {
			td.ColumnsToModify = append(td.ColumnsToModify, &core.ColumnModification{
				Current: curCol,
				Desired: wantCol,
			})
		}
	}

	for _, curCol := range curCols {
		key := strings.ToLower(curCol.Name)
		if _, exists := wantMap[key]; !exists {
			td.ColumnsToDrop = append(td.ColumnsToDrop, curCol.Name)
		}
	}
}

func compareIndexes(curIdx, wantIdx []*core.Index, td *core.TableDelta) {
	curMap := mapIndexesByKey(curIdx, indexKey)
	wantMap := mapIndexesByKey(wantIdx, indexKey)

	for key, wantI := range wantMap {
		curI, exists := curMap[key]
		if !exists {
			td.IndexesToAdd = append(td.IndexesToAdd, wantI)
			continue
		}
		if !core.EqualIndexes(curI, wantI) {
			// An index can't be altered in place: drop and recreate.
			td.IndexesToDrop = append(td.IndexesToDrop, curI.Name)
			td.IndexesToAdd = append(td.IndexesToAdd, wantI)
		}
	}

	for key, curI := range curMap {
		if _, exists := wantMap[key]; !exists {
			td.IndexesToDrop = append(td.IndexesToDrop, curI.Name)
		}
	}

	sortIndexesByName(td.IndexesToAdd)
	sort.Strings(td.IndexesToDrop)
}

func compareForeignKeys(curFKs, wantFKs []*core.ForeignKey, td *core.TableDelta) {
	curMap := mapForeignKeysByKey(curFKs)
	wantMap := mapForeignKeysByKey(wantFKs)

	for key, wantFK := range wantMap {
		curFK, exists := curMap[key]
		if !exists {
			td.ForeignKeysToAdd = append(td.ForeignKeysToAdd, wantFK)
			continue
		}
		if !core.EqualForeignKeys(curFK, wantFK) {
			td.ForeignKeysToDrop = append(td.ForeignKeysToDrop, curFK.Name)
			td.ForeignKeysToAdd = append(td.ForeignKeysToAdd, wantFK)
		}
	}

	for key, curFK := range curMap {
		if _, exists := wantMap[key]; !exists {
			td.ForeignKeysToDrop = append(td.ForeignKeysToDrop, curFK.Name)
		}
	}

	sortForeignKeysByName(td.ForeignKeysToAdd)
	sort.Strings(td.ForeignKeysToDrop)
}

// compareOptions diffs only the table options spec tracks: engine and
// collation. Charset and comment are excluded by design.
func compareOptions(cur, want core.TableOptions, td *core.TableDelta) {
	if !strings.EqualFold(cur.Engine, want.Engine) {
		td.OptionChanges.Engine = &core.OptionChange{Old: cur.Engine, New: want.Engine}
	}
	if !strings.EqualFold(cur.Collation, want.Collation) {
		td.OptionChanges.Collation = &core.OptionChange{Old: cur.Collation, New: want.Collation}
	}
}

func indexKey(i *core.Index) string {
	return strings.ToLower(i.Name)
}

// sortIndexesByName orders indexes by name so that multiple ADD INDEX
// statements within one ALTER TABLE render in a stable, repeatable order.
func sortIndexesByName(idx []*core.Index) {
	sort.Slice(idx, func(i, j int) bool { return idx[i].Name < idx[j].Name })
}

// sortForeignKeysByName orders foreign keys by name for the same reason
// sortIndexesByName orders indexes: stable output across runs.
func sortForeignKeysByName(fks []*core.ForeignKey) {
	sort.Slice(fks, func(i, j int) bool { return fks[i].Name < fks[j].Name })
}

func mapForeignKeysByKey(fks []*core.ForeignKey) map[string]*core.ForeignKey {
	m := make(map[string]*core.ForeignKey, len(fks))
	for _, fk := range fks {
		m[strings.ToLower(fk.Name)] = fk
	}
	return m
}
