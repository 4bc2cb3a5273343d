package mysql_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"smf/internal/core"
	ddl "smf/internal/ddl/mysql"
	"smf/internal/diff"
)

func strptr(s string) *string { return &s }

func TestGenerateCreateTableScenarioB(t *testing.T) {
	table := &core.Table{
		Name: "t",
		Columns: []*core.Column{
			{Name: "id", Type: "int(11)", Nullable: false, Extra: "auto_increment"},
		},
		Indexes: []*core.Index{
			{Name: core.PrimaryKeyName, Columns: []string{"id"}, Unique: true},
		},
		Options: core.TableOptions{Engine: "InnoDB"},
	}

	got := ddl.GenerateCreateTable(table)

	assert.Equal(t, "CREATE TABLE `t` (\n  `id` int(11) NOT NULL AUTO_INCREMENT,\n  PRIMARY KEY (`id`)\n) ENGINE=InnoDB;", got)
}

func TestGenerateAlterTableScenarioC(t *testing.T) {
	td := &core.TableDelta{
		Name: "users",
		ColumnsToAdd: []*core.Column{
			{Name: "email", Type: "varchar(255)", Nullable: false, Default: strptr("''")},
		},
	}

	stmts := ddl.GenerateAlterTable(td, false)

	assert.Equal(t, []string{"ALTER TABLE `users` ADD COLUMN `email` varchar(255) NOT NULL DEFAULT '';"}, stmts)
}

func TestGenerateAlterTableScenarioD(t *testing.T) {
	td := &core.TableDelta{
		Name:          "users",
		IndexesToDrop: []string{"email"},
		IndexesToAdd:  []*core.Index{{Name: "email", Columns: []string{"email"}, Unique: true}},
	}

	stmts := ddl.GenerateAlterTable(td, false)

	assert.Equal(t, []string{
		"ALTER TABLE `users` DROP INDEX `email`;",
		"ALTER TABLE `users` ADD UNIQUE KEY `email` (`email`);",
	}, stmts)
}

func TestGenerateAlterTableScenarioE(t *testing.T) {
	td := &core.TableDelta{
		Name:              "orders",
		ForeignKeysToDrop: []string{"fk_a"},
		ForeignKeysToAdd: []*core.ForeignKey{
			{Name: "fk_a", Columns: []string{"user_id"}, ReferencedTable: "users", ReferencedColumns: []string{"id"}, OnDelete: core.RefActionCascade, OnUpdate: core.RefActionRestrict},
		},
	}

	stmts := ddl.GenerateAlterTable(td, false)

	assert.Equal(t, []string{
		"ALTER TABLE `orders` DROP FOREIGN KEY `fk_a`;",
		"ALTER TABLE `orders` ADD CONSTRAINT `fk_a` FOREIGN KEY (`user_id`) REFERENCES `users` (`id`) ON DELETE CASCADE ON UPDATE RESTRICT;",
	}, stmts)
}

func TestGenerateColumnDefinitionScenarioF(t *testing.T) {
	col := &core.Column{Name: "amount", Type: "decimal(20,8)", Nullable: false, Default: strptr("0")}
	td := &core.TableDelta{Name: "orders", ColumnsToAdd: []*core.Column{col}}

	stmts := ddl.GenerateAlterTable(td, false)

	assert.Equal(t, []string{"ALTER TABLE `orders` ADD COLUMN `amount` decimal(20,8) NOT NULL DEFAULT 0;"}, stmts)
}

func TestAlterTableOrderingDropsBeforeAdds(t *testing.T) {
	td := &core.TableDelta{
		Name:              "t",
		ForeignKeysToDrop: []string{"fk_old"},
		IndexesToDrop:     []string{"idx_old"},
		ColumnsToAdd:      []*core.Column{{Name: "new_col", Type: "int", Nullable: true}},
		ColumnsToModify: []*core.ColumnModification{
			{Current: &core.Column{Name: "x", Type: "int"}, Desired: &core.Column{Name: "x", Type: "bigint", Nullable: true}},
		},
		ColumnsToDrop:    []string{"legacy"},
		IndexesToAdd:     []*core.Index{{Name: "idx_new", Columns: []string{"new_col"}}},
		ForeignKeysToAdd: []*core.ForeignKey{{Name: "fk_new", Columns: []string{"new_col"}, ReferencedTable: "other", ReferencedColumns: []string{"id"}}},
		OptionChanges:    core.TableOptionChanges{Engine: &core.OptionChange{Old: "MyISAM", New: "InnoDB"}},
	}

	stmts := ddl.GenerateAlterTable(td, true)

	require := assert.New(t)
	require.Len(stmts, 8)
	require.Contains(stmts[0], "DROP FOREIGN KEY")
	require.Contains(stmts[1], "DROP INDEX")
	require.Contains(stmts[2], "ADD COLUMN")
	require.Contains(stmts[3], "MODIFY COLUMN")
	require.Contains(stmts[4], "DROP COLUMN")
	require.Contains(stmts[5], "ADD KEY")
	require.Contains(stmts[6], "ADD CONSTRAINT")
	require.Contains(stmts[7], "ENGINE=InnoDB")
}

func TestColumnDropsSuppressedByDefault(t *testing.T) {
	td := &core.TableDelta{Name: "t", ColumnsToDrop: []string{"legacy"}}

	stmts := ddl.GenerateAlterTable(td, false)

	assert.Empty(t, stmts)
}

func TestPlanEmptyDeltaProducesNoStatements(t *testing.T) {
	assert.Empty(t, ddl.Plan(&core.Delta{}, ddl.Options{}))
}

func TestPlanOrdersCreatesBeforeAlters(t *testing.T) {
	delta := &core.Delta{
		TablesToCreate: []*core.Table{{Name: "new_table", Columns: []*core.Column{{Name: "id", Type: "int"}}}},
		TablesToAlter:  []*core.TableDelta{{Name: "existing", ColumnsToAdd: []*core.Column{{Name: "c", Type: "int", Nullable: true}}}},
	}

	stmts := ddl.Plan(delta, ddl.Options{})

	assert := assert.New(t)
	assert.Len(stmts, 2)
	assert.Contains(stmts[0], "CREATE TABLE")
	assert.Contains(stmts[1], "ALTER TABLE")
}

func TestFastPathEqualDetectsIdenticalSchemas(t *testing.T) {
	current := &core.Schema{Tables: []*core.Table{{Name: "t", Columns: []*core.Column{{Name: "id", Type: "int", Nullable: false}}}}}
	desired := &core.Schema{Tables: []*core.Table{{Name: "t", Columns: []*core.Column{{Name: "id", Type: "INT", Nullable: false}}}}}

	assert.True(t, ddl.FastPathEqual(current, desired))
}

func TestFastPathEqualDetectsDifference(t *testing.T) {
	current := &core.Schema{Tables: []*core.Table{{Name: "t", Columns: []*core.Column{{Name: "id", Type: "int", Nullable: false}}}}}
	desired := &core.Schema{Tables: []*core.Table{{Name: "t", Columns: []*core.Column{{Name: "id", Type: "bigint", Nullable: false}}}}}

	assert.False(t, ddl.FastPathEqual(current, desired))
}

// exercises the full pipeline: Differ -> Planner, mirroring how cmd/smf
// wires the two packages together.
func TestPlanFromDiffEndToEnd(t *testing.T) {
	current := &core.Schema{}
	desired := &core.Schema{Tables: []*core.Table{
		{
			Name:    "users",
			Columns: []*core.Column{{Name: "id", Type: "int(11)", Nullable: false, Extra: "auto_increment"}},
			Indexes: []*core.Index{{Name: core.PrimaryKeyName, Columns: []string{"id"}, Unique: true}},
			Options: core.TableOptions{Engine: "InnoDB"},
		},
	}}

	delta := diff.Diff(current, desired, diff.Options{})
	stmts := ddl.Plan(delta, ddl.Options{})

	assert.Len(t, stmts, 1)
	assert.Contains(t, stmts[0], "CREATE TABLE `users`")
}
