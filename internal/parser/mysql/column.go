package mysql

import (
	"strings"

	"github.com/pingcap/tidb/pkg/parser/ast"
	"github.com/pingcap/tidb/pkg/parser/format"
	_ "github.com/pingcap/tidb/pkg/parser/test_driver"

	"smf/internal/core"
)

func (p *Parser) parseColumns(cols []*ast.ColumnDef, table *core.Table) {
	for _, colDef := range cols {
		col := &core.Column{
			Name:      colDef.Name.Name.O,
			Type:      colDef.Tp.String(),
			Nullable:  true,
			Collation: colDef.Tp.GetCollate(),
			Charset:   colDef.Tp.GetCharset(),
		}

		for _, opt := range colDef.Options {
			switch opt.Tp {
			case ast.ColumnOptionNotNull:
				col.Nullable = false
			case ast.ColumnOptionNull:
				col.Nullable = true
			case ast.ColumnOptionPrimaryKey:
				col.PrimaryKey = true
				col.Nullable = false
			case ast.ColumnOptionAutoIncrement:
				col.Extra = appendExtra(col.Extra, "auto_increment")
			case ast.ColumnOptionDefaultValue:
				col.Default = p.exprToRawString(opt.Expr)
			case ast.ColumnOptionOnUpdate:
				if s := p.exprToString(opt.Expr); s != nil {
					col.Extra = appendExtra(col.Extra, "on update "+*s)
				}
			case ast.ColumnOptionUniqKey:
				table.Indexes = append(table.Indexes, &core.Index{
					Name:    col.Name,
					Columns: []string{col.Name},
					Unique:  true,
					Type:    "BTREE",
				})
			case ast.ColumnOptionComment:
				if s := p.exprToString(opt.Expr); s != nil {
					col.Comment = *s
				}
			case ast.ColumnOptionCollate:
				if s := p.exprToString(opt.Expr); s != nil {
					col.Collation = *s
				} else if opt.StrValue != "" {
					col.Collation = opt.StrValue
				}
			case ast.ColumnOptionFulltext:
				table.Indexes = append(table.Indexes, &core.Index{
					Name:    col.Name,
					Columns: []string{col.Name},
					Type:    "FULLTEXT",
				})
			case ast.ColumnOptionReference:
				fk := &core.ForeignKey{
					Columns:         []string{col.Name},
					ReferencedTable: opt.Refer.Table.Name.O,
				}
				for _, spec := range opt.Refer.IndexPartSpecifications {
					if spec.Column != nil {
						fk.ReferencedColumns = append(fk.ReferencedColumns, spec.Column.Name.O)
					}
				}
				if opt.Refer.OnDelete != nil {
					fk.OnDelete = core.NormalizeReferentialAction(opt.Refer.OnDelete.ReferOpt.String())
				}
				if opt.Refer.OnUpdate != nil {
					fk.OnUpdate = core.NormalizeReferentialAction(opt.Refer.OnUpdate.ReferOpt.String())
				}
				fk.Name = autoForeignKeyName(fk)
				table.ForeignKeys = append(table.ForeignKeys, fk)
			}
		}

		table.Columns = append(table.Columns, col)
		if col.PrimaryKey {
			p.ensurePrimaryKeyColumn(table, col.Name)
		}
	}
}

func appendExtra(extra, addition string) string {
	extra = strings.TrimSpace(extra)
	if extra == "" {
		return addition
	}
	return extra + " " + addition
}

// autoForeignKeyName synthesizes a constraint name for an unnamed foreign
// key, matching fk_<col1>_<col2>_..._<referenced_table>.
func autoForeignKeyName(fk *core.ForeignKey) string {
	return "fk_" + strings.Join(fk.Columns, "_") + "_" + fk.ReferencedTable
}

func (p *Parser) ensurePrimaryKeyColumn(table *core.Table, colName string) {
	if table == nil {
		return
	}
	colName = strings.TrimSpace(colName)
	if colName == "" {
		return
	}

	pk := table.PrimaryKey()
	if pk == nil {
		pk = &core.Index{Name: core.PrimaryKeyName, Unique: true, Type: "BTREE"}
		table.Indexes = append(table.Indexes, pk)
	}

	for _, existing := range pk.Columns {
		if strings.EqualFold(existing, colName) {
			markPrimary(table, colName)
			return
		}
	}
	pk.Columns = append(pk.Columns, colName)
	markPrimary(table, colName)
}

func markPrimary(table *core.Table, colName string) {
	if col := table.FindColumn(colName); col != nil {
		col.PrimaryKey = true
		col.Nullable = false
	}
}

func (p *Parser) parseConstraints(constraints []*ast.Constraint, table *core.Table) {
	for _, constraint := range constraints {
		columns := make([]string, 0, len(constraint.Keys))
		for _, key := range constraint.Keys {
			columns = append(columns, key.Column.Name.O)
		}

		switch constraint.Tp {
		case ast.ConstraintPrimaryKey:
			for _, colName := range columns {
				p.ensurePrimaryKeyColumn(table, colName)
			}
			if pk := table.PrimaryKey(); pk != nil {
				pk.Columns = columns
			}

		case ast.ConstraintUniq, ast.ConstraintUniqKey, ast.ConstraintUniqIndex:
			table.Indexes = append(table.Indexes, &core.Index{
				Name:    constraint.Name,
				Columns: columns,
				Unique:  true,
				Type:    "BTREE",
			})

		case ast.ConstraintForeignKey:
			fk := &core.ForeignKey{
				Name:            constraint.Name,
				Columns:         columns,
				ReferencedTable: constraint.Refer.Table.Name.O,
			}
			for _, spec := range constraint.Refer.IndexPartSpecifications {
				if spec.Column != nil {
					fk.ReferencedColumns = append(fk.ReferencedColumns, spec.Column.Name.O)
				}
			}
			if constraint.Refer.OnDelete != nil {
				fk.OnDelete = core.NormalizeReferentialAction(constraint.Refer.OnDelete.ReferOpt.String())
			}
			if constraint.Refer.OnUpdate != nil {
				fk.OnUpdate = core.NormalizeReferentialAction(constraint.Refer.OnUpdate.ReferOpt.String())
			}
			if fk.Name == "" {
				fk.Name = autoForeignKeyName(fk)
			}
			table.ForeignKeys = append(table.ForeignKeys, fk)

		case ast.ConstraintIndex, ast.ConstraintKey:
			table.Indexes = append(table.Indexes, &core.Index{
				Name:    constraint.Name,
				Columns: columns,
				Type:    "BTREE",
			})

		case ast.ConstraintFulltext:
			table.Indexes = append(table.Indexes, &core.Index{
				Name:    constraint.Name,
				Columns: columns,
				Type:    "FULLTEXT",
			})
		}
	}
}

// exprToRawString restores an expression to SQL text without unquoting it,
// so a string literal default keeps its surrounding quotes (DEFAULT '' stays
// "''" rather than becoming ""). core.NormalizeDefault is what strips the
// quotes later, once it's the one place deciding what "no default" means.
func (p *Parser) exprToRawString(expr ast.ExprNode) *string {
	if expr == nil {
		return nil
	}

	var sb strings.Builder
	restoreCtx := format.NewRestoreCtx(format.DefaultRestoreFlags, &sb)
	if err := expr.Restore(restoreCtx); err != nil {
		return nil
	}
	s := strings.TrimSpace(sb.String())
	return &s
}

func (p *Parser) exprToString(expr ast.ExprNode) *string {
	if expr == nil {
		return nil
	}

	var sb strings.Builder
	restoreCtx := format.NewRestoreCtx(format.DefaultRestoreFlags, &sb)
	if err := expr.Restore(restoreCtx); err != nil {
		return nil
	}
	s := strings.TrimSpace(sb.String())

	if unquoted, ok := tryUnquoteSQLStringLiteral(s); ok {
		return &unquoted
	}

	return &s
}

func tryUnquoteSQLStringLiteral(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[len(s)-1] != '\'' {
		return "", false
	}

	if s[0] == '\'' {
		return strings.ReplaceAll(s[1:len(s)-1], "''", "'"), true
	}

	q := strings.IndexByte(s, '\'')
	if q <= 0 {
		return "", false
	}
	prefix := strings.TrimSpace(s[:q])
	if !isSQLStringIntroducer(prefix) {
		return "", false
	}
	inner := s[q+1 : len(s)-1]
	return strings.ReplaceAll(inner, "''", "'"), true
}

func isSQLStringIntroducer(prefix string) bool {
	if prefix == "" {
		return false
	}
	if strings.EqualFold(prefix, "N") {
		return true
	}
	if !strings.HasPrefix(prefix, "_") || len(prefix) == 1 {
		return false
	}
	for _, r := range prefix[1:] {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_':
		default:
			return false
		}
	}
	return true
}
