package mysql

import (
	"github.com/pingcap/tidb/pkg/parser/ast"
	_ "github.com/pingcap/tidb/pkg/parser/test_driver"

	"smf/internal/core"
)

// parseTableOptions fills in the table-level options spec §3 tracks.
// The TiDB parser recognizes dozens of MySQL/TiDB/TokuDB-specific options
// (ROW_FORMAT, KEY_BLOCK_SIZE, TTL, placement policies, ...); none of those
// are part of the schema model this tool diffs, so they're ignored here.
func (p *Parser) parseTableOptions(opts []*ast.TableOption, table *core.Table) {
	for _, opt := range opts {
		switch opt.Tp {
		case ast.TableOptionComment:
			table.Comment = opt.StrValue
		case ast.TableOptionCharset:
			table.Options.Charset = opt.StrValue
		case ast.TableOptionCollate:
			table.Options.Collation = opt.StrValue
		case ast.TableOptionEngine:
			table.Options.Engine = opt.StrValue
		case ast.TableOptionAutoIncrement:
			table.Options.AutoIncrement = opt.UintValue
		}
	}

	if table.Options.Engine == "" {
		table.Options.Engine = "InnoDB"
	}
}
