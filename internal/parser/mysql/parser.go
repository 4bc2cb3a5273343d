// Package mysql inside parser, provides implementation to parse MySQL schema dumps.
// It uses TiDB's parser, so we support both MySQL syntax and TiDB-specific options.
package mysql

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pingcap/tidb/pkg/parser"
	"github.com/pingcap/tidb/pkg/parser/ast"
	_ "github.com/pingcap/tidb/pkg/parser/test_driver"

	"smf/internal/core"
)

type Parser struct {
	p *parser.Parser
}

func NewParser() *Parser {
	return &Parser{p: parser.New()}
}

// Parse converts a sequence of DDL statements into a Schema, keeping only
// the CREATE TABLE statements. Schema dumps commonly carry SET, comment, and
// other session-setup statements around the DDL that actually matters; those
// are silently skipped rather than rejected.
func (p *Parser) Parse(sql string) (*core.Schema, error) {
	// NOTE: this can be parallelized per-statement if schema dumps get big.
	stmtNodes, _, err := p.p.Parse(sql, "", "")
	if err != nil {
		return nil, &core.ParseError{Offset: byteOffset(sql, err), Message: err.Error()}
	}

	schema := &core.Schema{}
	for _, stmt := range stmtNodes {
		create, ok := stmt.(*ast.CreateTableStmt)
		if !ok {
			continue
		}
		table, err := p.convertCreateTable(create)
		if err != nil {
			return nil, err
		}
		schema.Tables = append(schema.Tables, table)
	}

	if err := schema.Validate(); err != nil {
		return nil, err
	}

	return schema, nil
}

func (p *Parser) convertCreateTable(stmt *ast.CreateTableStmt) (*core.Table, error) {
	table := &core.Table{Name: stmt.Table.Name.O}

	p.parseTableOptions(stmt.Options, table)
	p.parseColumns(stmt.Cols, table)
	p.parseConstraints(stmt.Constraints, table)

	return table, nil
}

var lineColPattern = regexp.MustCompile(`line (\d+) column (\d+)`)

// byteOffset best-effort recovers a byte offset from the parser's
// "line N column M" error text, since that's the only position information
// the parser gives us.
func byteOffset(sql string, err error) int {
	m := lineColPattern.FindStringSubmatch(err.Error())
	if len(m) != 3 {
		return 0
	}
	line, lerr := strconv.Atoi(m[1])
	col, cerr := strconv.Atoi(m[2])
	if lerr != nil || cerr != nil || line < 1 {
		return 0
	}

	offset := 0
	remaining := line - 1
	for remaining > 0 {
		idx := strings.IndexByte(sql, '\n')
		if idx < 0 {
			return offset + col
		}
		offset += idx + 1
		sql = sql[idx+1:]
		remaining--
	}
	return offset + col
}
