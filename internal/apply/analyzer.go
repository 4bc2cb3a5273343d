package apply

import (
	"fmt"
	"strings"

	"github.com/pingcap/tidb/pkg/parser"
	"github.com/pingcap/tidb/pkg/parser/ast"
	_ "github.com/pingcap/tidb/pkg/parser/test_driver"
)

// StatementAnalysis contains the results of analyzing a SQL statement.
type StatementAnalysis struct {
	IsBlocking        bool
	BlockingReasons   []string
	IsDestructive     bool
	DestructiveReason string
	IsTransactionSafe bool
	TxUnsafeReason    string
	StatementType     string
}

// StatementAnalyzer uses TiDB's AST parser for reliable SQL analysis
type StatementAnalyzer struct {
	parser *parser.Parser
}

// NewStatementAnalyzer creates a new AST-based statement analyzer.
func NewStatementAnalyzer() *StatementAnalyzer {
	return &StatementAnalyzer{
		parser: parser.New(),
	}
}

// AnalyzeStatement parses a single SQL statement and returns analysis
// results. Statements the TiDB parser rejects still get a best-effort
// analysis from fallbackAnalysis rather than an error, since preflight
// checks must never be the reason a valid plan statement can't run.
func (a *StatementAnalyzer) AnalyzeStatement(sql string) *StatementAnalysis {
	stmtNodes, _, err := a.parser.Parse(sql, "", "")
	if err != nil {
		return a.fallbackAnalysis(sql)
	}

	if len(stmtNodes) == 0 {
		return &StatementAnalysis{}
	}

	return a.analyzeNode(stmtNodes[0], sql)
}

// AnalyzeStatements analyzes multiple SQL statements and returns a PreflightResult.
func (a *StatementAnalyzer) AnalyzeStatements(statements []string, unsafeAllowed bool) *PreflightResult {
	result := &PreflightResult{
		IsTransactional: true,
	}

	for _, stmt := range statements {
		analysis := a.AnalyzeStatement(stmt)
		if analysis == nil {
			continue
		}

		if analysis.IsBlocking {
			for _, reason := range analysis.BlockingReasons {
				result.Warnings = append(result.Warnings, Warning{
					Level:   WarnCaution,
					Message: fmt.Sprintf("Potentially blocking DDL: %s", reason),
					SQL:     truncateSQL(stmt, 60),
				})
			}
		}

		if analysis.IsDestructive {
			msg := analysis.DestructiveReason
			if !unsafeAllowed {
				msg = fmt.Sprintf("%s (requires --unsafe flag)", msg)
			}
			result.Warnings = append(result.Warnings, Warning{
				Level:   WarnDanger,
				Message: msg,
				SQL:     truncateSQL(stmt, 60),
			})
		}

		a.addTransactionSafety(result, analysis, stmt)
	}

	return result
}

// addTransactionSafety folds one statement's transaction-safety verdict
// into the running PreflightResult.
func (a *StatementAnalyzer) addTransactionSafety(result *PreflightResult, analysis *StatementAnalysis, stmt string) {
	if analysis.IsTransactionSafe {
		return
	}
	result.IsTransactional = false
	reason := analysis.TxUnsafeReason
	if reason != "" {
		reason = fmt.Sprintf("%s: %s", reason, truncateSQL(stmt, 60))
	} else {
		reason = fmt.Sprintf("DDL statement causes implicit commit: %s", truncateSQL(stmt, 60))
	}
	result.NonTxReasons = append(result.NonTxReasons, reason)
}

func (a *StatementAnalyzer) analyzeNode(node ast.StmtNode, originalSQL string) *StatementAnalysis {
	analysis := &StatementAnalysis{
		IsTransactionSafe: true,
	}

	switch stmt := node.(type) {
	case *ast.CreateTableStmt:
		analysis.StatementType = "CREATE TABLE"
		analysis.IsTransactionSafe = false
		analysis.TxUnsafeReason = "CREATE TABLE causes an implicit commit in MySQL"

	case *ast.AlterTableStmt:
		analysis.StatementType = "ALTER TABLE"
		analysis.IsTransactionSafe = false
		analysis.TxUnsafeReason = "ALTER TABLE causes an implicit commit in MySQL"
		a.analyzeAlterTable(stmt, analysis)

	case *ast.DropTableStmt:
		// The planner never emits a standalone DROP TABLE, but a hand-edited
		// --plan-file might, so it still gets classified rather than falling
		// through to the generic DDL guess below.
		analysis.StatementType = "DROP TABLE"
		analysis.IsDestructive = true
		analysis.DestructiveReason = "DROP TABLE will permanently delete the table and all its data"
		analysis.IsTransactionSafe = false
		analysis.TxUnsafeReason = "DROP TABLE causes an implicit commit in MySQL"

	default:
		analysis.StatementType = "OTHER"
		upper := strings.ToUpper(strings.TrimSpace(originalSQL))
		if strings.HasPrefix(upper, "CREATE ") ||
			strings.HasPrefix(upper, "DROP ") ||
			strings.HasPrefix(upper, "ALTER ") {
			analysis.IsTransactionSafe = false
			analysis.TxUnsafeReason = "DDL statement causes implicit commit"
		}
	}

	return analysis
}

func (a *StatementAnalyzer) analyzeAlterTable(stmt *ast.AlterTableStmt, analysis *StatementAnalysis) {
	for _, spec := range stmt.Specs {
		switch spec.Tp {
		case ast.AlterTableAddColumns:
			analysis.IsBlocking = true
			analysis.BlockingReasons = append(analysis.BlockingReasons,
				"ADD COLUMN may require a table rebuild depending on MySQL version and column position")

		case ast.AlterTableDropColumn:
			analysis.IsBlocking = true
			analysis.IsDestructive = true
			analysis.DestructiveReason = "DROP COLUMN will permanently delete the column and its data"
			analysis.BlockingReasons = append(analysis.BlockingReasons,
				"DROP COLUMN typically requires a full table rebuild and will lock the table")

		case ast.AlterTableModifyColumn, ast.AlterTableChangeColumn:
			analysis.IsBlocking = true
			if spec.Tp == ast.AlterTableModifyColumn {
				analysis.BlockingReasons = append(analysis.BlockingReasons,
					"MODIFY COLUMN may require a table rebuild if changing column type or size")
			} else {
				analysis.BlockingReasons = append(analysis.BlockingReasons,
					"CHANGE COLUMN may require a table rebuild")
			}

		case ast.AlterTableAddConstraint:
			analysis.IsBlocking = true
			if spec.Constraint != nil {
				switch spec.Constraint.Tp {
				case ast.ConstraintForeignKey:
					analysis.BlockingReasons = append(analysis.BlockingReasons,
						"ADD FOREIGN KEY may lock the table while validating existing data")
				case ast.ConstraintIndex, ast.ConstraintKey, ast.ConstraintUniq, ast.ConstraintUniqKey, ast.ConstraintUniqIndex:
					analysis.BlockingReasons = append(analysis.BlockingReasons,
						"ADD INDEX may lock the table for the duration of index creation on large tables")
				default:
					analysis.BlockingReasons = append(analysis.BlockingReasons,
						"ADD CONSTRAINT may lock the table while validating existing data")
				}
			}

		case ast.AlterTableDropIndex:
			analysis.IsBlocking = true
			analysis.BlockingReasons = append(analysis.BlockingReasons,
				"DROP INDEX may briefly lock the table")

		case ast.AlterTableDropForeignKey:
			analysis.IsBlocking = true
			analysis.BlockingReasons = append(analysis.BlockingReasons,
				"DROP FOREIGN KEY may briefly lock the table")

		case ast.AlterTableDropPrimaryKey:
			analysis.IsBlocking = true
			analysis.BlockingReasons = append(analysis.BlockingReasons,
				"DROP PRIMARY KEY requires a full table rebuild and will lock the table")

		case ast.AlterTableRenameTable:
			analysis.IsBlocking = true
			analysis.BlockingReasons = append(analysis.BlockingReasons,
				"RENAME TABLE acquires an exclusive lock but is typically fast")
		}
		// TODO: Add support for all possible cases
	}
}

// fallbackAnalysis classifies a statement the TiDB parser couldn't parse,
// by prefix matching against the CREATE TABLE / ALTER TABLE / DROP TABLE
// surface this tool's own planner and a hand-edited plan file can produce.
func (a *StatementAnalyzer) fallbackAnalysis(sql string) *StatementAnalysis {
	analysis := &StatementAnalysis{
		StatementType:     "UNPARSEABLE",
		IsTransactionSafe: true,
	}

	upper := strings.ToUpper(strings.TrimSpace(sql))

	if strings.Contains(upper, "DROP TABLE") {
		analysis.IsDestructive = true
		analysis.DestructiveReason = "DROP TABLE will permanently delete the table and all its data"
	}

	ddlPrefixes := []string{"CREATE TABLE", "ALTER TABLE", "DROP TABLE"}
	for _, prefix := range ddlPrefixes {
		if strings.HasPrefix(upper, prefix) {
			analysis.IsTransactionSafe = false
			analysis.TxUnsafeReason = fmt.Sprintf("%s causes an implicit commit in MySQL", prefix)
			break
		}
	}

	if strings.Contains(upper, "ALTER TABLE") && strings.Contains(upper, "DROP COLUMN") {
		analysis.IsDestructive = true
		analysis.DestructiveReason = "DROP COLUMN will permanently delete the column and its data"
	}

	return analysis
}
