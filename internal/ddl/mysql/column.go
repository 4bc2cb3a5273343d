package mysql

import (
	"strings"

	"smf/internal/core"
)

// columnDefinition renders a column per spec §4.5: name, type, NOT NULL,
// DEFAULT handling, AUTO_INCREMENT, then charset/collation/comment.
func columnDefinition(c *core.Column) string {
	parts := []string{QuoteIdentifier(c.Name), c.Type}

	if !c.Nullable {
		parts = append(parts, "NOT NULL")
	}

	switch {
	case c.Default == nil && c.Nullable:
		parts = append(parts, "DEFAULT NULL")
	case c.Default == nil:
		// no default clause for a non-nullable column with no default
	default:
		parts = append(parts, "DEFAULT", formatDefault(*c.Default))
	}

	if c.Extra == "auto_increment" {
		parts = append(parts, "AUTO_INCREMENT")
	}

	if cs := strings.TrimSpace(c.Charset); cs != "" {
		parts = append(parts, "CHARACTER SET", cs)
	}
	if coll := strings.TrimSpace(c.Collation); coll != "" {
		parts = append(parts, "COLLATE", coll)
	}
	if comment := strings.TrimSpace(c.Comment); comment != "" {
		parts = append(parts, "COMMENT", QuoteString(comment))
	}

	return strings.Join(parts, " ")
}

// formatDefault renders a column default. The parser and the desired-schema
// model both carry the default as a ready-to-render SQL token (a quoted
// string literal, a numeric literal, or a bare keyword/function call like
// CURRENT_TIMESTAMP), so there's nothing left to quote here.
func formatDefault(value string) string {
	return value
}
