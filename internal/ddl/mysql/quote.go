// Package mysql renders a core.Schema or core.Delta as MySQL DDL and
// orders the resulting statements for safe application.
package mysql

import "strings"

// QuoteIdentifier backtick-quotes a table, column, index, or constraint
// name, doubling any embedded backtick.
func QuoteIdentifier(name string) string {
	name = strings.ReplaceAll(strings.TrimSpace(name), "`", "``")
	return "`" + name + "`"
}

// QuoteString single-quotes a literal, escaping characters MySQL treats
// specially inside a quoted string.
func QuoteString(value string) string {
	var b strings.Builder
	b.Grow(len(value) + 2)

	b.WriteByte('\'')
	for _, r := range value {
		switch r {
		case '\'':
			b.WriteString("''")
		case '\\':
			b.WriteString(`\\`)
		case '\x00':
			b.WriteString(`\0`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\x1a':
			b.WriteString(`\Z`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
	return b.String()
}
