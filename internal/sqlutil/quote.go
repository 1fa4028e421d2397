// Package sqlutil provides SQL quoting helpers.
package sqlutil

import "strings"

// QuoteIdentifier quotes a MySQL identifier (table, column or index name)
// with backticks and escapes any backticks within the identifier.
func QuoteIdentifier(name string) string {
	escaped := strings.ReplaceAll(name, "`", "``")
	return "`" + escaped + "`"
}
