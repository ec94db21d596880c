package db

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern builds a LIKE pattern matching q anywhere, with wildcards in q escaped.
func ContainsPattern(q string) string {
	return "%" + likeEscaper.Replace(q) + "%"
}

// ContainsClause is a case-insensitive substring predicate on column that works
// on both PostgreSQL and SQLite. Bind it with ContainsPattern.
func ContainsClause(column string) string {
	return `LOWER(` + column + `) LIKE LOWER(?) ESCAPE '\'`
}
