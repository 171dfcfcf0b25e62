package repository

import "strings"

// Postgres LIKE treats backslash as the default escape character.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern returns a LIKE pattern matching s as a literal substring.
// An empty s matches every value.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
