package helpers

import (
	"regexp"
	"strings"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes LIKE/ILIKE wildcards so the term matches literally.
// The result assumes backslash as the escape character (the PostgreSQL default).
func EscapeLike(term string) string {
	return likeEscaper.Replace(term)
}

// ContainsPattern wraps an escaped term for a substring LIKE match.
func ContainsPattern(term string) string {
	return "%" + EscapeLike(term) + "%"
}

// QuoteRegex escapes regular expression metacharacters for document-store regex filters.
func QuoteRegex(term string) string {
	return regexp.QuoteMeta(term)
}

// ContainsFold reports whether substr is within s, ignoring case.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
