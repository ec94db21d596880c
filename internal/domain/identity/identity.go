// Package identity builds stable identifiers for search results.
package identity

import (
	"regexp"
	"strings"
)

var whitespace = regexp.MustCompile(`\s+`)

// Keyed is a source row that can identify itself.
// PrimaryKey returns "" when the row has no natural key.
type Keyed interface {
	PrimaryKey() string
	TitleHint() string
	DepartmentHint() string
}

// GenerateID returns "{tag}-{key}" for rows with a primary key.
// Rows without one get a slug of title and department, so the same
// row always produces the same id.
func GenerateID(tag string, row Keyed) string {
	if key := row.PrimaryKey(); key != "" {
		return tag + "-" + key
	}

	title := row.TitleHint()
	if title == "" {
		title = "untitled"
	}
	dept := row.DepartmentHint()
	if dept == "" {
		dept = "unknown"
	}
	slug := whitespace.ReplaceAllString(title+"-"+dept, "-")
	return tag + "-" + strings.ToLower(slug)
}

// NormalizeTitle trims s and collapses internal whitespace runs to one space.
func NormalizeTitle(s string) string {
	return whitespace.ReplaceAllString(strings.TrimSpace(s), " ")
}
