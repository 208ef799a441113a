package app

import (
	"regexp"
	"strings"
)

const maxTracedQueryLength = 512

var (
	queryWhitespaceRegex = regexp.MustCompile(`\s+`)
	// Snapshot reads bind one placeholder per match id and imports one
	// tuple per row; spans keep the first and last.
	placeholderRunRegex = regexp.MustCompile(`\$(\d+)(?:, \$\d+){3,}, \$(\d+)`)
	valuesTupleRunRegex = regexp.MustCompile(`(\([^()]*\))(?:, \([^()]*\)){2,}`)
)

func formatDBQueryForTrace(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	normalized := queryWhitespaceRegex.ReplaceAllString(query, " ")
	normalized = placeholderRunRegex.ReplaceAllString(normalized, "$$$1 ... $$$2")
	normalized = valuesTupleRunRegex.ReplaceAllString(normalized, "$1, ...")
	if len(normalized) <= maxTracedQueryLength {
		return normalized
	}
	return normalized[:maxTracedQueryLength] + "..."
}
