// Package search implements the in-memory listing filter shared by all
// record types: given a free-text query and a field scope, it returns the
// subsequence of records whose scoped field values contain the query as a
// case-insensitive substring.
package search

import "strings"

// ScopeAll matches against every searchable field of a record.
const ScopeAll = "all"

// Searchable exposes a record's filterable fields by name.
// Keys are field scopes (e.g. "name", "company"); values are the raw text
// the filter matches against.
type Searchable interface {
	SearchFields() map[string]string
}

// Filter returns the records whose scoped fields contain query as a
// case-insensitive substring. An empty (or all-whitespace) query returns the
// input unchanged, in original order. An unknown scope matches nothing.
// The match is evaluated fresh on every call; there is no index.
func Filter[T Searchable](records []T, query, scope string) []T {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return records
	}
	if scope == "" {
		scope = ScopeAll
	}

	out := make([]T, 0, len(records))
	for _, record := range records {
		if matches(record.SearchFields(), needle, scope) {
			out = append(out, record)
		}
	}
	return out
}

func matches(fields map[string]string, needle, scope string) bool {
	if scope == ScopeAll {
		for _, value := range fields {
			if strings.Contains(strings.ToLower(value), needle) {
				return true
			}
		}
		return false
	}

	value, ok := fields[scope]
	if !ok {
		return false
	}
	return strings.Contains(strings.ToLower(value), needle)
}
