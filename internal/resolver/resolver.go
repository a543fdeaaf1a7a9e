// Package resolver maps external scoreboard team slugs to internal team abbreviations.
package resolver

import (
	"strings"
	"unicode/utf8"
)

// fallbackLen is the length of the surrogate abbreviation for unmapped slugs
const fallbackLen = 4

// Resolver is an immutable slug -> abbreviation lookup
type Resolver struct {
	table map[string]string
}

// New builds a resolver from table. The table is copied so later changes by
// the caller are not observed.
func New(table map[string]string) *Resolver {
	copied := make(map[string]string, len(table))
	for slug, abbr := range table {
		copied[Normalize(slug)] = abbr
	}
	return &Resolver{table: copied}
}

// NewDefault returns a resolver over DefaultTable
func NewDefault() *Resolver {
	return New(DefaultTable)
}

// Normalize lower-cases a slug and joins whitespace runs with hyphens
func Normalize(slug string) string {
	return strings.Join(strings.Fields(strings.ToLower(slug)), "-")
}

// Resolve returns the abbreviation for slug. Unknown slugs resolve to the
// upper-cased first four characters of the slug. The surrogate may not match
// any seeded team; callers treat that as a skip.
func (r *Resolver) Resolve(slug string) string {
	abbr, _ := r.Lookup(slug)
	return abbr
}

// Lookup is Resolve that also reports whether the table had an entry
func (r *Resolver) Lookup(slug string) (string, bool) {
	if abbr, ok := r.table[Normalize(slug)]; ok {
		return abbr, true
	}
	return surrogate(slug), false
}

// Len returns the number of mapped slugs
func (r *Resolver) Len() int {
	return len(r.table)
}

func surrogate(slug string) string {
	upper := strings.ToUpper(strings.TrimSpace(slug))
	if utf8.RuneCountInString(upper) <= fallbackLen {
		return upper
	}
	runes := []rune(upper)
	return string(runes[:fallbackLen])
}
