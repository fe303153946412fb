package canon

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Lookup maps raw codes to values through a fixed table, falling back to a
// transform of the code when the table has no entry. A nil fallback makes
// unmapped codes miss.
type Lookup[V any] struct {
	entries  map[string]V
	fallback func(string) (V, bool)
}

// NewLookup builds a lookup over entries. The map is not copied and must not
// be modified afterwards.
func NewLookup[V any](entries map[string]V, fallback func(string) (V, bool)) Lookup[V] {
	return Lookup[V]{entries: entries, fallback: fallback}
}

// Get returns the mapped value for key
func (l Lookup[V]) Get(key string) (V, bool) {
	if v, ok := l.entries[key]; ok {
		return v, true
	}
	if l.fallback != nil {
		return l.fallback(key)
	}
	var zero V
	return zero, false
}

// Label returns the mapped value, or the zero value on a miss
func (l Lookup[V]) Label(key string) V {
	v, _ := l.Get(key)
	return v
}

// Identity passes unmapped codes through unchanged
func Identity(s string) (string, bool) {
	return s, true
}

var titler = cases.Title(language.Und)

// TitleCase turns "some_species" into "Some Species"
func TitleCase(s string) (string, bool) {
	return titler.String(strings.ReplaceAll(s, "_", " ")), true
}
