// Package match classifies how a field's text relates to a query and
// scores the hit.
package match

import (
	"unicode/utf8"

	"github.com/kailas-cloud/scandex/internal/domain/field"
)

// Kind is the match classification.
type Kind string

// Match kinds, in descending priority. A field registers exactly one
// kind per search: the first tier that applies wins.
const (
	Prefix    Kind = "prefix"
	Substring Kind = "substring"
	Fuzzy     Kind = "fuzzy"
)

// IsValid checks if the kind is one of the supported values.
func (k Kind) IsValid() bool {
	return k == Prefix || k == Substring || k == Fuzzy
}

// NoPosition marks matches that carry no offset (fuzzy matches).
const NoPosition = -1

// Match is a single field-level hit.
type Match struct {
	field    field.Path
	value    string
	score    float64
	kind     Kind
	position int
}

// New creates a match.
func New(p field.Path, value string, score float64, kind Kind, position int) Match {
	return Match{field: p, value: value, score: score, kind: kind, position: position}
}

// Field returns the matched field's path.
func (m *Match) Field() field.Path { return m.field }

// Value returns the field's original text.
func (m *Match) Value() string { return m.value }

// Score returns the weighted match score.
func (m *Match) Score() float64 { return m.score }

// Kind returns the match classification.
func (m *Match) Kind() Kind { return m.kind }

// Position returns the rune offset of the hit within the field text,
// or NoPosition for fuzzy matches.
func (m *Match) Position() int { return m.position }

// Length returns the rune length of the matched value.
func (m *Match) Length() int { return utf8.RuneCountInString(m.value) }
