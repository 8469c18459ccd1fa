package memo

import (
	"strings"

	"github.com/kailas-cloud/scandex/internal/domain/field"
)

// Disabled is the pass-through used when memoization is off. Every
// call recomputes.
type Disabled struct{}

// Lower folds case without memoizing.
func (Disabled) Lower(s string) string { return strings.ToLower(s) }

// Fields builds the field list on every call.
func (Disabled) Fields(_ string, build func() []field.Path) []field.Path { return build() }

// Stats builds the statistics on every call.
func (Disabled) Stats(_ string, build func() []field.Stats) []field.Stats { return build() }
