package search

import "github.com/kailas-cloud/scandex/internal/domain/field"

// Memo is the consumer interface for scan memoization (ISP). The
// disabled implementation recomputes on every call.
type Memo interface {
	Lower(s string) string
	Fields(key string, build func() []field.Path) []field.Path
	Stats(key string, build func() []field.Stats) []field.Stats
}
