// Package field resolves dotted paths against records, auto-detects
// searchable string fields, and infers per-field importance weights.
package field

import "strings"

// Path addresses a string property inside a possibly nested record,
// segments joined by dots ("author.name").
type Path string

// Segments splits the path into its property names.
func (p Path) Segments() []string { return strings.Split(string(p), ".") }

// Last returns the final property name of the path.
func (p Path) Last() string {
	s := string(p)
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		return s[i+1:]
	}
	return s
}

func (p Path) String() string { return string(p) }

// Join extends a parent path with one more property name.
func Join(parent Path, key string) Path {
	if parent == "" {
		return Path(key)
	}
	return Path(string(parent) + "." + key)
}
