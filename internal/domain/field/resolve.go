package field

import "github.com/kailas-cloud/scandex/internal/domain/record"

// DefaultMaxDepth bounds auto-detection recursion into nested objects.
const DefaultMaxDepth = 3

// Extract returns the string value at path, or "" when any segment is
// missing, crosses a non-object, or the terminal value is not a string.
// Absence is data, not an error.
func Extract(rec record.Value, p Path) string {
	v := rec
	for _, seg := range p.Segments() {
		next, ok := v.Get(seg)
		if !ok {
			return ""
		}
		v = next
	}
	return v.Text()
}

// Detect walks the record's properties and returns the paths of all
// non-empty string values, in declared order. Nested objects are
// followed up to maxDepth levels; arrays are never descended.
func Detect(rec record.Value, maxDepth int) []Path {
	var paths []Path
	detectInto(rec, "", maxDepth, &paths)
	return paths
}

func detectInto(v record.Value, prefix Path, depth int, out *[]Path) {
	if depth <= 0 {
		return
	}
	for _, f := range v.Fields() {
		p := Join(prefix, f.Key)
		switch f.Value.Kind() {
		case record.KindString:
			if f.Value.Text() != "" {
				*out = append(*out, p)
			}
		case record.KindObject:
			detectInto(f.Value, p, depth-1, out)
		}
	}
}
