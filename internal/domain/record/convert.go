package record

import (
	"reflect"
	"sort"
	"strings"
)

// convertDepthLimit bounds conversion recursion so cyclic structures
// terminate instead of overflowing the stack.
const convertDepthLimit = 64

var byteSliceType = reflect.TypeOf([]byte(nil))

// FromAny converts an arbitrary Go value into a record Value.
//
// Strings, booleans, and all numeric kinds map to their scalar kinds.
// Maps with string keys become objects with lexicographically ordered
// fields; structs become objects in field declaration order, honoring
// `json` tag names (`json:"-"` and unexported fields are skipped).
// Slices and arrays become arrays, except []byte which becomes a
// string. Pointers and interfaces are dereferenced; nil becomes null.
// Anything unconvertible (funcs, channels, non-string map keys)
// becomes null.
func FromAny(v any) Value {
	if v == nil {
		return Null()
	}
	if val, ok := v.(Value); ok {
		return val
	}
	return fromReflect(reflect.ValueOf(v), convertDepthLimit)
}

func fromReflect(rv reflect.Value, depth int) Value {
	if depth <= 0 {
		return Null()
	}

	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null()
		}
		return fromReflect(rv.Elem(), depth-1)

	case reflect.String:
		return String(rv.String())

	case reflect.Bool:
		return Bool(rv.Bool())

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Number(float64(rv.Int()))

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Number(float64(rv.Uint()))

	case reflect.Float32, reflect.Float64:
		return Number(rv.Float())

	case reflect.Map:
		return fromMap(rv, depth)

	case reflect.Struct:
		return fromStruct(rv, depth)

	case reflect.Slice:
		if rv.IsNil() {
			return Null()
		}
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return String(string(rv.Convert(byteSliceType).Bytes()))
		}
		return fromList(rv, depth)

	case reflect.Array:
		return fromList(rv, depth)

	default:
		return Null()
	}
}

// fromMap converts a string-keyed map into an object. Go maps have no
// declared order, so keys are sorted to keep field detection and weight
// inference deterministic.
func fromMap(rv reflect.Value, depth int) Value {
	if rv.IsNil() {
		return Null()
	}
	if rv.Type().Key().Kind() != reflect.String {
		return Null()
	}

	keys := rv.MapKeys()
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })

	fields := make([]Field, 0, len(keys))
	for _, k := range keys {
		fields = append(fields, Field{
			Key:   k.String(),
			Value: fromReflect(rv.MapIndex(k), depth-1),
		})
	}
	return Object(fields...)
}

func fromStruct(rv reflect.Value, depth int) Value {
	t := rv.Type()
	fields := make([]Field, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name := f.Name
		if tag, ok := f.Tag.Lookup("json"); ok {
			tagName, _, _ := strings.Cut(tag, ",")
			if tagName == "-" {
				continue
			}
			if tagName != "" {
				name = tagName
			}
		}
		fields = append(fields, Field{
			Key:   name,
			Value: fromReflect(rv.Field(i), depth-1),
		})
	}
	return Object(fields...)
}

func fromList(rv reflect.Value, depth int) Value {
	items := make([]Value, rv.Len())
	for i := range items {
		items[i] = fromReflect(rv.Index(i), depth-1)
	}
	return Array(items...)
}
