// Package record models caller-supplied records as a small tagged union,
// so field resolution works over any object shape without reflection in
// the hot path.
package record

// Kind discriminates the payload of a Value.
type Kind uint8

// Value kinds. The zero Value is Null.
const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindObject
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return "null"
	}
}

// Field is one named property of an object value. Objects keep their
// fields as an ordered sequence, not a map, so traversal order is
// deterministic.
type Field struct {
	Key   string
	Value Value
}

// Value is one node of a record: a string, number, boolean, null,
// object, or array.
type Value struct {
	kind    Kind
	str     string
	num     float64
	boolean bool
	fields  []Field
	items   []Value
}

// String creates a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number creates a numeric value.
func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

// Bool creates a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, boolean: b} }

// Null creates a null value.
func Null() Value { return Value{} }

// Object creates an object value with the given fields, in order.
func Object(fields ...Field) Value { return Value{kind: KindObject, fields: fields} }

// Array creates an array value.
func Array(items ...Value) Value { return Value{kind: KindArray, items: items} }

// Kind returns the value's kind.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Text returns the string payload, or "" for non-string values.
func (v Value) Text() string { return v.str }

// Number returns the numeric payload, or 0 for non-numeric values.
func (v Value) Number() float64 { return v.num }

// Bool returns the boolean payload, or false for non-boolean values.
func (v Value) Bool() bool { return v.boolean }

// Fields returns an object's properties in declared order, or nil for
// non-object values.
func (v Value) Fields() []Field { return v.fields }

// Get looks up an object property by key.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	for i := range v.fields {
		if v.fields[i].Key == key {
			return v.fields[i].Value, true
		}
	}
	return Value{}, false
}

// Items returns an array's elements, or nil for non-array values.
func (v Value) Items() []Value { return v.items }
