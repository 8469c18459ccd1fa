package scandex

import (
	"reflect"

	"github.com/kailas-cloud/scandex/internal/domain"
	"github.com/kailas-cloud/scandex/internal/domain/record"
)

// collection is a converted record set plus access to the originals.
type collection struct {
	values []record.Value
	source reflect.Value
}

// toCollection accepts a slice or array (possibly behind pointers) and
// converts every element to its neutral document form. The source
// stays referenced so results can carry the original elements.
func toCollection(records any) (collection, error) {
	if records == nil {
		return collection{}, domain.NewInvalidInput("collection must not be nil")
	}

	rv := reflect.ValueOf(records)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return collection{}, domain.NewInvalidInput("collection must not be nil")
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return collection{}, domain.NewInvalidInput("collection must be a slice or array, got %T", records)
	}

	values := make([]record.Value, rv.Len())
	for i := range values {
		values[i] = record.FromAny(rv.Index(i).Interface())
	}
	return collection{values: values, source: rv}, nil
}

// recordAt returns the original element at i.
func (c collection) recordAt(i int) any {
	return c.source.Index(i).Interface()
}
