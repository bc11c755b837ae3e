package reflectutils

import (
	"reflect"

	"github.com/a-peyrard/godi-mongo/fn"
)

// FieldVisitor is called for every value met while walking a struct, the root included (with an empty path).
type FieldVisitor = fn.TriConsumer[reflect.Value, reflect.Type, []string]

// WalkStruct applies the visitor on an element and on all its exported fields, recursively.
//
// Nested struct pointers are followed once dereferenced, so a visitor creating nil structs
// (see CreateNilStructs) makes the walk descend into the freshly created values.
func WalkStruct[T any](element T, visitor FieldVisitor) {
	walk(reflect.ValueOf(element), nil, visitor)
}

func walk(val reflect.Value, path []string, visitor FieldVisitor) {
	visitor(val, val.Type(), path)

	val = Deref(val)
	if !val.IsValid() || val.Kind() != reflect.Struct {
		return
	}

	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		// copy the path, siblings must not share the same backing array
		fieldPath := make([]string, len(path), len(path)+1)
		copy(fieldPath, path)

		walk(val.Field(i), append(fieldPath, field.Name), visitor)
	}
}

// Deref dereferences recursively a reflect.Value until it reaches a non-pointer or non-interface value
func Deref(value reflect.Value) reflect.Value {
	for value.Kind() == reflect.Pointer || value.Kind() == reflect.Interface {
		value = value.Elem()
	}
	return value
}

// CreateNilStructs allocates struct pointers left nil, it is meant to be used as a FieldVisitor.
func CreateNilStructs(val reflect.Value, typ reflect.Type, _ []string) {
	if typ.Kind() == reflect.Pointer && typ.Elem().Kind() == reflect.Struct && val.IsNil() && val.CanSet() {
		val.Set(reflect.New(typ.Elem()))
	}
}
