package structs

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/a-peyrard/godi-mongo/reflectutils"
)

// ErrNotFound is returned (wrapped) by Get when a token of the path does not exist.
var ErrNotFound = errors.New("not found")

// Get retrieves the value for the specified field from the provided struct or map.
// Supports nested access using dot notation (e.g., "plugins.mongoDb.auth").
//
// Map keys are matched exactly first, then case-insensitively when the map is keyed by strings:
// configuration trees loaded through viper have lower-cased keys.
func Get(origin any, field string) (any, error) {
	if field == "" {
		return nil, fmt.Errorf("field path cannot be empty")
	}

	tokens := strings.Split(field, ".")
	current := origin

	for i, token := range tokens {
		if token == "" {
			return nil, fmt.Errorf("empty token at position %d in field path %s", i, field)
		}

		valueOf := reflectutils.Deref(reflect.ValueOf(current))
		if !valueOf.IsValid() {
			return nil, fmt.Errorf("encountered nil value at token %s (position %d) in field path %s", token, i, field)
		}

		switch valueOf.Kind() {
		case reflect.Map:
			mapValue, found := lookupMap(valueOf, token)
			if !found {
				return nil, fmt.Errorf("key %s at position %d in field path %s: %w", token, i, field, ErrNotFound)
			}
			current = mapValue.Interface()

		case reflect.Struct:
			fieldValue := valueOf.FieldByName(token)
			if !fieldValue.IsValid() {
				return nil, fmt.Errorf("field %s in struct %s at position %d in field path %s: %w", token, valueOf.Type().Name(), i, field, ErrNotFound)
			}
			if !fieldValue.CanInterface() {
				return nil, fmt.Errorf("field %s in struct %s is not exportable at position %d in field path %s", token, valueOf.Type().Name(), i, field)
			}
			current = fieldValue.Interface()

		default:
			return nil, fmt.Errorf("cannot traverse field %s: expected struct or map but got %s at position %d in field path %s", token, valueOf.Kind(), i, field)
		}
	}

	return current, nil
}

// Lookup returns the value stored under key, matching it exactly first, then case-insensitively.
func Lookup(m map[string]any, key string) (any, bool) {
	if value, found := m[key]; found {
		return value, true
	}
	for k, value := range m {
		if strings.EqualFold(k, key) {
			return value, true
		}
	}
	return nil, false
}

func lookupMap(m reflect.Value, key string) (reflect.Value, bool) {
	if m.Type().Key().Kind() != reflect.String {
		return reflect.Value{}, false
	}

	exact := m.MapIndex(reflect.ValueOf(key).Convert(m.Type().Key()))
	if exact.IsValid() {
		return exact, true
	}

	iter := m.MapRange()
	for iter.Next() {
		if strings.EqualFold(iter.Key().String(), key) {
			return iter.Value(), true
		}
	}
	return reflect.Value{}, false
}
