package mongodb

import (
	"encoding/json"
	"math"
	"reflect"

	"github.com/a-peyrard/godi-mongo/structs"
	"github.com/spf13/cast"
)

// ConfigResolver validates a raw plugin configuration.
type ConfigResolver struct {
	raw map[string]any
}

func NewConfigResolver(raw map[string]any) *ConfigResolver {
	return &ConfigResolver{raw: raw}
}

func (r *ConfigResolver) Resolve() (Config, error) {
	return Resolve(r.raw)
}

// Resolve validates raw and returns the typed configuration.
//
// Rules are checked in a fixed order and the first violation is returned, as a *ConfigurationError.
// Keys are matched case-insensitively when the exact key is absent.
func Resolve(raw map[string]any) (Config, error) {
	var cfg Config

	if value, present := structs.Lookup(raw, "localhost"); present {
		localhost, ok := value.(bool)
		if !ok {
			return Config{}, fail(InvalidLocalhost)
		}
		cfg.Localhost = localhost
	}

	if cfg.Localhost {
		// only used to name the database
		if value, present := structs.Lookup(raw, "dbName"); present {
			if dbName, ok := value.(string); ok {
				cfg.DBName = dbName
			}
		}
	} else if err := resolveRemote(raw, &cfg); err != nil {
		return Config{}, err
	}

	if value, present := structs.Lookup(raw, "collections"); present {
		collections, ok := toStrings(value)
		if !ok {
			return Config{}, fail(InvalidCollections)
		}
		cfg.Collections = collections
	}

	scope, hasScope := structs.Lookup(raw, "scope")
	shared, hasShared := structs.Lookup(raw, "shared")
	if hasScope && hasShared {
		return Config{}, fail(ConflictingVisibility)
	}
	if hasScope {
		cfg.Scope = cast.ToString(scope)
	}
	cfg.Shared = shared

	return cfg, nil
}

func resolveRemote(raw map[string]any, cfg *Config) error {
	value, _ := structs.Lookup(raw, "dbName")
	dbName, ok := value.(string)
	if !ok || dbName == "" {
		return fail(InvalidDBName)
	}
	cfg.DBName = dbName

	if value, present := structs.Lookup(raw, "host"); present {
		host, ok := value.(string)
		if !ok {
			return fail(InvalidHost)
		}
		cfg.Host = &host
	}

	if value, present := structs.Lookup(raw, "port"); present {
		port, ok := toInt(value)
		if !ok {
			return fail(InvalidPort)
		}
		cfg.Port = &port
	}

	var auth map[string]any
	if value, present := structs.Lookup(raw, "auth"); present {
		auth, ok = toObject(value)
		if !ok {
			return fail(InvalidAuth)
		}
	}

	// an absent auth has no credentials either
	username, okUsername := structs.Lookup(auth, "username")
	password, okPassword := structs.Lookup(auth, "password")
	if !okUsername || !okPassword {
		return fail(InvalidAuthCredentials)
	}
	user, okUsername := username.(string)
	pass, okPassword := password.(string)
	if !okUsername || !okPassword {
		return fail(InvalidAuthCredentials)
	}
	cfg.Auth = &Auth{Username: user, Password: pass}

	return nil
}

// toInt accepts any integer kind, and integral floats as decoded from JSON.
func toInt(value any) (int, bool) {
	if number, ok := value.(json.Number); ok {
		i, err := number.Int64()
		if err != nil || i < math.MinInt || i > math.MaxInt {
			return 0, false
		}
		return int(i), true
	}

	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i := v.Int()
		if i < math.MinInt || i > math.MaxInt {
			return 0, false
		}
		return int(i), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := v.Uint()
		if u > math.MaxInt {
			return 0, false
		}
		return int(u), true
	case reflect.Float32, reflect.Float64:
		f := v.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) || math.Trunc(f) != f || f < math.MinInt || f >= math.MaxInt {
			return 0, false
		}
		return int(f), true
	default:
		return 0, false
	}
}

// toObject accepts string keyed maps, and maps with keys of any kind as decoded by some YAML parsers.
func toObject(value any) (map[string]any, bool) {
	if m, ok := value.(map[string]any); ok {
		return m, m != nil
	}

	v := reflect.ValueOf(value)
	if v.Kind() != reflect.Map || v.IsNil() {
		return nil, false
	}
	m := make(map[string]any, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		key, err := cast.ToStringE(iter.Key().Interface())
		if err != nil {
			return nil, false
		}
		m[key] = iter.Value().Interface()
	}
	return m, true
}

func toStrings(value any) ([]string, bool) {
	v := reflect.ValueOf(value)
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return nil, false
	}
	if v.Kind() == reflect.Slice && v.IsNil() {
		return nil, false
	}

	strs := make([]string, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		s, ok := v.Index(i).Interface().(string)
		if !ok {
			return nil, false
		}
		strs = append(strs, s)
	}
	return strs, true
}
