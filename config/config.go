// Package config loads settings from the environment and configuration trees from files.
package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/a-peyrard/godi-mongo/fn"
	"github.com/a-peyrard/godi-mongo/option"
	"github.com/a-peyrard/godi-mongo/reflectutils"
	"github.com/a-peyrard/godi-mongo/str"
	"github.com/spf13/viper"
)

type (
	Options struct {
		prefix string
	}

	// WithDefault is implemented by settings structs filling their own zero values after loading.
	WithDefault interface {
		ApplyDefault()
	}
)

var withDefaultType = reflect.TypeOf((*WithDefault)(nil)).Elem()

// WithEnvPrefix sets the prefix of the environment variables, "GODI" reads GODI_LOG_LEVEL for Log.Level.
func WithEnvPrefix(prefix string) option.Option[Options] {
	return func(opts *Options) {
		opts.prefix = prefix
	}
}

// Load builds a T from the environment.
//
// Each leaf field is bound to PREFIX_PATH_TO_FIELD, in screaming snake case. Nil struct pointers are
// allocated, then ApplyDefault is called on every struct implementing WithDefault.
func Load[T any](opts ...option.Option[Options]) (*T, error) {
	options := option.Build(&Options{}, opts...)

	v := viper.New()
	v.SetEnvPrefix(options.prefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var settings T
	if err := bindEnvs(v, options.prefix, reflect.TypeOf(settings)); err != nil {
		return nil, err
	}

	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config: %w", err)
	}

	reflectutils.WalkStruct(
		&settings,
		fn.AllTriConsumer[reflect.Value, reflect.Type, []string](
			reflectutils.CreateNilStructs,
			applyDefault,
		),
	)

	return &settings, nil
}

// LoadTree reads a configuration file (yaml, json, toml...) into a tree, as given to compiler plugins.
//
// Keys are lower-cased by the loader, consumers match them case-insensitively.
func LoadTree(path string) (map[string]any, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("unable to read configuration file %s:\n\t%w", path, err)
	}
	return v.AllSettings(), nil
}

func applyDefault(val reflect.Value, typ reflect.Type, _ []string) {
	if val.IsValid() && typ.Implements(withDefaultType) && val.CanInterface() {
		val.Interface().(WithDefault).ApplyDefault()
	}
}

func bindEnvs(v *viper.Viper, prefix string, typ reflect.Type, path ...string) error {
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return fmt.Errorf("settings must be a struct, got %s", typ)
	}

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		name, ok := field.Tag.Lookup("mapstructure")
		if !ok {
			name = field.Name
		}
		fieldPath := append(path[:len(path):len(path)], name)

		fieldType := field.Type
		if fieldType.Kind() == reflect.Pointer {
			fieldType = fieldType.Elem()
		}
		if fieldType.Kind() == reflect.Struct {
			if err := bindEnvs(v, prefix, fieldType, fieldPath...); err != nil {
				return err
			}
			continue
		}

		if err := v.BindEnv(strings.Join(fieldPath, "."), envName(prefix, fieldPath)); err != nil {
			return fmt.Errorf("unable to bind field %s: %w", strings.Join(fieldPath, "."), err)
		}
	}
	return nil
}

func envName(prefix string, path []string) string {
	parts := make([]string, 0, len(path)+1)
	if prefix != "" {
		parts = append(parts, strings.ToUpper(prefix))
	}
	for _, p := range path {
		parts = append(parts, str.ToScreamingSnakeCase(p))
	}
	return strings.Join(parts, "_")
}
