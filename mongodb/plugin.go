package mongodb

import (
	"context"
	"fmt"

	godi "github.com/a-peyrard/godi-mongo"
	"github.com/a-peyrard/godi-mongo/option"
	"github.com/a-peyrard/godi-mongo/slices"
	"github.com/a-peyrard/godi-mongo/structs"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
)

type (
	// Plugin registers the connection service and the collection services into a compiler.
	Plugin struct {
		driver Driver
		logger zerolog.Logger
	}

	Options struct {
		driver Driver
		logger zerolog.Logger
	}
)

var _ godi.Plugin = (*Plugin)(nil)

// WithDriver replaces the driver opening connections, NewDriver() by default.
func WithDriver(driver Driver) option.Option[Options] {
	return func(opts *Options) {
		opts.driver = driver
	}
}

func WithLogger(logger zerolog.Logger) option.Option[Options] {
	return func(opts *Options) {
		opts.logger = logger
	}
}

func NewPlugin(opts ...option.Option[Options]) *Plugin {
	options := option.Build(
		&Options{
			logger: zerolog.Nop(),
		},
		opts...,
	)
	if options.driver == nil {
		options.driver = NewDriver()
	}

	return &Plugin{
		driver: options.driver,
		logger: options.logger.With().Str("plugin", PluginKey).Logger(),
	}
}

func (p *Plugin) Name() string {
	return PluginKey
}

// Init reads the plugin configuration at ConfigPath in tree and registers the services.
// Nothing is registered if the configuration is invalid.
func (p *Plugin) Init(tree map[string]any, registry godi.Registry) error {
	raw, err := structs.Get(tree, ConfigPath)
	if err != nil {
		return fmt.Errorf("unable to find mongo plugin configuration at %s:\n\t%w", ConfigPath, err)
	}
	sub, ok := toObject(raw)
	if !ok {
		return fmt.Errorf("mongo plugin configuration at %s must be an object, got %T", ConfigPath, raw)
	}

	cfg, err := Resolve(sub)
	if err != nil {
		return err
	}
	return p.Register(cfg, registry)
}

// Register adds the services described by cfg to registry, in a single batch.
func (p *Plugin) Register(cfg Config, registry godi.Registry) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	descriptors := append(
		[]godi.Descriptor{p.connectionDescriptor(cfg)},
		slices.Map(cfg.Collections, collectionDescriptor)...,
	)

	if err := registry.Add(descriptors...); err != nil {
		return fmt.Errorf("failed to register mongo services:\n\t%w", err)
	}

	p.logger.Info().
		Str("target", RedactedConnectionString(cfg)).
		Str("database", cfg.Database()).
		Strs("collections", cfg.Collections).
		Msg("mongo services registered")

	return nil
}

func (p *Plugin) connectionDescriptor(cfg Config) godi.Descriptor {
	var (
		uri      = ConnectionString(cfg)
		target   = RedactedConnectionString(cfg)
		database = cfg.Database()
	)

	return godi.Descriptor{
		Name:       ServiceName,
		Visibility: godi.Visibility{Scope: cfg.Scope, Shared: cfg.Shared},
		IsAsync:    true,
		Init: func(ctx context.Context, _ godi.Dependencies, next godi.Next, fail godi.Fail) {
			p.logger.Debug().Str("target", target).Msg("connecting to mongo")
			p.driver.Connect(ctx, uri, func(client *mongo.Client, err error) {
				if err != nil {
					p.logger.Error().Err(err).Str("target", target).Msg("unable to connect to mongo")
					fail(&ConnectionError{Target: target, Err: err})
					return
				}
				next(&Connection{Client: client, Database: client.Database(database)})
			})
		},
	}
}

func collectionDescriptor(collection string) godi.Descriptor {
	return godi.Descriptor{
		Name:         CollectionServiceName(collection),
		Visibility:   godi.Visibility{Scope: CollectionScope},
		Dependencies: []string{ServiceName},
		Init: func(_ context.Context, deps godi.Dependencies, next godi.Next, fail godi.Fail) {
			conn, err := godi.Dependency[*Connection](deps, ServiceName)
			if err != nil {
				fail(err)
				return
			}
			next(conn.Collection(collection))
		},
	}
}
