package godi

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/a-peyrard/godi-mongo/option"
	"github.com/a-peyrard/godi-mongo/runner"
	"github.com/a-peyrard/godi-mongo/set"
	"github.com/rs/zerolog"
)

// DefaultScope is the scope given to services registered without any visibility.
const DefaultScope = "public"

type (
	// Registry receives service descriptors.
	Registry interface {
		// Add registers all the descriptors, or none of them if one is invalid.
		Add(descriptors ...Descriptor) error
	}

	// Plugin contributes services to a compiler, driven by the host configuration tree.
	Plugin interface {
		Name() string
		Init(config map[string]any, registry Registry) error
	}

	// Compiler is the dependency injection host: it collects descriptors then resolves them into services.
	Compiler struct {
		mu          sync.RWMutex
		descriptors map[string]Descriptor
		order       []string

		store *Store
		lock  *LockManager

		config       map[string]any
		defaultScope string
		logger       zerolog.Logger
	}

	Options struct {
		config       map[string]any
		defaultScope string
		logger       zerolog.Logger
	}
)

// WithConfig sets the configuration tree given to plugins.
func WithConfig(tree map[string]any) option.Option[Options] {
	return func(opts *Options) {
		opts.config = tree
	}
}

func WithLogger(logger zerolog.Logger) option.Option[Options] {
	return func(opts *Options) {
		opts.logger = logger
	}
}

// WithDefaultScope overrides the scope applied to services registered without visibility.
func WithDefaultScope(scope string) option.Option[Options] {
	return func(opts *Options) {
		opts.defaultScope = scope
	}
}

func New(opts ...option.Option[Options]) *Compiler {
	options := option.Build(
		&Options{
			config:       map[string]any{},
			defaultScope: DefaultScope,
			logger:       zerolog.Nop(),
		},
		opts...,
	)

	return &Compiler{
		descriptors: make(map[string]Descriptor),
		store:       NewStore(),
		lock:        NewLockManager(),

		config:       options.config,
		defaultScope: options.defaultScope,
		logger:       options.logger.With().Str("component", "compiler").Logger(),
	}
}

func (c *Compiler) Add(descriptors ...Descriptor) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	batch := set.New[string]()
	for _, d := range descriptors {
		if err := d.validate(); err != nil {
			return fmt.Errorf("invalid descriptor %s:\n\t%w", d, err)
		}
		if _, found := c.descriptors[d.Name]; found || batch.Contains(d.Name) {
			return fmt.Errorf("service %s is already registered", d.Name)
		}
		batch.Add(d.Name)
	}

	for _, d := range descriptors {
		if !d.Visibility.IsSet() {
			d.Visibility.Scope = c.defaultScope
		}
		d.Dependencies = slices.Clone(d.Dependencies)

		c.descriptors[d.Name] = d
		c.order = append(c.order, d.Name)

		c.logger.Debug().
			Str("service", d.Name).
			Stringer("visibility", d.Visibility).
			Bool("async", d.IsAsync).
			Strs("dependencies", d.Dependencies).
			Msg("service registered")
	}

	return nil
}

// Use initializes the plugins, in order, with the compiler configuration tree.
// It stops at the first failing plugin.
func (c *Compiler) Use(plugins ...Plugin) error {
	for _, p := range plugins {
		c.logger.Debug().Str("plugin", p.Name()).Msg("initializing plugin")
		if err := p.Init(c.config, c); err != nil {
			return fmt.Errorf("failed to initialize plugin %s:\n\t%w", p.Name(), err)
		}
	}
	return nil
}

// Compile resolves every registered service, independent services are built concurrently.
//
// It returns the first failure, the context given to the other initializers is then cancelled.
func (c *Compiler) Compile(ctx context.Context) error {
	descriptors := c.snapshot()
	if err := checkGraph(descriptors); err != nil {
		return fmt.Errorf("invalid service graph:\n\t%w", err)
	}

	runnables := make([]runner.Runnable, 0, len(descriptors))
	for _, name := range c.Names() {
		runnables = append(runnables, runner.RunnableFunc(func(ctx context.Context) error {
			_, err := c.resolve(ctx, name, descriptors)
			return err
		}))
	}

	return runner.RunAll(ctx, runnables...)
}

// Names returns the registered service names, in registration order.
func (c *Compiler) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.order)
}

// Descriptor returns the registered descriptor named name.
func (c *Compiler) Descriptor(name string) (Descriptor, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	d, found := c.descriptors[name]
	return d, found
}

func (c *Compiler) Close() error {
	return c.store.Close()
}

func (c *Compiler) Describe() string {
	descriptors := c.snapshot()

	var b strings.Builder
	b.WriteString("* Services:\n")
	for _, name := range c.Names() {
		d := descriptors[name]
		state := "pending"
		if _, found, err := c.store.Get(name); found {
			state = "ready"
			if err != nil {
				state = "failed: " + err.Error()
			}
		}

		b.WriteString(fmt.Sprintf("\t- %s (%s, async=%t)\n", name, d.Visibility, d.IsAsync))
		b.WriteString(fmt.Sprintf("\t\tstate: %s\n", state))
		if len(d.Dependencies) > 0 {
			b.WriteString("\t\tdependencies:\n")
			for _, dep := range d.Dependencies {
				b.WriteString(fmt.Sprintf("\t\t\t- %s\n", dep))
			}
		}
	}
	return b.String()
}

func (c *Compiler) snapshot() map[string]Descriptor {
	c.mu.RLock()
	defer c.mu.RUnlock()

	descriptors := make(map[string]Descriptor, len(c.descriptors))
	for name, d := range c.descriptors {
		descriptors[name] = d
	}
	return descriptors
}
