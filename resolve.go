package godi

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// Resolve returns the service named name, building it and its dependencies if needed.
//
// Private services can only be injected as dependencies, resolving them here fails.
func Resolve[T any](ctx context.Context, c *Compiler, name string) (T, error) {
	var zero T

	descriptors := c.snapshot()
	d, found := descriptors[name]
	if !found {
		return zero, fmt.Errorf("no service named %s", name)
	}
	if d.Visibility.Scope == ScopePrivate {
		return zero, fmt.Errorf("service %s is private, it can only be injected as a dependency", name)
	}
	if err := checkGraph(descriptors); err != nil {
		return zero, fmt.Errorf("invalid service graph:\n\t%w", err)
	}

	raw, err := c.resolve(ctx, name, descriptors)
	if err != nil {
		return zero, fmt.Errorf("failed to resolve service %s:\n\t%w", name, err)
	}

	typed, ok := raw.(T)
	if !ok {
		return zero, fmt.Errorf("service %s is a %T, not a %T", name, raw, zero)
	}
	return typed, nil
}

func (c *Compiler) resolve(ctx context.Context, name string, descriptors map[string]Descriptor) (any, error) {
	d, found := descriptors[name]
	if !found {
		return nil, fmt.Errorf("no service named %s", name)
	}

	lock := c.lock.GetLockFor(name)
	lock.Lock()
	defer func() {
		lock.Unlock()
		c.lock.ReleaseLock(name) // the outcome is stored, later callers read it from the store
	}()

	// now that we have the lock, check if the service was built while we were waiting
	if service, found, err := c.store.Get(name); found {
		return service, err
	}

	start := time.Now()

	deps, err := c.resolveDependencies(ctx, d, descriptors)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve dependencies of service %s:\n\t%w", name, err)
	}

	service, err := c.initialize(ctx, d, deps)
	if err != nil {
		c.store.PutFailure(name, err)
		c.logger.Error().Err(err).Str("service", name).Msg("service initialization failed")
		return nil, err
	}
	c.store.Put(name, service)

	c.logger.Debug().
		Str("service", name).
		Dur("duration", time.Since(start)).
		Msg("service resolved")

	return service, nil
}

func (c *Compiler) resolveDependencies(ctx context.Context, d Descriptor, descriptors map[string]Descriptor) (Dependencies, error) {
	deps := make(Dependencies, len(d.Dependencies))
	for _, dep := range d.Dependencies {
		service, err := c.resolve(ctx, dep, descriptors)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve dependency %s:\n\t%w", dep, err)
		}
		deps[dep] = service
	}
	return deps, nil
}

// initialize runs the initializer of d and waits for its outcome.
//
// Only the first completion is kept. A service delivered after the initialization was abandoned
// (context done, or a synchronous initializer returning early) is closed if it is Closeable.
func (c *Compiler) initialize(ctx context.Context, d Descriptor, deps Dependencies) (any, error) {
	var (
		once sync.Once
		done = make(chan outcome, 1)
	)
	complete := func(o outcome) bool {
		completed := false
		once.Do(func() {
			done <- o
			completed = true
		})
		return completed
	}

	next := func(service any) {
		if !complete(outcome{service: service}) {
			c.discard(d.Name, service)
		}
	}
	fail := func(err error) {
		if err == nil {
			err = errors.New("initializer failed without error")
		}
		complete(outcome{err: err})
	}

	// panic recovery, the initializer is user code
	func() {
		defer func() {
			if r := recover(); r != nil {
				fail(fmt.Errorf("panic calling initializer of service %s: %v", d.Name, r))
			}
		}()
		d.Init(ctx, deps, next, fail)
	}()

	if !d.IsAsync {
		abandon := fmt.Errorf("synchronous service %s returned without calling next or fail", d.Name)
		if complete(outcome{err: abandon}) {
			return nil, abandon
		}
		o := <-done
		return o.service, o.err
	}

	select {
	case o := <-done:
		return o.service, o.err
	case <-ctx.Done():
		abandon := fmt.Errorf("initialization of service %s abandoned:\n\t%w", d.Name, ctx.Err())
		if complete(outcome{err: abandon}) {
			return nil, abandon
		}
		o := <-done
		return o.service, o.err
	}
}

func (c *Compiler) discard(name string, service any) {
	c.logger.Warn().Str("service", name).Msg("service delivered after its initialization was abandoned")
	if closeable, ok := service.(Closeable); ok {
		if err := closeable.Close(); err != nil {
			c.logger.Error().Err(err).Str("service", name).Msg("failed to close discarded service")
		}
	}
}
