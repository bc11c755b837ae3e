package godi

import (
	"context"
	"errors"
	"fmt"
)

// ScopePrivate marks a service that can only be injected as a dependency, never resolved by name from outside.
const ScopePrivate = "private"

type (
	// Descriptor describes a service: its name, visibility, dependencies and how to build it.
	//
	// Descriptors are handed to a Registry, they are owned by the compiler afterward.
	Descriptor struct {
		Name       string
		Visibility Visibility
		// IsAsync services may complete after Init returned, synchronous ones must call next or fail before.
		IsAsync bool
		// Dependencies lists the names of the services injected in Init.
		Dependencies []string
		Init         Initializer
	}

	// Visibility is either a named scope or a shared marker, never both. The zero value lets the
	// compiler apply its default scope.
	Visibility struct {
		Scope  string
		Shared any
	}

	// Initializer builds a service and reports the outcome through one of the continuations.
	Initializer func(ctx context.Context, deps Dependencies, next Next, fail Fail)

	// Next is the success continuation of an Initializer.
	Next func(service any)

	// Fail is the failure continuation of an Initializer.
	Fail func(err error)

	// Dependencies holds the resolved dependencies of a service, by name.
	Dependencies map[string]any
)

// IsSet returns true if either a scope or a shared marker is set.
func (v Visibility) IsSet() bool {
	return v.Scope != "" || v.Shared != nil
}

func (v Visibility) String() string {
	switch {
	case v.Scope != "" && v.Shared != nil:
		return fmt.Sprintf("scope=%s shared=%v", v.Scope, v.Shared)
	case v.Scope != "":
		return "scope=" + v.Scope
	case v.Shared != nil:
		return fmt.Sprintf("shared=%v", v.Shared)
	default:
		return "default"
	}
}

func (d Descriptor) String() string {
	return fmt.Sprintf("(%s, %s, async=%t)", d.Name, d.Visibility, d.IsAsync)
}

func (d Descriptor) validate() error {
	if d.Name == "" {
		return errors.New("service name cannot be empty")
	}
	if d.Init == nil {
		return fmt.Errorf("service %s has no initializer", d.Name)
	}
	if d.Visibility.Scope != "" && d.Visibility.Shared != nil {
		return fmt.Errorf("service %s cannot have both a scope and a shared visibility", d.Name)
	}
	for _, dep := range d.Dependencies {
		if dep == d.Name {
			return fmt.Errorf("service %s cannot depend on itself", d.Name)
		}
	}
	return nil
}

// Dependency returns the dependency registered under name, typed.
func Dependency[T any](deps Dependencies, name string) (T, error) {
	var zero T
	raw, found := deps[name]
	if !found {
		return zero, fmt.Errorf("dependency %s was not injected", name)
	}
	typed, ok := raw.(T)
	if !ok {
		return zero, fmt.Errorf("dependency %s is a %T, not a %T", name, raw, zero)
	}
	return typed, nil
}
