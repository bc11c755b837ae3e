package godi

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

type (
	// Closeable is an interface that can be used to close resources.
	Closeable interface {
		Close() error
	}

	// Store keeps the outcome of every service construction, successful or not.
	Store struct {
		inner sync.Map
	}

	outcome struct {
		service any
		err     error
	}
)

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Put(name string, service any) {
	s.inner.Store(name, outcome{service: service})
}

// PutFailure records a failed construction, the service is not built again afterward.
func (s *Store) PutFailure(name string, err error) {
	s.inner.Store(name, outcome{err: err})
}

// Get returns the stored service, or the error of its failed construction.
func (s *Store) Get(name string) (service any, found bool, err error) {
	raw, found := s.inner.Load(name)
	if !found {
		return nil, false, nil
	}
	o := raw.(outcome)
	return o.service, true, o.err
}

// ListNames returns the names of all the stored outcomes, sorted.
func (s *Store) ListNames() []string {
	names := make([]string, 0)
	s.inner.Range(func(name, _ any) bool {
		names = append(names, name.(string))
		return true
	})
	sort.Strings(names)
	return names
}

// Close closes all the stored services implementing Closeable and forgets about them.
func (s *Store) Close() error {
	closeErrors := make([]error, 0)
	for _, name := range s.ListNames() {
		raw, loaded := s.inner.LoadAndDelete(name)
		if !loaded {
			continue
		}
		if closeable, ok := raw.(outcome).service.(Closeable); ok {
			if err := closeable.Close(); err != nil {
				closeErrors = append(closeErrors, fmt.Errorf("failed to close service %s:\n\t%w", name, err))
			}
		}
	}

	return errors.Join(closeErrors...)
}
