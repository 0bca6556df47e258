/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"sort"
	"sync"

	"github.com/suparena/entitydb/errors"
)

// Registry maps qualified type names to factories of type F.
type Registry[F any] struct {
	mu        sync.RWMutex
	factories map[string]F
}

// New creates an empty Registry.
func New[F any]() *Registry[F] {
	return &Registry[F]{
		factories: make(map[string]F),
	}
}

// Register adds a factory under name. Registering a name twice is an error.
func (r *Registry[F]) Register(name string, factory F) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return errors.NewAlreadyExistsError("type", name)
	}
	r.factories[name] = factory
	return nil
}

// MustRegister is like Register but panics to prevent accidental overrides.
// It is meant for init() functions.
func (r *Registry[F]) MustRegister(name string, factory F) {
	if err := r.Register(name, factory); err != nil {
		panic(err)
	}
}

// Lookup returns the factory registered under name, if any.
func (r *Registry[F]) Lookup(name string) (F, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.factories[name]
	return f, ok
}

// Get returns the factory registered under name or an error.
func (r *Registry[F]) Get(name string) (F, error) {
	f, ok := r.Lookup(name)
	if !ok {
		return f, errors.NewNotFoundError("type", name)
	}
	return f, nil
}

// Remove deletes the factory registered under name and reports whether it existed.
func (r *Registry[F]) Remove(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.factories[name]
	delete(r.factories, name)
	return ok
}

// Names returns the registered names in sorted order.
func (r *Registry[F]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered factories.
func (r *Registry[F]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.factories)
}
