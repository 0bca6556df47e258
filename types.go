/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entitydb

import (
	"github.com/suparena/entitydb/driver"
	"github.com/suparena/entitydb/naming"
	"github.com/suparena/entitydb/registry"
)

// EntityFactory builds a custom entity bound to d. table is the table of
// the repository creating it; a custom type may use its own instead.
type EntityFactory func(d driver.Driver, table string) Model

// RepositoryFactory builds a custom repository. Implementations normally
// embed the *Repository returned by NewRepository(d, entityName, opts...).
type RepositoryFactory func(d driver.Driver, entityName string, opts ...RepositoryOption) EntityRepository

// Registry holds the custom entity and repository factories, keyed by the
// qualified names EntityTypeName and RepositoryTypeName produce.
type Registry struct {
	entities     *registry.Registry[EntityFactory]
	repositories *registry.Registry[RepositoryFactory]
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		entities:     registry.New[EntityFactory](),
		repositories: registry.New[RepositoryFactory](),
	}
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry that RegisterEntity and
// RegisterRepository populate. Managers and repositories use it unless
// given another one.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// RegisterEntity adds f to the default registry and panics on duplicates.
// Call it from init().
func RegisterEntity(name string, f EntityFactory) {
	defaultRegistry.entities.MustRegister(name, f)
}

// RegisterRepository adds f to the default registry and panics on
// duplicates. Call it from init().
func RegisterRepository(name string, f RepositoryFactory) {
	defaultRegistry.repositories.MustRegister(name, f)
}

// RegisterEntity adds an entity factory under a qualified name.
func (r *Registry) RegisterEntity(name string, f EntityFactory) error {
	return r.entities.Register(name, f)
}

// RegisterRepository adds a repository factory under a qualified name.
func (r *Registry) RegisterRepository(name string, f RepositoryFactory) error {
	return r.repositories.Register(name, f)
}

// Entity returns the entity factory registered under name.
func (r *Registry) Entity(name string) (EntityFactory, bool) {
	return r.entities.Lookup(name)
}

// Repository returns the repository factory registered under name.
func (r *Registry) Repository(name string) (RepositoryFactory, bool) {
	return r.repositories.Lookup(name)
}

// Entities lists the registered entity type names.
func (r *Registry) Entities() []string {
	return r.entities.Names()
}

// Repositories lists the registered repository type names.
func (r *Registry) Repositories() []string {
	return r.repositories.Names()
}

// EntityTypeName returns the qualified name a custom entity for entityName
// is registered under: user_profile in "app." becomes
// "app.UserProfileEntity".
func EntityTypeName(namespace, entityName string) string {
	return namespace + naming.FieldToFunction(entityName, "") + "Entity"
}

// RepositoryTypeName returns the qualified name a custom repository for
// entityName is registered under: user in "app." becomes
// "app.UserRepository". Only the first letter is upper-cased.
func RepositoryTypeName(namespace, entityName string) string {
	return namespace + naming.UpperFirst(entityName) + "Repository"
}
