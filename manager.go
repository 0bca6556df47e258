/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entitydb

import (
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/suparena/entitydb/driver"
	"github.com/suparena/entitydb/record"
)

// EntityManager creates one repository per entity name on first use and
// keeps it for its own lifetime. All repositories share the manager's driver.
type EntityManager struct {
	mu                sync.RWMutex
	driver            driver.Driver
	registry          *Registry
	repositories      map[string]EntityRepository
	namespace         string
	entitiesNamespace string
	repositoryOptions []RepositoryOption
	logger            *zap.SugaredLogger
}

// ManagerOption configures an EntityManager.
type ManagerOption func(*EntityManager)

// WithRegistry sets the registry custom repository and entity types are
// looked up in. The default is DefaultRegistry().
func WithRegistry(reg *Registry) ManagerOption {
	return func(m *EntityManager) {
		if reg != nil {
			m.registry = reg
		}
	}
}

// WithNamespace sets the namespace prefix of custom repository type names.
func WithNamespace(namespace string) ManagerOption {
	return func(m *EntityManager) {
		m.namespace = namespace
	}
}

// WithRepositoryOptions adds options applied to every repository the
// manager creates.
func WithRepositoryOptions(opts ...RepositoryOption) ManagerOption {
	return func(m *EntityManager) {
		m.repositoryOptions = append(m.repositoryOptions, opts...)
	}
}

// WithManagerLogger sets the manager's logger. It is also handed to every
// repository unless WithRepositoryOptions sets another one.
func WithManagerLogger(logger *zap.SugaredLogger) ManagerOption {
	return func(m *EntityManager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewEntityManager creates a manager over d.
func NewEntityManager(d driver.Driver, opts ...ManagerOption) *EntityManager {
	m := &EntityManager{
		driver:       d,
		registry:     defaultRegistry,
		repositories: make(map[string]EntityRepository),
		logger:       zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetNamespace sets the namespace prefix of custom repository type names.
// Repositories already created are kept.
func (m *EntityManager) SetNamespace(namespace string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.namespace = namespace
}

// SetEntitiesNamespace sets the entities namespace handed to repositories
// created from now on.
func (m *EntityManager) SetEntitiesNamespace(namespace string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entitiesNamespace = namespace
}

// GetRepository returns the repository for entityName, creating it on first
// use from the registered custom repository type or as a generic Repository.
func (m *EntityManager) GetRepository(entityName string) EntityRepository {
	m.mu.RLock()
	repo, exists := m.repositories[entityName]
	m.mu.RUnlock()
	if exists {
		return repo
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if repo, exists := m.repositories[entityName]; exists {
		return repo
	}

	opts := []RepositoryOption{WithEntityRegistry(m.registry), WithLogger(m.logger)}
	opts = append(opts, m.repositoryOptions...)
	if m.entitiesNamespace != "" {
		opts = append(opts, WithEntitiesNamespace(m.entitiesNamespace))
	}

	typeName := RepositoryTypeName(m.namespace, entityName)
	if factory, ok := m.registry.Repository(typeName); ok {
		repo = factory(m.driver, entityName, opts...)
	}
	if repo == nil {
		repo = NewRepository(m.driver, entityName, opts...)
	}
	m.logger.Debugw("repository created", "entity", entityName, "type", fmt.Sprintf("%T", repo))

	m.repositories[entityName] = repo
	return repo
}

// GetRepositoryAs returns the repository for entityName as R, failing when
// the registered type is not an R.
func GetRepositoryAs[R EntityRepository](m *EntityManager, entityName string) (R, error) {
	repo := m.GetRepository(entityName)
	typed, ok := repo.(R)
	if !ok {
		var zero R
		return zero, fmt.Errorf("repository for %q is %T, not %T", entityName, repo, zero)
	}
	return typed, nil
}

// CreateEntity is a shorthand for GetRepository(name).CreateEntity(data).
func (m *EntityManager) CreateEntity(name string, data *record.Record) Model {
	return m.GetRepository(name).CreateEntity(data)
}

// Driver returns the shared driver for raw queries.
func (m *EntityManager) Driver() driver.Driver {
	return m.driver
}

// Repositories lists the entity names with a created repository.
func (m *EntityManager) Repositories() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.repositories))
	for name := range m.repositories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
