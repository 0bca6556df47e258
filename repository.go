/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entitydb

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/suparena/entitydb/condition"
	"github.com/suparena/entitydb/driver"
	"github.com/suparena/entitydb/errors"
	"github.com/suparena/entitydb/record"
)

// EntityRepository is implemented by *Repository and by custom repository
// types embedding it.
type EntityRepository interface {
	EntityName() string
	TableName() string
	SetEntitiesNamespace(namespace string)

	FindOneBy(ctx context.Context, conditions any) (Model, error)
	FindBy(ctx context.Context, conditions any) (*Collection, error)
	FindOneByID(ctx context.Context, id any) (Model, error)
	GetAll(ctx context.Context) (*Collection, error)

	CreateEntity(data *record.Record) Model
	CreateCollection(rows []*record.Record) *Collection
	Delete(ctx context.Context, target any) error
}

// Repository runs queries for one entity name against one table.
type Repository struct {
	driver            driver.Driver
	entityName        string
	tableName         string
	entitiesNamespace string
	registry          *Registry
	parameterized     bool
	placeholder       condition.Placeholder
	logger            *zap.SugaredLogger
}

var _ EntityRepository = (*Repository)(nil)

// RepositoryOption configures a Repository.
type RepositoryOption func(*Repository)

// WithTableName sets the table, which defaults to the entity name.
func WithTableName(name string) RepositoryOption {
	return func(r *Repository) {
		if name != "" {
			r.tableName = name
		}
	}
}

// WithEntityRegistry sets the registry custom entity types are looked up in.
func WithEntityRegistry(reg *Registry) RepositoryOption {
	return func(r *Repository) {
		if reg != nil {
			r.registry = reg
		}
	}
}

// WithEntitiesNamespace sets the namespace prefix of custom entity type names.
func WithEntitiesNamespace(namespace string) RepositoryOption {
	return func(r *Repository) {
		r.entitiesNamespace = namespace
	}
}

// WithPlaceholders makes find queries bind condition values as parameters
// in the given style instead of inlining them as literals.
func WithPlaceholders(p condition.Placeholder) RepositoryOption {
	return func(r *Repository) {
		r.parameterized = true
		r.placeholder = p
	}
}

// WithLogger sets the logger generated SQL is written to at debug level.
func WithLogger(logger *zap.SugaredLogger) RepositoryOption {
	return func(r *Repository) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRepository creates a generic repository for entityName. A driver
// implementing driver.PlaceholderRequirer overrides WithPlaceholders.
func NewRepository(d driver.Driver, entityName string, opts ...RepositoryOption) *Repository {
	r := &Repository{
		driver:     d,
		entityName: entityName,
		tableName:  entityName,
		registry:   defaultRegistry,
		logger:     zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if req, ok := d.(driver.PlaceholderRequirer); ok {
		r.parameterized = true
		r.placeholder = req.RequiredPlaceholder()
	}
	return r
}

// EntityName returns the entity name the repository was created for.
func (r *Repository) EntityName() string {
	return r.entityName
}

// TableName returns the queried table.
func (r *Repository) TableName() string {
	return r.tableName
}

// Driver returns the repository's driver.
func (r *Repository) Driver() driver.Driver {
	return r.driver
}

// SetEntitiesNamespace sets the namespace prefix of custom entity type names.
func (r *Repository) SetEntitiesNamespace(namespace string) {
	r.entitiesNamespace = namespace
}

// FindOneBy returns the first row matching conditions as an entity. No
// match gives an empty entity. conditions is a condition.Condition or a
// tree accepted by condition.Parse.
func (r *Repository) FindOneBy(ctx context.Context, conditions any) (Model, error) {
	query, args, err := r.findSQL(conditions)
	if err != nil {
		return nil, err
	}
	r.logger.Debugw("find one", "table", r.tableName, "sql", query, "args", args)

	row, err := r.driver.GetRow(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to find %s: %w", r.entityName, err)
	}
	return r.CreateEntity(row), nil
}

// FindBy returns every row matching conditions.
func (r *Repository) FindBy(ctx context.Context, conditions any) (*Collection, error) {
	query, args, err := r.findSQL(conditions)
	if err != nil {
		return nil, err
	}
	r.logger.Debugw("find", "table", r.tableName, "sql", query, "args", args)

	rows, err := r.driver.Select(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to find %s: %w", r.entityName, err)
	}
	return r.CreateCollection(rows), nil
}

// FindOneByID returns the row with id.
func (r *Repository) FindOneByID(ctx context.Context, id any) (Model, error) {
	return r.FindOneBy(ctx, condition.Eq("id", id))
}

// GetAll returns every row of the table.
func (r *Repository) GetAll(ctx context.Context) (*Collection, error) {
	return r.FindBy(ctx, condition.True())
}

// CreateEntity builds the registered custom entity for this entity name,
// or a generic *Entity, and loads data into it when data is not empty.
func (r *Repository) CreateEntity(data *record.Record) Model {
	var model Model
	if factory, ok := r.registry.Entity(EntityTypeName(r.entitiesNamespace, r.entityName)); ok {
		model = factory(r.driver, r.tableName)
	}
	if model == nil {
		model = NewEntity(r.driver, r.tableName)
	}
	if data.Len() > 0 {
		model.Base().LoadRecord(data)
	}
	return model
}

// CreateCollection wraps each row into an entity. Nil rows are skipped and
// an ArrayKey column is dropped.
func (r *Repository) CreateCollection(rows []*record.Record) *Collection {
	c := NewCollection()
	for _, row := range rows {
		if row == nil {
			continue
		}
		c.Add(r.CreateEntity(driver.StripArrayKey(row)))
	}
	return c
}

// Delete removes rows by a *Collection of entities, a single entity or a
// raw numeric id.
func (r *Repository) Delete(ctx context.Context, target any) error {
	switch t := target.(type) {
	case *Collection:
		for _, item := range t.Items() {
			if err := r.deleteItem(ctx, item); err != nil {
				return err
			}
		}
		return nil
	case Collectible:
		return r.deleteItem(ctx, t)
	}

	id, ok := driver.ToInt64(target)
	if !ok {
		return errors.NewValidationError("id", fmt.Sprintf("cannot delete %s by %T", r.entityName, target))
	}
	return r.deleteByID(ctx, id)
}

func (r *Repository) deleteItem(ctx context.Context, item Collectible) error {
	var id int64
	var ok bool
	if m, isModel := item.(Model); isModel {
		id, ok = m.Base().PrimaryKey()
	} else {
		id, ok = driver.ToInt64(item.ID())
	}
	if !ok {
		return errors.NewValidationError("id", fmt.Sprintf("%s entity has no id", r.entityName))
	}
	return r.deleteByID(ctx, id)
}

func (r *Repository) deleteByID(ctx context.Context, id int64) error {
	r.logger.Debugw("delete", "table", r.tableName, "id", id)
	if err := r.driver.Delete(ctx, r.tableName, id); err != nil {
		return fmt.Errorf("failed to delete %s %d: %w", r.entityName, id, err)
	}
	return nil
}

func (r *Repository) findSQL(conditions any) (string, []any, error) {
	c, err := condition.Parse(conditions)
	if err != nil {
		return "", nil, err
	}

	var where string
	var args []any
	if r.parameterized {
		where, args, err = condition.BuildArgs(c, r.placeholder)
	} else {
		where, err = condition.Build(c)
	}
	if err != nil {
		return "", nil, err
	}
	return fmt.Sprintf("SELECT * FROM %s WHERE %s", r.tableName, where), args, nil
}
