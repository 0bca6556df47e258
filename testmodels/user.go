/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package testmodels

import (
	"context"
	"fmt"
	"time"

	"github.com/go-openapi/strfmt"

	"github.com/suparena/entitydb"
	"github.com/suparena/entitydb/condition"
	"github.com/suparena/entitydb/driver"
)

// Namespace prefixes the registered type names of this package.
const Namespace = "testmodels."

func init() {
	if err := Register(entitydb.DefaultRegistry()); err != nil {
		panic(err)
	}
}

// Register adds the package's entity and repository factories to reg.
func Register(reg *entitydb.Registry) error {
	if err := reg.RegisterEntity(entitydb.EntityTypeName(Namespace, "user"), NewUserEntity); err != nil {
		return err
	}
	if err := reg.RegisterRepository(entitydb.RepositoryTypeName(Namespace, "user"), NewUserRepository); err != nil {
		return err
	}
	return reg.RegisterEntity(entitydb.EntityTypeName(Namespace, "rating_system"), NewRatingSystemEntity)
}

var (
	userName      = entitydb.Field[string]("name")
	userEmail     = entitydb.Field[string]("email")
	userStatus    = entitydb.Field[string]("status")
	userCreatedAt = entitydb.Field[string]("created_at")
)

// UserEntity is a row of the user table.
type UserEntity struct {
	*entitydb.Entity
}

// NewUserEntity is the EntityFactory of UserEntity.
func NewUserEntity(d driver.Driver, table string) entitydb.Model {
	return &UserEntity{Entity: entitydb.NewEntity(d, table)}
}

func (u *UserEntity) Name() string { return userName.Get(u) }
func (u *UserEntity) SetName(v string) { userName.Set(u, v) }
func (u *UserEntity) Email() string { return userEmail.Get(u) }
func (u *UserEntity) SetEmail(v string) { userEmail.Set(u, v) }
func (u *UserEntity) Status() string { return userStatus.Get(u) }
func (u *UserEntity) SetStatus(v string) { userStatus.Set(u, v) }
func (u *UserEntity) IsActive() bool { return u.Status() == "active" }

// CreatedAt parses the created_at column. An unset column gives the zero
// date-time.
func (u *UserEntity) CreatedAt() (strfmt.DateTime, error) {
	return dateTime(u.Get(userCreatedAt.Name()))
}

// SetCreatedAt stores t in the strfmt date-time text format.
func (u *UserEntity) SetCreatedAt(t strfmt.DateTime) {
	userCreatedAt.Set(u, t.String())
}

// UserRepository adds user specific finders to the generic repository.
type UserRepository struct {
	*entitydb.Repository
}

// NewUserRepository is the RepositoryFactory of UserRepository. Rows are
// built as UserEntity unless the options name another entities namespace.
func NewUserRepository(d driver.Driver, entityName string, opts ...entitydb.RepositoryOption) entitydb.EntityRepository {
	opts = append([]entitydb.RepositoryOption{entitydb.WithEntitiesNamespace(Namespace)}, opts...)
	return &UserRepository{Repository: entitydb.NewRepository(d, entityName, opts...)}
}

// FindByEmail returns the user with email. No match gives an empty user.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*UserEntity, error) {
	m, err := r.FindOneBy(ctx, condition.Eq("email", email))
	if err != nil {
		return nil, err
	}
	user, ok := m.(*UserEntity)
	if !ok {
		return nil, fmt.Errorf("user repository built %T, not *UserEntity", m)
	}
	return user, nil
}

// FindActive returns the users whose status is "active".
func (r *UserRepository) FindActive(ctx context.Context) (*entitydb.Collection, error) {
	return r.FindBy(ctx, condition.Eq("status", "active"))
}

func dateTime(v any) (strfmt.DateTime, error) {
	switch t := v.(type) {
	case nil:
		return strfmt.DateTime{}, nil
	case strfmt.DateTime:
		return t, nil
	case time.Time:
		return strfmt.DateTime(t), nil
	case string:
		if t == "" {
			return strfmt.DateTime{}, nil
		}
		return strfmt.ParseDateTime(t)
	}
	return strfmt.DateTime{}, fmt.Errorf("cannot read %T as a date-time", v)
}
