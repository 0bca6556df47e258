/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entitydb

import (
	"context"
	"fmt"
	"strings"

	"github.com/suparena/entitydb/driver"
	"github.com/suparena/entitydb/errors"
	"github.com/suparena/entitydb/naming"
	"github.com/suparena/entitydb/record"
	"github.com/suparena/entitydb/table"
)

// Entity is one row bound to a table and a driver. The id is kept apart
// from the other fields: nil means the row has not been persisted.
type Entity struct {
	driver driver.Driver
	table  string
	id     any
	data   *record.Record
}

var _ Model = (*Entity)(nil)

// NewEntity creates an empty entity. An empty table name makes Load by id
// and Save no-ops.
func NewEntity(d driver.Driver, tableName string) *Entity {
	return &Entity{
		driver: d,
		table:  tableName,
		data:   record.New(),
	}
}

// Base returns e itself.
func (e *Entity) Base() *Entity {
	return e
}

// Driver returns the driver the entity loads and saves through.
func (e *Entity) Driver() driver.Driver {
	return e.driver
}

// TableName returns the bound table, "" when there is none.
func (e *Entity) TableName() string {
	return e.table
}

// ID returns the row id or nil.
func (e *Entity) ID() any {
	return e.id
}

// PrimaryKey returns the id as an int64 when it is set and numeric.
func (e *Entity) PrimaryKey() (int64, bool) {
	if e.id == nil {
		return 0, false
	}
	return driver.ToInt64(e.id)
}

// Load adopts source as the entity's data. A *record.Record or
// map[string]any is used directly; anything else is taken as a row id and
// loaded through the driver.
func (e *Entity) Load(ctx context.Context, source any) error {
	switch data := source.(type) {
	case *record.Record:
		e.LoadRecord(data)
		return nil
	case map[string]any:
		e.LoadRecord(record.FromMap(data))
		return nil
	}

	id, ok := driver.ToInt64(source)
	if !ok {
		return errors.NewValidationError("id", fmt.Sprintf("cannot load %s by %T", e.table, source))
	}
	return e.LoadID(ctx, id)
}

// LoadRecord replaces the entity's data with a copy of data. When data is
// not empty its "id" field, possibly missing, becomes the entity id.
func (e *Entity) LoadRecord(data *record.Record) *Entity {
	e.adopt(data.Clone())
	return e
}

// LoadID loads the row with id from the bound table. A missing row leaves
// the entity empty.
func (e *Entity) LoadID(ctx context.Context, id int64) error {
	if e.table == "" {
		return nil
	}
	data, err := e.driver.Load(ctx, e.table, id)
	if err != nil {
		return fmt.Errorf("failed to load %s %d: %w", e.table, id, err)
	}
	e.adopt(data)
	return nil
}

func (e *Entity) adopt(data *record.Record) {
	if data == nil {
		data = record.New()
	}
	e.data = data
	if data.Len() > 0 {
		e.id = data.Get("id")
		data.Delete("id")
	}
}

// Save inserts the entity when it has no id and adopts the generated id,
// otherwise it updates the row. Without a table it does nothing.
func (e *Entity) Save(ctx context.Context) error {
	if e.table == "" {
		return nil
	}

	if e.id == nil {
		id, err := e.driver.Insert(ctx, e.table, e.fields())
		if err != nil {
			return fmt.Errorf("failed to insert %s: %w", e.table, err)
		}
		e.id = id
		return nil
	}

	id, ok := e.PrimaryKey()
	if !ok {
		return errors.NewValidationError("id", fmt.Sprintf("%v is not a numeric id", e.id))
	}
	if err := e.driver.Update(ctx, e.table, id, e.fields()); err != nil {
		return fmt.Errorf("failed to update %s %d: %w", e.table, id, err)
	}
	return nil
}

func (e *Entity) fields() *record.Record {
	if e.data == nil {
		return record.New()
	}
	return e.data
}

// Get returns the value of field, or nil. A dotted name that is not a field
// of its own is resolved through nested records and maps, so
// Get("address.city") reads the city of the address field.
func (e *Entity) Get(field string) any {
	if v, ok := e.data.Lookup(field); ok {
		return v
	}
	if e.data == nil || !strings.Contains(field, ".") {
		return nil
	}
	return record.Path(e.data, field)
}

// Set stores value under field.
func (e *Entity) Set(field string, value any) *Entity {
	if e.data == nil {
		e.data = record.New()
	}
	e.data.Set(field, value)
	return e
}

// Has reports whether field is present, even when it holds nil.
func (e *Entity) Has(field string) bool {
	return e.data.Has(field)
}

// Call dispatches an accessor by name: getUserName returns the user_name
// field and setUserName(v) stores v and returns e. Any other name is
// accepted and returns e.
func (e *Entity) Call(method string, args ...any) any {
	field := naming.FunctionToField(method)
	switch naming.Verb(method) {
	case "get":
		return e.Get(field)
	case "set":
		var value any
		if len(args) > 0 {
			value = args[0]
		}
		return e.Set(field, value)
	}
	return e
}

// IsEmpty reports whether no row has been loaded or saved.
func (e *Entity) IsEmpty() bool {
	return e.id == nil
}

// ToArray returns a copy of the data with "id" first when it is set.
func (e *Entity) ToArray() *record.Record {
	out := record.New()
	if e.id != nil {
		out.Set("id", e.id)
	}
	e.data.Range(func(k string, v any) bool {
		out.Set(k, v)
		return true
	})
	return out
}

// ToTable renders the entity as a single-row table headed by its field names.
func (e *Entity) ToTable() string {
	data := e.ToArray()
	return table.Format([]*record.Record{data}, table.Labels(data.Keys()...))
}

func (e *Entity) String() string {
	return e.ToTable()
}

// MarshalJSON encodes ToArray.
func (e *Entity) MarshalJSON() ([]byte, error) {
	return e.ToArray().MarshalJSON()
}
