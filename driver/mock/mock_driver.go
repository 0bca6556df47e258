/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides an in-memory implementation of driver.Driver for testing
package mock

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"sync"

	"github.com/suparena/entitydb/driver"
	"github.com/suparena/entitydb/errors"
	"github.com/suparena/entitydb/record"
)

// Call is one recorded driver invocation.
type Call struct {
	Method string
	Query  string
	Args   []any
	Table  string
	ID     int64
	Data   *record.Record
}

// QueryFunc answers Select style calls in place of the built-in matcher.
type QueryFunc func(ctx context.Context, query string, args []any) ([]*record.Record, error)

// Driver is an in-memory driver.Driver. Tables are created on first write
// and ids auto-increment per table starting at 1.
//
// Without a QueryFunc, Select understands the statements the repository
// issues against a single table:
//
//	SELECT * FROM <table> WHERE 1 = 1
//	SELECT * FROM <table> WHERE <field> = <int|"string"|NULL|?>
//
// Anything else returns no rows.
type Driver struct {
	mu          sync.RWMutex
	tables      map[string]map[int64]*record.Record
	nextID      map[string]int64
	calls       []Call
	queryFunc   QueryFunc
	selectError error
	queryError  error
	loadError   error
	insertError error
	updateError error
	deleteError error
}

var _ driver.Driver = (*Driver)(nil)

// New creates a new mock Driver
func New() *Driver {
	return &Driver{
		tables: make(map[string]map[int64]*record.Record),
		nextID: make(map[string]int64),
	}
}

// WithQueryFunc sets a custom function answering Select, GetRow, GetColumn and GetCell
func (m *Driver) WithQueryFunc(f QueryFunc) *Driver {
	m.queryFunc = f
	return m
}

// WithSelectError makes Select style operations return an error
func (m *Driver) WithSelectError(err error) *Driver {
	m.selectError = err
	return m
}

// WithQueryError makes Query operations return an error
func (m *Driver) WithQueryError(err error) *Driver {
	m.queryError = err
	return m
}

// WithLoadError makes Load operations return an error
func (m *Driver) WithLoadError(err error) *Driver {
	m.loadError = err
	return m
}

// WithInsertError makes Insert operations return an error
func (m *Driver) WithInsertError(err error) *Driver {
	m.insertError = err
	return m
}

// WithUpdateError makes Update operations return an error
func (m *Driver) WithUpdateError(err error) *Driver {
	m.updateError = err
	return m
}

// WithDeleteError makes Delete operations return an error
func (m *Driver) WithDeleteError(err error) *Driver {
	m.deleteError = err
	return m
}

// Select returns rows matching the query
func (m *Driver) Select(ctx context.Context, query string, args ...any) ([]*record.Record, error) {
	m.record(Call{Method: "Select", Query: query, Args: args})
	return m.selectRows(ctx, query, args)
}

// Query records the statement and otherwise does nothing
func (m *Driver) Query(ctx context.Context, query string, args ...any) error {
	m.record(Call{Method: "Query", Query: query, Args: args})
	if m.queryError != nil {
		return errors.NewDriverFailureError("query", query, m.queryError)
	}
	return nil
}

// GetRow returns the first matching row or an empty record
func (m *Driver) GetRow(ctx context.Context, query string, args ...any) (*record.Record, error) {
	m.record(Call{Method: "GetRow", Query: query, Args: args})
	rows, err := m.selectRows(ctx, query, args)
	if err != nil {
		return nil, err
	}
	return driver.FirstRow(rows), nil
}

// GetColumn returns the first column of every matching row
func (m *Driver) GetColumn(ctx context.Context, query string, args ...any) ([]any, error) {
	m.record(Call{Method: "GetColumn", Query: query, Args: args})
	rows, err := m.selectRows(ctx, query, args)
	if err != nil {
		return nil, err
	}
	return driver.FirstColumn(rows), nil
}

// GetCell returns the first cell of the first matching row
func (m *Driver) GetCell(ctx context.Context, query string, args ...any) (any, error) {
	m.record(Call{Method: "GetCell", Query: query, Args: args})
	rows, err := m.selectRows(ctx, query, args)
	if err != nil {
		return nil, err
	}
	return driver.FirstCell(rows), nil
}

// Load returns a copy of the row with id, or an empty record
func (m *Driver) Load(ctx context.Context, table string, id int64) (*record.Record, error) {
	m.record(Call{Method: "Load", Table: table, ID: id})
	if m.loadError != nil {
		return nil, errors.NewDriverFailureError("load", table, m.loadError)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if row, ok := m.tables[table][id]; ok {
		return row.Clone(), nil
	}
	return record.New(), nil
}

// Insert stores a copy of data under the next id of table
func (m *Driver) Insert(ctx context.Context, table string, data *record.Record) (int64, error) {
	m.record(Call{Method: "Insert", Table: table, Data: data.Clone()})
	if m.insertError != nil {
		return 0, errors.NewDriverFailureError("insert", table, m.insertError)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID[table]++
	id := m.nextID[table]
	m.store(table, id, data)
	return id, nil
}

// Update merges data into the row with id. Missing rows are left alone, as
// an UPDATE matching nothing would.
func (m *Driver) Update(ctx context.Context, table string, id int64, data *record.Record) error {
	m.record(Call{Method: "Update", Table: table, ID: id, Data: data.Clone()})
	if m.updateError != nil {
		return errors.NewDriverFailureError("update", table, m.updateError)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	row, ok := m.tables[table][id]
	if !ok {
		return nil
	}
	data.Range(func(k string, v any) bool {
		if k != "id" {
			row.Set(k, v)
		}
		return true
	})
	return nil
}

// Delete removes the row with id
func (m *Driver) Delete(ctx context.Context, table string, id int64) error {
	m.record(Call{Method: "Delete", Table: table, ID: id})
	if m.deleteError != nil {
		return errors.NewDriverFailureError("delete", table, m.deleteError)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.tables[table], id)
	return nil
}

// Helper methods for testing

// SetRows replaces the content of table. Rows keep their "id" field when it
// is an integer and are numbered after the highest id otherwise.
func (m *Driver) SetRows(table string, rows ...*record.Record) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.tables[table] = make(map[int64]*record.Record, len(rows))
	m.nextID[table] = 0
	for _, row := range rows {
		id, ok := driver.ToInt64(row.Get("id"))
		if !ok {
			id = m.nextID[table] + 1
		}
		if id > m.nextID[table] {
			m.nextID[table] = id
		}
		m.store(table, id, row)
	}
}

// Rows returns copies of the rows of table ordered by id
func (m *Driver) Rows(table string) []*record.Record {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sortedRows(table)
}

// Count returns the number of rows in table
func (m *Driver) Count(table string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.tables[table])
}

// Calls returns a copy of the recorded calls
func (m *Driver) Calls() []Call {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Call(nil), m.calls...)
}

// CallsTo returns the recorded calls to method
func (m *Driver) CallsTo(method string) []Call {
	var out []Call
	for _, c := range m.Calls() {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

// LastQuery returns the statement of the most recent SQL call, or ""
func (m *Driver) LastQuery() string {
	calls := m.Calls()
	for i := len(calls) - 1; i >= 0; i-- {
		if calls[i].Query != "" {
			return calls[i].Query
		}
	}
	return ""
}

// Reset forgets the recorded calls
func (m *Driver) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}

// Clear removes all data and recorded calls
func (m *Driver) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables = make(map[string]map[int64]*record.Record)
	m.nextID = make(map[string]int64)
	m.calls = nil
}

func (m *Driver) record(c Call) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, c)
}

// store must be called with the write lock held.
func (m *Driver) store(table string, id int64, data *record.Record) {
	if m.tables[table] == nil {
		m.tables[table] = make(map[int64]*record.Record)
	}
	row := record.New().Set("id", id)
	data.Range(func(k string, v any) bool {
		if k != "id" {
			row.Set(k, v)
		}
		return true
	})
	m.tables[table][id] = row
}

// sortedRows must be called with the read lock held.
func (m *Driver) sortedRows(table string) []*record.Record {
	ids := make([]int64, 0, len(m.tables[table]))
	for id := range m.tables[table] {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	rows := make([]*record.Record, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, m.tables[table][id].Clone())
	}
	return rows
}

var (
	selectAll  = regexp.MustCompile(`^SELECT \* FROM (\w+) WHERE 1 = 1$`)
	selectLeaf = regexp.MustCompile(`^SELECT \* FROM (\w+) WHERE (\w+) = (-?\d+|"[^"]*"|NULL|\?)$`)
)

func (m *Driver) selectRows(ctx context.Context, query string, args []any) ([]*record.Record, error) {
	if m.selectError != nil {
		return nil, errors.NewDriverFailureError("select", query, m.selectError)
	}
	if m.queryFunc != nil {
		return m.queryFunc(ctx, query, args)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if match := selectAll.FindStringSubmatch(query); match != nil {
		return m.sortedRows(match[1]), nil
	}
	match := selectLeaf.FindStringSubmatch(query)
	if match == nil {
		return nil, nil
	}

	table, field, literal := match[1], match[2], match[3]
	var rows []*record.Record
	for _, row := range m.sortedRows(table) {
		if matches(row.Get(field), literal, args) {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func matches(value any, literal string, args []any) bool {
	switch {
	case literal == "NULL":
		return value == nil
	case literal == "?":
		if len(args) == 0 {
			return false
		}
		return equalValues(value, args[0])
	case literal[0] == '"':
		return value != nil && fmtValue(value) == literal[1:len(literal)-1]
	default:
		n, err := strconv.ParseInt(literal, 10, 64)
		if err != nil {
			return false
		}
		id, ok := driver.ToInt64(value)
		return ok && id == n
	}
}

func equalValues(a, b any) bool {
	if x, ok := driver.ToInt64(a); ok {
		if y, ok := driver.ToInt64(b); ok {
			return x == y
		}
	}
	return a != nil && b != nil && fmtValue(a) == fmtValue(b)
}

func fmtValue(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	}
	return fmt.Sprint(v)
}
