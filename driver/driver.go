/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package driver

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/suparena/entitydb/condition"
	"github.com/suparena/entitydb/record"
)

// ArrayKey is the column alias that asks for a result set keyed by value
// instead of by position, e.g. `SELECT name AS ARRAY_KEY, age FROM users`.
const ArrayKey = "ARRAY_KEY"

// Driver executes raw SQL and row-level CRUD by table and numeric id.
//
// Rows come back as ordered records in result-set column order. A lookup
// that matches nothing yields an empty record, never nil. Implementations
// wrap backend failures with errors.NewDriverFailureError.
type Driver interface {
	// Select runs a statement and returns every row.
	Select(ctx context.Context, query string, args ...any) ([]*record.Record, error)

	// Query runs a statement and discards any result.
	Query(ctx context.Context, query string, args ...any) error

	// GetRow returns the first row of the result, or an empty record.
	GetRow(ctx context.Context, query string, args ...any) (*record.Record, error)

	// GetColumn returns the first column of every row.
	GetColumn(ctx context.Context, query string, args ...any) ([]any, error)

	// GetCell returns the first column of the first row, or nil.
	GetCell(ctx context.Context, query string, args ...any) (any, error)

	// Load returns the row of table with the given id, or an empty record.
	Load(ctx context.Context, table string, id int64) (*record.Record, error)

	// Insert adds a row and returns its generated id.
	Insert(ctx context.Context, table string, data *record.Record) (int64, error)

	// Update overwrites the given fields of the row with id.
	Update(ctx context.Context, table string, id int64, data *record.Record) error

	// Delete removes the row with id. Deleting a missing row is not an error.
	Delete(ctx context.Context, table string, id int64) error
}

// PlaceholderRequirer is implemented by drivers whose query language has no
// literal form for condition values. Repositories over such a driver always
// bind values in the reported style.
type PlaceholderRequirer interface {
	RequiredPlaceholder() condition.Placeholder
}

// FirstRow returns the first row without its ArrayKey column, or an empty
// record.
func FirstRow(rows []*record.Record) *record.Record {
	if len(rows) == 0 || rows[0] == nil {
		return record.New()
	}
	return StripArrayKey(rows[0])
}

// FirstColumn returns the value of each row's first field other than
// ArrayKey. Rows without such a field are skipped.
func FirstColumn(rows []*record.Record) []any {
	column := make([]any, 0, len(rows))
	for _, row := range rows {
		if value, ok := firstValue(row); ok {
			column = append(column, value)
		}
	}
	return column
}

// FirstCell returns the first field other than ArrayKey of the first row,
// or nil.
func FirstCell(rows []*record.Record) any {
	if len(rows) == 0 {
		return nil
	}
	value, _ := firstValue(rows[0])
	return value
}

// StripArrayKey returns row without its ArrayKey column. A row that has no
// such column is returned as is.
func StripArrayKey(row *record.Record) *record.Record {
	if row == nil || !row.Has(ArrayKey) {
		return row
	}
	stripped := row.Clone()
	stripped.Delete(ArrayKey)
	return stripped
}

func firstValue(row *record.Record) (any, bool) {
	if row == nil {
		return nil, false
	}
	var (
		value any
		found bool
	)
	row.Range(func(key string, v any) bool {
		if key == ArrayKey {
			return true
		}
		value, found = v, true
		return false
	})
	return value, found
}

// KeyRows indexes rows by their ArrayKey column. The column is removed from
// each row. Rows without it are appended under the next free integer key,
// so a result set without the alias comes back keyed 0..n-1.
func KeyRows(rows []*record.Record) *record.Record {
	keyed := record.New()
	next := 0
	for _, row := range rows {
		key, ok := row.Lookup(ArrayKey)
		if !ok {
			for keyed.Has(strconv.Itoa(next)) {
				next++
			}
			keyed.Set(strconv.Itoa(next), row)
			next++
			continue
		}
		row = row.Clone()
		row.Delete(ArrayKey)
		name := fmt.Sprint(key)
		keyed.Set(name, row)
		if n, err := strconv.Atoi(name); err == nil && n >= next {
			next = n + 1
		}
	}
	return keyed
}

// ToInt64 coerces a row id into an int64. Integers, integral floats and
// decimal strings are accepted.
func ToInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case float32:
		return floatToInt64(float64(n))
	case float64:
		return floatToInt64(n)
	case string:
		id, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		return id, err == nil
	case []byte:
		return ToInt64(string(n))
	}
	return 0, false
}

func floatToInt64(f float64) (int64, bool) {
	if f != math.Trunc(f) || f > math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}
