/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/suparena/entitydb/condition"
	"github.com/suparena/entitydb/driver"
	"github.com/suparena/entitydb/errors"
	"github.com/suparena/entitydb/record"
)

// DB implements driver.Driver on top of database/sql.
type DB struct {
	db          *sql.DB
	driverName  string
	placeholder condition.Placeholder
	logger      *zap.SugaredLogger
}

var _ driver.Driver = (*DB)(nil)

// Option configures a DB.
type Option func(*DB)

// WithLogger sets the logger statements are written to at debug level.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(d *DB) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithPlaceholder overrides the placeholder style derived from the driver name.
func WithPlaceholder(p condition.Placeholder) Option {
	return func(d *DB) {
		d.placeholder = p
	}
}

// New wraps an open *sql.DB. driverName selects the placeholder style and
// dialect details such as the empty INSERT form.
func New(db *sql.DB, driverName string, opts ...Option) *DB {
	d := &DB{
		db:          db,
		driverName:  driverName,
		placeholder: condition.PlaceholderFor(driverName),
		logger:      zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Open opens a database through a registered database/sql driver and
// verifies the connection.
func Open(ctx context.Context, driverName, dsn string, opts ...Option) (*DB, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driverName, err)
	}
	if strings.Contains(dsn, ":memory:") {
		// every connection to :memory: is a separate database
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to %s database: %w", driverName, err)
	}

	d := New(db, driverName, opts...)
	d.logger.Infow("database opened", "driver", driverName)
	return d, nil
}

// Close closes the underlying database.
func (d *DB) Close() error {
	return d.db.Close()
}

// DB exposes the underlying *sql.DB.
func (d *DB) DB() *sql.DB {
	return d.db
}

// DriverName returns the database/sql driver name.
func (d *DB) DriverName() string {
	return d.driverName
}

// Placeholder returns the parameter style used for generated statements.
func (d *DB) Placeholder() condition.Placeholder {
	return d.placeholder
}

// Select runs query and returns every row in column order. []byte values
// are returned as strings.
func (d *DB) Select(ctx context.Context, query string, args ...any) ([]*record.Record, error) {
	d.logger.Debugw("select", "sql", query, "args", args)

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.NewDriverFailureError("select", query, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, errors.NewDriverFailureError("select", query, err)
	}

	var result []*record.Record
	for rows.Next() {
		values := make([]any, len(columns))
		dest := make([]any, len(columns))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, errors.NewDriverFailureError("select", query, err)
		}

		row := record.New()
		for i, column := range columns {
			if b, ok := values[i].([]byte); ok {
				row.Set(column, string(b))
				continue
			}
			row.Set(column, values[i])
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDriverFailureError("select", query, err)
	}
	return result, nil
}

// Query runs a statement without reading results.
func (d *DB) Query(ctx context.Context, query string, args ...any) error {
	d.logger.Debugw("query", "sql", query, "args", args)

	if _, err := d.db.ExecContext(ctx, query, args...); err != nil {
		return errors.NewDriverFailureError("query", query, err)
	}
	return nil
}

// GetRow returns the first row of the result or an empty record.
func (d *DB) GetRow(ctx context.Context, query string, args ...any) (*record.Record, error) {
	rows, err := d.Select(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return driver.FirstRow(rows), nil
}

// GetColumn returns the first column of every row.
func (d *DB) GetColumn(ctx context.Context, query string, args ...any) ([]any, error) {
	rows, err := d.Select(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return driver.FirstColumn(rows), nil
}

// GetCell returns the first cell of the result or nil.
func (d *DB) GetCell(ctx context.Context, query string, args ...any) (any, error) {
	rows, err := d.Select(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return driver.FirstCell(rows), nil
}

// Load returns the row of table with id, or an empty record.
func (d *DB) Load(ctx context.Context, table string, id int64) (*record.Record, error) {
	query := fmt.Sprintf("SELECT * FROM %s WHERE id = %s", table, d.placeholder.Format(1))
	return d.GetRow(ctx, query, id)
}

// Insert adds a row with data bound as parameters and returns the generated id.
func (d *DB) Insert(ctx context.Context, table string, data *record.Record) (int64, error) {
	var query string
	args := data.Values()
	if len(args) == 0 {
		query = d.emptyInsert(table)
	} else {
		marks := make([]string, len(args))
		for i := range marks {
			marks[i] = d.placeholder.Format(i + 1)
		}
		query = fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
			table, strings.Join(data.Keys(), ", "), strings.Join(marks, ", "))
	}
	d.logger.Debugw("insert", "sql", query, "args", args)

	res, err := d.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, errors.NewDriverFailureError("insert", query, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, errors.NewDriverFailureError("insert", query, err)
	}
	return id, nil
}

// Update overwrites the fields of data on the row with id. An empty data
// record is a no-op.
func (d *DB) Update(ctx context.Context, table string, id int64, data *record.Record) error {
	if data.Len() == 0 {
		return nil
	}

	assignments := make([]string, 0, data.Len())
	args := make([]any, 0, data.Len()+1)
	data.Range(func(field string, value any) bool {
		args = append(args, value)
		assignments = append(assignments, field+" = "+d.placeholder.Format(len(args)))
		return true
	})
	args = append(args, id)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = %s",
		table, strings.Join(assignments, ", "), d.placeholder.Format(len(args)))

	return d.Query(ctx, query, args...)
}

// Delete removes the row with id.
func (d *DB) Delete(ctx context.Context, table string, id int64) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = %s", table, d.placeholder.Format(1))
	return d.Query(ctx, query, id)
}

func (d *DB) emptyInsert(table string) string {
	if strings.EqualFold(d.driverName, "mysql") {
		return fmt.Sprintf("INSERT INTO %s () VALUES ()", table)
	}
	return fmt.Sprintf("INSERT INTO %s DEFAULT VALUES", table)
}
