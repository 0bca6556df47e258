/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mock_test

import (
	"context"
	stderrors "errors"
	"reflect"
	"testing"

	"github.com/suparena/entitydb/driver/mock"
	"github.com/suparena/entitydb/errors"
	"github.com/suparena/entitydb/record"
)

func TestMockDriver(t *testing.T) {
	ctx := context.Background()

	t.Run("BasicOperations", func(t *testing.T) {
		d := mock.New()

		id, err := d.Insert(ctx, "users", record.Of("name", "alice", "age", 30))
		if err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
		if id != 1 {
			t.Fatalf("Expected id 1, got %d", id)
		}

		row, err := d.Load(ctx, "users", id)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if got := row.Keys(); !reflect.DeepEqual(got, []string{"id", "name", "age"}) {
			t.Fatalf("Unexpected row keys %v", got)
		}

		if err := d.Update(ctx, "users", id, record.Of("age", 31)); err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		row, _ = d.Load(ctx, "users", id)
		if row.Get("age") != 31 || row.Get("name") != "alice" {
			t.Fatalf("Update did not merge fields: %v", row)
		}

		if err := d.Delete(ctx, "users", id); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		row, _ = d.Load(ctx, "users", id)
		if row.Len() != 0 {
			t.Fatalf("Expected empty row after delete, got %v", row)
		}

		next, _ := d.Insert(ctx, "users", record.New())
		if next != 2 {
			t.Errorf("Ids should not be reused, got %d", next)
		}
	})

	t.Run("ErrorSimulation", func(t *testing.T) {
		cause := stderrors.New("boom")
		d := mock.New().WithInsertError(cause).WithDeleteError(cause).WithSelectError(cause)

		if _, err := d.Insert(ctx, "users", record.New()); !errors.IsDriverFailure(err) || !stderrors.Is(err, cause) {
			t.Fatalf("Expected driver failure wrapping cause, got %v", err)
		}
		if err := d.Delete(ctx, "users", 1); !errors.IsDriverFailure(err) {
			t.Fatalf("Expected driver failure, got %v", err)
		}
		if _, err := d.GetRow(ctx, "SELECT * FROM users WHERE 1 = 1"); !errors.IsDriverFailure(err) {
			t.Fatalf("Expected driver failure, got %v", err)
		}
	})

	t.Run("SelectMatcher", func(t *testing.T) {
		d := mock.New()
		d.SetRows("users",
			record.Of("id", 3, "name", "carol", "role", "admin"),
			record.Of("id", 1, "name", "alice", "role", nil),
			record.Of("id", 2, "name", "bob", "role", "admin"),
		)

		tests := []struct {
			name  string
			query string
			args  []any
			names []any
		}{
			{name: "all", query: "SELECT * FROM users WHERE 1 = 1", names: []any{"alice", "bob", "carol"}},
			{name: "by id", query: "SELECT * FROM users WHERE id = 2", names: []any{"bob"}},
			{name: "by string", query: `SELECT * FROM users WHERE role = "admin"`, names: []any{"bob", "carol"}},
			{name: "by null", query: "SELECT * FROM users WHERE role = NULL", names: []any{"alice"}},
			{name: "by placeholder", query: "SELECT * FROM users WHERE name = ?", args: []any{"carol"}, names: []any{"carol"}},
			{name: "unknown statement", query: "SELECT count(*) FROM users", names: []any{}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				rows, err := d.Select(ctx, tt.query, tt.args...)
				if err != nil {
					t.Fatalf("Select failed: %v", err)
				}
				names := []any{}
				for _, row := range rows {
					names = append(names, row.Get("name"))
				}
				if !reflect.DeepEqual(names, tt.names) {
					t.Errorf("Expected %v, got %v", tt.names, names)
				}
			})
		}

		id, _ := d.Insert(ctx, "users", record.Of("name", "dave"))
		if id != 4 {
			t.Errorf("Expected id after seeded rows to be 4, got %d", id)
		}
	})

	t.Run("QueryFuncAndCalls", func(t *testing.T) {
		d := mock.New().WithQueryFunc(func(ctx context.Context, query string, args []any) ([]*record.Record, error) {
			return []*record.Record{record.Of("total", 9)}, nil
		})

		cell, err := d.GetCell(ctx, "SELECT count(*) AS total FROM users")
		if err != nil || cell != 9 {
			t.Fatalf("GetCell = %v, %v", cell, err)
		}
		column, _ := d.GetColumn(ctx, "SELECT total FROM users")
		if !reflect.DeepEqual(column, []any{9}) {
			t.Fatalf("GetColumn = %v", column)
		}
		if err := d.Query(ctx, "VACUUM"); err != nil {
			t.Fatalf("Query failed: %v", err)
		}

		if d.LastQuery() != "VACUUM" {
			t.Errorf("Unexpected last query %q", d.LastQuery())
		}
		if len(d.CallsTo("GetCell")) != 1 || len(d.Calls()) != 3 {
			t.Errorf("Unexpected calls %+v", d.Calls())
		}

		d.Reset()
		if len(d.Calls()) != 0 {
			t.Error("Reset should forget calls")
		}
	})
}
