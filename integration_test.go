/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entitydb_test

import (
	"context"
	"testing"
	"time"

	"github.com/go-openapi/strfmt"

	"github.com/suparena/entitydb"
	"github.com/suparena/entitydb/driver"
	"github.com/suparena/entitydb/driver/sqldb"
	"github.com/suparena/entitydb/record"
	"github.com/suparena/entitydb/testmodels"
)

func openUserDB(t *testing.T) *sqldb.DB {
	t.Helper()
	ctx := context.Background()

	db, err := sqldb.OpenSQLite(ctx, ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})

	schema := `CREATE TABLE user (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT,
		email TEXT,
		status TEXT,
		created_at TEXT
	)`
	if err := db.Query(ctx, schema); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
	return db
}

func TestSQLiteEndToEnd(t *testing.T) {
	ctx := context.Background()
	db := openUserDB(t)

	em := entitydb.NewEntityManager(db,
		entitydb.WithNamespace(testmodels.Namespace),
		entitydb.WithRepositoryOptions(entitydb.WithPlaceholders(db.Placeholder())),
	)
	users, err := entitydb.GetRepositoryAs[*testmodels.UserRepository](em, "user")
	if err != nil {
		t.Fatalf("Expected a UserRepository: %v", err)
	}

	alice := em.CreateEntity("user", nil).(*testmodels.UserEntity)
	alice.SetName("alice")
	alice.SetEmail("alice@example.com")
	alice.SetStatus("active")
	alice.SetCreatedAt(strfmt.DateTime(time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)))

	bob := em.CreateEntity("user", record.Of("name", "bob", "email", "bob@example.com", "status", "active")).(*testmodels.UserEntity)

	for _, u := range []*testmodels.UserEntity{alice, bob} {
		if err := u.Save(ctx); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}
	if alice.ID() != int64(1) || bob.ID() != int64(2) {
		t.Fatalf("Expected ids 1 and 2, got %v and %v", alice.ID(), bob.ID())
	}

	t.Run("FindByEmail", func(t *testing.T) {
		found, err := users.FindByEmail(ctx, "alice@example.com")
		if err != nil {
			t.Fatalf("FindByEmail failed: %v", err)
		}
		if found.ID() != int64(1) || found.Name() != "alice" {
			t.Errorf("Unexpected user %v", found.ToArray())
		}
		created, err := found.CreatedAt()
		if err != nil || created.String() != "2025-01-02T03:04:05.000Z" {
			t.Errorf("Unexpected created_at %v (%v)", created, err)
		}
	})

	t.Run("UpdateAndFind", func(t *testing.T) {
		alice.SetStatus("blocked")
		if err := alice.Save(ctx); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		active, err := users.FindActive(ctx)
		if err != nil {
			t.Fatalf("FindActive failed: %v", err)
		}
		last, ok := active.Last().(*testmodels.UserEntity)
		if active.Count() != 1 || !ok || last.Name() != "bob" {
			t.Errorf("Expected only bob to be active, got %v", active.Rows())
		}
	})

	t.Run("GetAllJSON", func(t *testing.T) {
		all, err := users.GetAll(ctx)
		if err != nil {
			t.Fatalf("GetAll failed: %v", err)
		}
		got, err := all.ToJSON()
		if err != nil {
			t.Fatalf("ToJSON failed: %v", err)
		}
		expected := `[{"id":1,"name":"alice","email":"alice@example.com","status":"blocked","created_at":"2025-01-02T03:04:05.000Z"},` +
			`{"id":2,"name":"bob","email":"bob@example.com","status":"active","created_at":null}]`
		if got != expected {
			t.Errorf("Unexpected JSON\n got: %s\nwant: %s", got, expected)
		}
	})

	t.Run("LiteralMode", func(t *testing.T) {
		repo := entitydb.NewRepository(db, "user")
		m, err := repo.FindOneByID(ctx, 2)
		if err != nil {
			t.Fatalf("FindOneByID failed: %v", err)
		}
		if m.Base().Get("name") != "bob" {
			t.Errorf("Expected bob, got %v", m.ToArray())
		}
	})

	t.Run("RawQueries", func(t *testing.T) {
		keyed, err := em.Driver().Select(ctx, "SELECT email AS ARRAY_KEY, name FROM user ORDER BY id")
		if err != nil {
			t.Fatalf("Select failed: %v", err)
		}
		byEmail := driver.KeyRows(keyed)
		if row, _ := byEmail.Get("bob@example.com").(*record.Record); row == nil || row.Get("name") != "bob" {
			t.Errorf("Unexpected keyed rows %v", byEmail)
		}

		count, err := em.Driver().GetCell(ctx, "SELECT COUNT(*) FROM user")
		if err != nil || count != int64(2) {
			t.Errorf("Expected 2 users, got %v (%v)", count, err)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := users.Delete(ctx, alice); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		all, err := users.GetAll(ctx)
		if err != nil {
			t.Fatalf("GetAll failed: %v", err)
		}
		if all.Count() != 1 {
			t.Errorf("Expected 1 user after delete, got %d", all.Count())
		}

		reloaded := entitydb.NewEntity(db, "user")
		if err := reloaded.Load(ctx, 1); err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if !reloaded.IsEmpty() {
			t.Error("Deleted row should load as an empty entity")
		}
	})
}
