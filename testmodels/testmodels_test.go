/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package testmodels_test

import (
	"context"
	"testing"
	"time"

	"github.com/go-openapi/strfmt"

	"github.com/suparena/entitydb"
	"github.com/suparena/entitydb/driver/mock"
	"github.com/suparena/entitydb/record"
	"github.com/suparena/entitydb/testmodels"
)

func seedUsers(db *mock.Driver) {
	db.SetRows("user",
		record.Of("id", 1, "name", "alice", "email", "alice@example.com", "status", "active", "created_at", "2025-01-02T03:04:05.000Z"),
		record.Of("id", 2, "name", "bob", "email", "bob@example.com", "status", "blocked"),
	)
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	db := mock.New()
	seedUsers(db)

	em := entitydb.NewEntityManager(db, entitydb.WithNamespace(testmodels.Namespace))
	users, err := entitydb.GetRepositoryAs[*testmodels.UserRepository](em, "user")
	if err != nil {
		t.Fatalf("Expected a UserRepository: %v", err)
	}

	t.Run("FindByEmail", func(t *testing.T) {
		alice, err := users.FindByEmail(ctx, "alice@example.com")
		if err != nil {
			t.Fatalf("FindByEmail failed: %v", err)
		}
		if alice.Name() != "alice" || !alice.IsActive() {
			t.Errorf("Unexpected user %v", alice.ToArray())
		}
		if id, _ := alice.PrimaryKey(); id != 1 {
			t.Errorf("Expected id 1, got %v", alice.ID())
		}

		created, err := alice.CreatedAt()
		if err != nil {
			t.Fatalf("CreatedAt failed: %v", err)
		}
		if created.String() != "2025-01-02T03:04:05.000Z" {
			t.Errorf("Unexpected created_at %s", created)
		}
	})

	t.Run("FindActive", func(t *testing.T) {
		active, err := users.FindActive(ctx)
		if err != nil {
			t.Fatalf("FindActive failed: %v", err)
		}
		if active.Count() != 1 {
			t.Fatalf("Expected 1 active user, got %d", active.Count())
		}
		if _, ok := active.Last().(*testmodels.UserEntity); !ok {
			t.Errorf("Expected *UserEntity, got %T", active.Last())
		}
	})

	t.Run("TypedSetters", func(t *testing.T) {
		user := em.CreateEntity("user", nil).(*testmodels.UserEntity)
		user.SetName("carol")
		user.SetEmail("carol@example.com")
		user.SetStatus("active")
		user.SetCreatedAt(strfmt.DateTime(time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)))

		if err := user.Save(ctx); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		if id, _ := user.PrimaryKey(); id != 3 {
			t.Errorf("Expected generated id 3, got %v", user.ID())
		}
		row := db.Rows("user")[2]
		if row.Get("created_at") != "2025-03-04T05:06:07.000Z" {
			t.Errorf("Unexpected stored created_at %v", row.Get("created_at"))
		}
	})

	t.Run("UnsetCreatedAt", func(t *testing.T) {
		bob, err := users.FindByEmail(ctx, "bob@example.com")
		if err != nil {
			t.Fatalf("FindByEmail failed: %v", err)
		}
		created, err := bob.CreatedAt()
		if err != nil || !time.Time(created).IsZero() {
			t.Errorf("Expected zero date-time, got %v (%v)", created, err)
		}
	})
}

func TestEntitiesNamespaceOverride(t *testing.T) {
	db := mock.New()
	seedUsers(db)

	em := entitydb.NewEntityManager(db, entitydb.WithNamespace(testmodels.Namespace))
	em.SetEntitiesNamespace("other.")

	users, err := entitydb.GetRepositoryAs[*testmodels.UserRepository](em, "user")
	if err != nil {
		t.Fatalf("Expected a UserRepository: %v", err)
	}
	if _, err := users.FindByEmail(context.Background(), "alice@example.com"); err == nil {
		t.Error("Expected generic entities when the entities namespace names no custom type")
	}
}

func TestRatingSystemEntity(t *testing.T) {
	db := mock.New()
	em := entitydb.NewEntityManager(db)
	em.SetEntitiesNamespace(testmodels.Namespace)

	m := em.CreateEntity("rating_system", record.Of(
		"id", 4,
		"name", "elo",
		"description", "pairwise skill rating",
		"updated_at", "2025-05-06T07:08:09.000Z",
	))
	rs, ok := m.(*testmodels.RatingSystemEntity)
	if !ok {
		t.Fatalf("Expected *RatingSystemEntity, got %T", m)
	}
	if rs.Name() != "elo" || rs.Description() != "pairwise skill rating" || rs.SiteURL() != "" {
		t.Errorf("Unexpected fields %v", rs.ToArray())
	}
	if updated, err := rs.UpdatedAt(); err != nil || updated.String() != "2025-05-06T07:08:09.000Z" {
		t.Errorf("Unexpected updated_at %v (%v)", updated, err)
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	reg := entitydb.NewRegistry()
	if err := testmodels.Register(reg); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := testmodels.Register(reg); err == nil {
		t.Error("Expected the second registration to fail")
	}
	if got := reg.Entities(); len(got) != 2 {
		t.Errorf("Expected 2 entity types, got %v", got)
	}
}
