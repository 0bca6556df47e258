/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"reflect"
	"sync"
	"testing"

	"github.com/suparena/entitydb/errors"
)

func TestRegistry(t *testing.T) {
	r := New[func() string]()

	if err := r.Register("app.UserEntity", func() string { return "user" }); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := r.Register("app.UserEntity", func() string { return "other" }); !errors.IsAlreadyExists(err) {
		t.Fatalf("Expected duplicate registration to fail with AlreadyExists, got %v", err)
	}

	f, ok := r.Lookup("app.UserEntity")
	if !ok || f() != "user" {
		t.Fatal("Lookup should return the first registered factory")
	}
	if _, err := r.Get("app.MissingEntity"); !errors.IsNotFound(err) {
		t.Errorf("Get should fail with NotFound for unknown names, got %v", err)
	}

	r.MustRegister("app.AEntity", func() string { return "a" })
	if got := r.Names(); !reflect.DeepEqual(got, []string{"app.AEntity", "app.UserEntity"}) {
		t.Errorf("Unexpected names %v", got)
	}

	if !r.Remove("app.AEntity") || r.Remove("app.AEntity") {
		t.Error("Remove should report presence exactly once")
	}
	if r.Len() != 1 {
		t.Errorf("Expected 1 factory, got %d", r.Len())
	}
}

func TestMustRegisterPanicsOnDuplicate(t *testing.T) {
	r := New[int]()
	r.MustRegister("x", 1)

	defer func() {
		if recover() == nil {
			t.Error("MustRegister should panic on duplicate names")
		}
	}()
	r.MustRegister("x", 2)
}

func TestConcurrentAccess(t *testing.T) {
	r := New[int]()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			r.Register(string(rune('a'+i%26))+"x", i)
		}(i)
		go func() {
			defer wg.Done()
			r.Names()
		}()
	}
	wg.Wait()
	if r.Len() != 26 {
		t.Errorf("Expected 26 distinct names, got %d", r.Len())
	}
}
