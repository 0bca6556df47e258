/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package record

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestRecordKeepsInsertionOrder(t *testing.T) {
	r := New().Set("b", 1).Set("a", 2).Set("c", nil)

	if got := r.Keys(); !reflect.DeepEqual(got, []string{"b", "a", "c"}) {
		t.Fatalf("Expected keys [b a c], got %v", got)
	}

	r.Set("b", 10)
	if got := r.Values(); !reflect.DeepEqual(got, []any{10, 2, nil}) {
		t.Fatalf("Expected values [10 2 <nil>], got %v", got)
	}

	if !r.Has("c") {
		t.Error("Has should report keys holding nil")
	}
	if r.Get("missing") != nil {
		t.Error("Get should return nil for a missing key")
	}

	if !r.Delete("a") || r.Delete("a") {
		t.Error("Delete should report presence exactly once")
	}
	if r.Len() != 2 {
		t.Errorf("Expected 2 fields, got %d", r.Len())
	}
}

func TestRecordNilAndZeroValue(t *testing.T) {
	var nilRecord *Record
	if nilRecord.Len() != 0 || nilRecord.Get("a") != nil || nilRecord.Has("a") {
		t.Error("nil record should read as empty")
	}

	var zero Record
	zero.Set("a", 1)
	if zero.Get("a") != 1 {
		t.Error("zero value record should be usable")
	}
}

func TestRecordJSON(t *testing.T) {
	r := Of("z", 1, "a", "x", "m", nil)

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `{"z":1,"a":"x","m":null}` {
		t.Fatalf("Unexpected JSON: %s", data)
	}

	var decoded Record
	if err := json.Unmarshal([]byte(`{"q":1,"b":2}`), &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if got := decoded.Keys(); !reflect.DeepEqual(got, []string{"q", "b"}) {
		t.Errorf("Expected decoded order [q b], got %v", got)
	}
}

func TestFromMapPutsIDFirst(t *testing.T) {
	r := FromMap(map[string]any{"name": "n", "id": 3, "age": 4})
	if got := r.Keys(); !reflect.DeepEqual(got, []string{"id", "age", "name"}) {
		t.Errorf("Expected [id age name], got %v", got)
	}
}

func TestCloneAndEqual(t *testing.T) {
	r := Of("a", 1, "b", 2)
	c := r.Clone()
	if !r.Equal(c) {
		t.Fatal("Clone should be equal to the original")
	}
	c.Set("c", 3)
	if r.Has("c") {
		t.Error("Clone should not share storage with the original")
	}
	if r.Equal(Of("b", 2, "a", 1)) {
		t.Error("Equal should be order sensitive")
	}
}

func TestPath(t *testing.T) {
	r := Of("a", "b", "c", Of("d", map[string]any{"e": "f"}))

	tests := []struct {
		name     string
		path     string
		expected any
	}{
		{name: "top level", path: "a", expected: "b"},
		{name: "nested record", path: "c.d.e", expected: "f"},
		{name: "missing", path: "x", expected: nil},
		{name: "through scalar", path: "a.b", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Path(r, tt.path); !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Path(%q) = %v, want %v", tt.path, got, tt.expected)
			}
		})
	}
}

func TestOfPanicsOnOddArguments(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Of should panic on an odd argument count")
		}
	}()
	Of("a")
}
