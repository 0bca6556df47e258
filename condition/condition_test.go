/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package condition

import (
	"reflect"
	"testing"

	"github.com/suparena/entitydb/errors"
	"github.com/suparena/entitydb/record"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name     string
		cond     Condition
		expected string
	}{
		{name: "nil", cond: nil, expected: "1 = 1"},
		{name: "true", cond: True(), expected: "1 = 1"},
		{name: "string leaf", cond: Eq("field", "value"), expected: `field = "value"`},
		{name: "int leaf", cond: Eq("field", 5), expected: "field = 5"},
		{name: "int64 leaf", cond: Eq("id", int64(7)), expected: "id = 7"},
		{name: "null leaf", cond: Eq("field", nil), expected: "field = NULL"},
		{name: "float leaf", cond: Eq("price", 1.5), expected: `price = "1.5"`},
		{name: "numeric string stays quoted", cond: Eq("code", "5"), expected: `code = "5"`},
		{name: "quotes are not escaped", cond: Eq("name", `a"b`), expected: `name = "a"b"`},
		{
			name:     "or group",
			cond:     Or(Eq("f", "1"), Eq("f", "2")),
			expected: `(f = "1" or f = "2")`,
		},
		{
			name: "nested groups",
			cond: And(
				Or(Eq("field1", "value1"), Eq("field1", "value2")),
				Or(Eq("field2", "value3"), Eq("field2", "value4")),
			),
			expected: `((field1 = "value1" or field1 = "value2") and (field2 = "value3" or field2 = "value4"))`,
		},
		{
			name:     "operator case preserved",
			cond:     Group{Operator: "AND", Conditions: []Condition{Eq("a", 1), Eq("b", 2)}},
			expected: "(a = 1 AND b = 2)",
		},
		{name: "empty group", cond: And(), expected: "()"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Build(tt.cond)
			if err != nil {
				t.Fatalf("Build failed: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Build = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestBuildRejectsUnknownOperator(t *testing.T) {
	_, err := Build(Group{Operator: "xor", Conditions: []Condition{Eq("a", 1)}})
	if !errors.IsInvalidConditionOperator(err) {
		t.Fatalf("Expected invalid operator error, got %v", err)
	}
}

func TestBuildArgs(t *testing.T) {
	tree := And(Eq("name", `o"brien`), Or(Eq("age", 30), Eq("deleted_at", nil)))

	tests := []struct {
		name     string
		ph       Placeholder
		expected string
	}{
		{name: "question", ph: PlaceholderQuestion, expected: "(name = ? and (age = ? or deleted_at = NULL))"},
		{name: "dollar", ph: PlaceholderDollar, expected: "(name = $1 and (age = $2 or deleted_at = NULL))"},
		{name: "at p", ph: PlaceholderAtP, expected: "(name = @p1 and (age = @p2 or deleted_at = NULL))"},
		{name: "colon", ph: PlaceholderColonNum, expected: "(name = :1 and (age = :2 or deleted_at = NULL))"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args, err := BuildArgs(tree, tt.ph)
			if err != nil {
				t.Fatalf("BuildArgs failed: %v", err)
			}
			if where != tt.expected {
				t.Errorf("BuildArgs = %q, want %q", where, tt.expected)
			}
			if !reflect.DeepEqual(args, []any{`o"brien`, 30}) {
				t.Errorf("Unexpected args %v", args)
			}
		})
	}

	where, args, err := BuildArgs(True(), PlaceholderQuestion)
	if err != nil || where != "1 = 1" || len(args) != 0 {
		t.Errorf("BuildArgs(True) = %q, %v, %v", where, args, err)
	}
}

func TestBuildTree(t *testing.T) {
	tests := []struct {
		name     string
		tree     any
		expected string
	}{
		{name: "empty", tree: map[string]any{}, expected: "1 = 1"},
		{name: "leaf", tree: map[string]any{"field": "value"}, expected: `field = "value"`},
		{
			name: "or",
			tree: map[string]any{"or": []any{
				map[string]any{"field1": "value1"},
				map[string]any{"field1": "value2"},
			}},
			expected: `(field1 = "value1" or field1 = "value2")`,
		},
		{
			name: "nested and",
			tree: map[string]any{"and": []map[string]any{
				{"or": []any{map[string]any{"field1": "value1"}, map[string]any{"field1": "value2"}}},
				{"or": []any{map[string]any{"field2": "value3"}, map[string]any{"field2": "value4"}}},
			}},
			expected: `((field1 = "value1" or field1 = "value2") and (field2 = "value3" or field2 = "value4"))`,
		},
		{
			name:     "upper case operator from record",
			tree:     record.Of("OR", []*record.Record{record.Of("a", 1), record.Of("b", nil)}),
			expected: "(a = 1 OR b = NULL)",
		},
		{
			name:     "typed condition passes through",
			tree:     Eq("id", 7),
			expected: "id = 7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildTree(tt.tree)
			if err != nil {
				t.Fatalf("BuildTree failed: %v", err)
			}
			if got != tt.expected {
				t.Errorf("BuildTree = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestBuildTreeErrors(t *testing.T) {
	t.Run("not a tree", func(t *testing.T) {
		_, err := BuildTree("sql")
		if !errors.IsInvalidConditionInput(err) {
			t.Fatalf("Expected invalid input error, got %v", err)
		}
		expected := "condition builder expects a mapping as input, got string"
		if err.Error() != expected {
			t.Errorf("Expected %q, got %q", expected, err.Error())
		}
	})

	t.Run("nil", func(t *testing.T) {
		if _, err := BuildTree(nil); !errors.IsInvalidConditionInput(err) {
			t.Fatalf("Expected invalid input error, got %v", err)
		}
	})

	t.Run("unknown delimiter", func(t *testing.T) {
		_, err := BuildTree(map[string]any{"xor": map[string]any{"foo": "bar", "omg": "wtf"}})
		if !errors.IsInvalidConditionOperator(err) {
			t.Fatalf("Expected invalid operator error, got %v", err)
		}
		expected := `condition logic delimiter expected to be "or" or "and", got xor`
		if err.Error() != expected {
			t.Errorf("Expected %q, got %q", expected, err.Error())
		}
	})

	t.Run("several leaves in one mapping", func(t *testing.T) {
		_, err := BuildTree(record.Of("a", 1, "b", 2))
		var opErr *errors.InvalidConditionOperatorError
		if !asOperatorError(err, &opErr) || opErr.Operator != "a" {
			t.Fatalf("Expected invalid operator error naming a, got %v", err)
		}
	})

	t.Run("group next to a leaf", func(t *testing.T) {
		children := []any{map[string]any{"a": 1}}
		inputs := map[string]any{
			"map":            map[string]any{"and": children, "x": 1},
			"record":         record.Of("and", children, "x", 1),
			"record reverse": record.Of("x", 1, "AND", children),
		}
		for name, input := range inputs {
			_, err := BuildTree(input)
			var opErr *errors.InvalidConditionOperatorError
			if !asOperatorError(err, &opErr) || opErr.Operator != "x" {
				t.Errorf("%s: expected invalid operator error naming x, got %v", name, err)
			}
		}
	})

	t.Run("two groups in one mapping", func(t *testing.T) {
		children := []any{map[string]any{"a": 1}}
		_, err := BuildTree(record.Of("and", children, "or", children))
		var opErr *errors.InvalidConditionOperatorError
		if !asOperatorError(err, &opErr) || opErr.Operator != "or" {
			t.Fatalf("Expected invalid operator error naming or, got %v", err)
		}
	})

	t.Run("logical key without list", func(t *testing.T) {
		if _, err := BuildTree(map[string]any{"and": "x"}); !errors.IsInvalidConditionInput(err) {
			t.Fatalf("Expected invalid input error, got %v", err)
		}
	})

	t.Run("bad child", func(t *testing.T) {
		if _, err := BuildTree(map[string]any{"or": []any{map[string]any{"a": 1}, 5}}); !errors.IsInvalidConditionInput(err) {
			t.Fatalf("Expected invalid input error, got %v", err)
		}
	})
}

func TestPlaceholderFor(t *testing.T) {
	tests := map[string]Placeholder{
		"sqlite":    PlaceholderQuestion,
		"mysql":     PlaceholderQuestion,
		"pgx":       PlaceholderDollar,
		"Postgres":  PlaceholderDollar,
		"sqlserver": PlaceholderAtP,
		"godror":    PlaceholderColonNum,
	}
	for name, expected := range tests {
		if got := PlaceholderFor(name); got != expected {
			t.Errorf("PlaceholderFor(%q) = %v, want %v", name, got, expected)
		}
	}
}

func asOperatorError(err error, target **errors.InvalidConditionOperatorError) bool {
	e, ok := err.(*errors.InvalidConditionOperatorError)
	if ok {
		*target = e
	}
	return ok
}
