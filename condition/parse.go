/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package condition

import (
	"sort"
	"strings"

	"github.com/suparena/entitydb/errors"
	"github.com/suparena/entitydb/record"
)

// Parse converts a dynamic condition tree into a Condition. A tree is a
// mapping (map[string]any or *record.Record) that is either empty (always
// true), holds a single "and"/"or" key (any case) whose value is a list of
// trees, or holds a single field -> scalar pair:
//
//	map[string]any{"or": []any{
//	    map[string]any{"field1": "value1"},
//	    map[string]any{"field1": "value2"},
//	}}
//
// Anything that is not a mapping fails with an InvalidConditionInputError.
// A nested value under a key other than "and"/"or", or a mapping with more
// than one entry, fails with an InvalidConditionOperatorError naming the key
// found in operator position.
func Parse(tree any) (Condition, error) {
	switch node := tree.(type) {
	case Condition:
		return node, nil
	case *record.Record:
		if node == nil {
			return nil, errors.NewInvalidConditionInputError(tree)
		}
		return parsePairs(node.Keys(), node.Get)
	case map[string]any:
		keys := make([]string, 0, len(node))
		for k := range node {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return parsePairs(keys, func(k string) any { return node[k] })
	}
	return nil, errors.NewInvalidConditionInputError(tree)
}

func parsePairs(keys []string, get func(string) any) (Condition, error) {
	if len(keys) == 0 {
		return True(), nil
	}
	op, value := keys[0], get(keys[0])
	lower := strings.ToLower(op)
	if len(keys) == 1 && (lower == "and" || lower == "or") {
		children, ok := list(value)
		if !ok {
			return nil, errors.NewInvalidConditionInputError(value)
		}
		group := Group{Operator: op, Conditions: make([]Condition, 0, len(children))}
		for _, child := range children {
			c, err := Parse(child)
			if err != nil {
				return nil, err
			}
			group.Conditions = append(group.Conditions, c)
		}
		return group, nil
	}
	if len(keys) > 1 {
		return nil, errors.NewInvalidConditionOperatorError(extraKey(keys))
	}
	if nested(value) {
		return nil, errors.NewInvalidConditionOperatorError(op)
	}
	return Leaf{Field: op, Value: value}, nil
}

// extraKey names the entry that keeps a multi-key mapping from being a
// single group: the first key that is not a logic delimiter, or the second
// delimiter when every key is one.
func extraKey(keys []string) string {
	for _, k := range keys {
		if lower := strings.ToLower(k); lower != "and" && lower != "or" {
			return k
		}
	}
	return keys[1]
}

func list(v any) ([]any, bool) {
	switch l := v.(type) {
	case []any:
		return l, true
	case []map[string]any:
		out := make([]any, len(l))
		for i := range l {
			out[i] = l[i]
		}
		return out, true
	case []*record.Record:
		out := make([]any, len(l))
		for i := range l {
			out[i] = l[i]
		}
		return out, true
	case []Condition:
		out := make([]any, len(l))
		for i := range l {
			out[i] = l[i]
		}
		return out, true
	}
	return nil, false
}

func nested(v any) bool {
	switch v.(type) {
	case map[string]any, *record.Record, Condition:
		return true
	}
	_, ok := list(v)
	return ok
}
