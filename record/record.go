/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package record provides the insertion-ordered field mapping that carries
// rows between drivers, entities, collections and the table renderer.
package record

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Record is an ordered mapping of field name to value. Iteration and JSON
// encoding follow insertion order. The zero value is an empty record ready
// to use; a nil *Record reads as empty.
type Record struct {
	m *orderedmap.OrderedMap[string, any]
}

// New returns an empty record.
func New() *Record {
	return &Record{m: orderedmap.New[string, any]()}
}

// Of builds a record from alternating key/value arguments, e.g.
// record.Of("id", 1, "name", "alice"). It panics on an odd argument count
// or a non-string key, which are programming errors.
func Of(kv ...any) *Record {
	if len(kv)%2 != 0 {
		panic(fmt.Sprintf("record: Of called with odd argument count %d", len(kv)))
	}
	r := New()
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			panic(fmt.Sprintf("record: Of key at position %d is %T, not string", i, kv[i]))
		}
		r.Set(key, kv[i+1])
	}
	return r
}

// FromMap copies m into a record. Go maps carry no order, so keys are
// added in sorted order with "id" first when present.
func FromMap(m map[string]any) *Record {
	r := New()
	if v, ok := m["id"]; ok {
		r.Set("id", v)
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		if k != "id" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		r.Set(k, m[k])
	}
	return r
}

func (r *Record) init() {
	if r.m == nil {
		r.m = orderedmap.New[string, any]()
	}
}

// Get returns the value stored under key, or nil.
func (r *Record) Get(key string) any {
	v, _ := r.Lookup(key)
	return v
}

// Lookup returns the value stored under key and whether it was present.
func (r *Record) Lookup(key string) (any, bool) {
	if r == nil || r.m == nil {
		return nil, false
	}
	return r.m.Get(key)
}

// Has reports whether key is present, even with a nil value.
func (r *Record) Has(key string) bool {
	_, ok := r.Lookup(key)
	return ok
}

// Set stores value under key. Existing keys keep their position.
func (r *Record) Set(key string, value any) *Record {
	r.init()
	r.m.Set(key, value)
	return r
}

// Delete removes key and reports whether it was present.
func (r *Record) Delete(key string) bool {
	if r == nil || r.m == nil {
		return false
	}
	_, ok := r.m.Delete(key)
	return ok
}

// Len returns the number of fields.
func (r *Record) Len() int {
	if r == nil || r.m == nil {
		return 0
	}
	return r.m.Len()
}

// Range calls fn for each field in insertion order until fn returns false.
func (r *Record) Range(fn func(key string, value any) bool) {
	if r == nil || r.m == nil {
		return
	}
	for pair := r.m.Oldest(); pair != nil; pair = pair.Next() {
		if !fn(pair.Key, pair.Value) {
			return
		}
	}
}

// Keys returns the field names in insertion order.
func (r *Record) Keys() []string {
	keys := make([]string, 0, r.Len())
	r.Range(func(k string, _ any) bool {
		keys = append(keys, k)
		return true
	})
	return keys
}

// Values returns the field values in insertion order.
func (r *Record) Values() []any {
	values := make([]any, 0, r.Len())
	r.Range(func(_ string, v any) bool {
		values = append(values, v)
		return true
	})
	return values
}

// Clone returns a shallow copy with the same order.
func (r *Record) Clone() *Record {
	c := New()
	r.Range(func(k string, v any) bool {
		c.Set(k, v)
		return true
	})
	return c
}

// Map returns the fields as a plain map; order is lost.
func (r *Record) Map() map[string]any {
	m := make(map[string]any, r.Len())
	r.Range(func(k string, v any) bool {
		m[k] = v
		return true
	})
	return m
}

// Equal reports whether both records hold the same keys in the same order
// with deeply equal values.
func (r *Record) Equal(o *Record) bool {
	return reflect.DeepEqual(r.Keys(), o.Keys()) && reflect.DeepEqual(r.Values(), o.Values())
}

func (r *Record) String() string {
	var b strings.Builder
	b.WriteByte('{')
	first := true
	r.Range(func(k string, v any) bool {
		if !first {
			b.WriteString(", ")
		}
		first = false
		fmt.Fprintf(&b, "%s: %v", k, v)
		return true
	})
	b.WriteByte('}')
	return b.String()
}

// MarshalJSON encodes the record as a JSON object in insertion order.
func (r *Record) MarshalJSON() ([]byte, error) {
	if r == nil || r.m == nil {
		return []byte("{}"), nil
	}
	return r.m.MarshalJSON()
}

// UnmarshalJSON decodes a JSON object keeping the document's key order.
func (r *Record) UnmarshalJSON(data []byte) error {
	r.init()
	return r.m.UnmarshalJSON(data)
}

// Path walks nested records (or plain maps) along a dot-separated path such
// as "address.city" and returns nil when any step is missing.
func Path(r *Record, path string) any {
	var current any = r
	for _, step := range strings.Split(path, ".") {
		switch node := current.(type) {
		case *Record:
			v, ok := node.Lookup(step)
			if !ok {
				return nil
			}
			current = v
		case map[string]any:
			v, ok := node[step]
			if !ok {
				return nil
			}
			current = v
		default:
			return nil
		}
	}
	return current
}
