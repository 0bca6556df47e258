/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entitydb

import (
	"context"
	"encoding/json"
	"iter"
	"math/rand/v2"
	"reflect"
	"slices"
	"strconv"

	"github.com/google/uuid"

	"github.com/suparena/entitydb/errors"
	"github.com/suparena/entitydb/record"
	"github.com/suparena/entitydb/table"
)

// Collection is an ordered container of Collectible elements. Every element
// sits in a slot with an integer key. Appending takes the next unused key
// and deleting leaves a gap; Prepend, Reverse, Shuffle and Sort renumber
// the slots from 0.
//
// A Collection is itself Collectible and is not safe for concurrent use.
type Collection struct {
	id    string
	slots []slot
	next  int
}

type slot struct {
	key  int
	item Collectible
}

var _ Collectible = (*Collection)(nil)

// NewCollection creates an empty collection, optionally holding items.
func NewCollection(items ...Collectible) *Collection {
	c := &Collection{id: uuid.NewString()}
	for _, item := range items {
		c.Add(item)
	}
	return c
}

// ID returns the collection's own random identifier.
func (c *Collection) ID() any {
	return c.id
}

// Add appends item. A nil item is ignored.
func (c *Collection) Add(item Collectible) *Collection {
	if item == nil {
		return c
	}
	c.slots = append(c.slots, slot{key: c.next, item: item})
	c.next++
	return c
}

// Push appends item.
func (c *Collection) Push(item Collectible) *Collection {
	return c.Add(item)
}

// Prepend inserts item before every other element.
func (c *Collection) Prepend(item Collectible) *Collection {
	if item == nil {
		return c
	}
	c.slots = append([]slot{{item: item}}, c.slots...)
	c.renumber()
	return c
}

// Pop removes and returns the last element, or nil when empty.
func (c *Collection) Pop() Collectible {
	if len(c.slots) == 0 {
		return nil
	}
	last := c.slots[len(c.slots)-1]
	c.slots = c.slots[:len(c.slots)-1]
	return last.item
}

// Delete removes an element. Given a Collectible it removes the first slot
// holding that element; given an int it removes the slot with that key.
// Absent elements and keys are ignored.
func (c *Collection) Delete(key any) *Collection {
	var i int
	switch k := key.(type) {
	case Collectible:
		i = c.indexOf(k)
	case int:
		i = c.indexOfKey(k)
	default:
		return c
	}
	if i >= 0 {
		c.slots = slices.Delete(c.slots, i, i+1)
	}
	return c
}

// Collect appends every element of a *Collection or of a slice whose
// elements implement Collectible. Any other source is ignored.
func (c *Collection) Collect(source any) *Collection {
	switch src := source.(type) {
	case *Collection:
		if src == nil {
			return c
		}
		for _, item := range src.Items() {
			c.Add(item)
		}
		return c
	case []Collectible:
		for _, item := range src {
			c.Add(item)
		}
		return c
	}

	v := reflect.ValueOf(source)
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return c
	}
	for i := 0; i < v.Len(); i++ {
		if item, ok := v.Index(i).Interface().(Collectible); ok {
			c.Add(item)
		}
	}
	return c
}

// Count returns the number of elements.
func (c *Collection) Count() int {
	return len(c.slots)
}

// Slice returns a new collection of the elements whose position p
// satisfies offset <= p < offset+limit. Negative values are compared as
// they are, so they never wrap around from the end.
func (c *Collection) Slice(offset, limit int) *Collection {
	result := NewCollection()
	for counter, s := range c.slots {
		if counter >= offset && counter < offset+limit {
			result.Add(s.item)
		}
	}
	return result
}

// Page returns the page-th page of perPage elements, counting from 0.
func (c *Collection) Page(page, perPage int) *Collection {
	return c.Slice(page*perPage, perPage)
}

// Items returns the elements in order.
func (c *Collection) Items() []Collectible {
	items := make([]Collectible, len(c.slots))
	for i, s := range c.slots {
		items[i] = s.item
	}
	return items
}

// Keys returns the slot keys in order.
func (c *Collection) Keys() []int {
	keys := make([]int, len(c.slots))
	for i, s := range c.slots {
		keys[i] = s.key
	}
	return keys
}

// All iterates the elements in order, keyed by each element's own ID.
func (c *Collection) All() iter.Seq2[any, Collectible] {
	return func(yield func(any, Collectible) bool) {
		for _, s := range c.Items() {
			if !yield(s.ID(), s) {
				return
			}
		}
	}
}

// ToArray returns each element's ToArray keyed by slot key.
func (c *Collection) ToArray() *record.Record {
	out := record.New()
	for _, s := range c.slots {
		out.Set(strconv.Itoa(s.key), s.item.ToArray())
	}
	return out
}

// Rows returns each element's ToArray in order.
func (c *Collection) Rows() []*record.Record {
	rows := make([]*record.Record, len(c.slots))
	for i, s := range c.slots {
		rows[i] = s.item.ToArray()
	}
	return rows
}

// MarshalJSON encodes the collection as a JSON array of its rows.
func (c *Collection) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Rows())
}

// ToJSON returns the JSON encoding of the collection.
func (c *Collection) ToJSON() (string, error) {
	data, err := c.MarshalJSON()
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ToTable renders the rows as a text table. Without headers the first
// row's field names are used as labels.
func (c *Collection) ToTable(headers *record.Record) string {
	rows := c.Rows()
	if headers.Len() == 0 && len(rows) > 0 && rows[0].Len() > 0 {
		headers = table.Labels(rows[0].Keys()...)
	}
	return table.Format(rows, headers)
}

// Save saves every element that can be saved, in order, and stops at the
// first failure.
func (c *Collection) Save(ctx context.Context) error {
	for _, s := range c.slots {
		saver, ok := s.item.(interface{ Save(context.Context) error })
		if !ok {
			continue
		}
		if err := saver.Save(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Contains reports whether needle is present. A Collectible is looked up
// by identity, an int as a slot key, and a slice is contained when every
// one of its elements is.
func (c *Collection) Contains(needle any) bool {
	switch n := needle.(type) {
	case Collectible:
		return c.indexOf(n) >= 0
	case int:
		return c.indexOfKey(n) >= 0
	case nil:
		return false
	}

	v := reflect.ValueOf(needle)
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return false
	}
	for i := 0; i < v.Len(); i++ {
		if !c.Contains(v.Index(i).Interface()) {
			return false
		}
	}
	return true
}

// First returns the first element or ErrEmptyCollection.
func (c *Collection) First() (Collectible, error) {
	if len(c.slots) == 0 {
		return nil, errors.ErrEmptyCollection
	}
	return c.slots[0].item, nil
}

// Last returns the last element or nil.
func (c *Collection) Last() Collectible {
	if len(c.slots) == 0 {
		return nil
	}
	return c.slots[len(c.slots)-1].item
}

// Reverse reverses the order of the elements.
func (c *Collection) Reverse() *Collection {
	slices.Reverse(c.slots)
	c.renumber()
	return c
}

// Shuffle puts the elements in random order.
func (c *Collection) Shuffle() *Collection {
	rand.Shuffle(len(c.slots), func(i, j int) {
		c.slots[i], c.slots[j] = c.slots[j], c.slots[i]
	})
	c.renumber()
	return c
}

// Sort orders the elements by cmp, which returns a negative number when a
// sorts before b, zero when they are equal and a positive number otherwise.
func (c *Collection) Sort(cmp func(a, b Collectible) int) *Collection {
	slices.SortStableFunc(c.slots, func(a, b slot) int {
		return cmp(a.item, b.item)
	})
	c.renumber()
	return c
}

// Each calls fn for every element in order.
func (c *Collection) Each(fn func(item Collectible)) *Collection {
	for _, item := range c.Items() {
		fn(item)
	}
	return c
}

// Filter returns a new collection of the elements keep returns true for.
func (c *Collection) Filter(keep func(item Collectible) bool) *Collection {
	result := NewCollection()
	for _, s := range c.slots {
		if keep(s.item) {
			result.Add(s.item)
		}
	}
	return result
}

// Reject removes, in place, the elements drop returns true for. Remaining
// elements keep their keys.
func (c *Collection) Reject(drop func(item Collectible) bool) *Collection {
	c.slots = slices.DeleteFunc(c.slots, func(s slot) bool {
		return drop(s.item)
	})
	return c
}

// Map returns a new collection of fn applied to every element. Nil results
// are skipped.
func (c *Collection) Map(fn func(item Collectible) Collectible) *Collection {
	result := NewCollection()
	for _, s := range c.slots {
		result.Add(fn(s.item))
	}
	return result
}

// Reduce folds the elements from the left, starting with initial.
func (c *Collection) Reduce(fn func(acc any, item Collectible) any, initial any) any {
	return Reduce(c, fn, initial)
}

// Reduce folds the elements of c from the left into a T.
func Reduce[T any](c *Collection, fn func(acc T, item Collectible) T, initial T) T {
	acc := initial
	for _, s := range c.slots {
		acc = fn(acc, s.item)
	}
	return acc
}

// Get returns the element in slot key, or nil.
func (c *Collection) Get(key int) Collectible {
	if i := c.indexOfKey(key); i >= 0 {
		return c.slots[i].item
	}
	return nil
}

// Exists reports whether slot key holds an element.
func (c *Collection) Exists(key int) bool {
	return c.indexOfKey(key) >= 0
}

// Set appends item. The key is ignored, so Set never replaces an element.
func (c *Collection) Set(_ int, item Collectible) *Collection {
	return c.Add(item)
}

// Unset removes slot key.
func (c *Collection) Unset(key int) *Collection {
	return c.Delete(key)
}

func (c *Collection) renumber() {
	for i := range c.slots {
		c.slots[i].key = i
	}
	c.next = len(c.slots)
}

func (c *Collection) indexOfKey(key int) int {
	for i, s := range c.slots {
		if s.key == key {
			return i
		}
	}
	return -1
}

func (c *Collection) indexOf(item Collectible) int {
	for i, s := range c.slots {
		if same(s.item, item) {
			return i
		}
	}
	return -1
}

// same compares comparable elements (pointers, most structs) with == and
// falls back to deep equality for the rest.
func same(a, b Collectible) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if reflect.ValueOf(a).Comparable() && reflect.ValueOf(b).Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}
