/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entitydb

// Field is a typed accessor for one column, meant to be declared once per
// custom entity type:
//
//	var userEmail = entitydb.Field[string]("email")
//
//	func (u *UserEntity) Email() string         { return userEmail.Get(u) }
//	func (u *UserEntity) SetEmail(v string)     { userEmail.Set(u, v) }
type Field[T any] string

// Name returns the column name.
func (f Field[T]) Name() string {
	return string(f)
}

// Lookup returns the value when the field is set and holds a T.
func (f Field[T]) Lookup(m Model) (T, bool) {
	v, ok := m.Base().Get(string(f)).(T)
	return v, ok
}

// Get returns the value, or the zero T when it is missing or of another type.
func (f Field[T]) Get(m Model) T {
	v, _ := f.Lookup(m)
	return v
}

// Set stores v.
func (f Field[T]) Set(m Model, v T) {
	m.Base().Set(string(f), v)
}
