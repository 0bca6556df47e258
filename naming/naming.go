/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package naming translates between snake_case field names and CamelCase
// accessor or type names.
package naming

import "strings"

// accessorPrefixLen is the length of "get_"/"set_" once the accessor verb has
// been followed by the underscore produced for its first capital letter.
const accessorPrefixLen = 4

// FunctionToField turns an accessor name into a field name by converting
// each capital letter (together with the character after it) into "_" plus
// lower case and then dropping the four-character verb prefix:
//
//	getField       -> field
//	setMyLongField -> my_long_field
//	somefield      -> field
func FunctionToField(function string) string {
	var b strings.Builder
	b.Grow(len(function) + 4)
	for i := 0; i < len(function); i++ {
		c := function[i]
		if c >= 'A' && c <= 'Z' && i+1 < len(function) {
			b.WriteByte('_')
			b.WriteByte(lower(c))
			b.WriteByte(lower(function[i+1]))
			i++
			continue
		}
		b.WriteByte(c)
	}
	s := b.String()
	if len(s) <= accessorPrefixLen {
		return ""
	}
	return s[accessorPrefixLen:]
}

// FieldToFunction turns a snake_case field into a CamelCase name with an
// optional prefix:
//
//	FieldToFunction("long_field", "set") -> setLongField
//	FieldToFunction("field_", "")        -> Field_
func FieldToFunction(field, prefix string) string {
	var b strings.Builder
	b.Grow(len(field))
	for i := 0; i < len(field); i++ {
		if field[i] == '_' && i+1 < len(field) && field[i+1] >= 'a' && field[i+1] <= 'z' {
			b.WriteByte(upper(field[i+1]))
			i++
			continue
		}
		b.WriteByte(field[i])
	}
	return prefix + UpperFirst(b.String())
}

// UpperFirst upper-cases the first ASCII letter of s.
func UpperFirst(s string) string {
	if s == "" {
		return s
	}
	return string(upper(s[0])) + s[1:]
}

// Verb returns the lower-cased three-character accessor verb of a function
// name ("get", "set", ...), or the whole name when it is shorter.
func Verb(function string) string {
	if len(function) < 3 {
		return strings.ToLower(function)
	}
	return strings.ToLower(function[:3])
}

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}
