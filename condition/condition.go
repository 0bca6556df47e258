/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package condition

import (
	"fmt"
	"strings"

	"github.com/suparena/entitydb/errors"
)

// Condition is a node of a WHERE condition tree. It is implemented only by
// Leaf, Group and the value returned by True.
type Condition interface {
	condition()
}

// Leaf is a single equality test, rendered as `field = <literal>`.
type Leaf struct {
	Field string
	Value any
}

// Group joins its conditions with Operator ("and" or "or", any case). The
// operator is rendered exactly as given.
type Group struct {
	Operator   string
	Conditions []Condition
}

type always struct{}

func (Leaf) condition()   {}
func (Group) condition()  {}
func (always) condition() {}

// Eq returns a leaf testing field for equality with value.
func Eq(field string, value any) Condition {
	return Leaf{Field: field, Value: value}
}

// And groups conditions with the lower-case "and" operator.
func And(conditions ...Condition) Condition {
	return Group{Operator: "and", Conditions: conditions}
}

// Or groups conditions with the lower-case "or" operator.
func Or(conditions ...Condition) Condition {
	return Group{Operator: "or", Conditions: conditions}
}

// True returns the always-true condition that selects every row.
func True() Condition {
	return always{}
}

// Build compiles a condition tree into a WHERE fragment with values inlined
// as literals. Integers are unquoted, nil becomes NULL and every other value
// is wrapped in double quotes as-is; quotes inside values are not escaped,
// so untrusted input belongs in BuildArgs instead.
func Build(c Condition) (string, error) {
	var b builder
	if err := b.build(c); err != nil {
		return "", err
	}
	return b.String(), nil
}

// BuildArgs compiles a condition tree like Build, but renders every non-nil
// leaf value as a placeholder in the given style and returns the values in
// placeholder order.
func BuildArgs(c Condition, ph Placeholder) (string, []any, error) {
	b := builder{parameterized: true, placeholder: ph}
	if err := b.build(c); err != nil {
		return "", nil, err
	}
	return b.String(), b.args, nil
}

// BuildTree parses a dynamic condition tree (see Parse) and compiles it.
func BuildTree(tree any) (string, error) {
	c, err := Parse(tree)
	if err != nil {
		return "", err
	}
	return Build(c)
}

type builder struct {
	strings.Builder
	parameterized bool
	placeholder   Placeholder
	args          []any
}

func (b *builder) build(c Condition) error {
	switch node := c.(type) {
	case nil, always:
		b.WriteString("1 = 1")
	case Leaf:
		b.leaf(node)
	case Group:
		op := strings.ToLower(node.Operator)
		if op != "and" && op != "or" {
			return errors.NewInvalidConditionOperatorError(node.Operator)
		}
		b.WriteByte('(')
		for i, child := range node.Conditions {
			if i > 0 {
				b.WriteString(" " + node.Operator + " ")
			}
			if err := b.build(child); err != nil {
				return err
			}
		}
		b.WriteByte(')')
	default:
		return errors.NewInvalidConditionInputError(c)
	}
	return nil
}

func (b *builder) leaf(l Leaf) {
	b.WriteString(l.Field)
	b.WriteString(" = ")
	if l.Value == nil {
		b.WriteString("NULL")
		return
	}
	if b.parameterized {
		b.args = append(b.args, l.Value)
		b.WriteString(b.placeholder.Format(len(b.args)))
		return
	}
	b.WriteString(Literal(l.Value))
}

// Literal renders a value the way Build inlines it.
func Literal(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", val)
	case bool:
		if val {
			return `"1"`
		}
		return `""`
	case []byte:
		return `"` + string(val) + `"`
	}
	return `"` + fmt.Sprint(v) + `"`
}
