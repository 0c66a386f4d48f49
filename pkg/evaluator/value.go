// Package evaluator implements values, environments and the big-step evaluator.
package evaluator

import "strconv"

// Value is the interface for all runtime values.
// Use the sealed marker method to restrict implementations to this package.
type Value interface {
	String() string
	value() // sealed marker
}

// IntValue represents an integer value.
type IntValue struct {
	Value int64
}

func (IntValue) value() {}

func (v IntValue) String() string { return strconv.FormatInt(v.Value, 10) }

// BoolValue represents a boolean value.
type BoolValue struct {
	Value bool
}

func (BoolValue) value() {}

func (v BoolValue) String() string { return strconv.FormatBool(v.Value) }

// NewInt creates an integer value.
func NewInt(n int64) Value {
	return IntValue{Value: n}
}

// NewBool creates a boolean value.
func NewBool(b bool) Value {
	return BoolValue{Value: b}
}

// TypeName returns the type name of v for error messages.
func TypeName(v Value) string {
	switch v.(type) {
	case IntValue:
		return "int"
	case BoolValue:
		return "bool"
	default:
		return "unknown"
	}
}

// Equal compares two values.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch av := a.(type) {
	case IntValue:
		bv, ok := b.(IntValue)
		return ok && av.Value == bv.Value
	case BoolValue:
		bv, ok := b.(BoolValue)
		return ok && av.Value == bv.Value
	}
	return false
}
