// interpreter/value.go
package interpreter

import (
	"fmt"
	"strconv"
)

type ValueKind int

const (
	ValNull ValueKind = iota
	ValInt
	ValFloat
	ValString
	ValBool
)

// Value is the dynamically-typed result of evaluating an expression.
// Exactly one of the payload fields is meaningful, selected by Kind.
type Value struct {
	Kind  ValueKind
	Int   int64
	Float float64
	Str   string
	Bool  bool
}

func NullValue() Value           { return Value{Kind: ValNull} }
func IntValue(n int64) Value     { return Value{Kind: ValInt, Int: n} }
func FloatValue(f float64) Value { return Value{Kind: ValFloat, Float: f} }
func StringValue(s string) Value { return Value{Kind: ValString, Str: s} }
func BoolValue(b bool) Value     { return Value{Kind: ValBool, Bool: b} }

func (v Value) isNumber() bool { return v.Kind == ValInt || v.Kind == ValFloat }

// asFloat widens a numeric value. Only valid when isNumber() holds.
func (v Value) asFloat() float64 {
	if v.Kind == ValInt {
		return float64(v.Int)
	}
	return v.Float
}

func (v Value) ToString() string {
	switch v.Kind {
	case ValInt:
		return strconv.FormatInt(v.Int, 10)
	case ValFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case ValString:
		return v.Str
	case ValBool:
		if v.Bool {
			return "true"
		}
		return "false"
	default:
		return "null"
	}
}

// KindName is used in diagnostics.
func (v Value) KindName() string {
	switch v.Kind {
	case ValInt:
		return "int"
	case ValFloat:
		return "float"
	case ValString:
		return "string"
	case ValBool:
		return "bool"
	default:
		return "null"
	}
}

// Equal compares two values. Ints and floats compare numerically, so
// 2 == 2.0 holds; otherwise kinds must match.
func (v Value) Equal(o Value) bool {
	if v.isNumber() && o.isNumber() {
		if v.Kind == ValInt && o.Kind == ValInt {
			return v.Int == o.Int
		}
		return v.asFloat() == o.asFloat()
	}
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case ValNull:
		return true
	case ValString:
		return v.Str == o.Str
	case ValBool:
		return v.Bool == o.Bool
	default:
		return false
	}
}

func (v Value) String() string {
	return fmt.Sprintf("%s(%s)", v.KindName(), v.ToString())
}
