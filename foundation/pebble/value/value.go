// File: value.go
// Title: Pebble Runtime Values
// Description: The closed set of values a Pebble program or expression can
//              produce: Int, Str, Float and Bool.
// Author: Adam Nassar
// Version: v0.1.0
// Created: 2025-09-14
// Modified: 2025-09-14
//
// Change History:
// - 2025-09-14 v0.1.0: Initial value types

package value

import (
	"math"
	"strconv"
	"strings"
)

// Kind identifies the dynamic type of a Value
type Kind int

const (
	KindInt Kind = iota
	KindStr
	KindFloat
	KindBool
)

// String returns the type name used in error messages
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindStr:
		return "str"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	default:
		return "unknown"
	}
}

// Value is a Pebble runtime value. Only the types in this package
// implement it.
type Value interface {
	Kind() Kind

	// String renders the value the way print shows it
	String() string

	// Truthy reports the value's boolean interpretation
	Truthy() bool

	value()
}

// Int is a 64-bit signed integer
type Int int64

// Str is a string
type Str string

// Float is a double precision float
type Float float64

// Bool is a boolean
type Bool bool

func (Int) value()   {}
func (Str) value()   {}
func (Float) value() {}
func (Bool) value()  {}

func (Int) Kind() Kind   { return KindInt }
func (Str) Kind() Kind   { return KindStr }
func (Float) Kind() Kind { return KindFloat }
func (Bool) Kind() Kind  { return KindBool }

func (i Int) String() string { return strconv.FormatInt(int64(i), 10) }
func (s Str) String() string { return string(s) }

// String renders the shortest representation that round-trips. Integral
// values keep a trailing ".0"; very large and very small magnitudes use
// exponent notation.
func (f Float) String() string {
	x := float64(f)
	switch {
	case math.IsNaN(x):
		return "nan"
	case math.IsInf(x, 1):
		return "inf"
	case math.IsInf(x, -1):
		return "-inf"
	}

	abs := math.Abs(x)
	if abs != 0 && (abs >= 1e16 || abs < 1e-4) {
		return strconv.FormatFloat(x, 'e', -1, 64)
	}
	s := strconv.FormatFloat(x, 'f', -1, 64)
	if !strings.ContainsAny(s, ".") {
		s += ".0"
	}
	return s
}

func (b Bool) String() string {
	if b {
		return "True"
	}
	return "False"
}

func (i Int) Truthy() bool   { return i != 0 }
func (s Str) Truthy() bool   { return s != "" }
func (f Float) Truthy() bool { return f != 0 }
func (b Bool) Truthy() bool  { return bool(b) }

// Equal reports whether a and b are equal under ==. Numbers compare by
// value across Int, Float and Bool; a string never equals a number.
func Equal(a, b Value) bool {
	if as, ok := a.(Str); ok {
		bs, ok := b.(Str)
		return ok && as == bs
	}
	if _, ok := b.(Str); ok {
		return false
	}

	an, _ := toNumber(a)
	bn, _ := toNumber(b)
	if an.isFloat || bn.isFloat {
		return an.float() == bn.float()
	}
	return an.i == bn.i
}
