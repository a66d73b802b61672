// File: ops.go
// Title: Pebble Value Operators
// Description: Arithmetic, comparison and unary operators over Values with
//              the usual dynamic-language promotion rules. Bool behaves as
//              the integers 0 and 1; mixing with Float promotes to Float.
// Author: Adam Nassar
// Version: v0.1.0
// Created: 2025-09-14
// Modified: 2025-09-14
//
// Change History:
// - 2025-09-14 v0.1.0: Initial operator set

package value

import (
	"math"
	"strings"

	mdwerror "github.com/AGOODGITDUCK/PebbleCode/foundation/core/error"
)

// MaxRepeat bounds the length of a string produced by str * int
const MaxRepeat = 1 << 20

// Binary applies a binary operator by its source spelling
func Binary(op string, left, right Value) (Value, error) {
	switch op {
	case "+":
		return Add(left, right)
	case "-":
		return Sub(left, right)
	case "*":
		return Mul(left, right)
	case "/":
		return TrueDiv(left, right)
	case "//":
		return FloorDiv(left, right)
	case "%":
		return Mod(left, right)
	case "**":
		return Pow(left, right)
	case "==", "!=", "<", "<=", ">", ">=":
		return Compare(op, left, right)
	}
	return nil, opError(op, "unknown operator %q", op)
}

// Unary applies a unary operator by its source spelling
func Unary(op string, operand Value) (Value, error) {
	switch op {
	case "-":
		return Neg(operand)
	case "+":
		return Pos(operand)
	case "not":
		return Not(operand), nil
	}
	return nil, opError(op, "unknown operator %q", op)
}

// number is an Int, Float or Bool operand widened for arithmetic
type number struct {
	i       int64
	f       float64
	isFloat bool
}

func (n number) float() float64 {
	if n.isFloat {
		return n.f
	}
	return float64(n.i)
}

func toNumber(v Value) (number, bool) {
	switch v := v.(type) {
	case Int:
		return number{i: int64(v)}, true
	case Float:
		return number{f: float64(v), isFloat: true}, true
	case Bool:
		if v {
			return number{i: 1}, true
		}
		return number{}, true
	}
	return number{}, false
}

func numbers(left, right Value) (number, number, bool) {
	l, lok := toNumber(left)
	r, rok := toNumber(right)
	return l, r, lok && rok
}

// Add implements +
func Add(left, right Value) (Value, error) {
	if ls, ok := left.(Str); ok {
		if rs, ok := right.(Str); ok {
			return ls + rs, nil
		}
		return nil, typeError("+", left, right)
	}

	l, r, ok := numbers(left, right)
	if !ok {
		return nil, typeError("+", left, right)
	}
	if l.isFloat || r.isFloat {
		return Float(l.float() + r.float()), nil
	}
	if (r.i > 0 && l.i > math.MaxInt64-r.i) || (r.i < 0 && l.i < math.MinInt64-r.i) {
		return nil, overflowError("+")
	}
	return Int(l.i + r.i), nil
}

// Sub implements binary -
func Sub(left, right Value) (Value, error) {
	l, r, ok := numbers(left, right)
	if !ok {
		return nil, typeError("-", left, right)
	}
	if l.isFloat || r.isFloat {
		return Float(l.float() - r.float()), nil
	}
	if (r.i < 0 && l.i > math.MaxInt64+r.i) || (r.i > 0 && l.i < math.MinInt64+r.i) {
		return nil, overflowError("-")
	}
	return Int(l.i - r.i), nil
}

// Mul implements *, including string repetition
func Mul(left, right Value) (Value, error) {
	if s, ok := left.(Str); ok {
		return repeat(s, right, left)
	}
	if s, ok := right.(Str); ok {
		return repeat(s, left, left)
	}

	l, r, ok := numbers(left, right)
	if !ok {
		return nil, typeError("*", left, right)
	}
	if l.isFloat || r.isFloat {
		return Float(l.float() * r.float()), nil
	}
	p, ok := mulInt(l.i, r.i)
	if !ok {
		return nil, overflowError("*")
	}
	return Int(p), nil
}

func repeat(s Str, count, left Value) (Value, error) {
	n, ok := toNumber(count)
	if !ok || n.isFloat {
		if left.Kind() == KindStr {
			return nil, typeError("*", left, count)
		}
		return nil, typeError("*", count, s)
	}
	if n.i <= 0 || s == "" {
		return Str(""), nil
	}
	if n.i > MaxRepeat || int64(len(s))*n.i > MaxRepeat {
		return nil, opError("*", "repeated string too long")
	}
	return Str(strings.Repeat(string(s), int(n.i))), nil
}

func mulInt(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	p := a * b
	if p/b != a || (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, false
	}
	return p, true
}

// TrueDiv implements /, which always yields a Float
func TrueDiv(left, right Value) (Value, error) {
	l, r, ok := numbers(left, right)
	if !ok {
		return nil, typeError("/", left, right)
	}
	if r.float() == 0 {
		return nil, zeroDivision("/")
	}
	return Float(l.float() / r.float()), nil
}

// FloorDiv implements //, rounding toward negative infinity
func FloorDiv(left, right Value) (Value, error) {
	l, r, ok := numbers(left, right)
	if !ok {
		return nil, typeError("//", left, right)
	}
	if l.isFloat || r.isFloat {
		if r.float() == 0 {
			return nil, zeroDivision("//")
		}
		return Float(math.Floor(l.float() / r.float())), nil
	}
	if r.i == 0 {
		return nil, zeroDivision("//")
	}
	if l.i == math.MinInt64 && r.i == -1 {
		return nil, overflowError("//")
	}
	q := l.i / r.i
	if (l.i%r.i != 0) && ((l.i < 0) != (r.i < 0)) {
		q--
	}
	return Int(q), nil
}

// Mod implements %; a non-zero result takes the sign of the divisor
func Mod(left, right Value) (Value, error) {
	l, r, ok := numbers(left, right)
	if !ok {
		return nil, typeError("%", left, right)
	}
	if l.isFloat || r.isFloat {
		if r.float() == 0 {
			return nil, zeroDivision("%")
		}
		m := math.Mod(l.float(), r.float())
		if m != 0 && (m < 0) != (r.float() < 0) {
			m += r.float()
		}
		return Float(m), nil
	}
	if r.i == 0 {
		return nil, zeroDivision("%")
	}
	if r.i == -1 {
		return Int(0), nil
	}
	m := l.i % r.i
	if m != 0 && (m < 0) != (r.i < 0) {
		m += r.i
	}
	return Int(m), nil
}

// Pow implements **. Integer bases with a non-negative integer exponent
// stay integers; a negative exponent yields a Float.
func Pow(left, right Value) (Value, error) {
	l, r, ok := numbers(left, right)
	if !ok {
		return nil, typeError("**", left, right)
	}

	if !l.isFloat && !r.isFloat {
		if r.i >= 0 {
			p, ok := powInt(l.i, r.i)
			if !ok {
				return nil, overflowError("**")
			}
			return Int(p), nil
		}
		if l.i == 0 {
			return nil, zeroDivision("**")
		}
		return Float(math.Pow(float64(l.i), float64(r.i))), nil
	}

	base, exp := l.float(), r.float()
	if base == 0 && exp < 0 {
		return nil, zeroDivision("**")
	}
	if base < 0 && exp != math.Trunc(exp) {
		return nil, opError("**", "negative number cannot be raised to a fractional power")
	}
	res := math.Pow(base, exp)
	if math.IsInf(res, 0) && !math.IsInf(base, 0) && !math.IsInf(exp, 0) {
		return nil, overflowError("**")
	}
	return Float(res), nil
}

func powInt(base, exp int64) (int64, bool) {
	result := int64(1)
	for exp > 0 {
		if exp&1 == 1 {
			var ok bool
			if result, ok = mulInt(result, base); !ok {
				return 0, false
			}
		}
		exp >>= 1
		if exp > 0 {
			var ok bool
			if base, ok = mulInt(base, base); !ok {
				return 0, false
			}
		}
	}
	return result, true
}

// Neg implements unary -
func Neg(v Value) (Value, error) {
	n, ok := toNumber(v)
	if !ok {
		return nil, unaryTypeError("-", v)
	}
	if n.isFloat {
		return Float(-n.f), nil
	}
	if n.i == math.MinInt64 {
		return nil, overflowError("-")
	}
	return Int(-n.i), nil
}

// Pos implements unary +; a Bool becomes an Int
func Pos(v Value) (Value, error) {
	n, ok := toNumber(v)
	if !ok {
		return nil, unaryTypeError("+", v)
	}
	if n.isFloat {
		return Float(n.f), nil
	}
	return Int(n.i), nil
}

// Not implements logical negation
func Not(v Value) Value {
	return Bool(!v.Truthy())
}

// Compare implements the six comparison operators. Equality is defined
// between any two values; ordering only between numbers or between strings.
func Compare(op string, left, right Value) (Value, error) {
	switch op {
	case "==":
		return Bool(Equal(left, right)), nil
	case "!=":
		return Bool(!Equal(left, right)), nil
	}

	var cmp int
	if ls, ok := left.(Str); ok {
		rs, ok := right.(Str)
		if !ok {
			return nil, orderError(op, left, right)
		}
		cmp = strings.Compare(string(ls), string(rs))
	} else {
		l, r, ok := numbers(left, right)
		if !ok {
			return nil, orderError(op, left, right)
		}
		if l.isFloat || r.isFloat {
			lf, rf := l.float(), r.float()
			if math.IsNaN(lf) || math.IsNaN(rf) {
				return Bool(false), nil
			}
			cmp = compareFloat(lf, rf)
		} else {
			cmp = compareInt(l.i, r.i)
		}
	}

	switch op {
	case "<":
		return Bool(cmp < 0), nil
	case "<=":
		return Bool(cmp <= 0), nil
	case ">":
		return Bool(cmp > 0), nil
	case ">=":
		return Bool(cmp >= 0), nil
	}
	return nil, opError(op, "unknown comparison %q", op)
}

func compareInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Errors

func opError(op, format string, args ...interface{}) *mdwerror.Error {
	return mdwerror.Newf(format, args...).
		WithCode(mdwerror.CodeRuntime).
		WithDetail("operator", op)
}

func typeError(op string, left, right Value) *mdwerror.Error {
	return opError(op, "unsupported operand types for %s: '%s' and '%s'", op, left.Kind(), right.Kind())
}

func unaryTypeError(op string, v Value) *mdwerror.Error {
	return opError(op, "bad operand type for unary %s: '%s'", op, v.Kind())
}

func orderError(op string, left, right Value) *mdwerror.Error {
	return opError(op, "'%s' not supported between instances of '%s' and '%s'", op, left.Kind(), right.Kind())
}

func zeroDivision(op string) *mdwerror.Error {
	return opError(op, "division by zero")
}

func overflowError(op string) *mdwerror.Error {
	return opError(op, "integer overflow")
}
