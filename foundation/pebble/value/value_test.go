// File: value_test.go
// Title: Pebble Value Unit Tests
// Description: Rendering, truthiness, operators and the environment.
// Author: Adam Nassar
// Version: v0.1.0
// Created: 2025-09-14
// Modified: 2025-09-14
//
// Change History:
// - 2025-09-14 v0.1.0: Initial test suite

package value

import (
	"math"
	"reflect"
	"strings"
	"testing"

	mdwerror "github.com/AGOODGITDUCK/PebbleCode/foundation/core/error"
)

func TestValueString(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{Int(42), "42"},
		{Int(-7), "-7"},
		{Str("a b"), "a b"},
		{Float(2), "2.0"},
		{Float(2.5), "2.5"},
		{Float(0.1), "0.1"},
		{Float(-0.0), "0.0"},
		{Float(math.Copysign(0, -1)), "-0.0"},
		{Float(0.0001), "0.0001"},
		{Float(0.00001), "1e-05"},
		{Float(1e15), "1000000000000000.0"},
		{Float(1e16), "1e+16"},
		{Float(math.Inf(1)), "inf"},
		{Float(math.Inf(-1)), "-inf"},
		{Float(math.NaN()), "nan"},
		{Bool(true), "True"},
		{Bool(false), "False"},
	}
	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("%#v.String() = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		v    Value
		want bool
	}{
		{Int(0), false},
		{Int(3), true},
		{Str(""), false},
		{Str("0"), true},
		{Float(0), false},
		{Float(0.5), true},
		{Bool(false), false},
		{Bool(true), true},
	}
	for _, tt := range tests {
		if got := tt.v.Truthy(); got != tt.want {
			t.Errorf("%#v.Truthy() = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestBinary(t *testing.T) {
	tests := []struct {
		op          string
		left, right Value
		want        Value
	}{
		{"+", Int(2), Int(3), Int(5)},
		{"+", Int(2), Float(0.5), Float(2.5)},
		{"+", Bool(true), Int(1), Int(2)},
		{"+", Str("ab"), Str("cd"), Str("abcd")},
		{"-", Int(2), Int(5), Int(-3)},
		{"-", Float(1.5), Bool(true), Float(0.5)},
		{"*", Int(6), Int(7), Int(42)},
		{"*", Str("ab"), Int(3), Str("ababab")},
		{"*", Int(2), Str("xy"), Str("xyxy")},
		{"*", Str("ab"), Int(-1), Str("")},
		{"/", Int(7), Int(2), Float(3.5)},
		{"/", Int(6), Int(3), Float(2)},
		{"//", Int(7), Int(2), Int(3)},
		{"//", Int(-7), Int(2), Int(-4)},
		{"//", Int(7), Int(-2), Int(-4)},
		{"//", Float(7), Int(2), Float(3)},
		{"%", Int(7), Int(3), Int(1)},
		{"%", Int(-7), Int(3), Int(2)},
		{"%", Int(7), Int(-3), Int(-2)},
		{"%", Int(math.MinInt64), Int(-1), Int(0)},
		{"%", Float(-1), Float(3), Float(2)},
		{"**", Int(2), Int(10), Int(1024)},
		{"**", Int(2), Int(-1), Float(0.5)},
		{"**", Float(4), Float(0.5), Float(2)},
		{"**", Int(0), Int(0), Int(1)},
		{"==", Int(1), Float(1), Bool(true)},
		{"==", Bool(true), Int(1), Bool(true)},
		{"==", Str("1"), Int(1), Bool(false)},
		{"!=", Str("a"), Str("b"), Bool(true)},
		{"<", Int(1), Float(1.5), Bool(true)},
		{"<=", Int(2), Int(2), Bool(true)},
		{">", Str("b"), Str("a"), Bool(true)},
		{">=", Str("a"), Str("b"), Bool(false)},
		{"<", Float(math.NaN()), Int(1), Bool(false)},
	}

	for _, tt := range tests {
		got, err := Binary(tt.op, tt.left, tt.right)
		if err != nil {
			t.Errorf("%v %s %v: unexpected error %v", tt.left, tt.op, tt.right, err)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("%#v %s %#v = %#v, want %#v", tt.left, tt.op, tt.right, got, tt.want)
		}
	}
}

func TestBinaryErrors(t *testing.T) {
	tests := []struct {
		op          string
		left, right Value
		want        string
	}{
		{"+", Str("a"), Int(1), "unsupported operand types for +: 'str' and 'int'"},
		{"-", Str("a"), Str("b"), "unsupported operand types for -: 'str' and 'str'"},
		{"*", Str("a"), Float(2), "unsupported operand types for *: 'str' and 'float'"},
		{"*", Str("a"), Str("b"), "unsupported operand types for *: 'str' and 'str'"},
		{"/", Int(1), Int(0), "division by zero"},
		{"//", Int(1), Int(0), "division by zero"},
		{"%", Float(1), Float(0), "division by zero"},
		{"**", Int(0), Int(-1), "division by zero"},
		{"+", Int(math.MaxInt64), Int(1), "integer overflow"},
		{"-", Int(math.MinInt64), Int(1), "integer overflow"},
		{"*", Int(math.MaxInt64), Int(2), "integer overflow"},
		{"**", Int(10), Int(30), "integer overflow"},
		{"//", Int(math.MinInt64), Int(-1), "integer overflow"},
		{"<", Str("a"), Int(1), "'<' not supported between instances of 'str' and 'int'"},
		{"**", Float(-8), Float(0.5), "negative number cannot be raised to a fractional power"},
		{"*", Str("abc"), Int(MaxRepeat), "repeated string too long"},
		{"&", Int(1), Int(1), `unknown operator "&"`},
	}

	for _, tt := range tests {
		_, err := Binary(tt.op, tt.left, tt.right)
		if err == nil {
			t.Errorf("%v %s %v: expected error", tt.left, tt.op, tt.right)
			continue
		}
		if !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%v %s %v: error %q, want %q", tt.left, tt.op, tt.right, err.Error(), tt.want)
		}
		if !mdwerror.HasCode(err, mdwerror.CodeRuntime) {
			t.Errorf("%v %s %v: error should carry PEBBLE_RUNTIME", tt.left, tt.op, tt.right)
		}
	}
}

func TestUnary(t *testing.T) {
	tests := []struct {
		op   string
		v    Value
		want Value
	}{
		{"-", Int(5), Int(-5)},
		{"-", Float(1.5), Float(-1.5)},
		{"-", Bool(true), Int(-1)},
		{"+", Bool(false), Int(0)},
		{"+", Float(2), Float(2)},
		{"not", Int(0), Bool(true)},
		{"not", Str("x"), Bool(false)},
	}
	for _, tt := range tests {
		got, err := Unary(tt.op, tt.v)
		if err != nil {
			t.Errorf("%s %v: unexpected error %v", tt.op, tt.v, err)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("%s %#v = %#v, want %#v", tt.op, tt.v, got, tt.want)
		}
	}

	if _, err := Neg(Str("a")); err == nil || !strings.Contains(err.Error(), "bad operand type for unary -: 'str'") {
		t.Errorf("Neg(Str) error = %v", err)
	}
	if _, err := Neg(Int(math.MinInt64)); err == nil {
		t.Error("Neg(MinInt64) should overflow")
	}
}

func TestEnv(t *testing.T) {
	env := NewEnv()
	if env.Len() != 0 || env.Has("x") {
		t.Fatal("new environment should be empty")
	}

	env.Set("x", Int(1))
	env.Set("y", Str("a"))
	env.Set("x", Int(2))

	if got, want := env.Names(), []string{"x", "y"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
	if v, ok := env.Get("x"); !ok || v != Int(2) {
		t.Errorf("Get(x) = %v, %v; want 2, true", v, ok)
	}
	if _, ok := env.Get("X"); ok {
		t.Error("names are case sensitive")
	}

	names := env.Names()
	names[0] = "mutated"
	if env.Names()[0] != "x" {
		t.Error("Names() must return a copy")
	}

	env.Clear()
	if env.Len() != 0 || env.Has("y") {
		t.Error("Clear() should remove every binding")
	}
}
