// File: doc.go
// Title: Pebble Value Package Documentation
// Description: Runtime values, operators and the variable environment.
// Author: Adam Nassar
// Version: v0.1.0
// Created: 2025-09-14
// Modified: 2025-09-14
//
// Change History:
// - 2025-09-14 v0.1.0: Initial value package

/*
Package value defines the values Pebble code computes with.

The interpreter only produces Int and Str. Float and Bool appear when the
console evaluates expression text through package textexpr, whose
operators are implemented here:

	v, err := value.Add(value.Int(2), value.Float(0.5)) // 2.5
	v, err = value.Mod(value.Int(-7), value.Int(3))     // 2
	v, err = value.Mul(value.Str("ab"), value.Int(3))   // ababab

Operator failures are *error.Error values with code PEBBLE_RUNTIME.

Env maps variable names to values and remembers first-binding order.
*/
package value
