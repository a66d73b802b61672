// File: doc.go
// Title: Pebble Package Documentation
// Description: Overview of the Pebble language packages.
// Author: Adam Nassar
// Version: v0.1.0
// Created: 2025-09-14
// Modified: 2025-09-14
//
// Change History:
// - 2025-09-14 v0.1.0: Initial documentation

/*
Package pebble is the entry point to the Pebble scripting language.

Pebble programs are sequences of assignments, print statements and bare
expressions over integers, strings and variables:

	x = 5
	greeting = "hello"
	print greeting x

Source flows one way through the subpackages:

	parser       text to tokens to *ast.Block
	ast          statement and expression nodes
	interpreter  executes a block against a value.Env
	value        Int, Str, Float, Bool and the environment
	textexpr     evaluates console expression text

An Engine bundles them:

	engine := pebble.New(pebble.Options{Output: os.Stdout})
	env := value.NewEnv()
	if err := engine.RunSource(ctx, src, "demo.peb", env); err != nil {
		var syntaxErr *parser.SyntaxError
		if errors.As(err, &syntaxErr) {
			// nothing ran
		}
	}
	v := engine.EvaluateText("x + 1", env) // value.Int(6)

The environment is owned by the caller, so one env can span a whole
console session while each script run gets a fresh one.
*/
package pebble
